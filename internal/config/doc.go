// Package config resolves the runtime settings of the hangman-solver CLI.
//
// Settings are layered, later layers overriding earlier ones:
//
//  1. built-in defaults
//  2. a config file: --config, or the first of .hangman.yaml, .hangman.yml,
//     .hangman.jsonc, .hangman.json found in the working directory
//  3. a .env file in the working directory (loaded into the environment)
//  4. HANGMAN_* environment variables
//
// Command-line flags are applied on top by the cli package.
//
// YAML files are parsed with gopkg.in/yaml.v3. JSON files may contain
// comments and trailing commas; github.com/tidwall/jsonc strips them
// before encoding/json parses the result.
package config
