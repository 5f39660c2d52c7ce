package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/shinji-kodama/hangman-solver/internal/game"
	"github.com/shinji-kodama/hangman-solver/internal/model"
)

// Environment variables read by FromEnv.
const (
	EnvVocabulary      = "HANGMAN_VOCABULARY"
	EnvMaxWrongGuesses = "HANGMAN_MAX_WRONG_GUESSES"
	EnvNoClear         = "HANGMAN_NO_CLEAR"
)

// Settings holds every value the CLI can be configured with.
type Settings struct {
	// Vocabulary is the path of the word list. Empty selects vocabulary.txt
	// in the working directory, falling back to the embedded list.
	Vocabulary string `json:"vocabulary" yaml:"vocabulary"`

	// MaxWrongGuesses is the number of absent reports that loses a game.
	MaxWrongGuesses int `json:"maxWrongGuesses" yaml:"maxWrongGuesses"`

	// NoClear keeps the terminal from being cleared between turns.
	NoClear bool `json:"noClear" yaml:"noClear"`

	// Source is the config file the settings were read from, if any.
	Source string `json:"-" yaml:"-"`
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{MaxWrongGuesses: game.DefaultMaxWrongGuesses}
}

// Load resolves settings from all layers. path may be empty, in which case
// the working directory is searched for a config file.
func Load(path string) (Settings, error) {
	s := Default()

	if path == "" {
		found, err := FindConfigFile(".")
		if err != nil {
			return s, err
		}
		path = found
	}
	if path != "" {
		loaded, err := LoadFile(path)
		if err != nil {
			return s, err
		}
		s = loaded
	}

	if err := LoadDotEnv(".env"); err != nil {
		return s, err
	}
	s, err := FromEnv(s)
	if err != nil {
		return s, err
	}
	if err := s.Validate(); err != nil {
		return s, model.WrapCLIError(model.ExitConfigInvalid, "invalid configuration", err)
	}
	return s, nil
}

// LoadFile reads a YAML or JSON(C) config file on top of the defaults.
// The format is chosen by file extension.
func LoadFile(path string) (Settings, error) {
	s := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, model.WrapCLIError(
				model.ExitConfigInvalid,
				fmt.Sprintf("config file not found: %s", path),
				err,
			)
		}
		return s, fmt.Errorf("failed to read config file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &s)
	case ".json", ".jsonc":
		err = json.Unmarshal(jsonc.ToJSON(data), &s)
	default:
		return s, model.NewCLIError(model.ExitConfigInvalid,
			fmt.Sprintf("unsupported config file extension %q (want .yaml, .yml, .json or .jsonc)", filepath.Ext(path)))
	}
	if err != nil {
		return s, model.WrapCLIError(model.ExitConfigInvalid,
			fmt.Sprintf("failed to parse config file %s", path), err)
	}

	// A relative vocabulary path is taken relative to the config file.
	if s.Vocabulary != "" && !filepath.IsAbs(s.Vocabulary) {
		s.Vocabulary = filepath.Join(filepath.Dir(path), s.Vocabulary)
	}
	s.Source = path
	return s, nil
}

// FindConfigFile returns the first config file present in dir, or "" when
// there is none.
func FindConfigFile(dir string) (string, error) {
	candidates := []string{".hangman.yaml", ".hangman.yml", ".hangman.jsonc", ".hangman.json"}
	for _, name := range candidates {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		} else if !os.IsNotExist(err) {
			return "", fmt.Errorf("stat %s: %w", path, err)
		}
	}
	return "", nil
}

// LoadDotEnv loads variables from the given .env files into the process
// environment. Missing files are ignored; variables that are already set
// are left untouched.
func LoadDotEnv(paths ...string) error {
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return model.WrapCLIError(model.ExitConfigInvalid,
				fmt.Sprintf("failed to load %s", path), err)
		}
	}
	return nil
}

// FromEnv applies HANGMAN_* environment variables on top of s.
func FromEnv(s Settings) (Settings, error) {
	if v := os.Getenv(EnvVocabulary); v != "" {
		s.Vocabulary = v
	}
	if v := os.Getenv(EnvMaxWrongGuesses); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return s, model.WrapCLIError(model.ExitConfigInvalid,
				fmt.Sprintf("%s=%q is not a number", EnvMaxWrongGuesses, v), err)
		}
		s.MaxWrongGuesses = n
	}
	if v := os.Getenv(EnvNoClear); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return s, model.WrapCLIError(model.ExitConfigInvalid,
				fmt.Sprintf("%s=%q is not a boolean", EnvNoClear, v), err)
		}
		s.NoClear = b
	}
	return s, nil
}

// Validate checks the settings for values no game can run with.
func (s Settings) Validate() error {
	if s.MaxWrongGuesses < 1 {
		return fmt.Errorf("max wrong guesses must be at least 1, got %d", s.MaxWrongGuesses)
	}
	return nil
}
