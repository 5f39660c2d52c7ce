// Package vocab loads and serves the word list the solver guesses from.
//
// A vocabulary source is plain text with one word per line. Each line is
// normalized by trimming trailing whitespace and lowercasing; blank lines
// are skipped. When no source is configured, a small embedded word list
// is used so the CLI works out of the box.
//
// A loaded Store is immutable and safe to share read-only between games.
package vocab
