// Package prompt collects validated answers from a human at a terminal.
//
// Every prompt goes through Ask, a retry combinator: read a line, convert
// it, validate it, and on any failure ask again with a generic message.
// Callers only ever receive values that passed validation. The ways out
// besides a valid answer are the end of input, reported as ErrInputClosed,
// and cancellation of the Prompter's context, reported as its error.
package prompt
