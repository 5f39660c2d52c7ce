// Package game implements the solver's side of a hangman game as an
// explicit state machine.
//
//	Init → Playing → Solved
//	               → Failed
//
// A Game owns its candidate set, masked word and wrong-guess counter. Each
// turn asks the solver for the next letter, obtains feedback for it and
// narrows the candidates. After every turn the failure threshold is
// checked before the solved condition, so a wrong guess that also leaves a
// single candidate still ends the game as Failed.
//
// Collaborators are injected through small interfaces so the loop runs the
// same way against a human at a terminal and in self-play:
//
//	Oracle     ground-truth positions, when the secret word is known
//	Responder  feedback for one letter (interactive prompt or SelfPlay)
//	Renderer   display refresh after every turn
package game
