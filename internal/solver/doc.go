// Package solver implements the candidate-filtering engine.
//
// Letter selection is plain frequency analysis over the current candidate
// set: every occurrence of a letter counts, letters already revealed in the
// masked word are skipped, and ties go to the letter seen first while
// scanning the candidates in order, word by word and letter by letter.
//
// Narrowing is done by two pure functions that return a subsequence of
// their input and never allocate into it:
//
//	ExcludeLetter        the letter was reported absent
//	RestrictByPositions  the letter was reported at the given indices
//
// RestrictByPositions only enforces presence at the reported indices. A
// candidate holding the letter at further, unreported positions survives.
package solver
