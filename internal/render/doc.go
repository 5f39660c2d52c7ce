// Package render draws the game state to a terminal: the gallows stage
// for the current number of wrong guesses, the masked word with a row of
// position indices underneath, and the final message.
package render
