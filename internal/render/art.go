package render

// Gallows holds one drawing per wrong guess, from the empty gallows to
// the complete figure.
var Gallows = []string{
	`  +---+
  |   |
      |
      |
      |
      |
=========`,
	`  +---+
  |   |
  O   |
      |
      |
      |
=========`,
	`  +---+
  |   |
  O   |
  |   |
      |
      |
=========`,
	`  +---+
  |   |
  O   |
 /|   |
      |
      |
=========`,
	`  +---+
  |   |
  O   |
 /|\  |
      |
      |
=========`,
	`  +---+
  |   |
  O   |
 /|\  |
 /    |
      |
=========`,
	`  +---+
  |   |
  O   |
 /|\  |
 / \  |
      |
=========`,
}

// Stage maps a wrong-guess count onto a drawing index. With the default
// of six allowed misses the mapping is the identity; other limits are
// scaled so the last drawing always marks a lost game.
func Stage(wrong, maxWrong int) int {
	last := len(Gallows) - 1
	if maxWrong <= 0 || wrong <= 0 {
		return 0
	}
	if wrong >= maxWrong {
		return last
	}
	return wrong * last / maxWrong
}
