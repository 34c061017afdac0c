package game

import "github.com/minaorangina/beggar/deck"

// Variant names the rule set Advance implements. A special card passes the
// turn, and the last player holding cards wins.
const Variant = "turn-passes-on-special"

const maxPenalty = 4

// number of plain cards an opponent must play after each special card
var penalties = map[deck.Rank]int{
	deck.Jack:  1,
	deck.Queen: 2,
	deck.King:  3,
	deck.Ace:   maxPenalty,
}

// Penalty reports whether a rank is special and, if so, its penalty count
func Penalty(r deck.Rank) (int, bool) {
	n, ok := penalties[r]
	return n, ok
}
