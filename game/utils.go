package game

import (
	"github.com/minaorangina/beggar/deck"
)

func cardsUnique(cards []deck.Card) bool {
	seen := map[deck.Card]struct{}{}
	for _, c := range cards {
		if _, ok := seen[c]; ok {
			return false
		}
		seen[c] = struct{}{}
	}
	return true
}

func penaltyOf(n int) *int {
	return &n
}
