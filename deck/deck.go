package deck

import (
	"errors"
	"math/rand"
)

const Size = 52

var ErrEmptyDeck = errors.New("deck is empty")

// Deck represents a deck of cards
type Deck []Card

// New creates a full deck of cards, suit by suit (Clubs, Diamonds, Hearts,
// Spades), Ace to King within each suit
func New() Deck {
	cards := make([]Card, 0, Size)
	for _, suit := range Suits() {
		for _, rank := range Ranks() {
			cards = append(cards, NewCard(rank, suit))
		}
	}
	return cards
}

// Shuffle shuffles the deck of cards in place
func (d *Deck) Shuffle(rng *rand.Rand) {
	actualDeck := *d
	for i := len(actualDeck) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		actualDeck[i], actualDeck[j] = actualDeck[j], actualDeck[i]
	}
}

// Deal deals n number of cards from the back of the deck
func (d *Deck) Deal(n int) []Card {
	numCardsInDeck := len(*d)
	if n < 0 || n > numCardsInDeck {
		return []Card{}
	}
	startingIndex := numCardsInDeck - n
	subSlice := make([]Card, n)
	copy(subSlice, (*d)[startingIndex:])
	*d = (*d)[:startingIndex]
	return subSlice
}

// Pop removes the card at the back of the deck
func (d *Deck) Pop() (Card, error) {
	if len(*d) == 0 {
		return Card{}, ErrEmptyDeck
	}
	c := (*d)[len(*d)-1]
	*d = (*d)[:len(*d)-1]
	return c, nil
}
