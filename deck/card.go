package deck

import (
	"fmt"
	"strconv"
	"strings"
)

// HiddenImageName is shown in place of a face-down or missing card
const HiddenImageName = "black_joker"

// Card represents a playing card.
// Cards are plain values: two cards are equal when rank and suit match.
type Card struct {
	Rank Rank
	Suit Suit
}

// ParseError is returned when text cannot be read as a rank, suit or card
type ParseError struct {
	Kind   string
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse %s %q: %s", e.Kind, e.Input, e.Reason)
}

// NewCard constructs a card, panicking on an out-of-range rank or suit
func NewCard(rank Rank, suit Suit) Card {
	if !rank.valid() || !suit.valid() {
		panic(fmt.Sprintf("card out of range: rank %d, suit %d", rank, suit))
	}
	return Card{Rank: rank, Suit: suit}
}

// ParseCard reads two-character shorthand such as "Ac", "4d" or "Td"
func ParseCard(shorthand string) (Card, error) {
	if len(shorthand) != 2 {
		return Card{}, &ParseError{Kind: "card", Input: shorthand, Reason: "expected 2 characters, e.g. 4d or Ac"}
	}

	rank, err := ParseRank(shorthand[:1])
	if err != nil {
		return Card{}, err
	}
	suit, err := ParseSuit(shorthand[1:])
	if err != nil {
		return Card{}, err
	}

	return Card{Rank: rank, Suit: suit}, nil
}

// MustParseCards parses a space-separated list of shorthand cards, panicking on error
func MustParseCards(s string) []Card {
	cards := []Card{}
	for _, f := range strings.Fields(s) {
		c, err := ParseCard(f)
		if err != nil {
			panic(err)
		}
		cards = append(cards, c)
	}
	return cards
}

// Shorthand renders the card as rank code followed by lowercase suit initial
func (c Card) Shorthand() string {
	return c.Rank.Code() + c.Suit.Code()
}

func (c Card) String() string {
	return fmt.Sprintf("%s of %s", c.Rank, c.Suit)
}

// ImageName returns the card's image file stem, e.g. "7_of_hearts" or "king_of_spades"
func (c Card) ImageName() string {
	if !c.Rank.valid() || !c.Suit.valid() {
		return HiddenImageName
	}
	value := strings.ToLower(c.Rank.String())
	if c.Rank >= Two && c.Rank <= Ten {
		value = strconv.Itoa(int(c.Rank))
	}
	return value + "_of_" + strings.ToLower(c.Suit.String())
}
