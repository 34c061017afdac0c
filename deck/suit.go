package deck

import "strings"

// Suit represents a suit in a deck of cards
type Suit int

const (
	NullSuit Suit = iota
	Clubs
	Diamonds
	Hearts
	Spades
)

var suitNames = []string{"", "Clubs", "Diamonds", "Hearts", "Spades"}

// Suits lists every suit in deck order
func Suits() []Suit {
	return []Suit{Clubs, Diamonds, Hearts, Spades}
}

func (s Suit) valid() bool {
	return s >= Clubs && s <= Spades
}

func (s Suit) String() string {
	if !s.valid() {
		return ""
	}
	return suitNames[s]
}

// Code returns the lowercase initial used in card shorthand
func (s Suit) Code() string {
	if !s.valid() {
		return "?"
	}
	return strings.ToLower(suitNames[s][:1])
}

// ParseSuit reads a suit from its full name or its initial. Case is ignored.
func ParseSuit(s string) (Suit, error) {
	for _, suit := range Suits() {
		if strings.EqualFold(s, suitNames[suit]) || strings.EqualFold(s, suit.Code()) {
			return suit, nil
		}
	}
	return NullSuit, &ParseError{Kind: "suit", Input: s, Reason: "unrecognised"}
}
