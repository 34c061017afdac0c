package deck

import (
	"strconv"
	"strings"
)

// Rank represents a rank in a deck of cards
type Rank int

const (
	NullRank Rank = iota
	Ace
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
)

var rankNames = []string{"", "Ace", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine", "Ten", "Jack", "Queen", "King"}

// ranks that render as a letter rather than a digit
var letterRanks = map[Rank]struct{}{
	Ace:   {},
	Ten:   {},
	Jack:  {},
	Queen: {},
	King:  {},
}

// Ranks lists every rank in ascending order
func Ranks() []Rank {
	return []Rank{Ace, Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King}
}

func (r Rank) valid() bool {
	return r >= Ace && r <= King
}

func (r Rank) String() string {
	if !r.valid() {
		return ""
	}
	return rankNames[r]
}

// Code returns the single character used in card shorthand:
// A, T, J, Q, K or the digit.
func (r Rank) Code() string {
	if !r.valid() {
		return "?"
	}
	if _, ok := letterRanks[r]; ok {
		return rankNames[r][:1]
	}
	return strconv.Itoa(int(r))
}

// ParseRank reads a rank from its full name ("queen"), its number ("7", "10")
// or its letter code ("Q", "T"). Case is ignored.
func ParseRank(s string) (Rank, error) {
	for _, r := range Ranks() {
		if strings.EqualFold(s, rankNames[r]) {
			return r, nil
		}
	}

	if n, err := strconv.Atoi(s); err == nil {
		if r := Rank(n); r.valid() {
			return r, nil
		}
		return NullRank, &ParseError{Kind: "rank", Input: s, Reason: "out of range"}
	}

	for r := range letterRanks {
		if strings.EqualFold(s, r.Code()) {
			return r, nil
		}
	}

	return NullRank, &ParseError{Kind: "rank", Input: s, Reason: "unrecognised"}
}
