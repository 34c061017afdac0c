package deck

import (
	"errors"
	"testing"

	utils "github.com/minaorangina/beggar/internal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCard(t *testing.T) {
	cases := []struct {
		name     string
		card     Card
		expected string
	}{
		{"Lowest value card", NewCard(Ace, Clubs), "Ace of Clubs"},
		{"Specific card", NewCard(Queen, Hearts), "Queen of Hearts"},
		{"Highest value card", NewCard(King, Spades), "King of Spades"},
	}

	for _, c := range cases {
		utils.AssertEqual(t, c.card.String(), c.expected)
	}

	t.Run("Out of range (should panic)", func(t *testing.T) {
		assert.Panics(t, func() { NewCard(King+1, Hearts) })
		assert.Panics(t, func() { NewCard(Four, Spades+1) })
		assert.Panics(t, func() { NewCard(NullRank, Clubs) })
	})

	t.Run("cards compare by value", func(t *testing.T) {
		a := NewCard(Seven, Diamonds)
		b := Card{Rank: Seven, Suit: Diamonds}
		utils.AssertEqual(t, a, b)

		seen := map[Card]bool{a: true}
		utils.AssertTrue(t, seen[b])
	})
}

func TestParseCard(t *testing.T) {
	t.Run("ace of spades", func(t *testing.T) {
		c, err := ParseCard("As")
		utils.AssertNoError(t, err)
		assert.Equal(t, Ace, c.Rank)
		assert.Equal(t, Spades, c.Suit)
		assert.Equal(t, "As", c.Shorthand())
	})

	t.Run("ten uses a letter", func(t *testing.T) {
		c, err := ParseCard("Td")
		utils.AssertNoError(t, err)
		assert.Equal(t, NewCard(Ten, Diamonds), c)

		_, err = ParseCard("10d")
		utils.AssertErrored(t, err)
	})

	t.Run("is case-insensitive", func(t *testing.T) {
		c, err := ParseCard("qH")
		utils.AssertNoError(t, err)
		assert.Equal(t, NewCard(Queen, Hearts), c)
		assert.Equal(t, "Qh", c.Shorthand())
	})

	t.Run("rejects bad input", func(t *testing.T) {
		for _, in := range []string{"", "A", "Asx", "Xs", "Ax", "0c", "1", "??"} {
			_, err := ParseCard(in)
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Errorf("%q: expected a ParseError, got %v", in, err)
			}
		}
	})

	t.Run("round trips the full deck", func(t *testing.T) {
		for _, c := range New() {
			got, err := ParseCard(c.Shorthand())
			require.NoError(t, err)
			assert.Equal(t, c, got)
		}
	})
}

func TestParseRank(t *testing.T) {
	tt := []struct {
		in   string
		want Rank
	}{
		{"ace", Ace},
		{"KING", King},
		{"Seven", Seven},
		{"1", Ace},
		{"7", Seven},
		{"10", Ten},
		{"13", King},
		{"a", Ace},
		{"t", Ten},
		{"J", Jack},
		{"q", Queen},
		{"K", King},
	}

	for _, tc := range tt {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseRank(tc.in)
			utils.AssertNoError(t, err)
			utils.AssertEqual(t, got, tc.want)
		})
	}

	for _, in := range []string{"0", "14", "-2", "X", "S", "jacks", ""} {
		_, err := ParseRank(in)
		utils.AssertErrored(t, err)
	}
}

func TestParseSuit(t *testing.T) {
	tt := []struct {
		in   string
		want Suit
	}{
		{"clubs", Clubs},
		{"SPADES", Spades},
		{"Diamonds", Diamonds},
		{"h", Hearts},
		{"C", Clubs},
		{"s", Spades},
	}

	for _, tc := range tt {
		got, err := ParseSuit(tc.in)
		utils.AssertNoError(t, err)
		utils.AssertEqual(t, got, tc.want)
	}

	_, err := ParseSuit("x")
	utils.AssertErrored(t, err)
	_, err = ParseSuit("club")
	utils.AssertErrored(t, err)
}

func TestShorthand(t *testing.T) {
	assert.Equal(t, "Ac", NewCard(Ace, Clubs).Shorthand())
	assert.Equal(t, "4d", NewCard(Four, Diamonds).Shorthand())
	assert.Equal(t, "Th", NewCard(Ten, Hearts).Shorthand())
	assert.Equal(t, "Ks", NewCard(King, Spades).Shorthand())
}

func TestImageName(t *testing.T) {
	tt := []struct {
		card Card
		want string
	}{
		{NewCard(Seven, Hearts), "7_of_hearts"},
		{NewCard(King, Spades), "king_of_spades"},
		{NewCard(Ace, Clubs), "ace_of_clubs"},
		{NewCard(Ten, Diamonds), "10_of_diamonds"},
		{NewCard(Two, Clubs), "2_of_clubs"},
		{Card{}, HiddenImageName},
	}

	for _, tc := range tt {
		utils.AssertEqual(t, tc.card.ImageName(), tc.want)
	}
}
