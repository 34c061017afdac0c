package display

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/minaorangina/beggar/deck"
	"github.com/minaorangina/beggar/game"
	"github.com/pterm/pterm"
)

const (
	welcomeText  = "Beggar-Your-Neighbour: %d players, %d cards each (give or take).\n"
	promptText   = "\nPress Enter to play the next card (q to quit): "
	handText     = "%s: %d %s face down\n"
	emptyPile    = "Centre pile: empty\n"
	pileText     = "Centre pile: %d %s, top card %s [%s]\n"
	penaltyText  = "%s must play %d more %s before %s collects\n"
	collectText  = "%s collects the centre pile next\n"
	nextText     = "Next to play: %s\n"
	gameOverText = "\n%s wins after %d ticks!\n"
)

var suitSymbols = map[deck.Suit]string{
	deck.Clubs:    "♣",
	deck.Diamonds: "♦",
	deck.Hearts:   "♥",
	deck.Spades:   "♠",
}

func SendText(w io.Writer, text string, a ...interface{}) {
	fmt.Fprintf(w, text, a...)
}

// ImageFile returns the image file for a card, or the card back for nil
func ImageFile(card *deck.Card) string {
	if card == nil {
		return deck.HiddenImageName + ".png"
	}
	return card.ImageName() + ".png"
}

// ImagePath joins ImageFile onto an image directory
func ImagePath(dir string, card *deck.Card) string {
	return filepath.Join(dir, ImageFile(card))
}

// PlayerView is the view state kept for one player
type PlayerView struct {
	ID       int
	Name     string
	LastSize int
}

// TableView renders one game as text. It only reads from the game.
type TableView struct {
	out     io.Writer
	game    *game.Game
	players []PlayerView
	colour  bool
}

// NewTableView constructs a view of g writing to out
func NewTableView(out io.Writer, g *game.Game, colour bool) *TableView {
	players := make([]PlayerView, g.NumPlayers())
	for i := range players {
		size, _ := g.HandSize(i)
		players[i] = PlayerView{ID: i, Name: fmt.Sprintf("Player %d", i+1), LastSize: size}
	}
	return &TableView{out: out, game: g, players: players, colour: colour}
}

// Players returns the per-player view state
func (v *TableView) Players() []PlayerView {
	return append([]PlayerView{}, v.players...)
}

func (v *TableView) Welcome() {
	SendText(v.out, welcomeText, v.game.NumPlayers(), deck.Size/v.game.NumPlayers())
}

func (v *TableView) Prompt() {
	SendText(v.out, promptText)
}

// Render writes the current table: hand counts, the top of the centre pile
// and whose turn it is, or the winner once the game is over
func (v *TableView) Render() {
	for i := range v.players {
		size, _ := v.game.HandSize(i)
		v.players[i].LastSize = size
		SendText(v.out, handText, v.players[i].Name, size, plural(size, "card", "cards"))
	}

	if top, ok := v.game.TopOfCentrePile(); ok {
		n := v.game.CentrePileSize()
		SendText(v.out, pileText, n, plural(n, "card", "cards"), v.cardText(top), top.Shorthand())
	} else {
		SendText(v.out, emptyPile)
	}

	if winner, ok := v.game.Winner(); ok {
		SendText(v.out, gameOverText, v.players[winner].Name, v.game.Ticks())
		return
	}

	next := v.players[v.game.NextPlayer()].Name
	if n, ok := v.game.PendingPenalty(); ok {
		if n == 0 {
			SendText(v.out, collectText, next)
			return
		}
		owner, _ := v.game.PenaltyOwner()
		SendText(v.out, penaltyText, next, n, plural(n, "card", "cards"), v.players[owner].Name)
		return
	}
	SendText(v.out, nextText, next)
}

func (v *TableView) cardText(c deck.Card) string {
	symbol := suitSymbols[c.Suit]
	if !v.colour {
		return c.Rank.String() + " " + symbol
	}
	if c.Suit == deck.Hearts || c.Suit == deck.Diamonds {
		return pterm.LightRed(c.Rank.String() + " " + symbol)
	}
	return pterm.Bold.Sprint(c.Rank.String() + " " + symbol)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
