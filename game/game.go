package game

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/minaorangina/beggar/deck"
)

var (
	ErrInvalidPlayerCount = errors.New("number of players must be between 1 and 52")
	ErrInvalidPlayer      = errors.New("invalid player")
	ErrInvalidGameState   = errors.New("invalid game state")
	ErrGameOver           = errors.New("game is already over")
	ErrTickLimit          = errors.New("tick limit reached before the game finished")
)

const (
	minPlayers = 1
	maxPlayers = deck.Size
)

// Game is one game of Beggar-Your-Neighbour.
// The front of each hand is the next card to be played.
// A Game is not safe for concurrent use.
type Game struct {
	numPlayers     int
	hands          map[int][]deck.Card // only players still holding cards
	centrePile     []deck.Card         // most recent card last
	pendingPenalty *int
	penaltyOwner   int
	nextPlayer     int
	terminalPlayer *int
	ticks          int
}

// GameOpts configures a new game. The zero value deals a freshly shuffled deck.
type GameOpts struct {
	// Rand drives the shuffle. Defaults to a time-seeded source.
	Rand *rand.Rand
	// Deck, if set, is dealt as given without shuffling. It must be a full deck.
	Deck deck.Deck
}

// ExistingOpts describes a game part way through play
type ExistingOpts struct {
	NumPlayers     int
	Hands          map[int][]deck.Card
	CentrePile     []deck.Card
	PendingPenalty *int
	PenaltyOwner   int
	NextPlayer     int
}

// NewGame shuffles a deck and deals it round-robin, starting with player 0
func NewGame(numPlayers int, opts GameOpts) (*Game, error) {
	if numPlayers < minPlayers || numPlayers > maxPlayers {
		return nil, ErrInvalidPlayerCount
	}

	d := opts.Deck
	if d == nil {
		rng := opts.Rand
		if rng == nil {
			rng = rand.New(rand.NewSource(time.Now().UnixNano()))
		}
		d = deck.New()
		d.Shuffle(rng)
	} else {
		if len(d) != deck.Size || !cardsUnique(d) {
			return nil, fmt.Errorf("%w: not a full deck", ErrInvalidGameState)
		}
		d = append(deck.Deck{}, d...)
	}

	g := &Game{
		numPlayers: numPlayers,
		hands:      map[int][]deck.Card{},
		centrePile: []deck.Card{},
	}

	// initial card deal
	playerIdx := 0
	for len(d) > 0 {
		c, _ := d.Pop()
		g.hands[playerIdx] = append(g.hands[playerIdx], c)
		playerIdx = (playerIdx + 1) % numPlayers
	}

	return g, nil
}

// ExistingGame reconstructs a game in progress
func ExistingGame(opts ExistingOpts) (*Game, error) {
	if opts.NumPlayers < minPlayers || opts.NumPlayers > maxPlayers {
		return nil, ErrInvalidPlayerCount
	}
	if opts.NextPlayer < 0 || opts.NextPlayer >= opts.NumPlayers {
		return nil, fmt.Errorf("%w: next player %d", ErrInvalidPlayer, opts.NextPlayer)
	}

	g := &Game{
		numPlayers:   opts.NumPlayers,
		hands:        map[int][]deck.Card{},
		centrePile:   append([]deck.Card{}, opts.CentrePile...),
		penaltyOwner: opts.PenaltyOwner,
		nextPlayer:   opts.NextPlayer,
	}

	all := append([]deck.Card{}, opts.CentrePile...)
	for id, hand := range opts.Hands {
		if id < 0 || id >= opts.NumPlayers {
			return nil, fmt.Errorf("%w: hand for player %d", ErrInvalidPlayer, id)
		}
		if len(hand) > 0 {
			g.hands[id] = append([]deck.Card{}, hand...)
			all = append(all, hand...)
		}
	}
	if !cardsUnique(all) {
		return nil, fmt.Errorf("%w: duplicate cards", ErrInvalidGameState)
	}

	if opts.PendingPenalty != nil {
		n := *opts.PendingPenalty
		if n < 0 || n > maxPenalty {
			return nil, fmt.Errorf("%w: penalty count %d", ErrInvalidGameState, n)
		}
		if opts.PenaltyOwner < 0 || opts.PenaltyOwner >= opts.NumPlayers {
			return nil, fmt.Errorf("%w: penalty owner %d", ErrInvalidPlayer, opts.PenaltyOwner)
		}
		if len(g.centrePile) == 0 {
			return nil, fmt.Errorf("%w: penalty pending on an empty pile", ErrInvalidGameState)
		}
		g.pendingPenalty = &n
	}

	if !g.collectionDue() && !g.isRemaining(g.nextPlayer) {
		return nil, fmt.Errorf("%w: player %d has no cards to play", ErrInvalidGameState, g.nextPlayer)
	}

	return g, nil
}

// Advance performs one tick of the game: either the next player collects the
// centre pile, or they play the front card of their hand onto it.
func (g *Game) Advance() error {
	if g.terminalPlayer != nil {
		return ErrGameOver
	}
	g.ticks++

	if g.collectionDue() {
		g.collect()
		return nil
	}

	player := g.nextPlayer
	card := g.play(player)

	if g.checkForGameOver() {
		return nil
	}

	if penalty, special := Penalty(card.Rank); special {
		g.pendingPenalty = &penalty
		g.penaltyOwner = player
		g.updateNextPlayer()
		return nil
	}

	if g.pendingPenalty == nil {
		g.updateNextPlayer()
		return nil
	}

	remaining := *g.pendingPenalty - 1
	if !g.isRemaining(player) {
		// the payer ran out part way through the penalty
		remaining = 0
	}
	g.pendingPenalty = &remaining

	if remaining == 0 {
		g.handToPenaltyOwner()
	}

	return nil
}

func (g *Game) collectionDue() bool {
	return g.pendingPenalty != nil && *g.pendingPenalty == 0
}

// collect moves the whole centre pile, in order, to the back of the next player's hand
func (g *Game) collect() {
	g.hands[g.nextPlayer] = append(g.hands[g.nextPlayer], g.centrePile...)
	g.centrePile = []deck.Card{}
	g.pendingPenalty = nil
}

func (g *Game) play(player int) deck.Card {
	hand := g.hands[player]
	if len(hand) == 0 {
		panic(fmt.Sprintf("player %d is due to play but has no cards", player))
	}

	card := hand[0]
	g.centrePile = append(g.centrePile, card)

	if len(hand) == 1 {
		delete(g.hands, player)
	} else {
		g.hands[player] = hand[1:]
	}

	return card
}

// handToPenaltyOwner gives the turn to whoever played the special card so they
// collect on the next tick. If they are out, the current player keeps the turn,
// and if the current player is out too, the turn moves on.
func (g *Game) handToPenaltyOwner() {
	switch {
	case g.isRemaining(g.penaltyOwner):
		g.nextPlayer = g.penaltyOwner
	case g.isRemaining(g.nextPlayer):
	default:
		g.updateNextPlayer()
	}
}

// updateNextPlayer moves the turn to the next player still holding cards
func (g *Game) updateNextPlayer() {
	if g.checkForGameOver() {
		return
	}

	next := g.nextPlayer
	for {
		next = (next + 1) % g.numPlayers
		if g.isRemaining(next) {
			break
		}
	}
	g.nextPlayer = next
}

func (g *Game) checkForGameOver() bool {
	if g.terminalPlayer != nil {
		return true
	}
	remaining := g.RemainingPlayers()
	if len(remaining) == 1 {
		winner := remaining[0]
		g.terminalPlayer = &winner
		return true
	}
	return false
}

func (g *Game) isRemaining(player int) bool {
	return len(g.hands[player]) > 0
}

// RemainingPlayers returns the players still holding cards, in ascending order
func (g *Game) RemainingPlayers() []int {
	remaining := make([]int, 0, len(g.hands))
	for id, hand := range g.hands {
		if len(hand) > 0 {
			remaining = append(remaining, id)
		}
	}
	sort.Ints(remaining)
	return remaining
}

// HandSize returns the number of cards a player holds
func (g *Game) HandSize(player int) (int, error) {
	if player < 0 || player >= g.numPlayers {
		return 0, fmt.Errorf("%w: %d", ErrInvalidPlayer, player)
	}
	return len(g.hands[player]), nil
}

// TopOfCentrePile returns the most recently played card, if any
func (g *Game) TopOfCentrePile() (deck.Card, bool) {
	if len(g.centrePile) == 0 {
		return deck.Card{}, false
	}
	return g.centrePile[len(g.centrePile)-1], true
}

func (g *Game) CentrePileSize() int {
	return len(g.centrePile)
}

// CentrePile returns a copy of the centre pile, most recent card last
func (g *Game) CentrePile() []deck.Card {
	return append([]deck.Card{}, g.centrePile...)
}

func (g *Game) IsFinished() bool {
	return g.terminalPlayer != nil
}

func (g *Game) State() State {
	if g.IsFinished() {
		return Finished
	}
	return InProgress
}

// TerminalPlayer returns the last player holding cards once the game is over.
// Under these rules that player is the winner.
func (g *Game) TerminalPlayer() (int, bool) {
	if g.terminalPlayer == nil {
		return 0, false
	}
	return *g.terminalPlayer, true
}

// Winner is an alias for TerminalPlayer
func (g *Game) Winner() (int, bool) {
	return g.TerminalPlayer()
}

// PendingPenalty returns how many more plain cards must be played before the
// centre pile is collected. ok is false when no penalty is running.
func (g *Game) PendingPenalty() (int, bool) {
	if g.pendingPenalty == nil {
		return 0, false
	}
	return *g.pendingPenalty, true
}

// PenaltyOwner returns the player who played the special card being paid for
func (g *Game) PenaltyOwner() (int, bool) {
	if g.pendingPenalty == nil {
		return 0, false
	}
	return g.penaltyOwner, true
}

func (g *Game) NextPlayer() int {
	return g.nextPlayer
}

func (g *Game) NumPlayers() int {
	return g.numPlayers
}

// Ticks returns the number of successful Advance calls
func (g *Game) Ticks() int {
	return g.ticks
}

// CardCount returns the number of cards in play across hands and the centre pile
func (g *Game) CardCount() int {
	n := len(g.centrePile)
	for _, hand := range g.hands {
		n += len(hand)
	}
	return n
}

// Simulate advances the game until it finishes or maxTicks more ticks have
// been played. A non-positive maxTicks means no limit.
func Simulate(g *Game, maxTicks int) error {
	for i := 0; maxTicks <= 0 || i < maxTicks; i++ {
		if g.IsFinished() {
			return nil
		}
		if err := g.Advance(); err != nil {
			return err
		}
	}
	if g.IsFinished() {
		return nil
	}
	return ErrTickLimit
}
