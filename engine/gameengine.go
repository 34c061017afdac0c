package engine

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/minaorangina/beggar/game"
	"github.com/minaorangina/beggar/protocol"
	"github.com/minaorangina/beggar/results"
	uuid "github.com/satori/go.uuid"
	"go.uber.org/zap"
)

const (
	subscriberBuffer = 16
	recordTimeout    = 5 * time.Second
)

var ErrMissingGameID = errors.New("game id is required")

// NewID constructs a game ID
func NewID() string {
	return uuid.NewV4().String()
}

// Recorder is told about each game once it finishes
type Recorder interface {
	Record(ctx context.Context, r results.Result) error
}

// GameEngine owns one game and serialises every call made to it
type GameEngine interface {
	ID() string
	CreatedAt() time.Time
	Advance() (protocol.GameState, error)
	State() protocol.GameState
	Finished() bool
	Subscribe() (<-chan protocol.OutboundMessage, func())
	Autoplay(ctx context.Context, interval time.Duration) error
}

type gameEngine struct {
	mu          sync.Mutex
	id          string
	createdAt   time.Time
	game        *game.Game
	maxTicks    int
	recorder    Recorder
	recorded    bool
	logger      *zap.Logger
	subscribers map[int]chan protocol.OutboundMessage
	nextSubID   int
}

type GameEngineOpts struct {
	GameID     string
	NumPlayers int
	Rand       *rand.Rand
	// Game, if set, is used instead of dealing a new one
	Game     *game.Game
	MaxTicks int
	Recorder Recorder
	Logger   *zap.Logger
}

// NewGameEngine constructs a new GameEngine
func NewGameEngine(opts GameEngineOpts) (*gameEngine, error) {
	if opts.GameID == "" {
		return nil, ErrMissingGameID
	}

	g := opts.Game
	if g == nil {
		var err error
		g, err = game.NewGame(opts.NumPlayers, game.GameOpts{Rand: opts.Rand})
		if err != nil {
			return nil, err
		}
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	engine := &gameEngine{
		id:          opts.GameID,
		createdAt:   time.Now().UTC(),
		game:        g,
		maxTicks:    opts.MaxTicks,
		recorder:    opts.Recorder,
		logger:      logger.With(zap.String("game_id", opts.GameID)),
		subscribers: map[int]chan protocol.OutboundMessage{},
	}

	engine.logger.Info("game created",
		zap.Int("players", g.NumPlayers()),
		zap.String("variant", game.Variant),
	)

	return engine, nil
}

func (ge *gameEngine) ID() string {
	return ge.id
}

func (ge *gameEngine) CreatedAt() time.Time {
	return ge.createdAt
}

// Advance plays one tick and returns the state that follows it
func (ge *gameEngine) Advance() (protocol.GameState, error) {
	ge.mu.Lock()
	defer ge.mu.Unlock()

	if !ge.game.IsFinished() && ge.maxTicks > 0 && ge.game.Ticks() >= ge.maxTicks {
		return buildGameState(ge.id, ge.game), game.ErrTickLimit
	}

	if err := ge.game.Advance(); err != nil {
		return buildGameState(ge.id, ge.game), err
	}

	state := buildGameState(ge.id, ge.game)

	if ge.game.IsFinished() {
		ge.finish(state)
		ge.broadcast(protocol.OutboundMessage{Command: protocol.GameOver, State: state})
		return state, nil
	}

	ge.broadcast(protocol.OutboundMessage{Command: protocol.Snapshot, State: state})
	return state, nil
}

// finish records the result once. Must be called with the lock held.
func (ge *gameEngine) finish(state protocol.GameState) {
	if ge.recorded {
		return
	}
	ge.recorded = true

	winner, _ := ge.game.Winner()
	ge.logger.Info("game finished",
		zap.Int("winner", winner),
		zap.Int("ticks", state.Ticks),
	)

	if ge.recorder == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
	defer cancel()
	err := ge.recorder.Record(ctx, results.Result{
		GameID:     ge.id,
		Variant:    game.Variant,
		NumPlayers: ge.game.NumPlayers(),
		Winner:     winner,
		Ticks:      ge.game.Ticks(),
		FinishedAt: time.Now().UTC(),
	})
	if err != nil {
		ge.logger.Error("could not record result", zap.Error(err))
	}
}

func (ge *gameEngine) State() protocol.GameState {
	ge.mu.Lock()
	defer ge.mu.Unlock()
	return buildGameState(ge.id, ge.game)
}

func (ge *gameEngine) Finished() bool {
	ge.mu.Lock()
	defer ge.mu.Unlock()
	return ge.game.IsFinished()
}

// Subscribe returns a channel receiving a message after every tick, and a
// function to stop receiving. Slow subscribers miss messages rather than
// holding up the game.
func (ge *gameEngine) Subscribe() (<-chan protocol.OutboundMessage, func()) {
	ge.mu.Lock()
	defer ge.mu.Unlock()

	id := ge.nextSubID
	ge.nextSubID++
	ch := make(chan protocol.OutboundMessage, subscriberBuffer)
	ge.subscribers[id] = ch

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			ge.mu.Lock()
			defer ge.mu.Unlock()
			delete(ge.subscribers, id)
			close(ch)
		})
	}

	return ch, unsubscribe
}

func (ge *gameEngine) broadcast(msg protocol.OutboundMessage) {
	for id, ch := range ge.subscribers {
		select {
		case ch <- msg:
		default:
			ge.logger.Warn("dropping message for slow subscriber", zap.Int("subscriber", id))
		}
	}
}

// Autoplay advances the game every interval until it finishes, the tick
// limit is reached or ctx is cancelled
func (ge *gameEngine) Autoplay(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if ge.Finished() {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if _, err := ge.Advance(); err != nil {
				if errors.Is(err, game.ErrGameOver) {
					return nil
				}
				return err
			}
		}
	}
}
