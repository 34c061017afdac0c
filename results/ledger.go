package results

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	ModeMemory   = "memory"
	ModeSQLite   = "sqlite"
	ModePostgres = "postgres"
)

var (
	ErrDuplicateResult = errors.New("result already recorded for this game")
	ErrInvalidResult   = errors.New("invalid result")
)

// Result is the summary of a finished game. It is never enough to resume play.
type Result struct {
	GameID     string    `json:"gameID"`
	Variant    string    `json:"variant"`
	NumPlayers int       `json:"numPlayers"`
	Winner     int       `json:"winner"`
	Ticks      int       `json:"ticks"`
	FinishedAt time.Time `json:"finishedAt"`
}

func (r Result) validate() error {
	if strings.TrimSpace(r.GameID) == "" {
		return fmt.Errorf("%w: missing game id", ErrInvalidResult)
	}
	if r.Winner < 0 || r.Winner >= r.NumPlayers {
		return fmt.Errorf("%w: winner %d of %d players", ErrInvalidResult, r.Winner, r.NumPlayers)
	}
	return nil
}

// Ledger keeps the results of finished games
type Ledger interface {
	Record(ctx context.Context, r Result) error
	Recent(ctx context.Context, limit int) ([]Result, error)
	Wins(ctx context.Context, player int) (int, error)
	Close() error
}

// NewLedger builds the ledger for the given mode
func NewLedger(mode, sqlitePath, postgresDSN string) (Ledger, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case ModeMemory, "mem":
		return NewMemoryLedger(), nil
	case "", ModeSQLite:
		return NewSQLiteLedger(sqlitePath)
	case ModePostgres, "postgresql":
		return NewPostgresLedger(postgresDSN)
	default:
		return nil, fmt.Errorf("invalid ledger mode %q (supported: %s, %s, %s)", mode, ModeMemory, ModeSQLite, ModePostgres)
	}
}
