package results

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	utils "github.com/minaorangina/beggar/internal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func someResult(id string, winner int, finishedAt time.Time) Result {
	return Result{
		GameID:     id,
		Variant:    "turn-passes-on-special",
		NumPlayers: 2,
		Winner:     winner,
		Ticks:      1234,
		FinishedAt: finishedAt,
	}
}

func ledgers(t *testing.T) map[string]Ledger {
	t.Helper()

	sqlite, err := NewSQLiteLedger(filepath.Join(t.TempDir(), "results", "test.db"))
	require.NoError(t, err)

	ls := map[string]Ledger{
		"memory": NewMemoryLedger(),
		"sqlite": sqlite,
	}

	if dsn := os.Getenv("BEGGAR_TEST_POSTGRES_DSN"); dsn != "" {
		pg, err := NewPostgresLedger(dsn)
		require.NoError(t, err)
		ls["postgres"] = pg
	}

	t.Cleanup(func() {
		for _, l := range ls {
			l.Close()
		}
	})
	return ls
}

func TestLedger(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

	for name, l := range ledgers(t) {
		t.Run(name, func(t *testing.T) {
			t.Run("records and lists most recent first", func(t *testing.T) {
				utils.AssertNoError(t, l.Record(ctx, someResult(name+"-a", 0, base)))
				utils.AssertNoError(t, l.Record(ctx, someResult(name+"-b", 1, base.Add(time.Minute))))
				utils.AssertNoError(t, l.Record(ctx, someResult(name+"-c", 1, base.Add(2*time.Minute))))

				recent, err := l.Recent(ctx, 2)
				utils.AssertNoError(t, err)
				require.Len(t, recent, 2)
				utils.AssertEqual(t, recent[0].GameID, name+"-c")
				utils.AssertEqual(t, recent[1].GameID, name+"-b")
				assert.True(t, recent[0].FinishedAt.Equal(base.Add(2*time.Minute)))
				utils.AssertEqual(t, recent[0].Ticks, 1234)

				all, err := l.Recent(ctx, 0)
				utils.AssertNoError(t, err)
				assert.Len(t, all, 3)
			})

			t.Run("counts wins", func(t *testing.T) {
				wins, err := l.Wins(ctx, 1)
				utils.AssertNoError(t, err)
				utils.AssertEqual(t, wins, 2)

				wins, err = l.Wins(ctx, 5)
				utils.AssertNoError(t, err)
				utils.AssertEqual(t, wins, 0)
			})

			t.Run("rejects a second result for the same game", func(t *testing.T) {
				err := l.Record(ctx, someResult(name+"-a", 1, base))
				assert.ErrorIs(t, err, ErrDuplicateResult)
			})

			t.Run("rejects invalid results", func(t *testing.T) {
				assert.ErrorIs(t, l.Record(ctx, someResult("", 0, base)), ErrInvalidResult)
				assert.ErrorIs(t, l.Record(ctx, someResult(name+"-x", 2, base)), ErrInvalidResult)
			})
		})
	}
}

func TestNewLedger(t *testing.T) {
	l, err := NewLedger("memory", "", "")
	utils.AssertNoError(t, err)
	assert.IsType(t, &MemoryLedger{}, l)

	l, err = NewLedger("", filepath.Join(t.TempDir(), "beggar.db"), "")
	utils.AssertNoError(t, err)
	assert.IsType(t, &sqlLedger{}, l)
	l.Close()

	_, err = NewLedger("postgres", "", "")
	utils.AssertErrored(t, err)

	_, err = NewLedger("redis", "", "")
	utils.AssertErrored(t, err)
}

func TestNumberPlaceholders(t *testing.T) {
	got := numberPlaceholders(`SELECT a FROM t WHERE b = ? AND c = ?`)
	utils.AssertEqual(t, got, `SELECT a FROM t WHERE b = $1 AND c = $2`)
}
