package results

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// sqlLedger holds the queries shared by the sqlite and postgres backends.
// bind rewrites "?" placeholders for drivers that number them.
type sqlLedger struct {
	db   *sql.DB
	bind func(query string) string
}

const createResultsTable = `
CREATE TABLE IF NOT EXISTS game_results (
    game_id TEXT PRIMARY KEY,
    variant TEXT NOT NULL,
    num_players INTEGER NOT NULL,
    winner INTEGER NOT NULL,
    ticks INTEGER NOT NULL,
    finished_at_ms BIGINT NOT NULL
)`

const createResultsIndex = `CREATE INDEX IF NOT EXISTS idx_game_results_finished_at ON game_results(finished_at_ms)`

func (l *sqlLedger) migrate(ctx context.Context) error {
	for _, stmt := range []string{createResultsTable, createResultsIndex} {
		if _, err := l.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to migrate results: %w", err)
		}
	}
	return nil
}

func (l *sqlLedger) Record(ctx context.Context, r Result) error {
	if err := r.validate(); err != nil {
		return err
	}

	res, err := l.db.ExecContext(ctx, l.bind(`
INSERT INTO game_results (game_id, variant, num_players, winner, ticks, finished_at_ms)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT (game_id) DO NOTHING`),
		r.GameID, r.Variant, r.NumPlayers, r.Winner, r.Ticks, r.FinishedAt.UTC().UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to record result: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrDuplicateResult
	}
	return nil
}

func (l *sqlLedger) Recent(ctx context.Context, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = -1
	}
	query := `
SELECT game_id, variant, num_players, winner, ticks, finished_at_ms
FROM game_results
ORDER BY finished_at_ms DESC, game_id ASC
LIMIT ?`
	args := []interface{}{limit}
	if limit < 0 {
		query = `
SELECT game_id, variant, num_players, winner, ticks, finished_at_ms
FROM game_results
ORDER BY finished_at_ms DESC, game_id ASC`
		args = nil
	}

	rows, err := l.db.QueryContext(ctx, l.bind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query results: %w", err)
	}
	defer rows.Close()

	results := []Result{}
	for rows.Next() {
		var (
			r          Result
			finishedMs int64
		)
		if err := rows.Scan(&r.GameID, &r.Variant, &r.NumPlayers, &r.Winner, &r.Ticks, &finishedMs); err != nil {
			return nil, err
		}
		r.FinishedAt = time.UnixMilli(finishedMs).UTC()
		results = append(results, r)
	}
	return results, rows.Err()
}

func (l *sqlLedger) Wins(ctx context.Context, player int) (int, error) {
	var wins int
	err := l.db.QueryRowContext(ctx, l.bind(`SELECT COUNT(*) FROM game_results WHERE winner = ?`), player).Scan(&wins)
	if err != nil {
		return 0, fmt.Errorf("failed to count wins: %w", err)
	}
	return wins, nil
}

func (l *sqlLedger) Close() error {
	if l == nil || l.db == nil {
		return nil
	}
	return l.db.Close()
}

func noBind(query string) string {
	return query
}
