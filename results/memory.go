package results

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryLedger keeps results for the life of the process
type MemoryLedger struct {
	mu      sync.RWMutex
	results map[string]Result
}

func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{results: map[string]Result{}}
}

func (l *MemoryLedger) Record(ctx context.Context, r Result) error {
	if err := r.validate(); err != nil {
		return err
	}
	r.FinishedAt = r.FinishedAt.UTC().Truncate(time.Millisecond)

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, exists := l.results[r.GameID]; exists {
		return ErrDuplicateResult
	}
	l.results[r.GameID] = r
	return nil
}

func (l *MemoryLedger) Recent(ctx context.Context, limit int) ([]Result, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	all := make([]Result, 0, len(l.results))
	for _, r := range l.results {
		all = append(all, r)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].FinishedAt.Equal(all[j].FinishedAt) {
			return all[i].GameID < all[j].GameID
		}
		return all[i].FinishedAt.After(all[j].FinishedAt)
	})

	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (l *MemoryLedger) Wins(ctx context.Context, player int) (int, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	wins := 0
	for _, r := range l.results {
		if r.Winner == player {
			wins++
		}
	}
	return wins, nil
}

func (l *MemoryLedger) Close() error {
	return nil
}
