package store

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/minaorangina/beggar/engine"
)

var (
	ErrUnknownGameID   = errors.New("unknown game ID")
	ErrDuplicateGameID = errors.New("game ID already exists")
)

type GameStore interface {
	FindGame(gameID string) engine.GameEngine
	AddGame(game engine.GameEngine) error
	RemoveGame(gameID string) error
	Games() []engine.GameEngine
}

// InMemoryGameStore maps game id to game engine
type InMemoryGameStore struct {
	mu    sync.RWMutex
	games map[string]engine.GameEngine
}

// NewInMemoryGameStore constructs an InMemoryGameStore
func NewInMemoryGameStore() *InMemoryGameStore {
	return &InMemoryGameStore{
		games: map[string]engine.GameEngine{},
	}
}

func (s *InMemoryGameStore) FindGame(gameID string) engine.GameEngine {
	s.mu.RLock()
	defer s.mu.RUnlock()

	game, ok := s.games[gameID]
	if !ok {
		return nil
	}
	return game
}

func (s *InMemoryGameStore) AddGame(game engine.GameEngine) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.games[game.ID()]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateGameID, game.ID())
	}
	s.games[game.ID()] = game
	return nil
}

func (s *InMemoryGameStore) RemoveGame(gameID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.games[gameID]; !exists {
		return fmt.Errorf("%w: %s", ErrUnknownGameID, gameID)
	}
	delete(s.games, gameID)
	return nil
}

// Games lists every game, oldest first
func (s *InMemoryGameStore) Games() []engine.GameEngine {
	s.mu.RLock()
	defer s.mu.RUnlock()

	games := make([]engine.GameEngine, 0, len(s.games))
	for _, g := range s.games {
		games = append(games, g)
	}
	sort.Slice(games, func(i, j int) bool {
		if games[i].CreatedAt().Equal(games[j].CreatedAt()) {
			return games[i].ID() < games[j].ID()
		}
		return games[i].CreatedAt().Before(games[j].CreatedAt())
	})
	return games
}
