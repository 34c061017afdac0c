package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/minaorangina/beggar/deck"
	"github.com/minaorangina/beggar/engine"
	"github.com/minaorangina/beggar/game"
	utils "github.com/minaorangina/beggar/internal"
	"github.com/minaorangina/beggar/results"
	"github.com/minaorangina/beggar/store"
	"github.com/stretchr/testify/require"
)

func mustMakeJson(t *testing.T, input interface{}) []byte {
	t.Helper()

	data, err := json.Marshal(input)
	utils.AssertNoError(t, err)

	return data
}

func newCreateGameRequest(data []byte) *http.Request {
	request, _ := http.NewRequest(http.MethodPost, "/new", bytes.NewBuffer(data))
	return request
}

func newGetGameRequest(gameID string) *http.Request {
	request, _ := http.NewRequest(http.MethodGet, "/game/"+gameID, nil)
	return request
}

func newAdvanceRequest(gameID string) *http.Request {
	request, _ := http.NewRequest(http.MethodPost, "/game/"+gameID+"/advance", nil)
	return request
}

func newGetRequest(path string) *http.Request {
	request, _ := http.NewRequest(http.MethodGet, path, nil)
	return request
}

func assertStatus(t *testing.T, got, want int) {
	t.Helper()
	if got != want {
		t.Errorf("got status %d, want %d", got, want)
	}
}

func decodeBody(t *testing.T, response *httptest.ResponseRecorder, into interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(response.Body.Bytes(), into))
}

// shortGameEngine finishes on its fourth tick with player 0 as the winner
func shortGameEngine(t *testing.T, id string, ledger results.Ledger) engine.GameEngine {
	t.Helper()

	g, err := game.ExistingGame(game.ExistingOpts{
		NumPlayers: 2,
		Hands: map[int][]deck.Card{
			0: deck.MustParseCards("2c 3c 4c"),
			1: deck.MustParseCards("5d Jd"),
		},
	})
	require.NoError(t, err)

	opts := engine.GameEngineOpts{GameID: id, Game: g}
	if ledger != nil {
		opts.Recorder = ledger
	}
	ge, err := engine.NewGameEngine(opts)
	require.NoError(t, err)
	return ge
}

func newTestServer(t *testing.T, ledger results.Ledger, games ...engine.GameEngine) (*GameServer, *store.InMemoryGameStore) {
	t.Helper()

	s := store.NewInMemoryGameStore()
	for _, ge := range games {
		require.NoError(t, s.AddGame(ge))
	}
	server := NewServer(ServerOpts{Store: s, Ledger: ledger})
	t.Cleanup(server.StopAutoplay)

	return server, s
}
