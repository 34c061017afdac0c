package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/handlers"
	"github.com/minaorangina/beggar/engine"
	"github.com/minaorangina/beggar/game"
	"github.com/minaorangina/beggar/protocol"
	"github.com/minaorangina/beggar/results"
	"github.com/minaorangina/beggar/store"
	"go.uber.org/zap"
)

const defaultResultsLimit = 20

type NewGameReq struct {
	NumPlayers int    `json:"numPlayers"`
	Seed       *int64 `json:"seed,omitempty"`
	Autoplay   bool   `json:"autoplay"`
}

type NewGameRes struct {
	GameID string             `json:"gameID"`
	State  protocol.GameState `json:"state"`
}

type GetGamesRes struct {
	Games []protocol.GameState `json:"games"`
}

type GetResultsRes struct {
	Results []results.Result `json:"results"`
}

type GetWinsRes struct {
	Player int `json:"player"`
	Wins   int `json:"wins"`
}

type ServerOpts struct {
	Store            store.GameStore
	Ledger           results.Ledger
	Logger           *zap.Logger
	DefaultPlayers   int
	MaxTicks         int
	AutoplayInterval time.Duration
}

// GameServer is a game server
type GameServer struct {
	store            store.GameStore
	ledger           results.Ledger
	logger           *zap.Logger
	defaultPlayers   int
	maxTicks         int
	autoplayInterval time.Duration
	ctx              context.Context
	cancel           context.CancelFunc
	http.Server
}

func unknownGameIDMsg(unknownID string) string {
	return fmt.Sprintf("unknown game ID '%s'", unknownID)
}

// NewServer creates a new GameServer
func NewServer(opts ServerOpts) *GameServer {
	s := &GameServer{
		store:            opts.Store,
		ledger:           opts.Ledger,
		logger:           opts.Logger,
		defaultPlayers:   opts.DefaultPlayers,
		maxTicks:         opts.MaxTicks,
		autoplayInterval: opts.AutoplayInterval,
	}
	if s.store == nil {
		s.store = store.NewInMemoryGameStore()
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.defaultPlayers == 0 {
		s.defaultPlayers = 2
	}
	if s.autoplayInterval <= 0 {
		s.autoplayInterval = 250 * time.Millisecond
	}
	s.ctx, s.cancel = context.WithCancel(context.Background())

	router := http.NewServeMux()
	router.Handle("/health", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	}))
	router.Handle("/new", http.HandlerFunc(s.HandleNewGame))
	router.Handle("/games", http.HandlerFunc(s.HandleListGames))
	router.Handle("/game/", http.HandlerFunc(s.HandleGame))
	router.Handle("/results", http.HandlerFunc(s.HandleResults))
	router.Handle("/ws", http.HandlerFunc(s.HandleWS))

	s.Handler = handlers.RecoveryHandler(
		handlers.RecoveryLogger(zap.NewStdLog(s.logger)),
	)(handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)(router))

	return s
}

// ServeHTTP serves http
func (g *GameServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	g.Handler.ServeHTTP(w, r)
}

// StopAutoplay stops any games being autoplayed
func (g *GameServer) StopAutoplay() {
	g.cancel()
}

// HandleNewGame handles a request to create a new game
func (g *GameServer) HandleNewGame(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	var data NewGameReq
	err := json.NewDecoder(r.Body).Decode(&data)
	defer r.Body.Close()
	if err != nil && err != io.EOF {
		writeParseError(g.logger, err, w)
		return
	}

	if data.NumPlayers == 0 {
		data.NumPlayers = g.defaultPlayers
	}

	opts := engine.GameEngineOpts{
		GameID:     engine.NewID(),
		NumPlayers: data.NumPlayers,
		MaxTicks:   g.maxTicks,
		Logger:     g.logger,
	}
	if g.ledger != nil {
		opts.Recorder = g.ledger
	}
	if data.Seed != nil {
		opts.Rand = rand.New(rand.NewSource(*data.Seed))
	}

	ge, err := engine.NewGameEngine(opts)
	if errors.Is(err, game.ErrInvalidPlayerCount) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		g.logger.Error("could not create game", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if err := g.store.AddGame(ge); err != nil {
		g.logger.Error("could not store game", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if data.Autoplay {
		go g.autoplay(ge)
	}

	writeJSON(g.logger, w, http.StatusCreated, NewGameRes{GameID: ge.ID(), State: ge.State()})
}

func (g *GameServer) autoplay(ge engine.GameEngine) {
	err := ge.Autoplay(g.ctx, g.autoplayInterval)
	if err != nil && !errors.Is(err, context.Canceled) {
		g.logger.Warn("autoplay stopped", zap.String("game_id", ge.ID()), zap.Error(err))
	}
}

func (g *GameServer) HandleListGames(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	payload := GetGamesRes{Games: []protocol.GameState{}}
	for _, ge := range g.store.Games() {
		payload.Games = append(payload.Games, ge.State())
	}
	writeJSON(g.logger, w, http.StatusOK, payload)
}

// HandleGame serves GET /game/{id} and POST /game/{id}/advance
func (g *GameServer) HandleGame(w http.ResponseWriter, r *http.Request) {
	path := strings.Trim(strings.TrimPrefix(r.URL.Path, "/game/"), "/")
	parts := strings.Split(path, "/")
	gameID := parts[0]
	if gameID == "" {
		writeError(w, http.StatusBadRequest, "missing game ID")
		return
	}

	ge := g.store.FindGame(gameID)
	if ge == nil {
		writeError(w, http.StatusNotFound, unknownGameIDMsg(gameID))
		return
	}

	switch {
	case len(parts) == 1 && r.Method == http.MethodGet:
		writeJSON(g.logger, w, http.StatusOK, ge.State())

	case len(parts) == 2 && parts[1] == "advance" && r.Method == http.MethodPost:
		state, err := ge.Advance()
		if errors.Is(err, game.ErrGameOver) || errors.Is(err, game.ErrTickLimit) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		if err != nil {
			g.logger.Error("could not advance game", zap.String("game_id", gameID), zap.Error(err))
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		writeJSON(g.logger, w, http.StatusOK, state)

	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

// HandleResults lists recently finished games, or with ?player=n counts
// that player's wins
func (g *GameServer) HandleResults(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if g.ledger == nil {
		writeJSON(g.logger, w, http.StatusOK, GetResultsRes{Results: []results.Result{}})
		return
	}

	if raw := r.URL.Query().Get("player"); raw != "" {
		player, err := strconv.Atoi(raw)
		if err != nil || player < 0 {
			writeError(w, http.StatusBadRequest, "player must be a non-negative integer")
			return
		}
		wins, err := g.ledger.Wins(r.Context(), player)
		if err != nil {
			g.logger.Error("could not count wins", zap.Error(err))
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		writeJSON(g.logger, w, http.StatusOK, GetWinsRes{Player: player, Wins: wins})
		return
	}

	limit := defaultResultsLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	recent, err := g.ledger.Recent(r.Context(), limit)
	if err != nil {
		g.logger.Error("could not read results", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	writeJSON(g.logger, w, http.StatusOK, GetResultsRes{Results: recent})
}

func writeJSON(logger *zap.Logger, w http.ResponseWriter, status int, payload interface{}) {
	bytes, err := json.Marshal(payload)
	if err != nil {
		logger.Error("could not marshal response", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(bytes)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(status)
	w.Write([]byte(msg))
}

func writeParseError(logger *zap.Logger, err error, w http.ResponseWriter) {
	logger.Info("could not parse request", zap.Error(err))
	writeError(w, http.StatusBadRequest, "could not parse request body")
}
