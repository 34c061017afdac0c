package server

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/minaorangina/beggar/engine"
	"github.com/minaorangina/beggar/protocol"
	"go.uber.org/zap"
)

const repliesBuffer = 4

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandleWS streams a game's state to a websocket client. The client is sent
// a snapshot straight away and after every tick, however the tick was made.
// Clients may send Advance to tick the game or Snapshot to ask for the state.
func (g *GameServer) HandleWS(w http.ResponseWriter, r *http.Request) {
	gameID := r.URL.Query().Get("game_id")
	if gameID == "" {
		writeError(w, http.StatusBadRequest, "missing game ID")
		return
	}

	ge := g.store.FindGame(gameID)
	if ge == nil {
		writeError(w, http.StatusNotFound, unknownGameIDMsg(gameID))
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// the upgrader has already replied
		g.logger.Info("could not upgrade to websocket", zap.Error(err))
		return
	}
	defer conn.Close()

	logger := g.logger.With(zap.String("game_id", gameID), zap.String("remote", r.RemoteAddr))
	logger.Info("websocket connected")

	updates, unsubscribe := ge.Subscribe()
	defer unsubscribe()

	replies := make(chan protocol.OutboundMessage, repliesBuffer)
	done := make(chan struct{})

	go readPump(conn, ge, replies, done, logger)
	writePump(conn, ge, updates, replies, done, logger)

	logger.Info("websocket disconnected")
}

// readPump owns reads from conn. It closes done once the client goes away.
func readPump(conn *websocket.Conn, ge engine.GameEngine, replies chan<- protocol.OutboundMessage, done chan<- struct{}, logger *zap.Logger) {
	defer close(done)

	for {
		var msg protocol.InboundMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Warn("websocket read failed", zap.Error(err))
			}
			return
		}

		var reply *protocol.OutboundMessage
		switch msg.Command {
		case protocol.Advance:
			// a successful tick reaches this client through its subscription
			if state, err := ge.Advance(); err != nil {
				reply = &protocol.OutboundMessage{Command: protocol.Error, State: state, Error: err.Error()}
			}
		case protocol.Snapshot:
			reply = &protocol.OutboundMessage{Command: protocol.Snapshot, State: ge.State()}
		default:
			reply = &protocol.OutboundMessage{
				Command: protocol.Error,
				State:   ge.State(),
				Error:   "unsupported command " + msg.Command.String(),
			}
		}

		if reply == nil {
			continue
		}
		select {
		case replies <- *reply:
		default:
			logger.Warn("dropping reply for slow client")
		}
	}
}

// writePump owns writes to conn
func writePump(conn *websocket.Conn, ge engine.GameEngine, updates <-chan protocol.OutboundMessage, replies <-chan protocol.OutboundMessage, done <-chan struct{}, logger *zap.Logger) {
	initial := protocol.OutboundMessage{Command: protocol.Snapshot, State: ge.State()}
	if ge.Finished() {
		initial.Command = protocol.GameOver
	}
	if err := conn.WriteJSON(initial); err != nil {
		logger.Warn("websocket write failed", zap.Error(err))
		return
	}

	for {
		var msg protocol.OutboundMessage
		select {
		case <-done:
			return
		case m, ok := <-updates:
			if !ok {
				return
			}
			msg = m
		case m := <-replies:
			msg = m
		}

		if err := conn.WriteJSON(msg); err != nil {
			logger.Warn("websocket write failed", zap.Error(err))
			return
		}
	}
}
