package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/minaorangina/beggar/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialGame(t *testing.T, httpServer *httptest.Server, gameID string) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(httpServer.URL, "http") + "/ws?game_id=" + gameID
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) protocol.OutboundMessage {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg protocol.OutboundMessage
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestWebsocket(t *testing.T) {
	t.Run("sends a snapshot on connect and after each advance", func(t *testing.T) {
		server, _ := newTestServer(t, nil, shortGameEngine(t, "short", nil))
		httpServer := httptest.NewServer(server)
		defer httpServer.Close()

		conn := dialGame(t, httpServer, "short")

		msg := readMessage(t, conn)
		assert.Equal(t, protocol.Snapshot, msg.Command)
		assert.Equal(t, 0, msg.State.Ticks)

		for i := 1; i <= 3; i++ {
			require.NoError(t, conn.WriteJSON(protocol.InboundMessage{Command: protocol.Advance}))
			msg = readMessage(t, conn)
			assert.Equal(t, protocol.Snapshot, msg.Command)
			assert.Equal(t, i, msg.State.Ticks)
		}

		require.NoError(t, conn.WriteJSON(protocol.InboundMessage{Command: protocol.Advance}))
		msg = readMessage(t, conn)
		assert.Equal(t, protocol.GameOver, msg.Command)
		assert.True(t, msg.State.Finished)

		require.NoError(t, conn.WriteJSON(protocol.InboundMessage{Command: protocol.Advance}))
		msg = readMessage(t, conn)
		assert.Equal(t, protocol.Error, msg.Command)
		assert.NotEmpty(t, msg.Error)
	})

	t.Run("sees ticks made over http", func(t *testing.T) {
		server, s := newTestServer(t, nil, shortGameEngine(t, "short", nil))
		httpServer := httptest.NewServer(server)
		defer httpServer.Close()

		conn := dialGame(t, httpServer, "short")
		readMessage(t, conn)

		_, err := s.FindGame("short").Advance()
		require.NoError(t, err)

		msg := readMessage(t, conn)
		assert.Equal(t, 1, msg.State.Ticks)
		assert.Equal(t, []int{2, 2}, msg.State.HandSizes)
	})

	t.Run("answers snapshot requests and rejects unknown commands", func(t *testing.T) {
		server, _ := newTestServer(t, nil, shortGameEngine(t, "short", nil))
		httpServer := httptest.NewServer(server)
		defer httpServer.Close()

		conn := dialGame(t, httpServer, "short")
		readMessage(t, conn)

		require.NoError(t, conn.WriteJSON(protocol.InboundMessage{Command: protocol.Snapshot}))
		msg := readMessage(t, conn)
		assert.Equal(t, protocol.Snapshot, msg.Command)
		assert.Equal(t, "short", msg.State.GameID)

		require.NoError(t, conn.WriteJSON(protocol.InboundMessage{Command: protocol.GameOver}))
		msg = readMessage(t, conn)
		assert.Equal(t, protocol.Error, msg.Command)
	})

	t.Run("rejects unknown games before upgrading", func(t *testing.T) {
		server, _ := newTestServer(t, nil)
		httpServer := httptest.NewServer(server)
		defer httpServer.Close()

		url := "ws" + strings.TrimPrefix(httpServer.URL, "http") + "/ws?game_id=nope"
		_, response, err := websocket.DefaultDialer.Dial(url, nil)
		assert.Error(t, err)
		require.NotNil(t, response)
		assert.Equal(t, http.StatusNotFound, response.StatusCode)

		_, response, err = websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(httpServer.URL, "http")+"/ws", nil)
		assert.Error(t, err)
		require.NotNil(t, response)
		assert.Equal(t, http.StatusBadRequest, response.StatusCode)
	})
}
