package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/boardwalk/monopoly-server-go/internal/config"
	"github.com/boardwalk/monopoly-server-go/internal/game"
	"github.com/boardwalk/monopoly-server-go/internal/registry"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestGateway(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	logger := zap.NewNop()
	engine := game.NewEngine(logger)
	reg := registry.New(engine, logger)
	s := New(config.WebSocketConfig{}, game.DefaultSettings(), engine, reg, logger)

	ts := httptest.NewServer(http.HandlerFunc(s.handleWS))
	t.Cleanup(ts.Close)
	return s, ts
}

func dialTestGateway(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func send(t *testing.T, conn *websocket.Conn, msg ClientMessage) {
	t.Helper()
	require.NoError(t, conn.WriteJSON(msg))
}

func recv(t *testing.T, conn *websocket.Conn) ServerMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)
	var msg ServerMessage
	require.NoError(t, json.Unmarshal(raw, &msg))
	return msg
}

func TestGatewayCreateJoinStart(t *testing.T) {
	_, ts := newTestGateway(t)
	alice := dialTestGateway(t, ts)
	bob := dialTestGateway(t, ts)

	send(t, alice, ClientMessage{Type: "create", GameName: "friday night"})
	created := recv(t, alice)
	require.Equal(t, "created", created.Type)
	require.NotEmpty(t, created.GameID)
	gameID := created.GameID

	send(t, alice, ClientMessage{Type: "join", GameID: gameID, PlayerName: "Alice"})
	joinedA := recv(t, alice)
	require.Equal(t, "joined", joinedA.Type)
	require.NotEmpty(t, joinedA.PlayerID)

	send(t, bob, ClientMessage{Type: "join", GameID: gameID, PlayerName: "Bob"})
	joinedB := recv(t, bob)
	require.Equal(t, "joined", joinedB.Type)

	send(t, alice, ClientMessage{Type: "start", GameID: gameID})

	// Both subscribers get the start broadcast.
	for _, conn := range []*websocket.Conn{alice, bob} {
		msg := recv(t, conn)
		require.Equal(t, "events", msg.Type)
		assert.Equal(t, gameID, msg.GameID)
		require.NotEmpty(t, msg.Events)
		assert.Equal(t, game.EventGameStarted, msg.Events[0].Type)
	}

	// Alice joined first, so she acts first.
	send(t, alice, ClientMessage{
		Type:     "action",
		GameID:   gameID,
		PlayerID: joinedA.PlayerID,
		Action:   &game.Action{Type: game.ActionRollDice},
	})
	msg := recv(t, alice)
	require.Equal(t, "events", msg.Type)
	assert.Equal(t, game.EventDiceRolled, msg.Events[0].Type)
}

func TestGatewayRejectionsReachOnlySender(t *testing.T) {
	_, ts := newTestGateway(t)
	alice := dialTestGateway(t, ts)
	bob := dialTestGateway(t, ts)

	send(t, alice, ClientMessage{Type: "create", GameName: "rejections"})
	gameID := recv(t, alice).GameID
	send(t, alice, ClientMessage{Type: "join", GameID: gameID, PlayerName: "Alice"})
	aliceID := recv(t, alice).PlayerID
	send(t, bob, ClientMessage{Type: "join", GameID: gameID, PlayerName: "Bob"})
	bobID := recv(t, bob).PlayerID
	send(t, alice, ClientMessage{Type: "start", GameID: gameID})
	recv(t, alice)
	recv(t, bob)

	// Bob acts out of turn; only Bob hears about it.
	send(t, bob, ClientMessage{
		Type:     "action",
		GameID:   gameID,
		PlayerID: bobID,
		Action:   &game.Action{Type: game.ActionRollDice},
	})
	msg := recv(t, bob)
	require.Equal(t, "error", msg.Type)
	require.NotNil(t, msg.Error)
	assert.Equal(t, string(game.ErrNotYourTurn), msg.Error.Kind)

	// Alice's connection stays quiet and usable.
	send(t, alice, ClientMessage{
		Type:     "action",
		GameID:   gameID,
		PlayerID: aliceID,
		Action:   &game.Action{Type: game.ActionRollDice},
	})
	got := recv(t, alice)
	require.Equal(t, "events", got.Type)
}

func TestGatewayBadMessages(t *testing.T) {
	_, ts := newTestGateway(t)
	conn := dialTestGateway(t, ts)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{not json")))
	msg := recv(t, conn)
	require.Equal(t, "error", msg.Type)
	assert.Equal(t, "BAD_MESSAGE", msg.Error.Kind)

	send(t, conn, ClientMessage{Type: "teleport"})
	msg = recv(t, conn)
	require.Equal(t, "error", msg.Type)
	assert.Equal(t, "BAD_MESSAGE", msg.Error.Kind)

	send(t, conn, ClientMessage{Type: "action", GameID: "nope"})
	msg = recv(t, conn)
	require.Equal(t, "error", msg.Type)
	assert.Equal(t, "BAD_MESSAGE", msg.Error.Kind)
}

func TestGatewaySnapshotRequest(t *testing.T) {
	_, ts := newTestGateway(t)
	conn := dialTestGateway(t, ts)

	send(t, conn, ClientMessage{Type: "create", GameName: "snapshots"})
	gameID := recv(t, conn).GameID
	send(t, conn, ClientMessage{Type: "join", GameID: gameID, PlayerName: "Alice"})
	recv(t, conn)

	send(t, conn, ClientMessage{Type: "snapshot", GameID: gameID})
	msg := recv(t, conn)
	require.Equal(t, "snapshot", msg.Type)
	require.NotNil(t, msg.Snapshot)
	assert.Equal(t, gameID, msg.Snapshot.GameID)
	require.Len(t, msg.Snapshot.Players, 1)

	send(t, conn, ClientMessage{Type: "snapshot", GameID: "missing"})
	msg = recv(t, conn)
	require.Equal(t, "error", msg.Type)
	assert.Equal(t, string(game.ErrNotFound), msg.Error.Kind)
}
