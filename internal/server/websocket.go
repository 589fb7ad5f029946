// Package server hosts the websocket gateway. It translates client messages
// into engine actions and fans engine events out to the game's subscribers;
// no rules logic lives here.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/boardwalk/monopoly-server-go/internal/config"
	"github.com/boardwalk/monopoly-server-go/internal/game"
	"github.com/boardwalk/monopoly-server-go/internal/registry"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// ClientMessage is an inbound websocket frame.
type ClientMessage struct {
	Type       string       `json:"type"` // create, join, start, action, snapshot
	GameID     string       `json:"gameId,omitempty"`
	PlayerID   string       `json:"playerId,omitempty"`
	PlayerName string       `json:"playerName,omitempty"`
	GameName   string       `json:"gameName,omitempty"`
	Action     *game.Action `json:"action,omitempty"`
}

// ServerMessage is an outbound websocket frame.
type ServerMessage struct {
	Type     string         `json:"type"` // created, joined, events, snapshot, error
	GameID   string         `json:"gameId,omitempty"`
	PlayerID string         `json:"playerId,omitempty"`
	Events   []game.Event   `json:"events,omitempty"`
	Snapshot *game.Snapshot `json:"snapshot,omitempty"`
	Error    *ErrorPayload  `json:"error,omitempty"`
}

// ErrorPayload carries a rejection to the client.
type ErrorPayload struct {
	Kind   string `json:"kind"`
	Reason string `json:"reason"`
}

type client struct {
	conn     *websocket.Conn
	send     chan []byte
	gameID   string
	playerID string
}

// Server is the websocket gateway.
type Server struct {
	cfg      config.WebSocketConfig
	settings game.Settings
	logger   *zap.Logger
	engine   *game.Engine
	registry *registry.Registry

	mu      sync.RWMutex
	clients map[string]map[*client]bool // gameID -> subscribers
}

// New creates the gateway. New games are created with the given settings.
func New(cfg config.WebSocketConfig, settings game.Settings, engine *game.Engine, reg *registry.Registry, logger *zap.Logger) *Server {
	return &Server{
		cfg:      cfg,
		settings: settings,
		logger:   logger,
		engine:   engine,
		registry: reg,
		clients:  make(map[string]map[*client]bool),
	}
}

// Run serves the websocket endpoint until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)

	srv := &http.Server{
		Addr:         s.cfg.Address,
		Handler:      mux,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info("websocket server listening", zap.String("address", s.cfg.Address))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	c := &client{conn: conn, send: make(chan []byte, 64)}
	go s.writePump(c)
	s.readPump(c)
}

func (s *Server) readPump(c *client) {
	defer func() {
		s.unsubscribe(c)
		c.conn.Close()
		close(c.send)
	}()

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		var msg ClientMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			s.sendError(c, "BAD_MESSAGE", "message is not valid JSON")
			continue
		}
		s.handleMessage(c, msg)
	}
}

func (s *Server) writePump(c *client) {
	for message := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
}

func (s *Server) handleMessage(c *client, msg ClientMessage) {
	switch msg.Type {
	case "create":
		gameID := s.registry.CreateRoom(msg.GameName, s.settings)
		s.reply(c, ServerMessage{Type: "created", GameID: gameID})

	case "join":
		playerID, err := s.registry.JoinRoom(msg.GameID, msg.PlayerName)
		if err != nil {
			s.sendRejection(c, err)
			return
		}
		c.gameID = msg.GameID
		c.playerID = playerID
		s.subscribe(c)
		s.reply(c, ServerMessage{Type: "joined", GameID: msg.GameID, PlayerID: playerID})

	case "start":
		events, err := s.registry.StartRoom(msg.GameID)
		if err != nil {
			s.sendRejection(c, err)
			return
		}
		s.Broadcast(msg.GameID, events)

	case "action":
		if msg.Action == nil {
			s.sendError(c, "BAD_MESSAGE", "action payload missing")
			return
		}
		result := s.engine.ApplyAction(msg.GameID, msg.PlayerID, *msg.Action)
		if !result.Accepted {
			s.reply(c, ServerMessage{
				Type:   "error",
				GameID: msg.GameID,
				Error:  &ErrorPayload{Kind: string(result.Err.Kind), Reason: result.Err.Reason},
			})
			return
		}
		s.Broadcast(msg.GameID, result.Events)

	case "snapshot":
		snap, rej := s.engine.GetSnapshot(msg.GameID)
		if rej != nil {
			s.sendRejection(c, rej)
			return
		}
		s.reply(c, ServerMessage{Type: "snapshot", GameID: msg.GameID, Snapshot: snap})

	default:
		s.sendError(c, "BAD_MESSAGE", "unknown message type "+msg.Type)
	}
}

// Broadcast fans events out to every subscriber of a game. The registry's
// ticker loop also calls this with timeout-driven events.
func (s *Server) Broadcast(gameID string, events []game.Event) {
	if len(events) == 0 {
		return
	}
	payload, err := json.Marshal(ServerMessage{Type: "events", GameID: gameID, Events: events})
	if err != nil {
		s.logger.Error("marshal events failed", zap.Error(err))
		return
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	for c := range s.clients[gameID] {
		select {
		case c.send <- payload:
		default:
			// Slow consumer; drop the frame rather than stall the game.
		}
	}
}

func (s *Server) subscribe(c *client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.clients[c.gameID] == nil {
		s.clients[c.gameID] = make(map[*client]bool)
	}
	s.clients[c.gameID][c] = true
}

func (s *Server) unsubscribe(c *client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if subs, ok := s.clients[c.gameID]; ok {
		delete(subs, c)
		if len(subs) == 0 {
			delete(s.clients, c.gameID)
		}
	}
}

func (s *Server) reply(c *client, msg ServerMessage) {
	payload, err := json.Marshal(msg)
	if err != nil {
		s.logger.Error("marshal reply failed", zap.Error(err))
		return
	}
	select {
	case c.send <- payload:
	default:
	}
}

func (s *Server) sendError(c *client, kind, reason string) {
	s.reply(c, ServerMessage{Type: "error", Error: &ErrorPayload{Kind: kind, Reason: reason}})
}

func (s *Server) sendRejection(c *client, err error) {
	if rej, ok := err.(*game.Rejection); ok {
		s.sendError(c, string(rej.Kind), rej.Reason)
		return
	}
	s.sendError(c, "INTERNAL", err.Error())
}
