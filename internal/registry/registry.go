// Package registry tracks hosted game rooms. The Registry is created by the
// process entry point and injected wherever needed; there is no package-level
// game map.
package registry

import (
	"fmt"
	"sync"
	"time"

	"github.com/boardwalk/monopoly-server-go/internal/game"
	"go.uber.org/zap"
)

// Room is the lobby-facing record of one hosted game.
type Room struct {
	GameID    string    `json:"gameId"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	Players   []string  `json:"players"` // player IDs in join order
}

// Registry owns the engine's game instances and their lobby metadata.
type Registry struct {
	logger *zap.Logger
	engine *game.Engine

	mu    sync.RWMutex
	rooms map[string]*Room
}

// New creates a registry around an engine instance.
func New(engine *game.Engine, logger *zap.Logger) *Registry {
	return &Registry{
		logger: logger,
		engine: engine,
		rooms:  make(map[string]*Room),
	}
}

// CreateRoom registers a new lobby game and returns its ID.
func (r *Registry) CreateRoom(name string, settings game.Settings) string {
	gameID := r.engine.CreateGame(name, settings)

	r.mu.Lock()
	r.rooms[gameID] = &Room{
		GameID:    gameID,
		Name:      name,
		CreatedAt: time.Now(),
	}
	r.mu.Unlock()

	if r.logger != nil {
		r.logger.Info("room created", zap.String("game_id", gameID), zap.String("name", name))
	}
	return gameID
}

// JoinRoom adds a player to a lobby game.
func (r *Registry) JoinRoom(gameID, playerName string) (string, error) {
	playerID, rej := r.engine.AddPlayer(gameID, playerName)
	if rej != nil {
		return "", rej
	}

	r.mu.Lock()
	if room, ok := r.rooms[gameID]; ok {
		room.Players = append(room.Players, playerID)
	}
	r.mu.Unlock()
	return playerID, nil
}

// StartRoom begins play.
func (r *Registry) StartRoom(gameID string) ([]game.Event, error) {
	events, rej := r.engine.StartGame(gameID)
	if rej != nil {
		return nil, rej
	}
	return events, nil
}

// GetRoom returns the lobby record for a game.
func (r *Registry) GetRoom(gameID string) (*Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	room, ok := r.rooms[gameID]
	if !ok {
		return nil, fmt.Errorf("room %s not found", gameID)
	}
	copied := *room
	copied.Players = append([]string(nil), room.Players...)
	return &copied, nil
}

// ListRooms returns every hosted room.
func (r *Registry) ListRooms() []*Room {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rooms := make([]*Room, 0, len(r.rooms))
	for _, room := range r.rooms {
		copied := *room
		copied.Players = append([]string(nil), room.Players...)
		rooms = append(rooms, &copied)
	}
	return rooms
}

// RemoveRoom aborts and drops a game.
func (r *Registry) RemoveRoom(gameID string) []game.Event {
	events, _ := r.engine.AbortGame(gameID)
	r.engine.RemoveGame(gameID)

	r.mu.Lock()
	delete(r.rooms, gameID)
	r.mu.Unlock()
	return events
}

// TickAll drives the time-based transitions of every hosted game and returns
// the events produced, keyed by game ID. The host's ticker loop calls this
// periodically.
func (r *Registry) TickAll(now time.Time) map[string][]game.Event {
	events := make(map[string][]game.Event)
	for _, gameID := range r.engine.GameIDs() {
		if produced := r.engine.Tick(gameID, now); len(produced) > 0 {
			events[gameID] = produced
		}
	}
	return events
}
