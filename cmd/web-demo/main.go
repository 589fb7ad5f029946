// Demo server: runs a self-playing game against the real engine and streams
// snapshots to any connected websocket viewer. Useful for eyeballing the rules
// flow from a browser without a full client.
package main

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/boardwalk/monopoly-server-go/internal/game"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for demo
	},
}

type WSMessage struct {
	Type     string         `json:"type"`
	GameID   string         `json:"game_id,omitempty"`
	Events   []game.Event   `json:"events,omitempty"`
	Snapshot *game.Snapshot `json:"snapshot,omitempty"`
}

type Client struct {
	conn *websocket.Conn
	send chan []byte
}

type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
}

func newHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

func (h *Hub) run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			log.Printf("viewer connected (%d total)", len(h.clients))

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				log.Printf("viewer disconnected (%d total)", len(h.clients))
			}

		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					close(client.send)
					delete(h.clients, client)
				}
			}
		}
	}
}

// demoDriver plays one game with naive bots: roll, buy whatever is offered
// and affordable, decline otherwise, bid nothing, pay the jail fine when
// possible, and end the turn.
type demoDriver struct {
	engine  *game.Engine
	gameID  string
	players []string
	hub     *Hub
}

func newDemoDriver(hub *Hub) *demoDriver {
	engine := game.NewEngine(zap.NewNop())
	gameID := engine.CreateGame("web demo", game.DefaultSettings())

	d := &demoDriver{engine: engine, gameID: gameID, hub: hub}
	for _, name := range []string{"Alice", "Bob", "Carol"} {
		playerID, rej := engine.AddPlayer(gameID, name)
		if rej != nil {
			log.Fatalf("add player: %v", rej)
		}
		d.players = append(d.players, playerID)
	}
	events, rej := engine.StartGame(gameID)
	if rej != nil {
		log.Fatalf("start game: %v", rej)
	}
	d.publish(events)
	return d
}

func (d *demoDriver) run() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for now := range ticker.C {
		if events := d.engine.Tick(d.gameID, now); len(events) > 0 {
			d.publish(events)
			continue
		}
		d.step()
	}
}

// step performs the next obvious action for whoever can act.
func (d *demoDriver) step() {
	snap, rej := d.engine.GetSnapshot(d.gameID)
	if rej != nil || snap.Status != game.StatusActive {
		return
	}
	actor := snap.Players[snap.CurrentPlayer].ID

	var action game.Action
	switch {
	case snap.PendingDebt != nil:
		// Bots do not manage portfolios; an unpayable debt is the end.
		action = game.Action{Type: game.ActionDeclareBankruptcy}
	case snap.PendingPurchase != "":
		action = game.Action{Type: game.ActionPurchaseProperty, PropertyID: snap.PendingPurchase}
		if snap.Players[snap.CurrentPlayer].Cash < 200 {
			action = game.Action{Type: game.ActionDeclinePurchase}
		}
	case snap.Phase == "JAIL_DECISION":
		action = game.Action{Type: game.ActionPayJailFine}
		if snap.Players[snap.CurrentPlayer].Cash < snap.Settings.JailFine {
			action = game.Action{Type: game.ActionAttemptJailRoll}
		}
	case snap.Phase == "AWAITING_ROLL":
		action = game.Action{Type: game.ActionRollDice}
	case snap.Phase == "ACTING":
		action = game.Action{Type: game.ActionEndTurn}
	default:
		return
	}

	result := d.engine.ApplyAction(d.gameID, actor, action)
	if result.Accepted {
		d.publish(result.Events)
	}
}

func (d *demoDriver) publish(events []game.Event) {
	snap, rej := d.engine.GetSnapshot(d.gameID)
	if rej != nil {
		return
	}
	message, err := json.Marshal(WSMessage{
		Type:     "game_state",
		GameID:   d.gameID,
		Events:   events,
		Snapshot: snap,
	})
	if err != nil {
		return
	}
	select {
	case d.hub.broadcast <- message:
	default:
	}
}

func (c *Client) readPump(hub *Hub) {
	defer func() {
		hub.unregister <- c
		c.conn.Close()
	}()

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			break
		}
		// Viewers are read-only; inbound frames are drained and ignored.
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()

	for message := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			break
		}
	}
}

func serveWS(hub *Hub, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println(err)
		return
	}

	client := &Client{
		conn: conn,
		send: make(chan []byte, 256),
	}

	hub.register <- client

	go client.writePump()
	go client.readPump(hub)
}

func main() {
	hub := newHub()
	go hub.run()

	driver := newDemoDriver(hub)
	go driver.run()

	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		serveWS(hub, w, r)
	})

	log.Println("demo server starting on :8081")
	log.Println("watch endpoint: ws://localhost:8081/ws")

	if err := http.ListenAndServe(":8081", nil); err != nil {
		log.Fatal("ListenAndServe: ", err)
	}
}
