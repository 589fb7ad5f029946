package game

import (
	"math/rand"
	"sync"
	"time"

	"github.com/boardwalk/monopoly-server-go/internal/game/board"
)

// GameStatus is the lifecycle state of a game instance.
type GameStatus string

const (
	StatusLobby  GameStatus = "LOBBY"
	StatusActive GameStatus = "ACTIVE"
	StatusEnded  GameStatus = "ENDED"
)

// debt is an unmet obligation. While a debt is pending the debtor may only
// raise cash (mortgage, sell buildings) or declare bankruptcy; the debt is
// settled automatically as soon as the balance covers it. An empty
// CreditorID means the bank.
type debt struct {
	CreditorID string `json:"creditorId,omitempty"`
	Amount     int    `json:"amount"`
	Reason     string `json:"reason"`
}

// gameState is the single authoritative state of one game. All mutation runs
// under mu, one action at a time; there is no interleaving of two mutations
// against the same game.
type gameState struct {
	mu sync.Mutex

	id       string
	name     string
	status   GameStatus
	settings Settings

	players    []*Player
	spaces     []board.Space
	properties map[string]*board.Property
	groups     map[string][]*board.Property

	current      int
	phase        Phase
	lastDice     [2]int
	doublesCount int
	extraRoll    bool

	pendingPurchase string // property ID offered to the current player
	pendingDebt     *debt

	auction        *Auction
	auctionHistory []*Auction

	chance         *Deck
	communityChest *Deck
	// heldJailCards tracks which get-out-of-jail cards each player retains,
	// so a consumed card returns to the right discard pile.
	heldJailCards map[string][]*board.Card

	winnerID  string
	halted    bool // set on invariant violation; only an external reset clears it
	startedAt time.Time

	rng *rand.Rand
	// nextRolls lets tests queue deterministic dice results.
	nextRolls [][2]int
}

func newGameState(id, name string, settings Settings, seed int64) *gameState {
	rng := rand.New(rand.NewSource(seed))
	gs := &gameState{
		id:            id,
		name:          name,
		status:        StatusLobby,
		settings:      settings,
		spaces:        board.StandardSpaces(),
		properties:    make(map[string]*board.Property),
		groups:        make(map[string][]*board.Property),
		heldJailCards: make(map[string][]*board.Card),
		rng:           rng,
	}
	for i := range gs.spaces {
		if p := gs.spaces[i].Property; p != nil {
			gs.properties[p.ID] = p
			gs.groups[p.Group] = append(gs.groups[p.Group], p)
		}
	}
	return gs
}

// start shuffles fresh decks and opens the first turn.
func (gs *gameState) start(now time.Time) {
	gs.status = StatusActive
	gs.chance = NewDeck(board.DeckChance, board.ChanceCards(), gs.rng)
	gs.communityChest = NewDeck(board.DeckCommunityChest, board.CommunityChestCards(), gs.rng)
	gs.current = 0
	gs.phase = PhaseAwaitingRoll
	gs.startedAt = now
}

func (gs *gameState) currentPlayer() *Player {
	if gs.current < 0 || gs.current >= len(gs.players) {
		return nil
	}
	return gs.players[gs.current]
}

func (gs *gameState) findPlayer(playerID string) *Player {
	for _, p := range gs.players {
		if p.ID == playerID {
			return p
		}
	}
	return nil
}

func (gs *gameState) groupSiblings(group string) []*board.Property {
	return gs.groups[group]
}

// countOwned reports how many properties of the kind the player holds.
func (gs *gameState) countOwned(playerID string, kind board.PropertyKind) int {
	count := 0
	for _, p := range gs.properties {
		if p.OwnerID == playerID && p.Kind == kind {
			count++
		}
	}
	return count
}

// holdingsFor assembles the rent calculation inputs for a property.
func (gs *gameState) holdingsFor(p *board.Property) Holdings {
	h := Holdings{GroupSiblings: gs.groupSiblings(p.Group)}
	if p.OwnerID != "" {
		h.Owner = gs.findPlayer(p.OwnerID)
		h.RailroadsOwned = gs.countOwned(p.OwnerID, board.PropertyRailroad)
		h.UtilitiesOwned = gs.countOwned(p.OwnerID, board.PropertyUtility)
	}
	return h
}

// activePlayers counts players still in the running.
func (gs *gameState) activePlayers() []*Player {
	active := make([]*Player, 0, len(gs.players))
	for _, p := range gs.players {
		if !p.Bankrupt {
			active = append(active, p)
		}
	}
	return active
}

// deckFor maps a deck kind to the live per-game deck.
func (gs *gameState) deckFor(kind board.DeckKind) *Deck {
	if kind == board.DeckChance {
		return gs.chance
	}
	return gs.communityChest
}

// rollDice produces a two-die result, honoring any queued test rolls.
func (gs *gameState) rollDice() (int, int) {
	if len(gs.nextRolls) > 0 {
		roll := gs.nextRolls[0]
		gs.nextRolls = gs.nextRolls[1:]
		return roll[0], roll[1]
	}
	return gs.rng.Intn(6) + 1, gs.rng.Intn(6) + 1
}
