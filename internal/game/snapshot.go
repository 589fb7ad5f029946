package game

import (
	"time"

	"github.com/boardwalk/monopoly-server-go/internal/game/board"
	"go.uber.org/zap"
)

// SnapshotSchemaVersion is bumped whenever the snapshot layout changes.
const SnapshotSchemaVersion = 1

// Snapshot is the JSON-serializable mirror of a game's state, used for
// broadcast and persistence. The board layout is static, so only the mutable
// property fields are persisted and re-applied onto a fresh layout.
type Snapshot struct {
	SchemaVersion int        `json:"schemaVersion"`
	GameID        string     `json:"gameId"`
	Name          string     `json:"name"`
	Status        GameStatus `json:"status"`
	Settings      Settings   `json:"settings"`

	Players []PlayerSnapshot   `json:"players"`
	Board   []PropertySnapshot `json:"board"`

	CurrentPlayer   int        `json:"currentPlayer"`
	Phase           string     `json:"phase"`
	LastDice        [2]int     `json:"lastDice"`
	DoublesCount    int        `json:"doublesCount"`
	ExtraRoll       bool       `json:"extraRoll"`
	PendingPurchase string     `json:"pendingPurchase,omitempty"`
	PendingDebt     *debt      `json:"pendingDebt,omitempty"`
	Auction         *Auction   `json:"auction,omitempty"`
	AuctionHistory  []*Auction `json:"auctionHistory,omitempty"`

	ChanceDraw    []string `json:"chanceDraw"`
	ChanceDiscard []string `json:"chanceDiscard"`
	ChestDraw     []string `json:"chestDraw"`
	ChestDiscard  []string `json:"chestDiscard"`

	WinnerID  string    `json:"winnerId,omitempty"`
	StartedAt time.Time `json:"startedAt"`
}

// PlayerSnapshot mirrors Player plus the IDs of retained jail-free cards.
type PlayerSnapshot struct {
	Player
	HeldJailCards []string `json:"heldJailCards,omitempty"`
}

// PropertySnapshot carries the mutable fields of one property.
type PropertySnapshot struct {
	ID        string `json:"id"`
	OwnerID   string `json:"ownerId,omitempty"`
	Houses    int    `json:"houses"`
	Hotel     bool   `json:"hotel"`
	Mortgaged bool   `json:"mortgaged"`
}

// GetSnapshot builds the full serializable state of a game.
func (e *Engine) GetSnapshot(gameID string) (*Snapshot, *Rejection) {
	gs, ok := e.game(gameID)
	if !ok {
		return nil, reject(ErrNotFound, "unknown game %q", gameID)
	}

	gs.mu.Lock()
	defer gs.mu.Unlock()

	snap := &Snapshot{
		SchemaVersion:   SnapshotSchemaVersion,
		GameID:          gs.id,
		Name:            gs.name,
		Status:          gs.status,
		Settings:        gs.settings,
		CurrentPlayer:   gs.current,
		Phase:           gs.phase.String(),
		LastDice:        gs.lastDice,
		DoublesCount:    gs.doublesCount,
		ExtraRoll:       gs.extraRoll,
		PendingPurchase: gs.pendingPurchase,
		WinnerID:        gs.winnerID,
		StartedAt:       gs.startedAt,
	}
	if gs.pendingDebt != nil {
		d := *gs.pendingDebt
		snap.PendingDebt = &d
	}
	if gs.auction != nil {
		a := *gs.auction
		a.Bids = append([]Bid(nil), gs.auction.Bids...)
		snap.Auction = &a
	}
	for _, a := range gs.auctionHistory {
		archived := *a
		archived.Bids = append([]Bid(nil), a.Bids...)
		snap.AuctionHistory = append(snap.AuctionHistory, &archived)
	}

	for _, p := range gs.players {
		ps := PlayerSnapshot{Player: *p}
		ps.Properties = append([]string(nil), p.Properties...)
		for _, card := range gs.heldJailCards[p.ID] {
			ps.HeldJailCards = append(ps.HeldJailCards, card.ID)
		}
		snap.Players = append(snap.Players, ps)
	}

	for i := range gs.spaces {
		p := gs.spaces[i].Property
		if p == nil {
			continue
		}
		snap.Board = append(snap.Board, PropertySnapshot{
			ID:        p.ID,
			OwnerID:   p.OwnerID,
			Houses:    p.Houses,
			Hotel:     p.Hotel,
			Mortgaged: p.Mortgaged,
		})
	}

	if gs.chance != nil {
		snap.ChanceDraw, snap.ChanceDiscard = deckIDs(gs.chance)
		snap.ChestDraw, snap.ChestDiscard = deckIDs(gs.communityChest)
	}

	return snap, nil
}

func deckIDs(d *Deck) (draw, discard []string) {
	for _, c := range d.draw {
		draw = append(draw, c.ID)
	}
	for _, c := range d.discard {
		discard = append(discard, c.ID)
	}
	return draw, discard
}

// RestoreGame rebuilds a game instance from a snapshot. Every invariant is
// re-validated before the game resumes; a violation registers the instance
// halted so no further actions process until it is externally removed.
func (e *Engine) RestoreGame(snap *Snapshot) *Rejection {
	gs := newGameState(snap.GameID, snap.Name, snap.Settings, time.Now().UnixNano())

	if rej := gs.applySnapshot(snap); rej != nil {
		gs.halted = true
		e.mu.Lock()
		e.games[snap.GameID] = gs
		e.mu.Unlock()
		if e.logger != nil {
			e.logger.Error("snapshot restore failed, game halted",
				zap.String("game_id", snap.GameID),
				zap.String("reason", rej.Reason),
			)
		}
		return rej
	}

	e.mu.Lock()
	e.games[snap.GameID] = gs
	e.mu.Unlock()
	return nil
}

// applySnapshot loads and validates the snapshot into a fresh state.
func (gs *gameState) applySnapshot(snap *Snapshot) *Rejection {
	if snap.SchemaVersion != SnapshotSchemaVersion {
		return reject(ErrCorruptState, "unsupported snapshot schema version %d", snap.SchemaVersion)
	}
	phase, ok := phaseFromName(snap.Phase)
	if !ok {
		return reject(ErrCorruptState, "unknown phase %q", snap.Phase)
	}
	if len(snap.Players) == 0 {
		return reject(ErrCorruptState, "snapshot has no players")
	}
	if snap.CurrentPlayer < 0 || snap.CurrentPlayer >= len(snap.Players) {
		return reject(ErrCorruptState, "current player index %d out of range", snap.CurrentPlayer)
	}

	for i := range snap.Players {
		ps := snap.Players[i]
		if ps.Position < 0 || ps.Position >= board.Size {
			return reject(ErrCorruptState, "player %s position %d out of range", ps.ID, ps.Position)
		}
		if ps.Bankrupt && (ps.Cash != 0 || len(ps.Properties) > 0) {
			return reject(ErrCorruptState, "bankrupt player %s still holds assets", ps.ID)
		}
		if !ps.Bankrupt && ps.Cash < 0 {
			return reject(ErrCorruptState, "active player %s has negative cash", ps.ID)
		}
		player := ps.Player
		player.Properties = append([]string(nil), ps.Properties...)
		gs.players = append(gs.players, &player)
	}
	if snap.Status == StatusActive && gs.players[snap.CurrentPlayer].Bankrupt {
		return reject(ErrCorruptState, "current player is bankrupt")
	}

	for _, ps := range snap.Board {
		property, ok := gs.properties[ps.ID]
		if !ok {
			return reject(ErrCorruptState, "unknown property %q", ps.ID)
		}
		if ps.Houses < 0 || ps.Houses > board.MaxHouses {
			return reject(ErrCorruptState, "%s carries %d houses", ps.ID, ps.Houses)
		}
		if ps.Hotel && ps.Houses != 0 {
			return reject(ErrCorruptState, "%s carries both a hotel and houses", ps.ID)
		}
		if ps.Mortgaged && (ps.Hotel || ps.Houses > 0) {
			return reject(ErrCorruptState, "%s is mortgaged but carries buildings", ps.ID)
		}
		property.OwnerID = ps.OwnerID
		property.Houses = ps.Houses
		property.Hotel = ps.Hotel
		property.Mortgaged = ps.Mortgaged
	}

	// Ownership back-references must agree in both directions.
	for _, p := range gs.properties {
		if p.OwnerID == "" {
			continue
		}
		owner := gs.findPlayer(p.OwnerID)
		if owner == nil {
			return reject(ErrCorruptState, "%s is owned by unknown player %q", p.ID, p.OwnerID)
		}
		if !owner.OwnsProperty(p.ID) {
			return reject(ErrCorruptState, "%s does not list %s in its holdings", owner.ID, p.ID)
		}
	}
	for _, player := range gs.players {
		for _, id := range player.Properties {
			property, ok := gs.properties[id]
			if !ok {
				return reject(ErrCorruptState, "player %s lists unknown property %q", player.ID, id)
			}
			if property.OwnerID != player.ID {
				return reject(ErrCorruptState, "property %s is not owned by %s", id, player.ID)
			}
		}
	}

	// Even-building invariant per monopoly group.
	for group, siblings := range gs.groups {
		min, max := board.HotelLevel, 0
		for _, sibling := range siblings {
			level := sibling.BuildingLevel()
			if level < min {
				min = level
			}
			if level > max {
				max = level
			}
		}
		if len(siblings) > 0 && max-min > 1 {
			return reject(ErrCorruptState, "group %s violates the even-building rule", group)
		}
	}

	if rej := gs.restoreDecks(snap); rej != nil {
		return rej
	}

	gs.status = snap.Status
	gs.current = snap.CurrentPlayer
	gs.phase = phase
	gs.lastDice = snap.LastDice
	gs.doublesCount = snap.DoublesCount
	gs.extraRoll = snap.ExtraRoll
	gs.pendingPurchase = snap.PendingPurchase
	gs.winnerID = snap.WinnerID
	gs.startedAt = snap.StartedAt
	if snap.PendingDebt != nil {
		d := *snap.PendingDebt
		gs.pendingDebt = &d
	}
	if snap.Auction != nil {
		a := *snap.Auction
		a.Bids = append([]Bid(nil), snap.Auction.Bids...)
		gs.auction = &a
	}
	gs.auctionHistory = append(gs.auctionHistory, snap.AuctionHistory...)
	return nil
}

// restoreDecks rebuilds both decks in their persisted order and reattaches
// retained jail-free cards to their holders.
func (gs *gameState) restoreDecks(snap *Snapshot) *Rejection {
	chanceDraw, rej := cardsByID(snap.ChanceDraw)
	if rej != nil {
		return rej
	}
	chanceDiscard, rej := cardsByID(snap.ChanceDiscard)
	if rej != nil {
		return rej
	}
	chestDraw, rej := cardsByID(snap.ChestDraw)
	if rej != nil {
		return rej
	}
	chestDiscard, rej := cardsByID(snap.ChestDiscard)
	if rej != nil {
		return rej
	}

	gs.chance = &Deck{kind: board.DeckChance, draw: chanceDraw, discard: chanceDiscard, rng: gs.rng}
	gs.communityChest = &Deck{kind: board.DeckCommunityChest, draw: chestDraw, discard: chestDiscard, rng: gs.rng}

	for i := range snap.Players {
		ps := snap.Players[i]
		held, rej := cardsByID(ps.HeldJailCards)
		if rej != nil {
			return rej
		}
		if len(held) != ps.JailCards {
			return reject(ErrCorruptState, "player %s jail card count disagrees with held cards", ps.ID)
		}
		if len(held) > 0 {
			gs.heldJailCards[ps.ID] = held
		}
	}
	return nil
}

func cardsByID(ids []string) ([]*board.Card, *Rejection) {
	cards := make([]*board.Card, 0, len(ids))
	for _, id := range ids {
		card, ok := board.FindCard(id)
		if !ok {
			return nil, reject(ErrCorruptState, "unknown card %q", id)
		}
		cards = append(cards, card)
	}
	return cards, nil
}
