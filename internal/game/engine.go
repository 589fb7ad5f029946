package game

import (
	"sync"
	"time"

	"github.com/boardwalk/monopoly-server-go/internal/game/board"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Engine hosts game instances and enforces the rules. Each game has a single
// writer: every ApplyAction and Tick transition runs to completion under the
// game's own mutex before the next one is accepted.
type Engine struct {
	logger *zap.Logger

	mu    sync.RWMutex
	games map[string]*gameState

	// nowFn is swapped in tests for deterministic timeouts.
	nowFn func() time.Time
}

// NewEngine creates a new engine instance.
func NewEngine(logger *zap.Logger) *Engine {
	return &Engine{
		logger: logger,
		games:  make(map[string]*gameState),
		nowFn:  time.Now,
	}
}

// CreateGame registers an empty game in the lobby state and returns its ID.
func (e *Engine) CreateGame(name string, settings Settings) string {
	id := uuid.NewString()
	gs := newGameState(id, name, settings, time.Now().UnixNano())

	e.mu.Lock()
	e.games[id] = gs
	e.mu.Unlock()

	if e.logger != nil {
		e.logger.Info("game created",
			zap.String("game_id", id),
			zap.String("name", name),
		)
	}
	return id
}

// AddPlayer joins a player to a lobby game and returns the player ID.
func (e *Engine) AddPlayer(gameID, name string) (string, *Rejection) {
	gs, ok := e.game(gameID)
	if !ok {
		return "", reject(ErrNotFound, "unknown game %q", gameID)
	}

	gs.mu.Lock()
	defer gs.mu.Unlock()

	if gs.status != StatusLobby {
		return "", reject(ErrInvalidPhase, "game %s is %s, players can only join the lobby", gameID, gs.status)
	}
	if len(gs.players) >= gs.settings.MaxPlayers {
		return "", reject(ErrInvalidPhase, "game %s is full", gameID)
	}

	player := &Player{
		ID:   uuid.NewString(),
		Name: name,
		Cash: gs.settings.StartingCash,
	}
	gs.players = append(gs.players, player)
	return player.ID, nil
}

// StartGame shuffles the decks and opens the first player's turn.
func (e *Engine) StartGame(gameID string) ([]Event, *Rejection) {
	gs, ok := e.game(gameID)
	if !ok {
		return nil, reject(ErrNotFound, "unknown game %q", gameID)
	}

	gs.mu.Lock()
	defer gs.mu.Unlock()

	if gs.status != StatusLobby {
		return nil, reject(ErrInvalidPhase, "game %s already started", gameID)
	}
	if len(gs.players) < 2 {
		return nil, reject(ErrInvalidPhase, "game %s needs at least two players", gameID)
	}

	gs.start(e.nowFn())
	if e.logger != nil {
		e.logger.Info("game started",
			zap.String("game_id", gameID),
			zap.Int("players", len(gs.players)),
		)
	}

	started := newEvent(EventGameStarted, "")
	first := newEvent(EventTurnStarted, gs.players[0].ID)
	first.Detail = gs.phase.String()
	return []Event{started, first}, nil
}

// AbortGame cancels an in-flight game: an active auction is recorded without
// a winner and without charging anyone, and the game ends with no winner.
func (e *Engine) AbortGame(gameID string) ([]Event, *Rejection) {
	gs, ok := e.game(gameID)
	if !ok {
		return nil, reject(ErrNotFound, "unknown game %q", gameID)
	}

	gs.mu.Lock()
	defer gs.mu.Unlock()

	var events []Event
	if gs.auction != nil {
		events = append(events, gs.cancelAuction()...)
	}
	gs.status = StatusEnded
	gs.phase = PhaseEnded
	evt := newEvent(EventGameEnded, "")
	evt.Detail = "aborted"
	events = append(events, evt)
	return events, nil
}

// RemoveGame drops a finished game from the engine.
func (e *Engine) RemoveGame(gameID string) {
	e.mu.Lock()
	delete(e.games, gameID)
	e.mu.Unlock()
}

// GameIDs lists the hosted games.
func (e *Engine) GameIDs() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	ids := make([]string, 0, len(e.games))
	for id := range e.games {
		ids = append(ids, id)
	}
	return ids
}

// ApplyAction validates and executes one player action against a game. The
// result reports acceptance, the events produced, and a typed rejection with
// a displayable reason when refused. Rejected actions leave the state
// untouched.
func (e *Engine) ApplyAction(gameID, actorID string, action Action) ActionResult {
	gs, ok := e.game(gameID)
	if !ok {
		return rejected(reject(ErrNotFound, "unknown game %q", gameID))
	}

	gs.mu.Lock()
	defer gs.mu.Unlock()

	result := e.applyLocked(gs, actorID, action)
	if e.logger != nil {
		if result.Accepted {
			e.logger.Debug("action applied",
				zap.String("game_id", gameID),
				zap.String("player_id", actorID),
				zap.String("action", string(action.Type)),
				zap.Int("events", len(result.Events)),
			)
		} else {
			e.logger.Debug("action rejected",
				zap.String("game_id", gameID),
				zap.String("player_id", actorID),
				zap.String("action", string(action.Type)),
				zap.String("kind", string(result.Err.Kind)),
				zap.String("reason", result.Err.Reason),
			)
		}
	}
	return result
}

func (e *Engine) applyLocked(gs *gameState, actorID string, action Action) ActionResult {
	if gs.halted {
		return rejected(reject(ErrCorruptState, "game %s is halted after an invariant violation", gs.id))
	}
	if gs.status != StatusActive {
		return rejected(reject(ErrInvalidPhase, "game %s is %s", gs.id, gs.status))
	}

	actor := gs.findPlayer(actorID)
	if actor == nil {
		return rejected(reject(ErrNotFound, "unknown player %q", actorID))
	}
	if actor.Bankrupt {
		return rejected(reject(ErrInvalidPhase, "%s is bankrupt", actor.Name))
	}

	// Bids are the one action open to every player; everything else is
	// frozen while an auction runs.
	if action.Type == ActionPlaceBid {
		return e.handleBid(gs, actor, action)
	}
	if gs.auction != nil {
		return rejected(reject(ErrInvalidPhase, "an auction is in progress"))
	}

	current := gs.currentPlayer()
	if current == nil || current.ID != actorID {
		return rejected(reject(ErrNotYourTurn, "it is not %s's turn", actor.Name))
	}

	// An unmet obligation narrows the legal actions to raising cash or
	// declaring bankruptcy.
	if gs.pendingDebt != nil {
		switch action.Type {
		case ActionMortgage, ActionSellHouse, ActionSellHotel, ActionDeclareBankruptcy:
		default:
			return rejected(reject(ErrInvalidPhase, "settle the outstanding $%d first or declare bankruptcy", gs.pendingDebt.Amount))
		}
	}

	now := e.nowFn()
	var events []Event
	var rej *Rejection

	switch action.Type {
	case ActionRollDice:
		events, rej = gs.handleRollDice(actor, now)
	case ActionEndTurn:
		events, rej = gs.handleEndTurn(actor)
	case ActionPurchaseProperty:
		events, rej = gs.handlePurchase(actor, action.PropertyID)
	case ActionDeclinePurchase:
		events, rej = gs.handleDeclinePurchase(actor, now)
	case ActionBuildHouse:
		events, rej = e.buildingAction(gs, actor, action.PropertyID, gs.buildHouse)
	case ActionBuildHotel:
		events, rej = e.buildingAction(gs, actor, action.PropertyID, gs.buildHotel)
	case ActionSellHouse:
		events, rej = e.buildingAction(gs, actor, action.PropertyID, gs.sellHouse)
	case ActionSellHotel:
		events, rej = e.buildingAction(gs, actor, action.PropertyID, gs.sellHotel)
	case ActionMortgage:
		events, rej = gs.handleMortgage(actor, action.PropertyID)
	case ActionUnmortgage:
		events, rej = gs.handleUnmortgage(actor, action.PropertyID)
	case ActionPayJailFine:
		events, rej = gs.handlePayJailFine(actor)
	case ActionUseJailCard:
		events, rej = gs.handleUseJailCard(actor)
	case ActionAttemptJailRoll:
		events, rej = gs.handleAttemptJailRoll(actor, now)
	case ActionDeclareBankruptcy:
		events, rej = gs.handleDeclareBankruptcy(actor)
	default:
		rej = reject(ErrInvalidPhase, "unknown action %q", action.Type)
	}

	if rej != nil {
		return rejected(rej)
	}

	// Cash-raising actions retry the pending obligation automatically.
	switch action.Type {
	case ActionMortgage, ActionSellHouse, ActionSellHotel:
		events = append(events, gs.settleDebt()...)
	}

	return accepted(events)
}

// buildingAction resolves the property and runs one construction operation.
// Building is legal while the player is acting or before the roll, never
// from jail.
func (e *Engine) buildingAction(gs *gameState, actor *Player, propertyID string, op func(*board.Property, *Player) ([]Event, *Rejection)) ([]Event, *Rejection) {
	if gs.phase != PhaseActing && gs.phase != PhaseAwaitingRoll {
		return nil, reject(ErrInvalidPhase, "construction is not available in phase %s", gs.phase)
	}
	property, ok := gs.properties[propertyID]
	if !ok {
		return nil, reject(ErrNotFound, "unknown property %q", propertyID)
	}
	return op(property, actor)
}

// handleBid places a bid on the running auction on behalf of any player.
func (e *Engine) handleBid(gs *gameState, actor *Player, action Action) ActionResult {
	if gs.auction == nil {
		return rejected(reject(ErrAuctionInactive, "no auction is running"))
	}
	if action.AuctionID != "" && action.AuctionID != gs.auction.ID {
		return rejected(reject(ErrNotFound, "unknown auction %q", action.AuctionID))
	}
	now := e.nowFn()
	if rej := gs.auction.placeBid(actor, action.Amount, gs.settings.BidMinIncrement, now); rej != nil {
		return rejected(rej)
	}
	evt := newPropertyEvent(EventAuctionBidPlaced, actor.ID, gs.auction.PropertyID, action.Amount)
	evt.AuctionID = gs.auction.ID
	return accepted([]Event{evt})
}

// Tick advances time-driven transitions for one game: the auction inactivity
// and maximum-duration timeouts. The host calls it periodically; auction
// expiry is a pure function of the elapsed time, so tests can drive it with
// a synthetic clock.
func (e *Engine) Tick(gameID string, now time.Time) []Event {
	gs, ok := e.game(gameID)
	if !ok {
		return nil
	}

	gs.mu.Lock()
	defer gs.mu.Unlock()

	if gs.halted || gs.status != StatusActive || gs.auction == nil {
		return nil
	}
	if !gs.auction.expired(now, gs.settings.AuctionInactivity, gs.settings.AuctionMaxDuration) {
		return nil
	}
	events := gs.settleAuction()
	if e.logger != nil {
		e.logger.Info("auction settled on timeout",
			zap.String("game_id", gameID),
			zap.Int("events", len(events)),
		)
	}
	return events
}

// AuctionStatistics summarizes the game's bounded auction history.
func (e *Engine) AuctionStatistics(gameID string) (AuctionStats, *Rejection) {
	gs, ok := e.game(gameID)
	if !ok {
		return AuctionStats{}, reject(ErrNotFound, "unknown game %q", gameID)
	}
	gs.mu.Lock()
	defer gs.mu.Unlock()
	return gs.auctionStats(), nil
}

func (e *Engine) game(gameID string) (*gameState, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	gs, ok := e.games[gameID]
	return gs, ok
}
