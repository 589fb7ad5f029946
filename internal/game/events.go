package game

import (
	"time"

	"github.com/google/uuid"
)

// EventType indicates the category of an engine event.
type EventType string

const (
	EventDiceRolled        EventType = "dice:rolled"
	EventPlayerMoved       EventType = "player:moved"
	EventPlayerPassedGo    EventType = "player:passed_go"
	EventPropertyOffered   EventType = "property:offered"
	EventPropertyPurchased EventType = "property:purchased"
	EventPropertySold      EventType = "property:sold"
	EventPropertyMortgaged EventType = "property:mortgaged"
	EventPropertyRedeemed  EventType = "property:unmortgaged"
	EventBuildingBuilt     EventType = "building:built"
	EventBuildingSold      EventType = "building:sold"
	EventRentPaid          EventType = "rent:paid"
	EventCashCollected     EventType = "cash:collected"
	EventTaxPaid           EventType = "tax:paid"
	EventDebtIncurred      EventType = "debt:incurred"
	EventAuctionStarted    EventType = "auction:started"
	EventAuctionBidPlaced  EventType = "auction:bid_placed"
	EventAuctionEnded      EventType = "auction:ended"
	EventAuctionCancelled  EventType = "auction:cancelled"
	EventPlayerJailed      EventType = "player:jailed"
	EventPlayerReleased    EventType = "player:released"
	EventCardDrawn         EventType = "card:drawn"
	EventPlayerBankrupt    EventType = "player:bankrupt"
	EventTurnEnded         EventType = "turn:ended"
	EventTurnStarted       EventType = "turn:started"
	EventGameStarted       EventType = "game:started"
	EventGameEnded         EventType = "game:ended"
)

// Event is a pure-data record of a state change. ApplyAction returns the
// events produced by the action; transport and UI collaborators fan them out
// however they like. Each event carries enough identifiers for a stateless
// renderer to update without re-deriving rules logic.
type Event struct {
	Type       EventType `json:"type"`
	ID         string    `json:"id"`
	PlayerID   string    `json:"playerId,omitempty"`
	TargetID   string    `json:"targetId,omitempty"` // counterparty player, if any
	PropertyID string    `json:"propertyId,omitempty"`
	AuctionID  string    `json:"auctionId,omitempty"`
	CardID     string    `json:"cardId,omitempty"`
	Amount     int       `json:"amount,omitempty"`
	Position   int       `json:"position"`
	Dice       [2]int    `json:"dice,omitempty"`
	Detail     string    `json:"detail,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// newEvent creates an event with common fields populated.
func newEvent(eventType EventType, playerID string) Event {
	return Event{
		Type:      eventType,
		ID:        uuid.NewString(),
		PlayerID:  playerID,
		Position:  -1,
		Timestamp: time.Now(),
	}
}

func newPropertyEvent(eventType EventType, playerID, propertyID string, amount int) Event {
	evt := newEvent(eventType, playerID)
	evt.PropertyID = propertyID
	evt.Amount = amount
	return evt
}
