package game

import (
	"time"

	"github.com/google/uuid"
)

// AuctionStatus is the lifecycle state of an auction.
type AuctionStatus string

const (
	AuctionActive    AuctionStatus = "ACTIVE"
	AuctionEnded     AuctionStatus = "ENDED"
	AuctionCancelled AuctionStatus = "CANCELLED"
)

// Bid is one accepted entry in the bid log.
type Bid struct {
	PlayerID string    `json:"playerId"`
	Amount   int       `json:"amount"`
	At       time.Time `json:"at"`
}

// Auction is the bidding state machine entered when a purchase offer is
// declined. Timeouts are not wall-clock driven: the host calls Tick(now)
// periodically and the auction ends as a pure function of the elapsed time
// since the last accepted bid (inactivity) or since the start (maximum
// duration).
type Auction struct {
	ID           string        `json:"id"`
	PropertyID   string        `json:"propertyId"`
	StartingBid  int           `json:"startingBid"`
	CurrentBid   int           `json:"currentBid"`
	HighBidderID string        `json:"highBidderId,omitempty"`
	Bids         []Bid         `json:"bids"`
	Status       AuctionStatus `json:"status"`
	StartedAt    time.Time     `json:"startedAt"`
	LastBidAt    time.Time     `json:"lastBidAt"`
}

func newAuction(propertyID string, startingBid int, now time.Time) *Auction {
	return &Auction{
		ID:          uuid.NewString(),
		PropertyID:  propertyID,
		StartingBid: startingBid,
		Status:      AuctionActive,
		StartedAt:   now,
		LastBidAt:   now,
	}
}

// placeBid validates and records a bid. A bid must exceed the current high
// bid by at least minIncrement (the first bid must reach the starting bid),
// and the bidder must hold the full bid amount in cash.
func (a *Auction) placeBid(bidder *Player, amount, minIncrement int, now time.Time) *Rejection {
	if a.Status != AuctionActive {
		return reject(ErrAuctionInactive, "auction for %s is %s", a.PropertyID, a.Status)
	}
	if bidder.Bankrupt {
		return reject(ErrAuctionInactive, "%s is bankrupt and cannot bid", bidder.Name)
	}
	floor := a.StartingBid
	if a.HighBidderID != "" {
		floor = a.CurrentBid + minIncrement
	}
	if amount < floor {
		return reject(ErrBidTooLow, "bid of $%d is below the minimum of $%d", amount, floor)
	}
	if !bidder.CanAfford(amount) {
		return reject(ErrInsufficientFunds, "%s has $%d, bid is $%d", bidder.Name, bidder.Cash, amount)
	}
	a.CurrentBid = amount
	a.HighBidderID = bidder.ID
	a.Bids = append(a.Bids, Bid{PlayerID: bidder.ID, Amount: amount, At: now})
	// Every accepted bid resets the inactivity timeout.
	a.LastBidAt = now
	return nil
}

// expired reports whether either timeout has elapsed at now.
func (a *Auction) expired(now time.Time, inactivity, maxDuration time.Duration) bool {
	if a.Status != AuctionActive {
		return false
	}
	if now.Sub(a.LastBidAt) >= inactivity {
		return true
	}
	return now.Sub(a.StartedAt) >= maxDuration
}

// startAuction opens bidding on a property after a declined purchase.
func (gs *gameState) startAuction(propertyID string, now time.Time) []Event {
	gs.auction = newAuction(propertyID, gs.settings.AuctionStartingBid, now)
	evt := newPropertyEvent(EventAuctionStarted, "", propertyID, gs.settings.AuctionStartingBid)
	evt.AuctionID = gs.auction.ID
	return []Event{evt}
}

// settleAuction charges the winner and transfers the property, or leaves the
// property with the bank when nobody bid. The auction moves into the bounded
// history buffer either way.
func (gs *gameState) settleAuction() []Event {
	a := gs.auction
	a.Status = AuctionEnded

	var events []Event
	if a.HighBidderID != "" {
		winner := gs.findPlayer(a.HighBidderID)
		property := gs.properties[a.PropertyID]
		// Funds were checked at bid time and cannot have dropped: the bidder
		// could take no cash-spending action while the auction was open.
		winner.Debit(a.CurrentBid)
		property.OwnerID = winner.ID
		winner.AddProperty(property.ID)
		evt := newPropertyEvent(EventAuctionEnded, winner.ID, a.PropertyID, a.CurrentBid)
		evt.AuctionID = a.ID
		events = append(events, evt)
		purchase := newPropertyEvent(EventPropertyPurchased, winner.ID, a.PropertyID, a.CurrentBid)
		purchase.Detail = "auction"
		events = append(events, purchase)
	} else {
		evt := newPropertyEvent(EventAuctionEnded, "", a.PropertyID, 0)
		evt.AuctionID = a.ID
		evt.Detail = "no bids"
		events = append(events, evt)
	}

	gs.archiveAuction(a)
	gs.auction = nil
	return events
}

// cancelAuction records the auction without a winner and without charging
// anyone, e.g. on game abort.
func (gs *gameState) cancelAuction() []Event {
	a := gs.auction
	a.Status = AuctionCancelled
	gs.archiveAuction(a)
	gs.auction = nil
	evt := newPropertyEvent(EventAuctionCancelled, "", a.PropertyID, 0)
	evt.AuctionID = a.ID
	return []Event{evt}
}

// archiveAuction appends to the history ring, evicting the oldest entry once
// the buffer is full.
func (gs *gameState) archiveAuction(a *Auction) {
	gs.auctionHistory = append(gs.auctionHistory, a)
	if max := gs.settings.AuctionHistorySize; max > 0 && len(gs.auctionHistory) > max {
		gs.auctionHistory = gs.auctionHistory[len(gs.auctionHistory)-max:]
	}
}

// AuctionStats summarizes the history buffer.
type AuctionStats struct {
	Completed      int `json:"completed"`
	Cancelled      int `json:"cancelled"`
	Unsold         int `json:"unsold"`
	AverageWinning int `json:"averageWinning"`
}

func (gs *gameState) auctionStats() AuctionStats {
	var stats AuctionStats
	totalWinning, won := 0, 0
	for _, a := range gs.auctionHistory {
		switch {
		case a.Status == AuctionCancelled:
			stats.Cancelled++
		case a.HighBidderID == "":
			stats.Completed++
			stats.Unsold++
		default:
			stats.Completed++
			totalWinning += a.CurrentBid
			won++
		}
	}
	if won > 0 {
		stats.AverageWinning = totalWinning / won
	}
	return stats
}
