package game

import (
	"sort"

	"github.com/boardwalk/monopoly-server-go/internal/game/board"
)

// Bankruptcy and liquidation. Raising cash (mortgaging, selling buildings)
// is the player's own move beforehand; once bankruptcy is declared the
// liquidation below runs to completion in one step.

// handleDeclareBankruptcy liquidates the current player against the pending
// obligation's creditor.
func (gs *gameState) handleDeclareBankruptcy(actor *Player) ([]Event, *Rejection) {
	if gs.pendingDebt == nil {
		return nil, reject(ErrInvalidPhase, "%s has no outstanding obligation", actor.Name)
	}
	d := gs.pendingDebt
	gs.pendingDebt = nil
	events := gs.liquidate(actor, d.CreditorID)
	events = append(events, gs.checkGameEnd()...)
	if gs.status == StatusActive && gs.currentPlayer() != nil && gs.currentPlayer().ID == actor.ID {
		events = append(events, gs.endTurnInternal(actor)...)
	}
	return events, nil
}

// liquidate executes the fixed ordering: buildings first at half cost,
// highest level first; then property transfer to the creditor (or mortgage
// and release to the bank); finally the remaining cash is absorbed.
func (gs *gameState) liquidate(debtor *Player, creditorID string) []Event {
	var creditor *Player
	if creditorID != "" {
		creditor = gs.findPlayer(creditorID)
	}

	events := gs.sellAllBuildings(debtor)

	owned := make([]*board.Property, 0, len(debtor.Properties))
	for _, id := range debtor.Properties {
		owned = append(owned, gs.properties[id])
	}
	sort.Slice(owned, func(i, j int) bool { return owned[i].Position < owned[j].Position })

	for _, property := range owned {
		if creditor != nil {
			events = append(events, gs.transferToCreditor(property, debtor, creditor)...)
		} else {
			events = append(events, gs.releaseToBank(property, debtor)...)
		}
	}
	debtor.Properties = nil

	// Remaining cash is absorbed by the creditor, or by the bank.
	if debtor.Cash > 0 {
		if creditor != nil {
			creditor.Credit(debtor.Cash)
		}
		debtor.Cash = 0
	}

	// Held jail-free cards go back to their decks.
	for _, card := range gs.heldJailCards[debtor.ID] {
		gs.deckFor(card.Deck).Discard(card)
	}
	delete(gs.heldJailCards, debtor.ID)
	debtor.JailCards = 0

	debtor.Bankrupt = true
	debtor.InJail = false
	debtor.JailTurns = 0

	evt := newEvent(EventPlayerBankrupt, debtor.ID)
	evt.TargetID = creditorID
	events = append(events, evt)
	return events
}

// sellAllBuildings strips every building the debtor owns, highest building
// level first, crediting half the respective cost per step.
func (gs *gameState) sellAllBuildings(debtor *Player) []Event {
	var events []Event
	for {
		var target *board.Property
		for _, id := range debtor.Properties {
			p := gs.properties[id]
			if !p.HasBuildings() {
				continue
			}
			if target == nil || p.BuildingLevel() > target.BuildingLevel() {
				target = p
			}
		}
		if target == nil {
			return events
		}
		if target.Hotel {
			refund := target.HotelCost / 2
			target.Hotel = false
			target.Houses = board.MaxHouses
			debtor.Credit(refund)
			evt := newPropertyEvent(EventBuildingSold, debtor.ID, target.ID, refund)
			evt.Detail = "hotel"
			events = append(events, evt)
		} else {
			refund := target.HouseCost / 2
			target.Houses--
			debtor.Credit(refund)
			evt := newPropertyEvent(EventBuildingSold, debtor.ID, target.ID, refund)
			evt.Detail = "house"
			events = append(events, evt)
		}
	}
}

// transferToCreditor hands a property to the creditor. A mortgaged property
// is unmortgaged at the creditor's expense with 10% interest where the
// creditor can afford it, otherwise it transfers still mortgaged.
func (gs *gameState) transferToCreditor(property *board.Property, debtor, creditor *Player) []Event {
	var events []Event
	if property.Mortgaged && creditor.CanAfford(property.UnmortgageCost()) {
		cost := property.UnmortgageCost()
		creditor.Debit(cost)
		property.Mortgaged = false
		events = append(events, newPropertyEvent(EventPropertyRedeemed, creditor.ID, property.ID, cost))
	}
	property.OwnerID = creditor.ID
	creditor.AddProperty(property.ID)
	evt := newPropertyEvent(EventPropertySold, debtor.ID, property.ID, 0)
	evt.TargetID = creditor.ID
	evt.Detail = "bankruptcy transfer"
	events = append(events, evt)
	return events
}

// releaseToBank mortgages the property for cash (absorbed with the rest of
// the balance) and returns it, unowned and mortgaged, to the bank pool.
func (gs *gameState) releaseToBank(property *board.Property, debtor *Player) []Event {
	var events []Event
	if !property.Mortgaged {
		property.Mortgaged = true
		debtor.Credit(property.MortgageValue)
		events = append(events, newPropertyEvent(EventPropertyMortgaged, debtor.ID, property.ID, property.MortgageValue))
	}
	property.OwnerID = ""
	evt := newPropertyEvent(EventPropertySold, debtor.ID, property.ID, 0)
	evt.Detail = "released to bank"
	events = append(events, evt)
	return events
}

// checkGameEnd runs after every bankruptcy: one survivor wins; zero ends the
// game with no winner.
func (gs *gameState) checkGameEnd() []Event {
	active := gs.activePlayers()
	if len(active) > 1 {
		return nil
	}
	gs.status = StatusEnded
	gs.phase = PhaseEnded
	evt := newEvent(EventGameEnded, "")
	if len(active) == 1 {
		gs.winnerID = active[0].ID
		evt.PlayerID = active[0].ID
		evt.Detail = "winner"
	} else {
		evt.Detail = "no winner"
	}
	return []Event{evt}
}
