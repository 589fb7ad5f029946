package game

import (
	"time"

	"github.com/boardwalk/monopoly-server-go/internal/game/board"
)

// Turn flow: awaiting-roll -> moved -> resolving-landing -> acting -> ended,
// with jail-decision replacing awaiting-roll for an incarcerated player. The
// moved and resolving-landing phases are passed through inside a single
// action; an ApplyAction call always leaves the game in a stable phase.

// handleRollDice processes the current player's movement roll.
func (gs *gameState) handleRollDice(actor *Player, now time.Time) ([]Event, *Rejection) {
	switch {
	case gs.phase == PhaseAwaitingRoll:
		// first roll of the turn
	case gs.phase == PhaseActing && gs.extraRoll:
		if gs.pendingPurchase != "" {
			return nil, reject(ErrInvalidPhase, "resolve the purchase offer first")
		}
		// extra roll granted by doubles
	case gs.phase == PhaseJailDecision:
		return nil, reject(ErrInvalidPhase, "%s is in jail and must attempt doubles, pay the fine, or use a card", actor.Name)
	default:
		return nil, reject(ErrInvalidPhase, "roll is not available in phase %s", gs.phase)
	}
	gs.extraRoll = false
	gs.phase = PhaseMoved

	d1, d2 := gs.rollDice()
	gs.lastDice = [2]int{d1, d2}
	events := []Event{gs.diceEvent(actor.ID, d1, d2)}

	if d1 == d2 {
		gs.doublesCount++
		if gs.doublesCount >= 3 {
			// Three consecutive doubles: straight to jail, no landing
			// resolution for the third roll, turn over immediately.
			events = append(events, gs.sendToJail(actor)...)
			events = append(events, gs.endTurnInternal(actor)...)
			return events, nil
		}
	}

	events = append(events, gs.movePlayerBy(actor, d1+d2)...)
	gs.phase = PhaseResolvingLanding
	events = append(events, gs.resolveLanding(actor, d1+d2, now)...)
	gs.finishResolution(actor, d1 == d2)
	return events, nil
}

func (gs *gameState) diceEvent(playerID string, d1, d2 int) Event {
	evt := newEvent(EventDiceRolled, playerID)
	evt.Dice = [2]int{d1, d2}
	evt.Amount = d1 + d2
	return evt
}

// finishResolution settles the post-landing phase. Doubles grant an extra
// roll unless the roll landed the player in jail or ended the game.
func (gs *gameState) finishResolution(actor *Player, doubles bool) {
	if gs.status != StatusActive {
		return
	}
	if gs.phase == PhaseEnded || gs.currentPlayer() == nil || gs.currentPlayer().ID != actor.ID {
		return
	}
	gs.phase = PhaseActing
	if doubles && !actor.InJail && !actor.Bankrupt {
		gs.extraRoll = true
	}
}

// movePlayerBy advances the token steps spaces forward (negative steps move
// backward without a Go bonus). Passing Go during forward movement credits
// the bonus exactly once per movement step, however far the step spans.
func (gs *gameState) movePlayerBy(p *Player, steps int) []Event {
	old := p.Position
	next := ((old+steps)%board.Size + board.Size) % board.Size
	p.Position = next

	var events []Event
	if steps > 0 && old+steps >= board.Size {
		events = append(events, gs.creditGoBonus(p)...)
	}
	moved := newEvent(EventPlayerMoved, p.ID)
	moved.Position = next
	moved.Amount = steps
	events = append(events, moved)
	return events
}

// movePlayerTo places the token on an absolute position. collectGo controls
// whether wrapping past Go credits the bonus; direct placements (jail) never
// do.
func (gs *gameState) movePlayerTo(p *Player, position int, collectGo bool) []Event {
	old := p.Position
	p.Position = position

	var events []Event
	if collectGo && (position < old || position == 0) {
		events = append(events, gs.creditGoBonus(p)...)
	}
	moved := newEvent(EventPlayerMoved, p.ID)
	moved.Position = position
	events = append(events, moved)
	return events
}

func (gs *gameState) creditGoBonus(p *Player) []Event {
	p.Credit(gs.settings.GoBonus)
	evt := newEvent(EventPlayerPassedGo, p.ID)
	evt.Amount = gs.settings.GoBonus
	return []Event{evt}
}

// resolveLanding dispatches on the landed space's kind. diceTotal is the
// roll that caused the landing and feeds utility rent directly.
func (gs *gameState) resolveLanding(p *Player, diceTotal int, now time.Time) []Event {
	space := gs.spaces[p.Position]
	switch space.Kind {
	case board.SpaceStreet, board.SpaceRailroad, board.SpaceUtility:
		return gs.resolvePropertyLanding(p, space.Property, diceTotal)
	case board.SpaceTax:
		return gs.chargeObligation(p, "", space.TaxAmount, space.Name)
	case board.SpaceChance:
		return gs.drawCard(p, gs.chance, now)
	case board.SpaceCommunityChest:
		return gs.drawCard(p, gs.communityChest, now)
	case board.SpaceGoToJail:
		return gs.sendToJail(p)
	case board.SpaceGo, board.SpaceJail, board.SpaceFreeParking:
		return nil
	}
	return nil
}

func (gs *gameState) resolvePropertyLanding(p *Player, property *board.Property, diceTotal int) []Event {
	if property.OwnerID == "" {
		// Purchase offer, not an auction; the auction only starts if the
		// landing player declines.
		gs.pendingPurchase = property.ID
		evt := newPropertyEvent(EventPropertyOffered, p.ID, property.ID, property.Price)
		return []Event{evt}
	}
	if property.OwnerID == p.ID || property.Mortgaged {
		return nil
	}
	rent := Rent(property, gs.holdingsFor(property), p.ID, diceTotal)
	if rent == 0 {
		return nil
	}
	return gs.chargeObligation(p, property.OwnerID, rent, "rent for "+property.Name)
}

// chargeObligation transfers amount from debtor to creditor (the bank when
// creditorID is empty). When the debtor cannot cover it, the obligation is
// parked as a pending debt: the debtor may raise cash or declare bankruptcy,
// and the debt settles automatically once the balance suffices.
func (gs *gameState) chargeObligation(debtor *Player, creditorID string, amount int, reason string) []Event {
	if amount <= 0 {
		return nil
	}
	if !debtor.CanAfford(amount) {
		gs.pendingDebt = &debt{CreditorID: creditorID, Amount: amount, Reason: reason}
		evt := newEvent(EventDebtIncurred, debtor.ID)
		evt.TargetID = creditorID
		evt.Amount = amount
		evt.Detail = reason
		return []Event{evt}
	}
	return gs.payObligation(debtor, creditorID, amount, reason)
}

func (gs *gameState) payObligation(debtor *Player, creditorID string, amount int, reason string) []Event {
	debtor.Debit(amount)
	eventType := EventTaxPaid
	if creditorID != "" {
		gs.findPlayer(creditorID).Credit(amount)
		eventType = EventRentPaid
	}
	evt := newEvent(eventType, debtor.ID)
	evt.TargetID = creditorID
	evt.Amount = amount
	evt.Detail = reason
	return []Event{evt}
}

// settleDebt retries the pending obligation after a cash-raising action.
func (gs *gameState) settleDebt() []Event {
	d := gs.pendingDebt
	if d == nil {
		return nil
	}
	debtor := gs.currentPlayer()
	if debtor == nil || !debtor.CanAfford(d.Amount) {
		return nil
	}
	gs.pendingDebt = nil
	return gs.payObligation(debtor, d.CreditorID, d.Amount, d.Reason)
}

// handlePurchase accepts the pending purchase offer.
func (gs *gameState) handlePurchase(actor *Player, propertyID string) ([]Event, *Rejection) {
	if gs.pendingPurchase == "" {
		return nil, reject(ErrInvalidPhase, "no purchase offer is pending")
	}
	if propertyID != "" && propertyID != gs.pendingPurchase {
		return nil, reject(ErrNotFound, "the pending offer is for %s", gs.pendingPurchase)
	}
	property := gs.properties[gs.pendingPurchase]
	if property.OwnerID != "" {
		return nil, reject(ErrAlreadyOwned, "%s is already owned", property.Name)
	}
	if rej := actor.Debit(property.Price); rej != nil {
		return nil, rej
	}
	property.OwnerID = actor.ID
	actor.AddProperty(property.ID)
	gs.pendingPurchase = ""
	return []Event{newPropertyEvent(EventPropertyPurchased, actor.ID, property.ID, property.Price)}, nil
}

// handleDeclinePurchase declines the offer and opens the auction.
func (gs *gameState) handleDeclinePurchase(actor *Player, now time.Time) ([]Event, *Rejection) {
	if gs.pendingPurchase == "" {
		return nil, reject(ErrInvalidPhase, "no purchase offer is pending")
	}
	propertyID := gs.pendingPurchase
	gs.pendingPurchase = ""
	return gs.startAuction(propertyID, now), nil
}

// handleMortgage pledges a property for its mortgage value. No property in
// the monopoly group may carry buildings.
func (gs *gameState) handleMortgage(actor *Player, propertyID string) ([]Event, *Rejection) {
	property, ok := gs.properties[propertyID]
	if !ok {
		return nil, reject(ErrNotFound, "unknown property %q", propertyID)
	}
	if property.OwnerID != actor.ID {
		return nil, reject(ErrNotFound, "%s does not own %s", actor.Name, property.Name)
	}
	if property.Mortgaged {
		return nil, reject(ErrMortgagedPropertyAction, "%s is already mortgaged", property.Name)
	}
	for _, sibling := range gs.groupSiblings(property.Group) {
		if sibling.HasBuildings() {
			return nil, reject(ErrMortgagedPropertyAction, "sell the buildings in the %s group first", property.Group)
		}
	}
	property.Mortgaged = true
	actor.Credit(property.MortgageValue)
	return []Event{newPropertyEvent(EventPropertyMortgaged, actor.ID, property.ID, property.MortgageValue)}, nil
}

// handleUnmortgage redeems a mortgage for the mortgage value plus 10%.
func (gs *gameState) handleUnmortgage(actor *Player, propertyID string) ([]Event, *Rejection) {
	property, ok := gs.properties[propertyID]
	if !ok {
		return nil, reject(ErrNotFound, "unknown property %q", propertyID)
	}
	if property.OwnerID != actor.ID {
		return nil, reject(ErrNotFound, "%s does not own %s", actor.Name, property.Name)
	}
	if !property.Mortgaged {
		return nil, reject(ErrMortgagedPropertyAction, "%s is not mortgaged", property.Name)
	}
	cost := property.UnmortgageCost()
	if rej := actor.Debit(cost); rej != nil {
		return nil, rej
	}
	property.Mortgaged = false
	return []Event{newPropertyEvent(EventPropertyRedeemed, actor.ID, property.ID, cost)}, nil
}

// handleEndTurn closes the current turn and rotates to the next player.
func (gs *gameState) handleEndTurn(actor *Player) ([]Event, *Rejection) {
	if gs.phase != PhaseActing {
		return nil, reject(ErrInvalidPhase, "turn cannot end in phase %s", gs.phase)
	}
	if gs.pendingPurchase != "" {
		return nil, reject(ErrInvalidPhase, "resolve the purchase offer first")
	}
	if gs.pendingDebt != nil {
		return nil, reject(ErrInvalidPhase, "settle the outstanding $%d first or declare bankruptcy", gs.pendingDebt.Amount)
	}
	return gs.endTurnInternal(actor), nil
}

// endTurnInternal closes the turn unconditionally and hands the board to the
// next non-bankrupt player.
func (gs *gameState) endTurnInternal(actor *Player) []Event {
	gs.phase = PhaseEnded
	gs.doublesCount = 0
	gs.extraRoll = false
	events := []Event{newEvent(EventTurnEnded, actor.ID)}
	if gs.status != StatusActive {
		return events
	}
	events = append(events, gs.advanceTurn()...)
	return events
}

// advanceTurn moves the current-player index circularly, skipping bankrupt
// players, and opens the next turn in the phase the player's jail status
// demands.
func (gs *gameState) advanceTurn() []Event {
	for i := 0; i < len(gs.players); i++ {
		gs.current = (gs.current + 1) % len(gs.players)
		if !gs.players[gs.current].Bankrupt {
			break
		}
	}
	next := gs.players[gs.current]
	if next.InJail {
		gs.phase = PhaseJailDecision
	} else {
		gs.phase = PhaseAwaitingRoll
	}
	evt := newEvent(EventTurnStarted, next.ID)
	evt.Detail = gs.phase.String()
	return []Event{evt}
}
