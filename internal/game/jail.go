package game

import (
	"time"

	"github.com/boardwalk/monopoly-server-go/internal/game/board"
)

// Jail lifecycle. Entry forces the token to the jail slot with no Go bonus
// however far the jump would wrap. While jailed, the player's turn opens in
// the jail-decision phase and only the three escape actions are legal.

// sendToJail incarcerates the player: direct placement, no movement events,
// no Go bonus.
func (gs *gameState) sendToJail(p *Player) []Event {
	p.Position = board.JailPosition
	p.InJail = true
	p.JailTurns = 0
	gs.doublesCount = 0
	gs.extraRoll = false
	evt := newEvent(EventPlayerJailed, p.ID)
	evt.Position = board.JailPosition
	return []Event{evt}
}

// release frees the player without moving the token.
func (gs *gameState) release(p *Player, detail string) []Event {
	p.InJail = false
	p.JailTurns = 0
	evt := newEvent(EventPlayerReleased, p.ID)
	evt.Detail = detail
	return []Event{evt}
}

// handleAttemptJailRoll consumes the turn's roll on a doubles attempt.
// Success releases the player and the rolled total counts as the turn's
// movement; the third failure forces release through card, then fine, then
// the bankruptcy path.
func (gs *gameState) handleAttemptJailRoll(actor *Player, now time.Time) ([]Event, *Rejection) {
	if gs.phase != PhaseJailDecision || !actor.InJail {
		return nil, reject(ErrNotInJail, "%s is not facing a jail decision", actor.Name)
	}

	d1, d2 := gs.rollDice()
	gs.lastDice = [2]int{d1, d2}
	events := []Event{gs.diceEvent(actor.ID, d1, d2)}

	if d1 == d2 {
		events = append(events, gs.release(actor, "rolled doubles")...)
		events = append(events, gs.movePlayerBy(actor, d1+d2)...)
		gs.phase = PhaseResolvingLanding
		events = append(events, gs.resolveLanding(actor, d1+d2, now)...)
		// Escape doubles never grant an extra roll.
		gs.finishResolution(actor, false)
		return events, nil
	}

	actor.JailTurns++
	if actor.JailTurns < gs.settings.MaxJailAttempts {
		gs.phase = PhaseActing
		return events, nil
	}

	// Third failed attempt: release is forced.
	switch {
	case actor.JailCards > 0:
		events = append(events, gs.consumeJailCard(actor)...)
		events = append(events, gs.release(actor, "forced release, card consumed")...)
	case actor.CanAfford(gs.settings.JailFine):
		events = append(events, gs.payObligation(actor, "", gs.settings.JailFine, "jail fine")...)
		events = append(events, gs.release(actor, "forced release, fine paid")...)
	default:
		// Released owing the fine to the bank; the debt settles or ends in
		// bankruptcy like any other obligation.
		events = append(events, gs.release(actor, "forced release, fine owed")...)
		events = append(events, gs.chargeObligation(actor, "", gs.settings.JailFine, "jail fine")...)
		gs.phase = PhaseActing
		return events, nil
	}

	// The forced release moves the player by the roll just thrown.
	events = append(events, gs.movePlayerBy(actor, d1+d2)...)
	gs.phase = PhaseResolvingLanding
	events = append(events, gs.resolveLanding(actor, d1+d2, now)...)
	gs.finishResolution(actor, false)
	return events, nil
}

// handlePayJailFine buys immediate release. Paying consumes the jail
// decision and the turn's roll: the player does not move this turn.
func (gs *gameState) handlePayJailFine(actor *Player) ([]Event, *Rejection) {
	if gs.phase != PhaseJailDecision || !actor.InJail {
		return nil, reject(ErrNotInJail, "%s is not facing a jail decision", actor.Name)
	}
	if !actor.CanAfford(gs.settings.JailFine) {
		return nil, reject(ErrInsufficientFunds, "the fine is $%d, %s has $%d", gs.settings.JailFine, actor.Name, actor.Cash)
	}
	events := gs.payObligation(actor, "", gs.settings.JailFine, "jail fine")
	events = append(events, gs.release(actor, "fine paid")...)
	gs.phase = PhaseActing
	return events, nil
}

// handleUseJailCard consumes a get-out-of-jail card for immediate release at
// no cost. The turn's normal roll remains available.
func (gs *gameState) handleUseJailCard(actor *Player) ([]Event, *Rejection) {
	if gs.phase != PhaseJailDecision || !actor.InJail {
		return nil, reject(ErrNotInJail, "%s is not facing a jail decision", actor.Name)
	}
	if actor.JailCards == 0 {
		return nil, reject(ErrNoJailCards, "%s holds no get-out-of-jail cards", actor.Name)
	}
	events := gs.consumeJailCard(actor)
	events = append(events, gs.release(actor, "card used")...)
	gs.phase = PhaseAwaitingRoll
	return events, nil
}

// consumeJailCard spends one held card and returns it to its deck's discard
// pile.
func (gs *gameState) consumeJailCard(actor *Player) []Event {
	actor.JailCards--
	cards := gs.heldJailCards[actor.ID]
	if len(cards) > 0 {
		card := cards[0]
		gs.heldJailCards[actor.ID] = cards[1:]
		gs.deckFor(card.Deck).Discard(card)
	}
	return nil
}
