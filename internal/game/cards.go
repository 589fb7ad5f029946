package game

import (
	"time"

	"github.com/boardwalk/monopoly-server-go/internal/game/board"
)

// Card resolution. Drawn cards apply immediately and are discarded, except
// get-out-of-jail cards which the drawer retains until consumed. Card-driven
// movement re-enters the landing dispatcher, so a chance card can chain into
// rent, another draw, or jail.

func (gs *gameState) drawCard(p *Player, deck *Deck, now time.Time) []Event {
	card := deck.Draw()
	if card == nil {
		// Both jail-free cards are held by players and nothing else remains.
		return nil
	}

	evt := newEvent(EventCardDrawn, p.ID)
	evt.CardID = card.ID
	evt.Detail = card.Text
	events := []Event{evt}

	switch card.Effect {
	case board.EffectMoveAbsolute:
		deck.Discard(card)
		events = append(events, gs.movePlayerTo(p, card.Position, true)...)
		events = append(events, gs.resolveLanding(p, gs.lastDice[0]+gs.lastDice[1], now)...)

	case board.EffectMoveRelative:
		deck.Discard(card)
		events = append(events, gs.movePlayerBy(p, card.Amount)...)
		events = append(events, gs.resolveLanding(p, gs.lastDice[0]+gs.lastDice[1], now)...)

	case board.EffectPay:
		deck.Discard(card)
		events = append(events, gs.chargeObligation(p, "", card.Amount, card.Text)...)

	case board.EffectCollect:
		deck.Discard(card)
		p.Credit(card.Amount)
		collected := newEvent(EventCashCollected, p.ID)
		collected.Amount = card.Amount
		collected.Detail = card.Text
		events = append(events, collected)

	case board.EffectGoToJail:
		deck.Discard(card)
		events = append(events, gs.sendToJail(p)...)

	case board.EffectGetOutOfJail:
		// Retained by the drawer; returns to the discard pile on use.
		p.JailCards++
		gs.heldJailCards[p.ID] = append(gs.heldJailCards[p.ID], card)

	case board.EffectRepairs:
		deck.Discard(card)
		fee := gs.repairFee(p, card.HouseFee, card.HotelFee)
		events = append(events, gs.chargeObligation(p, "", fee, card.Text)...)

	case board.EffectCollectFromAll:
		deck.Discard(card)
		events = append(events, gs.collectFromAll(p, card.Amount, card.Text)...)
	}

	return events
}

// repairFee totals the per-building assessment across the player's holdings.
func (gs *gameState) repairFee(p *Player, houseFee, hotelFee int) int {
	fee := 0
	for _, id := range p.Properties {
		property := gs.properties[id]
		if property.Hotel {
			fee += hotelFee
		} else {
			fee += property.Houses * houseFee
		}
	}
	return fee
}

// collectFromAll takes amount from every other active player. A payer short
// of cash pays what they have; the shortfall is absorbed rather than forcing
// a mid-turn bankruptcy on a player who has no opportunity to raise cash.
func (gs *gameState) collectFromAll(collector *Player, amount int, reason string) []Event {
	var events []Event
	for _, payer := range gs.players {
		if payer.ID == collector.ID || payer.Bankrupt {
			continue
		}
		paid := amount
		if payer.Cash < paid {
			paid = payer.Cash
		}
		if paid == 0 {
			continue
		}
		payer.Debit(paid)
		collector.Credit(paid)
		evt := newEvent(EventRentPaid, payer.ID)
		evt.TargetID = collector.ID
		evt.Amount = paid
		evt.Detail = reason
		events = append(events, evt)
	}
	return events
}
