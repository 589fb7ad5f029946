package game

import (
	"testing"
	"time"

	"github.com/boardwalk/monopoly-server-go/internal/game/board"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stackDeck replaces the game's chance deck with a fixed draw order.
func stackDeck(tg *testGame, ids ...string) *Deck {
	var cards []*board.Card
	for _, id := range ids {
		card, ok := board.FindCard(id)
		require.True(tg.t, ok, "unknown card %s", id)
		cards = append(cards, card)
	}
	tg.gs.chance = &Deck{kind: board.DeckChance, draw: cards, rng: tg.gs.rng}
	return tg.gs.chance
}

func drawTop(tg *testGame, playerIdx int) []Event {
	return tg.gs.drawCard(tg.player(playerIdx), tg.gs.chance, time.Now())
}

func TestCardAdvanceToGoCollectsBonus(t *testing.T) {
	tg := newTestGame(t, "Alice", "Bob")
	stackDeck(tg, "ch-advance-go")
	tg.player(0).Position = 22

	events := drawTop(tg, 0)

	drawn := findEvent(events, EventCardDrawn)
	require.NotNil(t, drawn)
	assert.Equal(t, "ch-advance-go", drawn.CardID)
	assert.Equal(t, 0, tg.player(0).Position)
	assert.True(t, hasEvent(events, EventPlayerPassedGo))
	assert.Equal(t, 1700, tg.player(0).Cash)
}

func TestCardMovementChainsIntoLanding(t *testing.T) {
	tg := newTestGame(t, "Alice", "Bob")
	stackDeck(tg, "ch-go-back-three")
	// Chance at 7; three back is Income Tax at 4.
	tg.player(0).Position = 7
	tg.gs.lastDice = [2]int{3, 4}

	events := drawTop(tg, 0)

	assert.Equal(t, 4, tg.player(0).Position)
	tax := findEvent(events, EventTaxPaid)
	require.NotNil(t, tax, "the card's landing resolves like a rolled one")
	assert.Equal(t, 200, tax.Amount)
	assert.Equal(t, 1300, tg.player(0).Cash)
}

func TestCardGoToJail(t *testing.T) {
	tg := newTestGame(t, "Alice", "Bob")
	stackDeck(tg, "ch-go-to-jail")
	tg.player(0).Position = 36

	events := drawTop(tg, 0)

	assert.True(t, hasEvent(events, EventPlayerJailed))
	assert.True(t, tg.player(0).InJail)
	assert.Equal(t, board.JailPosition, tg.player(0).Position)
	assert.False(t, hasEvent(events, EventPlayerPassedGo), "jail placement never pays the bonus")
	assert.Equal(t, 1500, tg.player(0).Cash)
}

func TestCardPayAndCollect(t *testing.T) {
	tg := newTestGame(t, "Alice", "Bob")
	stackDeck(tg, "ch-poor-tax", "ch-dividend")

	events := drawTop(tg, 0)
	assert.True(t, hasEvent(events, EventTaxPaid))
	assert.Equal(t, 1485, tg.player(0).Cash)

	events = drawTop(tg, 0)
	collected := findEvent(events, EventCashCollected)
	require.NotNil(t, collected)
	assert.Equal(t, 50, collected.Amount)
	assert.Equal(t, 1535, tg.player(0).Cash)
}

func TestCardRepairsAssessPerBuilding(t *testing.T) {
	tg := newTestGame(t, "Alice", "Bob")
	stackDeck(tg, "ch-general-repairs")
	alice := tg.players[0]

	tg.give(alice, "mediterranean-avenue").Houses = 3
	tg.give(alice, "baltic-avenue").Hotel = true
	tg.give(alice, "oriental-avenue") // no buildings, no fee

	events := drawTop(tg, 0)

	tax := findEvent(events, EventTaxPaid)
	require.NotNil(t, tax)
	assert.Equal(t, 3*25+100, tax.Amount)
	assert.Equal(t, 1500-175, tg.player(0).Cash)
}

func TestCardCollectFromAllTakesPartialPayment(t *testing.T) {
	tg := newTestGame(t, "Alice", "Bob", "Carol")
	card, ok := board.FindCard("cc-birthday")
	require.True(t, ok)
	tg.gs.communityChest = &Deck{kind: board.DeckCommunityChest, draw: []*board.Card{card}, rng: tg.gs.rng}
	tg.player(1).Cash = 4 // short payer

	events := tg.gs.drawCard(tg.player(0), tg.gs.communityChest, time.Now())

	paid := 0
	for _, evt := range events {
		if evt.Type == EventRentPaid {
			paid += evt.Amount
		}
	}
	assert.Equal(t, 14, paid, "a short payer pays what they have")
	assert.Equal(t, 1514, tg.player(0).Cash)
	assert.Equal(t, 0, tg.player(1).Cash)
	assert.Equal(t, 1490, tg.player(2).Cash)
}

func TestCardJailFreeIsRetained(t *testing.T) {
	tg := newTestGame(t, "Alice", "Bob")
	deck := stackDeck(tg, "ch-jail-free", "ch-dividend")

	drawTop(tg, 0)

	assert.Equal(t, 1, tg.player(0).JailCards)
	assert.Len(t, tg.gs.heldJailCards[tg.players[0]], 1)
	assert.Empty(t, deck.discard, "a retained card is not discarded")
	assert.Equal(t, 1, deck.Remaining())
}

func TestDeckReshufflesDiscardWhenEmpty(t *testing.T) {
	tg := newTestGame(t, "Alice", "Bob")
	deck := stackDeck(tg, "ch-poor-tax", "ch-dividend")

	drawTop(tg, 0)
	drawTop(tg, 0)
	assert.Equal(t, 0, deck.Remaining())
	assert.Len(t, deck.discard, 2)

	card := deck.Draw()
	require.NotNil(t, card, "the discard pile reshuffles into a new draw pile")
	assert.Equal(t, 1, deck.Remaining())
	assert.Empty(t, deck.discard)
}

func TestDeckExhaustedWhenAllCardsHeld(t *testing.T) {
	tg := newTestGame(t, "Alice", "Bob")
	deck := stackDeck(tg, "ch-jail-free")

	events := drawTop(tg, 0)
	assert.True(t, hasEvent(events, EventCardDrawn))

	events = drawTop(tg, 0)
	assert.Empty(t, events, "every card is held; the draw is a no-op")
	assert.Nil(t, deck.Draw())
}
