package game

import (
	"testing"

	"github.com/boardwalk/monopoly-server-go/internal/game/board"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// jailPlayer puts the first player in jail facing the jail decision.
func jailPlayer(tg *testGame) *Player {
	p := tg.player(0)
	p.InJail = true
	p.Position = board.JailPosition
	tg.gs.phase = PhaseJailDecision
	return p
}

func TestJailBlocksNormalRoll(t *testing.T) {
	tg := newTestGame(t, "Alice", "Bob")
	jailPlayer(tg)

	result := tg.apply(tg.players[0], Action{Type: ActionRollDice})
	require.False(t, result.Accepted)
	assert.Equal(t, ErrInvalidPhase, result.Err.Kind)
}

func TestJailEscapeByDoubles(t *testing.T) {
	tg := newTestGame(t, "Alice", "Bob")
	alice := jailPlayer(tg)

	tg.queueRolls([2]int{2, 2}) // 10 -> 14 Virginia Avenue
	events := tg.mustApply(alice.ID, Action{Type: ActionAttemptJailRoll})

	assert.True(t, hasEvent(events, EventPlayerReleased))
	assert.False(t, alice.InJail)
	assert.Equal(t, 14, alice.Position)
	assert.True(t, hasEvent(events, EventPropertyOffered))
	// Escape doubles never grant an extra roll.
	assert.False(t, tg.gs.extraRoll)
}

func TestJailFailedAttemptsForceReleaseByFine(t *testing.T) {
	tg := newTestGame(t, "Alice", "Bob")
	alice := jailPlayer(tg)

	for attempt := 1; attempt <= 2; attempt++ {
		tg.queueRolls([2]int{1, 2})
		events := tg.mustApply(alice.ID, Action{Type: ActionAttemptJailRoll})
		assert.False(t, hasEvent(events, EventPlayerReleased))
		assert.Equal(t, attempt, alice.JailTurns)
		assert.Equal(t, PhaseActing, tg.gs.phase)
		tg.gs.phase = PhaseJailDecision // simulate the next turn's jail decision
	}

	tg.queueRolls([2]int{1, 2})
	events := tg.mustApply(alice.ID, Action{Type: ActionAttemptJailRoll})

	released := findEvent(events, EventPlayerReleased)
	require.NotNil(t, released, "the third failure forces release")
	tax := findEvent(events, EventTaxPaid)
	require.NotNil(t, tax)
	assert.Equal(t, 50, tax.Amount, "fine paid on forced release")
	assert.False(t, alice.InJail)
	assert.Equal(t, 13, alice.Position, "forced release moves by the rolled total")
	assert.Equal(t, 1450, alice.Cash)
}

func TestJailForcedReleaseConsumesCardFirst(t *testing.T) {
	tg := newTestGame(t, "Alice", "Bob")
	alice := jailPlayer(tg)
	alice.JailTurns = 2

	card, ok := board.FindCard("ch-jail-free")
	require.True(t, ok)
	alice.JailCards = 1
	tg.gs.heldJailCards[alice.ID] = []*board.Card{card}
	before := len(tg.gs.chance.discard)

	tg.queueRolls([2]int{1, 2})
	events := tg.mustApply(alice.ID, Action{Type: ActionAttemptJailRoll})

	assert.True(t, hasEvent(events, EventPlayerReleased))
	assert.False(t, hasEvent(events, EventTaxPaid), "the card spares the fine")
	assert.Equal(t, 0, alice.JailCards)
	assert.Equal(t, 1500, alice.Cash)
	assert.Len(t, tg.gs.chance.discard, before+1, "the consumed card returns to its deck")
}

func TestJailForcedReleaseWithoutFundsParksDebt(t *testing.T) {
	tg := newTestGame(t, "Alice", "Bob")
	alice := jailPlayer(tg)
	alice.JailTurns = 2
	alice.Cash = 10
	tg.give(alice.ID, "baltic-avenue")
	tg.give(alice.ID, "oriental-avenue")

	tg.queueRolls([2]int{1, 2})
	events := tg.mustApply(alice.ID, Action{Type: ActionAttemptJailRoll})

	assert.True(t, hasEvent(events, EventPlayerReleased))
	assert.True(t, hasEvent(events, EventDebtIncurred))
	require.NotNil(t, tg.gs.pendingDebt)
	assert.Equal(t, 50, tg.gs.pendingDebt.Amount)

	// Only cash raising or bankruptcy is legal now.
	result := tg.apply(alice.ID, Action{Type: ActionEndTurn})
	require.False(t, result.Accepted)

	// Mortgaging Baltic raises $30: still short, the debt stays.
	tg.mustApply(alice.ID, Action{Type: ActionMortgage, PropertyID: "baltic-avenue"})
	require.NotNil(t, tg.gs.pendingDebt)

	// Oriental's $50 covers it; the obligation settles automatically.
	events = tg.mustApply(alice.ID, Action{Type: ActionMortgage, PropertyID: "oriental-avenue"})
	assert.True(t, hasEvent(events, EventTaxPaid), "the parked fine is paid")
	assert.Nil(t, tg.gs.pendingDebt)
	assert.Equal(t, 10+30+50-50, alice.Cash)
}

func TestPayJailFineConsumesRoll(t *testing.T) {
	tg := newTestGame(t, "Alice", "Bob")
	alice := jailPlayer(tg)

	events := tg.mustApply(alice.ID, Action{Type: ActionPayJailFine})
	assert.True(t, hasEvent(events, EventPlayerReleased))
	assert.Equal(t, 1450, alice.Cash)
	assert.Equal(t, board.JailPosition, alice.Position, "paying does not move the token")

	// The fine bought release, not movement: the roll is spent.
	result := tg.apply(alice.ID, Action{Type: ActionRollDice})
	require.False(t, result.Accepted)
	assert.Equal(t, ErrInvalidPhase, result.Err.Kind)

	tg.mustApply(alice.ID, Action{Type: ActionEndTurn})
}

func TestPayJailFineRequiresFunds(t *testing.T) {
	tg := newTestGame(t, "Alice", "Bob")
	alice := jailPlayer(tg)
	alice.Cash = 20

	result := tg.apply(alice.ID, Action{Type: ActionPayJailFine})
	require.False(t, result.Accepted)
	assert.Equal(t, ErrInsufficientFunds, result.Err.Kind)
	assert.True(t, alice.InJail)
}

func TestUseJailCardKeepsRoll(t *testing.T) {
	tg := newTestGame(t, "Alice", "Bob")
	alice := jailPlayer(tg)

	card, ok := board.FindCard("cc-jail-free")
	require.True(t, ok)
	alice.JailCards = 1
	tg.gs.heldJailCards[alice.ID] = []*board.Card{card}

	events := tg.mustApply(alice.ID, Action{Type: ActionUseJailCard})
	assert.True(t, hasEvent(events, EventPlayerReleased))
	assert.Equal(t, 1500, alice.Cash, "the card costs nothing")
	assert.Equal(t, 0, alice.JailCards)

	// The turn's roll is still available after using the card.
	tg.queueRolls([2]int{1, 2})
	events = tg.mustApply(alice.ID, Action{Type: ActionRollDice})
	assert.Equal(t, 13, alice.Position)
}

func TestUseJailCardWithoutHoldingOne(t *testing.T) {
	tg := newTestGame(t, "Alice", "Bob")
	alice := jailPlayer(tg)

	result := tg.apply(alice.ID, Action{Type: ActionUseJailCard})
	require.False(t, result.Accepted)
	assert.Equal(t, ErrNoJailCards, result.Err.Kind)
}

func TestJailActionsRejectedOutsideJail(t *testing.T) {
	tg := newTestGame(t, "Alice", "Bob")
	alice := tg.players[0]

	for _, actionType := range []ActionType{ActionPayJailFine, ActionUseJailCard, ActionAttemptJailRoll} {
		result := tg.apply(alice, Action{Type: actionType})
		require.False(t, result.Accepted, "%s must be rejected outside jail", actionType)
		assert.Equal(t, ErrNotInJail, result.Err.Kind)
	}
}
