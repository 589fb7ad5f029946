package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSnapshotRoundTrip(t *testing.T) {
	tg := newTestGame(t, "Alice", "Bob")
	alice := tg.players[0]

	tg.queueRolls([2]int{1, 2})
	tg.mustApply(alice, Action{Type: ActionRollDice})
	tg.mustApply(alice, Action{Type: ActionPurchaseProperty, PropertyID: "baltic-avenue"})

	snap, rej := tg.engine.GetSnapshot(tg.id)
	require.Nil(t, rej)
	assert.Equal(t, SnapshotSchemaVersion, snap.SchemaVersion)
	assert.Equal(t, "ACTING", snap.Phase)
	assert.Equal(t, [2]int{1, 2}, snap.LastDice)

	restored := NewEngine(zap.NewNop())
	require.Nil(t, restored.RestoreGame(snap))

	again, rej := restored.GetSnapshot(tg.id)
	require.Nil(t, rej)
	assert.Equal(t, snap.Players, again.Players)
	assert.Equal(t, snap.Board, again.Board)
	assert.Equal(t, snap.Phase, again.Phase)
	assert.Equal(t, snap.CurrentPlayer, again.CurrentPlayer)
	assert.Equal(t, snap.ChanceDraw, again.ChanceDraw, "deck order survives the round trip")
	assert.Equal(t, snap.ChestDraw, again.ChestDraw)

	// The restored game keeps playing from where it left off.
	result := restored.ApplyAction(tg.id, alice, Action{Type: ActionEndTurn})
	require.True(t, result.Accepted, "restored game must accept actions: %v", result.Err)
}

func TestSnapshotCarriesHeldJailCards(t *testing.T) {
	tg := newTestGame(t, "Alice", "Bob")
	stackDeck(tg, "ch-jail-free")
	drawTop(tg, 0)

	snap, rej := tg.engine.GetSnapshot(tg.id)
	require.Nil(t, rej)
	require.Len(t, snap.Players[0].HeldJailCards, 1)
	assert.Equal(t, "ch-jail-free", snap.Players[0].HeldJailCards[0])

	restored := NewEngine(zap.NewNop())
	require.Nil(t, restored.RestoreGame(snap))
	gs, ok := restored.game(tg.id)
	require.True(t, ok)
	assert.Equal(t, 1, gs.findPlayer(tg.players[0]).JailCards)
	assert.Len(t, gs.heldJailCards[tg.players[0]], 1)
}

func TestSnapshotCarriesPendingState(t *testing.T) {
	tg := newTestGame(t, "Alice", "Bob")
	tg.gs.phase = PhaseActing
	tg.gs.pendingDebt = &debt{CreditorID: tg.players[1], Amount: 75, Reason: "rent"}

	snap, rej := tg.engine.GetSnapshot(tg.id)
	require.Nil(t, rej)
	require.NotNil(t, snap.PendingDebt)

	restored := NewEngine(zap.NewNop())
	require.Nil(t, restored.RestoreGame(snap))
	gs, _ := restored.game(tg.id)
	require.NotNil(t, gs.pendingDebt)
	assert.Equal(t, 75, gs.pendingDebt.Amount)
	assert.Equal(t, tg.players[1], gs.pendingDebt.CreditorID)

	// The narrowed action set survives restore.
	result := restored.ApplyAction(tg.id, tg.players[0], Action{Type: ActionEndTurn})
	require.False(t, result.Accepted)
}

func corruptibleSnapshot(t *testing.T) (*testGame, *Snapshot) {
	t.Helper()
	tg := newTestGame(t, "Alice", "Bob")
	snap, rej := tg.engine.GetSnapshot(tg.id)
	require.Nil(t, rej)
	return tg, snap
}

func TestRestoreRejectsCorruptSnapshots(t *testing.T) {
	cases := []struct {
		name    string
		corrupt func(*testGame, *Snapshot)
	}{
		{"wrong schema version", func(tg *testGame, s *Snapshot) {
			s.SchemaVersion = 99
		}},
		{"unknown phase", func(tg *testGame, s *Snapshot) {
			s.Phase = "LIMBO"
		}},
		{"position out of range", func(tg *testGame, s *Snapshot) {
			s.Players[0].Position = 40
		}},
		{"negative cash", func(tg *testGame, s *Snapshot) {
			s.Players[0].Cash = -1
		}},
		{"bankrupt player holding assets", func(tg *testGame, s *Snapshot) {
			s.Players[1].Bankrupt = true
			s.Players[1].Cash = 100
		}},
		{"current player out of range", func(tg *testGame, s *Snapshot) {
			s.CurrentPlayer = 5
		}},
		{"hotel and houses together", func(tg *testGame, s *Snapshot) {
			s.Board[0].Hotel = true
			s.Board[0].Houses = 2
		}},
		{"mortgaged with buildings", func(tg *testGame, s *Snapshot) {
			s.Board[0].Mortgaged = true
			s.Board[0].Houses = 1
		}},
		{"one-sided ownership", func(tg *testGame, s *Snapshot) {
			s.Board[0].OwnerID = s.Players[0].ID
		}},
		{"uneven group", func(tg *testGame, s *Snapshot) {
			for i := range s.Board {
				if s.Board[i].ID == "baltic-avenue" {
					s.Board[i].OwnerID = s.Players[0].ID
					s.Board[i].Houses = 3
					s.Players[0].Properties = append(s.Players[0].Properties, "baltic-avenue")
				}
			}
		}},
		{"unknown card", func(tg *testGame, s *Snapshot) {
			s.ChanceDraw[0] = "ch-not-a-card"
		}},
		{"jail card count mismatch", func(tg *testGame, s *Snapshot) {
			s.Players[0].JailCards = 2
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tg, snap := corruptibleSnapshot(t)
			tc.corrupt(tg, snap)

			restored := NewEngine(zap.NewNop())
			rej := restored.RestoreGame(snap)
			require.NotNil(t, rej)
			assert.Equal(t, ErrCorruptState, rej.Kind)

			// The instance is registered but halted: every action bounces.
			result := restored.ApplyAction(tg.id, tg.players[0], Action{Type: ActionRollDice})
			require.False(t, result.Accepted)
			assert.Equal(t, ErrCorruptState, result.Err.Kind)
		})
	}
}
