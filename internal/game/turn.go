package game

import "fmt"

// Phase represents the stage of the current player's turn.
type Phase int

const (
	PhaseAwaitingRoll Phase = iota
	PhaseJailDecision
	PhaseMoved
	PhaseResolvingLanding
	PhaseActing
	PhaseEnded
)

var phaseNames = map[Phase]string{
	PhaseAwaitingRoll:     "AWAITING_ROLL",
	PhaseJailDecision:     "JAIL_DECISION",
	PhaseMoved:            "MOVED",
	PhaseResolvingLanding: "RESOLVING_LANDING",
	PhaseActing:           "ACTING",
	PhaseEnded:            "ENDED",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return fmt.Sprintf("PHASE_%d", int(p))
}

// phaseFromName is the inverse of String, used when restoring snapshots.
func phaseFromName(name string) (Phase, bool) {
	for phase, n := range phaseNames {
		if n == name {
			return phase, true
		}
	}
	return 0, false
}
