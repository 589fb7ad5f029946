package game

import "fmt"

// ErrorKind categorizes an action rejection.
type ErrorKind string

const (
	ErrNotYourTurn             ErrorKind = "NOT_YOUR_TURN"
	ErrInvalidPhase            ErrorKind = "INVALID_PHASE"
	ErrNotFound                ErrorKind = "NOT_FOUND"
	ErrAlreadyOwned            ErrorKind = "ALREADY_OWNED"
	ErrInsufficientFunds       ErrorKind = "INSUFFICIENT_FUNDS"
	ErrMonopolyRequired        ErrorKind = "MONOPOLY_REQUIRED"
	ErrUnevenBuilding          ErrorKind = "UNEVEN_BUILDING"
	ErrMortgagedPropertyAction ErrorKind = "MORTGAGED_PROPERTY_ACTION"
	ErrAuctionInactive         ErrorKind = "AUCTION_INACTIVE"
	ErrBidTooLow               ErrorKind = "BID_TOO_LOW"
	ErrNotInJail               ErrorKind = "NOT_IN_JAIL"
	ErrNoJailCards             ErrorKind = "NO_JAIL_CARDS"
	ErrCorruptState            ErrorKind = "CORRUPT_STATE"
)

// Rejection is a typed refusal of a player action. It is returned as a value,
// never panicked, so the engine stays usable in a request/response style.
type Rejection struct {
	Kind   ErrorKind
	Reason string
}

func (r *Rejection) Error() string {
	return fmt.Sprintf("%s: %s", r.Kind, r.Reason)
}

// reject builds a Rejection with a formatted human-readable reason.
func reject(kind ErrorKind, format string, args ...interface{}) *Rejection {
	return &Rejection{Kind: kind, Reason: fmt.Sprintf(format, args...)}
}
