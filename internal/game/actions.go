package game

// ActionType names a player-initiated action.
type ActionType string

const (
	ActionRollDice          ActionType = "ROLL_DICE"
	ActionEndTurn           ActionType = "END_TURN"
	ActionPurchaseProperty  ActionType = "PURCHASE_PROPERTY"
	ActionDeclinePurchase   ActionType = "DECLINE_PURCHASE"
	ActionPlaceBid          ActionType = "PLACE_BID"
	ActionBuildHouse        ActionType = "BUILD_HOUSE"
	ActionBuildHotel        ActionType = "BUILD_HOTEL"
	ActionSellHouse         ActionType = "SELL_HOUSE"
	ActionSellHotel         ActionType = "SELL_HOTEL"
	ActionMortgage          ActionType = "MORTGAGE"
	ActionUnmortgage        ActionType = "UNMORTGAGE"
	ActionPayJailFine       ActionType = "PAY_JAIL_FINE"
	ActionUseJailCard       ActionType = "USE_JAIL_CARD"
	ActionAttemptJailRoll   ActionType = "ATTEMPT_JAIL_ROLL"
	ActionDeclareBankruptcy ActionType = "DECLARE_BANKRUPTCY"
)

// Action is a player request against a game instance. PropertyID, AuctionID
// and Amount are interpreted per action type.
type Action struct {
	Type       ActionType `json:"type"`
	PropertyID string     `json:"propertyId,omitempty"`
	AuctionID  string     `json:"auctionId,omitempty"`
	Amount     int        `json:"amount,omitempty"`
}

// ActionResult is the engine's reply to ApplyAction. Err is nil exactly when
// Accepted is true; rejected actions leave the game state untouched.
type ActionResult struct {
	Accepted bool
	Events   []Event
	Err      *Rejection
}

func accepted(events []Event) ActionResult {
	return ActionResult{Accepted: true, Events: events}
}

func rejected(rej *Rejection) ActionResult {
	return ActionResult{Accepted: false, Err: rej}
}
