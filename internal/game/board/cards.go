package board

import "fmt"

// DeckKind identifies which pile a card belongs to.
type DeckKind string

const (
	DeckChance         DeckKind = "chance"
	DeckCommunityChest DeckKind = "community-chest"
)

// CardEffect is the effect descriptor applied when a card is drawn.
type CardEffect int

const (
	EffectMoveAbsolute CardEffect = iota
	EffectMoveRelative
	EffectPay
	EffectCollect
	EffectGoToJail
	EffectGetOutOfJail
	EffectRepairs
	EffectCollectFromAll
)

var cardEffectNames = map[CardEffect]string{
	EffectMoveAbsolute:   "MOVE_ABSOLUTE",
	EffectMoveRelative:   "MOVE_RELATIVE",
	EffectPay:            "PAY",
	EffectCollect:        "COLLECT",
	EffectGoToJail:       "GO_TO_JAIL",
	EffectGetOutOfJail:   "GET_OUT_OF_JAIL",
	EffectRepairs:        "REPAIRS",
	EffectCollectFromAll: "COLLECT_FROM_ALL",
}

func (e CardEffect) String() string {
	if name, ok := cardEffectNames[e]; ok {
		return name
	}
	return fmt.Sprintf("EFFECT_%d", int(e))
}

// Card is an immutable value shared by reference from the static deck
// definitions below. Per-game decks hold shuffled orderings of these
// pointers; the definitions themselves are never mutated.
type Card struct {
	ID       string     `json:"id"`
	Deck     DeckKind   `json:"deck"`
	Text     string     `json:"text"`
	Effect   CardEffect `json:"effect"`
	Amount   int        `json:"amount,omitempty"`   // payment, collection, or relative steps
	Position int        `json:"position,omitempty"` // absolute movement target
	HouseFee int        `json:"houseFee,omitempty"`
	HotelFee int        `json:"hotelFee,omitempty"`
}

var chanceCards = []*Card{
	{ID: "ch-advance-go", Deck: DeckChance, Text: "Advance to Go. Collect $200.", Effect: EffectMoveAbsolute, Position: 0},
	{ID: "ch-advance-illinois", Deck: DeckChance, Text: "Advance to Illinois Avenue.", Effect: EffectMoveAbsolute, Position: 24},
	{ID: "ch-advance-st-charles", Deck: DeckChance, Text: "Advance to St. Charles Place.", Effect: EffectMoveAbsolute, Position: 11},
	{ID: "ch-advance-boardwalk", Deck: DeckChance, Text: "Take a walk on the Boardwalk.", Effect: EffectMoveAbsolute, Position: 39},
	{ID: "ch-advance-reading", Deck: DeckChance, Text: "Take a trip to Reading Railroad.", Effect: EffectMoveAbsolute, Position: 5},
	{ID: "ch-go-back-three", Deck: DeckChance, Text: "Go back three spaces.", Effect: EffectMoveRelative, Amount: -3},
	{ID: "ch-go-to-jail", Deck: DeckChance, Text: "Go directly to Jail. Do not pass Go.", Effect: EffectGoToJail},
	{ID: "ch-jail-free", Deck: DeckChance, Text: "Get Out of Jail Free.", Effect: EffectGetOutOfJail},
	{ID: "ch-dividend", Deck: DeckChance, Text: "Bank pays you a dividend of $50.", Effect: EffectCollect, Amount: 50},
	{ID: "ch-poor-tax", Deck: DeckChance, Text: "Pay poor tax of $15.", Effect: EffectPay, Amount: 15},
	{ID: "ch-loan-matures", Deck: DeckChance, Text: "Your building loan matures. Collect $150.", Effect: EffectCollect, Amount: 150},
	{ID: "ch-general-repairs", Deck: DeckChance, Text: "Make general repairs on all your property: $25 per house, $100 per hotel.", Effect: EffectRepairs, HouseFee: 25, HotelFee: 100},
}

var communityChestCards = []*Card{
	{ID: "cc-advance-go", Deck: DeckCommunityChest, Text: "Advance to Go. Collect $200.", Effect: EffectMoveAbsolute, Position: 0},
	{ID: "cc-bank-error", Deck: DeckCommunityChest, Text: "Bank error in your favor. Collect $200.", Effect: EffectCollect, Amount: 200},
	{ID: "cc-doctors-fee", Deck: DeckCommunityChest, Text: "Doctor's fee. Pay $50.", Effect: EffectPay, Amount: 50},
	{ID: "cc-stock-sale", Deck: DeckCommunityChest, Text: "From sale of stock you get $50.", Effect: EffectCollect, Amount: 50},
	{ID: "cc-go-to-jail", Deck: DeckCommunityChest, Text: "Go directly to Jail. Do not pass Go.", Effect: EffectGoToJail},
	{ID: "cc-jail-free", Deck: DeckCommunityChest, Text: "Get Out of Jail Free.", Effect: EffectGetOutOfJail},
	{ID: "cc-holiday-fund", Deck: DeckCommunityChest, Text: "Holiday fund matures. Receive $100.", Effect: EffectCollect, Amount: 100},
	{ID: "cc-tax-refund", Deck: DeckCommunityChest, Text: "Income tax refund. Collect $20.", Effect: EffectCollect, Amount: 20},
	{ID: "cc-birthday", Deck: DeckCommunityChest, Text: "It is your birthday. Collect $10 from every player.", Effect: EffectCollectFromAll, Amount: 10},
	{ID: "cc-life-insurance", Deck: DeckCommunityChest, Text: "Life insurance matures. Collect $100.", Effect: EffectCollect, Amount: 100},
	{ID: "cc-hospital-fees", Deck: DeckCommunityChest, Text: "Pay hospital fees of $100.", Effect: EffectPay, Amount: 100},
	{ID: "cc-street-repairs", Deck: DeckCommunityChest, Text: "You are assessed for street repairs: $40 per house, $115 per hotel.", Effect: EffectRepairs, HouseFee: 40, HotelFee: 115},
}

// ChanceCards returns the static chance deck definition.
func ChanceCards() []*Card {
	cards := make([]*Card, len(chanceCards))
	copy(cards, chanceCards)
	return cards
}

// CommunityChestCards returns the static community chest deck definition.
func CommunityChestCards() []*Card {
	cards := make([]*Card, len(communityChestCards))
	copy(cards, communityChestCards)
	return cards
}

// FindCard looks a card up by ID across both static decks.
func FindCard(id string) (*Card, bool) {
	for _, c := range chanceCards {
		if c.ID == id {
			return c, true
		}
	}
	for _, c := range communityChestCards {
		if c.ID == id {
			return c, true
		}
	}
	return nil, false
}
