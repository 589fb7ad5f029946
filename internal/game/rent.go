package game

import "github.com/boardwalk/monopoly-server-go/internal/game/board"

// railroadRents maps the count of railroads the owner holds to the rent owed.
var railroadRents = [...]int{0, 25, 50, 100, 200}

// Holdings describes the owning player's position relevant to a rent
// calculation: the sibling properties in the monopoly group and how many
// railroads/utilities the owner holds in total.
type Holdings struct {
	Owner          *Player
	GroupSiblings  []*board.Property // every property in the group, the subject included
	RailroadsOwned int
	UtilitiesOwned int
}

// Rent computes the rent owed by visitorID for landing on p. It is a pure
// function with no side effects. diceTotal must be the roll that caused the
// landing; utility rent is derived from it directly.
//
// Zero is owed when the property is unowned, mortgaged, or owned by the
// visitor.
func Rent(p *board.Property, h Holdings, visitorID string, diceTotal int) int {
	if h.Owner == nil || p.OwnerID == "" || p.Mortgaged || p.OwnerID == visitorID {
		return 0
	}

	switch p.Kind {
	case board.PropertyRailroad:
		count := h.RailroadsOwned
		if count < 1 {
			count = 1
		}
		if count >= len(railroadRents) {
			count = len(railroadRents) - 1
		}
		return railroadRents[count]

	case board.PropertyUtility:
		if h.UtilitiesOwned >= 2 {
			return diceTotal * 10
		}
		return diceTotal * 4

	default:
		level := p.BuildingLevel()
		if level >= len(p.Rents) {
			level = len(p.Rents) - 1
		}
		rent := p.Rents[level]
		if level == 0 && ownsFullGroup(h.Owner.ID, h.GroupSiblings) {
			rent *= 2
		}
		return rent
	}
}

// ownsFullGroup reports whether ownerID holds every property in the group.
func ownsFullGroup(ownerID string, siblings []*board.Property) bool {
	if len(siblings) == 0 {
		return false
	}
	for _, sibling := range siblings {
		if sibling.OwnerID != ownerID {
			return false
		}
	}
	return true
}
