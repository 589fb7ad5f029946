package game

import (
	"testing"

	"github.com/boardwalk/monopoly-server-go/internal/game/board"
	"github.com/stretchr/testify/assert"
)

func rentFixture() (map[string]*board.Property, map[string][]*board.Property) {
	properties := make(map[string]*board.Property)
	groups := make(map[string][]*board.Property)
	for _, space := range board.StandardSpaces() {
		if space.Property == nil {
			continue
		}
		properties[space.Property.ID] = space.Property
		groups[space.Property.Group] = append(groups[space.Property.Group], space.Property)
	}
	return properties, groups
}

func TestRentZeroCases(t *testing.T) {
	properties, groups := rentFixture()
	owner := &Player{ID: "owner", Name: "Owner"}
	baltic := properties["baltic-avenue"]
	h := Holdings{Owner: owner, GroupSiblings: groups["brown"]}

	assert.Equal(t, 0, Rent(baltic, Holdings{GroupSiblings: groups["brown"]}, "visitor", 7), "unowned")

	baltic.OwnerID = owner.ID
	assert.Equal(t, 0, Rent(baltic, h, owner.ID, 7), "owner visits own property")

	baltic.Mortgaged = true
	assert.Equal(t, 0, Rent(baltic, h, "visitor", 7), "mortgaged")
}

func TestStreetRentSchedule(t *testing.T) {
	properties, groups := rentFixture()
	owner := &Player{ID: "owner", Name: "Owner"}
	baltic := properties["baltic-avenue"]
	baltic.OwnerID = owner.ID
	h := Holdings{Owner: owner, GroupSiblings: groups["brown"]}

	assert.Equal(t, 4, Rent(baltic, h, "visitor", 7), "base rent, incomplete group")

	// Full group without buildings doubles the base rent.
	properties["mediterranean-avenue"].OwnerID = owner.ID
	assert.Equal(t, 8, Rent(baltic, h, "visitor", 7))

	for houses, want := range map[int]int{1: 20, 2: 60, 3: 180, 4: 320} {
		baltic.Houses = houses
		assert.Equal(t, want, Rent(baltic, h, "visitor", 7), "%d houses", houses)
	}

	baltic.Houses = 0
	baltic.Hotel = true
	assert.Equal(t, 450, Rent(baltic, h, "visitor", 7), "hotel")
}

func TestRailroadRentByCount(t *testing.T) {
	properties, groups := rentFixture()
	owner := &Player{ID: "owner", Name: "Owner"}
	reading := properties["reading-railroad"]
	reading.OwnerID = owner.ID

	for count, want := range map[int]int{1: 25, 2: 50, 3: 100, 4: 200} {
		h := Holdings{Owner: owner, GroupSiblings: groups["railroad"], RailroadsOwned: count}
		assert.Equal(t, want, Rent(reading, h, "visitor", 7), "%d railroads", count)
	}
}

func TestUtilityRentFromDice(t *testing.T) {
	properties, groups := rentFixture()
	owner := &Player{ID: "owner", Name: "Owner"}
	electric := properties["electric-company"]
	electric.OwnerID = owner.ID

	h := Holdings{Owner: owner, GroupSiblings: groups["utility"], UtilitiesOwned: 1}
	assert.Equal(t, 28, Rent(electric, h, "visitor", 7), "one utility pays four times the roll")

	h.UtilitiesOwned = 2
	assert.Equal(t, 70, Rent(electric, h, "visitor", 7), "both utilities pay ten times the roll")
}
