package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStandardLayoutShape(t *testing.T) {
	spaces := StandardSpaces()
	require.Len(t, spaces, Size)

	counts := make(map[SpaceKind]int)
	properties := 0
	for i, space := range spaces {
		assert.Equal(t, i, space.Position)
		counts[space.Kind]++
		if space.Property != nil {
			properties++
			assert.Equal(t, i, space.Property.Position)
			assert.Equal(t, space.Property.Price/2, space.Property.MortgageValue)
		}
	}

	assert.Equal(t, 22, counts[SpaceStreet])
	assert.Equal(t, 4, counts[SpaceRailroad])
	assert.Equal(t, 2, counts[SpaceUtility])
	assert.Equal(t, 2, counts[SpaceTax])
	assert.Equal(t, 3, counts[SpaceChance])
	assert.Equal(t, 3, counts[SpaceCommunityChest])
	assert.Equal(t, 1, counts[SpaceGo])
	assert.Equal(t, 1, counts[SpaceJail])
	assert.Equal(t, 1, counts[SpaceGoToJail])
	assert.Equal(t, 1, counts[SpaceFreeParking])
	assert.Equal(t, 28, properties)

	assert.Equal(t, SpaceJail, spaces[JailPosition].Kind)
	assert.Equal(t, SpaceGo, spaces[GoPosition].Kind)
}

func TestStandardSpacesAreIndependentCopies(t *testing.T) {
	a := StandardSpaces()
	b := StandardSpaces()

	a[1].Property.OwnerID = "someone"
	a[1].Property.Houses = 3
	assert.Equal(t, "", b[1].Property.OwnerID, "each game owns its own board")
	assert.Equal(t, 0, b[1].Property.Houses)
}

func TestStreetGroupsAreComplete(t *testing.T) {
	groups := make(map[string]int)
	for _, space := range StandardSpaces() {
		if space.Property != nil && space.Property.Kind == PropertyStreet {
			groups[space.Property.Group]++
		}
	}
	assert.Equal(t, 2, groups["brown"])
	assert.Equal(t, 2, groups["dark-blue"])
	for _, group := range []string{"light-blue", "pink", "orange", "red", "yellow", "green"} {
		assert.Equal(t, 3, groups[group], "group %s", group)
	}
}

func TestBuildingLevelAndUnmortgageCost(t *testing.T) {
	p := &Property{MortgageValue: 30}
	assert.Equal(t, 0, p.BuildingLevel())
	assert.False(t, p.HasBuildings())

	p.Houses = 4
	assert.Equal(t, 4, p.BuildingLevel())

	p.Houses = 0
	p.Hotel = true
	assert.Equal(t, HotelLevel, p.BuildingLevel())
	assert.True(t, p.HasBuildings())

	assert.Equal(t, 33, p.UnmortgageCost())
}

func TestDeckDefinitions(t *testing.T) {
	chance := ChanceCards()
	chest := CommunityChestCards()
	assert.Len(t, chance, 12)
	assert.Len(t, chest, 12)

	for _, c := range chance {
		assert.Equal(t, DeckChance, c.Deck)
	}
	for _, c := range chest {
		assert.Equal(t, DeckCommunityChest, c.Deck)
	}

	card, ok := FindCard("ch-jail-free")
	require.True(t, ok)
	assert.Equal(t, EffectGetOutOfJail, card.Effect)

	_, ok = FindCard("missing")
	assert.False(t, ok)
}
