// Package board defines the entity model for the playing surface: spaces,
// properties, and cards, plus the standard layout and deck definitions.
// It holds data and invariant-preserving accessors only; rules live in the
// game package.
package board

import "fmt"

// SpaceKind is the tagged variant discriminator for board spaces. The landing
// dispatcher in the game package switches exhaustively over it.
type SpaceKind int

const (
	SpaceGo SpaceKind = iota
	SpaceStreet
	SpaceRailroad
	SpaceUtility
	SpaceTax
	SpaceChance
	SpaceCommunityChest
	SpaceJail
	SpaceGoToJail
	SpaceFreeParking
)

var spaceKindNames = map[SpaceKind]string{
	SpaceGo:             "GO",
	SpaceStreet:         "STREET",
	SpaceRailroad:       "RAILROAD",
	SpaceUtility:        "UTILITY",
	SpaceTax:            "TAX",
	SpaceChance:         "CHANCE",
	SpaceCommunityChest: "COMMUNITY_CHEST",
	SpaceJail:           "JAIL",
	SpaceGoToJail:       "GO_TO_JAIL",
	SpaceFreeParking:    "FREE_PARKING",
}

func (k SpaceKind) String() string {
	if name, ok := spaceKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("SPACE_%d", int(k))
}

// Space is one of the 40 board slots. Property is set for street, railroad
// and utility spaces; TaxAmount is set for tax spaces.
type Space struct {
	Kind      SpaceKind `json:"kind"`
	Name      string    `json:"name"`
	Position  int       `json:"position"`
	Property  *Property `json:"property,omitempty"`
	TaxAmount int       `json:"taxAmount,omitempty"`
}

// PropertyKind distinguishes the three purchasable categories.
type PropertyKind int

const (
	PropertyStreet PropertyKind = iota
	PropertyRailroad
	PropertyUtility
)

var propertyKindNames = map[PropertyKind]string{
	PropertyStreet:   "STREET",
	PropertyRailroad: "RAILROAD",
	PropertyUtility:  "UTILITY",
}

func (k PropertyKind) String() string {
	if name, ok := propertyKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("PROPERTY_%d", int(k))
}

// HotelLevel is the building level reported for a property carrying a hotel.
// A hotel is a distinct state from four houses, never a fifth house.
const HotelLevel = 5

// MaxHouses is the number of houses a street holds before a hotel is the only
// further upgrade.
const MaxHouses = 4

// Property is a purchasable board slot. OwnerID is empty while the bank holds
// it. Houses and Hotel are mutually exclusive representations of the building
// state: Hotel true implies Houses == 0.
type Property struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	Kind          PropertyKind `json:"kind"`
	Group         string       `json:"group"`
	Position      int          `json:"position"`
	Price         int          `json:"price"`
	MortgageValue int          `json:"mortgageValue"`
	Rents         []int        `json:"rents,omitempty"` // streets only, indexed by building level
	HouseCost     int          `json:"houseCost,omitempty"`
	HotelCost     int          `json:"hotelCost,omitempty"`
	OwnerID       string       `json:"ownerId,omitempty"`
	Houses        int          `json:"houses"`
	Hotel         bool         `json:"hotel"`
	Mortgaged     bool         `json:"mortgaged"`
}

// BuildingLevel reports 0-4 for houses and HotelLevel for a hotel.
func (p *Property) BuildingLevel() int {
	if p.Hotel {
		return HotelLevel
	}
	return p.Houses
}

// HasBuildings reports whether any construction stands on the property.
func (p *Property) HasBuildings() bool {
	return p.Hotel || p.Houses > 0
}

// UnmortgageCost is the mortgage value plus 10% interest.
func (p *Property) UnmortgageCost() int {
	return p.MortgageValue + p.MortgageValue/10
}
