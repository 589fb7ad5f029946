package board

// Size is the number of slots on the board.
const Size = 40

// JailPosition is the slot a jailed player's token is forced to.
const JailPosition = 10

// GoPosition is the slot movement wraps past to earn the Go bonus.
const GoPosition = 0

type streetDef struct {
	id       string
	name     string
	group    string
	position int
	price    int
	rents    [6]int
	house    int
}

var streetDefs = []streetDef{
	{"mediterranean-avenue", "Mediterranean Avenue", "brown", 1, 60, [6]int{2, 10, 30, 90, 160, 250}, 50},
	{"baltic-avenue", "Baltic Avenue", "brown", 3, 60, [6]int{4, 20, 60, 180, 320, 450}, 50},
	{"oriental-avenue", "Oriental Avenue", "light-blue", 6, 100, [6]int{6, 30, 90, 270, 400, 550}, 50},
	{"vermont-avenue", "Vermont Avenue", "light-blue", 8, 100, [6]int{6, 30, 90, 270, 400, 550}, 50},
	{"connecticut-avenue", "Connecticut Avenue", "light-blue", 9, 120, [6]int{8, 40, 100, 300, 450, 600}, 50},
	{"st-charles-place", "St. Charles Place", "pink", 11, 140, [6]int{10, 50, 150, 450, 625, 750}, 100},
	{"states-avenue", "States Avenue", "pink", 13, 140, [6]int{10, 50, 150, 450, 625, 750}, 100},
	{"virginia-avenue", "Virginia Avenue", "pink", 14, 160, [6]int{12, 60, 180, 500, 700, 900}, 100},
	{"st-james-place", "St. James Place", "orange", 16, 180, [6]int{14, 70, 200, 550, 750, 950}, 100},
	{"tennessee-avenue", "Tennessee Avenue", "orange", 18, 180, [6]int{14, 70, 200, 550, 750, 950}, 100},
	{"new-york-avenue", "New York Avenue", "orange", 19, 200, [6]int{16, 80, 220, 600, 800, 1000}, 100},
	{"kentucky-avenue", "Kentucky Avenue", "red", 21, 220, [6]int{18, 90, 250, 700, 875, 1050}, 150},
	{"indiana-avenue", "Indiana Avenue", "red", 23, 220, [6]int{18, 90, 250, 700, 875, 1050}, 150},
	{"illinois-avenue", "Illinois Avenue", "red", 24, 240, [6]int{20, 100, 300, 750, 925, 1100}, 150},
	{"atlantic-avenue", "Atlantic Avenue", "yellow", 26, 260, [6]int{22, 110, 330, 800, 975, 1150}, 150},
	{"ventnor-avenue", "Ventnor Avenue", "yellow", 27, 260, [6]int{22, 110, 330, 800, 975, 1150}, 150},
	{"marvin-gardens", "Marvin Gardens", "yellow", 29, 280, [6]int{24, 120, 360, 850, 1025, 1200}, 150},
	{"pacific-avenue", "Pacific Avenue", "green", 31, 300, [6]int{26, 130, 390, 900, 1100, 1275}, 200},
	{"north-carolina-avenue", "North Carolina Avenue", "green", 32, 300, [6]int{26, 130, 390, 900, 1100, 1275}, 200},
	{"pennsylvania-avenue", "Pennsylvania Avenue", "green", 34, 320, [6]int{28, 150, 450, 1000, 1200, 1400}, 200},
	{"park-place", "Park Place", "dark-blue", 37, 350, [6]int{35, 175, 500, 1100, 1300, 1500}, 200},
	{"boardwalk", "Boardwalk", "dark-blue", 39, 400, [6]int{50, 200, 600, 1400, 1700, 2000}, 200},
}

type railDef struct {
	id       string
	name     string
	position int
}

var railDefs = []railDef{
	{"reading-railroad", "Reading Railroad", 5},
	{"pennsylvania-railroad", "Pennsylvania Railroad", 15},
	{"b-and-o-railroad", "B. & O. Railroad", 25},
	{"short-line", "Short Line", 35},
}

type utilityDef struct {
	id       string
	name     string
	position int
}

var utilityDefs = []utilityDef{
	{"electric-company", "Electric Company", 12},
	{"water-works", "Water Works", 28},
}

// StandardSpaces builds a fresh copy of the classic 40-slot layout. Each call
// returns new Property instances so every game owns its own mutable board.
func StandardSpaces() []Space {
	spaces := make([]Space, Size)

	spaces[0] = Space{Kind: SpaceGo, Name: "Go", Position: 0}
	spaces[2] = Space{Kind: SpaceCommunityChest, Name: "Community Chest", Position: 2}
	spaces[4] = Space{Kind: SpaceTax, Name: "Income Tax", Position: 4, TaxAmount: 200}
	spaces[7] = Space{Kind: SpaceChance, Name: "Chance", Position: 7}
	spaces[10] = Space{Kind: SpaceJail, Name: "Jail", Position: 10}
	spaces[17] = Space{Kind: SpaceCommunityChest, Name: "Community Chest", Position: 17}
	spaces[20] = Space{Kind: SpaceFreeParking, Name: "Free Parking", Position: 20}
	spaces[22] = Space{Kind: SpaceChance, Name: "Chance", Position: 22}
	spaces[30] = Space{Kind: SpaceGoToJail, Name: "Go To Jail", Position: 30}
	spaces[33] = Space{Kind: SpaceCommunityChest, Name: "Community Chest", Position: 33}
	spaces[36] = Space{Kind: SpaceChance, Name: "Chance", Position: 36}
	spaces[38] = Space{Kind: SpaceTax, Name: "Luxury Tax", Position: 38, TaxAmount: 100}

	for _, def := range streetDefs {
		rents := make([]int, len(def.rents))
		copy(rents, def.rents[:])
		spaces[def.position] = Space{
			Kind:     SpaceStreet,
			Name:     def.name,
			Position: def.position,
			Property: &Property{
				ID:            def.id,
				Name:          def.name,
				Kind:          PropertyStreet,
				Group:         def.group,
				Position:      def.position,
				Price:         def.price,
				MortgageValue: def.price / 2,
				Rents:         rents,
				HouseCost:     def.house,
				HotelCost:     def.house,
			},
		}
	}

	for _, def := range railDefs {
		spaces[def.position] = Space{
			Kind:     SpaceRailroad,
			Name:     def.name,
			Position: def.position,
			Property: &Property{
				ID:            def.id,
				Name:          def.name,
				Kind:          PropertyRailroad,
				Group:         "railroad",
				Position:      def.position,
				Price:         200,
				MortgageValue: 100,
			},
		}
	}

	for _, def := range utilityDefs {
		spaces[def.position] = Space{
			Kind:     SpaceUtility,
			Name:     def.name,
			Position: def.position,
			Property: &Property{
				ID:            def.id,
				Name:          def.name,
				Kind:          PropertyUtility,
				Group:         "utility",
				Position:      def.position,
				Price:         150,
				MortgageValue: 75,
			},
		}
	}

	return spaces
}
