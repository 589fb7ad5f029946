package game

import "github.com/boardwalk/monopoly-server-go/internal/game/board"

// Building rules. The Can* functions are pure predicates returning nil when
// the operation is legal; the effectful operations on gameState re-validate
// before mutating, so a stale predicate result can never corrupt the board.

// CanBuildHouse checks the preconditions for adding one house to p: street
// category, unmortgaged, below four houses and no hotel, full monopoly group
// held by owner, group free of mortgages, the even-building rule, and funds
// for the house cost.
func CanBuildHouse(p *board.Property, group []*board.Property, owner *Player) *Rejection {
	if p.Kind != board.PropertyStreet {
		return reject(ErrInvalidPhase, "%s is not a street", p.Name)
	}
	if p.OwnerID == "" || owner == nil || p.OwnerID != owner.ID {
		return reject(ErrNotFound, "%s is not owned by the builder", p.Name)
	}
	if p.Mortgaged {
		return reject(ErrMortgagedPropertyAction, "%s is mortgaged", p.Name)
	}
	if p.Hotel {
		return reject(ErrUnevenBuilding, "%s already carries a hotel", p.Name)
	}
	if p.Houses >= board.MaxHouses {
		return reject(ErrUnevenBuilding, "%s already carries %d houses", p.Name, board.MaxHouses)
	}
	if !ownsFullGroup(owner.ID, group) {
		return reject(ErrMonopolyRequired, "%s requires the full %s group", p.Name, p.Group)
	}
	for _, sibling := range group {
		if sibling.Mortgaged {
			return reject(ErrMortgagedPropertyAction, "%s in the %s group is mortgaged", sibling.Name, p.Group)
		}
		// Even-building rule: only the lowest-built property in the group
		// may gain a house.
		if sibling.BuildingLevel() < p.BuildingLevel() {
			return reject(ErrUnevenBuilding, "build on %s first", sibling.Name)
		}
	}
	if !owner.CanAfford(p.HouseCost) {
		return reject(ErrInsufficientFunds, "house on %s costs $%d, %s has $%d", p.Name, p.HouseCost, owner.Name, owner.Cash)
	}
	return nil
}

// CanBuildHotel checks the hotel preconditions: every property in the group
// at exactly four houses and funds for the hotel cost.
func CanBuildHotel(p *board.Property, group []*board.Property, owner *Player) *Rejection {
	if p.Kind != board.PropertyStreet {
		return reject(ErrInvalidPhase, "%s is not a street", p.Name)
	}
	if p.OwnerID == "" || owner == nil || p.OwnerID != owner.ID {
		return reject(ErrNotFound, "%s is not owned by the builder", p.Name)
	}
	if p.Mortgaged {
		return reject(ErrMortgagedPropertyAction, "%s is mortgaged", p.Name)
	}
	if p.Hotel {
		return reject(ErrUnevenBuilding, "%s already carries a hotel", p.Name)
	}
	if !ownsFullGroup(owner.ID, group) {
		return reject(ErrMonopolyRequired, "%s requires the full %s group", p.Name, p.Group)
	}
	if p.Houses != board.MaxHouses {
		return reject(ErrUnevenBuilding, "%s needs %d houses before a hotel", p.Name, board.MaxHouses)
	}
	for _, sibling := range group {
		if sibling.BuildingLevel() < board.MaxHouses {
			return reject(ErrUnevenBuilding, "%s needs %d houses before any hotel in the group", sibling.Name, board.MaxHouses)
		}
	}
	if !owner.CanAfford(p.HotelCost) {
		return reject(ErrInsufficientFunds, "hotel on %s costs $%d, %s has $%d", p.Name, p.HotelCost, owner.Name, owner.Cash)
	}
	return nil
}

// CanSellHouse checks that one house can come off p. The even-building rule
// runs in the opposite direction: sales must come off the highest-built
// property so no sibling ends up more than one level apart.
func CanSellHouse(p *board.Property, group []*board.Property, owner *Player) *Rejection {
	if p.Kind != board.PropertyStreet {
		return reject(ErrInvalidPhase, "%s is not a street", p.Name)
	}
	if p.OwnerID == "" || owner == nil || p.OwnerID != owner.ID {
		return reject(ErrNotFound, "%s is not owned by the seller", p.Name)
	}
	if p.Hotel {
		return reject(ErrUnevenBuilding, "%s carries a hotel, sell it first", p.Name)
	}
	if p.Houses == 0 {
		return reject(ErrUnevenBuilding, "%s has no houses", p.Name)
	}
	for _, sibling := range group {
		if sibling.BuildingLevel() > p.BuildingLevel() {
			return reject(ErrUnevenBuilding, "sell from %s first", sibling.Name)
		}
	}
	return nil
}

// CanSellHotel checks that the hotel on p can be sold back. Selling a hotel
// always yields exactly four houses.
func CanSellHotel(p *board.Property, group []*board.Property, owner *Player) *Rejection {
	if p.Kind != board.PropertyStreet {
		return reject(ErrInvalidPhase, "%s is not a street", p.Name)
	}
	if p.OwnerID == "" || owner == nil || p.OwnerID != owner.ID {
		return reject(ErrNotFound, "%s is not owned by the seller", p.Name)
	}
	if !p.Hotel {
		return reject(ErrUnevenBuilding, "%s carries no hotel", p.Name)
	}
	return nil
}

// buildHouse re-validates and adds one house, charging the house cost.
func (gs *gameState) buildHouse(p *board.Property, owner *Player) ([]Event, *Rejection) {
	group := gs.groupSiblings(p.Group)
	if rej := CanBuildHouse(p, group, owner); rej != nil {
		return nil, rej
	}
	if rej := owner.Debit(p.HouseCost); rej != nil {
		return nil, rej
	}
	p.Houses++
	evt := newPropertyEvent(EventBuildingBuilt, owner.ID, p.ID, p.HouseCost)
	evt.Detail = "house"
	return []Event{evt}, nil
}

// buildHotel re-validates and converts four houses into a hotel.
func (gs *gameState) buildHotel(p *board.Property, owner *Player) ([]Event, *Rejection) {
	group := gs.groupSiblings(p.Group)
	if rej := CanBuildHotel(p, group, owner); rej != nil {
		return nil, rej
	}
	if rej := owner.Debit(p.HotelCost); rej != nil {
		return nil, rej
	}
	p.Houses = 0
	p.Hotel = true
	evt := newPropertyEvent(EventBuildingBuilt, owner.ID, p.ID, p.HotelCost)
	evt.Detail = "hotel"
	return []Event{evt}, nil
}

// sellHouse re-validates and removes one house, refunding half the cost.
func (gs *gameState) sellHouse(p *board.Property, owner *Player) ([]Event, *Rejection) {
	group := gs.groupSiblings(p.Group)
	if rej := CanSellHouse(p, group, owner); rej != nil {
		return nil, rej
	}
	refund := p.HouseCost / 2
	p.Houses--
	owner.Credit(refund)
	evt := newPropertyEvent(EventBuildingSold, owner.ID, p.ID, refund)
	evt.Detail = "house"
	return []Event{evt}, nil
}

// sellHotel re-validates and converts the hotel back into four houses,
// refunding half the hotel cost.
func (gs *gameState) sellHotel(p *board.Property, owner *Player) ([]Event, *Rejection) {
	group := gs.groupSiblings(p.Group)
	if rej := CanSellHotel(p, group, owner); rej != nil {
		return nil, rej
	}
	refund := p.HotelCost / 2
	p.Hotel = false
	p.Houses = board.MaxHouses
	owner.Credit(refund)
	evt := newPropertyEvent(EventBuildingSold, owner.ID, p.ID, refund)
	evt.Detail = "hotel"
	return []Event{evt}, nil
}
