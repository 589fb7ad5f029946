package game

// Player is a participant in a single game. All mutation goes through the
// methods below so the cash and ownership invariants hold at every
// observable state: cash never goes negative while the player is active, and
// a bankrupt player holds no cash and no properties.
type Player struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Cash       int      `json:"cash"`
	Position   int      `json:"position"`
	Properties []string `json:"properties"`
	InJail     bool     `json:"inJail"`
	JailTurns  int      `json:"jailTurns"`
	JailCards  int      `json:"jailCards"`
	Bankrupt   bool     `json:"bankrupt"`
}

// Credit adds to the player's cash balance.
func (p *Player) Credit(amount int) {
	p.Cash += amount
}

// Debit removes cash, rejecting the charge if the balance cannot cover it.
func (p *Player) Debit(amount int) *Rejection {
	if p.Cash < amount {
		return reject(ErrInsufficientFunds, "%s has $%d, needs $%d", p.Name, p.Cash, amount)
	}
	p.Cash -= amount
	return nil
}

// CanAfford reports whether the balance covers the amount.
func (p *Player) CanAfford(amount int) bool {
	return p.Cash >= amount
}

// AddProperty records ownership of a property ID, preserving insertion order.
func (p *Player) AddProperty(propertyID string) {
	for _, id := range p.Properties {
		if id == propertyID {
			return
		}
	}
	p.Properties = append(p.Properties, propertyID)
}

// RemoveProperty drops a property ID from the holdings.
func (p *Player) RemoveProperty(propertyID string) {
	for i, id := range p.Properties {
		if id == propertyID {
			p.Properties = append(p.Properties[:i], p.Properties[i+1:]...)
			return
		}
	}
}

// OwnsProperty reports whether the player holds the property ID.
func (p *Player) OwnsProperty(propertyID string) bool {
	for _, id := range p.Properties {
		if id == propertyID {
			return true
		}
	}
	return false
}
