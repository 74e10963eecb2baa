package model

// UserID identifies a connected user. It is assigned by the transport layer
// and compared by value.
type UserID string

// Player is a user seated at a table
type Player struct {
	User       UserID
	Name       string
	FatePoints int // never negative
	Aspects    []Aspect
}

// AddAspect appends a player-scoped aspect
func (p *Player) AddAspect(a Aspect) {
	p.Aspects = append(p.Aspects, a)
}

func (p *Player) removeAspect(id AspectID) bool {
	for i := range p.Aspects {
		if p.Aspects[i].ID == id {
			p.Aspects = append(p.Aspects[:i], p.Aspects[i+1:]...)
			return true
		}
	}
	return false
}

func (p Player) clone() Player {
	c := p
	c.Aspects = append([]Aspect{}, p.Aspects...)
	return c
}
