package model

import (
	"iter"
	"time"
)

// TableID identifies a table
type TableID string

// AspectID identifies an aspect within a table
type AspectID string

// Aspect is a named narrative tag attached to a table or to one of its players
type Aspect struct {
	ID   AspectID
	Name string
}

// Table is one running game session
type Table struct {
	ID         TableID
	Title      string
	Gamemaster UserID
	Players    []Player // unique by User
	Aspects    []Aspect
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Version counts committed changes. A snapshot with a lower version than
	// one already seen is stale.
	Version uint64
}

// NewTable returns an empty table administered by gamemaster
func NewTable(id TableID, title string, gamemaster UserID, now time.Time) *Table {
	return &Table{
		ID:         id,
		Title:      title,
		Gamemaster: gamemaster,
		Players:    []Player{},
		Aspects:    []Aspect{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Join seats the player unless an entry for the same user already exists.
// It reports whether the player was added.
func (t *Table) Join(p Player) bool {
	if t.FindPlayer(p.User) != nil {
		return false
	}
	if p.Aspects == nil {
		p.Aspects = []Aspect{}
	}
	t.Players = append(t.Players, p)
	return true
}

// RemovePlayer removes the player for user, if any
func (t *Table) RemovePlayer(user UserID) {
	for i := range t.Players {
		if t.Players[i].User == user {
			t.Players = append(t.Players[:i], t.Players[i+1:]...)
			return
		}
	}
}

// FindPlayer returns the player for user, or nil if not seated
func (t *Table) FindPlayer(user UserID) *Player {
	for i := range t.Players {
		if t.Players[i].User == user {
			return &t.Players[i]
		}
	}
	return nil
}

// AddAspect appends a table-level aspect
func (t *Table) AddAspect(a Aspect) {
	t.Aspects = append(t.Aspects, a)
}

// RemoveAspect removes the first aspect with the given id, looking at the
// table-level aspects before the players'. It reports whether one was found.
func (t *Table) RemoveAspect(id AspectID) bool {
	for i := range t.Aspects {
		if t.Aspects[i].ID == id {
			t.Aspects = append(t.Aspects[:i], t.Aspects[i+1:]...)
			return true
		}
	}
	for i := range t.Players {
		if t.Players[i].removeAspect(id) {
			return true
		}
	}
	return false
}

// HasAspect reports whether any aspect on the table or its players uses id
func (t *Table) HasAspect(id AspectID) bool {
	for _, a := range t.Aspects {
		if a.ID == id {
			return true
		}
	}
	for _, p := range t.Players {
		for _, a := range p.Aspects {
			if a.ID == id {
				return true
			}
		}
	}
	return false
}

// AllUsers yields the gamemaster followed by every player. The sequence reads
// the table each time it is ranged over.
func (t *Table) AllUsers() iter.Seq[UserID] {
	return func(yield func(UserID) bool) {
		if !yield(t.Gamemaster) {
			return
		}
		for _, p := range t.Players {
			if !yield(p.User) {
				return
			}
		}
	}
}

// PlayerUsers returns the users of all seated players
func (t *Table) PlayerUsers() []UserID {
	users := make([]UserID, 0, len(t.Players))
	for _, p := range t.Players {
		users = append(users, p.User)
	}
	return users
}

// Clone returns a deep copy of the table
func (t *Table) Clone() *Table {
	if t == nil {
		return nil
	}
	c := *t
	c.Aspects = append([]Aspect{}, t.Aspects...)
	c.Players = make([]Player, len(t.Players))
	for i, p := range t.Players {
		c.Players[i] = p.clone()
	}
	return &c
}
