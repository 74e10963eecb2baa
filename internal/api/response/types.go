package response

import (
	"github.com/mcoot/fatetable/internal/model"
)

// Message types
const (
	TypeTable = "table"
	TypeError = "error"
)

// Aspect represents an aspect in responses
type Aspect struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Player represents a seated player in responses
type Player struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	FatePoints int      `json:"fatePoints"`
	Aspects    []Aspect `json:"aspects"`
}

// Table is the full snapshot of a table sent to clients
type Table struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Gamemaster string   `json:"gamemaster"`
	Players    []Player `json:"players"`
	Aspects    []Aspect `json:"aspects"`
	Version    uint64   `json:"version"`
}

// TableFromModel converts a model.Table to a response Table
func TableFromModel(t *model.Table) Table {
	players := make([]Player, 0, len(t.Players))
	for _, p := range t.Players {
		players = append(players, Player{
			ID:         string(p.User),
			Name:       p.Name,
			FatePoints: p.FatePoints,
			Aspects:    aspectsFromModel(p.Aspects),
		})
	}
	return Table{
		ID:         string(t.ID),
		Title:      t.Title,
		Gamemaster: string(t.Gamemaster),
		Players:    players,
		Aspects:    aspectsFromModel(t.Aspects),
		Version:    t.Version,
	}
}

func aspectsFromModel(aspects []model.Aspect) []Aspect {
	result := make([]Aspect, 0, len(aspects))
	for _, a := range aspects {
		result = append(result, Aspect{ID: string(a.ID), Name: a.Name})
	}
	return result
}

// Error describes a rejected command. Code follows HTTP status semantics.
type Error struct {
	RequestID string `json:"requestId,omitempty"`
	Code      int    `json:"code"`
	Reason    string `json:"reason"`
}

// Message is one outbound websocket message. Self is the user id of the
// recipient, so clients learn their own identity from the first message.
type Message struct {
	ID    string `json:"id"`
	Self  string `json:"self,omitempty"`
	Type  string `json:"type"`
	Table *Table `json:"table,omitempty"`
	Error *Error `json:"error,omitempty"`
}

// NewTableMessage builds a table snapshot message for one recipient
func NewTableMessage(id string, self model.UserID, t *model.Table) Message {
	table := TableFromModel(t)
	return Message{
		ID:    id,
		Self:  string(self),
		Type:  TypeTable,
		Table: &table,
	}
}

// NewErrorMessage builds an error message for the originator of a request
func NewErrorMessage(id string, self model.UserID, requestID string, code int, reason string) Message {
	return Message{
		ID:   id,
		Self: string(self),
		Type: TypeError,
		Error: &Error{
			RequestID: requestID,
			Code:      code,
			Reason:    reason,
		},
	}
}

// Health is the response body of the health endpoint
type Health struct {
	Status string `json:"status"`
}

// VersionInfo is the response body of the version endpoint
type VersionInfo struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
}
