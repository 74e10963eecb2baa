package request

import (
	"encoding/json"
	"fmt"

	"github.com/mcoot/fatetable/internal/model"
)

// Command type discriminators
const (
	TypeCreate           = "create"
	TypeJoin             = "join"
	TypeUpdateFatePoints = "update-fate-points"
	TypeSpendFatePoint   = "spend-fate-point"
	TypeAddAspect        = "add-aspect"
	TypeRemoveAspect     = "remove-aspect"
	TypeLeave            = "leave"
)

// TableIDMode selects where the id of a new table comes from
type TableIDMode string

const (
	// TableIDFromCaller requires create requests to carry the table id
	TableIDFromCaller TableIDMode = "caller"
	// TableIDGenerated ignores any supplied id and lets the server pick one
	TableIDGenerated TableIDMode = "generated"
)

// Envelope is one inbound command message
type Envelope struct {
	ID      string      `json:"id,omitempty"`
	TableID string      `json:"tableId,omitempty"`
	Command CommandBody `json:"command"`
}

// CommandBody holds the fields of every command type; which ones are
// required depends on Type.
type CommandBody struct {
	Type       string  `json:"type"`
	Title      *string `json:"title,omitempty"`
	Name       *string `json:"name,omitempty"`
	PlayerID   *string `json:"playerId,omitempty"`
	ID         *string `json:"id,omitempty"`
	FatePoints *int    `json:"fatePoints,omitempty"`
}

// Decode parses an inbound message. The returned envelope carries the
// request id whenever the outer JSON could be parsed, even if the command
// itself is invalid.
func Decode(data []byte, mode TableIDMode) (Envelope, model.Command, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return env, nil, fmt.Errorf("%w: malformed message: %v", model.ErrInvalidCommand, err)
	}
	cmd, err := env.ToCommand(mode)
	return env, cmd, err
}

// ToCommand validates the envelope and converts it to a model command
func (e Envelope) ToCommand(mode TableIDMode) (model.Command, error) {
	b := e.Command
	switch b.Type {
	case TypeCreate:
		if b.Title == nil {
			return nil, missing(b.Type, "title")
		}
		var id model.TableID
		if mode != TableIDGenerated {
			if e.TableID == "" {
				return nil, missing(b.Type, "tableId")
			}
			id = model.TableID(e.TableID)
		}
		return model.Create{TableID: id, Title: *b.Title}, nil

	case TypeJoin:
		if e.TableID == "" {
			return nil, missing(b.Type, "tableId")
		}
		if b.Name == nil {
			return nil, missing(b.Type, "name")
		}
		return model.Join{TableID: model.TableID(e.TableID), Name: *b.Name}, nil

	case TypeUpdateFatePoints:
		if b.PlayerID == nil {
			return nil, missing(b.Type, "playerId")
		}
		if b.FatePoints == nil {
			return nil, missing(b.Type, "fatePoints")
		}
		if *b.FatePoints < 0 {
			return nil, fmt.Errorf("%w: %w", model.ErrInvalidCommand, model.ErrInvalidFatePoints)
		}
		return model.UpdateFatePoints{PlayerID: model.UserID(*b.PlayerID), FatePoints: *b.FatePoints}, nil

	case TypeSpendFatePoint:
		return model.SpendFatePoint{}, nil

	case TypeAddAspect:
		if b.Name == nil {
			return nil, missing(b.Type, "name")
		}
		cmd := model.AddAspect{Name: *b.Name}
		if b.PlayerID != nil {
			player := model.UserID(*b.PlayerID)
			cmd.PlayerID = &player
		}
		return cmd, nil

	case TypeRemoveAspect:
		if b.ID == nil {
			return nil, missing(b.Type, "id")
		}
		return model.RemoveAspect{ID: model.AspectID(*b.ID)}, nil

	case TypeLeave:
		return model.Leave{}, nil

	case "":
		return nil, fmt.Errorf("%w: missing command type", model.ErrInvalidCommand)
	default:
		return nil, fmt.Errorf("%w: unknown command type %q", model.ErrInvalidCommand, b.Type)
	}
}

// FromCommand builds the envelope that Decode turns back into cmd
func FromCommand(id string, cmd model.Command) Envelope {
	env := Envelope{ID: id, Command: CommandBody{Type: cmd.Type()}}
	switch c := cmd.(type) {
	case model.Create:
		env.TableID = string(c.TableID)
		env.Command.Title = &c.Title
	case model.Join:
		env.TableID = string(c.TableID)
		env.Command.Name = &c.Name
	case model.UpdateFatePoints:
		player := string(c.PlayerID)
		env.Command.PlayerID = &player
		env.Command.FatePoints = &c.FatePoints
	case model.SpendFatePoint:
	case model.AddAspect:
		env.Command.Name = &c.Name
		if c.PlayerID != nil {
			player := string(*c.PlayerID)
			env.Command.PlayerID = &player
		}
	case model.RemoveAspect:
		aspect := string(c.ID)
		env.Command.ID = &aspect
	case model.Leave:
	}
	return env
}

func missing(commandType, field string) error {
	return fmt.Errorf("%w: %s requires %s", model.ErrInvalidCommand, commandType, field)
}
