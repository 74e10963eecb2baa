package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/mcoot/fatetable/internal/model"
)

// ErrUsage is returned for session input that is not a valid command
var ErrUsage = errors.New("usage")

const sessionHelp = `Commands:
  create <table-id> <title...>       open a new table as gamemaster
  join <table-id> <name...>          sit down at a table as a player
  fate <player-id> <points>          set a player's fate points (gamemaster)
  spend                              spend one of your fate points
  aspect <name...>                   add a table aspect (gamemaster)
  player-aspect <player-id> <name...> add an aspect to a player (gamemaster)
  remove-aspect <aspect-id>          remove an aspect (gamemaster)
  leave                              leave or close your table
  help                               show this help
  quit                               end the session`

// ParseLine turns one line of session input into a table command
func ParseLine(line string) (model.Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: empty command", ErrUsage)
	}
	verb, args := fields[0], fields[1:]
	rest := func(from int) string { return strings.Join(args[from:], " ") }

	switch verb {
	case "create":
		if len(args) < 2 {
			return nil, fmt.Errorf("%w: create <table-id> <title...>", ErrUsage)
		}
		return model.Create{TableID: model.TableID(args[0]), Title: rest(1)}, nil

	case "join":
		if len(args) < 2 {
			return nil, fmt.Errorf("%w: join <table-id> <name...>", ErrUsage)
		}
		return model.Join{TableID: model.TableID(args[0]), Name: rest(1)}, nil

	case "fate":
		if len(args) != 2 {
			return nil, fmt.Errorf("%w: fate <player-id> <points>", ErrUsage)
		}
		points, err := strconv.Atoi(args[1])
		if err != nil {
			return nil, fmt.Errorf("%w: fate points must be a number", ErrUsage)
		}
		return model.UpdateFatePoints{PlayerID: model.UserID(args[0]), FatePoints: points}, nil

	case "spend":
		return model.SpendFatePoint{}, nil

	case "aspect":
		if len(args) < 1 {
			return nil, fmt.Errorf("%w: aspect <name...>", ErrUsage)
		}
		return model.AddAspect{Name: rest(0)}, nil

	case "player-aspect":
		if len(args) < 2 {
			return nil, fmt.Errorf("%w: player-aspect <player-id> <name...>", ErrUsage)
		}
		player := model.UserID(args[0])
		return model.AddAspect{Name: rest(1), PlayerID: &player}, nil

	case "remove-aspect":
		if len(args) != 1 {
			return nil, fmt.Errorf("%w: remove-aspect <aspect-id>", ErrUsage)
		}
		return model.RemoveAspect{ID: model.AspectID(args[0])}, nil

	case "leave":
		return model.Leave{}, nil

	default:
		return nil, fmt.Errorf("%w: unknown command %q, try help", ErrUsage, verb)
	}
}
