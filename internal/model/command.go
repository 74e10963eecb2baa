package model

// Command is a request to change table state. The set of variants is closed;
// switches over it are checked for exhaustiveness by gochecksumtype.
//
//sumtype:decl
type Command interface {
	// Type is the wire name of the command
	Type() string

	isCommand()
}

// Create opens a new table with the caller as gamemaster. An empty TableID
// asks the processor to generate one.
type Create struct {
	TableID TableID
	Title   string
}

// Join seats the caller at an existing table
type Join struct {
	TableID TableID
	Name    string
}

// UpdateFatePoints sets a player's fate points. Gamemaster only.
type UpdateFatePoints struct {
	PlayerID   UserID
	FatePoints int
}

// SpendFatePoint spends one of the caller's own fate points
type SpendFatePoint struct{}

// AddAspect adds an aspect to the table, or to a player when PlayerID is set.
// Gamemaster only.
type AddAspect struct {
	Name     string
	PlayerID *UserID
}

// RemoveAspect removes an aspect from the table or any player. Gamemaster only.
type RemoveAspect struct {
	ID AspectID
}

// Leave removes the caller from whatever table they belong to. A gamemaster
// leaving closes the table.
type Leave struct{}

func (Create) Type() string           { return "create" }
func (Join) Type() string             { return "join" }
func (UpdateFatePoints) Type() string { return "update-fate-points" }
func (SpendFatePoint) Type() string   { return "spend-fate-point" }
func (AddAspect) Type() string        { return "add-aspect" }
func (RemoveAspect) Type() string     { return "remove-aspect" }
func (Leave) Type() string            { return "leave" }

func (Create) isCommand()           {}
func (Join) isCommand()             {}
func (UpdateFatePoints) isCommand() {}
func (SpendFatePoint) isCommand()   {}
func (AddAspect) isCommand()        {}
func (RemoveAspect) isCommand()     {}
func (Leave) isCommand()            {}
