package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/mcoot/fatetable/internal/api/response"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	out    io.Writer
	errOut io.Writer
	mu     sync.Mutex
}

// NewOutput creates a new Output formatter
func NewOutput(format string, out, errOut io.Writer) *Output {
	return &Output{format: format, out: out, errOut: errOut}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		_, _ = fmt.Fprintln(o.errOut, string(data))
	} else {
		_, _ = fmt.Fprintf(o.errOut, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		_, _ = fmt.Fprintln(o.out, string(data))
	} else {
		_, _ = fmt.Fprintln(o.out, msg)
	}
}

// Debugf writes a diagnostic line to the error stream
func (o *Output) Debugf(format string, args ...any) {
	o.mu.Lock()
	defer o.mu.Unlock()

	_, _ = fmt.Fprintf(o.errOut, format+"\n", args...)
}

func (o *Output) printJSON(data any) {
	// Session messages are streamed, one per line
	if _, ok := data.(response.Message); ok {
		line, _ := json.Marshal(data)
		_, _ = fmt.Fprintln(o.out, string(line))
		return
	}
	enc := json.NewEncoder(o.out)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case response.Table:
		o.printTable(v, "")
	case response.Message:
		o.printSessionMessage(v)
	case response.Health:
		_, _ = fmt.Fprintf(o.out, "Status: %s\n", v.Status)
	case response.VersionInfo:
		_, _ = fmt.Fprintf(o.out, "Version: %s\nCommit: %s\n", v.Version, v.Commit)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

func (o *Output) printTable(t response.Table, self string) {
	_, _ = fmt.Fprintf(o.out, "Table %s: %s\n", t.ID, t.Title)
	_, _ = fmt.Fprintf(o.out, "Gamemaster: %s%s\n", t.Gamemaster, youMarker(t.Gamemaster, self))

	if len(t.Aspects) > 0 {
		_, _ = fmt.Fprintln(o.out, "Aspects:")
		o.printAspects(t.Aspects, "  ")
	}

	if len(t.Players) == 0 {
		_, _ = fmt.Fprintln(o.out, "Players: (none)")
		return
	}
	_, _ = fmt.Fprintln(o.out, "Players:")
	for _, p := range t.Players {
		_, _ = fmt.Fprintf(o.out, "  %s (%s)%s  fate points: %d\n", p.Name, p.ID, youMarker(p.ID, self), p.FatePoints)
		o.printAspects(p.Aspects, "    ")
	}
}

func (o *Output) printAspects(aspects []response.Aspect, indent string) {
	for _, a := range aspects {
		_, _ = fmt.Fprintf(o.out, "%s- %s [%s]\n", indent, a.Name, a.ID)
	}
}

func (o *Output) printSessionMessage(m response.Message) {
	switch {
	case m.Error != nil:
		if m.Error.RequestID != "" {
			_, _ = fmt.Fprintf(o.out, "! request %s failed: %s (%d)\n", m.Error.RequestID, m.Error.Reason, m.Error.Code)
		} else {
			_, _ = fmt.Fprintf(o.out, "! %s (%d)\n", m.Error.Reason, m.Error.Code)
		}
	case m.Table != nil:
		_, _ = fmt.Fprintln(o.out, "--")
		o.printTable(*m.Table, m.Self)
	default:
		_, _ = fmt.Fprintf(o.out, "? unexpected %q message\n", m.Type)
	}
}

func youMarker(id, self string) string {
	if self != "" && id == self {
		return " (you)"
	}
	return ""
}
