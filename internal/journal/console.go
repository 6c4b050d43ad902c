package journal

import (
	"fmt"
	"io"
	"strings"

	"rtrsv/internal/rsv"
)

// Console prints one fixed-width line per event. Release events are skipped
// unless verbose, for the brevity of output.
type Console struct {
	w       io.Writer
	verbose bool
}

// NewConsole writes to w.
func NewConsole(w io.Writer, verbose bool) *Console {
	return &Console{w: w, verbose: verbose}
}

func (c *Console) Record(ev rsv.Event) error {
	if ev.Kind == rsv.EventRelease && !c.verbose {
		return nil
	}

	_, err := fmt.Fprintf(c.w, "%s [%s] => Task: %06d, prio=%02d, seq=%07d, %s\n",
		ev.Time.Format("Jan 02 15:04:05.000"),
		center(ev.Kind.String(), 12),
		ev.TaskID,
		ev.Priority,
		ev.Sequence,
		ev.Instance,
	)
	return err
}

func (c *Console) Close() error { return nil }

// center pads str to width, centered.
func center(str string, width int) string {
	if len(str) >= width {
		return str
	}
	spaces := (width - len(str)) / 2
	return strings.Repeat(" ", spaces) + str + strings.Repeat(" ", width-(spaces+len(str)))
}
