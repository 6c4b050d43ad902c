package journal

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"

	"rtrsv/internal/rsv"
)

var csvHeader = []string{"timestamp", "event", "task_id", "instance", "priority", "sequence"}

// CSV appends one row per event to a file.
type CSV struct {
	f *os.File
	w *csv.Writer
}

// CreateCSV opens the given file path for CSV logging of events.
func CreateCSV(path string) (*CSV, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	w := csv.NewWriter(f)

	// write header
	if err := w.Write(csvHeader); err != nil {
		f.Close()
		return nil, err
	}
	w.Flush()
	return &CSV{f: f, w: w}, nil
}

func (c *CSV) Record(ev rsv.Event) error {
	rec := []string{
		ev.Time.Format(time.RFC3339Nano),
		ev.Kind.String(),
		strconv.FormatUint(uint64(ev.TaskID), 10),
		ev.Instance,
		strconv.Itoa(ev.Priority),
		strconv.FormatUint(ev.Sequence, 10),
	}
	if err := c.w.Write(rec); err != nil {
		return err
	}
	c.w.Flush()
	return c.w.Error()
}

func (c *CSV) Close() error {
	c.w.Flush()
	if err := c.w.Error(); err != nil {
		c.f.Close()
		return err
	}
	return c.f.Close()
}
