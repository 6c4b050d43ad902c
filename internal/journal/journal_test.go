package journal

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"rtrsv/internal/rsv"
)

type memRecorder struct {
	events []rsv.Event
	fail   error
	closed bool
}

func (m *memRecorder) Record(ev rsv.Event) error {
	if m.fail != nil {
		return m.fail
	}
	m.events = append(m.events, ev)
	return nil
}

func (m *memRecorder) Close() error {
	m.closed = true
	return nil
}

func sampleEvents() []rsv.Event {
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return []rsv.Event{
		{Time: at, Kind: rsv.EventRegister, TaskID: 100, Instance: "a"},
		{Time: at, Kind: rsv.EventPriority, TaskID: 100, Instance: "a", Priority: 99},
		{Time: at, Kind: rsv.EventRelease, TaskID: 100, Instance: "a", Sequence: 1},
		{Time: at, Kind: rsv.EventCancel, TaskID: 100, Instance: "a", Sequence: 1},
	}
}

func feed(events []rsv.Event) <-chan rsv.Event {
	ch := make(chan rsv.Event, len(events))
	for _, ev := range events {
		ch <- ev
	}
	close(ch)
	return ch
}

var _ = Describe("Drain", func() {
	It("should deliver every event and close recorders when the stream ends", func() {
		a, b := &memRecorder{}, &memRecorder{}

		err := Drain(context.Background(), feed(sampleEvents()), a, b)

		Expect(err).NotTo(HaveOccurred())
		Expect(a.events).To(Equal(sampleEvents()))
		Expect(b.events).To(HaveLen(4))
		Expect(a.closed).To(BeTrue())
		Expect(b.closed).To(BeTrue())
	})

	It("should skip a failing recorder and report its error", func() {
		broken := &memRecorder{fail: errors.New("disk full")}
		ok := &memRecorder{}

		err := Drain(context.Background(), feed(sampleEvents()), broken, ok)

		Expect(err).To(MatchError(ContainSubstring("disk full")))
		Expect(ok.events).To(HaveLen(4))
		Expect(broken.closed).To(BeTrue())
	})

	It("should stop when the context ends", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		rec := &memRecorder{}

		Expect(Drain(ctx, make(chan rsv.Event), rec)).To(Succeed())
		Expect(rec.closed).To(BeTrue())
	})
})

var _ = Describe("Console", func() {
	It("should print lifecycle events and hide releases", func() {
		var buf bytes.Buffer
		c := NewConsole(&buf, false)

		for _, ev := range sampleEvents() {
			Expect(c.Record(ev)).To(Succeed())
		}

		out := buf.String()
		Expect(out).To(ContainSubstring("[  Register  ] => Task: 000100"))
		Expect(out).To(ContainSubstring("prio=99"))
		Expect(out).NotTo(ContainSubstring("Release"))
		Expect(bytes.Count(buf.Bytes(), []byte("\n"))).To(Equal(3))
	})

	It("should print releases when verbose", func() {
		var buf bytes.Buffer
		c := NewConsole(&buf, true)

		Expect(c.Record(sampleEvents()[2])).To(Succeed())
		Expect(buf.String()).To(ContainSubstring("Release"))
	})
})

var _ = Describe("CSV", func() {
	It("should write a header and one row per event", func() {
		path := filepath.Join(GinkgoT().TempDir(), "events.csv")
		w, err := CreateCSV(path)
		Expect(err).NotTo(HaveOccurred())

		for _, ev := range sampleEvents() {
			Expect(w.Record(ev)).To(Succeed())
		}
		Expect(w.Close()).To(Succeed())

		f, err := os.Open(path)
		Expect(err).NotTo(HaveOccurred())
		defer f.Close()
		rows, err := csv.NewReader(f).ReadAll()
		Expect(err).NotTo(HaveOccurred())

		Expect(rows).To(HaveLen(5))
		Expect(rows[0]).To(Equal(csvHeader))
		Expect(rows[2]).To(Equal([]string{
			"2024-03-01T12:00:00Z", "Priority", "100", "a", "99", "0",
		}))
	})
})

var _ = Describe("SQLite", func() {
	It("should store batched events and flush the rest on close", func() {
		path := filepath.Join(GinkgoT().TempDir(), "events.sqlite3")
		db, err := OpenSQLite(path, 3)
		Expect(err).NotTo(HaveOccurred())

		for _, ev := range sampleEvents() {
			Expect(db.Record(ev)).To(Succeed())
		}

		var n int
		Expect(db.DB().QueryRow("SELECT COUNT(*) FROM events").Scan(&n)).To(Succeed())
		Expect(n).To(Equal(3))
		Expect(db.Close()).To(Succeed())

		reopened, err := OpenSQLite(path, 1)
		Expect(err).NotTo(HaveOccurred())
		defer reopened.Close()

		var kind string
		var prio int
		Expect(reopened.DB().QueryRow(
			"SELECT kind, priority FROM events WHERE kind = 'Priority'",
		).Scan(&kind, &prio)).To(Succeed())
		Expect(prio).To(Equal(99))

		Expect(reopened.DB().QueryRow("SELECT COUNT(*) FROM events").Scan(&n)).To(Succeed())
		Expect(n).To(Equal(4))
	})
})
