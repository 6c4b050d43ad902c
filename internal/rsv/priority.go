package rsv

import (
	"github.com/emirpasic/gods/trees/redblacktree"
)

// Assignment is one RM priority decision.
type Assignment struct {
	Reservation *Reservation
	Priority    int
}

// Engine derives Rate-Monotonic priorities: the shorter the period, the
// higher the priority.
type Engine struct {
	highest int
	lowest  int
}

// NewEngine creates an engine handing out priorities from highest down to
// lowest, one per rank.
func NewEngine(highest, lowest int) *Engine {
	return &Engine{highest: highest, lowest: lowest}
}

// Assign ranks every reservation from scratch. Equal periods keep their
// registration order. Ranks past the floor all share the lowest priority.
func (e *Engine) Assign(entries []*Reservation) []Assignment {
	rbt := redblacktree.NewWith(cmpRank)
	for _, r := range entries {
		rbt.Put(rankKey{period: int64(r.Period), order: r.order}, r)
	}

	out := make([]Assignment, 0, rbt.Size())
	it := rbt.Iterator()
	for rank := 0; it.Next(); rank++ {
		prio := e.highest - rank
		if prio < e.lowest {
			prio = e.lowest
		}
		out = append(out, Assignment{
			Reservation: it.Value().(*Reservation),
			Priority:    prio,
		})
	}

	return out
}

// rankKey is used as a key in the red-black tree.
type rankKey struct {
	period int64
	order  uint64
}

// cmpRank implements the Comparator for rankKey ordering.
func cmpRank(a, b any) int {
	ka, kb := a.(rankKey), b.(rankKey)
	switch {
	case ka.period < kb.period:
		return -1
	case ka.period > kb.period:
		return 1
	case ka.order < kb.order:
		return -1
	case ka.order > kb.order:
		return 1
	default:
		return 0
	}
}
