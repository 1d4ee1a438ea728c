// Package progress owns the durable per-card mastery and reveal state.
package progress

import (
	"math"

	"github.com/abhisek/drill/internal/deck"
)

// Status is the mastery mark of a card.
type Status string

const (
	StatusUnset Status = ""
	StatusDone  Status = "done"
	StatusAgain Status = "again"
)

// Valid reports whether s can be written to the store.
func (s Status) Valid() bool {
	return s == StatusDone || s == StatusAgain
}

// State is the whole persisted progress document. Status and reveal are
// independent sparse maps keyed by card id.
type State struct {
	Status map[string]Status `json:"status"`
	Reveal map[string]bool   `json:"reveal"`
}

// NewState returns an empty State.
func NewState() State {
	return State{
		Status: make(map[string]Status),
		Reveal: make(map[string]bool),
	}
}

// StatusOf returns the mark for id, or StatusUnset.
func (s State) StatusOf(id deck.CardID) Status {
	return s.Status[string(id)]
}

// Revealed reports whether id is currently revealed.
func (s State) Revealed(id deck.CardID) bool {
	return s.Reveal[string(id)]
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	out := NewState()
	for k, v := range s.Status {
		out.Status[k] = v
	}
	for k, v := range s.Reveal {
		out.Reveal[k] = v
	}
	return out
}

// NextPendingLimit is how many pending cards a summary lists.
const NextPendingLimit = 3

// DaySummary holds the derived metrics of one bucket.
type DaySummary struct {
	Done        int
	Total       int
	Percent     int
	NextPending []deck.Card
}

// Summarize computes done/total/percent over cards and lists the first
// cards that are not yet done.
func Summarize(st State, cards []deck.Card) DaySummary {
	sum := DaySummary{Total: len(cards), NextPending: []deck.Card{}}
	for _, c := range cards {
		if st.StatusOf(c.ID) == StatusDone {
			sum.Done++
			continue
		}
		if len(sum.NextPending) < NextPendingLimit {
			sum.NextPending = append(sum.NextPending, c)
		}
	}
	sum.Percent = Percent(sum.Done, sum.Total)
	return sum
}

// Percent returns round(done/total*100), or 0 when total is 0.
func Percent(done, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(done) / float64(total) * 100))
}
