package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abhisek/drill/internal/deck"
)

func TestPercent(t *testing.T) {
	tests := []struct {
		done, total, want int
	}{
		{0, 0, 0},
		{1, 3, 33},
		{2, 3, 67},
		{1, 2, 50},
		{1, 8, 13}, // 12.5 rounds up
		{3, 3, 100},
		{0, 6, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Percent(tt.done, tt.total), "%d/%d", tt.done, tt.total)
	}
}

func TestSummarize(t *testing.T) {
	cards := []deck.Card{{ID: "1"}, {ID: "2"}, {ID: "3"}, {ID: "4"}, {ID: "5"}}
	st := NewState()
	st.Status["2"] = StatusDone
	st.Status["3"] = StatusAgain

	sum := Summarize(st, cards)
	assert.Equal(t, 1, sum.Done)
	assert.Equal(t, 5, sum.Total)
	assert.Equal(t, 20, sum.Percent)

	ids := make([]deck.CardID, 0, len(sum.NextPending))
	for _, c := range sum.NextPending {
		ids = append(ids, c.ID)
	}
	assert.Equal(t, []deck.CardID{"1", "3", "4"}, ids)
}

func TestSummarizeEmpty(t *testing.T) {
	sum := Summarize(NewState(), nil)
	assert.Zero(t, sum.Done)
	assert.Zero(t, sum.Total)
	assert.Zero(t, sum.Percent)
	assert.Empty(t, sum.NextPending)
}

func TestCloneIsIndependent(t *testing.T) {
	st := NewState()
	st.Status["1"] = StatusDone

	c := st.Clone()
	c.Status["1"] = StatusAgain
	c.Reveal["1"] = true

	assert.Equal(t, StatusDone, st.StatusOf("1"))
	assert.False(t, st.Revealed("1"))
}
