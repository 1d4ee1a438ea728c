package deck

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDeck = `{
  "days": [
    {"day": 1, "cards": [1, "2"]},
    {"cards": [3]}
  ],
  "cards": [
    {"id": 1, "title": "one", "lines": ["a", "b", "c"]},
    {"id": "2", "title": "two", "lines": ["d"]},
    {"id": 3, "title": "three"}
  ]
}`

func TestParse(t *testing.T) {
	d, err := Parse([]byte(sampleDeck))
	require.NoError(t, err)

	require.Len(t, d.Days, 2)
	assert.Equal(t, []CardID{"1", "2"}, d.Days[0].Cards)
	// Missing day number falls back to position.
	assert.Equal(t, 2, d.Days[1].Day)

	require.Len(t, d.Cards, 3)
	assert.Equal(t, CardID("1"), d.Cards[0].ID)
	assert.Equal(t, []string{"a", "b", "c"}, d.Cards[0].Lines)
	assert.NotNil(t, d.Cards[2].Lines)
}

func TestParseNumericAndStringIDsMatch(t *testing.T) {
	d, err := Parse([]byte(`{"days":[{"day":1,"cards":["7"]}],"cards":[{"id":7,"title":"seven"}]}`))
	require.NoError(t, err)

	cards := NewIndex(d).Cards(0)
	require.Len(t, cards, 1)
	assert.Equal(t, "seven", cards[0].Title)
}

func TestParseCardID(t *testing.T) {
	tests := []struct {
		in   string
		want CardID
	}{
		{"7", "7"},
		{"07", "7"},
		{" 12 ", "12"},
		{"1.50", "1.5"},
		{"-3", "-3"},
		{"abc", "abc"},
		{"7a", "7a"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseCardID(tt.in), "input %q", tt.in)
	}
}

func TestParseRejectsBadShapes(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", `{days:`},
		{"cards not array", `{"cards": {"id": 1}}`},
		{"card without id", `{"cards": [{"title": "x"}]}`},
		{"bool id", `{"cards": [{"id": true}]}`},
		{"lines not strings", `{"cards": [{"id": 1, "lines": [1, 2]}]}`},
		{"bucket without cards", `{"days": [{"day": 1}]}`},
		{"top level array", `[]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.raw))
			assert.Error(t, err)
		})
	}
}

func TestParseEmptyObject(t *testing.T) {
	d, err := Parse([]byte(`{}`))
	require.NoError(t, err)
	assert.True(t, d.IsEmpty())
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deck.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleDeck), 0o644))

	d, err := Load(context.Background(), path)
	require.NoError(t, err)
	assert.Len(t, d.Cards, 3)
}

func TestLoadMissingFile(t *testing.T) {
	l := NewLoader(nil)
	path := filepath.Join(t.TempDir(), "nope.json")

	_, err := l.Load(context.Background(), path)
	var srcErr *SourceError
	require.True(t, errors.As(err, &srcErr))
	assert.Equal(t, path, srcErr.Source)
	assert.True(t, errors.Is(err, os.ErrNotExist))

	d, msg := l.LoadOrEmpty(context.Background(), path)
	assert.True(t, d.IsEmpty())
	assert.Contains(t, msg, path)
}

func TestLoadNoSource(t *testing.T) {
	_, err := Load(context.Background(), "")
	assert.True(t, errors.Is(err, ErrNoSource))
}

func TestLoadURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/deck.json":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(sampleDeck))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	l := NewLoader(srv.Client())

	d, err := l.Load(context.Background(), srv.URL+"/deck.json")
	require.NoError(t, err)
	assert.Len(t, d.Days, 2)

	_, err = l.Load(context.Background(), srv.URL+"/missing.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 404")
}

func TestLoadURLCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(sampleDeck))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewLoader(srv.Client()).Load(ctx, srv.URL)
	assert.True(t, errors.Is(err, context.Canceled))
}
