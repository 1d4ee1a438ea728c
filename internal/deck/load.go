package deck

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// ErrNoSource is returned when no deck source was configured.
var ErrNoSource = errors.New("no deck source configured")

// SourceError reports a deck that could not be fetched, parsed or validated.
type SourceError struct {
	Source string
	Err    error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("could not load deck %s: %v", e.Source, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// Loader reads deck documents from files or http(s) URLs.
type Loader struct {
	client *http.Client
}

// NewLoader creates a Loader. A nil client gets a default with a timeout.
func NewLoader(client *http.Client) *Loader {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Loader{client: client}
}

// Load reads, validates and normalizes the deck at source.
func (l *Loader) Load(ctx context.Context, source string) (Deck, error) {
	if source == "" {
		return Deck{}, &SourceError{Source: source, Err: ErrNoSource}
	}

	var (
		raw []byte
		err error
	)
	if isURL(source) {
		raw, err = l.fetch(ctx, source)
	} else {
		raw, err = os.ReadFile(source)
	}
	if err != nil {
		return Deck{}, &SourceError{Source: source, Err: err}
	}

	d, err := Parse(raw)
	if err != nil {
		return Deck{}, &SourceError{Source: source, Err: err}
	}
	return d, nil
}

// LoadOrEmpty loads the deck and falls back to an empty one on failure.
// The returned message is non-empty exactly when loading failed, and is
// meant to be shown to the user once.
func (l *Loader) LoadOrEmpty(ctx context.Context, source string) (Deck, string) {
	d, err := l.Load(ctx, source)
	if err != nil {
		return Deck{}, err.Error()
	}
	return d, ""
}

// Load reads a deck with a default Loader.
func Load(ctx context.Context, source string) (Deck, error) {
	return NewLoader(nil).Load(ctx, source)
}

// Parse validates raw JSON against Schema and decodes it into a Deck.
func Parse(raw []byte) (Deck, error) {
	if err := Validate(raw); err != nil {
		return Deck{}, err
	}
	var d Deck
	if err := json.Unmarshal(raw, &d); err != nil {
		return Deck{}, fmt.Errorf("decode deck: %w", err)
	}
	return Normalize(d), nil
}

// Normalize fills in missing day numbers and guarantees non-nil slices.
// A bucket with no day number is numbered by its position.
func Normalize(d Deck) Deck {
	out := Deck{
		Days:  make([]Bucket, 0, len(d.Days)),
		Cards: make([]Card, 0, len(d.Cards)),
	}
	for i, b := range d.Days {
		if b.Day <= 0 {
			b.Day = i + 1
		}
		if b.Cards == nil {
			b.Cards = []CardID{}
		}
		out.Days = append(out.Days, b)
	}
	for _, c := range d.Cards {
		if c.Lines == nil {
			c.Lines = []string{}
		}
		out.Cards = append(out.Cards, c)
	}
	return out
}

func isURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

func (l *Loader) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Cache-Control", "no-store")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}

	return io.ReadAll(resp.Body)
}
