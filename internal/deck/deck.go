// Package deck holds the card catalog and its day buckets.
package deck

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// CardID identifies a card. Source documents may carry numeric or string
// identifiers; both normalize to the same decimal string form.
type CardID string

// UnmarshalJSON accepts either a JSON string or a JSON number.
func (id *CardID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = CardID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("card id must be a string or number: %w", err)
	}
	*id = normalizeNumber(n)
	return nil
}

// String returns the identifier as a plain string.
func (id CardID) String() string {
	return string(id)
}

// ParseCardID turns a typed-in identifier into a CardID. Input that reads
// as a JSON number gets the same normalization as numeric ids in a deck
// document, so "07" and "7" name the same card.
func ParseCardID(s string) CardID {
	s = strings.TrimSpace(s)
	if !numberPattern.MatchString(s) {
		return CardID(s)
	}
	return normalizeNumber(json.Number(s))
}

// numberPattern matches decimal numbers, allowing leading zeros that JSON
// itself would reject.
var numberPattern = regexp.MustCompile(`^-?[0-9]+(\.[0-9]+)?([eE][+-]?[0-9]+)?$`)

func normalizeNumber(n json.Number) CardID {
	if i, err := n.Int64(); err == nil {
		return CardID(strconv.FormatInt(i, 10))
	}
	if f, err := n.Float64(); err == nil {
		return CardID(strconv.FormatFloat(f, 'f', -1, 64))
	}
	return CardID(n.String())
}

// Card is one memorization unit.
type Card struct {
	ID    CardID   `json:"id"`
	Title string   `json:"title"`
	Lines []string `json:"lines"`
}

// Bucket is the ordered list of card ids assigned to one study day.
type Bucket struct {
	Day   int      `json:"day"`
	Cards []CardID `json:"cards"`
}

// Deck is the full catalog. The zero value is a valid empty deck.
type Deck struct {
	Days  []Bucket `json:"days"`
	Cards []Card   `json:"cards"`
}

// IsEmpty reports whether the deck has neither buckets nor cards.
func (d Deck) IsEmpty() bool {
	return len(d.Days) == 0 && len(d.Cards) == 0
}
