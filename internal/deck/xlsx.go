package deck

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ImportConfig describes the spreadsheet layout read by ImportXLSX.
// Columns are fixed: day, id, title, then one column per card line.
type ImportConfig struct {
	FilePath  string
	SheetName string
	StartRow  int // 1-based; rows before it are headers
}

// DefaultImportConfig returns the layout with a single header row on Sheet1.
func DefaultImportConfig(path string) ImportConfig {
	return ImportConfig{
		FilePath:  path,
		SheetName: "Sheet1",
		StartRow:  2,
	}
}

// ImportResult summarizes an import.
type ImportResult struct {
	TotalProcessed int
	Imported       int
	Skipped        int
	Errors         []string
}

// ImportXLSX builds a Deck from a spreadsheet. Buckets are ordered by day
// number and keep the sheet order of their cards. Bad rows are skipped and
// reported in the result rather than failing the import.
func ImportXLSX(cfg ImportConfig) (Deck, *ImportResult, error) {
	f, err := excelize.OpenFile(cfg.FilePath)
	if err != nil {
		return Deck{}, nil, fmt.Errorf("open spreadsheet: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(cfg.SheetName)
	if err != nil {
		return Deck{}, nil, fmt.Errorf("read sheet %q: %w", cfg.SheetName, err)
	}

	result := &ImportResult{Errors: make([]string, 0)}
	byDay := make(map[int][]CardID)
	seen := make(map[CardID]bool)
	var cards []Card

	for i, row := range rows {
		if i < cfg.StartRow-1 {
			continue
		}
		if isBlankRow(row) {
			continue
		}
		result.TotalProcessed++

		day, card, err := parseRow(row)
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", i+1, err))
			continue
		}
		if seen[card.ID] {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: duplicate card id %q", i+1, card.ID))
			continue
		}
		seen[card.ID] = true
		cards = append(cards, card)
		byDay[day] = append(byDay[day], card.ID)
		result.Imported++
	}

	days := make([]int, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Ints(days)

	d := Deck{Cards: cards}
	for _, day := range days {
		d.Days = append(d.Days, Bucket{Day: day, Cards: byDay[day]})
	}
	return Normalize(d), result, nil
}

func parseRow(row []string) (int, Card, error) {
	cell := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	day, err := strconv.Atoi(cell(0))
	if err != nil || day <= 0 {
		return 0, Card{}, fmt.Errorf("invalid day %q", cell(0))
	}
	id := cell(1)
	if id == "" {
		return 0, Card{}, fmt.Errorf("missing card id")
	}

	card := Card{ID: CardID(id), Title: cell(2), Lines: []string{}}
	for j := 3; j < len(row); j++ {
		if line := cell(j); line != "" {
			card.Lines = append(card.Lines, line)
		}
	}
	return day, card, nil
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// WriteJSON writes d as an indented deck document.
func WriteJSON(w io.Writer, d Deck) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(Normalize(d))
}
