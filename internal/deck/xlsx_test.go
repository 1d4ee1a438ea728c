package deck

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeSheet(t *testing.T, rows [][]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		r := row
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &r))
	}

	path := filepath.Join(t.TempDir(), "deck.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestImportXLSX(t *testing.T) {
	path := writeSheet(t, [][]any{
		{"day", "id", "title", "line 1", "line 2", "line 3"},
		{2, "b1", "Second", "x", "y", "z"},
		{1, "a1", "First", "p", "q", "r"},
		{1, "a2", "Also first", "s"},
		{"", "", ""},
		{"soon", "c1", "Bad day"},
		{3, "", "No id"},
		{1, "a1", "Duplicate"},
	})

	d, res, err := ImportXLSX(DefaultImportConfig(path))
	require.NoError(t, err)

	assert.Equal(t, 6, res.TotalProcessed)
	assert.Equal(t, 3, res.Imported)
	assert.Equal(t, 3, res.Skipped)
	assert.Len(t, res.Errors, 3)

	require.Len(t, d.Days, 2)
	assert.Equal(t, 1, d.Days[0].Day)
	assert.Equal(t, []CardID{"a1", "a2"}, d.Days[0].Cards)
	assert.Equal(t, 2, d.Days[1].Day)
	assert.Equal(t, []CardID{"b1"}, d.Days[1].Cards)

	ix := NewIndex(d)
	c, ok := ix.Card("a2")
	require.True(t, ok)
	assert.Equal(t, []string{"s"}, c.Lines)
}

func TestImportXLSXMissingSheet(t *testing.T) {
	path := writeSheet(t, [][]any{{"day", "id"}})
	cfg := DefaultImportConfig(path)
	cfg.SheetName = "Nope"

	_, _, err := ImportXLSX(cfg)
	assert.Error(t, err)
}

func TestWriteJSONRoundTrips(t *testing.T) {
	d := Deck{
		Days:  []Bucket{{Day: 1, Cards: []CardID{"1"}}},
		Cards: []Card{{ID: "1", Title: "one", Lines: []string{"a"}}},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, d))

	got, err := Parse(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, d, got)
}

func TestWriteJSONEmptyDeck(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, Deck{}))
	assert.JSONEq(t, `{"days":[],"cards":[]}`, buf.String())
}
