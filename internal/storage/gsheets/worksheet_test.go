package gsheets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColumnName(t *testing.T) {
	tests := map[int]string{
		1:   "A",
		2:   "B",
		26:  "Z",
		27:  "AA",
		52:  "AZ",
		53:  "BA",
		702: "ZZ",
		703: "AAA",
	}
	for col, want := range tests {
		assert.Equal(t, want, columnName(col), "column %d", col)
	}
}

func TestCellRef(t *testing.T) {
	ref, err := cellRef(5, 6)
	require.NoError(t, err)
	assert.Equal(t, "F5", ref)

	_, err = cellRef(0, 1)
	assert.Error(t, err)
}

func TestQuoteSheet(t *testing.T) {
	assert.Equal(t, "'users'", quoteSheet("users"))
	assert.Equal(t, "'officer''s tasks'", quoteSheet("officer's tasks"))
}

func TestToStrings(t *testing.T) {
	grid := toStrings([][]interface{}{
		{"id", "amount"},
		{"1", 1000.0},
		{"2", nil},
	})
	assert.Equal(t, [][]string{
		{"id", "amount"},
		{"1", "1000"},
		{"2", ""},
	}, grid)
}
