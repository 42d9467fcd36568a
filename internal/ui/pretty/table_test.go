package pretty_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/owencmcgrath/hrml/internal/ui/pretty"
)

func TestFormatStats_Empty(t *testing.T) {
	table := pretty.NewTableFormatter(pretty.NewStyles(false), 80)

	assert.Empty(t, table.FormatStats(nil))
}

func TestFormatStats_SingleRow(t *testing.T) {
	table := pretty.NewTableFormatter(pretty.NewStyles(false), 80)

	out := table.FormatStats([]pretty.StatsRow{
		{File: "notes.hrml", Words: 12345, Characters: 67890, Lines: 321, Bytes: 1500},
	})

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "FILE")
	assert.Contains(t, lines[0], "SIZE")
	assert.Equal(t, strings.Repeat("=", len(lines[1])), lines[1])
	assert.Contains(t, lines[2], "notes.hrml")
	assert.Contains(t, lines[2], "12,345")
	assert.Contains(t, lines[2], "67,890")
	assert.Contains(t, lines[2], "321")
	assert.Contains(t, lines[2], "1.5 kB")
	assert.NotContains(t, out, "total")
}

func TestFormatStats_Total(t *testing.T) {
	table := pretty.NewTableFormatter(pretty.NewStyles(false), 0)

	out := table.FormatStats([]pretty.StatsRow{
		{File: "a.hrml", Words: 1, Characters: 10, Lines: 1, Bytes: 10},
		{File: "b.hrml", Words: 2, Characters: 20, Lines: 2, Bytes: 20},
	})

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 6)
	assert.True(t, strings.HasPrefix(lines[4], "---"))
	assert.Contains(t, lines[5], "total")
	assert.Contains(t, lines[5], "30 B")
	fields := strings.Fields(lines[5])
	assert.Equal(t, []string{"total", "3", "30", "3", "30", "B"}, fields)
}

func TestFormatStats_TruncatesLongPaths(t *testing.T) {
	table := pretty.NewTableFormatter(pretty.NewStyles(false), 50)

	long := strings.Repeat("dir/", 20) + "file.hrml"
	out := table.FormatStats([]pretty.StatsRow{{File: long, Words: 1, Characters: 1, Lines: 1, Bytes: 1}})

	assert.Contains(t, out, "...")
	assert.Contains(t, out, "file.hrml")
	assert.NotContains(t, out, long)
}
