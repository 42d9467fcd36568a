package pretty

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

// Table formatting constants.
const (
	tablePadding     = 2
	minFileWidth     = 8
	minNumberWidth   = 5
	minSizeWidth     = 6
	heavySeparator   = "="
	lightSeparator   = "-"
	defaultTermWidth = 100
	totalLabel       = "total"
)

// StatsRow is one file in the stats table.
type StatsRow struct {
	File       string
	Words      int
	Characters int
	Lines      int
	Bytes      int64
}

// TableFormatter formats document statistics as a styled table.
type TableFormatter struct {
	styles    *Styles
	termWidth int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{
		styles:    styles,
		termWidth: termWidth,
	}
}

type statsCells struct {
	file, words, chars, lines, size string
}

type columnWidths struct {
	file, words, chars, lines, size int
}

// FormatStats formats rows as a table with a header and, for more than one
// row, a total line. Counts use thousands separators and sizes are
// humanized.
func (t *TableFormatter) FormatStats(rows []StatsRow) string {
	if len(rows) == 0 {
		return ""
	}

	cells := make([]statsCells, 0, len(rows)+1)
	var total StatsRow
	for _, row := range rows {
		cells = append(cells, toCells(row))
		total.Words += row.Words
		total.Characters += row.Characters
		total.Lines += row.Lines
		total.Bytes += row.Bytes
	}

	var totalCells *statsCells
	if len(rows) > 1 {
		total.File = totalLabel
		c := toCells(total)
		totalCells = &c
	}

	widths := t.calculateColumnWidths(cells, totalCells)

	var builder strings.Builder
	builder.WriteString(t.formatHeader(widths))
	builder.WriteString("\n")
	builder.WriteString(t.formatSeparator(widths, heavySeparator))
	builder.WriteString("\n")

	for _, c := range cells {
		builder.WriteString(t.formatRow(c, widths))
		builder.WriteString("\n")
	}

	if totalCells != nil {
		builder.WriteString(t.formatSeparator(widths, lightSeparator))
		builder.WriteString("\n")
		builder.WriteString(t.styles.TableTotal.Render(t.formatRow(*totalCells, widths)))
		builder.WriteString("\n")
	}

	return builder.String()
}

func toCells(row StatsRow) statsCells {
	return statsCells{
		file:  row.File,
		words: humanize.Comma(int64(row.Words)),
		chars: humanize.Comma(int64(row.Characters)),
		lines: humanize.Comma(int64(row.Lines)),
		size:  humanize.Bytes(uint64(max(row.Bytes, 0))),
	}
}

// calculateColumnWidths determines column widths from content, shrinking the
// file column to fit the terminal.
func (t *TableFormatter) calculateColumnWidths(cells []statsCells, total *statsCells) columnWidths {
	widths := columnWidths{
		file:  minFileWidth,
		words: minNumberWidth,
		chars: minNumberWidth,
		lines: minNumberWidth,
		size:  minSizeWidth,
	}

	grow := func(c statsCells) {
		widths.file = max(widths.file, len(c.file))
		widths.words = max(widths.words, len(c.words))
		widths.chars = max(widths.chars, len(c.chars))
		widths.lines = max(widths.lines, len(c.lines))
		widths.size = max(widths.size, len(c.size))
	}
	for _, c := range cells {
		grow(c)
	}
	if total != nil {
		grow(*total)
	}

	if excess := t.calculateTotalWidth(widths) - t.termWidth; excess > 0 {
		widths.file = max(minFileWidth, widths.file-excess)
	}

	return widths
}

func (t *TableFormatter) calculateTotalWidth(widths columnWidths) int {
	const columns = 5
	return widths.file + widths.words + widths.chars + widths.lines + widths.size + tablePadding*columns
}

func (t *TableFormatter) formatHeader(widths columnWidths) string {
	header := fmt.Sprintf(" %-*s  %*s  %*s  %*s  %*s",
		widths.file, "FILE",
		widths.words, "WORDS",
		widths.chars, "CHARS",
		widths.lines, "LINES",
		widths.size, "SIZE",
	)
	return t.styles.TableHeader.Render(header)
}

func (t *TableFormatter) formatSeparator(widths columnWidths, char string) string {
	return t.styles.TableSeparator.Render(strings.Repeat(char, t.calculateTotalWidth(widths)))
}

func (t *TableFormatter) formatRow(c statsCells, widths columnWidths) string {
	return fmt.Sprintf(" %-*s  %*s  %*s  %*s  %*s",
		widths.file, truncateFilePath(c.file, widths.file),
		widths.words, c.words,
		widths.chars, c.chars,
		widths.lines, c.lines,
		widths.size, c.size,
	)
}

// truncateFilePath truncates a file path, preserving the end (filename) rather than beginning.
func truncateFilePath(path string, maxLen int) string {
	if len(path) <= maxLen {
		return path
	}
	if maxLen <= 3 {
		return path[len(path)-maxLen:]
	}
	return "..." + path[len(path)-maxLen+3:]
}
