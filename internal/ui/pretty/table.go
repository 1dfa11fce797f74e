package pretty

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	tablePadding     = 2
	minColumnWidth   = 4
	defaultTermWidth = 100
	heavySeparator   = "="
	ellipsis         = "..."
)

// TableFormatter lays rows out in aligned columns that fit the terminal.
// When the table is too wide the widest columns shrink first.
type TableFormatter struct {
	styles    *Styles
	termWidth int
}

// NewTableFormatter creates a formatter for a terminal termWidth columns
// wide; 0 selects a default.
func NewTableFormatter(styles *Styles, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{styles: styles, termWidth: termWidth}
}

// Format renders headers and rows. Rows shorter than headers are padded.
func (t *TableFormatter) Format(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}
	widths := t.columnWidths(headers, rows)

	var b strings.Builder
	b.WriteString(t.styles.TableHeader.Render(formatCells(headers, widths)))
	b.WriteByte('\n')
	b.WriteString(t.separator(widths))
	b.WriteByte('\n')
	for _, row := range rows {
		b.WriteString(formatCells(row, widths))
		b.WriteByte('\n')
	}
	b.WriteString(t.separator(widths))
	b.WriteByte('\n')
	return b.String()
}

func (t *TableFormatter) columnWidths(headers []string, rows [][]string) []int {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = max(minColumnWidth, utf8.RuneCountInString(h))
	}
	for _, row := range rows {
		for i := range min(len(row), len(widths)) {
			widths[i] = max(widths[i], utf8.RuneCountInString(row[i]))
		}
	}

	for total := totalWidth(widths); total > t.termWidth; total = totalWidth(widths) {
		widest := 0
		for i, w := range widths {
			if w > widths[widest] {
				widest = i
			}
		}
		if widths[widest] <= minColumnWidth {
			break
		}
		widths[widest] = max(minColumnWidth, widths[widest]-(total-t.termWidth))
	}
	return widths
}

func totalWidth(widths []int) int {
	total := 1 + tablePadding*(len(widths)-1)
	for _, w := range widths {
		total += w
	}
	return total
}

func (t *TableFormatter) separator(widths []int) string {
	return t.styles.TableSeparator.Render(strings.Repeat(heavySeparator, totalWidth(widths)))
}

func formatCells(cells []string, widths []int) string {
	var b strings.Builder
	b.WriteByte(' ')
	for i, w := range widths {
		var cell string
		if i < len(cells) {
			cell = TruncateString(cells[i], w)
		}
		if i == len(widths)-1 {
			b.WriteString(cell)
			break
		}
		fmt.Fprintf(&b, "%-*s", w+tablePadding, cell)
	}
	return strings.TrimRight(b.String(), " ")
}

// TruncateString shortens s to at most maxLen runes, ending with "...".
func TruncateString(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	if maxLen <= len(ellipsis) {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-len(ellipsis)]) + ellipsis
}
