package pretty_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gedkit/internal/ui/pretty"
)

func TestTableFormat(t *testing.T) {
	t.Parallel()

	formatter := pretty.NewTableFormatter(pretty.NewStyles(false), 0)
	out := formatter.Format(
		[]string{"XREF", "NAME"},
		[][]string{{"@I1@", "John Smith"}, {"@I22@"}},
	)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	assert.Equal(t, []string{
		" XREF   NAME",
		"==================",
		" @I1@   John Smith",
		" @I22@",
		"==================",
	}, lines)
	assert.Empty(t, formatter.Format(nil, nil))
}

func TestTableFitsTerminal(t *testing.T) {
	t.Parallel()

	formatter := pretty.NewTableFormatter(pretty.NewStyles(false), 30)
	out := formatter.Format(
		[]string{"XREF", "NOTE"},
		[][]string{{"@N1@", strings.Repeat("long text ", 10)}},
	)
	for _, line := range strings.Split(strings.TrimSuffix(out, "\n"), "\n") {
		assert.LessOrEqual(t, len(line), 30, line)
	}
	assert.Contains(t, out, "...")
}

func TestTruncateString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "short", pretty.TruncateString("short", 10))
	assert.Equal(t, "Жанна...", pretty.TruncateString("Жанна Иванова", 8))
	assert.Equal(t, "ab", pretty.TruncateString("abcdef", 2))
}
