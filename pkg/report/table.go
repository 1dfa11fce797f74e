package report

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"

	"golang.org/x/term"

	"github.com/yaklabco/gedkit/internal/ui/pretty"
)

// defaultTermWidth is used when the writer is not a terminal.
const defaultTermWidth = 100

type tableRenderer struct {
	styles    *pretty.Styles
	formatter *pretty.TableFormatter
	bw        *bufio.Writer
}

func newTableRenderer(opts Options) *tableRenderer {
	styles := pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer))
	width := opts.TermWidth
	if width <= 0 {
		width = terminalWidth(opts.Writer)
	}
	return &tableRenderer{
		styles:    styles,
		formatter: pretty.NewTableFormatter(styles, width),
		bw:        bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

func (r *tableRenderer) RenderSection(_ context.Context, section Section) (err error) {
	defer flush(r.bw, &err)

	fmt.Fprintln(r.bw, r.styles.Title.Render(section.Title))
	fmt.Fprint(r.bw, r.formatter.Format(section.Headers, section.Rows))
	fmt.Fprintln(r.bw, " "+r.styles.FormatSummary(section.Count))
	return nil
}

func (r *tableRenderer) RenderTree(_ context.Context, lines []pretty.TreeLine) (err error) {
	defer flush(r.bw, &err)

	rows := make([][]string, 0, len(lines))
	for _, line := range lines {
		rows = append(rows, []string{strconv.Itoa(line.Level), line.XRef, line.Tag, line.Value})
	}
	fmt.Fprint(r.bw, r.formatter.Format([]string{"LEVEL", "XREF", "TAG", "VALUE"}, rows))
	return nil
}

// terminalWidth returns the width of writer's terminal, or a default.
func terminalWidth(writer io.Writer) int {
	if f, ok := writer.(interface{ Fd() uintptr }); ok {
		width, _, err := term.GetSize(int(f.Fd()))
		if err == nil && width > 0 {
			return width
		}
	}
	return defaultTermWidth
}
