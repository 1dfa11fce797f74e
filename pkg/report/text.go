package report

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/yaklabco/gedkit/internal/ui/pretty"
)

// textRenderer writes one line per row: the reference, the styled name and
// then "header: value" for every other non-empty cell.
type textRenderer struct {
	styles *pretty.Styles
	bw     *bufio.Writer
}

func newTextRenderer(opts Options) *textRenderer {
	return &textRenderer{
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

func (r *textRenderer) RenderSection(ctx context.Context, section Section) (err error) {
	defer flush(r.bw, &err)

	for _, row := range section.Rows {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprintln(r.bw, r.formatRow(section.Headers, row))
	}
	fmt.Fprintln(r.bw, r.styles.FormatSummary(section.Count))
	return nil
}

func (r *textRenderer) formatRow(headers, row []string) string {
	parts := make([]string, 0, len(row))
	for i, cell := range row {
		if cell == "" {
			continue
		}
		switch i {
		case 0:
			parts = append(parts, r.styles.XRef.Render(cell))
		case 1:
			parts = append(parts, r.styles.Name.Render(cell))
		default:
			label := strings.ToLower(headers[i])
			parts = append(parts, r.styles.Label.Render(label+":")+" "+r.styles.Value.Render(cell))
		}
	}
	return strings.Join(parts, "  ")
}

func (r *textRenderer) RenderTree(_ context.Context, lines []pretty.TreeLine) (err error) {
	defer flush(r.bw, &err)

	for _, line := range lines {
		fmt.Fprintln(r.bw, r.styles.FormatTreeLine(line))
	}
	return nil
}
