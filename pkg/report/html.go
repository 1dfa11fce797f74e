package report

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/yaklabco/gedkit/internal/ui/pretty"
)

// htmlRenderer builds a Markdown document in memory and converts it to
// HTML with goldmark.
type htmlRenderer struct {
	w  io.Writer
	md goldmark.Markdown
}

func newHTMLRenderer(opts Options) *htmlRenderer {
	return &htmlRenderer{
		w: opts.Writer,
		md: goldmark.New(
			goldmark.WithExtensions(extension.Table),
			goldmark.WithRendererOptions(html.WithXHTML()),
		),
	}
}

func (r *htmlRenderer) RenderSection(ctx context.Context, section Section) error {
	var md strings.Builder
	fmt.Fprintf(&md, "## %s\n\n", escapeMarkdown(section.Title))

	if len(section.Rows) > 0 {
		writeMarkdownRow(&md, section.Headers)
		md.WriteString("|" + strings.Repeat(" --- |", len(section.Headers)) + "\n")
		for _, row := range section.Rows {
			if err := ctx.Err(); err != nil {
				return err
			}
			cells := make([]string, len(section.Headers))
			copy(cells, row)
			writeMarkdownRow(&md, cells)
		}
		md.WriteString("\n")
	}

	word := section.Count.Plural
	if section.Count.N == 1 {
		word = section.Count.Singular
	}
	fmt.Fprintf(&md, "*%d %s*\n", section.Count.N, word)
	return r.convert(md.String())
}

func (r *htmlRenderer) RenderTree(_ context.Context, lines []pretty.TreeLine) error {
	var md strings.Builder
	md.WriteString("```gedcom\n")
	for _, line := range lines {
		md.WriteString(strings.Repeat("  ", line.Level))
		md.WriteString(strconv.Itoa(line.Level))
		if line.XRef != "" {
			md.WriteString(" " + line.XRef)
		}
		md.WriteString(" " + line.Tag)
		if line.Value != "" {
			md.WriteString(" " + strings.ReplaceAll(line.Value, "\n", " / "))
		}
		md.WriteString("\n")
	}
	md.WriteString("```\n")
	return r.convert(md.String())
}

func (r *htmlRenderer) convert(source string) error {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(source), &buf); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	if _, err := r.w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

func writeMarkdownRow(md *strings.Builder, cells []string) {
	md.WriteString("|")
	for _, cell := range cells {
		md.WriteString(" " + escapeMarkdown(cell) + " |")
	}
	md.WriteString("\n")
}

//nolint:gochecknoglobals // Read-only replacer.
var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"|", `\|`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"[", `\[`,
	"]", `\]`,
	"<", "&lt;",
	">", "&gt;",
	"\n", " ",
)

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}
