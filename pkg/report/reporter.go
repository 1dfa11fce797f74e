// Package report renders gedkit results as text, JSON, tables or HTML.
package report

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/gedkit/pkg/config"
	"github.com/yaklabco/gedkit/pkg/family"
	"github.com/yaklabco/gedkit/pkg/gedcom"
)

// Reporter writes one kind of result per call.
type Reporter interface {
	Individuals(ctx context.Context, people []family.Individual) error
	Families(ctx context.Context, families []family.Family) error
	Events(ctx context.Context, events []family.Event) error
	Records(ctx context.Context, entries []gedcom.Entry) error
	Record(ctx context.Context, rec *gedcom.Record) error
	Dates(ctx context.Context, results []DateResult) error
}

var (
	_ Reporter = (*sectionReporter)(nil)
	_ Reporter = (*JSONReporter)(nil)
)

// New creates the Reporter for opts.Format.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}
	format := opts.Format
	if format == "" {
		format = config.FormatText
	}

	switch format {
	case config.FormatJSON:
		return NewJSONReporter(opts), nil
	case config.FormatText:
		return &sectionReporter{renderer: newTextRenderer(opts)}, nil
	case config.FormatTable:
		return &sectionReporter{renderer: newTableRenderer(opts)}, nil
	case config.FormatHTML:
		return &sectionReporter{renderer: newHTMLRenderer(opts)}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// sectionReporter converts results to sections and hands them to a
// Renderer.
type sectionReporter struct {
	renderer Renderer
}

func (r *sectionReporter) Individuals(ctx context.Context, people []family.Individual) error {
	return r.renderer.RenderSection(ctx, individualsSection(people))
}

func (r *sectionReporter) Families(ctx context.Context, families []family.Family) error {
	return r.renderer.RenderSection(ctx, familiesSection(families))
}

func (r *sectionReporter) Events(ctx context.Context, events []family.Event) error {
	return r.renderer.RenderSection(ctx, eventsSection(events))
}

func (r *sectionReporter) Records(ctx context.Context, entries []gedcom.Entry) error {
	return r.renderer.RenderSection(ctx, recordsSection(entries))
}

func (r *sectionReporter) Record(ctx context.Context, rec *gedcom.Record) error {
	return r.renderer.RenderTree(ctx, flattenRecord(rec))
}

func (r *sectionReporter) Dates(ctx context.Context, results []DateResult) error {
	return r.renderer.RenderSection(ctx, datesSection(results))
}

// flush flushes bw into err unless err is already set.
func flush(bw *bufio.Writer, err *error) {
	if flushErr := bw.Flush(); *err == nil && flushErr != nil {
		*err = fmt.Errorf("write report: %w", flushErr)
	}
}
