package report

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/yaklabco/gedkit/pkg/family"
	"github.com/yaklabco/gedkit/pkg/gedcom"
)

// JSONReporter writes each result as one JSON document.
type JSONReporter struct {
	w       io.Writer
	compact bool
}

// NewJSONReporter creates a JSON reporter; output is indented unless
// opts.Compact is set.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{w: opts.Writer, compact: opts.Compact}
}

// JSONRecord is the JSON form of a record tree.
type JSONRecord struct {
	Level  int          `json:"level"`
	XRef   string       `json:"xref,omitempty"`
	Tag    string       `json:"tag"`
	Value  *string      `json:"value,omitempty"`
	Kind   string       `json:"kind"`
	Offset int64        `json:"offset"`
	Sub    []JSONRecord `json:"sub,omitempty"`
}

func newJSONRecord(rec *gedcom.Record) JSONRecord {
	out := JSONRecord{
		Level:  rec.Level,
		XRef:   rec.XRef,
		Tag:    rec.Tag,
		Kind:   rec.Kind.String(),
		Offset: rec.Offset,
	}
	if rec.HasValue {
		value := rec.Value
		out.Value = &value
	}
	for _, sub := range rec.Sub {
		out.Sub = append(out.Sub, newJSONRecord(sub))
	}
	return out
}

func (r *JSONReporter) encode(key string, v any) error {
	enc := json.NewEncoder(r.w)
	if !r.compact {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(map[string]any{key: v}); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

func (r *JSONReporter) Individuals(_ context.Context, people []family.Individual) error {
	return r.encode("individuals", nonNil(people))
}

func (r *JSONReporter) Families(_ context.Context, families []family.Family) error {
	return r.encode("families", nonNil(families))
}

func (r *JSONReporter) Events(_ context.Context, events []family.Event) error {
	return r.encode("events", nonNil(events))
}

func (r *JSONReporter) Records(_ context.Context, entries []gedcom.Entry) error {
	type entry struct {
		XRef   string `json:"xref,omitempty"`
		Tag    string `json:"tag"`
		Offset int64  `json:"offset"`
	}
	out := make([]entry, 0, len(entries))
	for _, e := range entries {
		out = append(out, entry{XRef: e.XRef, Tag: e.Tag, Offset: e.Offset})
	}
	return r.encode("records", out)
}

func (r *JSONReporter) Record(_ context.Context, rec *gedcom.Record) error {
	if rec == nil {
		return r.encode("record", nil)
	}
	return r.encode("record", newJSONRecord(rec))
}

func (r *JSONReporter) Dates(_ context.Context, results []DateResult) error {
	return r.encode("dates", nonNil(results))
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
