package report

import (
	"context"

	"github.com/yaklabco/gedkit/internal/ui/pretty"
)

// Renderer presents sections and record trees in one output format.
type Renderer interface {
	RenderSection(ctx context.Context, section Section) error
	RenderTree(ctx context.Context, lines []pretty.TreeLine) error
}
