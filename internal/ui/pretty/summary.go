package pretty

import (
	"fmt"
	"strings"
)

// Count is one figure of a summary line.
type Count struct {
	N        int
	Singular string
	Plural   string
}

// FormatSummary renders counts as "3 individuals, 1 family". Zero counts
// are skipped; with nothing to report it returns "nothing found".
func (s *Styles) FormatSummary(counts ...Count) string {
	parts := make([]string, 0, len(counts))
	for _, c := range counts {
		if c.N == 0 {
			continue
		}
		word := c.Plural
		if c.N == 1 {
			word = c.Singular
		}
		parts = append(parts, s.Bold.Render(fmt.Sprint(c.N))+" "+word)
	}
	if len(parts) == 0 {
		return s.Dim.Render("nothing found")
	}
	return strings.Join(parts, s.Dim.Render(", "))
}
