package pretty

import (
	"strconv"
	"strings"
)

// TreeLine is one line of a record tree.
type TreeLine struct {
	Level int
	XRef  string
	Tag   string
	Value string
}

// FormatTreeLine renders a record line in GEDCOM form, indented two spaces
// per level. Multi-line values continue under the tag.
func (s *Styles) FormatTreeLine(line TreeLine) string {
	indent := strings.Repeat("  ", line.Level)

	var b strings.Builder
	b.WriteString(indent)
	b.WriteString(s.Dim.Render(strconv.Itoa(line.Level)))
	if line.XRef != "" {
		b.WriteByte(' ')
		b.WriteString(s.XRef.Render(line.XRef))
	}
	b.WriteByte(' ')
	b.WriteString(s.Tag.Render(line.Tag))
	if line.Value != "" {
		cont := "\n" + indent + strings.Repeat(" ", len(strconv.Itoa(line.Level))+len(line.Tag)+2)
		for i, part := range strings.Split(line.Value, "\n") {
			if i == 0 {
				b.WriteByte(' ')
			} else {
				b.WriteString(cont)
			}
			b.WriteString(s.Value.Render(part))
		}
	}
	return b.String()
}
