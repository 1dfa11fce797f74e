package report

import (
	"github.com/yaklabco/gedkit/pkg/date"
)

// DateResult is one parsed DATE value for the date command. From and To
// are the Julian Days of the bounds; open ends are 0.
type DateResult struct {
	Input     string  `json:"input"`
	Kind      string  `json:"kind,omitempty"`
	Formatted string  `json:"formatted,omitempty"`
	From      float64 `json:"from_jd,omitempty"`
	To        float64 `json:"to_jd,omitempty"`
	Error     string  `json:"error,omitempty"`

	value date.Value
}

// Value returns the parsed value; it is empty when parsing failed.
func (r DateResult) Value() date.Value {
	return r.value
}

// NewDateResult parses text. Parse failures are recorded in Error.
func NewDateResult(text string) DateResult {
	v, err := date.Parse(text)
	if err != nil {
		return DateResult{Input: text, Error: err.Error()}
	}

	result := DateResult{
		Input:     text,
		Kind:      v.Kind.String(),
		Formatted: v.String(),
		value:     v,
	}
	if v.Kind != date.Phrase {
		first, second := v.Key()
		if first != date.StartOfTime {
			result.From = first.Key().JD
		}
		if second != date.EndOfTime {
			result.To = second.Key().JD
		}
	}
	return result
}
