// Package schema normalizes raw reasoning-provider output into a
// domain.AnalysisPayload. Provider JSON is untrusted input: malformed JSON
// is a hard failure, while missing arrays and non-numeric numbers are
// soft-defaulted so downstream consumers can rely on the payload shape.
package schema

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/heartmarshall/talklens-backend/internal/domain"
)

// flexNumber decodes a JSON value that should be a number but may arrive
// as a quoted string, null, or garbage. Anything non-numeric becomes 0.
type flexNumber float64

func (n *flexNumber) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "" || s == "null" {
		*n = 0
		return nil
	}
	s = strings.Trim(s, `"`)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*n = 0
		return nil
	}
	*n = flexNumber(v)
	return nil
}

// rawPayload mirrors the provider schema with every field optional.
type rawPayload struct {
	Summary  *rawSummary  `json:"summary"`
	Topics   []rawTopic   `json:"topics"`
	Keywords []rawKeyword `json:"keywords"`
	OffTopic []rawSegment `json:"offTopic"`
}

type rawSummary struct {
	MainPoints  []string `json:"main_points"`
	ActionItems []string `json:"action_items"`
	Decisions   []string `json:"decisions"`
}

type rawTopic struct {
	Topic  string     `json:"topic"`
	Start  flexNumber `json:"start"`
	End    flexNumber `json:"end"`
	Weight flexNumber `json:"weight"`
}

type rawKeyword struct {
	Term       string     `json:"term"`
	Count      flexNumber `json:"count"`
	Definition string     `json:"definition"`
}

type rawSegment struct {
	Start flexNumber `json:"start"`
	End   flexNumber `json:"end"`
	Note  string     `json:"note"`
}

// Validate parses raw provider output and normalizes it into an
// AnalysisPayload. Non-JSON input fails with domain.ErrSchema; missing
// arrays are replaced with empty slices, and numeric fields that are
// absent or non-numeric coerce to 0. No semantic checks are made beyond
// shape: spans with end < start are kept verbatim.
func Validate(raw []byte) (domain.AnalysisPayload, error) {
	var p rawPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return domain.AnalysisPayload{}, fmt.Errorf("malformed JSON: %v: %w", err, domain.ErrSchema)
	}

	out := domain.AnalysisPayload{
		Summary: domain.Summary{
			MainPoints:  []string{},
			ActionItems: []string{},
			Decisions:   []string{},
		},
		Topics:   []domain.Topic{},
		Keywords: []domain.Keyword{},
		OffTopic: []domain.OffTopicSegment{},
	}

	if p.Summary != nil {
		if p.Summary.MainPoints != nil {
			out.Summary.MainPoints = p.Summary.MainPoints
		}
		if p.Summary.ActionItems != nil {
			out.Summary.ActionItems = p.Summary.ActionItems
		}
		if p.Summary.Decisions != nil {
			out.Summary.Decisions = p.Summary.Decisions
		}
	}

	for _, t := range p.Topics {
		out.Topics = append(out.Topics, domain.Topic{
			Topic:  t.Topic,
			Start:  float64(t.Start),
			End:    float64(t.End),
			Weight: float64(t.Weight),
		})
	}

	for _, k := range p.Keywords {
		out.Keywords = append(out.Keywords, domain.Keyword{
			Term:       k.Term,
			Count:      float64(k.Count),
			Definition: k.Definition,
		})
	}

	for _, s := range p.OffTopic {
		out.OffTopic = append(out.OffTopic, domain.OffTopicSegment{
			Start: float64(s.Start),
			End:   float64(s.End),
			Note:  s.Note,
		})
	}

	return out, nil
}
