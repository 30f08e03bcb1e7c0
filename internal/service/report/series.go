// Package report derives chart-ready series from a stored analysis.
// Derivations are pure functions over the document; nothing here mutates
// or re-persists the analysis.
package report

import "github.com/heartmarshall/talklens-backend/internal/domain"

// Point is one labeled value in a series.
type Point struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Report bundles every derived view for a document.
type Report struct {
	TopicWeights     []Point `json:"topic_weights"`
	TopicDurations   []Point `json:"topic_durations"`
	KeywordFrequency []Point `json:"keyword_frequency"`
}

// Build derives all series from a payload.
func Build(p domain.AnalysisPayload) Report {
	return Report{
		TopicWeights:     TopicWeightSeries(p.Topics),
		TopicDurations:   TopicDurationSeries(p.Topics),
		KeywordFrequency: KeywordFrequencySeries(p.Keywords),
	}
}

// TopicWeightSeries maps each topic to its relative weight, preserving
// the stored order.
func TopicWeightSeries(topics []domain.Topic) []Point {
	points := make([]Point, 0, len(topics))
	for _, t := range topics {
		points = append(points, Point{Label: t.Topic, Value: t.Weight})
	}
	return points
}

// TopicDurationSeries maps each topic to its time span in seconds.
// Spans are stored verbatim, so end may precede start; the duration is
// clamped to zero here rather than corrected in storage.
func TopicDurationSeries(topics []domain.Topic) []Point {
	points := make([]Point, 0, len(topics))
	for _, t := range topics {
		d := t.End - t.Start
		if d < 0 {
			d = 0
		}
		points = append(points, Point{Label: t.Topic, Value: d})
	}
	return points
}

// KeywordFrequencySeries maps each keyword to its occurrence count.
func KeywordFrequencySeries(keywords []domain.Keyword) []Point {
	points := make([]Point, 0, len(keywords))
	for _, k := range keywords {
		points = append(points, Point{Label: k.Term, Value: k.Count})
	}
	return points
}
