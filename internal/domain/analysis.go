// Package domain holds the core types of the analysis pipeline: the
// transcript produced by speech-to-text, the structured analysis payload
// produced by the reasoning provider, and the immutable document that
// binds them together once persisted.
package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// SourceKind describes where the analyzed transcript came from.
type SourceKind string

const (
	SourceFile  SourceKind = "file"
	SourcePaste SourceKind = "paste"
)

// IsValid reports whether the kind is one of the known provenance values.
func (k SourceKind) IsValid() bool {
	return k == SourceFile || k == SourcePaste
}

// Source records the provenance of an analyzed input.
// Name is the original filename for kind "file"; empty for "paste".
type Source struct {
	Kind SourceKind `json:"kind"`
	Name string     `json:"name,omitempty"`
}

// Word is a single transcribed word with timing and confidence.
type Word struct {
	Word       string  `json:"word"`
	Start      float64 `json:"start"`
	End        float64 `json:"end"`
	Confidence float64 `json:"confidence"`
}

// Paragraph groups transcribed sentences into a timed paragraph.
type Paragraph struct {
	Start     float64  `json:"start"`
	End       float64  `json:"end"`
	Sentences []string `json:"sentences,omitempty"`
}

// TranscriptResult is the normalized output of one transcription call.
// It is created once, never mutated, and never persisted on its own —
// only its Text is folded into an AnalysisDocument.
type TranscriptResult struct {
	Text       string
	Words      []Word
	Paragraphs []Paragraph
	// Raw is the opaque provider payload, retained for audit only.
	Raw json.RawMessage
}

// Summary holds the three summary lists of an analysis.
// All slices are non-nil after schema validation; absence upstream is a
// provider defect, not an empty-result signal.
type Summary struct {
	MainPoints  []string `json:"main_points"`
	ActionItems []string `json:"action_items"`
	Decisions   []string `json:"decisions"`
}

// Topic is a labeled span of the conversation with a relative weight.
type Topic struct {
	Topic  string  `json:"topic"`
	Start  float64 `json:"start"`
	End    float64 `json:"end"`
	Weight float64 `json:"weight"`
}

// Keyword is a glossary term with its occurrence count and a
// one-sentence definition.
type Keyword struct {
	Term       string  `json:"term"`
	Count      float64 `json:"count"`
	Definition string  `json:"definition"`
}

// OffTopicSegment is a span judged unrelated to the main discussion.
type OffTopicSegment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Note  string  `json:"note"`
}

// AnalysisPayload is the structured result of one reasoning call.
// Invariant: Topics, Keywords, OffTopic and all three Summary slices are
// always non-nil, possibly empty. Spans are stored verbatim even when
// end < start; durations are clamped only when derived for display.
type AnalysisPayload struct {
	Summary  Summary           `json:"summary"`
	Topics   []Topic           `json:"topics"`
	Keywords []Keyword         `json:"keywords"`
	OffTopic []OffTopicSegment `json:"offTopic"`
}

// AnalysisDocument is the persisted, immutable unit of value.
// ID and CreatedAt are assigned by the store at write time; a document is
// never updated — re-analysis produces a new document with a new id.
type AnalysisDocument struct {
	ID         uuid.UUID       `json:"id"`
	Transcript string          `json:"transcript"`
	Analysis   AnalysisPayload `json:"analysis"`
	Source     Source          `json:"source"`
	Model      string          `json:"model"`
	CreatedAt  time.Time       `json:"createdAt"`
}
