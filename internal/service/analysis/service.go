// Package analysis implements the analysis pipeline: normalize input to
// transcript text, obtain a structured JSON analysis from the reasoning
// provider, and persist the resulting immutable document.
package analysis

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/talklens-backend/internal/domain"
)

// DefaultListLimit bounds ListRecent when the caller gives no limit.
const DefaultListLimit = 50

type transcriber interface {
	Transcribe(ctx context.Context, audio []byte, contentType string) (*domain.TranscriptResult, error)
}

type inferrer interface {
	Infer(ctx context.Context, system, user string) (raw []byte, model string, err error)
}

type documentRepo interface {
	Create(ctx context.Context, doc *domain.AnalysisDocument) (*domain.AnalysisDocument, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.AnalysisDocument, error)
	ListRecent(ctx context.Context, limit int) ([]*domain.AnalysisDocument, error)
}

// Service orchestrates the pipeline. Stages within one invocation run
// strictly in order; a failing stage aborts the invocation and nothing
// is persisted. Invocations are independent of each other and share no
// mutable state.
type Service struct {
	stt           transcriber
	llm           inferrer
	docs          documentRepo
	maxAudioBytes int64
	log           *slog.Logger
}

// NewService creates an analysis Service.
func NewService(
	log *slog.Logger,
	stt transcriber,
	llm inferrer,
	docs documentRepo,
	maxAudioBytes int64,
) *Service {
	return &Service{
		stt:           stt,
		llm:           llm,
		docs:          docs,
		maxAudioBytes: maxAudioBytes,
		log:           log.With("service", "analysis"),
	}
}
