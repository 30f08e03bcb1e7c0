package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/talklens-backend/internal/domain"
	"github.com/heartmarshall/talklens-backend/internal/schema"
)

// AnalyzeAudio runs the full pipeline for an uploaded audio file:
// validate, transcribe, analyze, persist. The stored document records
// the original filename as provenance.
func (s *Service) AnalyzeAudio(ctx context.Context, input AudioInput) (*domain.AnalysisDocument, error) {
	if err := input.Validate(s.maxAudioBytes); err != nil {
		return nil, err
	}

	transcript, err := s.stt.Transcribe(ctx, input.Data, input.ContentType)
	if err != nil {
		return nil, fmt.Errorf("transcribe: %w", err)
	}

	payload, model, err := s.analyze(ctx, transcript.Text)
	if err != nil {
		return nil, err
	}

	doc, err := s.docs.Create(ctx, &domain.AnalysisDocument{
		Transcript: transcript.Text,
		Analysis:   payload,
		Source:     domain.Source{Kind: domain.SourceFile, Name: input.Filename},
		Model:      model,
	})
	if err != nil {
		return nil, fmt.Errorf("persist analysis: %w", err)
	}

	s.log.InfoContext(ctx, "audio analyzed",
		slog.String("document_id", doc.ID.String()),
		slog.String("filename", input.Filename),
		slog.Int("transcript_len", len(doc.Transcript)),
		slog.String("model", doc.Model),
	)

	return doc, nil
}

// AnalyzeText runs the pipeline for a pasted transcript, skipping the
// transcription stage.
func (s *Service) AnalyzeText(ctx context.Context, input TextInput) (*domain.AnalysisDocument, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	text := strings.TrimSpace(input.Text)

	payload, model, err := s.analyze(ctx, text)
	if err != nil {
		return nil, err
	}

	doc, err := s.docs.Create(ctx, &domain.AnalysisDocument{
		Transcript: text,
		Analysis:   payload,
		Source:     domain.Source{Kind: domain.SourcePaste},
		Model:      model,
	})
	if err != nil {
		return nil, fmt.Errorf("persist analysis: %w", err)
	}

	s.log.InfoContext(ctx, "text analyzed",
		slog.String("document_id", doc.ID.String()),
		slog.Int("transcript_len", len(doc.Transcript)),
		slog.String("model", doc.Model),
	)

	return doc, nil
}

// analyze sends the transcript to the reasoning provider and validates
// the returned JSON. An empty transcript fails before any network call:
// audio that transcribed to nothing cannot be analyzed.
func (s *Service) analyze(ctx context.Context, transcript string) (domain.AnalysisPayload, string, error) {
	if strings.TrimSpace(transcript) == "" {
		return domain.AnalysisPayload{}, "", fmt.Errorf("empty transcript: %w", domain.ErrAnalysis)
	}

	raw, model, err := s.llm.Infer(ctx, systemInstruction, buildUserPrompt(transcript))
	if err != nil {
		return domain.AnalysisPayload{}, "", fmt.Errorf("infer: %w", err)
	}

	payload, err := schema.Validate(raw)
	if err != nil {
		// Schema failure after array defaulting means the provider
		// returned garbage; surface it as an analysis failure.
		return domain.AnalysisPayload{}, "", fmt.Errorf("invalid schema: %v: %w", err, domain.ErrAnalysis)
	}

	return payload, model, nil
}
