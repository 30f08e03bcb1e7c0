package analysis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/talklens-backend/internal/domain"
)

// Get returns a stored document by id. domain.ErrNotFound from the
// repository passes through untouched.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.AnalysisDocument, error) {
	if id == uuid.Nil {
		return nil, domain.NewValidationError("id", "required")
	}
	return s.docs.GetByID(ctx, id)
}

// ListRecent returns the newest documents first. A non-positive limit
// falls back to DefaultListLimit.
func (s *Service) ListRecent(ctx context.Context, limit int) ([]*domain.AnalysisDocument, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	return s.docs.ListRecent(ctx, limit)
}

// Export serializes the analysis field of a document as an indented JSON
// artifact. Pure formatting; no I/O.
func Export(doc *domain.AnalysisDocument) ([]byte, error) {
	out, err := json.MarshalIndent(doc.Analysis, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("export analysis: %w", err)
	}
	return out, nil
}
