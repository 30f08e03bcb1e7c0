package analysis

import (
	"fmt"
	"strings"

	"github.com/heartmarshall/talklens-backend/internal/domain"
)

// AudioInput holds an uploaded audio file for analysis.
type AudioInput struct {
	Data        []byte
	ContentType string
	Filename    string
}

// Validate checks presence and the size ceiling. Size is enforced here,
// before any provider call, so oversized uploads never reach
// transcription.
func (i AudioInput) Validate(maxBytes int64) error {
	var errs []domain.FieldError

	if len(i.Data) == 0 {
		errs = append(errs, domain.FieldError{Field: "file", Message: "required"})
	}
	if int64(len(i.Data)) > maxBytes {
		errs = append(errs, domain.FieldError{
			Field:   "file",
			Message: fmt.Sprintf("too large (max %d bytes)", maxBytes),
		})
	}
	if strings.TrimSpace(i.ContentType) == "" {
		errs = append(errs, domain.FieldError{Field: "content_type", Message: "required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// TextInput holds a pasted transcript for analysis.
type TextInput struct {
	Text string
}

// Validate rejects input that is empty after trimming.
func (i TextInput) Validate() error {
	if strings.TrimSpace(i.Text) == "" {
		return domain.NewValidationError("text", "required")
	}
	return nil
}
