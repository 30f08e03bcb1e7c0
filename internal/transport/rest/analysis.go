package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/talklens-backend/internal/domain"
	"github.com/heartmarshall/talklens-backend/internal/service/analysis"
	"github.com/heartmarshall/talklens-backend/internal/service/report"
)

// multipartOverhead is slack for multipart framing on top of the audio
// size limit; the real size check lives in the service layer.
const multipartOverhead = 1 << 20

// analysisService defines the minimal interface needed by AnalysisHandler.
type analysisService interface {
	AnalyzeAudio(ctx context.Context, input analysis.AudioInput) (*domain.AnalysisDocument, error)
	AnalyzeText(ctx context.Context, input analysis.TextInput) (*domain.AnalysisDocument, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.AnalysisDocument, error)
	ListRecent(ctx context.Context, limit int) ([]*domain.AnalysisDocument, error)
}

// AnalysisHandler serves the analysis REST endpoints.
type AnalysisHandler struct {
	svc           analysisService
	maxAudioBytes int64
	log           *slog.Logger
}

// NewAnalysisHandler creates an AnalysisHandler.
func NewAnalysisHandler(svc analysisService, maxAudioBytes int64, logger *slog.Logger) *AnalysisHandler {
	return &AnalysisHandler{
		svc:           svc,
		maxAudioBytes: maxAudioBytes,
		log:           logger.With("handler", "analysis"),
	}
}

type analyzeTextRequest struct {
	Text string `json:"text"`
}

type createdResponse struct {
	ID string `json:"id"`
}

type sourceResponse struct {
	Kind string `json:"kind"`
	Name string `json:"name,omitempty"`
}

type listItemResponse struct {
	ID         string         `json:"id"`
	Source     sourceResponse `json:"source"`
	Model      string         `json:"model"`
	CreatedAt  time.Time      `json:"createdAt"`
	MainPoints int            `json:"mainPoints"`
	Topics     int            `json:"topics"`
	Keywords   int            `json:"keywords"`
}

type documentResponse struct {
	ID         string                 `json:"id"`
	Transcript string                 `json:"transcript"`
	Analysis   domain.AnalysisPayload `json:"analysis"`
	Source     sourceResponse         `json:"source"`
	Model      string                 `json:"model"`
	CreatedAt  time.Time              `json:"createdAt"`
	Report     report.Report          `json:"report"`
}

// CreateFromAudio handles POST /api/analyses (multipart field "file").
func (h *AnalysisHandler) CreateFromAudio(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxAudioBytes+multipartOverhead)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart body")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read file")
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	doc, err := h.svc.AnalyzeAudio(r.Context(), analysis.AudioInput{
		Data:        data,
		ContentType: contentType,
		Filename:    header.Filename,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, createdResponse{ID: doc.ID.String()})
}

// CreateFromText handles POST /api/analyses/text.
func (h *AnalysisHandler) CreateFromText(w http.ResponseWriter, r *http.Request) {
	var req analyzeTextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	doc, err := h.svc.AnalyzeText(r.Context(), analysis.TextInput{Text: req.Text})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, createdResponse{ID: doc.ID.String()})
}

// List handles GET /api/analyses.
func (h *AnalysisHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	docs, err := h.svc.ListRecent(r.Context(), limit)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	items := make([]listItemResponse, 0, len(docs))
	for _, doc := range docs {
		items = append(items, listItemResponse{
			ID:         doc.ID.String(),
			Source:     sourceResponse{Kind: string(doc.Source.Kind), Name: doc.Source.Name},
			Model:      doc.Model,
			CreatedAt:  doc.CreatedAt,
			MainPoints: len(doc.Analysis.Summary.MainPoints),
			Topics:     len(doc.Analysis.Topics),
			Keywords:   len(doc.Analysis.Keywords),
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{"analyses": items})
}

// Get handles GET /api/analyses/{id}. The response carries the stored
// document plus the derived chart series.
func (h *AnalysisHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	doc, err := h.svc.Get(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, documentResponse{
		ID:         doc.ID.String(),
		Transcript: doc.Transcript,
		Analysis:   doc.Analysis,
		Source:     sourceResponse{Kind: string(doc.Source.Kind), Name: doc.Source.Name},
		Model:      doc.Model,
		CreatedAt:  doc.CreatedAt,
		Report:     report.Build(doc.Analysis),
	})
}

// Export handles GET /api/analyses/{id}/export. Serves the analysis
// field as a downloadable JSON attachment.
func (h *AnalysisHandler) Export(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	doc, err := h.svc.Get(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	out, err := analysis.Export(doc)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", "analysis-"+doc.ID.String()+".json"))
	w.WriteHeader(http.StatusOK)
	w.Write(out) //nolint:errcheck
}

func (h *AnalysisHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrTranscription):
		writeError(w, http.StatusBadGateway, "transcription failed")
	case errors.Is(err, domain.ErrAnalysis):
		writeError(w, http.StatusBadGateway, "analysis failed")
	default:
		h.log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// parseID reads the {id} path value. A malformed id reports 404: the
// path names no existing document.
func parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "not found")
		return uuid.Nil, false
	}
	return id, true
}
