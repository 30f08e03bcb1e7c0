// Package analysis implements the write-once AnalysisDocument repository
// using PostgreSQL. Documents get their id and created_at from the store
// at insert time; there are no update or delete operations.
package analysis

import (
	"context"
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/talklens-backend/internal/adapter/postgres"
	"github.com/heartmarshall/talklens-backend/internal/domain"
)

var builder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const analysesTable = "analyses"

var analysesColumns = []string{"id", "transcript", "analysis", "source_kind", "source_name", "model", "created_at"}

// Repo provides analysis document persistence backed by PostgreSQL.
type Repo struct {
	q postgres.Querier
}

// New creates a new analysis repository.
func New(q postgres.Querier) *Repo {
	return &Repo{q: q}
}

// Create inserts a new document and returns it with the store-assigned
// id and created_at. The incoming document's ID and CreatedAt fields are
// ignored — the store is the sole authority for both.
func (r *Repo) Create(ctx context.Context, doc *domain.AnalysisDocument) (*domain.AnalysisDocument, error) {
	payload, err := json.Marshal(doc.Analysis)
	if err != nil {
		return nil, fmt.Errorf("marshal analysis payload: %w", err)
	}

	query, args, err := builder.
		Insert(analysesTable).
		Columns("transcript", "analysis", "source_kind", "source_name", "model").
		Values(doc.Transcript, payload, string(doc.Source.Kind), doc.Source.Name, doc.Model).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert: %w", err)
	}

	stored := *doc
	if err := r.q.QueryRow(ctx, query, args...).Scan(&stored.ID, &stored.CreatedAt); err != nil {
		return nil, postgres.MapError(err, "analysis", uuid.Nil)
	}

	return &stored, nil
}

// GetByID returns a document by primary key.
// Returns domain.ErrNotFound if no document has the given id — callers
// treat that as a normal outcome, not a fault.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.AnalysisDocument, error) {
	query, args, err := builder.
		Select(analysesColumns...).
		From(analysesTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	doc, err := scanDocument(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, "analysis", id)
	}

	return doc, nil
}

// ListRecent returns up to limit documents ordered by created_at
// descending (newest first). Returns an empty slice (not nil) when the
// store is empty.
func (r *Repo) ListRecent(ctx context.Context, limit int) ([]*domain.AnalysisDocument, error) {
	query, args, err := builder.
		Select(analysesColumns...).
		From(analysesTable).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list analyses: %w", err)
	}
	defer rows.Close()

	docs := []*domain.AnalysisDocument{}
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("list analyses: %w", err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list analyses: %w", err)
	}

	return docs, nil
}

// rowScanner is satisfied by both pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanDocument scans one analyses row into a domain.AnalysisDocument.
func scanDocument(row rowScanner) (*domain.AnalysisDocument, error) {
	var (
		doc        domain.AnalysisDocument
		payload    []byte
		sourceKind string
	)

	if err := row.Scan(&doc.ID, &doc.Transcript, &payload, &sourceKind,
		&doc.Source.Name, &doc.Model, &doc.CreatedAt); err != nil {
		return nil, err
	}

	doc.Source.Kind = domain.SourceKind(sourceKind)
	if err := json.Unmarshal(payload, &doc.Analysis); err != nil {
		return nil, fmt.Errorf("unmarshal analysis payload: %w", err)
	}

	return &doc, nil
}
