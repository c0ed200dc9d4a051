package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"resumatch/internal/model"
	"resumatch/internal/repository"
)

const documentColumns = `id, kind, filename, storage_path, size, content_type, created_at`

// DocumentPostgres is the PostgreSQL implementation of repository.DocumentRepository.
type DocumentPostgres struct {
	db *sql.DB
}

// NewDocumentPostgres creates a new DocumentPostgres repository.
func NewDocumentPostgres(db *sql.DB) *DocumentPostgres {
	return &DocumentPostgres{db: db}
}

var _ repository.DocumentRepository = (*DocumentPostgres)(nil)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(s rowScanner) (model.Document, error) {
	var d model.Document
	err := s.Scan(&d.ID, &d.Kind, &d.Filename, &d.StoragePath, &d.Size, &d.ContentType, &d.CreatedAt)
	return d, err
}

// Create inserts a new document row and returns the stored record.
func (r *DocumentPostgres) Create(ctx context.Context, doc *model.Document) (*model.Document, error) {
	const q = `
		INSERT INTO documents (` + documentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + documentColumns

	out, err := scanDocument(r.db.QueryRowContext(ctx, q,
		doc.ID,
		string(doc.Kind),
		doc.Filename,
		doc.StoragePath,
		doc.Size,
		doc.ContentType,
		doc.CreatedAt,
	))
	if err != nil {
		return nil, fmt.Errorf("insert document: %w", err)
	}
	return &out, nil
}

// FindByID fetches a single document by its ID.
func (r *DocumentPostgres) FindByID(ctx context.Context, id string) (*model.Document, error) {
	const q = `SELECT ` + documentColumns + ` FROM documents WHERE id = $1`

	d, err := scanDocument(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("find document: %w", err)
	}
	return &d, nil
}

// List returns documents using LIMIT/OFFSET pagination and the filtered total.
// An empty Kind matches every document.
func (r *DocumentPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Document], error) {
	const qCount = `SELECT COUNT(*) FROM documents WHERE ($1 = '' OR kind = $1)`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount, string(pq.Kind)).Scan(&total); err != nil {
		return nil, fmt.Errorf("count documents: %w", err)
	}

	const qList = `
		SELECT ` + documentColumns + `
		FROM documents
		WHERE ($3 = '' OR kind = $3)
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, qList, pq.Limit, pq.Offset, string(pq.Kind))
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	items := make([]model.Document, 0)
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		items = append(items, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Document]{Items: items, Total: total}, nil
}

// Delete removes a document by ID.
func (r *DocumentPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM documents WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, q, id); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}
