// Package repository declares persistence contracts for stored source documents.
// Implementations live in subpackages.
package repository

import (
	"context"
	"errors"

	"resumatch/internal/model"
)

// ErrNotFound is returned when no document matches the requested ID.
var ErrNotFound = errors.New("document not found")

// DocumentRepository persists metadata of uploaded resumes and job descriptions.
// It holds no business rules; parsed results are never stored.
type DocumentRepository interface {
	// Create inserts a document row and returns it as stored.
	Create(ctx context.Context, doc *model.Document) (*model.Document, error)

	// FindByID returns ErrNotFound when the row does not exist.
	FindByID(ctx context.Context, id string) (*model.Document, error)

	// List returns one page of documents, newest first, and the filtered total.
	List(ctx context.Context, pq PageQuery) (*PageResult[model.Document], error)

	// Delete is a no-op for missing rows.
	Delete(ctx context.Context, id string) error
}

// PageQuery holds limit/offset pagination and an optional kind filter.
type PageQuery struct {
	Limit  int
	Offset int
	Kind   model.DocumentKind
}

// PageResult is a generic pagination result wrapper.
type PageResult[T any] struct {
	Items []T
	Total int
}
