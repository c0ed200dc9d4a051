package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"resumatch/internal/model"
	"resumatch/internal/repository"
	"resumatch/internal/storage"
)

var (
	ErrIDRequired  = errors.New("id is required")
	ErrNotFound    = errors.New("document not found")
	ErrReaderNil   = errors.New("reader is nil")
	ErrInvalidKind = errors.New("invalid document kind")
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

// DocumentListResult is the service-level DTO for paginated documents.
type DocumentListResult struct {
	Items []model.Document `json:"data"`
	Total int              `json:"total"`
}

// DocumentService manages stored source documents (resumes and job descriptions).
type DocumentService interface {
	// Upload stores the bytes, then the metadata; the object is removed again if the
	// metadata cannot be saved.
	Upload(ctx context.Context, kind model.DocumentKind, r io.Reader, originalFilename, contentType string, size int64) (*model.Document, error)

	// List pages through documents, optionally of one kind only.
	List(ctx context.Context, kind model.DocumentKind, limit, offset int) (*DocumentListResult, error)

	Get(ctx context.Context, id string) (*model.Document, error)

	// Open returns the document and a reader over its content. The caller closes it.
	Open(ctx context.Context, id string) (*model.Document, io.ReadCloser, error)

	// PresignURL returns a time-limited download link.
	PresignURL(ctx context.Context, id string) (string, error)

	Delete(ctx context.Context, id string) error
}

type documentService struct {
	store         storage.Storage
	repo          repository.DocumentRepository
	presignExpiry time.Duration
}

// NewDocumentService constructs a new DocumentService.
func NewDocumentService(store storage.Storage, repo repository.DocumentRepository, presignExpiry time.Duration) DocumentService {
	if presignExpiry <= 0 {
		presignExpiry = 15 * time.Minute
	}
	return &documentService{store: store, repo: repo, presignExpiry: presignExpiry}
}

func (s *documentService) Upload(ctx context.Context, kind model.DocumentKind, r io.Reader, originalFilename, contentType string, size int64) (*model.Document, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidKind, kind)
	}
	if r == nil {
		return nil, ErrReaderNil
	}

	id := uuid.NewString()
	key := storage.ObjectKey(string(kind), id, originalFilename)

	objInfo, err := s.store.Put(ctx, key, r, storage.PutObjectOptions{
		Size:        size,
		ContentType: contentType,
		Metadata: map[string]string{
			"original-filename": originalFilename,
			"document-kind":     string(kind),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	doc := &model.Document{
		ID:          id,
		Kind:        kind,
		Filename:    originalFilename,
		StoragePath: objInfo.Key,
		Size:        objInfo.Size,
		ContentType: objInfo.ContentType,
		CreatedAt:   time.Now().UTC(),
	}
	stored, err := s.repo.Create(ctx, doc)
	if err != nil {
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}
	return stored, nil
}

func (s *documentService) List(ctx context.Context, kind model.DocumentKind, limit, offset int) (*DocumentListResult, error) {
	if kind != "" && !kind.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidKind, kind)
	}
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.repo.List(ctx, repository.PageQuery{Limit: limit, Offset: offset, Kind: kind})
	if err != nil {
		return nil, err
	}
	return &DocumentListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *documentService) Get(ctx context.Context, id string) (*model.Document, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return doc, nil
}

func (s *documentService) Open(ctx context.Context, id string) (*model.Document, io.ReadCloser, error) {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	rc, _, err := s.store.Get(ctx, doc.StoragePath)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, fmt.Errorf("read storage: %w", err)
	}
	return doc, rc, nil
}

func (s *documentService) PresignURL(ctx context.Context, id string) (string, error) {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	u, err := s.store.PresignGet(ctx, doc.StoragePath, s.presignExpiry)
	if err != nil {
		return "", fmt.Errorf("presign: %w", err)
	}
	return u, nil
}

// Delete removes the object first so a storage failure leaves the row pointing at it.
func (s *documentService) Delete(ctx context.Context, id string) error {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, doc.StoragePath); err != nil {
		return fmt.Errorf("delete storage: %w", err)
	}
	return s.repo.Delete(ctx, id)
}
