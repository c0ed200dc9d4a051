package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"resumatch/internal/model"
	"resumatch/internal/service"
)

// MockDocumentService is a mock implementation of service.DocumentService
type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) Upload(ctx context.Context, kind model.DocumentKind, r io.Reader, originalFilename, contentType string, size int64) (*model.Document, error) {
	args := m.Called(ctx, kind, r, originalFilename, contentType, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockDocumentService) List(ctx context.Context, kind model.DocumentKind, limit, offset int) (*service.DocumentListResult, error) {
	args := m.Called(ctx, kind, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.DocumentListResult), args.Error(1)
}

func (m *MockDocumentService) Get(ctx context.Context, id string) (*model.Document, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockDocumentService) Open(ctx context.Context, id string) (*model.Document, io.ReadCloser, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*model.Document), args.Get(1).(io.ReadCloser), args.Error(2)
}

func (m *MockDocumentService) PresignURL(ctx context.Context, id string) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

func (m *MockDocumentService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
