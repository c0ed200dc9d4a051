package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"resumatch/internal/nlp"
)

// MockAnnotator is a mock implementation of nlp.Annotator
type MockAnnotator struct {
	mock.Mock
}

func (m *MockAnnotator) Annotate(ctx context.Context, text string) (*nlp.Annotation, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*nlp.Annotation), args.Error(1)
}
