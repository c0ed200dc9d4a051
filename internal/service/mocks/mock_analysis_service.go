package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"resumatch/internal/model"
)

// MockAnalysisService is a mock implementation of service.AnalysisService
type MockAnalysisService struct {
	mock.Mock
}

func (m *MockAnalysisService) ParseResume(ctx context.Context, filename, contentType string, data []byte) (*model.ResumeRecord, error) {
	args := m.Called(ctx, filename, contentType, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ResumeRecord), args.Error(1)
}

func (m *MockAnalysisService) ParseLinkedIn(ctx context.Context, filename, contentType string, data []byte) (*model.ResumeRecord, error) {
	args := m.Called(ctx, filename, contentType, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ResumeRecord), args.Error(1)
}

func (m *MockAnalysisService) ParseStoredResume(ctx context.Context, id string) (*model.ResumeRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ResumeRecord), args.Error(1)
}

func (m *MockAnalysisService) ExtractJobDescription(ctx context.Context, filename, contentType string, data []byte) (string, error) {
	args := m.Called(ctx, filename, contentType, data)
	return args.String(0), args.Error(1)
}

func (m *MockAnalysisService) Match(ctx context.Context, record model.ResumeRecord, jd string) (*model.MatchResult, error) {
	args := m.Called(ctx, record, jd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MatchResult), args.Error(1)
}
