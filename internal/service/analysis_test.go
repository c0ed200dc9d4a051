package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"resumatch/internal/extract"
	"resumatch/internal/match"
	"resumatch/internal/metrics"
	"resumatch/internal/model"
	"resumatch/internal/nlp"
	repoMocks "resumatch/internal/repository/mocks"
	"resumatch/internal/resume"
	"resumatch/internal/storage"
	storeMocks "resumatch/internal/storage/mocks"
)

type mockExtractor struct {
	mock.Mock
}

func (m *mockExtractor) Extract(filename, contentType string, data []byte, allowed ...extract.Format) (string, error) {
	args := m.Called(filename, contentType, data, allowed)
	return args.String(0), args.Error(1)
}

type mockMatcher struct {
	mock.Mock
}

func (m *mockMatcher) Match(ctx context.Context, record model.ResumeRecord, jd string) (model.MatchResult, error) {
	args := m.Called(ctx, record, jd)
	return args.Get(0).(model.MatchResult), args.Error(1)
}

const janeResume = "Jane Doe\njane.doe@mail.com\nSKILLS:\nPython, Go, Rust\nEXPERIENCE:\nAcme Corp | Engineer"

func newTestMetrics(t *testing.T) (*metrics.Metrics, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	m, err := metrics.New(reg)
	require.NoError(t, err)
	return m, reg
}

// parseCount returns the resume_parse_total value for one outcome.
func parseCount(t *testing.T, reg *prometheus.Registry, outcome string) float64 {
	t.Helper()
	mfs, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range mfs {
		if mf.GetName() != "resume_parse_total" {
			continue
		}
		for _, metric := range mf.GetMetric() {
			for _, lp := range metric.GetLabel() {
				if lp.GetName() == "outcome" && lp.GetValue() == outcome {
					return metric.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}

func TestAnalysisService_ParseResume(t *testing.T) {
	ctx := context.Background()
	data := []byte("raw bytes")

	tests := []struct {
		name        string
		setupMocks  func(mExt *mockExtractor)
		wantErr     error
		wantName    string
		wantOutcome string
	}{
		{
			name: "happy path",
			setupMocks: func(mExt *mockExtractor) {
				mExt.On("Extract", "jane.pdf", "application/pdf", data, []extract.Format(nil)).Return(janeResume, nil)
			},
			wantName:    "Jane Doe",
			wantOutcome: metrics.OutcomeParsed,
		},
		{
			name: "no text extracted",
			setupMocks: func(mExt *mockExtractor) {
				mExt.On("Extract", "jane.pdf", "application/pdf", data, []extract.Format(nil)).Return("  \n ", nil)
			},
			wantErr:     ErrNoContent,
			wantOutcome: metrics.OutcomeNoContent,
		},
		{
			name: "unsupported format",
			setupMocks: func(mExt *mockExtractor) {
				mExt.On("Extract", "jane.pdf", "application/pdf", data, []extract.Format(nil)).
					Return("", extract.ErrUnsupportedFormat)
			},
			wantErr:     extract.ErrUnsupportedFormat,
			wantOutcome: metrics.OutcomeRejected,
		},
		{
			name: "text without any resume structure",
			setupMocks: func(mExt *mockExtractor) {
				mExt.On("Extract", "jane.pdf", "application/pdf", data, []extract.Format(nil)).Return("lorem ipsum", nil)
			},
			wantErr:     ErrNoStructure,
			wantOutcome: metrics.OutcomeEmpty,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mExt := new(mockExtractor)
			m, reg := newTestMetrics(t)
			svc := NewAnalysisService(mExt, resume.NewParser(nil), nil, nil, m, zerolog.Nop())

			tt.setupMocks(mExt)

			rec, err := svc.ParseResume(ctx, "jane.pdf", "application/pdf", data)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, rec)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantName, rec.Name)
			}

			assert.Equal(t, 1.0, parseCount(t, reg, tt.wantOutcome))
			mExt.AssertExpectations(t)
		})
	}
}

func TestAnalysisService_ParseLinkedIn_PDFOnly(t *testing.T) {
	mExt := new(mockExtractor)
	mExt.On("Extract", "profile.pdf", "application/pdf", []byte("pdf"), []extract.Format{extract.FormatPDF}).
		Return(janeResume, nil)

	svc := NewAnalysisService(mExt, resume.NewParser(nil), nil, nil, nil, zerolog.Nop())
	rec, err := svc.ParseLinkedIn(context.Background(), "profile.pdf", "application/pdf", []byte("pdf"))

	require.NoError(t, err)
	assert.Equal(t, []string{"Python", "Go", "Rust"}, rec.Section(model.SectionSkills))
	mExt.AssertExpectations(t)
}

func TestAnalysisService_ParseStoredResume(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		setupMocks func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockDocumentRepository, mExt *mockExtractor)
		wantErr    error
	}{
		{
			name: "happy path",
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockDocumentRepository, mExt *mockExtractor) {
				mRepo.On("FindByID", ctx, "doc-1").Return(&model.Document{
					ID: "doc-1", Kind: model.KindResume, Filename: "cv.txt", ContentType: "text/plain", StoragePath: "resume/doc-1/cv.txt",
				}, nil)
				mStore.On("Get", ctx, "resume/doc-1/cv.txt").
					Return(io.NopCloser(strings.NewReader(janeResume)), storage.ObjectInfo{}, nil)
				mExt.On("Extract", "cv.txt", "text/plain", []byte(janeResume), []extract.Format(nil)).Return(janeResume, nil)
			},
		},
		{
			name: "job description is not a resume",
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockDocumentRepository, mExt *mockExtractor) {
				mRepo.On("FindByID", ctx, "doc-1").Return(&model.Document{
					ID: "doc-1", Kind: model.KindJobDescription, StoragePath: "job_description/doc-1/jd.pdf",
				}, nil)
				mStore.On("Get", ctx, "job_description/doc-1/jd.pdf").
					Return(io.NopCloser(strings.NewReader("")), storage.ObjectInfo{}, nil)
			},
			wantErr: ErrWrongKind,
		},
		{
			name: "missing document",
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockDocumentRepository, mExt *mockExtractor) {
				mRepo.On("FindByID", ctx, "doc-1").Return(nil, errors.New("db down"))
			},
			wantErr: errors.New("db down"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mStore := new(storeMocks.MockStorage)
			mRepo := new(repoMocks.MockDocumentRepository)
			mExt := new(mockExtractor)
			tt.setupMocks(mStore, mRepo, mExt)

			docs := NewDocumentService(mStore, mRepo, 0)
			svc := NewAnalysisService(mExt, resume.NewParser(nil), nil, docs, nil, zerolog.Nop())

			rec, err := svc.ParseStoredResume(ctx, "doc-1")

			if tt.wantErr != nil {
				if errors.Is(tt.wantErr, ErrWrongKind) {
					assert.ErrorIs(t, err, ErrWrongKind)
				} else {
					assert.Error(t, err)
				}
				assert.Nil(t, rec)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "jane.doe@mail.com", rec.Contact.Email)
			}
			mStore.AssertExpectations(t)
			mRepo.AssertExpectations(t)
			mExt.AssertExpectations(t)
		})
	}
}

func TestAnalysisService_ExtractJobDescription(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		extErr  error
		want    string
		wantErr error
	}{
		{"trimmed text", "  We need Go engineers \n", nil, "We need Go engineers", nil},
		{"blank", " \n", nil, "", ErrNoContent},
		{"docx rejected", "", extract.ErrUnsupportedFormat, "", extract.ErrUnsupportedFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mExt := new(mockExtractor)
			mExt.On("Extract", "jd.pdf", "", []byte("x"), []extract.Format{extract.FormatPDF}).Return(tt.text, tt.extErr)

			svc := NewAnalysisService(mExt, nil, nil, nil, nil, zerolog.Nop())
			got, err := svc.ExtractJobDescription(context.Background(), "jd.pdf", "", []byte("x"))

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAnalysisService_Match(t *testing.T) {
	record := model.ResumeRecord{Sections: map[model.SectionName][]string{model.SectionSkills: {"Go"}}}

	tests := []struct {
		name       string
		result     model.MatchResult
		matchErr   error
		wantErr    error
		wantReason string
	}{
		{
			name:   "happy path",
			result: model.MatchResult{MatchScore: 55.5, MissingKeywords: []string{"aws"}, Recommendations: []string{"r"}},
		},
		{
			name:       "empty input",
			matchErr:   match.ErrEmptyInput,
			wantErr:    match.ErrInvalidInput,
			wantReason: "invalid_input",
		},
		{
			name:       "annotation timeout",
			matchErr:   nlp.ErrAnnotationTimeout,
			wantErr:    nlp.ErrAnnotationTimeout,
			wantReason: "annotation_timeout",
		},
		{
			name:       "annotation unavailable",
			matchErr:   nlp.ErrAnnotationUnavailable,
			wantErr:    nlp.ErrAnnotationUnavailable,
			wantReason: "annotation_unavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mMatch := new(mockMatcher)
			mMatch.On("Match", mock.Anything, record, "Go developer").Return(tt.result, tt.matchErr)
			m, reg := newTestMetrics(t)

			svc := NewAnalysisService(nil, nil, mMatch, nil, m, zerolog.Nop())
			got, err := svc.Match(context.Background(), record, "Go developer")

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				assert.Equal(t, tt.wantReason, failureReason(err))
				n, gerr := testutil.GatherAndCount(reg, "match_failures_total")
				require.NoError(t, gerr)
				assert.Equal(t, 1, n)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.result, *got)
				n, gerr := testutil.GatherAndCount(reg, "match_score")
				require.NoError(t, gerr)
				assert.Equal(t, 1, n)
			}
			mMatch.AssertExpectations(t)
		})
	}
}

func TestAnalysisService_Match_EndToEnd(t *testing.T) {
	svc := NewAnalysisService(nil, nil, match.NewMatcher(nlp.NewLexiconAnnotator()), nil, nil, zerolog.Nop())
	record := model.ResumeRecord{Sections: map[model.SectionName][]string{model.SectionSkills: {"Python", "SQL"}}}

	got, err := svc.Match(context.Background(), record, "We need Python, AWS, and Docker experience")
	require.NoError(t, err)

	assert.Contains(t, got.MissingKeywords, "aws")
	assert.Contains(t, got.MissingKeywords, "docker")
	assert.NotContains(t, got.MissingKeywords, "python")

	_, err = svc.Match(context.Background(), record, "")
	assert.ErrorIs(t, err, match.ErrEmptyInput)
}
