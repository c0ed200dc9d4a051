package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"resumatch/internal/extract"
	"resumatch/internal/match"
	"resumatch/internal/metrics"
	"resumatch/internal/model"
	"resumatch/internal/nlp"
)

var (
	// ErrNoContent means no text could be extracted from an uploaded document.
	ErrNoContent = errors.New("no text could be extracted from the document")
	// ErrNoStructure means text was extracted but the parser recognized nothing in it.
	ErrNoStructure = errors.New("no resume content could be recognized in the document")
	// ErrWrongKind means a stored document has a kind the operation cannot use.
	ErrWrongKind = errors.New("document kind does not match the operation")
)

// Parse sources, used as metric labels.
const (
	SourceUpload   = "upload"
	SourceLinkedIn = "linkedin"
	SourceStored   = "stored"
)

// TextExtractor turns uploaded bytes into plain text.
type TextExtractor interface {
	Extract(filename, contentType string, data []byte, allowed ...extract.Format) (string, error)
}

// ResumeParser turns raw resume text into a structured record.
type ResumeParser interface {
	Parse(raw string) model.ResumeRecord
}

// ResumeMatcher scores a resume record against job description text.
type ResumeMatcher interface {
	Match(ctx context.Context, record model.ResumeRecord, jd string) (model.MatchResult, error)
}

// AnalysisService parses resumes and matches them against job descriptions.
// Nothing it computes is persisted.
type AnalysisService interface {
	// ParseResume accepts PDF, DOCX and plain text uploads.
	ParseResume(ctx context.Context, filename, contentType string, data []byte) (*model.ResumeRecord, error)
	// ParseLinkedIn accepts a LinkedIn profile exported as PDF.
	ParseLinkedIn(ctx context.Context, filename, contentType string, data []byte) (*model.ResumeRecord, error)
	// ParseStoredResume parses a previously uploaded resume document.
	ParseStoredResume(ctx context.Context, id string) (*model.ResumeRecord, error)
	// ExtractJobDescription returns the text of a PDF job description.
	ExtractJobDescription(ctx context.Context, filename, contentType string, data []byte) (string, error)
	Match(ctx context.Context, record model.ResumeRecord, jd string) (*model.MatchResult, error)
}

type analysisService struct {
	extractor TextExtractor
	parser    ResumeParser
	matcher   ResumeMatcher
	docs      DocumentService
	metrics   *metrics.Metrics
	log       zerolog.Logger
	tracer    trace.Tracer
}

// NewAnalysisService wires the parsing and matching pipeline. docs may be nil when
// stored documents are not available; m may be nil to disable metrics.
func NewAnalysisService(extractor TextExtractor, parser ResumeParser, matcher ResumeMatcher, docs DocumentService, m *metrics.Metrics, log zerolog.Logger) AnalysisService {
	return &analysisService{
		extractor: extractor,
		parser:    parser,
		matcher:   matcher,
		docs:      docs,
		metrics:   m,
		log:       log.With().Str("component", "analysis").Logger(),
		tracer:    otel.Tracer("resumatch/service"),
	}
}

func (s *analysisService) ParseResume(ctx context.Context, filename, contentType string, data []byte) (*model.ResumeRecord, error) {
	return s.parseUpload(ctx, SourceUpload, filename, contentType, data)
}

func (s *analysisService) ParseLinkedIn(ctx context.Context, filename, contentType string, data []byte) (*model.ResumeRecord, error) {
	return s.parseUpload(ctx, SourceLinkedIn, filename, contentType, data, extract.FormatPDF)
}

func (s *analysisService) ParseStoredResume(ctx context.Context, id string) (*model.ResumeRecord, error) {
	if s.docs == nil {
		return nil, ErrNotFound
	}
	doc, rc, err := s.docs.Open(ctx, id)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	if doc.Kind != model.KindResume {
		return nil, fmt.Errorf("%w: %s is a %s", ErrWrongKind, id, doc.Kind)
	}
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	return s.parseUpload(ctx, SourceStored, doc.Filename, doc.ContentType, data)
}

func (s *analysisService) parseUpload(ctx context.Context, source, filename, contentType string, data []byte, allowed ...extract.Format) (*model.ResumeRecord, error) {
	_, span := s.tracer.Start(ctx, "analysis.parse_resume", trace.WithAttributes(
		attribute.String("resume.source", source),
		attribute.Int("resume.bytes", len(data)),
	))
	defer span.End()

	text, err := s.extractor.Extract(filename, contentType, data, allowed...)
	if err != nil {
		outcome := metrics.OutcomeFailed
		if errors.Is(err, extract.ErrUnsupportedFormat) {
			outcome = metrics.OutcomeRejected
		}
		s.metrics.ObserveParse(source, outcome)
		span.RecordError(err)
		span.SetStatus(codes.Error, "extract failed")
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		s.metrics.ObserveParse(source, metrics.OutcomeNoContent)
		return nil, ErrNoContent
	}

	record := s.parser.Parse(text)
	if record.IsEmpty() {
		s.metrics.ObserveParse(source, metrics.OutcomeEmpty)
		span.SetStatus(codes.Error, "nothing recognized")
		return nil, ErrNoStructure
	}

	sections := make([]string, 0, len(record.Sections))
	for _, name := range model.SectionNames {
		if _, ok := record.Sections[name]; ok {
			sections = append(sections, string(name))
		}
	}
	s.metrics.ObserveParse(source, metrics.OutcomeParsed)
	s.metrics.ObserveSections(sections)
	span.SetAttributes(attribute.StringSlice("resume.sections", sections))

	s.log.Debug().
		Str("source", source).
		Str("filename", filename).
		Strs("sections", sections).
		Bool("name_found", record.Name != "").
		Msg("resume parsed")
	return &record, nil
}

func (s *analysisService) ExtractJobDescription(ctx context.Context, filename, contentType string, data []byte) (string, error) {
	_, span := s.tracer.Start(ctx, "analysis.extract_jd")
	defer span.End()

	text, err := s.extractor.Extract(filename, contentType, data, extract.FormatPDF)
	if err != nil {
		span.RecordError(err)
		return "", err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrNoContent
	}
	return text, nil
}

func (s *analysisService) Match(ctx context.Context, record model.ResumeRecord, jd string) (*model.MatchResult, error) {
	ctx, span := s.tracer.Start(ctx, "analysis.match")
	defer span.End()

	res, err := s.matcher.Match(ctx, record, jd)
	if err != nil {
		reason := failureReason(err)
		s.metrics.MatchFailed(reason)
		span.RecordError(err)
		span.SetStatus(codes.Error, reason)
		if reason != "invalid_input" {
			s.log.Warn().Err(err).Str("reason", reason).Msg("match failed")
		}
		return nil, err
	}

	s.metrics.ObserveMatch(res.MatchScore)
	span.SetAttributes(
		attribute.Float64("match.score", res.MatchScore),
		attribute.Int("match.missing_keywords", len(res.MissingKeywords)),
	)
	return &res, nil
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, match.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, nlp.ErrAnnotationTimeout):
		return "annotation_timeout"
	case errors.Is(err, nlp.ErrAnnotationUnavailable):
		return "annotation_unavailable"
	default:
		return "internal"
	}
}
