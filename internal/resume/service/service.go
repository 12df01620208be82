package service

import (
	"context"
	"strings"
	"time"

	"github.com/medflow/resume-parser/internal/resume/domain"
	"github.com/medflow/resume-parser/internal/resume/events"
	"github.com/medflow/resume-parser/internal/resume/extract"
	"github.com/medflow/resume-parser/internal/resume/processor"
	"github.com/medflow/resume-parser/internal/resume/storage"
	"github.com/medflow/resume-parser/pkg/errors"
	"github.com/medflow/resume-parser/pkg/logger"
	"github.com/medflow/resume-parser/pkg/messaging"
)

// ParseOptions controls a single parse
type ParseOptions struct {
	IncludeRawText bool
}

// Service orchestrates resume parsing: detect type → extract text → run extractors
type Service struct {
	registry  *processor.Registry
	parser    *extract.Parser
	storage   *storage.TempStorage
	publisher events.Publisher
	log       *logger.Logger
}

// NewService creates a new resume parsing service. A nil publisher disables events.
func NewService(registry *processor.Registry, parser *extract.Parser, store *storage.TempStorage, publisher events.Publisher, log *logger.Logger) *Service {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &Service{
		registry:  registry,
		parser:    parser,
		storage:   store,
		publisher: publisher,
		log:       log,
	}
}

// ExtractText sniffs the upload and runs the processors able to read it, in
// order, until one succeeds.
func (s *Service) ExtractText(ctx context.Context, data []byte) (*domain.Document, error) {
	ct, detected := processor.Detect(data)
	if ct == "" {
		return nil, errors.UnsupportedMediaType(detected)
	}
	return s.extractText(ctx, data, ct)
}

func (s *Service) extractText(ctx context.Context, data []byte, ct domain.ContentType) (*domain.Document, error) {
	processors := s.registry.FindProcessors(ct)
	if len(processors) == 0 {
		return nil, errors.UnsupportedMediaType(string(ct))
	}

	var (
		doc     *domain.Document
		lastErr error
	)
	for _, proc := range processors {
		doc, lastErr = proc.Process(ctx, data)
		if lastErr == nil {
			break
		}
		s.log.Warn().Err(lastErr).
			Str("processor", proc.Name()).
			Str("content_type", string(ct)).
			Msg("processor failed, trying next")
	}

	if lastErr != nil {
		return nil, errors.UnreadableDocument(lastErr)
	}

	for _, w := range doc.Warnings {
		s.log.Warn().Str("content_type", string(ct)).Msg(w)
	}

	if strings.TrimSpace(doc.Text) == "" {
		return nil, errors.EmptyDocument()
	}

	return doc, nil
}

// Parse extracts the full resume record from an upload
func (s *Service) Parse(ctx context.Context, upload domain.Upload, opts ParseOptions) (*domain.Resume, error) {
	start := time.Now()

	doc, err := s.ExtractText(ctx, upload.Data)
	storage.ZeroBytes(upload.Data)
	if err != nil {
		return nil, err
	}

	resume := s.parser.Parse(ctx, doc.Text)
	if opts.IncludeRawText {
		resume.RawData = &doc.Text
	}

	s.reportParsed(ctx, "", doc, resume, time.Since(start))
	return resume, nil
}

// ParseLegacy extracts the reduced record served by /parse_resume
func (s *Service) ParseLegacy(ctx context.Context, upload domain.Upload) (*domain.LegacyResume, error) {
	doc, err := s.ExtractText(ctx, upload.Data)
	storage.ZeroBytes(upload.Data)
	if err != nil {
		return nil, err
	}

	return s.parser.ParseLegacy(ctx, doc.Text), nil
}

// StartExtraction creates a job and parses the upload asynchronously.
// Unsupported content types are rejected before a job is created.
func (s *Service) StartExtraction(ctx context.Context, upload domain.Upload, opts ParseOptions) (*domain.ExtractionJob, error) {
	ct, detected := processor.Detect(upload.Data)
	if ct == "" {
		storage.ZeroBytes(upload.Data)
		return nil, errors.UnsupportedMediaType(detected)
	}

	jobID := storage.GenerateJobID()
	s.storage.StoreJob(&domain.ExtractionJob{
		JobID:     jobID,
		Status:    domain.StatusProcessing,
		CreatedAt: time.Now(),
	})

	job := s.storage.GetJob(jobID)

	// Detached so the job outlives the request
	go s.processAsync(context.WithoutCancel(ctx), jobID, upload.Data, ct, opts)

	return job, nil
}

func (s *Service) processAsync(ctx context.Context, jobID string, data []byte, ct domain.ContentType, opts ParseOptions) {
	log := s.log.WithJobID(jobID)
	start := time.Now()

	doc, err := s.extractText(ctx, data, ct)
	storage.ZeroBytes(data)

	if err != nil {
		code := "INTERNAL_ERROR"
		var appErr *errors.AppError
		if errors.As(err, &appErr) {
			code = appErr.Code
		}

		s.storage.UpdateJob(jobID, func(j *domain.ExtractionJob) {
			j.Status = domain.StatusFailed
			j.Error = code
		})
		s.publisher.ResumeFailed(ctx, messaging.ResumeFailedEvent{
			JobID:       jobID,
			ContentType: string(ct),
			ErrorCode:   code,
		})
		log.Error().Err(err).Msg("resume extraction failed")
		return
	}

	resume := s.parser.Parse(ctx, doc.Text)
	if opts.IncludeRawText {
		resume.RawData = &doc.Text
	}

	s.storage.UpdateJob(jobID, func(j *domain.ExtractionJob) {
		j.Status = domain.StatusCompleted
		j.Result = resume
	})

	s.reportParsed(ctx, jobID, doc, resume, time.Since(start))
}

// GetJob retrieves an extraction job by ID
func (s *Service) GetJob(jobID string) (*domain.ExtractionJob, error) {
	job := s.storage.GetJob(jobID)
	if job == nil {
		return nil, errors.NotFound("job")
	}
	return job, nil
}

func (s *Service) reportParsed(ctx context.Context, jobID string, doc *domain.Document, resume *domain.Resume, elapsed time.Duration) {
	fields := resume.FieldsExtracted()

	s.log.Info().
		Str("job_id", jobID).
		Str("content_type", string(doc.ContentType)).
		Int("pages", doc.PageCount).
		Strs("fields", fields).
		Dur("duration", elapsed).
		Msg("resume parsed")

	s.publisher.ResumeParsed(ctx, messaging.ResumeParsedEvent{
		JobID:           jobID,
		ContentType:     string(doc.ContentType),
		PageCount:       doc.PageCount,
		FieldsExtracted: fields,
		SkillCount:      len(resume.Skills),
		DurationMS:      elapsed.Milliseconds(),
	})
}
