package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/medflow/resume-parser/internal/resume/domain"
	"github.com/medflow/resume-parser/internal/resume/extract"
	"github.com/medflow/resume-parser/internal/resume/processor"
	"github.com/medflow/resume-parser/internal/resume/storage"
	"github.com/medflow/resume-parser/pkg/errors"
	"github.com/medflow/resume-parser/pkg/logger"
	"github.com/medflow/resume-parser/pkg/messaging"
	"github.com/medflow/resume-parser/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

type recordingPublisher struct {
	mu     sync.Mutex
	parsed []messaging.ResumeParsedEvent
	failed []messaging.ResumeFailedEvent
}

func (p *recordingPublisher) ResumeParsed(_ context.Context, evt messaging.ResumeParsedEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.parsed = append(p.parsed, evt)
}

func (p *recordingPublisher) ResumeFailed(_ context.Context, evt messaging.ResumeFailedEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failed = append(p.failed, evt)
}

func (p *recordingPublisher) counts() (int, int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.parsed), len(p.failed)
}

type failingProcessor struct{ name string }

func (f failingProcessor) CanProcess(ct domain.ContentType) bool { return ct == domain.ContentTypeText }
func (f failingProcessor) Name() string                         { return f.name }
func (f failingProcessor) Process(context.Context, []byte) (*domain.Document, error) {
	return nil, errors.New("BROKEN", "processor broken", 500)
}

func newTestService(t *testing.T, registry *processor.Registry) (*Service, *recordingPublisher) {
	t.Helper()
	if registry == nil {
		registry = processor.DefaultRegistry()
	}
	store := storage.NewTempStorage(time.Minute)
	t.Cleanup(store.Close)

	pub := &recordingPublisher{}
	svc := NewService(registry, extract.NewParser(logger.Nop()), store, pub, logger.Nop())
	return svc, pub
}

func appErrorCode(t *testing.T, err error) string {
	t.Helper()
	var appErr *errors.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %v", err)
	return appErr.Code
}

func TestService_Parse_Text(t *testing.T) {
	svc, pub := newTestService(t, nil)
	data := testutil.NewFixtureFactory().Resume().Bytes()

	resume, err := svc.Parse(testutil.DefaultTestContext(t), domain.Upload{Filename: "cv.txt", Data: data}, ParseOptions{})
	require.NoError(t, err)

	require.NotNil(t, resume.Name)
	assert.Equal(t, "John Smith", *resume.Name)
	assert.Equal(t, []string{"john.smith1@example.com"}, resume.Email)
	assert.Nil(t, resume.RawData)

	assert.Equal(t, make([]byte, len(data)), data, "upload bytes must be zeroed")

	parsed, failed := pub.counts()
	assert.Equal(t, 1, parsed)
	assert.Equal(t, 0, failed)
	assert.Equal(t, string(domain.ContentTypeText), pub.parsed[0].ContentType)
	assert.Equal(t, len(resume.Skills), pub.parsed[0].SkillCount)
	assert.Contains(t, pub.parsed[0].FieldsExtracted, "email")
}

func TestService_Parse_PDF(t *testing.T) {
	svc, _ := newTestService(t, nil)
	data := testutil.BuildPDF(t,
		[]string{"Jane Doe", "jane.doe@example.com"},
		[]string{"SKILLS", "Python, Docker"},
	)

	resume, err := svc.Parse(context.Background(), domain.Upload{Filename: "cv.pdf", Data: data}, ParseOptions{IncludeRawText: true})
	require.NoError(t, err)

	assert.Equal(t, []string{"jane.doe@example.com"}, resume.Email)
	assert.Contains(t, resume.Skills, "Python")
	require.NotNil(t, resume.RawData)
	assert.Contains(t, *resume.RawData, "Jane Doe")
}

func TestService_Parse_Errors(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		wantCode string
	}{
		{name: "image upload", data: append([]byte(nil), pngHeader...), wantCode: "UNSUPPORTED_MEDIA_TYPE"},
		{name: "whitespace only", data: []byte(" \n\t\n  "), wantCode: "EMPTY_DOCUMENT"},
		{name: "pdf without text", data: testutil.BuildPDF(t, []string{}), wantCode: "EMPTY_DOCUMENT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, pub := newTestService(t, nil)

			_, err := svc.Parse(context.Background(), domain.Upload{Data: tt.data}, ParseOptions{})
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, appErrorCode(t, err))

			parsed, _ := pub.counts()
			assert.Zero(t, parsed)
		})
	}
}

func TestService_ExtractText_FallsBackToNextProcessor(t *testing.T) {
	registry := processor.NewRegistry(failingProcessor{name: "broken"}, processor.NewTextProcessor())
	svc, _ := newTestService(t, registry)

	doc, err := svc.ExtractText(context.Background(), []byte("Jane Doe\njane@example.com"))
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\njane@example.com", doc.Text)
}

func TestService_ExtractText_AllProcessorsFail(t *testing.T) {
	registry := processor.NewRegistry(failingProcessor{name: "first"}, failingProcessor{name: "second"})
	svc, _ := newTestService(t, registry)

	_, err := svc.ExtractText(context.Background(), []byte("Jane Doe"))
	require.Error(t, err)
	assert.Equal(t, "UNREADABLE_DOCUMENT", appErrorCode(t, err))
	assert.True(t, errors.Is(err, errors.ErrUnprocessable))
}

func TestService_ParseLegacy(t *testing.T) {
	svc, pub := newTestService(t, nil)
	data := testutil.NewFixtureFactory().Resume().Bytes()

	legacy, err := svc.ParseLegacy(context.Background(), domain.Upload{Data: data})
	require.NoError(t, err)

	require.NotNil(t, legacy.Name)
	assert.Equal(t, "John Smith", *legacy.Name)
	require.NotNil(t, legacy.Phone)
	assert.Equal(t, "201-555-0123", *legacy.Phone)
	require.NotNil(t, legacy.Experience)
	assert.Equal(t, "5+ years of experience", *legacy.Experience)

	parsed, _ := pub.counts()
	assert.Zero(t, parsed, "legacy route does not publish")
}

func TestService_StartExtraction(t *testing.T) {
	svc, pub := newTestService(t, nil)
	data := testutil.NewFixtureFactory().Resume().Bytes()

	job, err := svc.StartExtraction(context.Background(), domain.Upload{Data: data}, ParseOptions{})
	require.NoError(t, err)
	require.NotNil(t, job)
	assert.NotEmpty(t, job.JobID)
	assert.Equal(t, domain.StatusProcessing, job.Status)

	assert.Eventually(t, func() bool {
		got, err := svc.GetJob(job.JobID)
		return err == nil && got.Status == domain.StatusCompleted
	}, 5*time.Second, 10*time.Millisecond)

	got, err := svc.GetJob(job.JobID)
	require.NoError(t, err)
	require.NotNil(t, got.Result)
	assert.Equal(t, []string{"john.smith1@example.com"}, got.Result.Email)

	parsed, _ := pub.counts()
	assert.Equal(t, 1, parsed)
	assert.Equal(t, job.JobID, pub.parsed[0].JobID)
}

func TestService_StartExtraction_SurvivesRequestCancel(t *testing.T) {
	svc, _ := newTestService(t, nil)
	data := testutil.NewFixtureFactory().Resume().Bytes()

	ctx, cancel := testutil.ContextWithTimeout(t, 30*time.Second)
	job, err := svc.StartExtraction(ctx, domain.Upload{Data: data}, ParseOptions{})
	require.NoError(t, err)
	cancel()

	assert.Eventually(t, func() bool {
		got, err := svc.GetJob(job.JobID)
		return err == nil && got.Status == domain.StatusCompleted && got.Result != nil && got.Result.Name != nil
	}, 5*time.Second, 10*time.Millisecond)
}

func TestService_StartExtraction_Failure(t *testing.T) {
	svc, pub := newTestService(t, nil)

	job, err := svc.StartExtraction(context.Background(), domain.Upload{Data: []byte("   \n\n")}, ParseOptions{})
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		got, err := svc.GetJob(job.JobID)
		return err == nil && got.Status == domain.StatusFailed
	}, 5*time.Second, 10*time.Millisecond)

	got, _ := svc.GetJob(job.JobID)
	assert.Equal(t, "EMPTY_DOCUMENT", got.Error)
	assert.Nil(t, got.Result)

	_, failed := pub.counts()
	require.Equal(t, 1, failed)
	assert.Equal(t, "EMPTY_DOCUMENT", pub.failed[0].ErrorCode)
}

func TestService_StartExtraction_RejectsUnsupported(t *testing.T) {
	svc, pub := newTestService(t, nil)

	job, err := svc.StartExtraction(context.Background(), domain.Upload{Data: append([]byte(nil), pngHeader...)}, ParseOptions{})
	require.Error(t, err)
	assert.Nil(t, job)
	assert.Equal(t, "UNSUPPORTED_MEDIA_TYPE", appErrorCode(t, err))

	_, failed := pub.counts()
	assert.Zero(t, failed)
}

func TestService_GetJob_NotFound(t *testing.T) {
	svc, _ := newTestService(t, nil)

	_, err := svc.GetJob("does-not-exist")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}
