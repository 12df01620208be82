package processor

import (
	"context"

	"github.com/gabriel-vasile/mimetype"
	"github.com/medflow/resume-parser/internal/resume/domain"
)

// Processor converts an uploaded document into text.
// Implementations must not retain data after Process returns.
type Processor interface {
	// CanProcess returns true if this processor handles the given content type
	CanProcess(ct domain.ContentType) bool

	// Process extracts the text layer from data
	Process(ctx context.Context, data []byte) (*domain.Document, error)

	// Name returns the processor name for logging
	Name() string
}

// Registry holds all registered processors and dispatches to the right one
type Registry struct {
	processors []Processor
}

// NewRegistry creates a new processor registry
func NewRegistry(processors ...Processor) *Registry {
	return &Registry{processors: processors}
}

// DefaultRegistry returns the registry used by the service: PDF first, then plain text
func DefaultRegistry() *Registry {
	return NewRegistry(NewPDFProcessor(), NewTextProcessor())
}

// FindProcessor returns the first processor that can handle the given content type
func (r *Registry) FindProcessor(ct domain.ContentType) Processor {
	for _, p := range r.processors {
		if p.CanProcess(ct) {
			return p
		}
	}
	return nil
}

// FindProcessors returns all processors that can handle the given content type,
// in registration order, so a failing processor can fall back to the next one.
func (r *Registry) FindProcessors(ct domain.ContentType) []Processor {
	var result []Processor
	for _, p := range r.processors {
		if p.CanProcess(ct) {
			result = append(result, p)
		}
	}
	return result
}

// Detect sniffs the content type of data. The second return value is the
// detected MIME type as reported to clients when it is not supported.
func Detect(data []byte) (domain.ContentType, string) {
	mt := mimetype.Detect(data)

	if mt.Is(string(domain.ContentTypePDF)) {
		return domain.ContentTypePDF, mt.String()
	}
	for m := mt; m != nil; m = m.Parent() {
		if m.Is(string(domain.ContentTypeText)) {
			return domain.ContentTypeText, mt.String()
		}
	}

	return "", mt.String()
}
