package processor

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/medflow/resume-parser/internal/resume/domain"
)

// PDFProcessor reads the text layer of a PDF page by page.
type PDFProcessor struct{}

func NewPDFProcessor() *PDFProcessor {
	return &PDFProcessor{}
}

func (p *PDFProcessor) Name() string { return "pdf" }

func (p *PDFProcessor) CanProcess(ct domain.ContentType) bool {
	return ct == domain.ContentTypePDF
}

func (p *PDFProcessor) Process(ctx context.Context, data []byte) (doc *domain.Document, err error) {
	// The PDF reader panics on some malformed cross-reference tables
	defer func() {
		if r := recover(); r != nil {
			doc = nil
			err = fmt.Errorf("pdf: malformed document: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("pdf: open document: %w", err)
	}

	var (
		text     strings.Builder
		warnings []string
	)
	pages := reader.NumPage()

	for i := 1; i <= pages; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page := reader.Page(i)
		if page.V.IsNull() {
			warnings = append(warnings, fmt.Sprintf("page %d is missing", i))
			continue
		}

		content, err := pageText(page)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("page %d could not be read: %v", i, err))
			continue
		}

		text.WriteString(content)
		text.WriteString("\n")
	}

	return &domain.Document{
		Text:        NormalizeText(text.String()),
		PageCount:   pages,
		ContentType: domain.ContentTypePDF,
		Warnings:    warnings,
	}, nil
}

// pageText groups glyphs by baseline so positioned text keeps its line breaks.
// Plain extraction is the fallback when the row layout cannot be computed.
func pageText(page pdf.Page) (string, error) {
	rows, err := page.GetTextByRow()
	if err != nil {
		return page.GetPlainText(nil)
	}

	var b strings.Builder
	for _, row := range rows {
		for _, word := range row.Content {
			b.WriteString(word.S)
		}
		b.WriteString("\n")
	}
	return b.String(), nil
}
