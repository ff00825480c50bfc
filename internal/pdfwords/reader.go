// Package pdfwords extracts positioned words from PDF time-clock exports.
package pdfwords

import (
	"bytes"
	"context"
	"fmt"
	"log"

	"github.com/ledongthuc/pdf"

	"rollcall/internal/domain"
	"rollcall/internal/port"
)

// defaultPageHeight is US Letter, used when a page carries no readable MediaBox.
const defaultPageHeight = 792.0

type pdfReader struct{}

// NewReader returns a DocumentReader backed by github.com/ledongthuc/pdf.
func NewReader() port.DocumentReader {
	return &pdfReader{}
}

// Words returns the words of the first page with Top measured from the page top.
func (r *pdfReader) Words(ctx context.Context, doc domain.Document) (tokens []domain.Token, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// The pdf package panics on some malformed content streams.
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("pdfReader.Words: recovered while reading %s: %v", doc.Name, rec)
			tokens = nil
			err = fmt.Errorf("%s: %w", doc.Name, domain.ErrDocumentUnreadable)
		}
	}()

	rd, err := pdf.NewReader(bytes.NewReader(doc.Content), int64(len(doc.Content)))
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", doc.Name, domain.ErrDocumentUnreadable, err)
	}
	if rd.NumPage() < 1 {
		return nil, fmt.Errorf("%s: %w: no pages", doc.Name, domain.ErrDocumentUnreadable)
	}

	page := rd.Page(1)
	if page.V.IsNull() {
		return nil, fmt.Errorf("%s: %w: first page missing", doc.Name, domain.ErrDocumentUnreadable)
	}

	content := page.Content()
	glyphs := make([]glyph, 0, len(content.Text))
	for _, t := range content.Text {
		glyphs = append(glyphs, glyph{text: t.S, x: t.X, y: t.Y, w: t.W, size: t.FontSize})
	}
	return assembleWords(glyphs, pageHeight(page)), nil
}

func pageHeight(page pdf.Page) float64 {
	box := page.V.Key("MediaBox")
	if box.IsNull() || box.Len() < 4 {
		return defaultPageHeight
	}
	h := box.Index(3).Float64() - box.Index(1).Float64()
	if h <= 0 {
		return defaultPageHeight
	}
	return h
}
