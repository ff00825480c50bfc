package extract

import (
	"context"
	"fmt"
	"sort"

	"rollcall/internal/domain"
	"rollcall/internal/port"
)

// Extractor reads a document's first page and returns its rows as cell text.
type Extractor struct {
	reader    port.DocumentReader
	tolerance float64
}

// NewExtractor creates an Extractor. A non-positive tolerance falls back to DefaultRowTolerance.
func NewExtractor(reader port.DocumentReader, tolerance float64) *Extractor {
	if tolerance <= 0 {
		tolerance = DefaultRowTolerance
	}
	return &Extractor{reader: reader, tolerance: tolerance}
}

// ExtractTable returns the ordered table rows of doc's first page.
func (e *Extractor) ExtractTable(ctx context.Context, doc domain.Document) ([]domain.TableRow, error) {
	tokens, err := e.reader.Words(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("extracting words from %s: %w", doc.Name, err)
	}
	return BuildTable(tokens, e.tolerance), nil
}

// BuildTable sorts tokens by (Top, X), groups them into rows and orders each
// row's cells left to right.
func BuildTable(tokens []domain.Token, tolerance float64) []domain.TableRow {
	sorted := make([]domain.Token, len(tokens))
	copy(sorted, tokens)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Top != sorted[j].Top {
			return sorted[i].Top < sorted[j].Top
		}
		return sorted[i].X < sorted[j].X
	})

	rows := GroupRows(sorted, tolerance)
	table := make([]domain.TableRow, 0, len(rows))
	for _, row := range rows {
		sort.SliceStable(row, func(i, j int) bool { return row[i].X < row[j].X })
		cells := make(domain.TableRow, len(row))
		for i, tok := range row {
			cells[i] = tok.Text
		}
		table = append(table, cells)
	}
	return table
}
