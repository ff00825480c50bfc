package extract

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rollcall/internal/domain"
)

type stubReader struct {
	tokens []domain.Token
	err    error
	calls  int
}

func (s *stubReader) Words(_ context.Context, _ domain.Document) ([]domain.Token, error) {
	s.calls++
	return s.tokens, s.err
}

func TestBuildTable_OrdersRowsAndCells(t *testing.T) {
	tokens := []domain.Token{
		tok("John", 40, 20.5),
		tok("IMSL", 0, 20),
		tok("Header", 0, 5),
		tok("Smith,", 30, 21),
	}

	table := BuildTable(tokens, DefaultRowTolerance)

	require.Len(t, table, 2)
	assert.Equal(t, domain.TableRow{"Header"}, table[0])
	assert.Equal(t, domain.TableRow{"IMSL", "Smith,", "John"}, table[1])
}

func TestBuildTable_DoesNotMutateInput(t *testing.T) {
	tokens := []domain.Token{tok("b", 10, 0), tok("a", 0, 0)}
	BuildTable(tokens, DefaultRowTolerance)
	assert.Equal(t, "b", tokens[0].Text)
}

func TestExtractor_ExtractTable(t *testing.T) {
	reader := &stubReader{tokens: []domain.Token{tok("x", 0, 0)}}
	doc := domain.Document{Name: "2025_06_02.pdf", Content: []byte("%PDF")}

	table, err := NewExtractor(reader, 0).ExtractTable(context.Background(), doc)

	require.NoError(t, err)
	assert.Equal(t, []domain.TableRow{{"x"}}, table)
	assert.Equal(t, 1, reader.calls)
}

func TestExtractor_ReaderError(t *testing.T) {
	reader := &stubReader{err: domain.ErrDocumentUnreadable}
	doc := domain.Document{Name: "broken.pdf"}

	_, err := NewExtractor(reader, DefaultRowTolerance).ExtractTable(context.Background(), doc)

	assert.True(t, errors.Is(err, domain.ErrDocumentUnreadable))
}
