package pdfwords

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rollcall/internal/domain"
)

func chars(s string, x, y, size float64) []glyph {
	var out []glyph
	for i, r := range s {
		out = append(out, glyph{text: string(r), x: x + float64(i)*5, y: y, w: 5, size: size})
	}
	return out
}

func TestAssembleWords_MergesAdjacentGlyphs(t *testing.T) {
	glyphs := chars("IMSL", 10, 700, 10)
	glyphs = append(glyphs, chars("Smith,", 100, 700, 10)...)

	words := assembleWords(glyphs, 792)

	require.Len(t, words, 2)
	assert.Equal(t, "IMSL", words[0].Text)
	assert.Equal(t, 10.0, words[0].X)
	assert.Equal(t, 82.0, words[0].Top)
	assert.Equal(t, "Smith,", words[1].Text)
}

func TestAssembleWords_SpaceGlyphEndsWord(t *testing.T) {
	glyphs := chars("ab cd", 0, 100, 10)

	words := assembleWords(glyphs, 200)

	require.Len(t, words, 2)
	assert.Equal(t, "ab", words[0].Text)
	assert.Equal(t, "cd", words[1].Text)
}

func TestAssembleWords_BaselineChangeEndsWord(t *testing.T) {
	glyphs := append(chars("ab", 0, 100, 10), chars("cd", 10, 80, 10)...)

	words := assembleWords(glyphs, 200)

	require.Len(t, words, 2)
	assert.Equal(t, 110.0, words[1].Top)
}

func TestAssembleWords_MultiCharacterRunWithSpaces(t *testing.T) {
	glyphs := []glyph{{text: "06:00:59 Mon", x: 0, y: 50, w: 60, size: 10}}

	words := assembleWords(glyphs, 100)

	require.Len(t, words, 2)
	assert.Equal(t, "06:00:59", words[0].Text)
	assert.Equal(t, "Mon", words[1].Text)
	assert.InDelta(t, 45.0, words[1].X, 0.001)
}

func TestAssembleWords_Empty(t *testing.T) {
	assert.Empty(t, assembleWords(nil, 792))
}

func TestReader_RejectsNonPDF(t *testing.T) {
	_, err := NewReader().Words(context.Background(), domain.Document{Name: "notes.pdf", Content: []byte("hello")})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrDocumentUnreadable))
}

func TestReader_HonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewReader().Words(ctx, domain.Document{Name: "a.pdf"})
	assert.ErrorIs(t, err, context.Canceled)
}
