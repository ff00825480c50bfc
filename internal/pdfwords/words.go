package pdfwords

import (
	"math"
	"strings"
	"unicode/utf8"

	"rollcall/internal/domain"
)

const (
	// baselineTolerance is how far two glyph baselines may differ and still
	// belong to one word.
	baselineTolerance = 0.5
	// gapFactor scales the font size into the horizontal gap that ends a word.
	gapFactor = 0.25
)

// glyph is a run of text drawn at one position, usually a single character.
type glyph struct {
	text string
	x, y float64
	w    float64
	size float64
}

type wordBuilder struct {
	text strings.Builder
	x    float64
	y    float64
	end  float64
	size float64
}

func (b *wordBuilder) empty() bool { return b.text.Len() == 0 }

func (b *wordBuilder) start(g glyph) {
	b.text.Reset()
	b.text.WriteString(g.text)
	b.x, b.y, b.end, b.size = g.x, g.y, g.x+g.w, g.size
}

func (b *wordBuilder) continues(g glyph) bool {
	if math.Abs(g.y-b.y) > baselineTolerance {
		return false
	}
	size := b.size
	if size <= 0 {
		size = 1
	}
	gap := g.x - b.end
	return gap <= gapFactor*size && g.x >= b.x
}

// assembleWords merges glyphs drawn in content order into whitespace-free
// words. Top is converted from PDF's bottom-left origin using pageHeight.
func assembleWords(glyphs []glyph, pageHeight float64) []domain.Token {
	var tokens []domain.Token
	var b wordBuilder

	flush := func() {
		if b.empty() {
			return
		}
		tokens = append(tokens, domain.Token{
			Text: b.text.String(),
			X:    b.x,
			Top:  pageHeight - b.y - b.size,
		})
		b.text.Reset()
	}

	for _, g := range splitGlyphs(glyphs) {
		if strings.TrimSpace(g.text) == "" {
			flush()
			continue
		}
		if !b.empty() && b.continues(g) {
			b.text.WriteString(g.text)
			b.end = g.x + g.w
			continue
		}
		flush()
		b.start(g)
	}
	flush()
	return tokens
}

// splitGlyphs breaks multi-character runs that contain spaces into one glyph
// per field, spreading the run's width evenly across its characters.
func splitGlyphs(glyphs []glyph) []glyph {
	out := make([]glyph, 0, len(glyphs))
	for _, g := range glyphs {
		if !strings.ContainsAny(g.text, " \t") || utf8.RuneCountInString(g.text) < 2 {
			out = append(out, g)
			continue
		}
		n := utf8.RuneCountInString(g.text)
		per := g.w / float64(n)
		offset := 0
		for _, field := range strings.FieldsFunc(g.text, func(r rune) bool { return r == ' ' || r == '\t' }) {
			idx := strings.Index(g.text[offset:], field) + offset
			start := utf8.RuneCountInString(g.text[:idx])
			width := float64(utf8.RuneCountInString(field)) * per
			out = append(out, glyph{text: field, x: g.x + float64(start)*per, y: g.y, w: width, size: g.size})
			out = append(out, glyph{text: " ", x: g.x + float64(start)*per + width, y: g.y, size: g.size})
			offset = idx + len(field)
		}
	}
	return out
}
