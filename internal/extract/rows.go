// Package extract turns positioned words into table rows.
package extract

import (
	"math"

	"rollcall/internal/domain"
)

// DefaultRowTolerance is the vertical distance, in points, within which
// tokens are considered to share a row.
const DefaultRowTolerance = 3.0

// GroupRows clusters tokens into rows by vertical proximity.
//
// Tokens must already be sorted by (Top, X). A token joins the open row when
// its Top lies within tolerance of the row's running mean; the mean is then
// replaced by the average of the previous mean and the token's Top, not the
// true mean of the row.
func GroupRows(tokens []domain.Token, tolerance float64) []domain.Row {
	var rows []domain.Row
	var current domain.Row
	var mean float64

	for _, tok := range tokens {
		if current == nil || math.Abs(tok.Top-mean) <= tolerance {
			if current == nil {
				mean = tok.Top
			} else {
				mean = (mean + tok.Top) / 2
			}
			current = append(current, tok)
			continue
		}
		rows = append(rows, current)
		current = domain.Row{tok}
		mean = tok.Top
	}
	if current != nil {
		rows = append(rows, current)
	}
	return rows
}
