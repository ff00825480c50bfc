package attendance

import (
	"fmt"
	"time"

	"rollcall/internal/domain"
)

// DateResolver associates a document with the day it covers.
type DateResolver func(name string) (time.Time, bool)

// WeekBatch is the ordered set of documents that fall into one ISO week.
type WeekBatch struct {
	Week      domain.WeekKey
	Documents []domain.Document
}

// SkippedDocument is a document left out of partitioning.
type SkippedDocument struct {
	Name string
	Err  error
}

// Partition groups documents by the ISO week of their resolved date.
// Weeks come back in first-seen order and each week keeps input order.
// Documents without a date are skipped with domain.ErrDateExtraction.
func Partition(docs []domain.Document, resolve DateResolver) ([]WeekBatch, []SkippedDocument) {
	if resolve == nil {
		resolve = DateFromFilename
	}

	var weeks []WeekBatch
	var skipped []SkippedDocument
	index := make(map[domain.WeekKey]int)

	for _, doc := range docs {
		date, ok := resolve(doc.Name)
		if !ok {
			skipped = append(skipped, SkippedDocument{
				Name: doc.Name,
				Err:  fmt.Errorf("%s: %w", doc.Name, domain.ErrDateExtraction),
			})
			continue
		}
		key := domain.WeekKeyOf(date)
		i, seen := index[key]
		if !seen {
			i = len(weeks)
			index[key] = i
			weeks = append(weeks, WeekBatch{Week: key})
		}
		weeks[i].Documents = append(weeks[i].Documents, doc)
	}
	return weeks, skipped
}
