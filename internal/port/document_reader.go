package port

import (
	"context"

	"rollcall/internal/domain"
)

// DocumentReader extracts positioned words from the first page of a document.
// Implementations must release any handle they open before returning.
type DocumentReader interface {
	Words(ctx context.Context, doc domain.Document) ([]domain.Token, error)
}
