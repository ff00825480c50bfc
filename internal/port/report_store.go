package port

import (
	"context"
)

// ReportStore keeps the encoded weekly workbooks between batches.
// Get returns domain.ErrNotFound when no report exists under key.
type ReportStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
}
