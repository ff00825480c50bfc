package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"rollcall/internal/domain"
	"rollcall/internal/port"
)

type reportStore struct {
	dir string
}

// NewReportStore keeps weekly workbooks as files under dir.
func NewReportStore(dir string) port.ReportStore {
	return &reportStore{dir: dir}
}

func (s *reportStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path(key))
	if os.IsNotExist(err) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reportStore.Get: %w", err)
	}
	return data, nil
}

func (s *reportStore) Put(ctx context.Context, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := writeAtomic(s.path(key), data); err != nil {
		return fmt.Errorf("reportStore.Put: %w", err)
	}
	return nil
}

func (s *reportStore) path(key string) string {
	return filepath.Join(s.dir, filepath.Base(key))
}
