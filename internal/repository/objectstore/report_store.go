// Package objectstore persists rosters and weekly reports in an object storage bucket.
package objectstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"path"

	"rollcall/internal/domain"
	"rollcall/internal/port"
	"rollcall/internal/xlsxexport"
)

type reportStore struct {
	storage port.ObjectStorage
	bucket  string
	prefix  string
}

// NewReportStore keeps weekly workbooks under prefix in bucket.
func NewReportStore(storage port.ObjectStorage, bucket, prefix string) port.ReportStore {
	return &reportStore{storage: storage, bucket: bucket, prefix: prefix}
}

func (s *reportStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.storage.Download(ctx, s.bucket, s.objectKey(key))
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reportStore.Get %s: %w", key, err)
	}
	return data, nil
}

func (s *reportStore) Put(ctx context.Context, key string, data []byte) error {
	out, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.bucket,
		Key:         s.objectKey(key),
		Body:        bytes.NewReader(data),
		ContentType: xlsxexport.ContentType,
		Size:        int64(len(data)),
	})
	if err != nil {
		return fmt.Errorf("reportStore.Put %s: %w", key, err)
	}
	log.Printf("reportStore.Put: stored %s (etag %s)", out.Location, out.ETag)
	return nil
}

func (s *reportStore) objectKey(key string) string {
	if s.prefix == "" {
		return key
	}
	return path.Join(s.prefix, key)
}
