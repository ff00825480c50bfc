package objectstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"rollcall/internal/domain"
	"rollcall/internal/port"
	"rollcall/internal/xlsxexport"
)

// nameHeader is the optional first cell of the roster sheet.
const nameHeader = "name"

type sheetRosterRepo struct {
	storage port.ObjectStorage
	bucket  string
	key     string
}

// NewSheetRosterRepo stores the roster as a single-column workbook in object storage.
// Column A holds one "Surname, FirstName" per row, optionally under a "name" header.
func NewSheetRosterRepo(storage port.ObjectStorage, bucket, key string) port.RosterRepository {
	return &sheetRosterRepo{storage: storage, bucket: bucket, key: key}
}

func (r *sheetRosterRepo) Load(ctx context.Context) (domain.Roster, error) {
	data, err := r.storage.Download(ctx, r.bucket, r.key)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Roster{}, nil
	}
	if err != nil {
		return domain.Roster{}, fmt.Errorf("%w: %v", domain.ErrRosterUnavailable, err)
	}

	grid, err := xlsxexport.ReadGrid(data)
	if err != nil {
		return domain.Roster{}, fmt.Errorf("%w: %v", domain.ErrRosterLoad, err)
	}

	var roster domain.Roster
	for i, row := range grid {
		if len(row) == 0 {
			continue
		}
		cell := strings.TrimSpace(row[0])
		if cell == "" || (i == 0 && strings.EqualFold(cell, nameHeader)) {
			continue
		}
		p, err := domain.ParsePersonName(cell)
		if err != nil {
			log.Printf("sheetRosterRepo.Load: row %d: dropping entry %q: %v", i+1, cell, err)
			continue
		}
		roster.Add(p)
	}
	return roster, nil
}

func (r *sheetRosterRepo) Save(ctx context.Context, roster domain.Roster) error {
	grid := make([][]string, 0, roster.Len()+1)
	grid = append(grid, []string{nameHeader})
	for _, p := range roster.Members() {
		grid = append(grid, []string{p.String()})
	}

	data, err := xlsxexport.EncodeGrid("Roster", grid)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrRosterSave, err)
	}

	_, err = r.storage.Upload(ctx, port.UploadInput{
		Bucket:      r.bucket,
		Key:         r.key,
		Body:        bytes.NewReader(data),
		ContentType: xlsxexport.ContentType,
		Size:        int64(len(data)),
	})
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrRosterUnavailable, err)
	}
	return nil
}
