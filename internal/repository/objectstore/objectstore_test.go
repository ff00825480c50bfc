package objectstore_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"rollcall/internal/domain"
	"rollcall/internal/port"
	"rollcall/internal/repository/objectstore"
	"rollcall/internal/xlsxexport"
	"rollcall/mocks"
)

var (
	smith = domain.PersonKey{Surname: "Smith", FirstName: "John"}
	doe   = domain.PersonKey{Surname: "Doe", FirstName: "Jane"}
)

func TestReportStore_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("prefixed key", func(t *testing.T) {
		storage := new(mocks.MockObjectStorage)
		storage.On("Download", ctx, "bucket", "reports/2025-W23.xlsx").Return([]byte("data"), nil)

		data, err := objectstore.NewReportStore(storage, "bucket", "reports").Get(ctx, "2025-W23.xlsx")
		require.NoError(t, err)
		assert.Equal(t, []byte("data"), data)
		storage.AssertExpectations(t)
	})

	t.Run("missing object", func(t *testing.T) {
		storage := new(mocks.MockObjectStorage)
		storage.On("Download", ctx, "bucket", "2025-W23.xlsx").Return(nil, domain.ErrNotFound)

		_, err := objectstore.NewReportStore(storage, "bucket", "").Get(ctx, "2025-W23.xlsx")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("backend failure", func(t *testing.T) {
		storage := new(mocks.MockObjectStorage)
		storage.On("Download", ctx, "bucket", "2025-W23.xlsx").Return(nil, errors.New("timeout"))

		_, err := objectstore.NewReportStore(storage, "bucket", "").Get(ctx, "2025-W23.xlsx")
		require.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestReportStore_Put(t *testing.T) {
	ctx := context.Background()
	storage := new(mocks.MockObjectStorage)

	var got port.UploadInput
	var body []byte
	storage.On("Upload", ctx, mock.AnythingOfType("port.UploadInput")).
		Run(func(args mock.Arguments) {
			got = args.Get(1).(port.UploadInput)
			body, _ = io.ReadAll(got.Body)
		}).
		Return(&port.UploadOutput{}, nil)

	err := objectstore.NewReportStore(storage, "bucket", "reports").Put(ctx, "2025-W23.xlsx", []byte("xlsx"))
	require.NoError(t, err)
	assert.Equal(t, "bucket", got.Bucket)
	assert.Equal(t, "reports/2025-W23.xlsx", got.Key)
	assert.Equal(t, xlsxexport.ContentType, got.ContentType)
	assert.Equal(t, int64(4), got.Size)
	assert.Equal(t, "xlsx", string(body))
	storage.AssertExpectations(t)
}

func TestSheetRosterRepo_Load(t *testing.T) {
	ctx := context.Background()

	sheet, err := xlsxexport.EncodeGrid("Roster", [][]string{
		{"Name"},
		{"Smith, John"},
		{"no comma"},
		{""},
		{"Doe, Jane"},
		{"Smith, John"},
	})
	require.NoError(t, err)

	storage := new(mocks.MockObjectStorage)
	storage.On("Download", ctx, "bucket", "roster.xlsx").Return(sheet, nil)

	roster, err := objectstore.NewSheetRosterRepo(storage, "bucket", "roster.xlsx").Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.PersonKey{smith, doe}, roster.Members())
}

func TestSheetRosterRepo_LoadWithoutHeader(t *testing.T) {
	ctx := context.Background()

	sheet, err := xlsxexport.EncodeGrid("Roster", [][]string{{"Doe, Jane"}})
	require.NoError(t, err)

	storage := new(mocks.MockObjectStorage)
	storage.On("Download", ctx, "bucket", "roster.xlsx").Return(sheet, nil)

	roster, err := objectstore.NewSheetRosterRepo(storage, "bucket", "roster.xlsx").Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.PersonKey{doe}, roster.Members())
}

func TestSheetRosterRepo_LoadErrors(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		data     []byte
		err      error
		wantErr  error
		wantSize int
	}{
		{name: "missing sheet is empty", err: domain.ErrNotFound},
		{name: "storage down", err: errors.New("connection refused"), wantErr: domain.ErrRosterUnavailable},
		{name: "not a workbook", data: []byte("plain text"), wantErr: domain.ErrRosterLoad},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage := new(mocks.MockObjectStorage)
			if tt.err != nil {
				storage.On("Download", ctx, "bucket", "roster.xlsx").Return(nil, tt.err)
			} else {
				storage.On("Download", ctx, "bucket", "roster.xlsx").Return(tt.data, nil)
			}

			roster, err := objectstore.NewSheetRosterRepo(storage, "bucket", "roster.xlsx").Load(ctx)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantSize, roster.Len())
		})
	}
}

func TestSheetRosterRepo_Save(t *testing.T) {
	ctx := context.Background()
	storage := new(mocks.MockObjectStorage)

	var uploaded []byte
	storage.On("Upload", ctx, mock.AnythingOfType("port.UploadInput")).
		Run(func(args mock.Arguments) {
			in := args.Get(1).(port.UploadInput)
			uploaded, _ = io.ReadAll(in.Body)
		}).
		Return(&port.UploadOutput{}, nil)

	repo := objectstore.NewSheetRosterRepo(storage, "bucket", "roster.xlsx")
	require.NoError(t, repo.Save(ctx, domain.NewRoster(smith, doe)))

	grid, err := xlsxexport.ReadGrid(uploaded)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"name"}, {"Smith, John"}, {"Doe, Jane"}}, grid)
}

func TestSheetRosterRepo_SaveFailure(t *testing.T) {
	ctx := context.Background()
	storage := new(mocks.MockObjectStorage)
	storage.On("Upload", ctx, mock.Anything).Return(nil, errors.New("denied"))

	err := objectstore.NewSheetRosterRepo(storage, "bucket", "roster.xlsx").Save(ctx, domain.NewRoster(smith))
	assert.ErrorIs(t, err, domain.ErrRosterUnavailable)
}
