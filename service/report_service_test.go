package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"io/fs"
	"path/filepath"
	"testing"
	"time"

	"relviz-backend/models"
	"relviz-backend/repository"
	"relviz-backend/storage"
	"relviz-backend/workbook"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 10, 19, 14, 5, 9, 0, time.UTC)

// failingRepository rejects every write
type failingRepository struct {
	repository.ExportRepository
}

func (failingRepository) Create(ctx context.Context, export *models.Export) error {
	return errors.New("database down")
}

func newArchiveService(t *testing.T, repo repository.ExportRepository) (*ReportService, string) {
	t.Helper()
	dir := t.TempDir()
	st, err := storage.NewLocalStorage(dir)
	require.NoError(t, err)

	svc := NewReportService(
		WithExportRepository(repo),
		WithStorage(st),
		WithClock(func() time.Time { return fixedNow }),
	)
	return svc, dir
}

func TestReportService_BuildExport(t *testing.T) {
	svc := NewReportService(
		WithFilenamePrefix("договор"),
		WithClock(func() time.Time { return fixedNow }),
	)

	file, err := svc.BuildExport(loadFixture(t))
	require.NoError(t, err)

	assert.Equal(t, "договор_20261019_140509.xlsx", file.Filename)
	assert.Equal(t, "application/vnd.ms-excel", file.MimeType)
	assert.NotEmpty(t, file.Data)

	counts, err := workbook.CountRows(bytes.NewReader(file.Data))
	require.NoError(t, err)
	assert.Equal(t, file.Totals.Rights, counts[workbook.SheetRights])
	assert.Equal(t, file.Totals.Duties, counts[workbook.SheetDuties])
	assert.Equal(t, file.Totals.Goals, counts[workbook.SheetGoals])
	assert.Equal(t, file.Totals.Objects, counts[workbook.SheetObjects])
	assert.Equal(t, file.Totals.Subjects, counts[workbook.SheetSubjects])
}

func TestReportService_BuildExportKeepsEmptyValues(t *testing.T) {
	raw := []byte(`[{"правоотношение": {
		"потребности_цели": ["Доход", ""],
		"объекты": ["Помещение", null],
		"обязанности": [{"описание_обязанности": "Платить", "обеспечиваемые_права": [{}]}]
	}}]`)

	file, err := NewReportService().BuildExport(raw)
	require.NoError(t, err)
	require.Equal(t, 2, file.Totals.Goals)
	require.Equal(t, 2, file.Totals.Objects)

	counts, err := workbook.CountRows(bytes.NewReader(file.Data))
	require.NoError(t, err)
	assert.Equal(t, file.Totals.Goals, counts[workbook.SheetGoals])
	assert.Equal(t, file.Totals.Objects, counts[workbook.SheetObjects])
	assert.Equal(t, file.Totals.Duties, counts[workbook.SheetDuties])
}

func TestReportService_BuildExportMalformed(t *testing.T) {
	_, err := NewReportService().BuildExport([]byte(`[{"источник": "a"},]`))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedInput)
}

func TestReportService_ArchiveAndFetch(t *testing.T) {
	svc, _ := newArchiveService(t, repository.NewMemoryExportRepository(time.Hour))
	ctx := context.Background()

	export, err := svc.ArchiveExport(ctx, loadFixture(t))
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, export.ID)
	assert.Equal(t, "анализ_правоотношений_20261019_140509.xlsx", export.Filename)
	assert.Equal(t, 2, export.RelationCount)
	assert.Equal(t, 3, export.RightRows)
	assert.Equal(t, 3, export.DutyRows)

	got, reader, err := svc.GetExport(ctx, export.ID)
	require.NoError(t, err)
	defer reader.Close()

	data, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, export.Size, int64(len(data)))
	assert.Equal(t, export.Filename, got.Filename)

	exports, err := svc.ListExports(ctx, 10)
	require.NoError(t, err)
	require.Len(t, exports, 1)
	assert.Equal(t, export.ID, exports[0].ID)
}

func TestReportService_ArchiveCleansUpOnRepositoryFailure(t *testing.T) {
	svc, dir := newArchiveService(t, failingRepository{})

	_, err := svc.ArchiveExport(context.Background(), loadFixture(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database down")

	var files []string
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err == nil && !d.IsDir() {
			files = append(files, path)
		}
		return err
	})
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestReportService_ArchiveUnavailable(t *testing.T) {
	svc := NewReportService()

	_, err := svc.ArchiveExport(context.Background(), []byte("[]"))
	assert.ErrorIs(t, err, ErrArchiveUnavailable)

	_, _, err = svc.GetExport(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrArchiveUnavailable)
}

func TestReportService_GetExportNotFound(t *testing.T) {
	svc, _ := newArchiveService(t, repository.NewMemoryExportRepository(time.Hour))

	_, _, err := svc.GetExport(context.Background(), uuid.New())
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func countFiles(t *testing.T, dir string) int {
	t.Helper()
	n := 0
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err == nil && !d.IsDir() {
			n++
		}
		return err
	})
	require.NoError(t, err)
	return n
}

func TestReportService_DeleteExport(t *testing.T) {
	svc, dir := newArchiveService(t, repository.NewMemoryExportRepository(time.Hour))
	ctx := context.Background()

	export, err := svc.ArchiveExport(ctx, loadFixture(t))
	require.NoError(t, err)
	require.Equal(t, 1, countFiles(t, dir))

	require.NoError(t, svc.DeleteExport(ctx, export.ID))
	assert.Equal(t, 0, countFiles(t, dir))

	_, _, err = svc.GetExport(ctx, export.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, svc.DeleteExport(ctx, export.ID), repository.ErrNotFound)
}

func TestReportService_ExpiredExportRemovesFile(t *testing.T) {
	repo := repository.NewMemoryExportRepository(30 * time.Millisecond)
	svc, dir := newArchiveService(t, repo)
	repo.OnEvicted(svc.RemoveExportFile)

	_, err := svc.ArchiveExport(context.Background(), loadFixture(t))
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		return countFiles(t, dir) == 0
	}, 2*time.Second, 10*time.Millisecond)
}

// countingRepository records the limit it was asked for
type countingRepository struct {
	repository.ExportRepository
	limit int
}

func (r *countingRepository) ListRecent(ctx context.Context, limit int) ([]*models.Export, error) {
	r.limit = limit
	return nil, nil
}

func TestReportService_ListExportsLimit(t *testing.T) {
	tests := []struct {
		requested int
		want      int
	}{
		{0, 20},
		{-3, 20},
		{50, 50},
		{100, 100},
		{150, 100},
	}

	for _, tc := range tests {
		repo := &countingRepository{}
		svc := NewReportService(WithExportRepository(repo))

		_, err := svc.ListExports(context.Background(), tc.requested)
		require.NoError(t, err)
		assert.Equal(t, tc.want, repo.limit, "requested %d", tc.requested)
	}
}
