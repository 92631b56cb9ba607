package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"relviz-backend/models"
	"relviz-backend/repository"
	"relviz-backend/storage"
	"relviz-backend/workbook"

	"github.com/google/uuid"
)

// ErrArchiveUnavailable is returned when export archiving is not configured
var ErrArchiveUnavailable = errors.New("export archive not configured")

// ReportService runs the ingest → flatten → present/export pipeline
type ReportService struct {
	exportRepo     repository.ExportRepository
	storage        storage.Storage
	filenamePrefix string
	now            func() time.Time
}

// ReportServiceOption is a functional option for ReportService
type ReportServiceOption func(*ReportService)

// WithExportRepository sets the export metadata repository
func WithExportRepository(repo repository.ExportRepository) ReportServiceOption {
	return func(s *ReportService) {
		s.exportRepo = repo
	}
}

// WithStorage sets the blob storage used for archived exports
func WithStorage(st storage.Storage) ReportServiceOption {
	return func(s *ReportService) {
		s.storage = st
	}
}

// WithFilenamePrefix sets the prefix of generated workbook filenames
func WithFilenamePrefix(prefix string) ReportServiceOption {
	return func(s *ReportService) {
		if prefix != "" {
			s.filenamePrefix = prefix
		}
	}
}

// WithClock overrides the time source used for filenames
func WithClock(now func() time.Time) ReportServiceOption {
	return func(s *ReportService) {
		s.now = now
	}
}

// NewReportService creates a new report service
func NewReportService(opts ...ReportServiceOption) *ReportService {
	s := &ReportService{
		filenamePrefix: workbook.DefaultPrefix,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Analysis is the result of one pipeline pass over an input document
type Analysis struct {
	Relations []models.Relation
	Report    *Report
	Aggregate *models.Aggregate
}

// ExportFile is a generated workbook ready for download
type ExportFile struct {
	Filename string
	MimeType string
	Data     []byte
	Totals   models.Totals
}

// Analyze parses the input and builds the report and the aggregate
func (s *ReportService) Analyze(raw []byte) (*Analysis, error) {
	relations, err := ParseRelations(raw)
	if err != nil {
		return nil, err
	}

	report, agg := Present(relations)
	return &Analysis{
		Relations: relations,
		Report:    report,
		Aggregate: agg,
	}, nil
}

// BuildExport analyzes the input and serializes the aggregate to a workbook
func (s *ReportService) BuildExport(raw []byte) (*ExportFile, error) {
	analysis, err := s.Analyze(raw)
	if err != nil {
		return nil, err
	}
	return s.exportFile(analysis)
}

func (s *ReportService) exportFile(analysis *Analysis) (*ExportFile, error) {
	data, err := workbook.Build(analysis.Aggregate)
	if err != nil {
		return nil, fmt.Errorf("failed to build workbook: %w", err)
	}

	return &ExportFile{
		Filename: workbook.Filename(s.filenamePrefix, s.now()),
		MimeType: workbook.MimeType,
		Data:     data,
		Totals:   analysis.Report.Totals,
	}, nil
}

// ArchiveExport builds a workbook, uploads it and records its metadata
func (s *ReportService) ArchiveExport(ctx context.Context, raw []byte) (*models.Export, error) {
	if s.exportRepo == nil || s.storage == nil {
		return nil, ErrArchiveUnavailable
	}

	file, err := s.BuildExport(raw)
	if err != nil {
		return nil, err
	}

	exportID := uuid.New()
	storagePath, err := s.storage.Upload(ctx, exportID, file.Filename, bytes.NewReader(file.Data))
	if err != nil {
		return nil, fmt.Errorf("failed to upload export: %w", err)
	}

	export := &models.Export{
		ID:          exportID,
		Filename:    file.Filename,
		MimeType:    file.MimeType,
		Size:        int64(len(file.Data)),
		StoragePath: storagePath,
	}
	export.SetTotals(file.Totals)

	if err := s.exportRepo.Create(ctx, export); err != nil {
		// Try to clean up uploaded workbook
		if delErr := s.storage.Delete(ctx, storagePath); delErr != nil {
			log.Printf("Warning: failed to remove orphaned export %s: %v", storagePath, delErr)
		}
		return nil, fmt.Errorf("failed to save export record: %w", err)
	}

	log.Printf("Archived export %s (%s, %d bytes)", export.ID, export.Filename, export.Size)
	return export, nil
}

// GetExport returns an archived export and a reader over its workbook
func (s *ReportService) GetExport(ctx context.Context, id uuid.UUID) (*models.Export, io.ReadCloser, error) {
	if s.exportRepo == nil || s.storage == nil {
		return nil, nil, ErrArchiveUnavailable
	}

	export, err := s.exportRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	reader, err := s.storage.Download(ctx, export.StoragePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to download export: %w", err)
	}
	return export, reader, nil
}

// ListExports returns the most recent archived exports
func (s *ReportService) ListExports(ctx context.Context, limit int) ([]*models.Export, error) {
	if s.exportRepo == nil {
		return nil, ErrArchiveUnavailable
	}
	switch {
	case limit <= 0:
		limit = 20
	case limit > 100:
		limit = 100
	}
	return s.exportRepo.ListRecent(ctx, limit)
}

// DeleteExport removes an archived export record and its workbook
func (s *ReportService) DeleteExport(ctx context.Context, id uuid.UUID) error {
	if s.exportRepo == nil || s.storage == nil {
		return ErrArchiveUnavailable
	}

	export, err := s.exportRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.exportRepo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.storage.Delete(ctx, export.StoragePath); err != nil {
		return fmt.Errorf("failed to delete export file: %w", err)
	}

	log.Printf("Deleted export %s", id)
	return nil
}

// RemoveExportFile deletes the workbook of an export whose record is gone.
// It is registered as the eviction hook of the in-memory repository.
func (s *ReportService) RemoveExportFile(export *models.Export) {
	if s.storage == nil || export.StoragePath == "" {
		return
	}
	if err := s.storage.Delete(context.Background(), export.StoragePath); err != nil {
		log.Printf("Warning: failed to remove expired export %s: %v", export.StoragePath, err)
		return
	}
	log.Printf("Removed export file %s", export.StoragePath)
}
