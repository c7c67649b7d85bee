// Package ingestion orchestrates fetching penalty workbooks from the blob
// container, scanning their rows and either returning matches (search) or
// upserting records into the store (bulk ingest).
package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"pcnportal/internal/blobstore"
	"pcnportal/internal/config"
	"pcnportal/internal/metrics"
	"pcnportal/internal/spreadsheet"
	"pcnportal/pkg/contracts/domain"
)

// PenaltyStore is the slice of the record store the driver needs: lookup by
// the natural key plus create/update for the upsert.
type PenaltyStore interface {
	GetByTicketNo(ctx context.Context, ticketNo string) (domain.Penalty, error)
	Create(ctx context.Context, ins domain.PenaltyInsert) (domain.Penalty, error)
	Update(ctx context.Context, id string, ins domain.PenaltyInsert) (domain.Penalty, error)
}

// NotFoundChecker reports whether an error from the store means "no such
// record" as opposed to a real failure.
type NotFoundChecker func(error) bool

// Result aggregates one bulk run: rows upserted plus the human-readable
// message for every row that was rejected. A rejected row never aborts the
// batch.
type Result struct {
	Processed int      `json:"processed"`
	Errors    []string `json:"errors"`
}

// FileResult is a Result tied to a named workbook, used when sweeping the
// whole container.
type FileResult struct {
	File      string   `json:"file"`
	Processed int      `json:"processed"`
	Errors    []string `json:"errors"`
}

// ProcessReport aggregates a container sweep.
type ProcessReport struct {
	FilesProcessed []string     `json:"filesProcessed"`
	Results        []FileResult `json:"results"`
}

// Service is the ingestion driver.
type Service struct {
	blobs      blobstore.Store
	penalties  PenaltyStore
	isNotFound NotFoundChecker
	logger     *slog.Logger
}

// NewService creates an ingestion driver.
func NewService(blobs blobstore.Store, penalties PenaltyStore, isNotFound NotFoundChecker, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		blobs:      blobs,
		penalties:  penalties,
		isNotFound: isNotFound,
		logger:     logger.With(slog.String("component", "ingestion")),
	}
}

// SearchFromFile fetches the named workbook and returns every row matching
// the optional ticket number and VRM filters, in sheet order. Fetch and
// decode failures are fatal for the call; per-row normalization never is.
func (s *Service) SearchFromFile(ctx context.Context, fileName, ticketNo, vrm string) ([]domain.Penalty, error) {
	data, err := s.blobs.Download(ctx, fileName)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch workbook %q: %w", fileName, err)
	}

	rows, err := spreadsheet.DecodeFirstSheet(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode workbook %q: %w", fileName, err)
	}

	results := spreadsheet.Match(rows, spreadsheet.SearchLayout, strings.TrimSpace(ticketNo), strings.TrimSpace(vrm))

	metrics.SpreadsheetSearches.Inc()
	s.logger.InfoContext(ctx, "workbook search complete",
		slog.String("file", fileName),
		slog.Int("rows", len(rows)),
		slog.Int("matches", len(results)))

	return results, nil
}

// BulkIngest fetches the named workbook and upserts every well-formed row
// into the record store, keyed by ticket number. Rows are processed in
// sheet order so a later duplicate ticket updates the earlier one. Row
// numbers in error messages are 1-based and count the header, so the first
// data row is reported as row 2.
func (s *Service) BulkIngest(ctx context.Context, fileName string) (Result, error) {
	data, err := s.blobs.Download(ctx, fileName)
	if err != nil {
		return Result{}, fmt.Errorf("failed to fetch workbook %q: %w", fileName, err)
	}

	rows, err := spreadsheet.DecodeFirstSheet(data)
	if err != nil {
		return Result{}, fmt.Errorf("failed to decode workbook %q: %w", fileName, err)
	}

	result := Result{Errors: []string{}}
	layout := spreadsheet.BulkLayout

	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		rowNum := i + 1

		ticketNo := cellAt(row, layout.TicketNo)
		vrm := cellAt(row, layout.VRM)
		rawAmount := cellAt(row, layout.Amount)

		if ticketNo == "" || vrm == "" || rawAmount == "" {
			result.Errors = append(result.Errors,
				fmt.Sprintf("Row %d: Missing required fields (Ticket No, VRM, or Penalty Amount)", rowNum))
			metrics.RowErrors.WithLabelValues("missing_fields").Inc()
			continue
		}

		amount := spreadsheet.NormalizeAmount(rawAmount)
		if v, err := strconv.ParseFloat(amount, 64); err != nil || v <= 0 {
			result.Errors = append(result.Errors,
				fmt.Sprintf("Row %d: Invalid penalty amount", rowNum))
			metrics.RowErrors.WithLabelValues("invalid_amount").Inc()
			continue
		}

		ins := domain.PenaltyInsert{
			TicketNo:          ticketNo,
			VRM:               strings.ToUpper(vrm),
			VehicleMake:       cellAt(row, layout.VehicleMake),
			PenaltyAmount:     amount,
			ContraventionDate: spreadsheet.NormalizeDate(cellAt(row, layout.Date)).Value,
			Site:              cellAt(row, layout.Site),
			ReasonForIssue:    cellAt(row, layout.ReasonForIssue),
			BadgeID:           cellAt(row, layout.BadgeID),
			Status:            domain.PenaltyStatusActive,
		}

		if err := s.upsert(ctx, ins); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %s", rowNum, err.Error()))
			metrics.RowErrors.WithLabelValues("store_error").Inc()
			continue
		}

		result.Processed++
		metrics.RowsIngested.Inc()
	}

	s.logger.InfoContext(ctx, "bulk ingest complete",
		slog.String("file", fileName),
		slog.Int("processed", result.Processed),
		slog.Int("errors", len(result.Errors)))

	return result, nil
}

// upsert updates the record holding this ticket number if one exists,
// otherwise creates it.
func (s *Service) upsert(ctx context.Context, ins domain.PenaltyInsert) error {
	existing, err := s.penalties.GetByTicketNo(ctx, ins.TicketNo)
	switch {
	case err == nil:
		_, err = s.penalties.Update(ctx, existing.ID, ins)
		return err
	case s.isNotFound != nil && s.isNotFound(err):
		_, err = s.penalties.Create(ctx, ins)
		return err
	default:
		return err
	}
}

// UploadAndIngest stores an uploaded workbook in the container and then
// bulk-ingests it in one call.
func (s *Service) UploadAndIngest(ctx context.Context, fileName string, data []byte, contentType string) (string, Result, error) {
	stored, err := s.blobs.Upload(ctx, fileName, data, contentType)
	if err != nil {
		return "", Result{}, fmt.Errorf("failed to store workbook %q: %w", fileName, err)
	}

	result, err := s.BulkIngest(ctx, stored)
	if err != nil {
		return stored, Result{}, err
	}
	return stored, result, nil
}

// ProcessNewFiles sweeps the container and bulk-ingests every workbook in
// it. A file-level failure is recorded in that file's result and does not
// stop the sweep.
func (s *Service) ProcessNewFiles(ctx context.Context) (ProcessReport, error) {
	names, err := s.blobs.List(ctx)
	if err != nil {
		return ProcessReport{}, fmt.Errorf("failed to list container: %w", err)
	}

	report := ProcessReport{FilesProcessed: []string{}, Results: []FileResult{}}
	for _, name := range names {
		if !isWorkbook(name) {
			continue
		}

		result, err := s.BulkIngest(ctx, name)
		if err != nil {
			s.logger.WarnContext(ctx, "workbook ingest failed",
				slog.String("file", name),
				slog.String("error", err.Error()))
			report.Results = append(report.Results, FileResult{
				File:   name,
				Errors: []string{err.Error()},
			})
			metrics.FilesIngested.WithLabelValues("failed").Inc()
			continue
		}

		report.FilesProcessed = append(report.FilesProcessed, name)
		report.Results = append(report.Results, FileResult{
			File:      name,
			Processed: result.Processed,
			Errors:    result.Errors,
		})
		metrics.FilesIngested.WithLabelValues("ok").Inc()
	}

	return report, nil
}

// ListFiles returns the container contents.
func (s *Service) ListFiles(ctx context.Context) ([]string, error) {
	names, err := s.blobs.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list container: %w", err)
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}

func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func isWorkbook(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range config.WorkbookExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}
