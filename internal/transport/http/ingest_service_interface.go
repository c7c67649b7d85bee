package http

import (
	"context"

	"pcnportal/internal/ingestion"
	"pcnportal/pkg/contracts/domain"
)

// IngestServiceInterface is the contract the penalty handler needs from the
// ingestion driver.
type IngestServiceInterface interface {
	// SearchFromFile fetches a workbook from the blob store and returns the
	// rows matching the given filters.
	SearchFromFile(ctx context.Context, fileName, ticketNo, vrm string) ([]domain.Penalty, error)

	// BulkIngest upserts every data row of the named workbook into the
	// record store.
	BulkIngest(ctx context.Context, fileName string) (ingestion.Result, error)

	// UploadAndIngest stores an uploaded workbook and immediately ingests
	// it, returning the stored blob name.
	UploadAndIngest(ctx context.Context, fileName string, data []byte, contentType string) (string, ingestion.Result, error)

	// ProcessNewFiles ingests every workbook currently in the container.
	ProcessNewFiles(ctx context.Context) (ingestion.ProcessReport, error)

	// ListFiles lists the blobs in the container.
	ListFiles(ctx context.Context) ([]string, error)
}

// PenaltyReaderInterface is the persisted-store search contract. Unlike the
// spreadsheet path this one is substring matched.
type PenaltyReaderInterface interface {
	Search(ctx context.Context, ticketNo, vrm string) ([]domain.Penalty, error)
}
