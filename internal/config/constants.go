package config

import "time"

// Application constants for the PCN portal ingestion service
const (
	// Application Info
	AppName    = "PCN Portal"
	AppVersion = "1.0.0"

	// Upload Constraints
	DefaultMaxUploadBytes = 10 << 20 // 10MB
	UploadFieldName       = "file"

	// Accepted workbook content types
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypeXLS  = "application/vnd.ms-excel"

	// Rate Limiting
	DefaultRateLimit = 100 // requests per minute
	DefaultBurstSize = 50

	// Network Timeouts
	DefaultHTTPTimeout   = 30 * time.Second
	BlobOperationTimeout = 60 * time.Second
	DatabaseQueryTimeout = 10 * time.Second
	IngestSweepTimeout   = 10 * time.Minute

	// Default blob container
	DefaultContainer  = "uploads"
	DefaultLookupFile = "lookup.xlsx"
)

// WorkbookExtensions lists the file extensions accepted for ingestion.
var WorkbookExtensions = []string{".xlsx", ".xls"}
