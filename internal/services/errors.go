package services

import "errors"

// Service errors
var (
	// Penalty errors
	ErrPenaltyNotFound = errors.New("penalty not found")

	// File errors
	ErrNoFilesFound    = errors.New("no files found")
	ErrFileNotFound    = errors.New("file not found")
	ErrInvalidFileType = errors.New("invalid file type")

	// General errors
	ErrInvalidInput       = errors.New("invalid input")
	ErrOperationTimeout   = errors.New("operation timed out")
	ErrServiceUnavailable = errors.New("service temporarily unavailable")
)
