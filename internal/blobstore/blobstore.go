// Package blobstore provides access to the workbook container. The ingestion
// layer depends only on the Store interface and the sentinel errors, so the
// Azure client can be replaced by a fake in tests.
package blobstore

import (
	"context"
	"errors"
	"regexp"
)

// Sentinel errors distinguish "the named object does not exist" from "the
// store cannot be reached or authenticated"; the transport layer maps them
// to 404 and 503 respectively.
var (
	ErrNotFound    = errors.New("blob not found")
	ErrUnavailable = errors.New("blob store unavailable")
)

// Store is the contract the ingestion driver consumes.
type Store interface {
	// Download fetches the named object's bytes. Fails with ErrNotFound if
	// the object does not exist, ErrUnavailable if the store is unreachable.
	Download(ctx context.Context, name string) ([]byte, error)

	// Upload stores the given bytes under the (sanitized) name and returns
	// the name actually used.
	Upload(ctx context.Context, name string, data []byte, contentType string) (string, error)

	// List returns the names of all objects in the container.
	List(ctx context.Context) ([]string, error)
}

var unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// SanitizeName replaces path separators and other unsafe characters in a
// blob name, preventing traversal via user-supplied file names.
func SanitizeName(name string) string {
	return unsafeNameChars.ReplaceAllString(name, "_")
}
