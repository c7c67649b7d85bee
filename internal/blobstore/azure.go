package blobstore

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"

	apierrors "pcnportal/internal/errors"
)

// AzureStore implements Store against an Azure Blob Storage container.
type AzureStore struct {
	client    *azblob.Client
	container string
	logger    *slog.Logger
}

// NewAzureStore builds a store from a connection string. The container is
// created if it does not already exist; failure to create is non-fatal
// because the credential may lack the permission while the container is
// already present.
func NewAzureStore(ctx context.Context, connectionString, container string, logger *slog.Logger) (*AzureStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	client, err := azblob.NewClientFromConnectionString(connectionString, nil)
	if err != nil {
		return nil, apierrors.NewBlobError("failed to create blob client", err)
	}

	s := &AzureStore{
		client:    client,
		container: container,
		logger:    logger.With(slog.String("component", "blobstore")),
	}

	if _, err := client.CreateContainer(ctx, container, nil); err != nil {
		if !bloberror.HasCode(err, bloberror.ContainerAlreadyExists) {
			s.logger.Warn("could not ensure container exists",
				slog.String("container", container),
				slog.String("error", err.Error()))
		}
	}

	return s, nil
}

// Download fetches the named blob's bytes.
func (s *AzureStore) Download(ctx context.Context, name string) ([]byte, error) {
	resp, err := s.client.DownloadStream(ctx, s.container, name, nil)
	if err != nil {
		return nil, s.mapError("download", name, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading blob %q: %v", ErrUnavailable, name, err)
	}

	s.logger.DebugContext(ctx, "blob downloaded",
		slog.String("name", name),
		slog.Int("bytes", len(data)))
	return data, nil
}

// Upload stores data under the sanitized name and returns the name used.
func (s *AzureStore) Upload(ctx context.Context, name string, data []byte, contentType string) (string, error) {
	safe := SanitizeName(name)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := s.client.UploadBuffer(ctx, s.container, safe, data, &azblob.UploadBufferOptions{
		HTTPHeaders: &blob.HTTPHeaders{BlobContentType: &contentType},
	})
	if err != nil {
		return "", s.mapError("upload", safe, err)
	}

	s.logger.InfoContext(ctx, "blob uploaded",
		slog.String("name", safe),
		slog.Int("bytes", len(data)))
	return safe, nil
}

// List returns the names of every blob in the container.
func (s *AzureStore) List(ctx context.Context) ([]string, error) {
	var names []string
	pager := s.client.NewListBlobsFlatPager(s.container, nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, s.mapError("list", s.container, err)
		}
		for _, item := range page.Segment.BlobItems {
			if item.Name != nil {
				names = append(names, *item.Name)
			}
		}
	}
	return names, nil
}

// mapError translates Azure service errors onto the package sentinels.
func (s *AzureStore) mapError(op, name string, err error) error {
	switch {
	case bloberror.HasCode(err, bloberror.BlobNotFound, bloberror.ContainerNotFound):
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	case bloberror.HasCode(err, bloberror.AuthenticationFailed, bloberror.AuthorizationFailure, bloberror.ServerBusy, bloberror.InternalError):
		return fmt.Errorf("%w: %s %q: %v", ErrUnavailable, op, name, err)
	default:
		return fmt.Errorf("%w: %s %q: %v", ErrUnavailable, op, name, err)
	}
}
