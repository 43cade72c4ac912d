// Package filestore provides an abstraction for file storage operations.
//
// It defines a FileStore interface that can be implemented by various
// storage backends (e.g., MinIO, S3, local filesystem). The interface
// is designed to be injected into different components across project layers.
package filestore

import (
	"context"
	"io"
	"time"
)

// FileStore defines the interface for file storage operations.
// Implementations must be safe for concurrent use.
type FileStore interface {
	// Put uploads a file to the specified key with a known size and content type.
	// Returns the file info after successful upload, including the backend
	// version id when the bucket is versioned.
	Put(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (*FileInfo, error)

	// Get retrieves a file and its metadata from the specified key.
	// An empty versionID reads the latest object; a non-empty one reads the
	// exact stored version. The caller is responsible for closing File.Content.
	Get(ctx context.Context, key string, versionID string) (*File, error)

	// Delete removes a file at the specified key.
	Delete(ctx context.Context, key string) error

	// Exists checks if a file exists at the specified key.
	Exists(ctx context.Context, key string) (bool, error)
}

// File represents a stored file with its content and metadata.
type File struct {
	Content io.ReadCloser
	Info    FileInfo
}

// FileInfo contains metadata about a stored file.
type FileInfo struct {
	Key          string
	Size         int64
	ContentType  string
	ETag         string
	VersionID    string
	LastModified time.Time
}
