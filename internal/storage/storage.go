package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

// Package storage contains file/object storage abstractions for ingested media.
// Writers are streaming: data goes straight to the backend without being buffered whole in memory.

// ErrNotSupported is returned by backends that cannot serve an optional capability.
var ErrNotSupported = errors.New("operation not supported by storage backend")

// CreateOptions define optional parameters for new objects.
// Size should be the exact number of bytes if known; if unknown, set to -1 and the implementation
// will buffer/chunk as supported by the backend.
// ContentType and Metadata are optional.
type CreateOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo contains basic information about an object in storage.
type ObjectInfo struct {
	Key          string
	Size         int64
	ETag         string
	ContentType  string
	LastModified time.Time
	Metadata     map[string]string
}

// Storage is the destination side of a media transfer.
type Storage interface {
	// Create opens key for writing. Content becomes visible once the returned writer is closed;
	// Close reports any error the backend hit while persisting.
	Create(ctx context.Context, key string, opt CreateOptions) (io.WriteCloser, error)
	// Get retrieves an object's content as a streaming reader alongside its info.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
	// Delete removes an object by key. Missing objects are not an error.
	Delete(ctx context.Context, key string) error
	// PresignGet returns a time-limited URL that can be used to download the object without credentials.
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
}
