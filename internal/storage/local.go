package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"
)

// LocalStorage keeps objects as plain files below a root directory.
// Keys are slash separated and map onto sub directories.
type LocalStorage struct {
	root   string
	logger *zap.Logger
}

// NewLocal creates the root directory if needed and returns a filesystem backed Storage.
func NewLocal(root string, logger *zap.Logger) (*LocalStorage, error) {
	if root == "" {
		return nil, fmt.Errorf("local storage root is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve storage root: %w", err)
	}
	if err := os.MkdirAll(abs, 0755); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}
	return &LocalStorage{root: abs, logger: logger}, nil
}

var _ Storage = (*LocalStorage)(nil)

// Create opens a new file for key, truncating any previous content.
func (s *LocalStorage) Create(_ context.Context, key string, _ CreateOptions) (io.WriteCloser, error) {
	path, err := s.pathFor(key)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		s.logger.Error("Error creating directory", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("could not create directory structure: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		s.logger.Error("Error opening file", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("could not create file: %w", err)
	}

	s.logger.Debug("File opened for writing", zap.String("key", key), zap.String("path", path))
	return &syncedFile{File: f}, nil
}

// Get opens key for reading. ContentType is sniffed from the file content.
func (s *LocalStorage) Get(_ context.Context, key string) (io.ReadCloser, ObjectInfo, error) {
	path, err := s.pathFor(key)
	if err != nil {
		return nil, ObjectInfo{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, ObjectInfo{}, err
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, ObjectInfo{}, err
	}

	contentType := "application/octet-stream"
	if mt, err := mimetype.DetectFile(path); err == nil {
		contentType = mt.String()
	}

	return f, ObjectInfo{
		Key:          key,
		Size:         st.Size(),
		ContentType:  contentType,
		LastModified: st.ModTime(),
	}, nil
}

// Delete removes the file for key; a missing file is ignored.
func (s *LocalStorage) Delete(_ context.Context, key string) error {
	path, err := s.pathFor(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		s.logger.Error("Error removing file", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// PresignGet is not available for files on local disk.
func (s *LocalStorage) PresignGet(context.Context, string, time.Duration) (string, error) {
	return "", ErrNotSupported
}

// pathFor maps key below root and rejects keys escaping it.
func (s *LocalStorage) pathFor(key string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("object key is required")
	}
	path := filepath.Clean(filepath.Join(s.root, filepath.FromSlash(key)))
	if !strings.HasPrefix(path, s.root+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid key %q: potential path traversal", key)
	}
	return path, nil
}

// syncedFile flushes to disk before closing so a nil Close means the data is durable.
type syncedFile struct {
	*os.File
}

func (f *syncedFile) Close() error {
	syncErr := f.File.Sync()
	closeErr := f.File.Close()
	if syncErr != nil {
		return syncErr
	}
	return closeErr
}
