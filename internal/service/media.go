package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"mediaapi/internal/mediafile"
	"mediaapi/internal/model"
	"mediaapi/internal/repository"
	"mediaapi/internal/storage"
)

var (
	ErrIDRequired  = errors.New("id is required")
	ErrNotFound    = errors.New("media not found")
	ErrReaderNil   = errors.New("reader is nil")
	ErrURLRequired = errors.New("url is required")
)

const defaultContentType = "application/octet-stream"

// MediaListResult is the service-level DTO for paginated media.
type MediaListResult struct {
	Items []model.Media `json:"data"`
	Total int           `json:"total"`
}

// Fetcher moves bytes into storage. It is satisfied by *mediafile.Fetcher.
type Fetcher interface {
	FetchRequestData(ctx context.Context, body io.ReadCloser, mf model.MediaFile, key string) error
	FetchFileFromURL(ctx context.Context, mf model.MediaFile, rawURL, key string) (model.MediaFile, error)
}

// MediaService defines the use cases for ingesting and serving media.
type MediaService interface {
	// UploadFromRequest stores a request body whose size was declared up front, then saves metadata.
	// The stored object is removed again if the transfer or the metadata save fails.
	UploadFromRequest(ctx context.Context, r io.Reader, originalFilename, contentType string, size int64) (*model.Media, error)

	// UploadFromURL downloads a remote file after checking the URL, then saves metadata.
	// fileName may be empty, in which case the last URL path segment is used.
	UploadFromURL(ctx context.Context, rawURL, fileName string) (*model.Media, error)

	// List returns media using limit/offset and a total count.
	List(ctx context.Context, limit, offset int) (*MediaListResult, error)

	// Get returns a single media record by its ID.
	Get(ctx context.Context, id string) (*model.Media, error)

	// Open returns the stored content of a media record.
	Open(ctx context.Context, id string) (io.ReadCloser, *model.Media, error)

	// Link returns a time-limited download URL for a media record.
	Link(ctx context.Context, id string, expiry time.Duration) (string, error)

	// Delete removes a media record from both storage and repository.
	Delete(ctx context.Context, id string) error
}

type mediaService struct {
	fetcher   Fetcher
	store     storage.Storage
	repo      repository.MediaRepository
	keyPrefix string
}

// NewMediaService constructs a new MediaService. Objects are stored below keyPrefix.
func NewMediaService(fetcher Fetcher, store storage.Storage, repo repository.MediaRepository, keyPrefix string) MediaService {
	return &mediaService{fetcher: fetcher, store: store, repo: repo, keyPrefix: keyPrefix}
}

func (s *mediaService) UploadFromRequest(ctx context.Context, r io.Reader, originalFilename, contentType string, size int64) (*model.Media, error) {
	if r == nil {
		return nil, ErrReaderNil
	}
	if contentType == "" {
		contentType = defaultContentType
	}

	id := uuid.New().String()
	name, ext := splitFileName(originalFilename)
	key := s.objectKey(id, ext)

	mf := model.MediaFile{FileName: name, MimeType: contentType, Extension: ext, Size: size}
	if err := s.fetcher.FetchRequestData(ctx, readCloser(r), mf, key); err != nil {
		return nil, s.discard(ctx, key, fmt.Errorf("store media: %w", err))
	}

	return s.save(ctx, key, &model.Media{
		ID:          id,
		FileName:    mf.FileName,
		Extension:   mf.Extension,
		StoragePath: key,
		MimeType:    mf.MimeType,
		Size:        mf.Size,
		CreatedAt:   time.Now().UTC(),
	})
}

func (s *mediaService) UploadFromURL(ctx context.Context, rawURL, fileName string) (*model.Media, error) {
	if rawURL == "" {
		return nil, ErrURLRequired
	}
	if fileName == "" {
		fileName = fileNameFromURL(rawURL)
	}

	id := uuid.New().String()
	name, ext := splitFileName(fileName)
	key := s.objectKey(id, ext)

	fetched, err := s.fetcher.FetchFileFromURL(ctx, model.MediaFile{FileName: name, Extension: ext}, rawURL, key)
	if err != nil {
		err = fmt.Errorf("fetch media: %w", err)
		// Nothing was written when the URL was rejected up front.
		if errors.Is(err, mediafile.ErrMalformedURL) || errors.Is(err, mediafile.ErrUnreachableURL) {
			return nil, err
		}
		return nil, s.discard(ctx, key, err)
	}

	return s.save(ctx, key, &model.Media{
		ID:          id,
		FileName:    fetched.FileName,
		Extension:   fetched.Extension,
		StoragePath: key,
		MimeType:    fetched.MimeType,
		Size:        fetched.Size,
		SourceURL:   rawURL,
		CreatedAt:   time.Now().UTC(),
	})
}

// save persists metadata and rolls back the stored object if that fails.
func (s *mediaService) save(ctx context.Context, key string, m *model.Media) (*model.Media, error) {
	stored, err := s.repo.Create(ctx, m)
	if err != nil {
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}
	return stored, nil
}

// discard removes a partially written object and returns cause, annotated if cleanup failed.
func (s *mediaService) discard(ctx context.Context, key string, cause error) error {
	if delErr := s.store.Delete(ctx, key); delErr != nil {
		return fmt.Errorf("%w; cleanup failed: %v", cause, delErr)
	}
	return cause
}

func (s *mediaService) objectKey(id, ext string) string {
	name := id
	if ext != "" {
		name += "." + ext
	}
	return path.Join(s.keyPrefix, name)
}

// List returns paginated media without exposing repository types.
func (s *mediaService) List(ctx context.Context, limit, offset int) (*MediaListResult, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.repo.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &MediaListResult{Items: res.Items, Total: res.Total}, nil
}

// Get returns a media record by ID.
func (s *mediaService) Get(ctx context.Context, id string) (*model.Media, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return m, nil
}

func (s *mediaService) Open(ctx context.Context, id string) (io.ReadCloser, *model.Media, error) {
	m, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	rc, _, err := s.store.Get(ctx, m.StoragePath)
	if err != nil {
		return nil, nil, fmt.Errorf("open storage: %w", err)
	}
	return rc, m, nil
}

func (s *mediaService) Link(ctx context.Context, id string, expiry time.Duration) (string, error) {
	m, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return s.store.PresignGet(ctx, m.StoragePath, expiry)
}

// Delete removes a media object from storage, then deletes its record.
func (s *mediaService) Delete(ctx context.Context, id string) error {
	m, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	// Delete from storage first; if this fails, keep DB row to avoid orphaned storage reference loss
	if err := s.store.Delete(ctx, m.StoragePath); err != nil {
		return fmt.Errorf("delete storage: %w", err)
	}
	return s.repo.Delete(ctx, id)
}

// splitFileName turns "logo.final.PNG" into ("logo.final", "png").
func splitFileName(name string) (string, string) {
	name = path.Base(strings.ReplaceAll(name, `\`, "/"))
	if name == "." || name == "/" {
		return "", ""
	}
	ext := path.Ext(name)
	base := strings.TrimSuffix(name, ext)
	if base == "" {
		// dotfiles such as ".htaccess" have no extension
		return name, ""
	}
	return base, strings.ToLower(strings.TrimPrefix(ext, "."))
}

func fileNameFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	base := path.Base(u.Path)
	if base == "." || base == "/" {
		return ""
	}
	return base
}

func readCloser(r io.Reader) io.ReadCloser {
	if rc, ok := r.(io.ReadCloser); ok {
		return rc
	}
	return io.NopCloser(r)
}
