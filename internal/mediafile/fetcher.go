package mediafile

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"mediaapi/internal/model"
	"mediaapi/internal/storage"
)

const (
	sourceRequest = "request"
	sourceURL     = "url"
)

// Fetcher moves media into storage, either from an incoming request body or from a remote URL.
type Fetcher struct {
	store   storage.Storage
	client  *http.Client
	prober  *Prober
	logger  *zap.Logger
	metrics *Metrics
	tracer  trace.Tracer
}

// Option customises a Fetcher.
type Option func(*Fetcher)

// WithMetrics records every transfer on m.
func WithMetrics(m *Metrics) Option {
	return func(f *Fetcher) { f.metrics = m }
}

// WithTracer replaces the global tracer.
func WithTracer(t trace.Tracer) Option {
	return func(f *Fetcher) { f.tracer = t }
}

// NewFetcher wires a Fetcher. client downloads remote sources and prober gates them.
func NewFetcher(store storage.Storage, client *http.Client, prober *Prober, logger *zap.Logger, opts ...Option) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	if prober == nil {
		prober = NewProber(client)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	f := &Fetcher{
		store:  store,
		client: client,
		prober: prober,
		logger: logger,
		tracer: otel.Tracer("mediaapi/internal/mediafile"),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FetchRequestData streams body into storage under key. The number of bytes copied must
// equal mf.Size, otherwise ErrLengthMismatch is returned.
func (f *Fetcher) FetchRequestData(ctx context.Context, body io.ReadCloser, mf model.MediaFile, key string) error {
	ctx, span := f.tracer.Start(ctx, "mediafile.FetchRequestData", trace.WithAttributes(
		attribute.String("media.key", key),
		attribute.Int64("media.expected_size", mf.Size),
	))
	defer span.End()

	openSrc := func() (io.ReadCloser, error) {
		if body == nil {
			return nil, errors.New("request body is nil")
		}
		return body, nil
	}
	openDst := func() (io.WriteCloser, error) {
		return f.store.Create(ctx, key, storage.CreateOptions{Size: -1, ContentType: mf.MimeType})
	}

	written, err := Transfer(openSrc, openDst, mf.Size)
	f.finish(span, sourceRequest, key, written, err)
	return err
}

// FetchFileFromURL checks rawURL, downloads it into storage under key and returns a new
// MediaFile carrying the written size and the detected MIME type.
func (f *Fetcher) FetchFileFromURL(ctx context.Context, mf model.MediaFile, rawURL, key string) (model.MediaFile, error) {
	ctx, span := f.tracer.Start(ctx, "mediafile.FetchFileFromURL", trace.WithAttributes(
		attribute.String("media.key", key),
		attribute.String("media.source_url", rawURL),
	))
	defer span.End()

	if err := f.prober.Admissible(ctx, rawURL); err != nil {
		f.finish(span, sourceURL, key, 0, err)
		return model.MediaFile{}, err
	}

	openSrc := func() (io.ReadCloser, error) {
		return f.openRemote(ctx, rawURL)
	}
	var sniffer *sniffingWriter
	openDst := func() (io.WriteCloser, error) {
		w, err := f.store.Create(ctx, key, storage.CreateOptions{Size: -1})
		if err != nil {
			return nil, err
		}
		sniffer = &sniffingWriter{WriteCloser: w}
		return sniffer, nil
	}

	written, err := Transfer(openSrc, openDst, NoExpectedLength)
	f.finish(span, sourceURL, key, written, err)
	if err != nil {
		return model.MediaFile{}, err
	}

	return model.MediaFile{
		FileName:  mf.FileName,
		MimeType:  sniffer.MimeType(),
		Extension: mf.Extension,
		Size:      written,
	}, nil
}

// IsAdmissible exposes the URL gate used by FetchFileFromURL.
func (f *Fetcher) IsAdmissible(ctx context.Context, rawURL string) bool {
	return f.prober.IsAdmissible(ctx, rawURL)
}

func (f *Fetcher) openRemote(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	return resp.Body, nil
}

func (f *Fetcher) finish(span trace.Span, source, key string, written int64, err error) {
	f.metrics.observe(source, written, err)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, Kind(err))
		f.logger.Warn("media transfer failed",
			zap.String("source", source),
			zap.String("key", key),
			zap.String("kind", Kind(err)),
			zap.Error(err))
		return
	}

	span.SetAttributes(attribute.Int64("media.written", written))
	f.logger.Info("media transfer finished",
		zap.String("source", source),
		zap.String("key", key),
		zap.Int64("written", written))
}
