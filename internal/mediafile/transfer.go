package mediafile

import (
	"fmt"
	"io"
	"sync"
)

// NoExpectedLength disables the length check; Transfer then reports whatever was copied.
const NoExpectedLength int64 = -1

const copyBufferSize = 32 * 1024

// SourceOpener opens the readable side of a transfer.
type SourceOpener func() (io.ReadCloser, error)

// DestinationOpener opens the writable side of a transfer.
type DestinationOpener func() (io.WriteCloser, error)

// Transfer opens both endpoints, copies the source into the destination in a single pass and
// returns the number of bytes written.
//
// With expectedLength >= 0 a differing byte count fails with a *LengthMismatchError.
// Both endpoints are closed exactly once on every path. Whatever reached the destination
// before a failure stays there.
func Transfer(openSrc SourceOpener, openDst DestinationOpener, expectedLength int64) (int64, error) {
	src, err := openSrc()
	if err != nil {
		return 0, fmt.Errorf("%w: source: %w", ErrStreamOpen, err)
	}
	srcCloser := &onceCloser{c: src}
	defer srcCloser.Close()

	dst, err := openDst()
	if err != nil {
		return 0, fmt.Errorf("%w: destination: %w", ErrStreamOpen, err)
	}
	dstCloser := &onceCloser{c: dst}
	defer dstCloser.Close()

	written, err := io.CopyBuffer(dst, src, make([]byte, copyBufferSize))
	if err != nil {
		return 0, fmt.Errorf("%w: after %d bytes: %w", ErrCopyFailure, written, err)
	}

	if expectedLength >= 0 && written != expectedLength {
		return 0, &LengthMismatchError{Expected: expectedLength, Actual: written}
	}

	// Object store writers only commit on close, so its error belongs to the copy.
	if err := dstCloser.Close(); err != nil {
		return 0, fmt.Errorf("%w: finalize destination: %w", ErrCopyFailure, err)
	}

	return written, nil
}

type onceCloser struct {
	c    io.Closer
	once sync.Once
	err  error
}

func (o *onceCloser) Close() error {
	o.once.Do(func() {
		o.err = o.c.Close()
	})
	return o.err
}
