package mediafile

import (
	"errors"
	"fmt"
)

// Each failure of a transfer maps to exactly one of these; callers branch with errors.Is.
var (
	ErrStreamOpen     = errors.New("could not open stream")
	ErrLengthMismatch = errors.New("expected content-length did not match actual size")
	ErrCopyFailure    = errors.New("could not copy stream")
	ErrMalformedURL   = errors.New("malformed url")
	ErrUnreachableURL = errors.New("url not reachable")
)

// LengthMismatchError reports a body whose size differs from the declared Content-Length.
type LengthMismatchError struct {
	Expected int64
	Actual   int64
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("%s: expected %d bytes, got %d", ErrLengthMismatch, e.Expected, e.Actual)
}

func (e *LengthMismatchError) Unwrap() error { return ErrLengthMismatch }

// ProbeError explains why a reachability probe failed.
// StatusCode is zero when no parsable response was received.
type ProbeError struct {
	URL        string
	StatusCode int
	StatusLine string
	Err        error
}

func (e *ProbeError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("probe %s: %v", e.URL, e.Err)
	case e.StatusCode != 0:
		return fmt.Sprintf("probe %s: status %d", e.URL, e.StatusCode)
	default:
		return fmt.Sprintf("probe %s: unparsable status line %q", e.URL, e.StatusLine)
	}
}

func (e *ProbeError) Unwrap() error { return e.Err }

// Transient reports whether the failure may go away on its own: network errors,
// unparsable responses and 5xx statuses. A 4xx status is considered permanent.
func (e *ProbeError) Transient() bool {
	return e.StatusCode == 0 || e.StatusCode >= 500
}

// Kind returns a short machine readable label for err, used for metrics and logs.
func Kind(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrMalformedURL):
		return "malformed_url"
	case errors.Is(err, ErrUnreachableURL):
		return "unreachable_url"
	case errors.Is(err, ErrStreamOpen):
		return "stream_open"
	case errors.Is(err, ErrLengthMismatch):
		return "length_mismatch"
	case errors.Is(err, ErrCopyFailure):
		return "copy_failure"
	default:
		return "unknown"
	}
}
