package mediafile

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

var statusLinePattern = regexp.MustCompile(`^HTTP/[0-9]\.[0-9] ([0-9]{3})( |$)`)

// IsURLValid accepts absolute http and https URLs with a host.
// The scheme is matched case-sensitively.
func IsURLValid(raw string) bool {
	if !strings.HasPrefix(raw, "http:") && !strings.HasPrefix(raw, "https:") {
		return false
	}
	if strings.ContainsAny(raw, " \t\r\n") {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Hostname() != ""
}

// Prober checks that a remote URL answers before anything is downloaded from it.
type Prober struct {
	client *http.Client
}

// NewProber returns a Prober sending HEAD requests through client.
// A nil client falls back to http.DefaultClient.
func NewProber(client *http.Client) *Prober {
	if client == nil {
		client = http.DefaultClient
	}
	return &Prober{client: client}
}

// IsURLReachable issues a HEAD request and reports whether the status is below 400.
// Any failure to send the request or to parse the status line counts as unreachable.
func (p *Prober) IsURLReachable(ctx context.Context, raw string) bool {
	return p.probe(ctx, raw) == nil
}

// Admissible runs the syntax check, then the reachability probe.
// It returns ErrMalformedURL or ErrUnreachableURL; the latter also wraps a *ProbeError.
func (p *Prober) Admissible(ctx context.Context, raw string) error {
	if !IsURLValid(raw) {
		return fmt.Errorf("%w: %s", ErrMalformedURL, raw)
	}
	if err := p.probe(ctx, raw); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrUnreachableURL, raw, err)
	}
	return nil
}

// IsAdmissible is Admissible reduced to a boolean.
func (p *Prober) IsAdmissible(ctx context.Context, raw string) bool {
	return p.Admissible(ctx, raw) == nil
}

func (p *Prober) probe(ctx context.Context, raw string) *ProbeError {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, raw, nil)
	if err != nil {
		return &ProbeError{URL: raw, Err: err}
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return &ProbeError{URL: raw, Err: err}
	}
	defer resp.Body.Close()

	line := resp.Proto + " " + resp.Status
	code, ok := parseStatusLine(line)
	if !ok {
		return &ProbeError{URL: raw, StatusLine: line}
	}
	if code >= 400 {
		return &ProbeError{URL: raw, StatusCode: code, StatusLine: line}
	}
	return nil
}

// parseStatusLine extracts the three digit code from "HTTP/1.1 200 OK".
func parseStatusLine(line string) (int, bool) {
	m := statusLinePattern.FindStringSubmatch(line)
	if len(m) < 2 {
		return 0, false
	}
	code, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return code, true
}
