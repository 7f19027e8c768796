package mediafile

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func stubClient(proto, status string) *http.Client {
	return &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
		return &http.Response{
			Proto:   proto,
			Status:  status,
			Body:    io.NopCloser(strings.NewReader("")),
			Header:  http.Header{},
			Request: r,
		}, nil
	})}
}

func TestIsURLValid(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"http://host/path", true},
		{"https://example.com/image.png?size=large", true},
		{"http://127.0.0.1:8080/a", true},
		{"ftp://x/y", false},
		{"not a url", false},
		{"", false},
		{"HTTP://example.com/a", false},
		{"http://", false},
		{"http:///path-only", false},
		{"http://exa mple.com/", false},
		{"httpx://example.com", false},
		{"file:///etc/passwd", false},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, IsURLValid(tt.url))
		})
	}
}

func TestParseStatusLine(t *testing.T) {
	code, ok := parseStatusLine("HTTP/1.1 200 OK")
	assert.True(t, ok)
	assert.Equal(t, 200, code)

	code, ok = parseStatusLine("HTTP/1.0 404 Not Found")
	assert.True(t, ok)
	assert.Equal(t, 404, code)

	code, ok = parseStatusLine("HTTP/2.0 204")
	assert.True(t, ok)
	assert.Equal(t, 204, code)

	for _, line := range []string{"ICY 200 OK", "HTTP/1.1 20 OK", "HTTP/1.1 2000 OK", "garbage", ""} {
		_, ok := parseStatusLine(line)
		assert.False(t, ok, line)
	}
}

func TestProber_IsURLReachable(t *testing.T) {
	ctx := context.Background()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodHead, r.Method)
		switch r.URL.Path {
		case "/ok":
			w.WriteHeader(http.StatusOK)
		case "/moved":
			w.WriteHeader(http.StatusNotModified)
		case "/boom":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	p := NewProber(srv.Client())

	assert.True(t, p.IsURLReachable(ctx, srv.URL+"/ok"))
	assert.True(t, p.IsURLReachable(ctx, srv.URL+"/moved"))
	assert.False(t, p.IsURLReachable(ctx, srv.URL+"/missing"))
	assert.False(t, p.IsURLReachable(ctx, srv.URL+"/boom"))

	t.Run("cannot connect", func(t *testing.T) {
		closed := httptest.NewServer(http.NotFoundHandler())
		u := closed.URL
		closed.Close()
		assert.False(t, NewProber(nil).IsURLReachable(ctx, u+"/gone"))
	})

	t.Run("stubbed status lines", func(t *testing.T) {
		assert.True(t, NewProber(stubClient("HTTP/1.1", "200 OK")).IsURLReachable(ctx, "http://host/path"))
		assert.False(t, NewProber(stubClient("HTTP/1.1", "404 Not Found")).IsURLReachable(ctx, "http://host/path"))
		assert.False(t, NewProber(stubClient("ICY", "200 OK")).IsURLReachable(ctx, "http://host/path"))
	})
}

func TestProber_Admissible(t *testing.T) {
	ctx := context.Background()

	t.Run("malformed", func(t *testing.T) {
		p := NewProber(stubClient("HTTP/1.1", "200 OK"))
		err := p.Admissible(ctx, "ftp://x/y")
		assert.ErrorIs(t, err, ErrMalformedURL)
		assert.False(t, errors.Is(err, ErrUnreachableURL))
		assert.False(t, p.IsAdmissible(ctx, "not a url"))
	})

	t.Run("reachable", func(t *testing.T) {
		p := NewProber(stubClient("HTTP/1.1", "200 OK"))
		assert.NoError(t, p.Admissible(ctx, "http://host/path"))
		assert.True(t, p.IsAdmissible(ctx, "http://host/path"))
	})

	t.Run("client error is permanent", func(t *testing.T) {
		p := NewProber(stubClient("HTTP/1.1", "404 Not Found"))
		err := p.Admissible(ctx, "http://host/path")
		assert.ErrorIs(t, err, ErrUnreachableURL)

		var pe *ProbeError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, 404, pe.StatusCode)
		assert.False(t, pe.Transient())
	})

	t.Run("network error is transient", func(t *testing.T) {
		dialErr := errors.New("dial tcp: connection refused")
		p := NewProber(&http.Client{Transport: roundTripFunc(func(*http.Request) (*http.Response, error) {
			return nil, dialErr
		})})
		err := p.Admissible(ctx, "http://host/path")
		assert.ErrorIs(t, err, ErrUnreachableURL)
		assert.ErrorIs(t, err, dialErr)

		var pe *ProbeError
		require.ErrorAs(t, err, &pe)
		assert.True(t, pe.Transient())
	})
}
