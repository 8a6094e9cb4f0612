// Package document fetches operator-supplied documents (attendee exports, rules text)
// over HTTP. Every fetch is a single attempt.
package document

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	defaultTimeout = 30 * time.Second
	// MaxDocumentBytes bounds a fetched document; larger bodies are rejected.
	MaxDocumentBytes = 4 << 20
)

// Fetcher retrieves a document's bytes.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) ([]byte, error)
}

// ErrTooLarge is wrapped by the FetchError for a body over the size cap.
var ErrTooLarge = errors.New("document too large")

// FetchError reports why a document could not be retrieved. StatusCode is set only
// when the server answered with a non-2xx status.
type FetchError struct {
	URL        string
	StatusCode int
	Reason     string
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: %s (status %d)", e.URL, e.Reason, e.StatusCode)
	}
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %s: %v", e.URL, e.Reason, e.Err)
	}
	return fmt.Sprintf("fetch %s: %s", e.URL, e.Reason)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// AsFetchError extracts a *FetchError from err's chain.
func AsFetchError(err error) (*FetchError, bool) {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

// HTTPFetcher is the production Fetcher.
type HTTPFetcher struct {
	client   *http.Client
	maxBytes int64
}

// Option configures an HTTPFetcher.
type Option func(*HTTPFetcher)

// WithHTTPClient replaces the default client, e.g. with an httptest server's client.
func WithHTTPClient(c *http.Client) Option {
	return func(f *HTTPFetcher) {
		f.client = c
	}
}

// WithMaxBytes overrides MaxDocumentBytes.
func WithMaxBytes(n int64) Option {
	return func(f *HTTPFetcher) {
		f.maxBytes = n
	}
}

// NewHTTPFetcher builds a fetcher whose client gives up after timeout.
func NewHTTPFetcher(timeout time.Duration, opts ...Option) *HTTPFetcher {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	f := &HTTPFetcher{
		client:   &http.Client{Timeout: timeout},
		maxBytes: MaxDocumentBytes,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch performs one GET. Non-2xx responses, oversize bodies, and transport
// failures all return *FetchError.
func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, &FetchError{URL: rawURL, Reason: "not an http(s) URL", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, &FetchError{URL: rawURL, Reason: "build request", Err: err}
	}
	req.Header.Set("Accept", "text/plain, text/tab-separated-values, */*")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: rawURL, Reason: "request failed", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, &FetchError{URL: rawURL, StatusCode: resp.StatusCode, Reason: "unexpected status"}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, &FetchError{URL: rawURL, Reason: "read body", Err: err}
	}
	if int64(len(body)) > f.maxBytes {
		return nil, &FetchError{URL: rawURL, Reason: fmt.Sprintf("document larger than %d bytes", f.maxBytes), Err: ErrTooLarge}
	}
	return body, nil
}
