package document

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPFetcher(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/attendees.tsv":
			_, _ = w.Write([]byte("Username\nalice\n"))
		case "/big":
			_, _ = w.Write([]byte(strings.Repeat("x", 64)))
		case "/slow":
			time.Sleep(200 * time.Millisecond)
			_, _ = w.Write([]byte("late"))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)

	ctx := context.Background()
	fetcher := NewHTTPFetcher(time.Second, WithHTTPClient(srv.Client()), WithMaxBytes(32))

	t.Run("returns body on success", func(t *testing.T) {
		body, err := fetcher.Fetch(ctx, srv.URL+"/attendees.tsv")
		require.NoError(t, err)
		assert.Equal(t, "Username\nalice\n", string(body))
	})

	t.Run("non-2xx is a fetch error with status", func(t *testing.T) {
		_, err := fetcher.Fetch(ctx, srv.URL+"/missing")
		fe, ok := AsFetchError(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusNotFound, fe.StatusCode)
	})

	t.Run("oversize body is rejected", func(t *testing.T) {
		_, err := fetcher.Fetch(ctx, srv.URL+"/big")
		fe, ok := AsFetchError(err)
		require.True(t, ok)
		assert.Contains(t, fe.Reason, "larger than 32 bytes")
		assert.Zero(t, fe.StatusCode, "a 200 response is not a status failure")
		assert.ErrorIs(t, err, ErrTooLarge)
	})

	t.Run("non-http scheme is rejected without a request", func(t *testing.T) {
		for _, raw := range []string{"ftp://example.com/x", "not a url", "file:///etc/passwd", ""} {
			_, err := fetcher.Fetch(ctx, raw)
			fe, ok := AsFetchError(err)
			require.True(t, ok, raw)
			assert.Zero(t, fe.StatusCode)
		}
	})

	t.Run("transport failure has no status", func(t *testing.T) {
		short := NewHTTPFetcher(50*time.Millisecond, WithHTTPClient(&http.Client{Timeout: 50 * time.Millisecond}))
		_, err := short.Fetch(ctx, srv.URL+"/slow")
		fe, ok := AsFetchError(err)
		require.True(t, ok)
		assert.Zero(t, fe.StatusCode)
		assert.Equal(t, "request failed", fe.Reason)
	})
}
