package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"warden/internal/rules"
)

type staticFetcher struct {
	body string
	err  error
}

func (f staticFetcher) Fetch(context.Context, string) ([]byte, error) {
	return []byte(f.body), f.err
}

func TestPrintIdentities(t *testing.T) {
	var out bytes.Buffer
	err := printIdentities(context.Background(), &out, staticFetcher{body: "Username\tTicket\nalice\t1\nbob#42\t2\n"}, "u")
	require.NoError(t, err)
	assert.Equal(t, "alice\t-\nbob\t42\n2 identities\n", out.String())
}

func TestCheckRules(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, checkRules(context.Background(), &out, staticFetcher{body: "abc<<BREAK>>de"}, "u", 2000))
		assert.Equal(t, "chunk 1: 3 characters\nchunk 2: 2 characters\n2 chunks, all within 2000 characters\n", out.String())
	})

	t.Run("too long", func(t *testing.T) {
		var out bytes.Buffer
		err := checkRules(context.Background(), &out, staticFetcher{body: strings.Repeat("a", 11)}, "u", 10)
		var tooLong *rules.ChunkTooLongError
		require.ErrorAs(t, err, &tooLong)
	})

	t.Run("empty", func(t *testing.T) {
		err := checkRules(context.Background(), &bytes.Buffer{}, staticFetcher{body: " <<BREAK>> "}, "u", 10)
		assert.EqualError(t, err, "rules document is empty")
	})

	t.Run("fetch error", func(t *testing.T) {
		err := checkRules(context.Background(), &bytes.Buffer{}, staticFetcher{err: errors.New("down")}, "u", 10)
		assert.EqualError(t, err, "down")
	})
}
