package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		keyName string
		tag     string
		hasTag  bool
	}{
		{name: "name only", raw: "alice", keyName: "alice"},
		{name: "name and tag", raw: "alice#5", keyName: "alice", tag: "5", hasTag: true},
		{name: "explicit zero tag is not unset", raw: "alice#0", keyName: "alice", tag: "0", hasTag: true},
		{name: "splits on first separator only", raw: "a#b#c", keyName: "a", tag: "b#c", hasTag: true},
		{name: "trailing separator is an empty tag", raw: "alice#", keyName: "alice", tag: "", hasTag: true},
		{name: "leading separator is an empty name", raw: "#1234", keyName: "", tag: "1234", hasTag: true},
		{name: "empty input", raw: "", keyName: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := Parse(tt.raw)
			tag, hasTag := key.Tag()
			assert.Equal(t, tt.keyName, key.Name())
			assert.Equal(t, tt.tag, tag)
			assert.Equal(t, tt.hasTag, hasTag)
			assert.Equal(t, tt.raw, key.String())
		})
	}
}

func TestLines(t *testing.T) {
	t.Run("skips header and blank lines, keeps raw text", func(t *testing.T) {
		doc := []byte("Username\tName\r\nzara\tZara Z\r\n\r\nalice#5\n   \nmissing1\n")

		lines := Lines(doc)

		require.Len(t, lines, 3)
		assert.Equal(t, "zara\tZara Z", lines[0].Raw)
		assert.Equal(t, "zara", lines[0].Key.Name())
		assert.Equal(t, "alice#5", lines[1].Raw)
		tag, ok := lines[1].Key.Tag()
		assert.True(t, ok)
		assert.Equal(t, "5", tag)
		assert.Equal(t, "missing1", lines[2].Raw)
	})

	t.Run("header only document is empty", func(t *testing.T) {
		assert.Empty(t, Lines([]byte("Username\n\n")))
		assert.Empty(t, Lines(nil))
	})

	t.Run("first cell is trimmed", func(t *testing.T) {
		lines := Lines([]byte("  bob  \tnote"))
		require.Len(t, lines, 1)
		assert.Equal(t, "bob", lines[0].Key.Name())
		assert.Equal(t, "  bob  \tnote", lines[0].Raw)
	})

	t.Run("byte order mark does not hide the header", func(t *testing.T) {
		assert.Empty(t, Lines([]byte("\ufeffUsername\n")))
	})
}
