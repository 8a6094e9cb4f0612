package identity

import (
	"strings"
)

const (
	// HeaderToken is the first-column heading of an attendee export.
	HeaderToken = "Username"
	// ColumnDelimiter separates columns of the tab-separated export.
	ColumnDelimiter = "\t"
)

// Line is one processable record of a document.
type Line struct {
	// Raw is the line as it appeared in the document, without its line terminator.
	Raw string
	Key Key
}

// Lines tokenizes a tab-separated document. Only the first column is an identity;
// later columns are ignored. Lines whose first cell is blank or equal to HeaderToken
// are skipped and never reach Parse.
func Lines(doc []byte) []Line {
	text := strings.TrimPrefix(string(doc), "\ufeff")
	var out []Line
	for _, raw := range strings.Split(text, "\n") {
		raw = strings.TrimSuffix(raw, "\r")
		cell, _, _ := strings.Cut(raw, ColumnDelimiter)
		cell = strings.TrimSpace(cell)
		if cell == "" || cell == HeaderToken {
			continue
		}
		out = append(out, Line{Raw: raw, Key: Parse(cell)})
	}
	return out
}
