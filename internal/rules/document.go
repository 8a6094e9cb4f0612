package rules

import (
	"fmt"
	"strings"
	"unicode/utf8"

	dErrors "warden/pkg/domain-errors"
)

const (
	// BreakMarker separates messages in the source document.
	BreakMarker = "<<BREAK>>"
	// MemberRolePlaceholder is replaced with a mention of the member role.
	MemberRolePlaceholder = "{{GUILDSMAN}}"

	PreviewBegin = "----- rules preview begin -----"
	PreviewEnd   = "----- rules preview end -----"
)

// Mode selects where a publication goes.
type Mode string

const (
	// ModePreview posts the chunks to the status channel between markers.
	ModePreview Mode = "test"
	// ModePush purges the rules channel and posts the chunks there.
	ModePush Mode = "push"
)

// ParseMode accepts the command arguments "test" and "push".
func ParseMode(raw string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(raw))) {
	case ModePreview:
		return ModePreview, nil
	case ModePush:
		return ModePush, nil
	default:
		return "", dErrors.New(dErrors.CodeValidation, fmt.Sprintf("unknown rules mode %q, expected 'test' or 'push'", raw))
	}
}

// Document is a rules text split into ordered, send-ready chunks.
type Document struct {
	Chunks []string
	// Sections holds, for each chunk, its zero-based position among the
	// break-separated sections of the source, empty sections included. Nil means
	// chunk i is section i.
	Sections []int
}

// Split cuts text on BreakMarker. Chunks are trimmed and empty ones dropped.
func Split(text string) []string {
	chunks, _ := splitSections(text)
	return chunks
}

func splitSections(text string) (chunks []string, sections []int) {
	for i, part := range strings.Split(text, BreakMarker) {
		part = strings.TrimSpace(part)
		if part != "" {
			chunks = append(chunks, part)
			sections = append(sections, i)
		}
	}
	return chunks, sections
}

// Render substitutes the member role placeholder. An empty roleID leaves the text as is.
func Render(text, roleID string) string {
	if roleID == "" {
		return text
	}
	return strings.ReplaceAll(text, MemberRolePlaceholder, "<@&"+roleID+">")
}

// Parse normalises line endings, renders placeholders and splits the result.
func Parse(text, memberRoleID string) Document {
	text = strings.ReplaceAll(strings.TrimPrefix(text, "\ufeff"), "\r\n", "\n")
	chunks, sections := splitSections(Render(text, memberRoleID))
	return Document{Chunks: chunks, Sections: sections}
}

// Validate checks every chunk against limit, measured in runes, and reports the first
// violation.
func (d Document) Validate(limit int) error {
	for i, chunk := range d.Chunks {
		if n := utf8.RuneCountInString(chunk); n > limit {
			return &ChunkTooLongError{Index: d.section(i), Length: n, Limit: limit}
		}
	}
	return nil
}

func (d Document) section(i int) int {
	if i < len(d.Sections) {
		return d.Sections[i]
	}
	return i
}

// ChunkTooLongError means a chunk exceeds the platform message limit. Index is the
// zero-based section position in the source document, counting empty sections, so
// it matches what an editor sees between break markers.
type ChunkTooLongError struct {
	Index  int
	Length int
	Limit  int
}

func (e *ChunkTooLongError) Error() string {
	return fmt.Sprintf("rules section %d is %d characters, limit is %d", e.Index+1, e.Length, e.Limit)
}

// PartialPublishError reports a send failure after Sent of Total messages went out.
// Messages already posted are not rolled back.
type PartialPublishError struct {
	Sent  int
	Total int
	Err   error
}

func (e *PartialPublishError) Error() string {
	return fmt.Sprintf("rules publication stopped after %d of %d messages: %v", e.Sent, e.Total, e.Err)
}

func (e *PartialPublishError) Unwrap() error {
	return e.Err
}
