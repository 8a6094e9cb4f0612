package bot

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"warden/internal/guild"
	"warden/internal/reconcile"
	"warden/internal/rules"
	dErrors "warden/pkg/domain-errors"
	"warden/pkg/platform/sentinel"
)

func TestScreeningMessages(t *testing.T) {
	member := guild.Member{ID: "42"}
	role := guild.Role{Name: "Guildsman"}

	assert.Equal(t, "<@42> completed screening and was given the 'Guildsman' role!", screeningGranted(member, role))
	assert.Equal(t, "ERROR! Bot got a 'FORBIDDEN' error after trying to grant the 'Guildsman' role to '<@42>'!",
		grantFailed(member, role, fmt.Errorf("x: %w", sentinel.ErrForbidden)))
	assert.Equal(t, "ERROR! Bot could not grant the 'Guildsman' role to '<@42>'.",
		grantFailed(member, role, errors.New("boom")))
}

func TestFormatReport(t *testing.T) {
	t.Run("summary with failures and misses", func(t *testing.T) {
		report := &reconcile.Report{
			RunID:          uuid.New(),
			TotalLines:     4,
			MatchedCount:   2,
			UnmatchedLines: []string{"ghost\tT-1", "nobody"},
			FailedGrants: []reconcile.GrantFailure{
				{Member: guild.Member{ID: "9"}, Outcome: guild.OutcomePermissionDenied, Err: sentinel.ErrForbidden},
			},
		}
		got := FormatReport(report, "Onsite Attendee")
		assert.Equal(t, strings.Join([]string{
			"Attendee import finished: 4 lines, 2 matched, 1 granted the 'Onsite Attendee' role, 2 not found.",
			"ERROR! Bot got a 'FORBIDDEN' error after trying to grant the 'Onsite Attendee' role to '<@9>'!",
			"Could not find these entries:",
			"- ghost T-1",
			"- nobody",
		}, "\n"), got)
	})

	t.Run("long miss lists are listed in full across messages", func(t *testing.T) {
		report := &reconcile.Report{}
		for i := 0; i < 300; i++ {
			report.UnmatchedLines = append(report.UnmatchedLines, fmt.Sprintf("attendee-%03d\tticket", i))
		}
		parts := SplitMessage(FormatReport(report, "Onsite Attendee"), 2000)
		require.Greater(t, len(parts), 1)

		var listed []string
		for _, part := range parts {
			assert.LessOrEqual(t, utf8.RuneCountInString(part), 2000)
			for _, line := range strings.Split(part, "\n") {
				if entry, ok := strings.CutPrefix(line, "- "); ok {
					listed = append(listed, entry)
				}
			}
		}
		require.Len(t, listed, 300)
		for i, entry := range listed {
			assert.Equal(t, fmt.Sprintf("attendee-%03d ticket", i), entry)
		}
	})
}

func TestFormatError(t *testing.T) {
	assert.Equal(t, "ERROR! Rules publication stopped after 2 of 5 messages. The channel is incomplete; run the command again.",
		FormatError(&rules.PartialPublishError{Sent: 2, Total: 5, Err: errors.New("x")}))
	assert.Equal(t, "ERROR! Rules section 3 is 2100 characters long; the limit is 2000. Nothing was posted.",
		FormatError(dErrors.Wrap(&rules.ChunkTooLongError{Index: 2, Length: 2100, Limit: 2000}, dErrors.CodeValidation, "x")))
	assert.Equal(t, "ERROR! another bulk operation is already running",
		FormatError(dErrors.New(dErrors.CodeConflict, "another bulk operation is already running")))
	assert.Equal(t, "ERROR! an unexpected error occurred", FormatError(errors.New("db password leaked")))
}

func TestFormatRulesOutcome(t *testing.T) {
	assert.Equal(t, "Rules pushed: 3 messages posted to <#c1>.",
		FormatRulesOutcome(&rules.Outcome{Mode: rules.ModePush, Channel: "c1", Sent: 3, Chunks: 3}))
	assert.Equal(t, "Rules preview posted: 2 chunks.",
		FormatRulesOutcome(&rules.Outcome{Mode: rules.ModePreview, Chunks: 2, Sent: 4}))
}

func TestSplitMessage(t *testing.T) {
	t.Run("short text is one piece", func(t *testing.T) {
		assert.Equal(t, []string{"hello"}, SplitMessage("hello", 10))
	})

	t.Run("non-positive limit returns text whole", func(t *testing.T) {
		assert.Equal(t, []string{"hello\nworld"}, SplitMessage("hello\nworld", 0))
		assert.Equal(t, []string{"hello"}, SplitMessage("hello", -1))
	})

	t.Run("cuts on line boundaries", func(t *testing.T) {
		assert.Equal(t, []string{"aaaa\nbbbb", "cccc"}, SplitMessage("aaaa\nbbbb\ncccc", 10))
	})

	t.Run("hard cuts an over-long line", func(t *testing.T) {
		got := SplitMessage(strings.Repeat("x", 25), 10)
		assert.Equal(t, []string{strings.Repeat("x", 10), strings.Repeat("x", 10), strings.Repeat("x", 5)}, got)
	})

	t.Run("every piece respects the limit", func(t *testing.T) {
		var b strings.Builder
		for i := 0; i < 400; i++ {
			fmt.Fprintf(&b, "- member-%d-é\n", i)
		}
		for _, part := range SplitMessage(b.String(), 2000) {
			assert.LessOrEqual(t, utf8.RuneCountInString(part), 2000)
		}
	})
}
