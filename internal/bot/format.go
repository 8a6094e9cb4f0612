package bot

import (
	"errors"
	"fmt"
	"strings"

	"warden/internal/guild"
	"warden/internal/reconcile"
	"warden/internal/rules"
	dErrors "warden/pkg/domain-errors"
)

func screeningGranted(member guild.Member, role guild.Role) string {
	return fmt.Sprintf("%s completed screening and was given the '%s' role!", member.Mention(), role.Name)
}

func grantFailed(member guild.Member, role guild.Role, err error) string {
	if guild.OutcomeOf(err) == guild.OutcomePermissionDenied {
		return fmt.Sprintf("ERROR! Bot got a 'FORBIDDEN' error after trying to grant the '%s' role to '%s'!", role.Name, member.Mention())
	}
	return fmt.Sprintf("ERROR! Bot could not grant the '%s' role to '%s'.", role.Name, member.Mention())
}

// FormatReport renders a reconciliation report for the status channel.
func FormatReport(report *reconcile.Report, role string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Attendee import finished: %d lines, %d matched, %d granted the '%s' role, %d not found.",
		report.TotalLines, report.MatchedCount, report.Granted(), role, len(report.UnmatchedLines))

	for _, f := range report.FailedGrants {
		b.WriteString("\n")
		b.WriteString(grantFailed(f.Member, guild.Role{Name: role}, f.Err))
	}

	// every miss is listed; replies are split to the message limit by the caller
	if len(report.UnmatchedLines) > 0 {
		b.WriteString("\nCould not find these entries:")
		for _, line := range report.UnmatchedLines {
			b.WriteString("\n- ")
			b.WriteString(strings.ReplaceAll(line, "\t", " "))
		}
	}
	return b.String()
}

// FormatRulesOutcome renders a successful publication.
func FormatRulesOutcome(outcome *rules.Outcome) string {
	if outcome.Mode == rules.ModePush {
		return fmt.Sprintf("Rules pushed: %d messages posted to <#%s>.", outcome.Sent, outcome.Channel)
	}
	return fmt.Sprintf("Rules preview posted: %d chunks.", outcome.Chunks)
}

// FormatError renders err for chat. Internal causes never leak.
func FormatError(err error) string {
	var partial *rules.PartialPublishError
	if errors.As(err, &partial) {
		return fmt.Sprintf("ERROR! Rules publication stopped after %d of %d messages. The channel is incomplete; run the command again.",
			partial.Sent, partial.Total)
	}
	var tooLong *rules.ChunkTooLongError
	if errors.As(err, &tooLong) {
		return fmt.Sprintf("ERROR! Rules section %d is %d characters long; the limit is %d. Nothing was posted.",
			tooLong.Index+1, tooLong.Length, tooLong.Limit)
	}
	return "ERROR! " + dErrors.MessageOf(err)
}

// SplitMessage breaks text into pieces of at most limit runes, cutting on line
// boundaries where it can. A non-positive limit returns text whole.
func SplitMessage(text string, limit int) []string {
	if limit <= 0 {
		return []string{text}
	}
	var (
		out []string
		cur []rune
	)
	for _, line := range strings.SplitAfter(text, "\n") {
		r := []rune(line)
		if len(cur)+len(r) > limit && len(cur) > 0 {
			out = append(out, strings.TrimRight(string(cur), "\n"))
			cur = cur[:0]
		}
		for len(r) > limit {
			out = append(out, string(r[:limit]))
			r = r[limit:]
		}
		cur = append(cur, r...)
	}
	if s := strings.TrimRight(string(cur), "\n"); s != "" {
		out = append(out, s)
	}
	return out
}
