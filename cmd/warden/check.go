package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"warden/internal/bot"
	"warden/internal/document"
	"warden/internal/guild"
	"warden/internal/identity"
	"warden/internal/platform/config"
	"warden/internal/reconcile"
	"warden/internal/rules"
)

var checkGuildID string

var checkAttendeesCmd = &cobra.Command{
	Use:   "check-attendees <document url>",
	Short: "Parse an attendee document; with --guild, dry-run it against the live roster",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromEnv()
		fetcher := document.NewHTTPFetcher(cfg.Bot.FetchTimeout)
		if checkGuildID == "" {
			return printIdentities(cmd.Context(), cmd.OutOrStdout(), fetcher, args[0])
		}
		return dryRunImport(cmd.Context(), cmd.OutOrStdout(), cfg.Bot, fetcher, checkGuildID, args[0])
	},
}

var checkRulesCmd = &cobra.Command{
	Use:   "check-rules <document url>",
	Short: "Split and validate a rules document without posting it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromEnv()
		return checkRules(cmd.Context(), cmd.OutOrStdout(), document.NewHTTPFetcher(cfg.Bot.FetchTimeout), args[0], cfg.Bot.MaxChunkLength)
	},
}

func init() {
	checkAttendeesCmd.Flags().StringVar(&checkGuildID, "guild", "", "Guild ID to resolve against (needs DISCORD_TOKEN)")
}

func printIdentities(ctx context.Context, out io.Writer, fetcher document.Fetcher, url string) error {
	body, err := fetcher.Fetch(ctx, url)
	if err != nil {
		return err
	}
	lines := identity.Lines(body)
	for _, line := range lines {
		tag, ok := line.Key.Tag()
		if !ok {
			tag = "-"
		}
		fmt.Fprintf(out, "%s\t%s\n", line.Key.Name(), tag)
	}
	fmt.Fprintf(out, "%d identities\n", len(lines))
	return nil
}

// recordingMutator stands in for the platform during a dry run.
type recordingMutator struct {
	granted []guild.Member
}

func (r *recordingMutator) AddRole(_ context.Context, member guild.Member, _ guild.Role, _ string) error {
	r.granted = append(r.granted, member)
	return nil
}

func dryRunImport(ctx context.Context, out io.Writer, cfg config.Bot, fetcher document.Fetcher, guildID, url string) error {
	session, err := bot.NewSession(cfg.Token)
	if err != nil {
		return err
	}
	adapter := bot.NewAdapter(session)
	members, err := adapter.Members(ctx, guildID)
	if err != nil {
		return err
	}

	role, err := adapter.RoleByName(ctx, guildID, cfg.OnsiteRole)
	if err != nil {
		return fmt.Errorf("look up role %q: %w", cfg.OnsiteRole, err)
	}

	mutator := &recordingMutator{}
	svc, err := reconcile.New(fetcher, mutator)
	if err != nil {
		return err
	}
	report, err := svc.Reconcile(ctx, url, members, role)
	if err != nil {
		return err
	}
	for _, m := range mutator.granted {
		fmt.Fprintf(out, "would grant: %s\n", m.Label())
	}
	fmt.Fprintln(out, bot.FormatReport(report, cfg.OnsiteRole))
	return nil
}

func checkRules(ctx context.Context, out io.Writer, fetcher document.Fetcher, url string, limit int) error {
	body, err := fetcher.Fetch(ctx, url)
	if err != nil {
		return err
	}
	doc := rules.Parse(string(body), "")
	if len(doc.Chunks) == 0 {
		return errors.New("rules document is empty")
	}
	for i, chunk := range doc.Chunks {
		fmt.Fprintf(out, "chunk %d: %d characters\n", i+1, utf8.RuneCountInString(chunk))
	}
	if err := doc.Validate(limit); err != nil {
		return err
	}
	fmt.Fprintf(out, "%d chunks, all within %d characters\n", len(doc.Chunks), limit)
	return nil
}
