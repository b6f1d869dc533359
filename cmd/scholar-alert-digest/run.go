// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/FlechaMaker/scholar-alert-digest/internal/aggregate"
	"github.com/FlechaMaker/scholar-alert-digest/internal/archive"
	"github.com/FlechaMaker/scholar-alert-digest/internal/gmail"
	"github.com/FlechaMaker/scholar-alert-digest/internal/notes"
	"github.com/FlechaMaker/scholar-alert-digest/internal/report"
	"github.com/FlechaMaker/scholar-alert-digest/internal/slack"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Fetch unread alerts, aggregate papers, and post the digest",
	Long: `Run performs one digest pass: it fetches the unread messages under the
alert label, extracts and deduplicates the announced papers, posts the
ranked digest to Slack, records the run in the archive, and marks the
processed messages read.

Runs on Saturday and Sunday exit early without touching the mailbox unless
--force is given. With --dry-run the digest is printed to stdout instead,
nothing is posted, and no message is marked read.`,
	RunE: runDigest,
}

func init() {
	runCmd.Flags().String("label", "", "Gmail label to read (overrides config)")
	runCmd.Flags().Bool("include-authors", false, "parse author names out of venue lines")
	runCmd.Flags().Bool("dry-run", false, "print the digest instead of posting it")
	runCmd.Flags().Bool("force", false, "run even on weekends")
	runCmd.Flags().String("out", "", "also write the digest to a YAML file")

	rootCmd.AddCommand(runCmd)
}

func runDigest(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	outPath, _ := cmd.Flags().GetString("out")

	started := time.Now()
	if isWeekend(started) && !force {
		fmt.Fprintln(os.Stderr, "weekend, skipping digest (use --force to run anyway)")
		return nil
	}

	cfg := digestConfig()
	if label, _ := cmd.Flags().GetString("label"); label != "" {
		cfg.Gmail.Label = label
	}
	if include, _ := cmd.Flags().GetBool("include-authors"); include {
		cfg.Extract.IncludeAuthors = true
	}

	ctx := context.Background()

	client, err := gmail.NewClient(ctx, cfg.Gmail)
	if err != nil {
		return err
	}
	messages, err := client.UnreadMessages(ctx, cfg.Gmail.Label)
	if err != nil {
		return err
	}

	result := aggregate.Run(messages, cfg.Extract, os.Stderr)
	ranked := result.Papers.Ranked()
	fmt.Fprintf(os.Stderr, "%d messages: %d titles, %d unique, %d errors\n",
		result.Stats.Messages, result.Stats.Titles, len(ranked), result.Stats.Errors)

	if outPath != "" {
		if err := report.Write(outPath, result.Stats, ranked); err != nil {
			return err
		}
		fmt.Fprintln(os.Stderr, "Wrote digest to", outPath)
	}

	if dryRun {
		report.Render(os.Stdout, result.Stats, ranked)
		return nil
	}

	if len(ranked) > 0 {
		if cfg.Slack.Token == "" {
			return fmt.Errorf("slack token not configured (set .secrets/slack-token or SLACK_TOKEN)")
		}
		linker, err := notes.New(cfg.Notes, &http.Client{Timeout: cfg.Notes.Timeout}, os.Stderr)
		if err != nil {
			return err
		}
		poster := slack.NewClient(cfg.Slack, nil, os.Stderr)
		if err := poster.PostReport(ctx, ranked, result.Stats, linker); err != nil {
			return err
		}
	}

	if cfg.Archive.Path != "" {
		store, err := archive.Open(cfg.Archive)
		if err != nil {
			return err
		}
		defer store.Close()
		if _, err := store.RecordRun(started, result.Stats, ranked); err != nil {
			return err
		}
	}

	if len(result.ProcessedIDs) > 0 {
		if err := client.MarkRead(ctx, result.ProcessedIDs); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Marked %d messages read\n", len(result.ProcessedIDs))
	}
	return nil
}

func isWeekend(t time.Time) bool {
	switch t.Weekday() {
	case time.Saturday, time.Sunday:
		return true
	}
	return false
}
