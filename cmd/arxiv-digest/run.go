// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/arxiv-digest/internal/digest"
	"github.com/pdiddy/arxiv-digest/internal/mail"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Build today's digest and mail it",
	Long: `Run queries every configured category, filters the results by recency and
keyword, drops papers already sent, and mails the digest to the configured
recipient. The sent-id store is updated only after the mail is accepted.`,
	RunE: runDigest,
}

func init() {
	addDigestFlags(runCmd)
	runCmd.Flags().Bool("dry-run", false, "build and render the digest without sending or recording it")

	rootCmd.AddCommand(runCmd)
}

func runDigest(cmd *cobra.Command, args []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	cfg, err := loadConfig(cmd, !dryRun)
	if err != nil {
		return err
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	runner := &digest.Runner{
		Config: cfg,
		Source: newListingClient(cfg),
		Store:  store,
		DryRun: dryRun,
		Logger: logger,
	}
	if !dryRun {
		sender, err := mail.New(cfg.Mail)
		if err != nil {
			return err
		}
		runner.Mailer = sender
	}

	summary, err := runner.Run(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch {
	case dryRun:
		fmt.Fprintln(out, summary.HTML)
	case summary.Sent:
		fmt.Fprintf(out, "sent %d entries to %s\n", len(summary.Entries), cfg.Recipient)
	default:
		fmt.Fprintln(out, "no new entries; nothing sent")
	}
	if summary.ArchivePath != "" {
		fmt.Fprintf(out, "archived to %s\n", summary.ArchivePath)
	}
	return nil
}
