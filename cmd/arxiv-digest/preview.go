// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/arxiv-digest/internal/digest"
	"github.com/pdiddy/arxiv-digest/pkg/types"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Show the entries the next run would send",
	Long: `Preview builds the digest exactly as run would, using the current sent-id
store, but neither mails it nor records anything. Output is a table by
default, or the rendered HTML, JSON, or YAML.`,
	RunE: runPreview,
}

func init() {
	addDigestFlags(previewCmd)
	previewCmd.Flags().String("format", "table", "output format: table, html, json, or yaml")
	previewCmd.Flags().String("output", "", "write output to this file instead of stdout")

	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	outPath, _ := cmd.Flags().GetString("output")

	cfg, err := loadConfig(cmd, false)
	if err != nil {
		return err
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	now := time.Now()
	runner := &digest.Runner{
		Config: cfg,
		Source: newListingClient(cfg),
		Store:  store,
		DryRun: true,
		Now:    func() time.Time { return now },
		Logger: logger,
	}
	summary, err := runner.Run(cmd.Context())
	if err != nil {
		return err
	}

	var w io.Writer = cmd.OutOrStdout()
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	return writePreview(w, format, summary, now)
}

func writePreview(w io.Writer, format string, summary digest.RunSummary, now time.Time) error {
	entries := summary.Entries
	if entries == nil {
		entries = []types.Entry{}
	}
	switch format {
	case "table", "":
		digest.FormatTable(entries, now, w)
		return nil
	case "html":
		_, err := fmt.Fprintln(w, summary.HTML)
		return err
	case "json":
		return digest.FormatJSON(entries, w)
	case "yaml":
		return digest.FormatYAML(entries, w)
	default:
		return fmt.Errorf("unsupported format %q: use table, html, json, or yaml", format)
	}
}
