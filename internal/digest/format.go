// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package digest

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/arxiv-digest/pkg/types"
)

// FormatTable writes entries as a human-readable table to w.
func FormatTable(entries []types.Entry, now time.Time, w io.Writer) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No new entries.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-12s  %-60s  %-20s  %s\n", "Rank", "ID", "Title", "Authors", "Age")
	fmt.Fprintln(w, strings.Repeat("-", 110))

	for i, e := range entries {
		id := strings.TrimPrefix(e.ShortID(), "arXiv:")
		fmt.Fprintf(w, "%-4d  %-12s  %-60s  %-20s  %s\n",
			i+1, truncate(id, 12), truncate(e.Title, 60), formatAuthors(e.Authors), formatAge(now.Sub(e.PublishedAt)))
	}

	fmt.Fprintf(w, "\n%d entries\n", len(entries))
}

// FormatJSON writes entries as indented JSON to w.
func FormatJSON(entries []types.Entry, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(entries)
}

// FormatYAML writes entries as YAML to w.
func FormatYAML(entries []types.Entry, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(entries); err != nil {
		return err
	}
	return enc.Close()
}

// Archive is the on-disk record of a sent digest.
type Archive struct {
	RunID    string        `yaml:"run_id"`
	SentAt   time.Time     `yaml:"sent_at"`
	To       string        `yaml:"to"`
	Keywords []string      `yaml:"keywords"`
	Entries  []types.Entry `yaml:"entries"`
}

// WriteArchive saves a to dir/digest-YYYY-MM-DD-<run>.yaml and returns the path.
func WriteArchive(dir string, a Archive) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating archive directory: %w", err)
	}
	data, err := yaml.Marshal(&a)
	if err != nil {
		return "", fmt.Errorf("marshaling archive: %w", err)
	}
	run := a.RunID
	if len(run) > 8 {
		run = run[:8]
	}
	path := filepath.Join(dir, fmt.Sprintf("digest-%s-%s.yaml", a.SentAt.UTC().Format("2006-01-02"), run))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing archive: %w", err)
	}
	return path, nil
}

// ReadArchive loads an archive written by WriteArchive.
func ReadArchive(path string) (*Archive, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading archive: %w", err)
	}
	var a Archive
	if err := yaml.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("parsing archive: %w", err)
	}
	return &a, nil
}

func formatAge(d time.Duration) string {
	if d < time.Hour {
		return fmt.Sprintf("%dm", int(d.Minutes()))
	}
	if d < 24*time.Hour {
		return fmt.Sprintf("%dh", int(d.Hours()))
	}
	return fmt.Sprintf("%dd%dh", int(d.Hours())/24, int(d.Hours())%24)
}

func formatAuthors(authors []string) string {
	switch len(authors) {
	case 0:
		return ""
	case 1:
		return truncate(authors[0], 20)
	default:
		return truncate(authors[0], 14) + " et al."
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
