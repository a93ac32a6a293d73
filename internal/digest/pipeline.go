// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package digest turns listing results into a mailed digest: it normalizes
// raw records, filters them by recency and keyword, suppresses entries sent
// in earlier runs, renders HTML, and orchestrates a single run.
package digest

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/pdiddy/arxiv-digest/pkg/types"
)

// DefaultRecencyDays is the default recency window in days.
const DefaultRecencyDays = 8

// Source is the listing-service capability the pipeline consumes. Search
// yields results for one category, most recently submitted first. The
// sequence is lazy; the pipeline stops pulling at the recency boundary.
type Source interface {
	Search(ctx context.Context, category string) iter.Seq2[types.RawRecord, error]
}

// Pipeline builds the list of entries to send for one run.
type Pipeline struct {
	Source Source

	// Window is the recency window. Zero means DefaultRecencyDays.
	Window time.Duration

	// Now returns the reference clock. Nil means time.Now.
	Now func() time.Time

	Logger *slog.Logger
}

// Stats counts what each pipeline stage removed.
type Stats struct {
	Fetched       int
	Duplicates    int
	KeywordMisses int
	AlreadySent   int
}

// Result is the output of Build.
type Result struct {
	// Entries are the entries to send, most recently published first.
	Entries []types.Entry

	// Sent is the previously sent set plus the ids of Entries.
	Sent types.SentSet

	Stats Stats
}

// Build fetches recent entries for every category, removes cross-listed
// duplicates, keeps entries matching at least one keyword, orders them most
// recent first, and drops entries already sent. previouslySent is not
// modified.
func (p *Pipeline) Build(ctx context.Context, categories, keywords []string, previouslySent types.SentSet) (Result, error) {
	now := p.now().UTC()
	logger := p.logger()

	var fetched []types.Entry
	for _, category := range categories {
		logger.Info("searching category", slog.String("category", category))
		entries, err := p.fetchRecent(ctx, category, now)
		if err != nil {
			return Result{}, fmt.Errorf("category %s: %w", category, err)
		}
		logger.Debug("category done", slog.String("category", category), slog.Int("recent", len(entries)))
		fetched = append(fetched, entries...)
	}

	var stats Stats
	stats.Fetched = len(fetched)

	unique := deduplicate(fetched)
	stats.Duplicates = len(fetched) - len(unique)

	matched := filterKeywords(unique, keywords)
	stats.KeywordMisses = len(unique) - len(matched)

	sortByRecency(matched, now)

	var toSend []types.Entry
	for _, e := range matched {
		if previouslySent.Has(e.ID) {
			stats.AlreadySent++
			continue
		}
		toSend = append(toSend, e)
	}

	sent := previouslySent.Clone()
	for _, e := range toSend {
		sent.Add(e.ID)
	}

	return Result{Entries: toSend, Sent: sent, Stats: stats}, nil
}

// fetchRecent reads one category's results until the first entry outside
// the recency window. Results arrive newest first, so everything after that
// entry is older still.
func (p *Pipeline) fetchRecent(ctx context.Context, category string, now time.Time) ([]types.Entry, error) {
	var entries []types.Entry
	for raw, err := range p.Source.Search(ctx, category) {
		if err != nil {
			return nil, err
		}
		e, err := Normalize(raw)
		if err != nil {
			return nil, err
		}
		recent, err := IsRecent(e, now, p.window())
		if err != nil {
			return nil, err
		}
		if !recent {
			break
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// deduplicate keeps the first entry seen for each id, in first-seen order.
func deduplicate(entries []types.Entry) []types.Entry {
	seen := make(map[string]struct{}, len(entries))
	unique := make([]types.Entry, 0, len(entries))
	for _, e := range entries {
		if _, ok := seen[e.ID]; ok {
			continue
		}
		seen[e.ID] = struct{}{}
		unique = append(unique, e)
	}
	return unique
}

// filterKeywords keeps entries whose rendered text contains at least one
// keyword, ignoring case.
func filterKeywords(entries []types.Entry, keywords []string) []types.Entry {
	lowered := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
			lowered = append(lowered, k)
		}
	}

	var kept []types.Entry
	for _, e := range entries {
		text := strings.ToLower(e.Text())
		for _, k := range lowered {
			if strings.Contains(text, k) {
				kept = append(kept, e)
				break
			}
		}
	}
	return kept
}

// sortByRecency orders entries by elapsed time since publication, smallest
// first. Ties keep their input order.
func sortByRecency(entries []types.Entry, now time.Time) {
	sort.SliceStable(entries, func(i, j int) bool {
		return now.Sub(entries[i].PublishedAt) < now.Sub(entries[j].PublishedAt)
	})
}

func (p *Pipeline) window() time.Duration {
	if p.Window > 0 {
		return p.Window
	}
	return DefaultRecencyDays * 24 * time.Hour
}

func (p *Pipeline) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}

func (p *Pipeline) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return slog.Default()
}
