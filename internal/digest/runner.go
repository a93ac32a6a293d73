// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package digest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/pdiddy/arxiv-digest/pkg/types"
)

// DefaultSubject is the digest subject line when none is configured.
const DefaultSubject = "Daily arxiv Digest (DaD)"

// SentStore persists the sent-id set between runs.
type SentStore interface {
	Load(ctx context.Context) (types.SentSet, error)
	Save(ctx context.Context, sent types.SentSet) error
}

// Mailer delivers a rendered digest.
type Mailer interface {
	Send(ctx context.Context, msg types.MailMessage) error
}

// Runner executes one digest run end to end.
type Runner struct {
	Config types.DigestConfig
	Source Source
	Store  SentStore
	Mailer Mailer

	// DryRun renders the digest without sending it or saving the sent-set.
	DryRun bool

	// Now returns the reference clock. Nil means time.Now.
	Now func() time.Time

	Logger *slog.Logger
}

// RunSummary describes a completed run.
type RunSummary struct {
	RunID       string
	Entries     []types.Entry
	HTML        string
	Stats       Stats
	Sent        bool
	ArchivePath string
}

// Run loads the sent-set, builds and renders the digest, mails it, and
// only then persists the updated sent-set. A failed send leaves the stored
// set untouched, so the same entries are offered again next run.
func (r *Runner) Run(ctx context.Context) (RunSummary, error) {
	runID := uuid.NewString()
	logger := r.logger().With(slog.String("run_id", runID))
	now := r.now()

	prev, err := r.Store.Load(ctx)
	if err != nil {
		return RunSummary{}, fmt.Errorf("loading sent-set: %w", err)
	}
	logger.Info("loaded sent-set", slog.Int("ids", prev.Len()))

	p := &Pipeline{
		Source: r.Source,
		Window: r.Config.RecencyWindow(),
		Now:    func() time.Time { return now },
		Logger: logger,
	}
	res, err := p.Build(ctx, r.Config.Categories, r.Config.Keywords, prev)
	if err != nil {
		return RunSummary{}, fmt.Errorf("building digest: %w", err)
	}
	logger.Info("digest built",
		slog.Int("fetched", res.Stats.Fetched),
		slog.Int("duplicates", res.Stats.Duplicates),
		slog.Int("keyword_misses", res.Stats.KeywordMisses),
		slog.Int("already_sent", res.Stats.AlreadySent),
		slog.Int("to_send", len(res.Entries)))

	html, err := RenderHTML(res.Entries, r.Config.Keywords, now)
	if err != nil {
		return RunSummary{}, fmt.Errorf("rendering digest: %w", err)
	}

	summary := RunSummary{RunID: runID, Entries: res.Entries, HTML: html, Stats: res.Stats}

	if r.DryRun {
		logger.Info("dry run, not sending")
		return summary, nil
	}
	if len(res.Entries) == 0 && !r.Config.SendEmpty {
		logger.Info("no new entries, skipping send")
		return summary, nil
	}

	subject := r.Config.Mail.Subject
	if subject == "" {
		subject = DefaultSubject
	}
	msg := types.MailMessage{
		To:      r.Config.Recipient,
		Subject: subject,
		HTML:    html,
		RunID:   runID,
	}
	if err := r.Mailer.Send(ctx, msg); err != nil {
		return summary, fmt.Errorf("sending digest: %w", err)
	}
	summary.Sent = true
	logger.Info("digest sent", slog.String("to", r.Config.Recipient), slog.Int("entries", len(res.Entries)))

	if err := r.Store.Save(ctx, res.Sent); err != nil {
		return summary, fmt.Errorf("saving sent-set: %w", err)
	}
	logger.Info("saved sent-set", slog.Int("ids", res.Sent.Len()))

	if r.Config.ArchiveDir != "" {
		path, err := WriteArchive(r.Config.ArchiveDir, Archive{
			RunID:    runID,
			SentAt:   now.UTC(),
			To:       r.Config.Recipient,
			Keywords: r.Config.Keywords,
			Entries:  res.Entries,
		})
		if err != nil {
			logger.Warn("archive write failed", slog.Any("error", err))
		} else {
			summary.ArchivePath = path
		}
	}

	return summary, nil
}

func (r *Runner) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}
