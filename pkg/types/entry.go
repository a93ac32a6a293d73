// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the arxiv-digest pipeline:
// raw listing records, normalized entries, the sent-id set, outgoing mail,
// and configuration.
package types

import (
	"strings"
	"time"
)

// Author is a single author of a raw listing record.
type Author struct {
	Name string `json:"name" yaml:"name"`
}

// Tag is a subject tag attached to a raw listing record (e.g. "cs.LG").
type Tag struct {
	Term string `json:"term" yaml:"term"`
}

// RawRecord is a search result as returned by the listing service, before
// normalization.
type RawRecord struct {
	// PublishedParsed is the parsed publication time. Nil when the source
	// did not supply one.
	PublishedParsed *time.Time `json:"published_parsed" yaml:"published_parsed"`

	// Link is the abstract page URL.
	Link string `json:"link" yaml:"link"`

	Title   string   `json:"title" yaml:"title"`
	Authors []Author `json:"authors" yaml:"authors"`
	Summary string   `json:"summary" yaml:"summary"`

	// Published is the original publication date string.
	Published string `json:"published" yaml:"published"`

	// ID is the versioned identifier (e.g. "http://arxiv.org/abs/2301.07041v2").
	ID string `json:"id" yaml:"id"`

	Tags []Tag `json:"tags" yaml:"tags"`
}

// Entry is a normalized paper record ready for filtering and rendering.
type Entry struct {
	// ID is the identifier with its version suffix removed. It is the
	// deduplication key and is stable across revisions of a paper.
	ID string `json:"id" yaml:"id"`

	Title string `json:"title" yaml:"title"`

	// Authors lists author names in source order.
	Authors []string `json:"authors" yaml:"authors"`

	Abstract string `json:"abstract" yaml:"abstract"`

	// PublishedAt is the publication time in UTC.
	PublishedAt time.Time `json:"published_at" yaml:"published_at"`

	// PublishedRaw is the source-provided date string, kept for display.
	PublishedRaw string `json:"published_raw" yaml:"published_raw"`

	Categories []string `json:"categories" yaml:"categories"`

	// URL is the canonical link to the abstract page.
	URL string `json:"url" yaml:"url"`
}

// AuthorList returns the authors joined for display.
func (e Entry) AuthorList() string {
	return strings.Join(e.Authors, ", ")
}

// AbsURL returns the abstract page link derived from the identifier.
func (e Entry) AbsURL() string { return e.ID }

// PDFURL returns the PDF link: the identifier URL with "abs" replaced by "pdf".
func (e Entry) PDFURL() string {
	return strings.ReplaceAll(e.ID, "abs", "pdf")
}

// ShortID returns the display label for the abstract link (e.g. "arXiv:2301.07041").
func (e Entry) ShortID() string {
	parts := strings.Split(e.ID, "/")
	return "arXiv:" + parts[len(parts)-1]
}

// Text returns the full rendered text of the entry. Keyword matching runs
// against this text, so a keyword matches if it appears anywhere a reader
// would see it.
func (e Entry) Text() string {
	var b strings.Builder
	b.WriteString(e.Title + "\n")
	b.WriteString(e.URL + "\n")
	b.WriteString(e.AuthorList() + "\n")
	b.WriteString(strings.Join(e.Categories, ", ") + "\n")
	b.WriteString(e.PublishedAt.UTC().Format(time.ANSIC) + " GMT \n")
	b.WriteString("\n" + e.Abstract + "\n")
	return b.String()
}
