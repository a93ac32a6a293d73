// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package digest

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pdiddy/arxiv-digest/pkg/types"
)

var (
	// ErrMalformedRecord reports a listing record missing a required field.
	ErrMalformedRecord = errors.New("malformed listing record")

	// ErrFutureDate reports a publication date later than the reference
	// clock, which indicates a clock or timezone bug.
	ErrFutureDate = errors.New("publication date is in the future")
)

// Normalize converts a raw listing record into an Entry. A record missing
// any required field is rejected rather than partially converted, since a
// bad identifier would corrupt deduplication and the sent-set.
func Normalize(raw types.RawRecord) (types.Entry, error) {
	switch {
	case raw.ID == "":
		return types.Entry{}, fmt.Errorf("%w: missing id", ErrMalformedRecord)
	case raw.PublishedParsed == nil:
		return types.Entry{}, fmt.Errorf("%w: %s: missing published time", ErrMalformedRecord, raw.ID)
	case raw.Link == "":
		return types.Entry{}, fmt.Errorf("%w: %s: missing link", ErrMalformedRecord, raw.ID)
	case strings.TrimSpace(raw.Title) == "":
		return types.Entry{}, fmt.Errorf("%w: %s: missing title", ErrMalformedRecord, raw.ID)
	case len(raw.Authors) == 0:
		return types.Entry{}, fmt.Errorf("%w: %s: missing authors", ErrMalformedRecord, raw.ID)
	}

	authors := make([]string, 0, len(raw.Authors))
	for i, a := range raw.Authors {
		name := strings.TrimSpace(a.Name)
		if name == "" {
			return types.Entry{}, fmt.Errorf("%w: %s: author %d has no name", ErrMalformedRecord, raw.ID, i)
		}
		authors = append(authors, name)
	}

	categories := make([]string, 0, len(raw.Tags))
	for _, t := range raw.Tags {
		categories = append(categories, t.Term)
	}

	return types.Entry{
		ID:           stripVersion(raw.ID),
		Title:        collapseSpace(raw.Title),
		Authors:      authors,
		Abstract:     collapseSpace(raw.Summary),
		PublishedAt:  raw.PublishedParsed.UTC().Truncate(time.Second),
		PublishedRaw: raw.Published,
		Categories:   categories,
		URL:          raw.Link,
	}, nil
}

// stripVersion removes a trailing version suffix
// (e.g. "http://arxiv.org/abs/2301.07041v2" → "http://arxiv.org/abs/2301.07041").
// Only a final "v" followed by digits counts, so other v's in the identifier
// are left alone.
func stripVersion(id string) string {
	vIdx := strings.LastIndex(id, "v")
	if vIdx <= 0 || vIdx == len(id)-1 {
		return id
	}
	for _, r := range id[vIdx+1:] {
		if r < '0' || r > '9' {
			return id
		}
	}
	return id[:vIdx]
}

// collapseSpace joins whitespace runs (arXiv wraps titles and abstracts).
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// IsRecent reports whether e was published less than window before now.
// Both times are compared in UTC. A publication date after now is an error.
func IsRecent(e types.Entry, now time.Time, window time.Duration) (bool, error) {
	elapsed := now.UTC().Sub(e.PublishedAt)
	if elapsed < 0 {
		return false, fmt.Errorf("%w: %s published %s, now %s",
			ErrFutureDate, e.ID, e.PublishedAt.Format(time.RFC3339), now.UTC().Format(time.RFC3339))
	}
	return elapsed < window, nil
}
