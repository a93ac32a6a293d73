// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sentstore persists the set of identifiers already included in a
// sent digest. The set is read once at the start of a run and written once
// at the end; there is a single writer.
package sentstore

import (
	"context"
	"fmt"

	"github.com/pdiddy/arxiv-digest/pkg/types"
)

// DefaultPath is the store location when none is configured.
const DefaultPath = "previous_arxivs.txt"

// Store loads and saves the sent-id set.
type Store interface {
	Load(ctx context.Context) (types.SentSet, error)
	Save(ctx context.Context, sent types.SentSet) error

	// Forget removes id so the entry can be sent again. It reports whether
	// id was present.
	Forget(ctx context.Context, id string) (bool, error)

	Close() error
}

// Open returns the store selected by cfg. An empty backend selects the flat
// file store.
func Open(cfg types.StoreConfig) (Store, error) {
	path := cfg.Path
	switch cfg.Backend {
	case types.StoreFile, "":
		if path == "" {
			path = DefaultPath
		}
		return NewFileStore(path), nil
	case types.StoreSQLite:
		if path == "" {
			path = "arxiv-digest.db"
		}
		return NewSQLiteStore(path)
	default:
		return nil, fmt.Errorf("unknown store backend %q: use file or sqlite", cfg.Backend)
	}
}
