// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sentstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/arxiv-digest/pkg/types"
)

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		cfg     types.StoreConfig
		want    any
		wantErr bool
	}{
		{"default is file", types.StoreConfig{Path: filepath.Join(dir, "ids.txt")}, &FileStore{}, false},
		{"file", types.StoreConfig{Backend: types.StoreFile, Path: filepath.Join(dir, "ids.txt")}, &FileStore{}, false},
		{"sqlite", types.StoreConfig{Backend: types.StoreSQLite, Path: filepath.Join(dir, "ids.db")}, &SQLiteStore{}, false},
		{"unknown", types.StoreConfig{Backend: "redis"}, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Open(tt.cfg)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "unknown store backend")
				return
			}
			require.NoError(t, err)
			defer s.Close()
			assert.IsType(t, tt.want, s)
		})
	}
}

func TestOpenFileDefaultPath(t *testing.T) {
	s, err := Open(types.StoreConfig{})
	require.NoError(t, err)
	assert.Equal(t, DefaultPath, s.(*FileStore).Path())
}

// Every backend must satisfy the same load/save/forget contract.
func TestStoreContract(t *testing.T) {
	backends := map[string]func(t *testing.T) Store{
		"file": func(t *testing.T) Store {
			return NewFileStore(filepath.Join(t.TempDir(), "previous_arxivs.txt"))
		},
		"sqlite": func(t *testing.T) Store {
			s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "sent.db"))
			require.NoError(t, err)
			return s
		},
	}

	for name, open := range backends {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := open(t)
			defer s.Close()

			empty, err := s.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, 0, empty.Len())

			first := types.NewSentSet("http://arxiv.org/abs/2610.00001", "http://arxiv.org/abs/2610.00002")
			require.NoError(t, s.Save(ctx, first))

			got, err := s.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, first.Sorted(), got.Sorted())

			grown := got.Union("http://arxiv.org/abs/2610.00003")
			require.NoError(t, s.Save(ctx, grown))

			got, err = s.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, grown.Sorted(), got.Sorted())

			removed, err := s.Forget(ctx, "http://arxiv.org/abs/2610.00002")
			require.NoError(t, err)
			assert.True(t, removed)

			removed, err = s.Forget(ctx, "http://arxiv.org/abs/2610.99999")
			require.NoError(t, err)
			assert.False(t, removed)

			got, err = s.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, []string{"http://arxiv.org/abs/2610.00001", "http://arxiv.org/abs/2610.00003"}, got.Sorted())
		})
	}
}
