// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sentstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/arxiv-digest/pkg/types"
)

// FileStore keeps the sent-set in a text file, one identifier per line.
type FileStore struct {
	path string
}

// NewFileStore returns a FileStore backed by path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file path.
func (s *FileStore) Path() string { return s.path }

// Load reads the set. A missing file is an empty set; blank lines are
// ignored.
func (s *FileStore) Load(_ context.Context) (types.SentSet, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return types.SentSet{}, nil
		}
		return nil, fmt.Errorf("reading sent-set %s: %w", s.path, err)
	}

	sent := types.SentSet{}
	for _, line := range strings.Split(string(data), "\n") {
		sent.Add(strings.TrimSpace(line))
	}
	return sent, nil
}

// Save replaces the file with sent. The new contents are written to a
// temporary file in the same directory and renamed over the old one, so a
// crash leaves either the old or the new set.
func (s *FileStore) Save(_ context.Context, sent types.SentSet) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating sent-set directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(strings.Join(sent.Sorted(), "\n")); err != nil {
		tmp.Close()
		return fmt.Errorf("writing sent-set: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replacing sent-set %s: %w", s.path, err)
	}
	return nil
}

// Forget removes id from the file.
func (s *FileStore) Forget(ctx context.Context, id string) (bool, error) {
	sent, err := s.Load(ctx)
	if err != nil {
		return false, err
	}
	if !sent.Has(id) {
		return false, nil
	}
	delete(sent, id)
	return true, s.Save(ctx, sent)
}

// Close is a no-op; FileStore holds no open handles.
func (s *FileStore) Close() error { return nil }
