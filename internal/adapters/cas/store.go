// Package cas implements the layer info store as one JSON file per project.
package cas

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/zerr"
)

// Store implements ports.LayerInfoStore using a file-per-project strategy.
type Store struct {
	dir string
}

// NewStore creates a new LayerInfoStore backed by the directory at the given path.
// The directory is created lazily on the first Put.
func NewStore(dir string) *Store {
	return &Store{dir: filepath.Clean(dir)}
}

// Dir returns the directory holding the store's files.
func (s *Store) Dir() string {
	return s.dir
}

// Get retrieves the layer info for a given project.
func (s *Store) Get(project string) (*domain.LayerInfo, error) {
	filename := s.getFilename(project)
	//nolint:gosec // Path is constructed from trusted directory and hashed filename
	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreReadFailed.Error()), "project", project)
	}

	var info domain.LayerInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreUnmarshalFailed.Error()), "project", project)
	}

	return &info, nil
}

// Put stores the layer info.
func (s *Store) Put(info domain.LayerInfo) error {
	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrStoreMarshalFailed.Error())
	}

	if err := os.MkdirAll(s.dir, domain.DirPerm); err != nil {
		return zerr.Wrap(err, domain.ErrStoreCreateFailed.Error())
	}

	filename := s.getFilename(info.Project)
	//nolint:gosec // Path is constructed from trusted directory and hashed filename
	if err := os.WriteFile(filename, data, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "project", info.Project)
	}

	return nil
}

// Delete removes the layer info for a project.
func (s *Store) Delete(project string) error {
	err := os.Remove(s.getFilename(project))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreDeleteFailed.Error()), "project", project)
	}
	return nil
}

func (s *Store) getFilename(project string) string {
	hash := sha256.Sum256([]byte(project))
	return filepath.Join(s.dir, hex.EncodeToString(hash[:])+".json")
}
