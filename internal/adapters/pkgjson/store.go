// Package pkgjson reads and writes package.json manifests.
package pkgjson

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/strata/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ManifestStore = (*Store)(nil)

// Store implements ports.ManifestStore on the local file system.
type Store struct{}

// NewStore creates a new Store.
func NewStore() *Store {
	return &Store{}
}

// Read loads dir/package.json. A missing file yields nil, nil.
func (s *Store) Read(dir string) (*domain.Manifest, error) {
	path := filepath.Join(dir, domain.ManifestFileName)
	//nolint:gosec // Path is built from a project directory of the graph
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrManifestReadFailed.Error()), "path", path)
	}

	m := domain.NewManifest()
	if err := json.Unmarshal(data, m); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrManifestParseFailed.Error()), "path", path)
	}
	return m, nil
}

// Write stores the manifest as dir/package.json with two-space indentation and a trailing newline.
func (s *Store) Write(dir string, manifest *domain.Manifest) error {
	path := filepath.Join(dir, domain.ManifestFileName)

	data, err := Encode(manifest)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrManifestWriteFailed.Error()), "path", path)
	}

	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCreateDirFailed.Error()), "path", dir)
	}

	//nolint:gosec // Path is built from a staging directory
	if err := os.WriteFile(path, data, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrManifestWriteFailed.Error()), "path", path)
	}
	return nil
}

// Encode renders a manifest the way package managers write package.json.
// Characters such as '<' and '&' are kept as is.
func Encode(manifest *domain.Manifest) ([]byte, error) {
	raw, err := manifest.MarshalJSON()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
