package ports

import "go.trai.ch/strata/internal/core/domain"

// ManifestStore defines the interface for reading and writing package.json files.
//
//go:generate mockgen -source=manifest_store.go -destination=mocks/mock_manifest_store.go -package=mocks
type ManifestStore interface {
	// Read loads the package.json located in dir.
	// Returns nil, nil if the file does not exist.
	Read(dir string) (*domain.Manifest, error)

	// Write stores the manifest as dir/package.json, creating dir if needed.
	Write(dir string, manifest *domain.Manifest) error
}
