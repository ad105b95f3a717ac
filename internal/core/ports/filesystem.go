package ports

import "os"

// FileSystem defines the filesystem primitives used to stage and publish layers.
//
//go:generate mockgen -source=filesystem.go -destination=mocks/mock_filesystem.go -package=mocks
type FileSystem interface {
	// EnsureDir creates path and its parents. Existing directories are accepted.
	EnsureDir(path string) error

	// Remove deletes path recursively. Missing paths are accepted.
	Remove(path string) error

	// Copy copies a file or directory tree, merging into an existing destination directory.
	Copy(src, dst string) error

	// Move replaces dst with src, falling back to copy and remove across devices.
	Move(src, dst string) error

	// ReadDir lists the immediate children of path.
	ReadDir(path string) ([]os.DirEntry, error)

	// Exists reports whether path exists.
	Exists(path string) (bool, error)
}

// AssetResolver defines the interface for enumerating static assets.
type AssetResolver interface {
	// ResolveAssets returns the absolute paths of files below root that are default assets
	// or match one of patterns. Directories listed in exclude are not descended into.
	ResolveAssets(root string, patterns []string, exclude []string) ([]string, error)
}
