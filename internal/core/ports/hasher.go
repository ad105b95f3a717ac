package ports

// Hasher defines the interface for computing hashes.
//
//go:generate mockgen -destination=mocks/hasher_mock.go -package=mocks -source=hasher.go
type Hasher interface {
	// ComputeSourceHash computes a single hash over every file below dir,
	// skipping directories whose name matches one of ignores.
	ComputeSourceHash(dir string, ignores []string) (string, error)
}
