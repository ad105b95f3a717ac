package ports

import "go.trai.ch/strata/internal/core/domain"

// LayerInfoStore defines the interface for storing and retrieving layer metadata.
//
//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type LayerInfoStore interface {
	// Get retrieves the layer info for a given project.
	// Returns nil, nil if not found.
	Get(project string) (*domain.LayerInfo, error)

	// Put stores the layer info.
	Put(info domain.LayerInfo) error

	// Delete removes the layer info for a project. Missing entries are accepted.
	Delete(project string) error
}
