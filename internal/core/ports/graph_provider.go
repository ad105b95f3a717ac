package ports

import (
	"context"

	"go.trai.ch/strata/internal/core/domain"
)

// GraphProvider defines the interface for obtaining the workspace project graph.
//
//go:generate mockgen -source=graph_provider.go -destination=mocks/mock_graph_provider.go -package=mocks
type GraphProvider interface {
	// Load returns the project graph of the workspace rooted at root.
	Load(ctx context.Context, root string) (*domain.ProjectGraph, error)
}
