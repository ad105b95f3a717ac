package ports

import "go.trai.ch/strata/internal/core/domain"

// ConfigLoader defines the interface for loading the workspace settings.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// DiscoverRoot walks up from cwd to find the workspace root.
	// Returns the directory containing strata.yaml or nx.json.
	DiscoverRoot(cwd string) (string, error)

	// Load reads strata.yaml from root. Missing files yield the default settings.
	Load(root string) (*domain.Settings, error)
}
