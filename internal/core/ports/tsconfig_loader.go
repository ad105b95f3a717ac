package ports

import "go.trai.ch/strata/internal/core/domain"

// TSConfigLoader defines the interface for loading a project's module-resolution config.
//
//go:generate mockgen -source=tsconfig_loader.go -destination=mocks/mock_tsconfig_loader.go -package=mocks
type TSConfigLoader interface {
	// Load finds the tsconfig.json governing projectDir and resolves its extends chain.
	Load(projectDir string) (*domain.TSConfig, error)
}
