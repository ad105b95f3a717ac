package resolver

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/strata/internal/adapters/logger"   //nolint:depguard // Wired in engine wiring
	"go.trai.ch/strata/internal/adapters/pkgjson"  //nolint:depguard // Wired in engine wiring
	"go.trai.ch/strata/internal/adapters/tsconfig" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/strata/internal/core/ports"
)

// NodeID is the unique identifier for the config resolver Graft node.
const NodeID graft.ID = "engine.resolver"

func init() {
	graft.Register(graft.Node[*Resolver]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{tsconfig.NodeID, pkgjson.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (*Resolver, error) {
			tsconfigs, err := graft.Dep[ports.TSConfigLoader](ctx)
			if err != nil {
				return nil, err
			}

			manifests, err := graft.Dep[ports.ManifestStore](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return New(tsconfigs, manifests, log), nil
		},
	})
}
