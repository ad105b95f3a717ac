package depgraph

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/strata/internal/adapters/config"  //nolint:depguard // Wired in engine wiring
	"go.trai.ch/strata/internal/adapters/pkgjson" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/strata/internal/core/ports"
)

// NodeID is the unique identifier for the dependency walker Graft node.
const NodeID graft.ID = "engine.depgraph"

func init() {
	graft.Register(graft.Node[*Walker]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.SettingsNodeID, pkgjson.NodeID},
		Run: func(ctx context.Context) (*Walker, error) {
			settings, err := graft.Dep[*domain.Settings](ctx)
			if err != nil {
				return nil, err
			}

			manifests, err := graft.Dep[ports.ManifestStore](ctx)
			if err != nil {
				return nil, err
			}

			return New(manifests, settings.Root), nil
		},
	})
}
