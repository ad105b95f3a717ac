package nxgraph

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/strata/internal/adapters/config"
	"go.trai.ch/strata/internal/adapters/shell"
	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/strata/internal/core/ports"
)

// NodeID is the unique identifier for the graph provider Graft node.
const NodeID graft.ID = "adapter.graph_provider"

func init() {
	graft.Register(graft.Node[ports.GraphProvider]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.SettingsNodeID, shell.NodeID},
		Run: func(ctx context.Context) (ports.GraphProvider, error) {
			settings, err := graft.Dep[*domain.Settings](ctx)
			if err != nil {
				return nil, err
			}
			runner, err := graft.Dep[ports.Runner](ctx)
			if err != nil {
				return nil, err
			}
			return NewProvider(settings, runner), nil
		},
	})
}
