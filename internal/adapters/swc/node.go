package swc

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/strata/internal/adapters/config"
	"go.trai.ch/strata/internal/adapters/shell"
	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/strata/internal/core/ports"
)

// NodeID is the unique identifier for the transpiler Graft node.
const NodeID graft.ID = "adapter.transpiler"

func init() {
	graft.Register(graft.Node[ports.Transpiler]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.SettingsNodeID, shell.NodeID},
		Run: func(ctx context.Context) (ports.Transpiler, error) {
			settings, err := graft.Dep[*domain.Settings](ctx)
			if err != nil {
				return nil, err
			}
			runner, err := graft.Dep[ports.Runner](ctx)
			if err != nil {
				return nil, err
			}
			return NewTranspiler(runner, settings.SWCCommand), nil
		},
	})
}
