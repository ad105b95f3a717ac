package tsconfig

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/strata/internal/core/ports"
)

// NodeID is the unique identifier for the tsconfig loader Graft node.
const NodeID graft.ID = "adapter.tsconfig_loader"

func init() {
	graft.Register(graft.Node[ports.TSConfigLoader]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.TSConfigLoader, error) {
			return NewLoader(), nil
		},
	})
}
