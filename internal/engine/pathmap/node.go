package pathmap

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/strata/internal/adapters/fs" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/strata/internal/core/ports"
)

// NodeID is the unique identifier for the path mapping translator Graft node.
const NodeID graft.ID = "engine.pathmap"

func init() {
	graft.Register(graft.Node[*Translator]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.DiskNodeID},
		Run: func(ctx context.Context) (*Translator, error) {
			disk, err := graft.Dep[ports.FileSystem](ctx)
			if err != nil {
				return nil, err
			}
			return New(disk), nil
		},
	})
}
