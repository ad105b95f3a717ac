package packager

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/strata/internal/adapters/fs"      //nolint:depguard // Wired in engine wiring
	"go.trai.ch/strata/internal/adapters/logger"  //nolint:depguard // Wired in engine wiring
	"go.trai.ch/strata/internal/adapters/pkgjson" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/strata/internal/core/ports"
	"go.trai.ch/strata/internal/engine/depgraph"
	"go.trai.ch/strata/internal/engine/layer"
	"go.trai.ch/strata/internal/engine/resolver"
)

// NodeID is the unique identifier for the packager Graft node.
const NodeID graft.ID = "engine.packager"

func init() {
	graft.Register(graft.Node[*Packager]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			resolver.NodeID,
			depgraph.NodeID,
			layer.NodeID,
			fs.DiskNodeID,
			pkgjson.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Packager, error) {
			res, err := graft.Dep[*resolver.Resolver](ctx)
			if err != nil {
				return nil, err
			}

			walker, err := graft.Dep[*depgraph.Walker](ctx)
			if err != nil {
				return nil, err
			}

			builder, err := graft.Dep[*layer.Builder](ctx)
			if err != nil {
				return nil, err
			}

			disk, err := graft.Dep[ports.FileSystem](ctx)
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

			return New(res, walker, builder, disk, manifests, log), nil
		},
	})
}
