package layer

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/strata/internal/adapters/cas"                //nolint:depguard // Wired in engine wiring
	"go.trai.ch/strata/internal/adapters/fs"                 //nolint:depguard // Wired in engine wiring
	"go.trai.ch/strata/internal/adapters/logger"             //nolint:depguard // Wired in engine wiring
	"go.trai.ch/strata/internal/adapters/pkgjson"            //nolint:depguard // Wired in engine wiring
	"go.trai.ch/strata/internal/adapters/swc"                //nolint:depguard // Wired in engine wiring
	"go.trai.ch/strata/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/strata/internal/adapters/tsc"                //nolint:depguard // Wired in engine wiring
	"go.trai.ch/strata/internal/core/ports"
	"go.trai.ch/strata/internal/engine/pathmap"
)

// NodeID is the unique identifier for the layer builder Graft node.
const NodeID graft.ID = "engine.layer_builder"

func init() {
	graft.Register(graft.Node[*Builder]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			tsc.NodeID,
			swc.NodeID,
			pkgjson.NodeID,
			fs.DiskNodeID,
			fs.ResolverNodeID,
			fs.HasherNodeID,
			cas.NodeID,
			progrock.NodeID,
			pathmap.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Builder, error) {
			checker, err := graft.Dep[ports.TypeChecker](ctx)
			if err != nil {
				return nil, err
			}

			transpiler, err := graft.Dep[ports.Transpiler](ctx)
			if err != nil {
				return nil, err
			}

			manifests, err := graft.Dep[ports.ManifestStore](ctx)
			if err != nil {
				return nil, err
			}

			disk, err := graft.Dep[ports.FileSystem](ctx)
			if err != nil {
				return nil, err
			}

			assets, err := graft.Dep[ports.AssetResolver](ctx)
			if err != nil {
				return nil, err
			}

			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}

			store, err := graft.Dep[ports.LayerInfoStore](ctx)
			if err != nil {
				return nil, err
			}

			telemetry, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}

			mapper, err := graft.Dep[*pathmap.Translator](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewBuilder(Deps{
				Checker:    checker,
				Transpiler: transpiler,
				Manifests:  manifests,
				FS:         disk,
				Assets:     assets,
				Store:      store,
				Hasher:     hasher,
				Telemetry:  telemetry,
				Mapper:     mapper,
				Logger:     log,
			}), nil
		},
	})
}
