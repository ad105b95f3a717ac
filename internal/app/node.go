package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/strata/internal/adapters/config"             //nolint:depguard // Wired in app layer
	"go.trai.ch/strata/internal/adapters/fs"                 //nolint:depguard // Wired in app layer
	"go.trai.ch/strata/internal/adapters/logger"             //nolint:depguard // Wired in app layer
	"go.trai.ch/strata/internal/adapters/nxgraph"            //nolint:depguard // Wired in app layer
	"go.trai.ch/strata/internal/adapters/swc"                //nolint:depguard // Wired in app layer
	"go.trai.ch/strata/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in app layer
	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/strata/internal/core/ports"
	"go.trai.ch/strata/internal/engine/packager"
	"go.trai.ch/strata/internal/engine/pathmap"
	"go.trai.ch/strata/internal/engine/resolver"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.SettingsNodeID,
			nxgraph.NodeID,
			resolver.NodeID,
			pathmap.NodeID,
			swc.NodeID,
			packager.NodeID,
			fs.DiskNodeID,
			progrock.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewComponents(app, log), nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	settings, err := graft.Dep[*domain.Settings](ctx)
	if err != nil {
		return nil, err
	}

	graphs, err := graft.Dep[ports.GraphProvider](ctx)
	if err != nil {
		return nil, err
	}

	res, err := graft.Dep[*resolver.Resolver](ctx)
	if err != nil {
		return nil, err
	}

	mapper, err := graft.Dep[*pathmap.Translator](ctx)
	if err != nil {
		return nil, err
	}

	transpiler, err := graft.Dep[ports.Transpiler](ctx)
	if err != nil {
		return nil, err
	}

	pipeline, err := graft.Dep[*packager.Packager](ctx)
	if err != nil {
		return nil, err
	}

	disk, err := graft.Dep[ports.FileSystem](ctx)
	if err != nil {
		return nil, err
	}

	telemetry, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(settings, graphs, res, mapper, transpiler, pipeline, disk, telemetry, log), nil
}
