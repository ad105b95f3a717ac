// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/strata/internal/adapters/cas"
	_ "go.trai.ch/strata/internal/adapters/config"
	_ "go.trai.ch/strata/internal/adapters/fs"
	_ "go.trai.ch/strata/internal/adapters/logger"
	_ "go.trai.ch/strata/internal/adapters/nxgraph"
	_ "go.trai.ch/strata/internal/adapters/pkgjson"
	_ "go.trai.ch/strata/internal/adapters/shell"
	_ "go.trai.ch/strata/internal/adapters/swc"
	_ "go.trai.ch/strata/internal/adapters/telemetry/progrock"
	_ "go.trai.ch/strata/internal/adapters/tsc"
	_ "go.trai.ch/strata/internal/adapters/tsconfig"
	// Register app and engine nodes.
	_ "go.trai.ch/strata/internal/app"
	_ "go.trai.ch/strata/internal/engine/depgraph"
	_ "go.trai.ch/strata/internal/engine/layer"
	_ "go.trai.ch/strata/internal/engine/packager"
	_ "go.trai.ch/strata/internal/engine/pathmap"
	_ "go.trai.ch/strata/internal/engine/resolver"
)
