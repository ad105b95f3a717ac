package cas

import (
	"context"
	"path/filepath"

	"github.com/grindlemire/graft"
	"go.trai.ch/strata/internal/adapters/config"
	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/strata/internal/core/ports"
)

// NodeID is the unique identifier for the layer info store Graft node.
const NodeID graft.ID = "adapter.layer_info_store"

func init() {
	graft.Register(graft.Node[ports.LayerInfoStore]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.SettingsNodeID},
		Run: func(ctx context.Context) (ports.LayerInfoStore, error) {
			settings, err := graft.Dep[*domain.Settings](ctx)
			if err != nil {
				return nil, err
			}
			return NewStore(filepath.Join(settings.Root, domain.DefaultStorePath())), nil
		},
	})
}
