package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/strata/internal/core/ports"
)

const (
	// DiskNodeID is the unique identifier for the file system Graft node.
	DiskNodeID graft.ID = "adapter.filesystem"
	// ResolverNodeID is the unique identifier for the asset resolver Graft node.
	ResolverNodeID graft.ID = "adapter.asset_resolver"
	// HasherNodeID is the unique identifier for the hasher Graft node.
	HasherNodeID graft.ID = "adapter.hasher"
)

func init() {
	graft.Register(graft.Node[ports.FileSystem]{
		ID:        DiskNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.FileSystem, error) {
			return NewDisk(), nil
		},
	})

	graft.Register(graft.Node[ports.AssetResolver]{
		ID:        ResolverNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.AssetResolver, error) {
			return NewResolver(), nil
		},
	})

	graft.Register(graft.Node[ports.Hasher]{
		ID:        HasherNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Hasher, error) {
			return NewHasher(NewWalker()), nil
		},
	})
}
