// Package layer compiles a single project into a cached, dual-format layer.
package layer

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/strata/internal/core/ports"
	"go.trai.ch/strata/internal/engine/manifest"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// Mapper computes the transpiler path mappings of a project.
type Mapper interface {
	Translate(cfg *domain.Config, unpublished []*domain.Dependency) (domain.PathMappings, error)
}

// Builder produces layers. Concurrent builds of the same project share one result.
type Builder struct {
	checker    ports.TypeChecker
	transpiler ports.Transpiler
	manifests  ports.ManifestStore
	fs         ports.FileSystem
	assets     ports.AssetResolver
	store      ports.LayerInfoStore
	hasher     ports.Hasher
	telemetry  ports.Telemetry
	mapper     Mapper
	logger     ports.Logger

	group singleflight.Group
	now   func() time.Time
}

// Deps are the collaborators of a Builder.
type Deps struct {
	Checker    ports.TypeChecker
	Transpiler ports.Transpiler
	Manifests  ports.ManifestStore
	FS         ports.FileSystem
	Assets     ports.AssetResolver
	Store      ports.LayerInfoStore
	Hasher     ports.Hasher
	Telemetry  ports.Telemetry
	Mapper     Mapper
	Logger     ports.Logger
}

// NewBuilder creates a new Builder.
func NewBuilder(deps Deps) *Builder {
	return &Builder{
		checker:    deps.Checker,
		transpiler: deps.Transpiler,
		manifests:  deps.Manifests,
		fs:         deps.FS,
		assets:     deps.Assets,
		store:      deps.Store,
		hasher:     deps.Hasher,
		telemetry:  deps.Telemetry,
		mapper:     deps.Mapper,
		logger:     deps.Logger,
		now:        time.Now,
	}
}

// Build returns the layer of cfg's project, reusing the cached one when it was produced by the
// same execution. unpublished are the project's vendored dependencies, used for path mappings.
func (b *Builder) Build(ctx context.Context, cfg *domain.Config, unpublished []*domain.Dependency) (domain.Layer, error) {
	v, err, _ := b.group.Do(cfg.ProjectName, func() (any, error) {
		return b.build(ctx, cfg, unpublished)
	})
	if err != nil {
		return domain.Layer{}, err
	}
	return v.(domain.Layer), nil
}

// Cached returns the layer recorded for the project by any execution, if its directory still exists
// and the project's sources still hash to the recorded input hash.
func (b *Builder) Cached(cfg *domain.Config) (domain.Layer, bool, error) {
	info, err := b.store.Get(cfg.ProjectName)
	if err != nil || info == nil {
		return domain.Layer{}, false, err
	}
	exists, err := b.fs.Exists(cfg.LayerDir())
	if err != nil || !exists {
		return domain.Layer{}, false, err
	}
	hash, err := b.sourceHash(cfg)
	if err != nil {
		return domain.Layer{}, false, err
	}
	if info.InputHash == "" || info.InputHash != hash {
		b.logger.Info(fmt.Sprintf("Layer of %s is stale, rebuilding", cfg.ProjectName))
		return domain.Layer{}, false, nil
	}
	return domain.Layer{
		Project: cfg.ProjectName,
		Dir:     cfg.LayerDir(),
		Layout:  cfg.Layout,
		Cached:  true,
	}, true, nil
}

func (b *Builder) build(ctx context.Context, cfg *domain.Config, unpublished []*domain.Dependency) (layer domain.Layer, err error) {
	ctx, vertex := b.telemetry.Record(ctx, "layer "+cfg.ProjectName)
	defer func() {
		vertex.Complete(err)
	}()

	info, err := b.store.Get(cfg.ProjectName)
	if err != nil {
		return domain.Layer{}, err
	}
	if info != nil && info.ExecutionID == cfg.ExecutionID.String() {
		exists, err := b.fs.Exists(cfg.LayerDir())
		if err != nil {
			return domain.Layer{}, err
		}
		if exists {
			vertex.Cached()
			return domain.Layer{Project: cfg.ProjectName, Dir: cfg.LayerDir(), Layout: cfg.Layout, Cached: true}, nil
		}
	}

	hash, err := b.sourceHash(cfg)
	if err != nil {
		return domain.Layer{}, err
	}

	staging := cfg.StagingLayerDir()
	if err := b.fs.Remove(staging); err != nil {
		return domain.Layer{}, err
	}
	if err := b.fs.EnsureDir(staging); err != nil {
		return domain.Layer{}, err
	}
	defer func() {
		if err != nil {
			_ = b.fs.Remove(staging)
		}
	}()

	interim, err := manifest.Synthesize(cfg.Manifest, manifest.ForConfig(cfg, nil))
	if err != nil {
		return domain.Layer{}, zerr.With(err, "project", cfg.ProjectName)
	}
	if err := b.manifests.Write(staging, interim); err != nil {
		return domain.Layer{}, err
	}

	if err := b.typecheck(ctx, vertex, cfg, staging); err != nil {
		return domain.Layer{}, err
	}

	mappings, err := b.mapper.Translate(cfg, unpublished)
	if err != nil {
		return domain.Layer{}, zerr.With(err, "project", cfg.ProjectName)
	}

	if err := b.transpile(ctx, vertex, cfg, staging, mappings); err != nil {
		return domain.Layer{}, err
	}

	if err := b.placeDeclarations(cfg, staging); err != nil {
		return domain.Layer{}, err
	}

	for _, f := range domain.Formats() {
		if err := b.manifests.Write(filepath.Join(staging, cfg.Layout.Dir(f)), domain.ManifestFragment(f)); err != nil {
			return domain.Layer{}, err
		}
	}

	if err := b.copyAssets(cfg, staging); err != nil {
		return domain.Layer{}, err
	}

	if err := b.fs.Move(staging, cfg.LayerDir()); err != nil {
		return domain.Layer{}, err
	}

	if err := b.store.Put(domain.LayerInfo{
		Project:     cfg.ProjectName,
		ExecutionID: cfg.ExecutionID.String(),
		InputHash:   hash,
		BuiltAt:     b.now(),
	}); err != nil {
		return domain.Layer{}, err
	}

	return domain.Layer{Project: cfg.ProjectName, Dir: cfg.LayerDir(), Layout: cfg.Layout}, nil
}

// sourceHash hashes the sources a layer is compiled from, before compilation starts.
func (b *Builder) sourceHash(cfg *domain.Config) (string, error) {
	hash, err := b.hasher.ComputeSourceHash(cfg.ProjectBaseDir, []string{domain.NodeModulesDirName, domain.DistDirName})
	if err != nil {
		return "", zerr.With(err, "project", cfg.ProjectName)
	}
	return hash, nil
}

func (b *Builder) typecheck(ctx context.Context, vertex ports.Vertex, cfg *domain.Config, staging string) error {
	b.logger.Info(fmt.Sprintf("Type checking %s...", cfg.ProjectName))
	start := b.now()

	result, err := b.checker.Check(ctx, domain.TypecheckRequest{
		EntryPath:      cfg.EntryPath,
		TSConfigPath:   cfg.TSConfig.Path,
		RootDir:        cfg.ProjectBaseDir,
		DeclarationDir: filepath.Join(staging, domain.TypesDirName),
		ProjectDir:     cfg.ProjectDir,
		ScratchDir:     cfg.TmpDir,
	})
	if len(result.Diagnostics) > 0 {
		for _, d := range result.Diagnostics {
			vertex.Log(domain.LogLevelError, d.String())
		}
		return zerr.With(
			zerr.Wrap(zerr.New(domain.FormatDiagnostics(result.Diagnostics)), domain.ErrTypeCheckFailed.Error()),
			"project", cfg.ProjectName)
	}
	if err != nil {
		return zerr.With(err, "project", cfg.ProjectName)
	}

	b.logger.Info(fmt.Sprintf("Type check passed in %s", b.now().Sub(start).Round(time.Millisecond)))
	return nil
}

// transpile compiles both formats concurrently. A failure in either is reported after both finish.
func (b *Builder) transpile(
	ctx context.Context,
	vertex ports.Vertex,
	cfg *domain.Config,
	staging string,
	mappings domain.PathMappings,
) error {
	b.logger.Info(fmt.Sprintf("Compiling %s...", cfg.ProjectName))

	var g errgroup.Group
	for _, f := range domain.Formats() {
		g.Go(func() error {
			err := b.transpiler.Transpile(ctx, domain.TranspileRequest{
				SourceDir:     cfg.ProjectBaseDir,
				OutDir:        filepath.Join(staging, cfg.Layout.Dir(f)),
				ModuleType:    f.ModuleType(),
				TargetRuntime: cfg.TargetRuntime,
				Mappings:      mappings,
				ExcludePaths:  []string{cfg.ProjectDistDir, domain.NodeModulesDirName},
				ProjectDir:    cfg.ProjectDir,
				ScratchDir:    cfg.TmpDir,
			})
			if err != nil {
				vertex.Log(domain.LogLevelError, err.Error())
				return zerr.With(err, "project", cfg.ProjectName)
			}
			return nil
		})
	}
	return g.Wait()
}

// placeDeclarations copies the emitted declarations next to the compiled output of each format.
func (b *Builder) placeDeclarations(cfg *domain.Config, staging string) error {
	types := filepath.Join(staging, domain.TypesDirName)
	exists, err := b.fs.Exists(types)
	if err != nil || !exists {
		return err
	}
	for _, f := range domain.Formats() {
		if err := b.fs.Copy(types, filepath.Join(staging, cfg.Layout.Dir(f))); err != nil {
			return err
		}
	}
	return b.fs.Remove(types)
}

// copyAssets copies matched assets below the base directory into both format directories, and
// the README and LICENSE files of the project root into the layer root.
func (b *Builder) copyAssets(cfg *domain.Config, staging string) error {
	exclude := []string{cfg.ProjectDistDir, domain.NodeModulesDirName}
	assets, err := b.assets.ResolveAssets(cfg.ProjectBaseDir, cfg.Assets, exclude)
	if err != nil {
		return err
	}
	for _, asset := range assets {
		rel, err := filepath.Rel(cfg.ProjectBaseDir, asset)
		if err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrCopyFailed.Error()), "path", asset)
		}
		for _, f := range domain.Formats() {
			if err := b.fs.Copy(asset, filepath.Join(staging, cfg.Layout.Dir(f), rel)); err != nil {
				return err
			}
		}
	}

	entries, err := b.fs.ReadDir(cfg.ProjectDir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.IsDir() || !domain.IsDefaultAsset(e.Name()) {
			continue
		}
		if err := b.fs.Copy(filepath.Join(cfg.ProjectDir, e.Name()), filepath.Join(staging, e.Name())); err != nil {
			return err
		}
	}
	return nil
}
