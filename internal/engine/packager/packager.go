// Package packager assembles a distributable package from a project and its vendored layers.
package packager

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"

	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/strata/internal/core/ports"
	"go.trai.ch/strata/internal/engine/manifest"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// ConfigResolver resolves and validates project configurations.
type ConfigResolver interface {
	Resolve(opts domain.Options, ectx domain.ExecutorContext) (*domain.Config, error)
	Validate(cfg *domain.Config) error
}

// DependencyWalker classifies the dependencies of a project.
type DependencyWalker interface {
	Walk(ctx context.Context, graph *domain.ProjectGraph, root string) (domain.DependencyClassification, error)
}

// LayerBuilder produces and looks up project layers.
type LayerBuilder interface {
	Build(ctx context.Context, cfg *domain.Config, unpublished []*domain.Dependency) (domain.Layer, error)
	Cached(cfg *domain.Config) (domain.Layer, bool, error)
}

// Packager runs the packaging pipeline of one project.
type Packager struct {
	resolver  ConfigResolver
	walker    DependencyWalker
	builder   LayerBuilder
	fs        ports.FileSystem
	manifests ports.ManifestStore
	logger    ports.Logger
}

// New creates a new Packager.
func New(
	resolver ConfigResolver,
	walker DependencyWalker,
	builder LayerBuilder,
	fs ports.FileSystem,
	manifests ports.ManifestStore,
	logger ports.Logger,
) *Packager {
	return &Packager{
		resolver:  resolver,
		walker:    walker,
		builder:   builder,
		fs:        fs,
		manifests: manifests,
		logger:    logger,
	}
}

// Package builds ectx.ProjectName and its unpublished dependencies into layers, assembles them
// into one tree and replaces the project's output directory with it. The previous output is left
// untouched when any step fails.
func (p *Packager) Package(ctx context.Context, opts domain.Options, ectx domain.ExecutorContext) error {
	cfg, err := p.resolver.Resolve(opts, ectx)
	if err != nil {
		return err
	}
	if err := p.resolver.Validate(cfg); err != nil {
		return err
	}

	deps, err := p.walker.Walk(ctx, ectx.Graph, cfg.ProjectName)
	if err != nil {
		return err
	}

	p.logger.Info(fmt.Sprintf("Building layer for %s...", cfg.ProjectName))
	root, err := p.builder.Build(ctx, cfg, deps.Unpublished)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrLayerBuildFailed.Error()), "project", cfg.ProjectName)
	}

	assembly := cfg.AssemblyDir()
	if err := p.fs.Remove(assembly); err != nil {
		return err
	}
	defer func() {
		_ = p.fs.Remove(assembly)
	}()

	if err := p.fs.Copy(root.Dir, assembly); err != nil {
		return err
	}

	if err := p.vendor(ctx, cfg, ectx, assembly, deps.Unpublished); err != nil {
		return err
	}

	for _, dep := range manifest.NonSemver(deps.Published) {
		p.logger.Warn(fmt.Sprintf("%s: dependency %s is not a semantic version, keeping it as is", cfg.ProjectName, dep))
	}

	final, err := manifest.Synthesize(cfg.Manifest, manifest.ForConfig(cfg, deps.Published))
	if err != nil {
		return zerr.With(err, "project", cfg.ProjectName)
	}
	if err := p.manifests.Write(assembly, final); err != nil {
		return err
	}

	if err := p.fs.Move(assembly, cfg.OutputDir); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrPackagingFailed.Error()), "project", cfg.ProjectName)
	}

	p.logger.Info(fmt.Sprintf("Packaged %s into %s", cfg.ProjectName, cfg.OutputDir))
	return nil
}

// Layer builds only the layer of ectx.ProjectName.
func (p *Packager) Layer(ctx context.Context, opts domain.Options, ectx domain.ExecutorContext) (domain.Layer, error) {
	cfg, err := p.resolver.Resolve(opts, ectx)
	if err != nil {
		return domain.Layer{}, err
	}
	if err := p.resolver.Validate(cfg); err != nil {
		return domain.Layer{}, err
	}

	deps, err := p.walker.Walk(ctx, ectx.Graph, cfg.ProjectName)
	if err != nil {
		return domain.Layer{}, err
	}

	p.logger.Info(fmt.Sprintf("Building layer for %s...", cfg.ProjectName))
	layer, err := p.builder.Build(ctx, cfg, deps.Unpublished)
	if err != nil {
		return domain.Layer{}, zerr.With(zerr.Wrap(err, domain.ErrLayerBuildFailed.Error()), "project", cfg.ProjectName)
	}
	return layer, nil
}

// vendor places the layer of every unpublished dependency below each format's node_modules.
// All dependencies are processed before the first failure is reported.
func (p *Packager) vendor(
	ctx context.Context,
	cfg *domain.Config,
	ectx domain.ExecutorContext,
	assembly string,
	unpublished []*domain.Dependency,
) error {
	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())

	for _, dep := range unpublished {
		g.Go(func() error {
			layer, err := p.dependencyLayer(ctx, cfg, ectx, dep)
			if err != nil {
				return zerr.With(zerr.Wrap(err, domain.ErrLayerBuildFailed.Error()), "project", dep.Project.Name)
			}

			for _, f := range domain.Formats() {
				dest := filepath.Join(assembly, cfg.Layout.Dir(f), domain.NodeModulesDirName, dep.DirName())
				if err := p.fs.Copy(layer.Dir, dest); err != nil {
					return err
				}
				if err := p.fs.Remove(filepath.Join(dest, layer.Layout.Dir(f.Other()))); err != nil {
					return err
				}
			}
			return nil
		})
	}
	return g.Wait()
}

// dependencyLayer reuses the cached layer of a packagable dependency, and otherwise builds one
// from the dependency's own target options with the root's runtime and layout.
func (p *Packager) dependencyLayer(
	ctx context.Context,
	cfg *domain.Config,
	ectx domain.ExecutorContext,
	dep *domain.Dependency,
) (domain.Layer, error) {
	opts, err := DependencyOptions(dep.Project, cfg)
	if err != nil {
		return domain.Layer{}, err
	}

	depCtx := ectx.ForProject(dep.Project.Name)
	depCtx.ExecutionID = cfg.ExecutionID

	depCfg, err := p.resolver.Resolve(opts, depCtx)
	if err != nil {
		return domain.Layer{}, err
	}

	if dep.Project.Packagable() {
		layer, ok, err := p.builder.Cached(depCfg)
		if err != nil {
			return domain.Layer{}, err
		}
		if ok {
			return layer, nil
		}
	}

	return p.builder.Build(ctx, depCfg, nil)
}

// DependencyOptions derives the layer options of a vendored project from its build target, or its
// package target when it has none, borrowing the runtime and layout of the root configuration.
func DependencyOptions(project *domain.ProjectNode, root *domain.Config) (domain.Options, error) {
	target, ok := project.BuildTarget()
	if !ok {
		target, _ = project.PackageTarget()
	}

	opts, err := target.Options.Options(domain.DistributionLib)
	if err != nil {
		return domain.Options{}, zerr.With(err, "project", project.Name)
	}
	opts.Distribution = domain.DistributionLib
	opts.TargetRuntime = root.TargetRuntime
	opts.Layout = root.Layout
	return opts, nil
}
