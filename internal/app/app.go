// Package app implements the application layer for strata.
package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"

	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/strata/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// ConfigResolver resolves and validates project configurations.
type ConfigResolver interface {
	Resolve(opts domain.Options, ectx domain.ExecutorContext) (*domain.Config, error)
	Validate(cfg *domain.Config) error
}

// Mapper computes the transpiler path mappings of a project.
type Mapper interface {
	Translate(cfg *domain.Config, unpublished []*domain.Dependency) (domain.PathMappings, error)
}

// Pipeline runs the layered packaging pipeline.
type Pipeline interface {
	Package(ctx context.Context, opts domain.Options, ectx domain.ExecutorContext) error
	Layer(ctx context.Context, opts domain.Options, ectx domain.ExecutorContext) (domain.Layer, error)
}

type handler func(ctx context.Context, opts domain.Options, ectx domain.ExecutorContext) error

// executorDistributions lists the distributions each executor accepts; the first is its default.
var executorDistributions = map[string][]domain.Distribution{
	domain.ExecutorBuild: {
		domain.DistributionInternal,
		domain.DistributionExternal,
		domain.DistributionLayer,
	},
	domain.ExecutorPackage: {
		domain.DistributionLib,
		domain.DistributionNPM,
		domain.DistributionApp,
	},
}

// App represents the main application logic.
type App struct {
	settings   *domain.Settings
	graphs     ports.GraphProvider
	resolver   ConfigResolver
	mapper     Mapper
	transpiler ports.Transpiler
	pipeline   Pipeline
	fs         ports.FileSystem
	telemetry  ports.Telemetry
	logger     ports.Logger

	handlers map[domain.Distribution]handler
}

// New creates a new App instance.
func New(
	settings *domain.Settings,
	graphs ports.GraphProvider,
	resolver ConfigResolver,
	mapper Mapper,
	transpiler ports.Transpiler,
	pipeline Pipeline,
	fs ports.FileSystem,
	telemetry ports.Telemetry,
	log ports.Logger,
) *App {
	a := &App{
		settings:   settings,
		graphs:     graphs,
		resolver:   resolver,
		mapper:     mapper,
		transpiler: transpiler,
		pipeline:   pipeline,
		fs:         fs,
		telemetry:  telemetry,
		logger:     log,
	}
	a.handlers = map[domain.Distribution]handler{
		domain.DistributionInternal: a.buildInternal,
		domain.DistributionExternal: pipeline.Package,
		domain.DistributionLayer:    a.buildLayer,
		domain.DistributionLib:      pipeline.Package,
		domain.DistributionNPM:      pipeline.Package,
		domain.DistributionApp:      pipeline.Package,
	}
	return a
}

// RunOptions configuration for the Build and Package methods.
type RunOptions struct {
	// Projects are the graph projects to run, concurrently.
	Projects []string
	// Target names the project target whose options are used. Empty selects the first target
	// using the command's executor.
	Target string
	// Overrides replace the declared target options field by field.
	Overrides domain.TargetOptions
	// ExecutionID joins the layers of an outer invocation. Empty starts a new execution.
	ExecutionID string
	Verbose     bool
}

// CleanOptions configuration for the Clean method.
type CleanOptions struct {
	All bool
}

// SetJSONOutput switches the logger to JSON output when it supports it.
func (a *App) SetJSONOutput(enable bool) {
	if l, ok := a.logger.(interface{ SetJSON(enable bool) }); ok {
		l.SetJSON(enable)
	}
}

// Build runs the build executor for the requested projects.
func (a *App) Build(ctx context.Context, opts RunOptions) error {
	return a.run(ctx, domain.ExecutorBuild, opts)
}

// Package runs the package executor for the requested projects.
func (a *App) Package(ctx context.Context, opts RunOptions) error {
	return a.run(ctx, domain.ExecutorPackage, opts)
}

// run executes every project concurrently. All projects finish before the first failure is reported.
func (a *App) run(ctx context.Context, executor string, opts RunOptions) error {
	if len(opts.Projects) == 0 {
		return domain.ErrNoProjectsSpecified
	}

	ctx = ports.ContextWithVerbose(ctx, opts.Verbose)
	defer func() {
		_ = a.telemetry.Close()
	}()

	graph, err := a.graphs.Load(ctx, a.settings.Root)
	if err != nil {
		return a.fail(err)
	}

	nested := opts.ExecutionID != ""
	execID := domain.ExecutionID(opts.ExecutionID)
	if !nested {
		execID = domain.NewExecutionID()
		defer a.removeScratch(execID)
	}

	var g errgroup.Group
	for _, name := range opts.Projects {
		g.Go(func() error {
			return a.runProject(ctx, executor, opts, domain.ExecutorContext{
				ExecutionID:   execID,
				WorkspaceRoot: a.settings.Root,
				ProjectName:   name,
				Graph:         graph,
				Verbose:       opts.Verbose,
			}, nested)
		})
	}
	if err := g.Wait(); err != nil {
		return a.fail(err)
	}
	return nil
}

func (a *App) runProject(
	ctx context.Context,
	executor string,
	opts RunOptions,
	ectx domain.ExecutorContext,
	nested bool,
) error {
	project, ok := ectx.Graph.Project(ectx.ProjectName)
	if !ok {
		return zerr.With(domain.ErrProjectNotFound, "project", ectx.ProjectName)
	}

	options, err := a.options(executor, project, opts)
	if err != nil {
		return err
	}

	if !slices.Contains(executorDistributions[executor], options.Distribution) {
		return zerr.With(zerr.With(domain.ErrDistributionNotSupported,
			"distribution", options.Distribution.String()),
			"executor", executor)
	}
	if options.Distribution == domain.DistributionLayer && !nested {
		return zerr.With(domain.ErrLayerDistributionReserved, "project", project.Name)
	}

	return a.handlers[options.Distribution](ctx, options, ectx)
}

// options merges the workspace defaults, the declared target options and the overrides, in
// increasing precedence.
func (a *App) options(executor string, project *domain.ProjectNode, opts RunOptions) (domain.Options, error) {
	var declared domain.TargetOptions
	if opts.Target != "" {
		target, ok := project.Targets[opts.Target]
		if !ok {
			return domain.Options{}, zerr.With(zerr.With(domain.ErrTargetNotFound,
				"target", opts.Target),
				"project", project.Name)
		}
		declared = target.Options
	} else {
		target, ok := project.BuildTarget()
		if executor == domain.ExecutorPackage {
			target, ok = project.PackageTarget()
		}
		if ok {
			declared = target.Options
		}
	}

	defaults := domain.TargetOptions{
		Entry:         a.settings.Entry,
		TargetRuntime: a.settings.TargetRuntime,
		Layout:        a.settings.Layout.Name,
	}
	merged := defaults.Merge(declared).Merge(opts.Overrides)

	options, err := merged.Options(executorDistributions[executor][0])
	if err != nil {
		return domain.Options{}, zerr.With(err, "project", project.Name)
	}
	return options, nil
}

// buildInternal compiles ESM with source maps into the project's own dist directory.
func (a *App) buildInternal(ctx context.Context, opts domain.Options, ectx domain.ExecutorContext) (err error) {
	cfg, err := a.resolver.Resolve(opts, ectx)
	if err != nil {
		return err
	}
	if err := a.resolver.Validate(cfg); err != nil {
		return err
	}

	mappings, err := a.mapper.Translate(cfg, nil)
	if err != nil {
		return zerr.With(err, "project", cfg.ProjectName)
	}

	ctx, vertex := a.telemetry.Record(ctx, "build "+cfg.ProjectName)
	defer func() {
		vertex.Complete(err)
	}()

	a.logger.Info(fmt.Sprintf("Compiling %s...", cfg.ProjectName))
	if err := a.fs.Remove(cfg.ProjectDistDir); err != nil {
		return err
	}

	err = a.transpiler.Transpile(ctx, domain.TranspileRequest{
		SourceDir:     cfg.ProjectBaseDir,
		OutDir:        cfg.ProjectDistDir,
		ModuleType:    domain.FormatESM.ModuleType(),
		TargetRuntime: cfg.TargetRuntime,
		SourceMaps:    true,
		Mappings:      mappings,
		ExcludePaths:  []string{cfg.ProjectDistDir, domain.NodeModulesDirName},
		ProjectDir:    cfg.ProjectDir,
		ScratchDir:    cfg.TmpDir,
	})
	if err != nil {
		return zerr.With(err, "project", cfg.ProjectName)
	}

	a.logger.Info(fmt.Sprintf("Built %s into %s", cfg.ProjectName, cfg.ProjectDistDir))
	return nil
}

func (a *App) buildLayer(ctx context.Context, opts domain.Options, ectx domain.ExecutorContext) error {
	layer, err := a.pipeline.Layer(ctx, opts, ectx)
	if err != nil {
		return err
	}
	a.logger.Info(fmt.Sprintf("Layer of %s is ready in %s", layer.Project, layer.Dir))
	return nil
}

// removeScratch deletes the temporary directory shared by the projects of one execution.
func (a *App) removeScratch(execID domain.ExecutionID) {
	dir := filepath.Join(a.settings.Root, domain.TmpDirName, execID.String())
	if err := a.fs.Remove(dir); err != nil {
		a.logger.Warn(fmt.Sprintf("failed to remove %s: %v", dir, err))
	}
}

func (a *App) fail(err error) error {
	a.logger.Error(err)
	return errors.Join(domain.ErrBuildExecutionFailed, err)
}

// Clean removes the layer cache and the layer info store, and with All the temporary directory.
func (a *App) Clean(_ context.Context, options CleanOptions) error {
	var errs error

	remove := func(path string, name string) {
		a.logger.Info(fmt.Sprintf("removing %s...", name))
		if err := a.fs.Remove(path); err != nil {
			errs = errors.Join(errs, zerr.Wrap(err, fmt.Sprintf("failed to remove %s", name)))
			return
		}
		a.logger.Info(fmt.Sprintf("removed %s", name))
	}

	remove(filepath.Join(a.settings.Root, domain.DefaultLayersPath()), "layer cache")
	remove(filepath.Join(a.settings.Root, domain.DefaultStorePath()), "layer info store")

	if options.All {
		remove(filepath.Join(a.settings.Root, domain.TmpDirName), "temporary directory")
	}

	return errs
}
