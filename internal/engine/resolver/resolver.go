// Package resolver derives the paths and parameters of one project's build.
package resolver

import (
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/strata/internal/core/ports"
	"go.trai.ch/zerr"
)

// Resolver turns executor options and the invocation context into a domain.Config.
type Resolver struct {
	tsconfigs ports.TSConfigLoader
	manifests ports.ManifestStore
	logger    ports.Logger
}

// New creates a new Resolver.
func New(tsconfigs ports.TSConfigLoader, manifests ports.ManifestStore, logger ports.Logger) *Resolver {
	return &Resolver{
		tsconfigs: tsconfigs,
		manifests: manifests,
		logger:    logger,
	}
}

// Resolve builds the Config of ectx.ProjectName. It reads the project's package.json and
// tsconfig.json but does not touch anything else on disk.
func (r *Resolver) Resolve(opts domain.Options, ectx domain.ExecutorContext) (*domain.Config, error) {
	if ectx.Graph == nil {
		return nil, zerr.With(domain.ErrProjectNotFound, "project", ectx.ProjectName)
	}
	project, ok := ectx.Graph.Project(ectx.ProjectName)
	if !ok {
		return nil, zerr.With(domain.ErrProjectNotFound, "project", ectx.ProjectName)
	}

	root := filepath.Clean(ectx.WorkspaceRoot)
	projectDir := filepath.Join(root, project.Root)

	manifest, err := r.manifests.Read(projectDir)
	if err != nil {
		return nil, err
	}
	if manifest == nil {
		return nil, zerr.With(domain.ErrManifestNotFound, "project_dir", projectDir)
	}

	tsconfig, err := r.tsconfigs.Load(projectDir)
	if err != nil {
		return nil, err
	}
	if tsconfig.BaseURL == "" {
		return nil, zerr.With(domain.ErrMissingBaseURL, "tsconfig", tsconfig.Path)
	}

	baseDir := tsconfig.BaseURL
	if opts.BaseDir != "" {
		baseDir = absolute(projectDir, opts.BaseDir)
	}

	entry := opts.Entry
	if entry == "" {
		entry = domain.DefaultEntry
	}
	entryPath := absolute(projectDir, entry)

	entryRelBase, err := filepath.Rel(baseDir, entryPath)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to relate entry to base directory"), "entry", entryPath)
	}
	entryRelProject, err := filepath.Rel(projectDir, entryPath)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to relate entry to project directory"), "entry", entryPath)
	}

	runtime := opts.TargetRuntime
	if runtime == "" {
		runtime = domain.DefaultTargetRuntime
	}
	layout := opts.Layout
	if layout.IsZero() {
		layout = domain.LayoutESM
	}
	execID := ectx.ExecutionID
	if execID == "" {
		execID = domain.NewExecutionID()
	}

	workspaceDist := filepath.Join(root, domain.DistDirName)
	tmpDir := filepath.Join(root, domain.TmpDirName, execID.String())

	return &domain.Config{
		ExecutionID:   execID,
		Distribution:  opts.Distribution,
		TargetRuntime: runtime,
		Assets:        slices.Clone(opts.Assets),
		Layout:        layout,
		Verbose:       ectx.Verbose,

		ProjectName:      project.Name,
		WorkspaceRoot:    root,
		ProjectDir:       projectDir,
		ProjectBaseDir:   baseDir,
		ProjectDistDir:   filepath.Join(projectDir, domain.DistDirName),
		WorkspaceDistDir: workspaceDist,
		TmpDir:           tmpDir,
		TmpLayersDir:     filepath.Join(tmpDir, domain.StrataDirName),
		LayersDir:        filepath.Join(root, domain.DefaultLayersPath()),
		OutputDir:        filepath.Join(workspaceDist, project.Name),

		EntryPath:                 entryPath,
		EntryRelativeToBaseDir:    entryRelBase,
		EntryRelativeToProjectDir: entryRelProject,

		TSConfig: tsconfig,
		Manifest: manifest,
	}, nil
}

// Validate runs the checks that must pass before anything is written to disk.
// Mismatched "types" fields are reported as warnings.
func (r *Resolver) Validate(cfg *domain.Config) error {
	if domain.IsStrictAncestor(cfg.ProjectBaseDir, cfg.ProjectDir) {
		return zerr.With(zerr.With(domain.ErrBaseURLOutsideProject,
			"base_url", cfg.ProjectBaseDir),
			"project_dir", cfg.ProjectDir)
	}

	r.checkTypesField(cfg)

	switch cfg.Distribution {
	case domain.DistributionInternal:
		return validateMain(cfg)
	case domain.DistributionNPM:
		return validateExports(cfg)
	default:
		return nil
	}
}

func (r *Resolver) checkTypesField(cfg *domain.Config) {
	typesFile := filepath.ToSlash(cfg.EntryRelativeToProjectDir)
	typesName := domain.TrimSourceExt(typesFile)

	types, ok := cfg.Manifest.GetString("types")
	if !ok && typesName == "index" {
		return
	}
	if ok && (types == typesFile || types == typesName) {
		return
	}

	r.logger.Warn(cfg.ProjectName + ` package.json "types" field does not point to the entry module. ` +
		"Set it to " + typesFile + " to get editor support.")
}

func validateMain(cfg *domain.Config) error {
	want := domain.DistDirName + "/" + cfg.EntryModule() + ".js"
	got, _ := cfg.Manifest.GetString("main")
	if got != want {
		return zerr.With(zerr.With(zerr.With(domain.ErrInvalidManifestMain,
			"project", cfg.ProjectName),
			"expected", want),
			"actual", got)
	}
	return nil
}

func validateExports(cfg *domain.Config) error {
	raw, ok := cfg.Manifest.Raw("exports")
	if !ok {
		return zerr.With(domain.ErrMissingExports, "project", cfg.ProjectName)
	}
	if domain.IsJSONString(raw) {
		return zerr.With(zerr.With(domain.ErrMissingExportTypes, "project", cfg.ProjectName), "subpath", ".")
	}

	exports, ok := cfg.Manifest.Object("exports")
	if !ok {
		return zerr.With(domain.ErrInvalidExports, "project", cfg.ProjectName)
	}

	if !isSubpathMap(exports) {
		if !exports.Has("types") {
			return zerr.With(zerr.With(domain.ErrMissingExportTypes, "project", cfg.ProjectName), "subpath", ".")
		}
		return nil
	}

	for _, subpath := range exports.Keys() {
		entry, ok := exports.Object(subpath)
		if !ok || !entry.Has("types") {
			return zerr.With(zerr.With(domain.ErrMissingExportTypes, "project", cfg.ProjectName), "subpath", subpath)
		}
	}
	return nil
}

// isSubpathMap reports whether the keys of an exports object are subpaths rather than conditions.
func isSubpathMap(exports *domain.OrderedObject) bool {
	keys := exports.Keys()
	return len(keys) > 0 && strings.HasPrefix(keys[0], ".")
}

func absolute(base, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(base, p)
}
