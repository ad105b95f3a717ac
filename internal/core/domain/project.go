package domain

const (
	// ExecutorBuild is the executor name of build targets.
	ExecutorBuild = "strata:build"
	// ExecutorPackage is the executor name of package targets.
	ExecutorPackage = "strata:package"
	// PublishTargetName marks a project as released independently.
	PublishTargetName = "publish"
)

// TargetOptions are the executor options declared on a project target.
type TargetOptions struct {
	Distribution  string   `json:"distribution,omitempty"`
	Entry         string   `json:"entry,omitempty"`
	Assets        []string `json:"assets,omitempty"`
	TargetRuntime string   `json:"targetRuntime,omitempty"`
	BaseDir       string   `json:"baseDir,omitempty"`
	Layout        string   `json:"layout,omitempty"`
}

// Options converts the declared options into executor options. An empty distribution selects fallback.
func (o TargetOptions) Options(fallback Distribution) (Options, error) {
	opts := Options{
		Distribution:  fallback,
		Entry:         o.Entry,
		Assets:        append([]string(nil), o.Assets...),
		TargetRuntime: o.TargetRuntime,
		BaseDir:       o.BaseDir,
	}
	if o.Distribution != "" {
		d, err := ParseDistribution(o.Distribution)
		if err != nil {
			return Options{}, err
		}
		opts.Distribution = d
	}
	if o.Layout != "" {
		layout, err := ParseOutputLayout(o.Layout)
		if err != nil {
			return Options{}, err
		}
		opts.Layout = layout
	}
	return opts, nil
}

// Merge returns o with every field set in over replacing its counterpart.
func (o TargetOptions) Merge(over TargetOptions) TargetOptions {
	if over.Distribution != "" {
		o.Distribution = over.Distribution
	}
	if over.Entry != "" {
		o.Entry = over.Entry
	}
	if over.Assets != nil {
		o.Assets = append([]string(nil), over.Assets...)
	}
	if over.TargetRuntime != "" {
		o.TargetRuntime = over.TargetRuntime
	}
	if over.BaseDir != "" {
		o.BaseDir = over.BaseDir
	}
	if over.Layout != "" {
		o.Layout = over.Layout
	}
	return o
}

// Target is a named unit of work declared by a project.
type Target struct {
	Executor string        `json:"executor,omitempty"`
	Options  TargetOptions `json:"options"`
}

// ProjectNode is an in-repo project vertex of the project graph.
// It is a read-only view; the flags below are derived from the targets on every call.
type ProjectNode struct {
	Name        string
	Root        string
	Targets     map[string]Target
	WillPublish bool
}

// Buildable reports whether the project declares a build target.
func (p *ProjectNode) Buildable() bool {
	_, ok := p.BuildTarget()
	return ok
}

// Packagable reports whether some package target of the project produces a library.
func (p *ProjectNode) Packagable() bool {
	for _, t := range p.Targets {
		if t.Executor == ExecutorPackage && t.Options.Distribution == DistributionLib.String() {
			return true
		}
	}
	return false
}

// Publishable reports whether the project is released independently of its dependents.
func (p *ProjectNode) Publishable() bool {
	if p.WillPublish {
		return true
	}
	_, ok := p.Targets[PublishTargetName]
	return ok
}

// BuildTarget returns the first target using the build executor, by target name order.
func (p *ProjectNode) BuildTarget() (Target, bool) {
	return p.targetWithExecutor(ExecutorBuild)
}

// PackageTarget returns the first target using the package executor, by target name order.
func (p *ProjectNode) PackageTarget() (Target, bool) {
	return p.targetWithExecutor(ExecutorPackage)
}

func (p *ProjectNode) targetWithExecutor(executor string) (Target, bool) {
	var (
		found Target
		name  string
		ok    bool
	)
	for n, t := range p.Targets {
		if t.Executor != executor {
			continue
		}
		if !ok || n < name {
			found, name, ok = t, n, true
		}
	}
	return found, ok
}

// ExternalNode is a registry package vertex of the project graph.
type ExternalNode struct {
	Name        string
	PackageName string
	Version     string
}

// Dependency is one classified vertex reached from a root project.
type Dependency struct {
	ID          string
	Project     *ProjectNode
	External    *ExternalNode
	PackageName string
	Version     string
}

// IsExternal reports whether the dependency comes from a registry.
func (d *Dependency) IsExternal() bool {
	return d.External != nil
}

// DirName returns the directory a vendored dependency is placed under inside node_modules.
func (d *Dependency) DirName() string {
	if d.PackageName != "" {
		return d.PackageName
	}
	if d.Project != nil {
		return d.Project.Name
	}
	return d.ID
}

// DependencyClassification is the result of walking a project's dependencies.
type DependencyClassification struct {
	Published   []*Dependency
	Unpublished []*Dependency
}
