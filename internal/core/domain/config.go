package domain

import (
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ExecutionID names a single invocation. Temporary and staging directories are namespaced by it.
type ExecutionID string

// NewExecutionID generates a random ExecutionID.
func NewExecutionID() ExecutionID {
	return ExecutionID(uuid.NewString())
}

// String returns the identifier.
func (id ExecutionID) String() string {
	return string(id)
}

// Options are the executor options of one project after defaults are applied.
type Options struct {
	Distribution  Distribution
	Entry         string
	Assets        []string
	TargetRuntime string
	BaseDir       string
	Layout        OutputLayout
}

// ExecutorContext is the invocation context an executor runs in.
type ExecutorContext struct {
	ExecutionID   ExecutionID
	WorkspaceRoot string
	ProjectName   string
	Graph         *ProjectGraph
	Verbose       bool
}

// ForProject returns a copy of the context targeting another project.
func (c ExecutorContext) ForProject(name string) ExecutorContext {
	c.ProjectName = name
	return c
}

// Config is the resolved, read-only view of one project's build parameters.
// It is built once by the resolver and never mutated afterwards.
type Config struct {
	ExecutionID   ExecutionID
	Distribution  Distribution
	TargetRuntime string
	Assets        []string
	Layout        OutputLayout
	Verbose       bool

	ProjectName      string
	WorkspaceRoot    string
	ProjectDir       string
	ProjectBaseDir   string
	ProjectDistDir   string
	WorkspaceDistDir string
	TmpDir           string
	TmpLayersDir     string
	LayersDir        string
	OutputDir        string

	EntryPath                 string
	EntryRelativeToBaseDir    string
	EntryRelativeToProjectDir string

	TSConfig *TSConfig
	Manifest *Manifest
}

// LayerDir returns the cached layer location of the project.
func (c *Config) LayerDir() string {
	return filepath.Join(c.LayersDir, c.ProjectName)
}

// StagingLayerDir returns the directory a layer is staged in before it is promoted.
func (c *Config) StagingLayerDir() string {
	return filepath.Join(c.TmpLayersDir, c.ProjectName)
}

// AssemblyDir returns the temporary tree a package is assembled in.
func (c *Config) AssemblyDir() string {
	return filepath.Join(c.TmpDir, c.ProjectName)
}

// EntryModule returns the slash-separated entry path relative to the base directory, without extension.
func (c *Config) EntryModule() string {
	return TrimSourceExt(filepath.ToSlash(c.EntryRelativeToBaseDir))
}

// TrimSourceExt removes a TypeScript or JavaScript source extension.
func TrimSourceExt(p string) string {
	for _, ext := range []string{".d.ts", ".tsx", ".ts", ".mts", ".cts", ".jsx", ".js", ".mjs", ".cjs"} {
		if strings.HasSuffix(p, ext) {
			return strings.TrimSuffix(p, ext)
		}
	}
	return p
}

// Settings is the workspace configuration read from strata.yaml.
type Settings struct {
	Root          string
	GraphFile     string
	Layout        OutputLayout
	Entry         string
	TargetRuntime string
	TSCCommand    []string
	SWCCommand    []string
	NxCommand     []string
}

// Default settings.
const (
	DefaultEntry         = "index.ts"
	DefaultTargetRuntime = "es2020"
)

// DefaultSettings returns the settings used when strata.yaml is absent.
func DefaultSettings(root string) *Settings {
	return &Settings{
		Root:          root,
		Layout:        LayoutESM,
		Entry:         DefaultEntry,
		TargetRuntime: DefaultTargetRuntime,
		TSCCommand:    []string{"npx", "tsc"},
		SWCCommand:    []string{"npx", "swc"},
		NxCommand:     []string{"npx", "nx"},
	}
}
