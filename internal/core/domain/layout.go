package domain

import (
	"path/filepath"
	"regexp"
	"strings"
)

const (
	// StrataDirName is the name of the internal directory used for layers and metadata.
	StrataDirName = ".strata"

	// StoreDirName is the name of the layer info store directory.
	StoreDirName = "store"

	// DistDirName is the name of both the workspace and the per-project dist directories.
	DistDirName = "dist"

	// TmpDirName is the name of the workspace temporary directory.
	TmpDirName = "tmp"

	// TypesDirName is the staging directory that receives emitted declarations.
	TypesDirName = ".types"

	// NodeModulesDirName is the name of the vendored dependency directory.
	NodeModulesDirName = "node_modules"

	// ManifestFileName is the name of the package manifest.
	ManifestFileName = "package.json"

	// TSConfigFileName is the name of the TypeScript project configuration.
	TSConfigFileName = "tsconfig.json"

	// ConfigFileName is the name of the workspace configuration file.
	ConfigFileName = "strata.yaml"

	// NxConfigFileName marks an Nx workspace root.
	NxConfigFileName = "nx.json"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultStorePath returns the workspace-relative path of the layer info store.
// It joins .strata and store.
func DefaultStorePath() string {
	return filepath.Join(StrataDirName, StoreDirName)
}

// DefaultLayersPath returns the workspace-relative path of the layer cache.
// It joins dist and .strata.
func DefaultLayersPath() string {
	return filepath.Join(DistDirName, StrataDirName)
}

// defaultAssetPattern matches README and LICENSE files regardless of case or extension.
var defaultAssetPattern = regexp.MustCompile(`(?i)^(readme|licence|license)(|\.[a-z]+)$`)

// IsDefaultAsset reports whether a file name is copied into every layer without being declared.
func IsDefaultAsset(name string) bool {
	return defaultAssetPattern.MatchString(name)
}

// IsSubPath reports whether p is dir itself or located below it.
func IsSubPath(dir, p string) bool {
	rel, err := filepath.Rel(dir, p)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// IsStrictAncestor reports whether dir contains p and is not p itself.
func IsStrictAncestor(dir, p string) bool {
	return filepath.Clean(dir) != filepath.Clean(p) && IsSubPath(dir, p)
}
