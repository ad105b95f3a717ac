package fs

import (
	"io/fs"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/strata/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.AssetResolver = (*Resolver)(nil)

// Resolver enumerates the static assets copied into a layer.
type Resolver struct{}

// NewResolver creates a new Resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// ResolveAssets walks root and returns, in sorted order, every file that is a README or LICENSE
// (by base name, case-insensitively) or whose slash-separated path relative to root matches one
// of patterns. Patterns are doublestar globs, so "**/*.css" matches at any depth. Directories
// named in exclude, or located at an excluded root-relative path, are pruned.
func (r *Resolver) ResolveAssets(root string, patterns, exclude []string) ([]string, error) {
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return nil, zerr.With(domain.ErrInvalidAssetPattern, "pattern", p)
		}
	}

	excluded := make(map[string]struct{}, len(exclude))
	for _, e := range exclude {
		if filepath.IsAbs(e) {
			if rel, err := filepath.Rel(root, e); err == nil {
				e = rel
			}
		}
		excluded[filepath.ToSlash(filepath.Clean(e))] = struct{}{}
	}

	var assets []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p == root {
			return nil
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if isExcluded(excluded, rel, d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		if domain.IsDefaultAsset(d.Name()) || matchesAny(patterns, rel) {
			assets = append(assets, p)
		}
		return nil
	})
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrAssetResolutionFailed.Error()), "root", root)
	}

	slices.Sort(assets)
	return assets, nil
}

func isExcluded(excluded map[string]struct{}, rel, name string) bool {
	if name == ".git" || name == ".jj" {
		return true
	}
	if _, ok := excluded[rel]; ok {
		return true
	}
	_, ok := excluded[name]
	return ok
}

func matchesAny(patterns []string, rel string) bool {
	for _, p := range patterns {
		if p == rel {
			return true
		}
		if matched, err := doublestar.Match(p, rel); err == nil && matched {
			return true
		}
	}
	return false
}
