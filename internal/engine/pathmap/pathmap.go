// Package pathmap translates tsconfig module-resolution aliases into transpiler path mappings.
package pathmap

import (
	"path"
	"path/filepath"
	"strings"

	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/strata/internal/core/ports"
	"go.trai.ch/zerr"
)

// Translator builds the alias table handed to the transpiler.
type Translator struct {
	fs ports.FileSystem
}

// New creates a new Translator.
func New(fs ports.FileSystem) *Translator {
	return &Translator{fs: fs}
}

// Translate returns the path mappings of cfg's project. Locations are relative to the tsconfig
// baseUrl and the returned BaseURL is relative to the project's base directory.
//
// Aliases declared by the user come first. Every immediate child of baseUrl is then aliased to
// itself, and every unpublished dependency to its vendored node_modules directory, unless an
// earlier entry already claims the pattern.
func (t *Translator) Translate(cfg *domain.Config, unpublished []*domain.Dependency) (domain.PathMappings, error) {
	tsconfig := cfg.TSConfig
	if tsconfig == nil || tsconfig.BaseURL == "" {
		return domain.PathMappings{}, zerr.With(domain.ErrMissingBaseURL, "project", cfg.ProjectName)
	}
	baseURL := tsconfig.BaseURL

	if domain.IsStrictAncestor(baseURL, cfg.ProjectDir) {
		return domain.PathMappings{}, zerr.With(zerr.With(domain.ErrBaseURLOutsideProject,
			"base_url", baseURL),
			"project_dir", cfg.ProjectDir)
	}
	if !domain.IsSubPath(cfg.ProjectBaseDir, baseURL) {
		return domain.PathMappings{}, zerr.With(zerr.With(domain.ErrBaseURLOutsideSource,
			"base_url", baseURL),
			"source_dir", cfg.ProjectBaseDir)
	}

	mappings := domain.PathMappings{BaseURL: slashRel(cfg.ProjectBaseDir, baseURL)}

	if tsconfig.PathsBasePath != "" && domain.IsSubPath(cfg.ProjectBaseDir, tsconfig.PathsBasePath) {
		for _, alias := range tsconfig.Paths {
			locations := make([]string, 0, len(alias.Locations))
			for _, l := range alias.Locations {
				if strings.HasPrefix(l, "..") {
					return domain.PathMappings{}, zerr.With(zerr.With(domain.ErrPathMappingOutsideSource,
						"alias", alias.Pattern),
						"location", l)
				}
				locations = append(locations, cleanLocation(l))
			}
			mappings.Set(alias.Pattern, locations...)
		}
	}

	entries, err := t.fs.ReadDir(baseURL)
	if err != nil {
		return domain.PathMappings{}, zerr.With(zerr.Wrap(err, domain.ErrBaseURLNotFound.Error()), "base_url", baseURL)
	}
	for _, e := range entries {
		name := e.Name()
		if strings.HasPrefix(name, ".") || name == domain.NodeModulesDirName ||
			filepath.Join(baseURL, name) == cfg.ProjectDistDir {
			continue
		}
		switch {
		case e.IsDir():
			setDefault(&mappings, name+"/*", name+"/*")
		case isTypeScriptModule(name):
			module := domain.TrimSourceExt(name)
			setDefault(&mappings, module, module+".js")
		default:
			setDefault(&mappings, name, name)
		}
	}

	vendored := path.Join(slashRel(baseURL, cfg.ProjectBaseDir), domain.NodeModulesDirName)
	for _, dep := range unpublished {
		pkg := dep.DirName()
		setDefault(&mappings, pkg, path.Join(vendored, pkg))
		setDefault(&mappings, pkg+"/*", path.Join(vendored, pkg)+"/*")
	}

	return mappings, nil
}

func setDefault(m *domain.PathMappings, pattern string, locations ...string) {
	if _, ok := m.Lookup(pattern); ok {
		return
	}
	m.Set(pattern, locations...)
}

func isTypeScriptModule(name string) bool {
	if strings.HasSuffix(name, ".d.ts") {
		return false
	}
	switch filepath.Ext(name) {
	case ".ts", ".tsx", ".mts", ".cts":
		return true
	default:
		return false
	}
}

func cleanLocation(l string) string {
	cleaned := path.Clean(filepath.ToSlash(l))
	if strings.HasSuffix(l, "/") && cleaned != "." {
		cleaned += "/"
	}
	return cleaned
}

func slashRel(base, target string) string {
	rel, err := filepath.Rel(base, target)
	if err != nil || rel == "" {
		return "."
	}
	return filepath.ToSlash(rel)
}
