// Package tsconfig loads the module-resolution settings of TypeScript projects.
package tsconfig

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/tailscale/hujson"
	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/strata/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.TSConfigLoader = (*Loader)(nil)

// Loader implements ports.TSConfigLoader by reading tsconfig.json files from disk.
type Loader struct{}

// NewLoader creates a new Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// fileDTO is the subset of tsconfig.json that affects module resolution.
type fileDTO struct {
	Extends         extendsDTO `json:"extends"`
	CompilerOptions struct {
		BaseURL *string          `json:"baseUrl"`
		Paths   *orderedPathsDTO `json:"paths"`
	} `json:"compilerOptions"`
}

// extendsDTO accepts both the string and the array form of "extends".
type extendsDTO []string

func (e *extendsDTO) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*e = extendsDTO{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*e = many
	return nil
}

// orderedPathsDTO keeps the declaration order of "paths".
type orderedPathsDTO struct {
	aliases []domain.PathAlias
}

func (p *orderedPathsDTO) UnmarshalJSON(data []byte) error {
	obj := domain.NewOrderedObject()
	if err := json.Unmarshal(data, obj); err != nil {
		return err
	}
	for _, key := range obj.Keys() {
		raw, _ := obj.Raw(key)
		var locations []string
		if err := json.Unmarshal(raw, &locations); err != nil {
			return zerr.With(zerr.Wrap(err, "invalid paths entry"), "alias", key)
		}
		p.aliases = append(p.aliases, domain.PathAlias{Pattern: key, Locations: locations})
	}
	return nil
}

// Load finds the tsconfig.json governing projectDir and resolves its extends chain.
func (l *Loader) Load(projectDir string) (*domain.TSConfig, error) {
	path, ok := findConfigFile(projectDir)
	if !ok {
		return nil, zerr.With(domain.ErrTSConfigNotFound, "dir", projectDir)
	}

	cfg := &domain.TSConfig{Path: path}
	if err := l.resolve(path, cfg, map[string]struct{}{}); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolve applies the config at path on top of its bases. Fields of the child override its parents.
func (l *Loader) resolve(path string, cfg *domain.TSConfig, visiting map[string]struct{}) error {
	if _, ok := visiting[path]; ok {
		return zerr.With(domain.ErrTSConfigExtendsCycle, "path", path)
	}
	visiting[path] = struct{}{}
	defer delete(visiting, path)

	file, err := readFile(path)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	for _, ext := range file.Extends {
		base, err := resolveExtends(dir, ext)
		if err != nil {
			return zerr.With(err, "tsconfig", path)
		}
		if err := l.resolve(base, cfg, visiting); err != nil {
			return err
		}
	}

	if file.CompilerOptions.BaseURL != nil {
		cfg.BaseURL = resolvePath(dir, *file.CompilerOptions.BaseURL)
	}
	if file.CompilerOptions.Paths != nil {
		cfg.Paths = file.CompilerOptions.Paths.aliases
		cfg.PathsBasePath = dir
	}
	return nil
}

func readFile(path string) (*fileDTO, error) {
	//nolint:gosec // Path is discovered from the project directory
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, zerr.With(domain.ErrTSConfigNotFound, "path", path)
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrTSConfigReadFailed.Error()), "path", path)
	}

	standard, err := hujson.Standardize(data)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrTSConfigParseFailed.Error()), "path", path)
	}

	var file fileDTO
	if err := json.Unmarshal(standard, &file); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrTSConfigParseFailed.Error()), "path", path)
	}
	return &file, nil
}

// findConfigFile walks up from dir to the nearest tsconfig.json.
func findConfigFile(dir string) (string, bool) {
	current := filepath.Clean(dir)
	for {
		candidate := filepath.Join(current, domain.TSConfigFileName)
		if isFile(candidate) {
			return candidate, true
		}
		parent := filepath.Dir(current)
		if parent == current {
			return "", false
		}
		current = parent
	}
}

// resolveExtends locates the base config named by an extends entry, either a relative
// or absolute path, or a package resolved through node_modules.
func resolveExtends(dir, spec string) (string, error) {
	if filepath.IsAbs(spec) || strings.HasPrefix(spec, "./") || strings.HasPrefix(spec, "../") || spec == "." || spec == ".." {
		for _, candidate := range fileCandidates(resolvePath(dir, spec)) {
			if isFile(candidate) {
				return candidate, nil
			}
		}
		return "", zerr.With(domain.ErrTSConfigNotFound, "extends", spec)
	}

	current := dir
	for {
		base := filepath.Join(current, domain.NodeModulesDirName, filepath.FromSlash(spec))
		for _, candidate := range fileCandidates(base) {
			if isFile(candidate) {
				return candidate, nil
			}
		}
		parent := filepath.Dir(current)
		if parent == current {
			return "", zerr.With(domain.ErrTSConfigNotFound, "extends", spec)
		}
		current = parent
	}
}

func fileCandidates(base string) []string {
	candidates := []string{base}
	if !strings.HasSuffix(base, ".json") {
		candidates = append(candidates, base+".json")
	}
	return append(candidates, filepath.Join(base, domain.TSConfigFileName))
}

func resolvePath(dir, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(dir, filepath.FromSlash(p))
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
