// Package manifest turns a project's package.json into the manifest of its distributable package.
package manifest

import (
	"encoding/json"
	"path"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/zerr"
)

const (
	rootExport    = "."
	latestVersion = "latest"
)

// Options control manifest synthesis.
type Options struct {
	// Layout names the format directories the package ships.
	Layout domain.OutputLayout
	// Entry is the slash-separated entry module relative to the base directory, without extension.
	// It is used when the source manifest declares neither main nor exports.
	Entry string
	// Published are the dependencies listed under "dependencies".
	Published []*domain.Dependency
	// SourcePrefixes are extra directory prefixes stripped from manifest paths, such as the
	// base directory relative to the project.
	SourcePrefixes []string
}

// ForConfig returns the synthesis options of a project's package.
func ForConfig(cfg *domain.Config, published []*domain.Dependency) Options {
	opts := Options{
		Layout:    cfg.Layout,
		Entry:     cfg.EntryModule(),
		Published: published,
	}
	if rel, err := filepath.Rel(cfg.ProjectDir, cfg.ProjectBaseDir); err == nil && rel != "." {
		opts.SourcePrefixes = []string{filepath.ToSlash(rel)}
	}
	return opts
}

type exportEntry struct {
	subpath    string
	rest       string
	types      string
	conditions *domain.OrderedObject
	verbatim   json.RawMessage
}

// Synthesize returns a new manifest derived from src. The result points main, module, and
// exports at the compiled outputs of opts.Layout, lists the published dependencies, and keeps
// peerDependencies as its last key. Applying Synthesize to its own output yields the same
// entry points.
func Synthesize(src *domain.Manifest, opts Options) (*domain.Manifest, error) {
	if opts.Layout.IsZero() {
		opts.Layout = domain.LayoutESM
	}
	s := synthesizer{opts: opts}

	out := src.CloneManifest()
	out.Delete("type")
	out.Delete("types")
	out.Delete("devDependencies")

	entries, err := s.exports(src)
	if err != nil {
		return nil, err
	}
	if !hasRootExport(entries) {
		entries = append([]exportEntry{{subpath: rootExport, rest: s.mainRest(src)}}, entries...)
	}

	root := entries[0]
	for _, e := range entries {
		if e.subpath == rootExport {
			root = e
		}
	}
	out.SetString("main", s.target(domain.FormatCJS, root.rest))
	out.SetString("module", s.target(domain.FormatESM, root.rest))

	exports := domain.NewOrderedObject()
	for _, e := range entries {
		if e.verbatim != nil {
			exports.SetRaw(e.subpath, e.verbatim)
			continue
		}
		if err := exports.Set(e.subpath, s.render(e)); err != nil {
			return nil, err
		}
	}
	if err := out.Set("exports", exports); err != nil {
		return nil, err
	}

	if err := out.Set("dependencies", dependencies(opts.Published, src.PeerDependencyNames())); err != nil {
		return nil, err
	}

	if peers, ok := src.Raw("peerDependencies"); ok {
		out.Delete("peerDependencies")
		out.SetRaw("peerDependencies", peers)
	}

	return out, nil
}

type synthesizer struct {
	opts Options
}

// mainRest derives the compiled module path from "main", falling back to the entry module.
func (s synthesizer) mainRest(src *domain.Manifest) string {
	if main, ok := src.GetString("main"); ok && main != "" {
		return s.rest(main)
	}
	entry := s.opts.Entry
	if entry == "" {
		entry = domain.TrimSourceExt(domain.DefaultEntry)
	}
	return entry + ".js"
}

// rest strips "./" and one known output or source prefix. Module paths get the ".js" extension.
func (s synthesizer) rest(p string) string {
	p = path.Clean(strings.TrimPrefix(p, "./"))
	for _, prefix := range s.prefixes() {
		if strings.HasPrefix(p, prefix+"/") {
			p = strings.TrimPrefix(p, prefix+"/")
			break
		}
	}
	if !isModulePath(p) {
		return p
	}
	return domain.TrimSourceExt(p) + ".js"
}

// isModulePath reports whether p names a script module or has no extension at all.
func isModulePath(p string) bool {
	return path.Ext(p) == "" || domain.TrimSourceExt(p) != p
}

func (s synthesizer) prefixes() []string {
	prefixes := []string{
		domain.LayoutDist.CJSDir,
		domain.LayoutDist.ESMDir,
		domain.LayoutESM.ESMDir,
		domain.LayoutESM.CJSDir,
		s.opts.Layout.ESMDir,
		s.opts.Layout.CJSDir,
	}
	for _, p := range s.opts.SourcePrefixes {
		p = strings.Trim(path.Clean(strings.TrimPrefix(p, "./")), "/")
		if p != "" && p != "." {
			prefixes = append(prefixes, p)
		}
	}
	return prefixes
}

func (s synthesizer) target(f domain.Format, rest string) string {
	return "./" + path.Join(s.opts.Layout.Dir(f), rest)
}

func (s synthesizer) typesTarget(rest string) string {
	return "./" + path.Join(s.opts.Layout.ESMDir, domain.TrimSourceExt(rest)+".d.ts")
}

// exports parses the source exports field into entries. A string or a conditions object
// describes the root export; otherwise every key is a subpath.
func (s synthesizer) exports(src *domain.Manifest) ([]exportEntry, error) {
	raw, ok := src.Raw("exports")
	if !ok {
		return nil, nil
	}

	if domain.IsJSONString(raw) {
		var target string
		if err := json.Unmarshal(raw, &target); err != nil {
			return nil, zerr.Wrap(err, domain.ErrInvalidExports.Error())
		}
		return []exportEntry{{subpath: rootExport, rest: s.rest(target)}}, nil
	}

	obj, ok := src.Object("exports")
	if !ok {
		return nil, domain.ErrInvalidExports
	}
	keys := obj.Keys()
	if len(keys) > 0 && !strings.HasPrefix(keys[0], ".") {
		entry, err := s.entry(rootExport, raw)
		if err != nil {
			return nil, err
		}
		return []exportEntry{entry}, nil
	}

	entries := make([]exportEntry, 0, len(keys))
	for _, subpath := range keys {
		value, _ := obj.Raw(subpath)
		entry, err := s.entry(subpath, value)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (s synthesizer) entry(subpath string, raw json.RawMessage) (exportEntry, error) {
	if domain.IsJSONString(raw) {
		var target string
		if err := json.Unmarshal(raw, &target); err != nil {
			return exportEntry{}, zerr.With(zerr.Wrap(err, domain.ErrInvalidExports.Error()), "subpath", subpath)
		}
		if subpath != rootExport && !isModulePath(target) {
			return exportEntry{subpath: subpath, verbatim: raw}, nil
		}
		return exportEntry{subpath: subpath, rest: s.rest(target)}, nil
	}
	if !domain.IsJSONObject(raw) {
		return exportEntry{}, zerr.With(domain.ErrInvalidExports, "subpath", subpath)
	}

	conditions := domain.NewOrderedObject()
	if err := json.Unmarshal(raw, conditions); err != nil {
		return exportEntry{}, zerr.With(zerr.Wrap(err, domain.ErrInvalidExports.Error()), "subpath", subpath)
	}

	target, ok := conditions.GetString("import")
	if !ok {
		target, ok = conditions.GetString("default")
	}
	if !ok {
		return exportEntry{}, zerr.With(domain.ErrMissingExportTarget, "subpath", subpath)
	}

	entry := exportEntry{subpath: subpath, rest: s.rest(target), conditions: conditions}
	if types, ok := conditions.GetString("types"); ok {
		entry.types = s.rest(types)
	}
	return entry, nil
}

// render emits {types, import, require, default} followed by any other conditions unchanged.
func (s synthesizer) render(e exportEntry) *domain.OrderedObject {
	typesRest := e.types
	if typesRest == "" {
		typesRest = e.rest
	}

	obj := domain.NewOrderedObject()
	obj.SetString("types", s.typesTarget(typesRest))
	obj.SetString("import", s.target(domain.FormatESM, e.rest))
	obj.SetString("require", s.target(domain.FormatCJS, e.rest))
	obj.SetString("default", s.target(domain.FormatESM, e.rest))

	if e.conditions != nil {
		for _, k := range e.conditions.Keys() {
			if obj.Has(k) {
				continue
			}
			v, _ := e.conditions.Raw(k)
			obj.SetRaw(k, v)
		}
	}
	return obj
}

func hasRootExport(entries []exportEntry) bool {
	for _, e := range entries {
		if e.subpath == rootExport {
			return true
		}
	}
	return false
}

// dependencies lists every published package that is not a peer, in discovery order.
func dependencies(published []*domain.Dependency, peers map[string]struct{}) *domain.OrderedObject {
	deps := domain.NewOrderedObject()
	for _, dep := range published {
		name := dep.PackageName
		if name == "" {
			continue
		}
		if _, ok := peers[name]; ok {
			continue
		}
		deps.SetString(name, Version(dep.Version))
	}
	return deps
}

// Version returns the resolved version as recorded in the graph, or "latest" when it is unresolved.
// Aliases (npm:), workspace, git and file specifiers pass through unchanged.
func Version(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return latestVersion
	}
	return v
}

// IsSemver reports whether v is a semantic version or a version range.
func IsSemver(v string) bool {
	v = strings.TrimSpace(v)
	if _, err := semver.NewVersion(v); err == nil {
		return true
	}
	_, err := semver.NewConstraint(v)
	return err == nil
}

// NonSemver lists, as name@version, the published packages whose resolved version is set but is
// neither a semantic version nor a range.
func NonSemver(published []*domain.Dependency) []string {
	var out []string
	for _, dep := range published {
		if dep.PackageName == "" || strings.TrimSpace(dep.Version) == "" || IsSemver(dep.Version) {
			continue
		}
		out = append(out, dep.PackageName+"@"+strings.TrimSpace(dep.Version))
	}
	return out
}
