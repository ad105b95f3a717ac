// Package swc runs the swc transpiler for one module format at a time.
package swc

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/strata/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Transpiler = (*Transpiler)(nil)

// Transpiler implements ports.Transpiler using the swc command line.
type Transpiler struct {
	runner  ports.Runner
	command []string
}

// NewTranspiler creates a new Transpiler invoking swc through the given command prefix.
func NewTranspiler(runner ports.Runner, command []string) *Transpiler {
	return &Transpiler{runner: runner, command: command}
}

type swcrc struct {
	JSC        jscConfig    `json:"jsc"`
	Module     moduleConfig `json:"module"`
	SourceMaps bool         `json:"sourceMaps"`
}

type jscConfig struct {
	Parser  parserConfig          `json:"parser"`
	Target  string                `json:"target,omitempty"`
	BaseURL string                `json:"baseUrl,omitempty"`
	Paths   *domain.OrderedObject `json:"paths,omitempty"`
}

type parserConfig struct {
	Syntax     string `json:"syntax"`
	TSX        bool   `json:"tsx"`
	Decorators bool   `json:"decorators"`
}

type moduleConfig struct {
	Type string `json:"type"`
}

// Transpile writes a .swcrc for the request and compiles its source directory. All paths
// passed to swc are relative to the project directory, which is the working directory.
func (t *Transpiler) Transpile(ctx context.Context, req domain.TranspileRequest) error {
	rcPath, err := writeConfig(req)
	if err != nil {
		return err
	}
	defer os.Remove(rcPath) //nolint:errcheck // Best effort cleanup

	cwd := req.ProjectDir
	args := []string{
		relative(cwd, req.SourceDir),
		"--out-dir", relative(cwd, req.OutDir),
		"--config-file", rcPath,
		"--strip-leading-paths",
	}
	if ignores := ignoreGlobs(cwd, req.ExcludePaths); ignores != "" {
		args = append(args, "--ignore", ignores)
	}

	cmd := domain.NewCommand(t.command, args...)
	cmd.Dir = cwd

	if err := t.runner.Run(ctx, cmd, nil); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrTranspileFailed.Error()), "module", req.ModuleType)
	}
	return nil
}

// BuildConfig returns the .swcrc document for a request.
func BuildConfig(req domain.TranspileRequest) ([]byte, error) {
	rc := swcrc{
		JSC: jscConfig{
			Parser: parserConfig{Syntax: "typescript", TSX: true, Decorators: true},
			Target: req.TargetRuntime,
		},
		Module:     moduleConfig{Type: req.ModuleType},
		SourceMaps: req.SourceMaps,
	}

	if req.Mappings.BaseURL != "" {
		rc.JSC.BaseURL = filepath.Join(req.SourceDir, filepath.FromSlash(req.Mappings.BaseURL))
	}
	if len(req.Mappings.Paths) > 0 {
		paths := domain.NewOrderedObject()
		for _, alias := range req.Mappings.Paths {
			if err := paths.Set(alias.Pattern, alias.Locations); err != nil {
				return nil, err
			}
		}
		rc.JSC.Paths = paths
	}

	return json.MarshalIndent(rc, "", "  ")
}

func writeConfig(req domain.TranspileRequest) (string, error) {
	data, err := BuildConfig(req)
	if err != nil {
		return "", zerr.Wrap(err, domain.ErrTranspileFailed.Error())
	}

	if err := os.MkdirAll(req.ScratchDir, domain.DirPerm); err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrCreateDirFailed.Error()), "path", req.ScratchDir)
	}

	f, err := os.CreateTemp(req.ScratchDir, "swcrc.*.json")
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrTranspileFailed.Error()), "dir", req.ScratchDir)
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return "", zerr.Wrap(err, domain.ErrTranspileFailed.Error())
	}
	if err := f.Close(); err != nil {
		return "", zerr.Wrap(err, domain.ErrTranspileFailed.Error())
	}
	return f.Name(), nil
}

func relative(base, target string) string {
	rel, err := filepath.Rel(base, target)
	if err != nil {
		return target
	}
	return filepath.ToSlash(rel)
}

// ignoreGlobs renders the excluded paths as the comma separated list swc expects. Absolute
// paths exclude one directory below cwd, bare names exclude that directory name at any depth.
func ignoreGlobs(cwd string, excludes []string) string {
	globs := make([]string, 0, len(excludes))
	for _, e := range excludes {
		if e == "" {
			continue
		}
		if !filepath.IsAbs(e) {
			globs = append(globs, "**/"+filepath.ToSlash(e)+"/**")
			continue
		}
		rel := relative(cwd, e)
		if rel == "." || rel == ".." || strings.HasPrefix(rel, "../") {
			continue
		}
		globs = append(globs, rel+"/**")
	}
	return strings.Join(globs, ",")
}
