// Package tsc runs the TypeScript compiler in declaration-only mode.
package tsc

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/strata/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.TypeChecker = (*Checker)(nil)

// Checker implements ports.TypeChecker by running tsc against a generated tsconfig.
type Checker struct {
	runner  ports.Runner
	command []string
}

// NewChecker creates a new Checker invoking tsc through the given command prefix.
func NewChecker(runner ports.Runner, command []string) *Checker {
	return &Checker{runner: runner, command: command}
}

// programConfig is the tsconfig written for a single check. It extends the project's config
// and narrows the program to the entry module.
type programConfig struct {
	Extends         string          `json:"extends,omitempty"`
	Files           []string        `json:"files"`
	Include         []string        `json:"include"`
	CompilerOptions compilerOptions `json:"compilerOptions"`
}

type compilerOptions struct {
	Declaration         bool   `json:"declaration"`
	EmitDeclarationOnly bool   `json:"emitDeclarationOnly"`
	DeclarationDir      string `json:"declarationDir"`
	RootDir             string `json:"rootDir"`
	NoEmit              bool   `json:"noEmit"`
	Composite           bool   `json:"composite"`
	Incremental         bool   `json:"incremental"`
}

// Check writes a temporary tsconfig into the request's scratch directory and runs tsc on it.
func (c *Checker) Check(ctx context.Context, req domain.TypecheckRequest) (domain.TypecheckResult, error) {
	cfgPath, err := writeProgramConfig(req)
	if err != nil {
		return domain.TypecheckResult{}, err
	}
	defer os.Remove(cfgPath) //nolint:errcheck // Best effort cleanup

	cmd := domain.NewCommand(c.command, "-p", cfgPath, "--pretty", "false")
	cmd.Dir = req.ProjectDir

	var output bytes.Buffer
	runErr := c.runner.Run(ctx, cmd, &output)

	diags := ParseDiagnostics(output.String())
	if len(diags) > 0 {
		return domain.TypecheckResult{Diagnostics: diags}, nil
	}
	if runErr != nil {
		return domain.TypecheckResult{}, zerr.Wrap(runErr, domain.ErrTypeCheckFailed.Error())
	}
	return domain.TypecheckResult{}, nil
}

func writeProgramConfig(req domain.TypecheckRequest) (string, error) {
	if err := os.MkdirAll(req.ScratchDir, domain.DirPerm); err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrCreateDirFailed.Error()), "path", req.ScratchDir)
	}

	cfg := programConfig{
		Extends: req.TSConfigPath,
		Files:   []string{req.EntryPath},
		Include: []string{},
		CompilerOptions: compilerOptions{
			Declaration:         true,
			EmitDeclarationOnly: true,
			DeclarationDir:      req.DeclarationDir,
			RootDir:             req.RootDir,
		},
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return "", zerr.Wrap(err, domain.ErrTypeCheckFailed.Error())
	}

	f, err := os.CreateTemp(req.ScratchDir, "tsconfig.*.json")
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrTypeCheckFailed.Error()), "dir", req.ScratchDir)
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return "", zerr.Wrap(err, domain.ErrTypeCheckFailed.Error())
	}
	if err := f.Close(); err != nil {
		return "", zerr.Wrap(err, domain.ErrTypeCheckFailed.Error())
	}
	return filepath.Clean(f.Name()), nil
}

var (
	fileDiagnostic   = regexp.MustCompile(`^(.+)\((\d+),(\d+)\): (error|warning|message) (TS\d+): (.*)$`)
	globalDiagnostic = regexp.MustCompile(`^(error|warning|message) (TS\d+): (.*)$`)
)

// ParseDiagnostics extracts diagnostics from `tsc --pretty false` output. Indented lines
// continue the message of the preceding diagnostic.
func ParseDiagnostics(output string) []domain.Diagnostic {
	var diags []domain.Diagnostic

	scanner := bufio.NewScanner(strings.NewReader(output))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")

		if m := fileDiagnostic.FindStringSubmatch(line); m != nil {
			lineNo, _ := strconv.Atoi(m[2])
			col, _ := strconv.Atoi(m[3])
			diags = append(diags, domain.Diagnostic{
				File:     m[1],
				Line:     lineNo,
				Column:   col,
				Category: m[4],
				Code:     m[5],
				Message:  m[6],
			})
			continue
		}

		if m := globalDiagnostic.FindStringSubmatch(line); m != nil {
			diags = append(diags, domain.Diagnostic{Category: m[1], Code: m[2], Message: m[3]})
			continue
		}

		if len(diags) > 0 && strings.HasPrefix(line, " ") && strings.TrimSpace(line) != "" {
			last := &diags[len(diags)-1]
			last.Message += "\n" + strings.TrimSpace(line)
		}
	}

	return diags
}
