// Package config provides the workspace configuration loader for strata.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/strata/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// SupportedVersion is the strata.yaml schema version understood by this loader.
const SupportedVersion = "1"

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// DiscoverRoot walks up from cwd to the first directory containing strata.yaml or nx.json.
// strata.yaml wins when both exist at different levels.
func (l *Loader) DiscoverRoot(cwd string) (string, error) {
	currentDir := cwd
	var nxCandidate string

	for {
		if fileExists(filepath.Join(currentDir, domain.ConfigFileName)) {
			return currentDir, nil
		}

		if nxCandidate == "" && fileExists(filepath.Join(currentDir, domain.NxConfigFileName)) {
			nxCandidate = currentDir
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	if nxCandidate != "" {
		return nxCandidate, nil
	}

	return "", zerr.With(domain.ErrWorkspaceRootNotFound, "cwd", cwd)
}

// Load reads strata.yaml from root and applies defaults for every unset field.
func (l *Loader) Load(root string) (*domain.Settings, error) {
	settings := domain.DefaultSettings(root)

	configPath := filepath.Join(root, domain.ConfigFileName)
	var file Stratafile
	found, err := readAndUnmarshalYAML(configPath, &file)
	if err != nil {
		return nil, zerr.With(err, "path", configPath)
	}
	if !found {
		return settings, nil
	}

	if file.Version != "" && file.Version != SupportedVersion {
		l.Logger.Warn(fmt.Sprintf("%s declares version %q, expected %q", domain.ConfigFileName, file.Version, SupportedVersion))
	}

	if file.Layout != "" {
		layout, err := domain.ParseOutputLayout(file.Layout)
		if err != nil {
			return nil, zerr.With(err, "path", configPath)
		}
		settings.Layout = layout
	}

	if file.Graph != "" {
		settings.GraphFile = resolvePath(root, file.Graph)
	}
	if file.Entry != "" {
		settings.Entry = file.Entry
	}
	if file.TargetRuntime != "" {
		settings.TargetRuntime = file.TargetRuntime
	}
	if len(file.Tools.TSC) > 0 {
		settings.TSCCommand = file.Tools.TSC
	}
	if len(file.Tools.SWC) > 0 {
		settings.SWCCommand = file.Tools.SWC
	}
	if len(file.Tools.Nx) > 0 {
		settings.NxCommand = file.Tools.Nx
	}

	return settings, nil
}

func resolvePath(root, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(root, p)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// readAndUnmarshalYAML reports false without an error when the file does not exist.
func readAndUnmarshalYAML[T any](configPath string, target *T) (bool, error) {
	// #nosec G304 -- configPath is built from the discovered workspace root
	configFile, err := os.ReadFile(configPath)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	if parseErr := yaml.Unmarshal(configFile, target); parseErr != nil {
		return false, zerr.Wrap(parseErr, domain.ErrConfigParseFailed.Error())
	}

	return true, nil
}
