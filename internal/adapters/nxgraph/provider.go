// Package nxgraph loads the workspace project graph produced by Nx.
package nxgraph

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"

	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/strata/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.GraphProvider = (*Provider)(nil)

// externalNodeType is the Nx node type of registry packages.
const externalNodeType = "npm"

// Provider implements ports.GraphProvider from an Nx graph JSON document.
type Provider struct {
	settings *domain.Settings
	runner   ports.Runner
}

// NewProvider creates a new Provider. When settings name a graph file it is read directly,
// otherwise the graph is exported by running Nx.
func NewProvider(settings *domain.Settings, runner ports.Runner) *Provider {
	return &Provider{settings: settings, runner: runner}
}

// Load returns the project graph of the workspace rooted at root.
func (p *Provider) Load(ctx context.Context, root string) (*domain.ProjectGraph, error) {
	if p.settings != nil && p.settings.GraphFile != "" {
		return ReadFile(p.settings.GraphFile)
	}

	tmpDir, err := os.MkdirTemp("", "strata-graph-")
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrGraphLoadFailed.Error())
	}
	defer os.RemoveAll(tmpDir) //nolint:errcheck // Best effort cleanup

	graphFile := filepath.Join(tmpDir, "graph.json")
	prefix := domain.DefaultSettings(root).NxCommand
	if p.settings != nil && len(p.settings.NxCommand) > 0 {
		prefix = p.settings.NxCommand
	}
	cmd := domain.NewCommand(prefix, "graph", "--file="+graphFile)
	cmd.Dir = root

	if err := p.runner.Run(ctx, cmd, nil); err != nil {
		return nil, zerr.Wrap(err, domain.ErrGraphLoadFailed.Error())
	}

	return ReadFile(graphFile)
}

// ReadFile parses a graph JSON file.
func ReadFile(path string) (*domain.ProjectGraph, error) {
	//nolint:gosec // Path comes from workspace settings or a private temp dir
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrGraphLoadFailed.Error()), "path", path)
	}

	g, err := Parse(data)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	return g, nil
}

type documentDTO struct {
	Graph *graphDTO `json:"graph"`
	graphDTO
}

type graphDTO struct {
	Nodes         map[string]nodeDTO         `json:"nodes"`
	ExternalNodes map[string]nodeDTO         `json:"externalNodes"`
	Dependencies  map[string][]dependencyDTO `json:"dependencies"`
}

type nodeDTO struct {
	Name string          `json:"name"`
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type projectDataDTO struct {
	Root        string                   `json:"root"`
	Targets     map[string]domain.Target `json:"targets"`
	WillPublish bool                     `json:"willPublish"`
}

type externalDataDTO struct {
	PackageName string `json:"packageName"`
	Version     string `json:"version"`
}

type dependencyDTO struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Type   string `json:"type"`
}

// Parse decodes an Nx graph document. Both the `{"graph": {...}}` wrapper written by
// `nx graph --file` and the bare graph object are accepted.
func Parse(data []byte) (*domain.ProjectGraph, error) {
	var doc documentDTO
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, zerr.Wrap(err, domain.ErrGraphParseFailed.Error())
	}

	raw := doc.graphDTO
	if doc.Graph != nil {
		raw = *doc.Graph
	}

	g := domain.NewProjectGraph()

	for _, id := range sortedKeys(raw.Nodes) {
		if err := addNode(g, id, raw.Nodes[id]); err != nil {
			return nil, err
		}
	}
	for _, id := range sortedKeys(raw.ExternalNodes) {
		n := raw.ExternalNodes[id]
		n.Type = externalNodeType
		if err := addNode(g, id, n); err != nil {
			return nil, err
		}
	}

	for _, source := range sortedKeys(raw.Dependencies) {
		for _, dep := range raw.Dependencies[source] {
			from := dep.Source
			if from == "" {
				from = source
			}
			g.AddDependency(from, dep.Target, dep.Type)
		}
	}

	return g, nil
}

func addNode(g *domain.ProjectGraph, id string, n nodeDTO) error {
	if n.Type == externalNodeType {
		var data externalDataDTO
		if err := unmarshalData(n.Data, &data); err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrGraphParseFailed.Error()), "node", id)
		}
		return g.AddExternal(&domain.ExternalNode{
			Name:        id,
			PackageName: data.PackageName,
			Version:     data.Version,
		})
	}

	var data projectDataDTO
	if err := unmarshalData(n.Data, &data); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrGraphParseFailed.Error()), "node", id)
	}
	if data.Targets == nil {
		data.Targets = map[string]domain.Target{}
	}
	return g.AddProject(&domain.ProjectNode{
		Name:        id,
		Root:        data.Root,
		Targets:     data.Targets,
		WillPublish: data.WillPublish,
	})
}

func unmarshalData(raw json.RawMessage, target any) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, target)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
