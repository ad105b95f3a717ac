// Package domain contains the core domain models of the packaging pipeline.
package domain

import (
	"sort"

	"go.trai.ch/zerr"
)

// ExternalPrefix is the id prefix of registry package vertices.
const ExternalPrefix = "npm:"

// DependencyEdge connects two vertices of the project graph.
type DependencyEdge struct {
	Source string
	Target string
	Type   string
}

// ProjectGraph is an arena of project and registry vertices addressed by id.
type ProjectGraph struct {
	Nodes         map[string]*ProjectNode
	ExternalNodes map[string]*ExternalNode
	Dependencies  map[string][]DependencyEdge
}

// NewProjectGraph creates an empty ProjectGraph.
func NewProjectGraph() *ProjectGraph {
	return &ProjectGraph{
		Nodes:         make(map[string]*ProjectNode),
		ExternalNodes: make(map[string]*ExternalNode),
		Dependencies:  make(map[string][]DependencyEdge),
	}
}

// AddProject adds an in-repo project vertex.
// It returns an error if a vertex with the same id already exists.
func (g *ProjectGraph) AddProject(p *ProjectNode) error {
	if g.has(p.Name) {
		return zerr.With(ErrDuplicateProject, "project", p.Name)
	}
	g.Nodes[p.Name] = p
	return nil
}

// AddExternal adds a registry vertex.
// It returns an error if a vertex with the same id already exists.
func (g *ProjectGraph) AddExternal(n *ExternalNode) error {
	if g.has(n.Name) {
		return zerr.With(ErrDuplicateProject, "project", n.Name)
	}
	g.ExternalNodes[n.Name] = n
	return nil
}

// AddDependency appends an edge from source to target.
func (g *ProjectGraph) AddDependency(source, target, typ string) {
	g.Dependencies[source] = append(g.Dependencies[source], DependencyEdge{
		Source: source,
		Target: target,
		Type:   typ,
	})
}

// Project returns the in-repo project with the given name.
func (g *ProjectGraph) Project(name string) (*ProjectNode, bool) {
	p, ok := g.Nodes[name]
	return p, ok
}

// Edges returns the ordered outgoing edges of a vertex.
func (g *ProjectGraph) Edges(id string) []DependencyEdge {
	return g.Dependencies[id]
}

// ProjectNames returns the names of all in-repo projects in sorted order.
func (g *ProjectGraph) ProjectNames() []string {
	names := make([]string, 0, len(g.Nodes))
	for name := range g.Nodes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (g *ProjectGraph) has(id string) bool {
	if _, ok := g.Nodes[id]; ok {
		return true
	}
	_, ok := g.ExternalNodes[id]
	return ok
}
