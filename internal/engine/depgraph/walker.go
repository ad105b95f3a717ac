// Package depgraph classifies the dependencies reachable from a project.
package depgraph

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/strata/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

const remediation = `to resolve, either:
1. mark the project as published by adding a "publish" target or setting "willPublish" to true
2. add a build target using the executor "` + domain.ExecutorBuild + `"
3. add a package target using the executor "` + domain.ExecutorPackage + `" with "distribution" set to "lib"`

// Walker traverses the project graph from a root project.
type Walker struct {
	manifests     ports.ManifestStore
	workspaceRoot string
}

// New creates a new Walker that reads project manifests below workspaceRoot.
func New(manifests ports.ManifestStore, workspaceRoot string) *Walker {
	return &Walker{
		manifests:     manifests,
		workspaceRoot: workspaceRoot,
	}
}

type frame struct {
	id   string
	next int
}

// Walk visits every vertex reachable from root in depth-first pre-order. Registry packages and
// published projects are recorded without descending into them; every other project is recorded
// as unpublished and its own dependencies are walked. Each vertex is classified once.
func (w *Walker) Walk(
	ctx context.Context,
	graph *domain.ProjectGraph,
	root string,
) (domain.DependencyClassification, error) {
	var (
		result  domain.DependencyClassification
		reads   errgroup.Group
		visited = map[string]struct{}{root: {}}
		stack   = []*frame{{id: root}}
	)

	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			_ = reads.Wait()
			return domain.DependencyClassification{}, err
		}

		top := stack[len(stack)-1]
		edges := graph.Edges(top.id)
		if top.next >= len(edges) {
			stack = stack[:len(stack)-1]
			continue
		}
		target := edges[top.next].Target
		top.next++

		if _, ok := visited[target]; ok {
			continue
		}
		visited[target] = struct{}{}

		if ext, ok := graph.ExternalNodes[target]; ok {
			result.Published = append(result.Published, &domain.Dependency{
				ID:          target,
				External:    ext,
				PackageName: ext.PackageName,
				Version:     ext.Version,
			})
			continue
		}

		project, ok := graph.Project(target)
		if !ok {
			if strings.HasPrefix(target, domain.ExternalPrefix) {
				continue
			}
			_ = reads.Wait()
			return domain.DependencyClassification{}, zerr.With(zerr.With(domain.ErrProjectNotInGraph,
				"dependency", target),
				"dependent", top.id)
		}

		publishable := project.Publishable()
		if !publishable && !project.Buildable() && !project.Packagable() {
			_ = reads.Wait()
			return domain.DependencyClassification{}, zerr.With(
				fmt.Errorf("%w: %s", domain.ErrUnpackagableDependency, remediation),
				"project", project.Name)
		}

		dep := &domain.Dependency{ID: target, Project: project}
		reads.Go(func() error {
			return w.readManifest(dep)
		})

		if publishable {
			result.Published = append(result.Published, dep)
			continue
		}
		result.Unpublished = append(result.Unpublished, dep)
		stack = append(stack, &frame{id: target})
	}

	if err := reads.Wait(); err != nil {
		return domain.DependencyClassification{}, err
	}
	return result, nil
}

// readManifest fills in the package name and version. Projects without a package.json keep empty values.
func (w *Walker) readManifest(dep *domain.Dependency) error {
	manifest, err := w.manifests.Read(filepath.Join(w.workspaceRoot, dep.Project.Root))
	if err != nil {
		return zerr.With(err, "project", dep.Project.Name)
	}
	if manifest == nil {
		return nil
	}
	dep.PackageName = manifest.Name()
	dep.Version = manifest.Version()
	return nil
}
