package nxgraph_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/strata/internal/adapters/nxgraph"
	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/strata/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

const wrappedGraph = `{
  "graph": {
    "nodes": {
      "web": {
        "name": "web",
        "type": "app",
        "data": {
          "root": "apps/web",
          "targets": {
            "package": {"executor": "strata:package", "options": {"distribution": "app", "entry": "src/main.ts"}}
          }
        }
      },
      "ui": {
        "name": "ui",
        "type": "lib",
        "data": {"root": "libs/ui", "willPublish": true, "targets": {}}
      }
    },
    "externalNodes": {
      "npm:react": {"name": "npm:react", "type": "npm", "data": {"packageName": "react", "version": "18.2.0"}}
    },
    "dependencies": {
      "web": [
        {"source": "web", "target": "ui", "type": "static"},
        {"source": "web", "target": "npm:react", "type": "static"}
      ],
      "ui": []
    }
  }
}`

func TestParse_Wrapped(t *testing.T) {
	g, err := nxgraph.Parse([]byte(wrappedGraph))
	require.NoError(t, err)

	web, ok := g.Project("web")
	require.True(t, ok)
	assert.Equal(t, "apps/web", web.Root)
	target, ok := web.PackageTarget()
	require.True(t, ok)
	assert.Equal(t, "app", target.Options.Distribution)
	assert.Equal(t, "src/main.ts", target.Options.Entry)

	ui, ok := g.Project("ui")
	require.True(t, ok)
	assert.True(t, ui.Publishable())

	react := g.ExternalNodes["npm:react"]
	require.NotNil(t, react)
	assert.Equal(t, "react", react.PackageName)
	assert.Equal(t, "18.2.0", react.Version)

	assert.Equal(t, []domain.DependencyEdge{
		{Source: "web", Target: "ui", Type: "static"},
		{Source: "web", Target: "npm:react", Type: "static"},
	}, g.Edges("web"))
}

func TestParse_BareWithNpmNodes(t *testing.T) {
	bare := `{
  "nodes": {
    "lib": {"type": "lib", "data": {"root": "libs/lib"}},
    "npm:lodash": {"type": "npm", "data": {"packageName": "lodash", "version": "4.17.21"}}
  },
  "dependencies": {"lib": [{"target": "npm:lodash", "type": "static"}]}
}`
	g, err := nxgraph.Parse([]byte(bare))
	require.NoError(t, err)

	lib, ok := g.Project("lib")
	require.True(t, ok)
	assert.NotNil(t, lib.Targets)
	assert.Contains(t, g.ExternalNodes, "npm:lodash")
	assert.Equal(t, []domain.DependencyEdge{{Source: "lib", Target: "npm:lodash", Type: "static"}}, g.Edges("lib"))
}

func TestParse_Invalid(t *testing.T) {
	_, err := nxgraph.Parse([]byte(`{"nodes": [`))
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrGraphParseFailed.Error())
}

func TestProvider_LoadFromSettingsFile(t *testing.T) {
	ctrl := gomock.NewController(t)
	root := t.TempDir()
	path := filepath.Join(root, "graph.json")
	require.NoError(t, os.WriteFile(path, []byte(wrappedGraph), 0o600))

	settings := domain.DefaultSettings(root)
	settings.GraphFile = path

	g, err := nxgraph.NewProvider(settings, mocks.NewMockRunner(ctrl)).Load(context.Background(), root)
	require.NoError(t, err)
	assert.Equal(t, []string{"ui", "web"}, g.ProjectNames())
}

func TestProvider_LoadRunsNx(t *testing.T) {
	ctrl := gomock.NewController(t)
	root := t.TempDir()
	runner := mocks.NewMockRunner(ctrl)

	runner.EXPECT().Run(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, cmd domain.Command, _ io.Writer) error {
			assert.Equal(t, "npx", cmd.Name)
			assert.Equal(t, root, cmd.Dir)
			require.Len(t, cmd.Args, 3)
			assert.Equal(t, []string{"nx", "graph"}, cmd.Args[:2])
			file, ok := strings.CutPrefix(cmd.Args[2], "--file=")
			require.True(t, ok)
			return os.WriteFile(file, []byte(wrappedGraph), 0o600)
		})

	g, err := nxgraph.NewProvider(domain.DefaultSettings(root), runner).Load(context.Background(), root)
	require.NoError(t, err)
	assert.Len(t, g.Nodes, 2)
}
