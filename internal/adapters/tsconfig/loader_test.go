package tsconfig_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/strata/internal/adapters/tsconfig"
	"go.trai.ch/strata/internal/core/domain"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), domain.DirPerm))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestLoad_CommentsAndTrailingCommas(t *testing.T) {
	root := t.TempDir()
	project := filepath.Join(root, "libs", "ui")
	writeFile(t, filepath.Join(project, "tsconfig.json"), `{
  // resolution
  "compilerOptions": {
    "baseUrl": "./src",
    "paths": {
      "@ui/*": ["components/*"],
      "@theme": ["theme/index.ts"], /* trailing comma below */
    },
  },
}`)

	cfg, err := tsconfig.NewLoader().Load(project)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(project, "tsconfig.json"), cfg.Path)
	assert.Equal(t, filepath.Join(project, "src"), cfg.BaseURL)
	assert.Equal(t, project, cfg.PathsBasePath)
	assert.Equal(t, []domain.PathAlias{
		{Pattern: "@ui/*", Locations: []string{"components/*"}},
		{Pattern: "@theme", Locations: []string{"theme/index.ts"}},
	}, cfg.Paths)
}

func TestLoad_WalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "tsconfig.json"), `{"compilerOptions":{"baseUrl":"."}}`)
	project := filepath.Join(root, "apps", "web")
	require.NoError(t, os.MkdirAll(project, domain.DirPerm))

	cfg, err := tsconfig.NewLoader().Load(project)
	require.NoError(t, err)
	assert.Equal(t, root, cfg.BaseURL)
}

func TestLoad_Extends(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "tsconfig.base.json"), `{
  "compilerOptions": {"baseUrl": ".", "paths": {"@shared/*": ["libs/shared/*"]}}
}`)
	writeFile(t, filepath.Join(root, "node_modules", "@tsconfig", "strict", "tsconfig.json"), `{
  "compilerOptions": {"baseUrl": "ignored-by-later-entries"}
}`)
	project := filepath.Join(root, "libs", "ui")
	writeFile(t, filepath.Join(project, "tsconfig.json"), `{
  "extends": ["@tsconfig/strict", "../../tsconfig.base"],
  "compilerOptions": {"baseUrl": "./src"}
}`)

	cfg, err := tsconfig.NewLoader().Load(project)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(project, "src"), cfg.BaseURL)
	assert.Equal(t, root, cfg.PathsBasePath, "paths are declared by the base config")
	require.Len(t, cfg.Paths, 1)
	assert.Equal(t, "@shared/*", cfg.Paths[0].Pattern)
}

func TestLoad_BaseURLFromBase(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "tsconfig.base.json"), `{"compilerOptions":{"baseUrl":"."}}`)
	project := filepath.Join(root, "libs", "ui")
	writeFile(t, filepath.Join(project, "tsconfig.json"), `{"extends":"../../tsconfig.base.json"}`)

	cfg, err := tsconfig.NewLoader().Load(project)
	require.NoError(t, err)
	assert.Equal(t, root, cfg.BaseURL, "baseUrl is resolved against the declaring file")
}

func TestLoad_Errors(t *testing.T) {
	t.Run("cycle", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, "a.json"), `{"extends":"./tsconfig.json"}`)
		writeFile(t, filepath.Join(root, "tsconfig.json"), `{"extends":"./a.json"}`)

		_, err := tsconfig.NewLoader().Load(root)
		require.Error(t, err)
		assert.ErrorContains(t, err, domain.ErrTSConfigExtendsCycle.Error())
	})

	t.Run("missing base", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, "tsconfig.json"), `{"extends":"@missing/config"}`)

		_, err := tsconfig.NewLoader().Load(root)
		require.Error(t, err)
		assert.ErrorContains(t, err, domain.ErrTSConfigNotFound.Error())
	})

	t.Run("invalid json", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, "tsconfig.json"), `{"compilerOptions": }`)

		_, err := tsconfig.NewLoader().Load(root)
		require.Error(t, err)
		assert.ErrorContains(t, err, domain.ErrTSConfigParseFailed.Error())
	})
}
