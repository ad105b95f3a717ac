package pathmap_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/strata/internal/core/ports/mocks"
	"go.trai.ch/strata/internal/engine/pathmap"
	"go.uber.org/mock/gomock"
)

func touch(t *testing.T, paths ...string) {
	t.Helper()
	for _, p := range paths {
		require.NoError(t, os.MkdirAll(filepath.Dir(p), domain.DirPerm))
		require.NoError(t, os.WriteFile(p, nil, 0o600))
	}
}

func newTranslator(t *testing.T) *pathmap.Translator {
	t.Helper()
	disk := mocks.NewMockFileSystem(gomock.NewController(t))
	disk.EXPECT().ReadDir(gomock.Any()).DoAndReturn(os.ReadDir).AnyTimes()
	return pathmap.New(disk)
}

func TestTranslate_AutoAliases(t *testing.T) {
	project := t.TempDir()
	src := filepath.Join(project, "src")
	touch(t,
		filepath.Join(src, ".hidden"),
		filepath.Join(src, "components", "button.tsx"),
		filepath.Join(src, "index.ts"),
		filepath.Join(src, "node_modules", "x", "index.js"),
		filepath.Join(src, "styles.css"),
		filepath.Join(src, "types.d.ts"),
		filepath.Join(src, "utils", "strings.ts"),
	)

	cfg := &domain.Config{
		ProjectName:    "ui",
		ProjectDir:     project,
		ProjectBaseDir: src,
		ProjectDistDir: filepath.Join(project, "dist"),
		TSConfig: &domain.TSConfig{
			BaseURL:       src,
			PathsBasePath: project,
			Paths:         []domain.PathAlias{{Pattern: "@ignored/*", Locations: []string{"ignored/*"}}},
		},
	}
	unpublished := []*domain.Dependency{{ID: "shared", PackageName: "@acme/shared"}}

	mappings, err := newTranslator(t).Translate(cfg, unpublished)
	require.NoError(t, err)

	assert.Equal(t, ".", mappings.BaseURL)
	assert.Equal(t, []domain.PathAlias{
		{Pattern: "components/*", Locations: []string{"components/*"}},
		{Pattern: "index", Locations: []string{"index.js"}},
		{Pattern: "styles.css", Locations: []string{"styles.css"}},
		{Pattern: "types.d.ts", Locations: []string{"types.d.ts"}},
		{Pattern: "utils/*", Locations: []string{"utils/*"}},
		{Pattern: "@acme/shared", Locations: []string{"node_modules/@acme/shared"}},
		{Pattern: "@acme/shared/*", Locations: []string{"node_modules/@acme/shared/*"}},
	}, mappings.Paths)
}

func TestTranslate_UserAliasesWin(t *testing.T) {
	project := t.TempDir()
	touch(t,
		filepath.Join(project, "dist", "index.js"),
		filepath.Join(project, "utils", "a.ts"),
		filepath.Join(project, "main.ts"),
	)

	cfg := &domain.Config{
		ProjectName:    "app",
		ProjectDir:     project,
		ProjectBaseDir: project,
		ProjectDistDir: filepath.Join(project, "dist"),
		TSConfig: &domain.TSConfig{
			BaseURL:       project,
			PathsBasePath: project,
			Paths: []domain.PathAlias{
				{Pattern: "utils/*", Locations: []string{"lib/utils/*"}},
				{Pattern: "@app/*", Locations: []string{"./app/*"}},
			},
		},
	}

	mappings, err := newTranslator(t).Translate(cfg, nil)
	require.NoError(t, err)

	assert.Equal(t, []domain.PathAlias{
		{Pattern: "utils/*", Locations: []string{"lib/utils/*"}},
		{Pattern: "@app/*", Locations: []string{"app/*"}},
		{Pattern: "main", Locations: []string{"main.js"}},
	}, mappings.Paths)
}

func TestTranslate_BaseURLBelowBaseDir(t *testing.T) {
	project := t.TempDir()
	src := filepath.Join(project, "src")
	touch(t, filepath.Join(src, "index.ts"))

	cfg := &domain.Config{
		ProjectDir:     project,
		ProjectBaseDir: project,
		ProjectDistDir: filepath.Join(project, "dist"),
		TSConfig:       &domain.TSConfig{BaseURL: src},
	}

	mappings, err := newTranslator(t).Translate(cfg, []*domain.Dependency{{ID: "lib-a", Project: &domain.ProjectNode{Name: "lib-a"}}})
	require.NoError(t, err)

	assert.Equal(t, "src", mappings.BaseURL)
	locations, ok := mappings.Lookup("lib-a")
	require.True(t, ok)
	assert.Equal(t, []string{"../node_modules/lib-a"}, locations)
}

func TestTranslate_Errors(t *testing.T) {
	project := t.TempDir()
	src := filepath.Join(project, "src")
	touch(t, filepath.Join(src, "index.ts"))

	tests := []struct {
		name     string
		baseDir  string
		tsconfig *domain.TSConfig
		wantErr  error
	}{
		{
			name:     "alias outside source",
			baseDir:  src,
			tsconfig: &domain.TSConfig{BaseURL: src, PathsBasePath: src, Paths: []domain.PathAlias{{Pattern: "@shared/*", Locations: []string{"../shared/*"}}}},
			wantErr:  domain.ErrPathMappingOutsideSource,
		},
		{
			name:     "baseUrl above project",
			baseDir:  src,
			tsconfig: &domain.TSConfig{BaseURL: filepath.Dir(project)},
			wantErr:  domain.ErrBaseURLOutsideProject,
		},
		{
			name:     "baseUrl outside source",
			baseDir:  src,
			tsconfig: &domain.TSConfig{BaseURL: project},
			wantErr:  domain.ErrBaseURLOutsideSource,
		},
		{
			name:     "missing baseUrl directory",
			baseDir:  src,
			tsconfig: &domain.TSConfig{BaseURL: filepath.Join(src, "missing")},
			wantErr:  domain.ErrBaseURLNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &domain.Config{
				ProjectDir:     project,
				ProjectBaseDir: tt.baseDir,
				ProjectDistDir: filepath.Join(project, "dist"),
				TSConfig:       tt.tsconfig,
			}
			_, err := newTranslator(t).Translate(cfg, nil)
			require.Error(t, err)
			assert.ErrorContains(t, err, tt.wantErr.Error())
		})
	}
}
