package fs_test

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/strata/internal/adapters/fs"
	"go.trai.ch/strata/internal/core/domain"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), domain.DirPerm))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestWalker_WalkFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.ts"), "a")
	writeFile(t, filepath.Join(root, "lib", "b.ts"), "b")
	writeFile(t, filepath.Join(root, ".git", "HEAD"), "ref")
	writeFile(t, filepath.Join(root, "node_modules", "x", "index.js"), "x")
	writeFile(t, filepath.Join(root, "notes.log"), "log")

	var got []string
	for p := range fs.NewWalker().WalkFiles(root, []string{"node_modules", "*.log"}) {
		rel, err := filepath.Rel(root, p)
		require.NoError(t, err)
		got = append(got, filepath.ToSlash(rel))
	}

	assert.Equal(t, []string{"a.ts", "lib/b.ts"}, got)
}

func TestDisk_CopyMerges(t *testing.T) {
	disk := fs.NewDisk()
	src := filepath.Join(t.TempDir(), "src")
	dst := filepath.Join(t.TempDir(), "dst")

	writeFile(t, filepath.Join(src, "esm", "index.js"), "new")
	writeFile(t, filepath.Join(dst, "esm", "index.js"), "old")
	writeFile(t, filepath.Join(dst, "esm", "keep.js"), "keep")

	require.NoError(t, disk.Copy(src, dst))

	assert.Equal(t, "new", readFile(t, filepath.Join(dst, "esm", "index.js")))
	assert.Equal(t, "keep", readFile(t, filepath.Join(dst, "esm", "keep.js")))
	assert.Equal(t, "new", readFile(t, filepath.Join(src, "esm", "index.js")), "source is untouched")
}

func TestDisk_CopyFile(t *testing.T) {
	disk := fs.NewDisk()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "README.md"), "readme")

	dst := filepath.Join(root, "out", "nested", "README.md")
	require.NoError(t, disk.Copy(filepath.Join(root, "README.md"), dst))

	assert.Equal(t, "readme", readFile(t, dst))
}

func TestDisk_CopyMissingSource(t *testing.T) {
	err := fs.NewDisk().Copy(filepath.Join(t.TempDir(), "missing"), t.TempDir())

	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrCopyFailed.Error())
}

func TestDisk_MoveReplacesDestination(t *testing.T) {
	disk := fs.NewDisk()
	root := t.TempDir()
	src := filepath.Join(root, "tmp", "pkg")
	dst := filepath.Join(root, "dist", "pkg")

	writeFile(t, filepath.Join(src, "package.json"), "{}")
	writeFile(t, filepath.Join(dst, "stale.js"), "stale")

	require.NoError(t, disk.Move(src, dst))

	assert.Equal(t, "{}", readFile(t, filepath.Join(dst, "package.json")))
	exists, err := disk.Exists(filepath.Join(dst, "stale.js"))
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = disk.Exists(src)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestDisk_RemoveAndEnsureDir(t *testing.T) {
	disk := fs.NewDisk()
	dir := filepath.Join(t.TempDir(), "a", "b")

	require.NoError(t, disk.EnsureDir(dir))
	require.NoError(t, disk.EnsureDir(dir))

	exists, err := disk.Exists(dir)
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, disk.Remove(dir))
	require.NoError(t, disk.Remove(dir), "removing a missing path is accepted")
}

func TestDisk_ReadDir(t *testing.T) {
	disk := fs.NewDisk()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "b.ts"), "")
	writeFile(t, filepath.Join(root, "a", "x.ts"), "")

	entries, err := disk.ReadDir(root)
	require.NoError(t, err)

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Equal(t, []string{"a", "b.ts"}, names)

	_, err = disk.ReadDir(filepath.Join(root, "missing"))
	assert.ErrorContains(t, err, domain.ErrReadDirFailed.Error())
}

func TestResolver_ResolveAssets(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "README.md"), "")
	writeFile(t, filepath.Join(root, "license"), "")
	writeFile(t, filepath.Join(root, "Licence.txt"), "")
	writeFile(t, filepath.Join(root, "templates", "a.hbs"), "")
	writeFile(t, filepath.Join(root, "templates", "nested", "b.hbs"), "")
	writeFile(t, filepath.Join(root, "schema.json"), "")
	writeFile(t, filepath.Join(root, "index.ts"), "")
	writeFile(t, filepath.Join(root, "node_modules", "dep", "README.md"), "")
	writeFile(t, filepath.Join(root, "dist", "README.md"), "")

	got, err := fs.NewResolver().ResolveAssets(root, []string{"templates/*.hbs", "schema.json"},
		[]string{"node_modules", filepath.Join(root, "dist")})
	require.NoError(t, err)

	rel := make([]string, 0, len(got))
	for _, p := range got {
		r, err := filepath.Rel(root, p)
		require.NoError(t, err)
		rel = append(rel, filepath.ToSlash(r))
	}
	slices.Sort(rel)

	assert.Equal(t, []string{"Licence.txt", "README.md", "license", "schema.json", "templates/a.hbs"}, rel)
}

func TestResolver_ResolveAssets_DoubleStar(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "top.css"), "")
	writeFile(t, filepath.Join(root, "styles", "a.css"), "")
	writeFile(t, filepath.Join(root, "components", "button", "b.css"), "")
	writeFile(t, filepath.Join(root, "components", "button", "b.ts"), "")

	got, err := fs.NewResolver().ResolveAssets(root, []string{"**/*.css"}, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(root, "components", "button", "b.css"),
		filepath.Join(root, "styles", "a.css"),
		filepath.Join(root, "top.css"),
	}, got)
}

func TestResolver_InvalidPattern(t *testing.T) {
	_, err := fs.NewResolver().ResolveAssets(t.TempDir(), []string{"[unterminated"}, nil)

	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrInvalidAssetPattern.Error())
}

func TestHasher_ComputeSourceHash(t *testing.T) {
	hasher := fs.NewHasher(fs.NewWalker())

	a := t.TempDir()
	b := t.TempDir()
	for _, dir := range []string{a, b} {
		writeFile(t, filepath.Join(dir, "index.ts"), "export const a = 1;")
		writeFile(t, filepath.Join(dir, "lib", "util.ts"), "export const b = 2;")
	}
	writeFile(t, filepath.Join(b, "node_modules", "x.js"), "ignored")

	hashA, err := hasher.ComputeSourceHash(a, []string{"node_modules"})
	require.NoError(t, err)
	hashB, err := hasher.ComputeSourceHash(b, []string{"node_modules"})
	require.NoError(t, err)
	assert.Equal(t, hashA, hashB, "hash depends on relative paths and content only")
	assert.Len(t, hashA, 16)

	writeFile(t, filepath.Join(b, "lib", "util.ts"), "export const b = 3;")
	hashC, err := hasher.ComputeSourceHash(b, []string{"node_modules"})
	require.NoError(t, err)
	assert.NotEqual(t, hashA, hashC)
}
