package cas_test

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/strata/internal/adapters/cas"
	"go.trai.ch/strata/internal/core/domain"
)

func TestStore_PutAndGet(t *testing.T) {
	store := cas.NewStore(filepath.Join(t.TempDir(), "store"))

	info := domain.LayerInfo{
		Project:     "pkg-a",
		ExecutionID: "exec-1",
		InputHash:   "abc",
		BuiltAt:     time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	require.NoError(t, store.Put(info))

	got, err := store.Get("pkg-a")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, info, *got)
}

func TestStore_GetMissing(t *testing.T) {
	store := cas.NewStore(t.TempDir())

	got, err := store.Get("missing")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_FileLayout(t *testing.T) {
	dir := t.TempDir()
	store := cas.NewStore(dir)
	require.NoError(t, store.Put(domain.LayerInfo{Project: "@scope/pkg"}))

	hash := sha256.Sum256([]byte("@scope/pkg"))
	_, err := os.Stat(filepath.Join(dir, hex.EncodeToString(hash[:])+".json"))
	assert.NoError(t, err)
}

func TestStore_Delete(t *testing.T) {
	store := cas.NewStore(t.TempDir())
	require.NoError(t, store.Put(domain.LayerInfo{Project: "pkg-a", ExecutionID: "x"}))

	require.NoError(t, store.Delete("pkg-a"))
	got, err := store.Get("pkg-a")
	require.NoError(t, err)
	assert.Nil(t, got)

	assert.NoError(t, store.Delete("pkg-a"), "deleting a missing entry is accepted")
}

func TestStore_CorruptEntry(t *testing.T) {
	dir := t.TempDir()
	store := cas.NewStore(dir)

	hash := sha256.Sum256([]byte("pkg-a"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, hex.EncodeToString(hash[:])+".json"), []byte("{"), 0o600))

	_, err := store.Get("pkg-a")
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrStoreUnmarshalFailed.Error())
}
