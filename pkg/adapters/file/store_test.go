package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sulaimaniyah/undangan/pkg/adapters/file"
	"github.com/sulaimaniyah/undangan/pkg/domain"
	"github.com/sulaimaniyah/undangan/pkg/ports"
)

func TestFileStore_Contract(t *testing.T) {
	store := file.New(t.TempDir())
	ports.RunStateStoreContract(t, store)
}

func TestFileStore_Layout(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "sessions")
	store := file.New(dir)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "abc", domain.NewSnapshot("abc", domain.DefaultRecipient())))

	_, err := os.Stat(filepath.Join(dir, "abc.json"))
	require.NoError(t, err, "directory is created on first save")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestFileStore_RejectsPathTraversal(t *testing.T) {
	store := file.New(t.TempDir())
	ctx := context.Background()

	err := store.Save(ctx, "../escape", domain.NewSnapshot("x", domain.DefaultRecipient()))
	assert.ErrorIs(t, err, file.ErrInvalidSessionID)

	_, err = store.Load(ctx, "")
	assert.ErrorIs(t, err, file.ErrInvalidSessionID)
}

func TestFileStore_ListMissingDir(t *testing.T) {
	store := file.New(filepath.Join(t.TempDir(), "absent"))
	ids, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ids)
}
