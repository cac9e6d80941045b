package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sulaimaniyah/undangan/pkg/adapters/memory"
	"github.com/sulaimaniyah/undangan/pkg/domain"
	"github.com/sulaimaniyah/undangan/pkg/ports"
)

func TestMemoryStore_Contract(t *testing.T) {
	store := memory.NewStore()
	ports.RunStateStoreContract(t, store)
}

func TestMemoryStore_Isolation(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	snap := domain.NewSnapshot("s1", domain.DefaultRecipient())
	snap.Visible = []domain.Section{domain.SectionCover}
	require.NoError(t, store.Save(ctx, "s1", snap))

	snap.Visible[0] = domain.SectionRSVP
	snap.Form.Name = "mutated"

	loaded, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, []domain.Section{domain.SectionCover}, loaded.Visible)
	assert.Empty(t, loaded.Form.Name)
}
