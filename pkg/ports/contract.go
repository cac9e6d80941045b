package ports

import (
	"context"
	"testing"
	"time"

	"github.com/sulaimaniyah/undangan/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunStateStoreContract runs a suite of tests to verify that a StateStore implementation
// adheres to the defined interface contract.
func RunStateStoreContract(t *testing.T, store StateStore) {
	ctx := context.Background()
	sessionID := "contract-test-session-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		snap := domain.NewSnapshot(sessionID, domain.RecipientInfo{Name: "Budi", Title: "Guru"})
		snap.Form = domain.FormState{Name: "Siti", Attending: domain.AttendanceNo}
		snap.Visible = []domain.Section{domain.SectionCover, domain.SectionDetails}

		err := store.Save(ctx, sessionID, snap)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, snap.View, loaded.View)
		assert.Equal(t, snap.Recipient, loaded.Recipient)
		assert.Equal(t, snap.Form, loaded.Form)
		assert.Equal(t, snap.Visible, loaded.Visible)
	})

	t.Run("Outcome Survives", func(t *testing.T) {
		snap := domain.NewSnapshot(sessionID, domain.DefaultRecipient())
		snap.View = domain.ViewConfirmed
		snap.Outcome = &domain.SubmissionOutcome{Message: "Terima kasih", Succeeded: true}

		require.NoError(t, store.Save(ctx, sessionID, snap))

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		require.NotNil(t, loaded.Outcome)
		assert.Equal(t, *snap.Outcome, *loaded.Outcome)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Save(ctx, sessionID, domain.NewSnapshot(sessionID, domain.DefaultRecipient()))
		require.NoError(t, err)

		err = store.Delete(ctx, sessionID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound, "Load after Delete should return ErrSessionNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := sessionID + "-1"
		id2 := sessionID + "-2"
		_ = store.Save(ctx, id1, domain.NewSnapshot(id1, domain.DefaultRecipient()))
		_ = store.Save(ctx, id2, domain.NewSnapshot(id2, domain.DefaultRecipient()))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		sessions, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, sessions, id1)
		assert.Contains(t, sessions, id2)
	})
}
