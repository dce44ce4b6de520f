package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"civilregistry-go/models"
)

func TestIdentitiesUpdateContact(t *testing.T) {
	ctx := context.Background()

	t.Run("updates mobile and email", func(t *testing.T) {
		db := newTestDB(t)
		identities := NewIdentities(db)
		seedCitizen(t, db, "123456789012", "Alice")

		require.NoError(t, identities.UpdateContact(ctx, "123456789012", "9123456780", "alice@example.com"))

		citizen, err := identities.Fetch(ctx, "123456789012")
		require.NoError(t, err)
		require.Equal(t, "9123456780", citizen.Mobile)
		require.Equal(t, "alice@example.com", citizen.Email)
	})

	t.Run("validates the new values", func(t *testing.T) {
		db := newTestDB(t)
		identities := NewIdentities(db)
		seedCitizen(t, db, "123456789012", "Alice")

		var vErr *ValidationError
		require.ErrorAs(t, identities.UpdateContact(ctx, "123456789012", "12345", ""), &vErr)
		require.ErrorAs(t, identities.UpdateContact(ctx, "123456789012", "9123456780", "nope"), &vErr)
	})

	t.Run("unknown citizen is not found", func(t *testing.T) {
		db := newTestDB(t)
		identities := NewIdentities(db)

		var nfErr *NotFoundError
		require.ErrorAs(t, identities.UpdateContact(ctx, "999956789012", "9123456780", ""), &nfErr)
	})
}

func TestIdentitiesSetAccountStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("activation after approval", func(t *testing.T) {
		db := newTestDB(t)
		queue, workflow, identities := NewQueue(db), NewWorkflow(db), NewIdentities(db)

		submitted, err := queue.Submit(ctx, validRegistration("alice", "123456789012"))
		require.NoError(t, err)
		citizen, err := workflow.Approve(ctx, submitted.ID, "registrar")
		require.NoError(t, err)
		require.Equal(t, models.AccountInactive, citizen.AccountStatus)

		require.NoError(t, identities.SetAccountStatus(ctx, "123456789012", models.AccountActive, "registrar"))

		reloaded, err := identities.Fetch(ctx, "123456789012")
		require.NoError(t, err)
		require.Equal(t, models.AccountActive, reloaded.AccountStatus)

		// Approval and activation each leave an audit entry.
		require.EqualValues(t, 2, auditCount(t, db))
	})

	t.Run("rejects unknown statuses", func(t *testing.T) {
		db := newTestDB(t)
		identities := NewIdentities(db)
		seedCitizen(t, db, "123456789012", "Alice")

		var vErr *ValidationError
		require.ErrorAs(t, identities.SetAccountStatus(ctx, "123456789012", "Frozen", "registrar"), &vErr)
	})
}
