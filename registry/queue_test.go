package registry

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"civilregistry-go/models"
)

func TestQueueSubmit(t *testing.T) {
	db := newTestDB(t)
	queue := NewQueue(db)
	ctx := context.Background()

	t.Run("valid submission creates a pending request", func(t *testing.T) {
		registration, err := queue.Submit(ctx, validRegistration("alice", "123456789012"))
		require.NoError(t, err)
		require.Equal(t, models.RegistrationPending, registration.Status)
		require.NotZero(t, registration.ID)
		require.Equal(t, "123456789012", registration.NationalID)
	})

	t.Run("password is stored as a digest, never plaintext", func(t *testing.T) {
		registration, err := queue.Submit(ctx, validRegistration("bob", "223456789012"))
		require.NoError(t, err)
		require.NotEqual(t, "secret-pass", registration.PasswordHash)
		require.Len(t, registration.PasswordHash, 64)
	})

	t.Run("no uniqueness check at submission time", func(t *testing.T) {
		first, err := queue.Submit(ctx, validRegistration("carol", "323456789012"))
		require.NoError(t, err)
		second, err := queue.Submit(ctx, validRegistration("dave", "323456789012"))
		require.NoError(t, err)
		require.NotEqual(t, first.ID, second.ID)
	})

	t.Run("reports the first failing field", func(t *testing.T) {
		cases := []struct {
			name   string
			mutate func(*models.RegistrationRequest)
			field  string
		}{
			{"empty username", func(r *models.RegistrationRequest) { r.Username = "  " }, "username"},
			{"empty password", func(r *models.RegistrationRequest) { r.Password = "" }, "password"},
			{"short national id", func(r *models.RegistrationRequest) { r.NationalID = "12345" }, "national_id"},
			{"non-numeric national id", func(r *models.RegistrationRequest) { r.NationalID = "12345678901X" }, "national_id"},
			{"short mobile", func(r *models.RegistrationRequest) { r.Mobile = "98765" }, "mobile"},
			{"bad gender", func(r *models.RegistrationRequest) { r.Gender = "X" }, "gender"},
			{"bad date", func(r *models.RegistrationRequest) { r.DateOfBirth = "01-01-1990" }, "date_of_birth"},
			{"bad email", func(r *models.RegistrationRequest) { r.Email = "not-an-email" }, "email"},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				req := validRegistration("eve", "423456789012")
				tc.mutate(&req)
				_, err := queue.Submit(ctx, req)
				var vErr *ValidationError
				require.ErrorAs(t, err, &vErr)
				require.Equal(t, tc.field, vErr.Field)
			})
		}
	})

	t.Run("multiple bad fields report the first in order", func(t *testing.T) {
		req := validRegistration("frank", "bad")
		req.Mobile = "also-bad"
		_, err := queue.Submit(ctx, req)
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		require.Equal(t, "national_id", vErr.Field)
	})
}

func TestQueueFetchPending(t *testing.T) {
	db := newTestDB(t)
	queue := NewQueue(db)
	ctx := context.Background()

	submitted, err := queue.Submit(ctx, validRegistration("alice", "123456789012"))
	require.NoError(t, err)

	t.Run("returns a submitted request", func(t *testing.T) {
		fetched, err := queue.FetchPending(ctx, submitted.ID)
		require.NoError(t, err)
		require.Equal(t, submitted.ID, fetched.ID)
		require.Equal(t, "alice", fetched.Username)
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		_, err := queue.FetchPending(ctx, 9999)
		var nfErr *NotFoundError
		require.ErrorAs(t, err, &nfErr)
	})

	t.Run("decided requests are no longer pending", func(t *testing.T) {
		workflow := NewWorkflow(db)
		require.NoError(t, workflow.Reject(ctx, submitted.ID, "registrar", "incomplete documents"))

		_, err := queue.FetchPending(ctx, submitted.ID)
		var nfErr *NotFoundError
		require.ErrorAs(t, err, &nfErr)
	})
}

func TestQueueListPending(t *testing.T) {
	db := newTestDB(t)
	queue := NewQueue(db)
	ctx := context.Background()

	for i, uid := range []string{"123456789012", "223456789012", "323456789012"} {
		_, err := queue.Submit(ctx, validRegistration(fmt.Sprintf("user%d", i), uid))
		require.NoError(t, err)
	}

	pending, err := queue.ListPending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 3)
	require.Equal(t, "123456789012", pending[0].NationalID)
}
