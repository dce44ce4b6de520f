package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBiometrics(t *testing.T) {
	ctx := context.Background()

	t.Run("stores and fetches the blob untouched", func(t *testing.T) {
		db := newTestDB(t)
		biometrics := NewBiometrics(db)
		seedCitizen(t, db, "123456789012", "Alice")

		blob := []byte{0xff, 0xd8, 0xff, 0xe0, 0x01, 0x02}
		require.NoError(t, biometrics.StorePhoto(ctx, "123456789012", blob, "jpeg"))

		record, err := biometrics.FetchPhoto(ctx, "123456789012")
		require.NoError(t, err)
		require.Equal(t, blob, record.Photo)
		require.Equal(t, "jpeg", record.PhotoType)
		require.True(t, record.HasPhoto)
	})

	t.Run("overwrite replaces the previous photo", func(t *testing.T) {
		db := newTestDB(t)
		biometrics := NewBiometrics(db)
		seedCitizen(t, db, "123456789012", "Alice")

		require.NoError(t, biometrics.StorePhoto(ctx, "123456789012", []byte{1}, "jpeg"))
		require.NoError(t, biometrics.StorePhoto(ctx, "123456789012", []byte{2, 3}, "png"))

		record, err := biometrics.FetchPhoto(ctx, "123456789012")
		require.NoError(t, err)
		require.Equal(t, []byte{2, 3}, record.Photo)
		require.Equal(t, "png", record.PhotoType)
	})

	t.Run("rejects bad input", func(t *testing.T) {
		db := newTestDB(t)
		biometrics := NewBiometrics(db)
		seedCitizen(t, db, "123456789012", "Alice")

		var vErr *ValidationError
		require.ErrorAs(t, biometrics.StorePhoto(ctx, "123456789012", nil, "jpeg"), &vErr)
		require.ErrorAs(t, biometrics.StorePhoto(ctx, "123456789012", []byte{1}, "gif"), &vErr)

		var nfErr *NotFoundError
		require.ErrorAs(t, biometrics.StorePhoto(ctx, "999956789012", []byte{1}, "jpeg"), &nfErr)
		_, err := biometrics.FetchPhoto(ctx, "223456789012")
		require.ErrorAs(t, err, &nfErr)
	})
}
