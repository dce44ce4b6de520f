package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"civilregistry-go/models"
)

func TestCasesRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a case linked to its citizens", func(t *testing.T) {
		db := newTestDB(t)
		cases := NewCases(db)
		seedCitizen(t, db, "123456789012", "Alice")
		seedCitizen(t, db, "223456789012", "Bob")

		record, err := cases.Register(ctx, models.CaseRequest{
			CaseNo:      "fir2024001",
			OffenceType: "Fraud",
			NationalIDs: []string{"123456789012", "223456789012"},
		}, "registrar")
		require.NoError(t, err)
		require.Equal(t, "FIR2024001", record.CaseNo)

		fetched, err := cases.Fetch(ctx, "FIR2024001")
		require.NoError(t, err)
		require.Len(t, fetched.Citizens, 2)
	})

	t.Run("re-registering adds missing links and skips existing ones", func(t *testing.T) {
		db := newTestDB(t)
		cases := NewCases(db)
		seedCitizen(t, db, "123456789012", "Alice")
		seedCitizen(t, db, "223456789012", "Bob")

		_, err := cases.Register(ctx, models.CaseRequest{
			CaseNo:      "FIR2024002",
			OffenceType: "Theft",
			NationalIDs: []string{"123456789012"},
		}, "registrar")
		require.NoError(t, err)

		_, err = cases.Register(ctx, models.CaseRequest{
			CaseNo:      "FIR2024002",
			OffenceType: "Theft",
			NationalIDs: []string{"123456789012", "223456789012"},
		}, "registrar")
		require.NoError(t, err)

		fetched, err := cases.Fetch(ctx, "FIR2024002")
		require.NoError(t, err)
		require.Len(t, fetched.Citizens, 2)
	})

	t.Run("unknown citizen rolls the whole case back", func(t *testing.T) {
		db := newTestDB(t)
		cases := NewCases(db)
		seedCitizen(t, db, "123456789012", "Alice")

		_, err := cases.Register(ctx, models.CaseRequest{
			CaseNo:      "FIR2024003",
			OffenceType: "Theft",
			NationalIDs: []string{"123456789012", "999956789012"},
		}, "registrar")
		var nfErr *NotFoundError
		require.ErrorAs(t, err, &nfErr)

		_, err = cases.Fetch(ctx, "FIR2024003")
		require.ErrorAs(t, err, &nfErr)
	})
}

func TestCasesForCitizen(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	cases := NewCases(db)
	seedCitizen(t, db, "123456789012", "Alice")
	seedCitizen(t, db, "223456789012", "Bob")

	for _, caseNo := range []string{"FIR2024001", "FIR2024002"} {
		_, err := cases.Register(ctx, models.CaseRequest{
			CaseNo:      caseNo,
			OffenceType: "Theft",
			NationalIDs: []string{"123456789012"},
		}, "registrar")
		require.NoError(t, err)
	}

	records, err := cases.ForCitizen(ctx, "123456789012")
	require.NoError(t, err)
	require.Len(t, records, 2)

	records, err = cases.ForCitizen(ctx, "223456789012")
	require.NoError(t, err)
	require.Empty(t, records)
}
