package registry

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"civilregistry-go/models"
)

func TestReporterSummarize(t *testing.T) {
	ctx := context.Background()

	t.Run("counts artifacts per kind and criminal cases", func(t *testing.T) {
		db := newTestDB(t)
		ledger, reporter, cases := NewLedger(db), NewReporter(db), NewCases(db)
		seedCitizen(t, db, "123456789012", "Alice")

		for i := 1; i <= 3; i++ {
			_, err := ledger.Register(ctx, "123456789012", voterRequest(fmt.Sprintf("VOTER%03d", i)))
			require.NoError(t, err)
		}
		_, err := ledger.Register(ctx, "123456789012", panRequest("ABCDE1234F"))
		require.NoError(t, err)

		_, err = cases.Register(ctx, models.CaseRequest{
			CaseNo:      "FIR2024001",
			OffenceType: "Theft",
			NationalIDs: []string{"123456789012"},
		}, "registrar")
		require.NoError(t, err)

		summary, err := reporter.Summarize(ctx, "123456789012")
		require.NoError(t, err)
		require.Equal(t, "Alice", summary.Citizen.Name)
		require.EqualValues(t, 3, summary.Artifacts[models.KindVoterID].Total)
		require.EqualValues(t, 1, summary.Artifacts[models.KindTaxID].Total)
		require.EqualValues(t, 0, summary.Artifacts[models.KindSIM].Total)
		require.EqualValues(t, 0, summary.Artifacts[models.KindBankAccount].Total)
		require.EqualValues(t, 1, summary.CriminalCases)
	})

	t.Run("inactive artifacts count as total but not active", func(t *testing.T) {
		db := newTestDB(t)
		ledger, reporter := NewLedger(db), NewReporter(db)
		seedCitizen(t, db, "123456789012", "Alice")

		for i := 1; i <= 2; i++ {
			_, err := ledger.Register(ctx, "123456789012", voterRequest(fmt.Sprintf("VOTER%03d", i)))
			require.NoError(t, err)
		}
		require.NoError(t, ledger.SetStatus(ctx, "123456789012", models.KindVoterID, "VOTER001", models.ArtifactInactive))

		summary, err := reporter.Summarize(ctx, "123456789012")
		require.NoError(t, err)
		require.EqualValues(t, 2, summary.Artifacts[models.KindVoterID].Total)
		require.EqualValues(t, 1, summary.Artifacts[models.KindVoterID].Active)
	})

	t.Run("unknown citizen is not found", func(t *testing.T) {
		db := newTestDB(t)
		reporter := NewReporter(db)

		_, err := reporter.Summarize(ctx, "999956789012")
		var nfErr *NotFoundError
		require.ErrorAs(t, err, &nfErr)
	})
}

func TestCitizensWithMinimumArtifacts(t *testing.T) {
	ctx := context.Background()

	t.Run("filters by threshold", func(t *testing.T) {
		db := newTestDB(t)
		ledger, reporter := NewLedger(db), NewReporter(db)
		seedCitizen(t, db, "123456789012", "Xavier")
		seedCitizen(t, db, "223456789012", "Yvonne")

		for i := 1; i <= 3; i++ {
			_, err := ledger.Register(ctx, "123456789012", voterRequest(fmt.Sprintf("VOTER%03d", i)))
			require.NoError(t, err)
		}
		_, err := ledger.Register(ctx, "223456789012", voterRequest("VOTER900"))
		require.NoError(t, err)

		groups, err := reporter.CitizensWithMinimumArtifacts(ctx, models.KindVoterID, 2)
		require.NoError(t, err)
		require.Len(t, groups, 1)
		require.Equal(t, "123456789012", groups[0].OwnerID)
		require.EqualValues(t, 3, groups[0].Count)
	})

	t.Run("orders by count descending then name", func(t *testing.T) {
		db := newTestDB(t)
		ledger, reporter := NewLedger(db), NewReporter(db)
		seedCitizen(t, db, "123456789012", "Zara")
		seedCitizen(t, db, "223456789012", "Anil")
		seedCitizen(t, db, "323456789012", "Meera")

		// Zara 2, Anil 2, Meera 3.
		for i, owner := range []string{"123456789012", "123456789012", "223456789012", "223456789012", "323456789012", "323456789012", "323456789012"} {
			_, err := ledger.Register(ctx, owner, voterRequest(fmt.Sprintf("VOTER%03d", i)))
			require.NoError(t, err)
		}

		groups, err := reporter.CitizensWithMinimumArtifacts(ctx, models.KindVoterID, 1)
		require.NoError(t, err)
		require.Len(t, groups, 3)
		require.Equal(t, "Meera", groups[0].Name)
		require.Equal(t, "Anil", groups[1].Name)
		require.Equal(t, "Zara", groups[2].Name)
	})

	t.Run("detail concatenates artifacts in insertion order", func(t *testing.T) {
		db := newTestDB(t)
		ledger, reporter := NewLedger(db), NewReporter(db)
		seedCitizen(t, db, "123456789012", "Alice")

		_, err := ledger.Register(ctx, "123456789012", voterRequest("VOTER001"))
		require.NoError(t, err)
		_, err = ledger.Register(ctx, "123456789012", voterRequest("VOTER002"))
		require.NoError(t, err)

		groups, err := reporter.CitizensWithMinimumArtifacts(ctx, models.KindVoterID, 2)
		require.NoError(t, err)
		require.Len(t, groups, 1)
		require.Contains(t, groups[0].Detail, "EPIC: VOTER001")
		require.Contains(t, groups[0].Detail, "EPIC: VOTER002")
		require.Less(t,
			strings.Index(groups[0].Detail, "VOTER001"),
			strings.Index(groups[0].Detail, "VOTER002"))
		require.Contains(t, groups[0].Detail, " || ")
	})

	t.Run("rejects bad parameters", func(t *testing.T) {
		db := newTestDB(t)
		reporter := NewReporter(db)

		var vErr *ValidationError
		_, err := reporter.CitizensWithMinimumArtifacts(ctx, "passport", 1)
		require.ErrorAs(t, err, &vErr)
		_, err = reporter.CitizensWithMinimumArtifacts(ctx, models.KindVoterID, 0)
		require.ErrorAs(t, err, &vErr)
	})
}

func TestReporterStatistics(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	queue, ledger, reporter := NewQueue(db), NewLedger(db), NewReporter(db)
	seedCitizen(t, db, "123456789012", "Alice")
	seedCitizen(t, db, "223456789012", "Bob")

	_, err := queue.Submit(ctx, validRegistration("carol", "323456789012"))
	require.NoError(t, err)
	_, err = ledger.Register(ctx, "123456789012", panRequest("ABCDE1234F"))
	require.NoError(t, err)
	_, err = ledger.Register(ctx, "223456789012", voterRequest("VOTER001"))
	require.NoError(t, err)

	stats, err := reporter.Statistics(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 2, stats.TotalCitizens)
	require.EqualValues(t, 2, stats.ActiveAccounts)
	require.EqualValues(t, 1, stats.PendingRegistrations)
	require.EqualValues(t, 1, stats.TotalTaxIDs)
	require.EqualValues(t, 1, stats.TotalVoterIDs)
	require.EqualValues(t, 0, stats.TotalSIMCards)
}
