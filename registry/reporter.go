package registry

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"civilregistry-go/models"
)

// Reporter composes read-only views over identities, the service ledger, and
// criminal cases. Every report runs inside one transaction so it reflects a
// single consistent snapshot even under concurrent writers.
type Reporter struct {
	db *gorm.DB
}

func NewReporter(db *gorm.DB) *Reporter {
	return &Reporter{db: db}
}

type KindCount struct {
	Total  int64 `json:"total"`
	Active int64 `json:"active"`
}

type ProfileSummary struct {
	Citizen       models.Citizen       `json:"citizen"`
	Artifacts     map[string]KindCount `json:"artifacts"`
	CriminalCases int64                `json:"criminal_cases"`
}

// Summarize joins the citizen row with per-kind artifact counts and the
// criminal-case count.
func (r *Reporter) Summarize(ctx context.Context, nationalID string) (*ProfileSummary, error) {
	var summary *ProfileSummary

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var citizen models.Citizen
		if err := tx.Where("national_id = ?", nationalID).First(&citizen).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Resource: "citizen", Ref: nationalID}
			}
			return storeErr("load citizen", err)
		}

		var rows []struct {
			Kind   string
			Status string
			N      int64
		}
		err := tx.Model(&models.ServiceArtifact{}).
			Select("kind, status, COUNT(*) as n").
			Where("owner_id = ?", nationalID).
			Group("kind, status").
			Scan(&rows).Error
		if err != nil {
			return storeErr("count artifacts", err)
		}

		counts := make(map[string]KindCount)
		for _, kind := range []string{models.KindTaxID, models.KindVoterID, models.KindSIM, models.KindBankAccount} {
			counts[kind] = KindCount{}
		}
		for _, row := range rows {
			c := counts[row.Kind]
			c.Total += row.N
			if row.Status == models.ArtifactActive {
				c.Active += row.N
			}
			counts[row.Kind] = c
		}

		var caseCount int64
		if err := tx.Table("case_citizens").Where("national_id = ?", nationalID).Count(&caseCount).Error; err != nil {
			return storeErr("count criminal cases", err)
		}

		summary = &ProfileSummary{Citizen: citizen, Artifacts: counts, CriminalCases: caseCount}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}

type ArtifactGroup struct {
	OwnerID string `json:"owner_id"`
	Name    string `json:"name"`
	Mobile  string `json:"mobile"`
	Count   int64  `json:"count"`
	Detail  string `json:"detail"`
}

// CitizensWithMinimumArtifacts groups the ledger by owner for one kind,
// keeps owners at or above the threshold, and orders by count descending
// then name. Detail concatenates each artifact's descriptive fields in
// insertion order.
func (r *Reporter) CitizensWithMinimumArtifacts(ctx context.Context, kind string, minCount int) ([]ArtifactGroup, error) {
	if _, ok := artifactRules[kind]; !ok {
		return nil, &ValidationError{Field: "kind", Message: "kind must be tax_id, voter_id, sim, or bank_account"}
	}
	if minCount < 1 {
		return nil, &ValidationError{Field: "min", Message: "minimum count must be at least 1"}
	}

	var groups []ArtifactGroup
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rows []struct {
			OwnerID string
			Name    string
			Mobile  string
			N       int64
		}
		err := tx.Model(&models.ServiceArtifact{}).
			Select("service_artifacts.owner_id, citizens.name, citizens.mobile, COUNT(*) as n").
			Joins("JOIN citizens ON citizens.national_id = service_artifacts.owner_id").
			Where("service_artifacts.kind = ?", kind).
			Group("service_artifacts.owner_id, citizens.name, citizens.mobile").
			Having("COUNT(*) >= ?", minCount).
			Order("n DESC, citizens.name ASC").
			Scan(&rows).Error
		if err != nil {
			return storeErr("group artifacts", err)
		}

		for _, row := range rows {
			var artifacts []models.ServiceArtifact
			err := tx.Where("owner_id = ? AND kind = ?", row.OwnerID, kind).
				Order("id ASC").
				Find(&artifacts).Error
			if err != nil {
				return storeErr("load group artifacts", err)
			}

			details := make([]string, 0, len(artifacts))
			for i := range artifacts {
				details = append(details, artifacts[i].Detail())
			}
			groups = append(groups, ArtifactGroup{
				OwnerID: row.OwnerID,
				Name:    row.Name,
				Mobile:  row.Mobile,
				Count:   row.N,
				Detail:  strings.Join(details, " || "),
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return groups, nil
}

type Statistics struct {
	TotalCitizens        int64 `json:"total_citizens"`
	ActiveAccounts       int64 `json:"active_accounts"`
	PendingRegistrations int64 `json:"pending_registrations"`
	TotalTaxIDs          int64 `json:"total_tax_ids"`
	TotalVoterIDs        int64 `json:"total_voter_ids"`
	TotalSIMCards        int64 `json:"total_sim_cards"`
	TotalBankAccounts    int64 `json:"total_bank_accounts"`
	TotalCriminalCases   int64 `json:"total_criminal_cases"`
}

func (r *Reporter) Statistics(ctx context.Context) (*Statistics, error) {
	stats := &Statistics{}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Citizen{}).Count(&stats.TotalCitizens).Error; err != nil {
			return storeErr("count citizens", err)
		}
		if err := tx.Model(&models.Citizen{}).Where("account_status = ?", models.AccountActive).Count(&stats.ActiveAccounts).Error; err != nil {
			return storeErr("count active accounts", err)
		}
		if err := tx.Model(&models.PendingRegistration{}).Where("status = ?", models.RegistrationPending).Count(&stats.PendingRegistrations).Error; err != nil {
			return storeErr("count pending registrations", err)
		}

		kinds := map[string]*int64{
			models.KindTaxID:       &stats.TotalTaxIDs,
			models.KindVoterID:     &stats.TotalVoterIDs,
			models.KindSIM:         &stats.TotalSIMCards,
			models.KindBankAccount: &stats.TotalBankAccounts,
		}
		for kind, target := range kinds {
			if err := tx.Model(&models.ServiceArtifact{}).Where("kind = ?", kind).Count(target).Error; err != nil {
				return storeErr("count artifacts", err)
			}
		}

		if err := tx.Model(&models.CriminalCase{}).Count(&stats.TotalCriminalCases).Error; err != nil {
			return storeErr("count criminal cases", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return stats, nil
}
