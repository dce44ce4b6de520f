package registry

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"civilregistry-go/models"
)

// Cases manages criminal records and their many-to-many links to citizens.
type Cases struct {
	db *gorm.DB
}

func NewCases(db *gorm.DB) *Cases {
	return &Cases{db: db}
}

// Register creates the case if it is new and links the named citizens to it.
// Registering an existing case number adds the missing links; links that
// already exist are skipped, every named citizen must be confirmed.
func (c *Cases) Register(ctx context.Context, req models.CaseRequest, adminUsername string) (*models.CriminalCase, error) {
	caseNo := strings.ToUpper(strings.TrimSpace(req.CaseNo))
	if caseNo == "" {
		return nil, &ValidationError{Field: "case_no", Message: "case number is required"}
	}
	if strings.TrimSpace(req.OffenceType) == "" {
		return nil, &ValidationError{Field: "offence_type", Message: "offence type is required"}
	}
	if len(req.NationalIDs) == 0 {
		return nil, &ValidationError{Field: "national_ids", Message: "at least one citizen must be named"}
	}

	var record models.CriminalCase
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("case_no = ?", caseNo).First(&record).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			record = models.CriminalCase{CaseNo: caseNo, OffenceType: strings.TrimSpace(req.OffenceType)}
			if err := tx.Create(&record).Error; err != nil {
				return storeErr("create case", err)
			}
		case err != nil:
			return storeErr("load case", err)
		}

		for _, nationalID := range req.NationalIDs {
			var citizen models.Citizen
			if err := tx.Where("national_id = ?", nationalID).First(&citizen).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return &NotFoundError{Resource: "citizen", Ref: nationalID}
				}
				return storeErr("load citizen", err)
			}

			var linked int64
			err := tx.Table("case_citizens").
				Where("case_no = ? AND national_id = ?", caseNo, nationalID).
				Count(&linked).Error
			if err != nil {
				return storeErr("check case link", err)
			}
			if linked > 0 {
				continue
			}
			if err := tx.Exec("INSERT INTO case_citizens (case_no, national_id) VALUES (?, ?)", caseNo, nationalID).Error; err != nil {
				return storeErr("link citizen to case", err)
			}
		}

		return writeAudit(tx, adminUsername, "REGISTER_CASE", "criminal_case", caseNo, "Registered", "")
	})
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// Fetch returns a case with the citizens it names.
func (c *Cases) Fetch(ctx context.Context, caseNo string) (*models.CriminalCase, error) {
	var record models.CriminalCase
	err := c.db.WithContext(ctx).
		Preload("Citizens").
		Where("case_no = ?", strings.ToUpper(strings.TrimSpace(caseNo))).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "criminal case", Ref: caseNo}
		}
		return nil, storeErr("fetch case", err)
	}
	return &record, nil
}

// ForCitizen lists the cases naming one citizen.
func (c *Cases) ForCitizen(ctx context.Context, nationalID string) ([]models.CriminalCase, error) {
	var records []models.CriminalCase
	err := c.db.WithContext(ctx).
		Joins("JOIN case_citizens ON case_citizens.case_no = criminal_cases.case_no").
		Where("case_citizens.national_id = ?", nationalID).
		Order("criminal_cases.case_no ASC").
		Find(&records).Error
	if err != nil {
		return nil, storeErr("list cases for citizen", err)
	}
	return records, nil
}
