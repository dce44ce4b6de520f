package registry

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"civilregistry-go/models"
	"civilregistry-go/utils"
)

// Identities is the authoritative table of confirmed citizens. Rows are
// created only by the approval workflow; the contact fields and the account
// status are the only things that change afterwards.
type Identities struct {
	db *gorm.DB
}

func NewIdentities(db *gorm.DB) *Identities {
	return &Identities{db: db}
}

func (s *Identities) Fetch(ctx context.Context, nationalID string) (*models.Citizen, error) {
	var citizen models.Citizen
	err := s.db.WithContext(ctx).Where("national_id = ?", nationalID).First(&citizen).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "citizen", Ref: nationalID}
		}
		return nil, storeErr("fetch citizen", err)
	}
	return &citizen, nil
}

// UpdateContact is the only permitted mutation of a citizen's demographic
// record.
func (s *Identities) UpdateContact(ctx context.Context, nationalID, mobile, email string) error {
	if !utils.ValidateMobile(mobile) {
		return &ValidationError{Field: "mobile", Message: "mobile must be 10 digits"}
	}
	if email != "" && !utils.ValidateEmail(email) {
		return &ValidationError{Field: "email", Message: "invalid email format"}
	}

	res := s.db.WithContext(ctx).Model(&models.Citizen{}).
		Where("national_id = ?", nationalID).
		Updates(map[string]interface{}{"mobile": mobile, "email": email})
	if res.Error != nil {
		return storeErr("update contact", res.Error)
	}
	if res.RowsAffected == 0 {
		return &NotFoundError{Resource: "citizen", Ref: nationalID}
	}
	return nil
}

// SetAccountStatus flips an account between Active, Inactive, and Suspended,
// with an audit entry per change. Activation after approval goes through
// here.
func (s *Identities) SetAccountStatus(ctx context.Context, nationalID, status, adminUsername string) error {
	if status != models.AccountActive && status != models.AccountInactive && status != models.AccountSuspended {
		return &ValidationError{Field: "status", Message: "status must be Active, Inactive, or Suspended"}
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return storeErr("begin status change", tx.Error)
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	res := tx.Model(&models.Citizen{}).
		Where("national_id = ?", nationalID).
		Update("account_status", status)
	if res.Error != nil {
		tx.Rollback()
		return storeErr("set account status", res.Error)
	}
	if res.RowsAffected == 0 {
		tx.Rollback()
		return &NotFoundError{Resource: "citizen", Ref: nationalID}
	}

	if err := writeAudit(tx, adminUsername, "SET_ACCOUNT_STATUS", "citizen", nationalID, status, ""); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit().Error; err != nil {
		return storeErr("commit status change", err)
	}
	return nil
}

func (s *Identities) RecordLogin(ctx context.Context, nationalID string) error {
	now := time.Now()
	err := s.db.WithContext(ctx).Model(&models.Citizen{}).
		Where("national_id = ?", nationalID).
		Update("last_login_at", &now).Error
	if err != nil {
		return storeErr("record login", err)
	}
	return nil
}
