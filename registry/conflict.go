package registry

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"civilregistry-go/models"
)

// ConflictResult is the outcome of checking a pending request against the
// confirmed identity table.
type ConflictResult struct {
	Conflict     bool   `json:"conflict"`
	Reason       string `json:"reason,omitempty"`
	ExistingName string `json:"existing_name,omitempty"`
}

// CheckConflict looks the request's national ID up among confirmed citizens.
// It takes the db handle of the caller so the workflow can run it inside the
// decision transaction; re-checking at decision time is what defends against
// identities confirmed after submission.
func CheckConflict(tx *gorm.DB, registration *models.PendingRegistration) (ConflictResult, error) {
	var existing models.Citizen
	err := tx.Where("national_id = ?", registration.NationalID).First(&existing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ConflictResult{}, nil
		}
		return ConflictResult{}, storeErr("conflict check", err)
	}

	return ConflictResult{
		Conflict:     true,
		Reason:       fmt.Sprintf("national ID %s already exists in the system (Name: %s)", registration.NationalID, existing.Name),
		ExistingName: existing.Name,
	}, nil
}
