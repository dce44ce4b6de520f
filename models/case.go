package models

import (
	"time"
)

// CriminalCase names one or more citizens; a citizen may appear in any
// number of cases.
type CriminalCase struct {
	CaseNo      string    `json:"case_no" gorm:"primaryKey"`
	OffenceType string    `json:"offence_type" gorm:"not null"`
	Citizens    []Citizen `json:"citizens,omitempty" gorm:"many2many:case_citizens;foreignKey:CaseNo;joinForeignKey:CaseNo;References:NationalID;joinReferences:NationalID"`
	CreatedAt   time.Time `json:"created_at"`
}

type CaseRequest struct {
	CaseNo      string   `json:"case_no" validate:"required"`
	OffenceType string   `json:"offence_type" validate:"required"`
	NationalIDs []string `json:"national_ids" validate:"required,min=1,dive,len=12,numeric"`
}
