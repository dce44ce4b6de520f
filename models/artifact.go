package models

import (
	"fmt"
	"time"
)

// Artifact kinds. Each kind has its own natural-key uniqueness domain
// enforced system-wide at insertion time.
const (
	KindTaxID       = "tax_id"
	KindVoterID     = "voter_id"
	KindSIM         = "sim"
	KindBankAccount = "bank_account"
)

const (
	ArtifactActive   = "Active"
	ArtifactInactive = "Inactive"
)

// ServiceArtifact is the shared envelope over every linked service. The
// natural key (PAN number, voter EPIC, SIM number, account number) is unique
// per kind across the whole registry, not per citizen. Kind-specific extra
// fields share the one row; which of them are populated depends on Kind.
type ServiceArtifact struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Kind       string    `json:"kind" gorm:"uniqueIndex:idx_kind_key;not null"`
	NaturalKey string    `json:"natural_key" gorm:"uniqueIndex:idx_kind_key;not null"`
	OwnerID    string    `json:"owner_id" gorm:"size:12;index;not null"`
	Owner      Citizen   `json:"-" gorm:"foreignKey:OwnerID"`
	IssueDate  time.Time `json:"issue_date"`
	Status     string    `json:"status" gorm:"default:Active"` // Active, Inactive

	// Voter ID extras.
	Address          string `json:"address,omitempty"`
	RegistrationType string `json:"registration_type,omitempty"` // City, Village, Rural, Urban, Other

	// SIM extras.
	Provider string `json:"provider,omitempty"`

	// Bank account extras.
	BankName    string `json:"bank_name,omitempty"`
	AccountType string `json:"account_type,omitempty"` // Savings, Current, Other
	IFSC        string `json:"ifsc,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Detail renders the artifact's descriptive fields for report rows, matching
// what the registry's grouped listings show per entry.
func (a *ServiceArtifact) Detail() string {
	switch a.Kind {
	case KindVoterID:
		return fmt.Sprintf("EPIC: %s | Address: %s | Type: %s", a.NaturalKey, a.Address, a.RegistrationType)
	case KindSIM:
		return fmt.Sprintf("SIM: %s | Provider: %s", a.NaturalKey, a.Provider)
	case KindBankAccount:
		return fmt.Sprintf("AccNo: %s | Bank: %s | Type: %s | IFSC: %s", a.NaturalKey, a.BankName, a.AccountType, a.IFSC)
	default:
		return fmt.Sprintf("PAN: %s | Issued: %s", a.NaturalKey, a.IssueDate.Format("2006-01-02"))
	}
}

type ArtifactRequest struct {
	Kind             string `json:"kind" validate:"required,oneof=tax_id voter_id sim bank_account"`
	NaturalKey       string `json:"natural_key" validate:"required"`
	IssueDate        string `json:"issue_date" validate:"omitempty,datetime=2006-01-02"`
	Address          string `json:"address,omitempty"`
	RegistrationType string `json:"registration_type,omitempty"`
	Provider         string `json:"provider,omitempty"`
	BankName         string `json:"bank_name,omitempty"`
	AccountType      string `json:"account_type,omitempty"`
	IFSC             string `json:"ifsc,omitempty"`
}
