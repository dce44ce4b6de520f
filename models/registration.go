package models

import (
	"time"
)

// Registration request lifecycle. A request is decided exactly once and is
// never deleted afterwards.
const (
	RegistrationPending  = "Pending"
	RegistrationApproved = "Approved"
	RegistrationRejected = "Rejected"
)

// Actor recorded on decisions made by the conflict check rather than a human.
const SystemActor = "system"

// PendingRegistration is a self-registration request awaiting an admin
// decision. DecisionReason is set iff the request was rejected.
type PendingRegistration struct {
	ID             uint       `json:"request_id" gorm:"primaryKey"`
	Username       string     `json:"username" gorm:"not null"`
	PasswordHash   string     `json:"-" gorm:"not null"`
	NationalID     string     `json:"national_id" gorm:"size:12;index;not null"`
	Name           string     `json:"name" gorm:"not null"`
	Gender         string     `json:"gender" gorm:"size:1;not null"` // M, F, O
	DateOfBirth    time.Time  `json:"date_of_birth" gorm:"not null"`
	Mobile         string     `json:"mobile" gorm:"not null"`
	Email          string     `json:"email"`
	Status         string     `json:"status" gorm:"default:Pending;index"` // Pending, Approved, Rejected
	DecisionReason string     `json:"decision_reason"`
	DecidedBy      string     `json:"decided_by"` // "system" or admin username
	DecidedAt      *time.Time `json:"decided_at"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func (r *PendingRegistration) Terminal() bool {
	return r.Status != RegistrationPending
}

type RegistrationRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	NationalID  string `json:"national_id"`
	Name        string `json:"name"`
	Gender      string `json:"gender"`
	DateOfBirth string `json:"date_of_birth"` // YYYY-MM-DD
	Mobile      string `json:"mobile"`
	Email       string `json:"email,omitempty"`
}

type RejectRequest struct {
	Reason string `json:"reason" validate:"required"`
}
