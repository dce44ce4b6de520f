package models

import (
	"time"
)

// Account status values for a confirmed citizen. Approval creates the row
// as "Inactive"; activation is a separate admin action.
const (
	AccountActive    = "Active"
	AccountInactive  = "Inactive"
	AccountSuspended = "Suspended"
)

// Citizen is a confirmed identity. The national ID is the primary key and is
// never reused; everything except the contact fields is immutable after
// approval creates the row.
type Citizen struct {
	NationalID    string     `json:"national_id" gorm:"primaryKey;size:12"`
	Username      string     `json:"username" gorm:"uniqueIndex;not null"`
	PasswordHash  string     `json:"-" gorm:"not null"`
	Name          string     `json:"name" gorm:"not null"`
	Gender        string     `json:"gender" gorm:"size:1;not null"` // M, F, O
	DateOfBirth   time.Time  `json:"date_of_birth" gorm:"not null"`
	Mobile        string     `json:"mobile" gorm:"not null"`
	Email         string     `json:"email"`
	AccountStatus string     `json:"account_status" gorm:"default:Inactive"` // Active, Inactive, Suspended
	LastLoginAt   *time.Time `json:"last_login_at"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

type Admin struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	Name         string    `json:"name" gorm:"not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token   string   `json:"token"`
	Role    string   `json:"role"` // citizen, admin
	Citizen *Citizen `json:"citizen,omitempty"`
	Admin   *Admin   `json:"admin,omitempty"`
}

type ContactUpdateRequest struct {
	Mobile string `json:"mobile" validate:"required,len=10,numeric"`
	Email  string `json:"email" validate:"omitempty,email"`
}

type AccountStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Active Inactive Suspended"`
}
