package models

import (
	"time"
)

// AuditEntry is an append-only record of a state-changing action. Rows are
// never updated or deleted.
type AuditEntry struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Reference  string    `json:"reference" gorm:"not null"` // correlation id
	Actor      string    `json:"actor" gorm:"not null"`     // "system" or admin username
	Action     string    `json:"action" gorm:"not null"`
	TargetType string    `json:"target_type" gorm:"not null"`
	TargetRef  string    `json:"target_ref" gorm:"not null"`
	Outcome    string    `json:"outcome" gorm:"not null"`
	Reason     string    `json:"reason"`
	CreatedAt  time.Time `json:"created_at"`
}
