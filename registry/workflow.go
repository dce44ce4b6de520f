package registry

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"civilregistry-go/models"
)

// Workflow drives a registration request from Pending to a terminal status.
// Every decision path runs as one store transaction: the status read, the
// conflict check, and the status write are serialized so two concurrent
// decisions on the same request cannot both succeed.
type Workflow struct {
	db *gorm.DB
}

func NewWorkflow(db *gorm.DB) *Workflow {
	return &Workflow{db: db}
}

const (
	OutcomeAutoRejected     = "auto_rejected"
	OutcomeAwaitingDecision = "awaiting_decision"
)

type DecisionOutcome struct {
	Status       string                      `json:"status"` // auto_rejected, awaiting_decision
	Reason       string                      `json:"reason,omitempty"`
	Registration *models.PendingRegistration `json:"registration"`
}

// Decide inspects a pending request. On a national-ID conflict the request is
// rejected on the spot, attributed to the system actor, and the admin never
// sees a decision screen. Otherwise the request is surfaced for an explicit
// Approve or Reject call.
func (w *Workflow) Decide(ctx context.Context, requestID uint, adminUsername string) (*DecisionOutcome, error) {
	tx := w.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, storeErr("begin decision", tx.Error)
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	registration, err := w.loadForDecision(tx, requestID)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	result, err := CheckConflict(tx, registration)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if !result.Conflict {
		tx.Rollback() // read-only path, nothing to commit
		return &DecisionOutcome{Status: OutcomeAwaitingDecision, Registration: registration}, nil
	}

	if err := w.markRejected(tx, registration, models.SystemActor, result.Reason); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := writeAudit(tx, models.SystemActor, "REJECT_REGISTRATION", "registration", refID(requestID), models.RegistrationRejected, result.Reason); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, storeErr("commit auto-rejection", err)
	}

	return &DecisionOutcome{Status: OutcomeAutoRejected, Reason: result.Reason, Registration: registration}, nil
}

// Approve re-checks the conflict inside the transaction, creates the citizen
// from the request's demographic fields, and marks the request Approved. The
// new account starts Inactive; activation is a separate admin action.
func (w *Workflow) Approve(ctx context.Context, requestID uint, adminUsername string) (*models.Citizen, error) {
	tx := w.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, storeErr("begin approval", tx.Error)
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	registration, err := w.loadForDecision(tx, requestID)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	// A conflicting identity may have been confirmed between Decide and
	// Approve; the re-check closes that race.
	result, err := CheckConflict(tx, registration)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if result.Conflict {
		tx.Rollback()
		return nil, &InvalidStateError{Resource: "registration", Ref: refID(requestID), State: "in conflict: " + result.Reason}
	}

	citizen := models.Citizen{
		NationalID:    registration.NationalID,
		Username:      registration.Username,
		PasswordHash:  registration.PasswordHash,
		Name:          registration.Name,
		Gender:        registration.Gender,
		DateOfBirth:   registration.DateOfBirth,
		Mobile:        registration.Mobile,
		Email:         registration.Email,
		AccountStatus: models.AccountInactive,
	}
	if err := tx.Create(&citizen).Error; err != nil {
		tx.Rollback()
		return nil, storeErr("create citizen", err)
	}

	now := time.Now()
	res := tx.Model(&models.PendingRegistration{}).
		Where("id = ? AND status = ?", requestID, models.RegistrationPending).
		Updates(map[string]interface{}{
			"status":     models.RegistrationApproved,
			"decided_by": adminUsername,
			"decided_at": &now,
		})
	if res.Error != nil {
		tx.Rollback()
		return nil, storeErr("mark approved", res.Error)
	}
	if res.RowsAffected == 0 {
		// Another decision won the race after our load.
		tx.Rollback()
		return nil, &InvalidStateError{Resource: "registration", Ref: refID(requestID), State: "already decided"}
	}

	if err := writeAudit(tx, adminUsername, "APPROVE_REGISTRATION", "registration", refID(requestID), models.RegistrationApproved, ""); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, storeErr("commit approval", err)
	}

	return &citizen, nil
}

// Reject marks the request Rejected with the admin's reason. The reason is
// mandatory.
func (w *Workflow) Reject(ctx context.Context, requestID uint, adminUsername, reason string) error {
	if reason == "" {
		return &ValidationError{Field: "reason", Message: "rejection reason is required"}
	}

	tx := w.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return storeErr("begin rejection", tx.Error)
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	registration, err := w.loadForDecision(tx, requestID)
	if err != nil {
		tx.Rollback()
		return err
	}

	if err := w.markRejected(tx, registration, adminUsername, reason); err != nil {
		tx.Rollback()
		return err
	}
	if err := writeAudit(tx, adminUsername, "REJECT_REGISTRATION", "registration", refID(requestID), models.RegistrationRejected, reason); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit().Error; err != nil {
		return storeErr("commit rejection", err)
	}
	return nil
}

func (w *Workflow) loadForDecision(tx *gorm.DB, requestID uint) (*models.PendingRegistration, error) {
	var registration models.PendingRegistration
	if err := tx.First(&registration, requestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "registration", Ref: refID(requestID)}
		}
		return nil, storeErr("load registration", err)
	}
	if registration.Terminal() {
		return nil, &InvalidStateError{Resource: "registration", Ref: refID(requestID), State: "already " + registration.Status}
	}
	return &registration, nil
}

func (w *Workflow) markRejected(tx *gorm.DB, registration *models.PendingRegistration, actor, reason string) error {
	now := time.Now()
	res := tx.Model(&models.PendingRegistration{}).
		Where("id = ? AND status = ?", registration.ID, models.RegistrationPending).
		Updates(map[string]interface{}{
			"status":          models.RegistrationRejected,
			"decision_reason": reason,
			"decided_by":      actor,
			"decided_at":      &now,
		})
	if res.Error != nil {
		return storeErr("mark rejected", res.Error)
	}
	if res.RowsAffected == 0 {
		return &InvalidStateError{Resource: "registration", Ref: refID(registration.ID), State: "already decided"}
	}
	registration.Status = models.RegistrationRejected
	registration.DecisionReason = reason
	registration.DecidedBy = actor
	registration.DecidedAt = &now
	return nil
}

func writeAudit(tx *gorm.DB, actor, action, targetType, targetRef, outcome, reason string) error {
	entry := models.AuditEntry{
		Reference:  uuid.New().String(),
		Actor:      actor,
		Action:     action,
		TargetType: targetType,
		TargetRef:  targetRef,
		Outcome:    outcome,
		Reason:     reason,
	}
	if err := tx.Create(&entry).Error; err != nil {
		return storeErr("write audit entry", err)
	}
	return nil
}
