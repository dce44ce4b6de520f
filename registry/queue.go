package registry

import (
	"context"
	"errors"
	"strconv"

	"gorm.io/gorm"

	"civilregistry-go/models"
	"civilregistry-go/utils"
)

// Queue holds self-registration requests until an admin decides them.
// Submission performs no uniqueness check: a conflicting identity may be
// confirmed after submission, so the authoritative check happens inside the
// decision transaction.
type Queue struct {
	db *gorm.DB
}

func NewQueue(db *gorm.DB) *Queue {
	return &Queue{db: db}
}

func (q *Queue) Submit(ctx context.Context, req models.RegistrationRequest) (*models.PendingRegistration, error) {
	req.Username = utils.SanitizeString(req.Username)
	req.NationalID = utils.SanitizeString(req.NationalID)
	req.Name = utils.SanitizeString(req.Name)
	req.Mobile = utils.SanitizeString(req.Mobile)
	req.Email = utils.SanitizeString(req.Email)

	if req.Username == "" {
		return nil, &ValidationError{Field: "username", Message: "username is required"}
	}
	if req.Password == "" {
		return nil, &ValidationError{Field: "password", Message: "password is required"}
	}
	if req.Name == "" {
		return nil, &ValidationError{Field: "name", Message: "name is required"}
	}
	if !utils.ValidateNationalID(req.NationalID) {
		return nil, &ValidationError{Field: "national_id", Message: "national ID must be 12 digits"}
	}
	if !utils.ValidateMobile(req.Mobile) {
		return nil, &ValidationError{Field: "mobile", Message: "mobile must be 10 digits"}
	}
	if req.Gender != "M" && req.Gender != "F" && req.Gender != "O" {
		return nil, &ValidationError{Field: "gender", Message: "gender must be M, F, or O"}
	}
	dob, err := utils.ParseDate(req.DateOfBirth)
	if err != nil {
		return nil, &ValidationError{Field: "date_of_birth", Message: "date must be in YYYY-MM-DD format"}
	}
	if req.Email != "" && !utils.ValidateEmail(req.Email) {
		return nil, &ValidationError{Field: "email", Message: "invalid email format"}
	}

	registration := models.PendingRegistration{
		Username:     req.Username,
		PasswordHash: utils.HashCredential(req.Password),
		NationalID:   req.NationalID,
		Name:         req.Name,
		Gender:       req.Gender,
		DateOfBirth:  dob,
		Mobile:       req.Mobile,
		Email:        req.Email,
		Status:       models.RegistrationPending,
	}

	if err := q.db.WithContext(ctx).Create(&registration).Error; err != nil {
		return nil, storeErr("submit registration", err)
	}

	return &registration, nil
}

func (q *Queue) FetchPending(ctx context.Context, requestID uint) (*models.PendingRegistration, error) {
	var registration models.PendingRegistration
	err := q.db.WithContext(ctx).
		Where("id = ? AND status = ?", requestID, models.RegistrationPending).
		First(&registration).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "pending registration", Ref: refID(requestID)}
		}
		return nil, storeErr("fetch pending registration", err)
	}
	return &registration, nil
}

func (q *Queue) ListPending(ctx context.Context) ([]models.PendingRegistration, error) {
	var registrations []models.PendingRegistration
	err := q.db.WithContext(ctx).
		Where("status = ?", models.RegistrationPending).
		Order("created_at ASC").
		Find(&registrations).Error
	if err != nil {
		return nil, storeErr("list pending registrations", err)
	}
	return registrations, nil
}

func refID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
