package registry

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"civilregistry-go/models"
)

// Biometrics stores citizen photos as opaque blobs with a format tag. The
// registry never inspects the bytes; decoding is the caller's problem.
type Biometrics struct {
	db *gorm.DB
}

func NewBiometrics(db *gorm.DB) *Biometrics {
	return &Biometrics{db: db}
}

func (b *Biometrics) StorePhoto(ctx context.Context, nationalID string, photo []byte, photoType string) error {
	if len(photo) == 0 {
		return &ValidationError{Field: "photo", Message: "photo is required"}
	}
	if photoType != "jpeg" && photoType != "png" {
		return &ValidationError{Field: "photo_type", Message: "photo type must be jpeg or png"}
	}

	var citizen models.Citizen
	if err := b.db.WithContext(ctx).Where("national_id = ?", nationalID).First(&citizen).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Resource: "citizen", Ref: nationalID}
		}
		return storeErr("load citizen", err)
	}

	record := models.Biometric{
		NationalID: nationalID,
		Photo:      photo,
		PhotoType:  photoType,
		HasPhoto:   true,
	}
	if err := b.db.WithContext(ctx).Save(&record).Error; err != nil {
		return storeErr("store photo", err)
	}
	return nil
}

func (b *Biometrics) FetchPhoto(ctx context.Context, nationalID string) (*models.Biometric, error) {
	var record models.Biometric
	err := b.db.WithContext(ctx).Where("national_id = ? AND has_photo = ?", nationalID, true).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "photo", Ref: nationalID}
		}
		return nil, storeErr("fetch photo", err)
	}
	return &record, nil
}
