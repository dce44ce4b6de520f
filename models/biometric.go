package models

import (
	"time"
)

// Biometric holds a citizen's photo as an opaque blob plus a format tag.
// The registry never interprets the pixel data.
type Biometric struct {
	NationalID string    `json:"national_id" gorm:"primaryKey;size:12"`
	Photo      []byte    `json:"-"`
	PhotoType  string    `json:"photo_type"` // jpeg, png
	HasPhoto   bool      `json:"has_photo" gorm:"default:false"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type PhotoUploadRequest struct {
	Photo     string `json:"photo" validate:"required,base64"`
	PhotoType string `json:"photo_type" validate:"required,oneof=jpeg png"`
}
