package registry

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"civilregistry-go/database"
	"civilregistry-go/models"
)

// newTestDB opens a private in-memory database per test. A single connection
// keeps the memory database alive across gorm's pool.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	db, err := database.Initialize(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	t.Cleanup(func() { sqlDB.Close() })
	return db
}

func seedCitizen(t *testing.T, db *gorm.DB, nationalID, name string) *models.Citizen {
	t.Helper()

	citizen := &models.Citizen{
		NationalID:    nationalID,
		Username:      "user" + nationalID,
		PasswordHash:  "digest",
		Name:          name,
		Gender:        "F",
		DateOfBirth:   time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		Mobile:        "9876543210",
		AccountStatus: models.AccountActive,
	}
	require.NoError(t, db.Create(citizen).Error)
	return citizen
}

func validRegistration(username, nationalID string) models.RegistrationRequest {
	return models.RegistrationRequest{
		Username:    username,
		Password:    "secret-pass",
		NationalID:  nationalID,
		Name:        "Alice Kumar",
		Gender:      "F",
		DateOfBirth: "1990-01-01",
		Mobile:      "9876543210",
	}
}

func auditCount(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&models.AuditEntry{}).Count(&n).Error)
	return n
}
