package registry

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"civilregistry-go/models"
	"civilregistry-go/utils"
)

// Ledger owns every service artifact linked to a citizen. Natural keys are
// unique per kind across the whole registry; the check-then-insert runs in
// one transaction and the (kind, natural_key) unique index backs it up, so a
// racing duplicate fails fast instead of producing a second row.
type Ledger struct {
	db *gorm.DB
}

func NewLedger(db *gorm.DB) *Ledger {
	return &Ledger{db: db}
}

type artifactRule struct {
	validKey func(string) bool
	keyHint  string
	extras   func(*models.ArtifactRequest) *ValidationError
}

var voterTypes = map[string]bool{"City": true, "Village": true, "Rural": true, "Urban": true, "Other": true}
var accountTypes = map[string]bool{"Savings": true, "Current": true, "Other": true}

// One rule per kind instead of per-kind registration paths; the envelope is
// shared and only validation differs.
var artifactRules = map[string]artifactRule{
	models.KindTaxID: {
		validKey: utils.ValidatePAN,
		keyHint:  "PAN must be 5 letters + 4 digits + 1 letter, e.g. ABCDE1234F",
		extras:   func(*models.ArtifactRequest) *ValidationError { return nil },
	},
	models.KindVoterID: {
		validKey: utils.ValidateEPIC,
		keyHint:  "EPIC must be 8 characters starting with VOTER, e.g. VOTER001",
		extras: func(req *models.ArtifactRequest) *ValidationError {
			if strings.TrimSpace(req.Address) == "" {
				return &ValidationError{Field: "address", Message: "address is required"}
			}
			if !voterTypes[req.RegistrationType] {
				return &ValidationError{Field: "registration_type", Message: "type must be City, Village, Rural, Urban, or Other"}
			}
			return nil
		},
	},
	models.KindSIM: {
		validKey: utils.ValidateSIMNumber,
		keyHint:  "SIM number must be 10 digits",
		extras: func(req *models.ArtifactRequest) *ValidationError {
			if strings.TrimSpace(req.Provider) == "" {
				return &ValidationError{Field: "provider", Message: "provider is required"}
			}
			return nil
		},
	},
	models.KindBankAccount: {
		validKey: utils.ValidateAccountNumber,
		keyHint:  "account number must be 6-18 digits",
		extras: func(req *models.ArtifactRequest) *ValidationError {
			if strings.TrimSpace(req.BankName) == "" {
				return &ValidationError{Field: "bank_name", Message: "bank name is required"}
			}
			if !accountTypes[req.AccountType] {
				return &ValidationError{Field: "account_type", Message: "account type must be Savings, Current, or Other"}
			}
			if !utils.ValidateIFSC(req.IFSC) {
				return &ValidationError{Field: "ifsc", Message: "IFSC must be 4 letters + zero + 6 alphanumerics, e.g. SBIN0001234"}
			}
			return nil
		},
	},
}

func (l *Ledger) Register(ctx context.Context, ownerID string, req models.ArtifactRequest) (*models.ServiceArtifact, error) {
	rule, ok := artifactRules[req.Kind]
	if !ok {
		return nil, &ValidationError{Field: "kind", Message: "kind must be tax_id, voter_id, sim, or bank_account"}
	}

	key := strings.ToUpper(utils.SanitizeString(req.NaturalKey))
	if !rule.validKey(key) {
		return nil, &ValidationError{Field: "natural_key", Message: rule.keyHint}
	}
	req.IFSC = strings.ToUpper(utils.SanitizeString(req.IFSC))
	if verr := rule.extras(&req); verr != nil {
		return nil, verr
	}

	issueDate := time.Now()
	if req.IssueDate != "" {
		parsed, err := utils.ParseDate(req.IssueDate)
		if err != nil {
			return nil, &ValidationError{Field: "issue_date", Message: "date must be in YYYY-MM-DD format"}
		}
		issueDate = parsed
	}

	tx := l.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, storeErr("begin artifact registration", tx.Error)
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	var owner models.Citizen
	if err := tx.Where("national_id = ?", ownerID).First(&owner).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "citizen", Ref: ownerID}
		}
		return nil, storeErr("load owner", err)
	}

	var existing models.ServiceArtifact
	err := tx.Where("kind = ? AND natural_key = ?", req.Kind, key).First(&existing).Error
	if err == nil {
		tx.Rollback()
		return nil, &DuplicateKeyError{Kind: req.Kind, Key: key, ExistingOwner: existing.OwnerID}
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		tx.Rollback()
		return nil, storeErr("check natural key", err)
	}

	artifact := models.ServiceArtifact{
		Kind:             req.Kind,
		NaturalKey:       key,
		OwnerID:          ownerID,
		IssueDate:        issueDate,
		Status:           models.ArtifactActive,
		Address:          utils.SanitizeString(req.Address),
		RegistrationType: req.RegistrationType,
		Provider:         utils.SanitizeString(req.Provider),
		BankName:         utils.SanitizeString(req.BankName),
		AccountType:      req.AccountType,
		IFSC:             req.IFSC,
	}
	if err := tx.Create(&artifact).Error; err != nil {
		tx.Rollback()
		if isUniqueViolation(err) {
			return nil, &DuplicateKeyError{Kind: req.Kind, Key: key}
		}
		return nil, storeErr("create artifact", err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, storeErr("commit artifact registration", err)
	}
	return &artifact, nil
}

// ListByOwner returns a citizen's artifacts in insertion order, optionally
// filtered to one kind.
func (l *Ledger) ListByOwner(ctx context.Context, ownerID, kind string) ([]models.ServiceArtifact, error) {
	if kind != "" {
		if _, ok := artifactRules[kind]; !ok {
			return nil, &ValidationError{Field: "kind", Message: "kind must be tax_id, voter_id, sim, or bank_account"}
		}
	}

	query := l.db.WithContext(ctx).Where("owner_id = ?", ownerID)
	if kind != "" {
		query = query.Where("kind = ?", kind)
	}

	var artifacts []models.ServiceArtifact
	if err := query.Order("id ASC").Find(&artifacts).Error; err != nil {
		return nil, storeErr("list artifacts", err)
	}
	return artifacts, nil
}

// SetStatus marks an artifact Active or Inactive. Inactive artifacts stay in
// the ledger and keep their natural key; they only drop out of active counts.
func (l *Ledger) SetStatus(ctx context.Context, ownerID, kind, naturalKey, status string) error {
	if status != models.ArtifactActive && status != models.ArtifactInactive {
		return &ValidationError{Field: "status", Message: "status must be Active or Inactive"}
	}

	res := l.db.WithContext(ctx).Model(&models.ServiceArtifact{}).
		Where("owner_id = ? AND kind = ? AND natural_key = ?", ownerID, kind, strings.ToUpper(naturalKey)).
		Update("status", status)
	if res.Error != nil {
		return storeErr("set artifact status", res.Error)
	}
	if res.RowsAffected == 0 {
		return &NotFoundError{Resource: "artifact", Ref: naturalKey}
	}
	return nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique")
}
