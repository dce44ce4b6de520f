package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"gorm.io/gorm"

	"civilregistry-go/config"
	"civilregistry-go/models"
	"civilregistry-go/registry"

	"github.com/google/uuid"
)

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Status    int         `json:"status"`
	Error     string      `json:"error"`
	Details   interface{} `json:"details,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

func sendError(w http.ResponseWriter, status int, err string, details interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{
		Status:    status,
		Error:     err,
		Details:   details,
		Timestamp: time.Now(),
	})
}

func sendJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

type Handlers struct {
	db         *gorm.DB
	config     *config.Config
	queue      *registry.Queue
	workflow   *registry.Workflow
	identities *registry.Identities
	ledger     *registry.Ledger
	reporter   *registry.Reporter
	cases      *registry.Cases
	biometrics *registry.Biometrics
}

func NewHandlers(db *gorm.DB, cfg *config.Config) *Handlers {
	return &Handlers{
		db:         db,
		config:     cfg,
		queue:      registry.NewQueue(db),
		workflow:   registry.NewWorkflow(db),
		identities: registry.NewIdentities(db),
		ledger:     registry.NewLedger(db),
		reporter:   registry.NewReporter(db),
		cases:      registry.NewCases(db),
		biometrics: registry.NewBiometrics(db),
	}
}

func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now(),
		"service":   "CivilRegistryGo",
		"version":   "1.0.0",
	})
}

// sendRegistryError maps the registry's error taxonomy onto HTTP statuses.
func sendRegistryError(w http.ResponseWriter, err error) {
	var vErr *registry.ValidationError
	var dupErr *registry.DuplicateKeyError
	var nfErr *registry.NotFoundError
	var stateErr *registry.InvalidStateError

	switch {
	case errors.As(err, &vErr):
		sendError(w, http.StatusBadRequest, "Validation failed", map[string]string{vErr.Field: vErr.Message})
	case errors.As(err, &dupErr):
		sendError(w, http.StatusConflict, "Duplicate key", err.Error())
	case errors.As(err, &nfErr):
		sendError(w, http.StatusNotFound, "Not found", err.Error())
	case errors.As(err, &stateErr):
		sendError(w, http.StatusConflict, "Invalid state", err.Error())
	default:
		sendError(w, http.StatusInternalServerError, "Store error", err.Error())
	}
}

// logAudit records presentation-level events (logins, submissions) that do
// not pass through the workflow's own audit writes.
func (h *Handlers) logAudit(actor, action, targetType, targetRef, outcome string) {
	audit := models.AuditEntry{
		Reference:  uuid.New().String(),
		Actor:      actor,
		Action:     action,
		TargetType: targetType,
		TargetRef:  targetRef,
		Outcome:    outcome,
	}
	h.db.Create(&audit)
}
