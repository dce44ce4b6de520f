package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"civilregistry-go/middleware"
	"civilregistry-go/models"
	"civilregistry-go/utils"

	"github.com/gorilla/mux"
)

func (h *Handlers) CitizenSummary(w http.ResponseWriter, r *http.Request) {
	nationalID := mux.Vars(r)["uid"]

	summary, err := h.reporter.Summarize(r.Context(), nationalID)
	if err != nil {
		sendRegistryError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, summary)
}

func (h *Handlers) SetAccountStatus(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r)
	nationalID := mux.Vars(r)["uid"]

	var req models.AccountStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		sendError(w, http.StatusBadRequest, "Validation failed", utils.FormatValidationError(err))
		return
	}

	if err := h.identities.SetAccountStatus(r.Context(), nationalID, req.Status, claims.Username); err != nil {
		sendRegistryError(w, err)
		return
	}

	sendJSON(w, http.StatusOK, map[string]string{
		"message": "Account status updated",
		"status":  req.Status,
	})
}

// MinimumArtifactsReport answers "which citizens hold at least N artifacts
// of this kind", ordered by count then name.
func (h *Handlers) MinimumArtifactsReport(w http.ResponseWriter, r *http.Request) {
	kind := r.URL.Query().Get("kind")
	minCount, err := strconv.Atoi(r.URL.Query().Get("min"))
	if err != nil {
		sendError(w, http.StatusBadRequest, "min must be an integer", nil)
		return
	}

	groups, rerr := h.reporter.CitizensWithMinimumArtifacts(r.Context(), kind, minCount)
	if rerr != nil {
		sendRegistryError(w, rerr)
		return
	}

	sendJSON(w, http.StatusOK, map[string]interface{}{
		"kind":  kind,
		"min":   minCount,
		"total": len(groups),
		"rows":  groups,
	})
}

func (h *Handlers) GetStatistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.reporter.Statistics(r.Context())
	if err != nil {
		sendRegistryError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, stats)
}

func (h *Handlers) RegisterCase(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r)

	var req models.CaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		sendError(w, http.StatusBadRequest, "Validation failed", utils.FormatValidationError(err))
		return
	}

	record, err := h.cases.Register(r.Context(), req, claims.Username)
	if err != nil {
		sendRegistryError(w, err)
		return
	}

	sendJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Case registered",
		"case":    record,
	})
}

func (h *Handlers) GetCase(w http.ResponseWriter, r *http.Request) {
	record, err := h.cases.Fetch(r.Context(), mux.Vars(r)["caseNo"])
	if err != nil {
		sendRegistryError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, record)
}

func (h *Handlers) GetAuditLogs(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page <= 0 {
		page = 1
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	offset := (page - 1) * limit

	var auditLogs []models.AuditEntry
	if err := h.db.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&auditLogs).Error; err != nil {
		sendError(w, http.StatusInternalServerError, "Failed to fetch audit logs", err.Error())
		return
	}

	sendJSON(w, http.StatusOK, auditLogs)
}
