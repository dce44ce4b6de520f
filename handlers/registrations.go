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

func (h *Handlers) ListPendingRegistrations(w http.ResponseWriter, r *http.Request) {
	registrations, err := h.queue.ListPending(r.Context())
	if err != nil {
		sendRegistryError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, registrations)
}

func requestIDFromPath(r *http.Request) (uint, bool) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

// DecideRegistration runs the conflict check. A conflicting request is
// auto-rejected by the system on the spot; a clean one comes back awaiting
// the admin's explicit approve or reject call.
func (h *Handlers) DecideRegistration(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r)
	requestID, ok := requestIDFromPath(r)
	if !ok {
		sendError(w, http.StatusBadRequest, "Invalid request id", nil)
		return
	}

	outcome, err := h.workflow.Decide(r.Context(), requestID, claims.Username)
	if err != nil {
		sendRegistryError(w, err)
		return
	}

	sendJSON(w, http.StatusOK, outcome)
}

func (h *Handlers) ApproveRegistration(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r)
	requestID, ok := requestIDFromPath(r)
	if !ok {
		sendError(w, http.StatusBadRequest, "Invalid request id", nil)
		return
	}

	citizen, err := h.workflow.Approve(r.Context(), requestID, claims.Username)
	if err != nil {
		sendRegistryError(w, err)
		return
	}

	sendJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Registration approved. Account activation pending admin action.",
		"citizen": citizen,
	})
}

func (h *Handlers) RejectRegistration(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r)
	requestID, ok := requestIDFromPath(r)
	if !ok {
		sendError(w, http.StatusBadRequest, "Invalid request id", nil)
		return
	}

	var req models.RejectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		sendError(w, http.StatusBadRequest, "Validation failed", utils.FormatValidationError(err))
		return
	}

	if err := h.workflow.Reject(r.Context(), requestID, claims.Username, req.Reason); err != nil {
		sendRegistryError(w, err)
		return
	}

	sendJSON(w, http.StatusOK, map[string]string{
		"message": "Registration rejected",
		"reason":  req.Reason,
	})
}
