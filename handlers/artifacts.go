package handlers

import (
	"encoding/json"
	"net/http"

	"civilregistry-go/middleware"
	"civilregistry-go/models"
	"civilregistry-go/utils"
)

// RegisterArtifact links a new service artifact to the authenticated
// citizen. The ledger enforces format rules and system-wide key uniqueness.
func (h *Handlers) RegisterArtifact(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r)
	if claims == nil || claims.NationalID == "" {
		sendError(w, http.StatusUnauthorized, "Citizen token required", nil)
		return
	}

	var req models.ArtifactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		sendError(w, http.StatusBadRequest, "Validation failed", utils.FormatValidationError(err))
		return
	}

	artifact, err := h.ledger.Register(r.Context(), claims.NationalID, req)
	if err != nil {
		sendRegistryError(w, err)
		return
	}

	h.logAudit(claims.Username, "REGISTER_ARTIFACT", req.Kind, artifact.NaturalKey, artifact.Status)

	sendJSON(w, http.StatusCreated, map[string]interface{}{
		"message":  "Artifact registered successfully",
		"artifact": artifact,
	})
}

func (h *Handlers) ListArtifacts(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r)
	if claims == nil || claims.NationalID == "" {
		sendError(w, http.StatusUnauthorized, "Citizen token required", nil)
		return
	}

	artifacts, err := h.ledger.ListByOwner(r.Context(), claims.NationalID, r.URL.Query().Get("kind"))
	if err != nil {
		sendRegistryError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, artifacts)
}

type artifactStatusRequest struct {
	Kind       string `json:"kind" validate:"required,oneof=tax_id voter_id sim bank_account"`
	NaturalKey string `json:"natural_key" validate:"required"`
	Status     string `json:"status" validate:"required,oneof=Active Inactive"`
}

func (h *Handlers) SetArtifactStatus(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r)
	if claims == nil || claims.NationalID == "" {
		sendError(w, http.StatusUnauthorized, "Citizen token required", nil)
		return
	}

	var req artifactStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		sendError(w, http.StatusBadRequest, "Validation failed", utils.FormatValidationError(err))
		return
	}

	if err := h.ledger.SetStatus(r.Context(), claims.NationalID, req.Kind, req.NaturalKey, req.Status); err != nil {
		sendRegistryError(w, err)
		return
	}

	h.logAudit(claims.Username, "SET_ARTIFACT_STATUS", req.Kind, req.NaturalKey, req.Status)
	sendJSON(w, http.StatusOK, map[string]string{"message": "Artifact status updated"})
}
