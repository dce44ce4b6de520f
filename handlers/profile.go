package handlers

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"civilregistry-go/middleware"
	"civilregistry-go/models"
	"civilregistry-go/utils"
)

func (h *Handlers) GetProfile(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r)
	if claims == nil || claims.NationalID == "" {
		sendError(w, http.StatusUnauthorized, "Citizen token required", nil)
		return
	}

	summary, err := h.reporter.Summarize(r.Context(), claims.NationalID)
	if err != nil {
		sendRegistryError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, summary)
}

func (h *Handlers) UpdateContact(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r)
	if claims == nil || claims.NationalID == "" {
		sendError(w, http.StatusUnauthorized, "Citizen token required", nil)
		return
	}

	var req models.ContactUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	if err := h.identities.UpdateContact(r.Context(), claims.NationalID, req.Mobile, req.Email); err != nil {
		sendRegistryError(w, err)
		return
	}

	h.logAudit(claims.Username, "UPDATE_CONTACT", "citizen", claims.NationalID, "Updated")
	sendJSON(w, http.StatusOK, map[string]string{"message": "Contact updated successfully"})
}

func (h *Handlers) ListOwnCases(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r)
	if claims == nil || claims.NationalID == "" {
		sendError(w, http.StatusUnauthorized, "Citizen token required", nil)
		return
	}

	cases, err := h.cases.ForCitizen(r.Context(), claims.NationalID)
	if err != nil {
		sendRegistryError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, cases)
}

// UploadPhoto stores the photo as an opaque blob; the bytes are never
// decoded here beyond the base64 transport encoding.
func (h *Handlers) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r)
	if claims == nil || claims.NationalID == "" {
		sendError(w, http.StatusUnauthorized, "Citizen token required", nil)
		return
	}

	var req models.PhotoUploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		sendError(w, http.StatusBadRequest, "Validation failed", utils.FormatValidationError(err))
		return
	}

	photo, err := base64.StdEncoding.DecodeString(req.Photo)
	if err != nil {
		sendError(w, http.StatusBadRequest, "Photo must be base64 encoded", nil)
		return
	}

	if err := h.biometrics.StorePhoto(r.Context(), claims.NationalID, photo, req.PhotoType); err != nil {
		sendRegistryError(w, err)
		return
	}

	sendJSON(w, http.StatusOK, map[string]string{"message": "Photo stored successfully"})
}

func (h *Handlers) GetPhoto(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r)
	if claims == nil || claims.NationalID == "" {
		sendError(w, http.StatusUnauthorized, "Citizen token required", nil)
		return
	}

	record, err := h.biometrics.FetchPhoto(r.Context(), claims.NationalID)
	if err != nil {
		sendRegistryError(w, err)
		return
	}

	sendJSON(w, http.StatusOK, map[string]interface{}{
		"photo_type": record.PhotoType,
		"photo":      base64.StdEncoding.EncodeToString(record.Photo),
	})
}
