package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"civilregistry-go/models"
	"civilregistry-go/utils"

	"gorm.io/gorm"
)

// Register submits a self-registration request into the queue. No identity
// is created here; the request waits for an admin decision.
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegistrationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	registration, err := h.queue.Submit(r.Context(), req)
	if err != nil {
		sendRegistryError(w, err)
		return
	}

	h.logAudit(req.Username, "SUBMIT_REGISTRATION", "registration", registration.NationalID, models.RegistrationPending)

	sendJSON(w, http.StatusCreated, map[string]interface{}{
		"message":    "Registration submitted successfully. Please wait for admin approval.",
		"request_id": registration.ID,
		"status":     registration.Status,
	})
}

// Login tries citizen credentials first, then admin credentials, the way the
// registry's single sign-in screen works.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		sendError(w, http.StatusBadRequest, "Validation failed", utils.FormatValidationError(err))
		return
	}

	var citizen models.Citizen
	err := h.db.Where("username = ?", req.Username).First(&citizen).Error
	if err == nil {
		if !utils.CheckCredential(req.Password, citizen.PasswordHash) {
			sendError(w, http.StatusUnauthorized, "Invalid credentials", nil)
			return
		}
		if citizen.AccountStatus != models.AccountActive {
			sendError(w, http.StatusForbidden, "Account is not active. Contact admin.", nil)
			return
		}

		token, terr := utils.GenerateCitizenToken(citizen.NationalID, citizen.Username)
		if terr != nil {
			sendError(w, http.StatusInternalServerError, "Failed to generate token", nil)
			return
		}

		if lerr := h.identities.RecordLogin(r.Context(), citizen.NationalID); lerr != nil {
			log.Printf("Failed to record login for %s: %v", citizen.NationalID, lerr)
		}
		h.logAudit(citizen.Username, "LOGIN", "citizen", citizen.NationalID, "Success")

		sendJSON(w, http.StatusOK, models.LoginResponse{Token: token, Role: "citizen", Citizen: &citizen})
		return
	}
	if err != gorm.ErrRecordNotFound {
		sendError(w, http.StatusInternalServerError, "Database error", nil)
		return
	}

	var admin models.Admin
	if err := h.db.Where("username = ?", req.Username).First(&admin).Error; err != nil {
		sendError(w, http.StatusUnauthorized, "Invalid credentials", nil)
		return
	}
	if !utils.CheckAdminPassword(req.Password, admin.PasswordHash) {
		sendError(w, http.StatusUnauthorized, "Invalid credentials", nil)
		return
	}

	token, err := utils.GenerateAdminToken(admin.ID, admin.Username)
	if err != nil {
		sendError(w, http.StatusInternalServerError, "Failed to generate token", nil)
		return
	}

	h.logAudit(admin.Username, "LOGIN", "admin", admin.Username, "Success")
	sendJSON(w, http.StatusOK, models.LoginResponse{Token: token, Role: "admin", Admin: &admin})
}
