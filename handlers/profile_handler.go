package handlers

import (
	"net/http"

	"freightflow/models"
	"freightflow/service"
)

type ProfileHandler struct {
	Service *service.ReferenceService
}

func (h *ProfileHandler) SaveProfile(w http.ResponseWriter, r *http.Request) {
	var profile models.CompanyProfile
	if !decodeJSON(w, r, &profile) {
		return
	}

	saved, err := h.Service.SaveProfile(r.Context(), &profile)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, saved)
}

func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.Service.GetProfile(r.Context())
	if err != nil {
		if service.IsNotFound(err) {
			writeMessage(w, http.StatusNotFound, "Company profile not found")
			return
		}
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, profile)
}
