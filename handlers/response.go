package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"freightflow/domain"
	"freightflow/repository"
	"freightflow/service"
	"freightflow/utils"
)

const maxBodyBytes = 1 << 20

// APIResponse is the envelope of every JSON response.
type APIResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message,omitempty"`
	Data    any               `json:"data,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, APIResponse{Success: true, Data: data})
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, APIResponse{Success: status < 400, Message: msg})
}

// writeError maps service errors onto HTTP statuses. Unexpected errors are
// logged and reported without detail.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusUnprocessableEntity, APIResponse{Message: "validation failed", Errors: ve.FieldMap()})
	case domain.IsInvalidTransition(err):
		writeMessage(w, http.StatusConflict, err.Error())
	case errors.Is(err, repository.ErrNotFound):
		writeMessage(w, http.StatusNotFound, "not found")
	case errors.Is(err, repository.ErrDuplicate):
		writeMessage(w, http.StatusConflict, "record already exists")
	default:
		utils.LogCtx(r.Context(), "http", "error", fmt.Sprintf("%s %s: %v", r.Method, r.URL.Path, err))
		writeMessage(w, http.StatusInternalServerError, "internal server error")
	}
}

// decodeJSON reads the body into dst and runs its validate tags.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	if err := service.ValidateStruct(dst); err != nil {
		writeError(w, r, err)
		return false
	}
	return true
}
