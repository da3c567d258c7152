package handlers

import (
	"net/http"

	"freightflow/config"
)

type SystemHandler struct {
	Catalog *config.Catalog
}

func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetCatalog returns the dropdown vocabularies of the forms.
func (h *SystemHandler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, h.Catalog)
}
