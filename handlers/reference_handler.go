package handlers

import (
	"net/http"

	"freightflow/models"
	"freightflow/service"
)

type ReferenceHandler struct {
	Service *service.ReferenceService
}

// ------------------------ Clients ------------------------

func (h *ReferenceHandler) ListClients(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.SearchClients(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, list)
}

func (h *ReferenceHandler) CreateClient(w http.ResponseWriter, r *http.Request) {
	var c models.Client
	if !decodeJSON(w, r, &c) {
		return
	}
	created, err := h.Service.CreateClient(r.Context(), &c)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, created)
}

func (h *ReferenceHandler) GetClient(w http.ResponseWriter, r *http.Request) {
	c, err := h.Service.GetClient(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, c)
}

func (h *ReferenceHandler) UpdateClient(w http.ResponseWriter, r *http.Request) {
	var c models.Client
	if !decodeJSON(w, r, &c) {
		return
	}
	updated, err := h.Service.UpdateClient(r.Context(), r.PathValue("id"), &c)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, updated)
}

func (h *ReferenceHandler) DeleteClient(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteClient(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Client deleted successfully")
}

// ------------------------ Suppliers ------------------------

func (h *ReferenceHandler) ListSuppliers(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.SearchSuppliers(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, list)
}

func (h *ReferenceHandler) CreateSupplier(w http.ResponseWriter, r *http.Request) {
	var s models.Supplier
	if !decodeJSON(w, r, &s) {
		return
	}
	created, err := h.Service.CreateSupplier(r.Context(), &s)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, created)
}

func (h *ReferenceHandler) GetSupplier(w http.ResponseWriter, r *http.Request) {
	s, err := h.Service.GetSupplier(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, s)
}

func (h *ReferenceHandler) UpdateSupplier(w http.ResponseWriter, r *http.Request) {
	var s models.Supplier
	if !decodeJSON(w, r, &s) {
		return
	}
	updated, err := h.Service.UpdateSupplier(r.Context(), r.PathValue("id"), &s)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, updated)
}

func (h *ReferenceHandler) DeleteSupplier(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteSupplier(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Supplier deleted successfully")
}

// ------------------------ Vehicles ------------------------

type reassignRequest struct {
	SupplierID string `json:"supplier_id" validate:"required"`
}

type insuranceRequest struct {
	InsuranceExpiry string `json:"insurance_expiry" validate:"required,datetime=2006-01-02"`
}

func (h *ReferenceHandler) ListVehicles(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.SearchVehicles(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, list)
}

func (h *ReferenceHandler) CreateVehicle(w http.ResponseWriter, r *http.Request) {
	var v models.Vehicle
	if !decodeJSON(w, r, &v) {
		return
	}
	created, err := h.Service.CreateVehicle(r.Context(), &v)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, created)
}

func (h *ReferenceHandler) GetVehicle(w http.ResponseWriter, r *http.Request) {
	v, err := h.Service.GetVehicle(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, v)
}

func (h *ReferenceHandler) UpdateVehicle(w http.ResponseWriter, r *http.Request) {
	var v models.Vehicle
	if !decodeJSON(w, r, &v) {
		return
	}
	updated, err := h.Service.UpdateVehicle(r.Context(), r.PathValue("id"), &v)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, updated)
}

func (h *ReferenceHandler) DeleteVehicle(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteVehicle(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Vehicle deleted successfully")
}

func (h *ReferenceHandler) ExpiringInsurance(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.ExpiringInsurance(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, list)
}

func (h *ReferenceHandler) ReassignVehicle(w http.ResponseWriter, r *http.Request) {
	var req reassignRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	v, err := h.Service.ReassignVehicle(r.Context(), r.PathValue("id"), req.SupplierID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, v)
}

func (h *ReferenceHandler) RenewInsurance(w http.ResponseWriter, r *http.Request) {
	var req insuranceRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	v, err := h.Service.RenewInsurance(r.Context(), r.PathValue("id"), req.InsuranceExpiry)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, v)
}

func (h *ReferenceHandler) MarkVehicleDocuments(w http.ResponseWriter, r *http.Request) {
	v, err := h.Service.MarkVehicleDocumentsUploaded(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, v)
}
