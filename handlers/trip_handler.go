package handlers

import (
	"net/http"

	"freightflow/domain"
	"freightflow/service"
)

type TripHandler struct {
	Service *service.TripService
}

type eventRequest struct {
	Event string `json:"event" validate:"required"`
}

type podRequest struct {
	Number   string `json:"number"`
	Filename string `json:"filename" validate:"required"`
}

type acceptanceRequest struct {
	Accept *bool `json:"accept" validate:"required"`
}

// ListTrips searches by order number, LR number, client or supplier (?q=).
func (h *TripHandler) ListTrips(w http.ResponseWriter, r *http.Request) {
	trips, err := h.Service.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, trips)
}

func (h *TripHandler) GetTrip(w http.ResponseWriter, r *http.Request) {
	trip, err := h.Service.GetTrip(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, trip)
}

func (h *TripHandler) TransitionStatus(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	ev, err := domain.ParseTripEvent(req.Event)
	if err != nil {
		writeError(w, r, err)
		return
	}
	trip, err := h.Service.TransitionTripStatus(r.Context(), r.PathValue("id"), ev)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, trip)
}

func (h *TripHandler) TransitionPayment(w http.ResponseWriter, r *http.Request) {
	track, err := domain.ParsePaymentTrack(r.PathValue("track"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req eventRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	ev, err := domain.ParsePaymentEvent(req.Event)
	if err != nil {
		writeError(w, r, err)
		return
	}
	trip, err := h.Service.TransitionPaymentStatus(r.Context(), r.PathValue("id"), track, ev)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, trip)
}

// ProcessPayment advances a payment track by one step.
func (h *TripHandler) ProcessPayment(w http.ResponseWriter, r *http.Request) {
	track, err := domain.ParsePaymentTrack(r.PathValue("track"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	trip, err := h.Service.ProcessPayment(r.Context(), r.PathValue("id"), track)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, trip)
}

func (h *TripHandler) UploadPOD(w http.ResponseWriter, r *http.Request) {
	var req podRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	trip, err := h.Service.UploadPOD(r.Context(), r.PathValue("id"), req.Number, req.Filename)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, trip)
}

func (h *TripHandler) AttachDocument(w http.ResponseWriter, r *http.Request) {
	var req service.DocumentInput
	if !decodeJSON(w, r, &req) {
		return
	}
	trip, err := h.Service.AttachDocument(r.Context(), r.PathValue("id"), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, trip)
}

func (h *TripHandler) RespondToAssignment(w http.ResponseWriter, r *http.Request) {
	var req acceptanceRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	trip, err := h.Service.RespondToAssignment(r.Context(), r.PathValue("id"), *req.Accept)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, trip)
}

// GenerateLRCopy renders and stores the LR copy PDF.
func (h *TripHandler) GenerateLRCopy(w http.ResponseWriter, r *http.Request) {
	trip, err := h.Service.GenerateLRCopy(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Message: "LR copy generated",
		Data: map[string]any{
			"trip_id":            trip.ID,
			"order_number":       trip.OrderNumber,
			"lr_copy_url":        trip.LRCopyURL,
			"lr_copy_created_at": trip.LRCopyCreatedAt,
		},
	})
}

func (h *TripHandler) PaymentQueues(w http.ResponseWriter, r *http.Request) {
	q, err := h.Service.PaymentQueues(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, q)
}

func (h *TripHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	s, err := h.Service.Dashboard(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, s)
}

// SupplierTrips is the supplier app's trip history.
func (h *TripHandler) SupplierTrips(w http.ResponseWriter, r *http.Request) {
	trips, err := h.Service.SupplierTrips(r.Context(), r.PathValue("id"), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, trips)
}
