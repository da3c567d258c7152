package handlers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"freightflow/domain"
	"freightflow/service"
)

type BookingHandler struct {
	Service        *service.BookingService
	Policy         domain.OverridePolicy
	DefaultAdvance decimal.Decimal
}

// draft decodes a booking form over a fresh draft, so omitted fields take
// the form defaults. DefaultAdvance is applied as configured, zero included.
func (h *BookingHandler) draft(w http.ResponseWriter, r *http.Request) (*domain.Draft, bool) {
	d := domain.NewDraft(h.Policy)
	d.AdvancePercentage = h.DefaultAdvance
	if !decodeJSON(w, r, d) {
		return nil, false
	}
	return d, true
}

// Quote previews the computed freight fields of a draft.
func (h *BookingHandler) Quote(w http.ResponseWriter, r *http.Request) {
	d, ok := h.draft(w, r)
	if !ok {
		return
	}
	q, err := h.Service.Quote(d)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, q)
}

// ConfirmBooking turns a draft into a trip.
func (h *BookingHandler) ConfirmBooking(w http.ResponseWriter, r *http.Request) {
	d, ok := h.draft(w, r)
	if !ok {
		return
	}
	trip, err := h.Service.ConfirmBooking(r.Context(), d)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, trip)
}
