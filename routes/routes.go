package routes

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"freightflow/handlers"
	"freightflow/utils"
)

// Handlers groups everything the router dispatches to.
type Handlers struct {
	System    *handlers.SystemHandler
	Booking   *handlers.BookingHandler
	Trip      *handlers.TripHandler
	Reference *handlers.ReferenceHandler
	Profile   *handlers.ProfileHandler
}

// CORS middleware
func withCORS(origin string, next http.Handler) http.Handler {
	if origin == "" {
		origin = "*"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")
		w.Header().Set("Access-Control-Expose-Headers", "X-Request-ID")

		// Handle preflight request
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRequestID reuses an incoming X-Request-ID or assigns a new one.
func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get("X-Request-ID"))
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(utils.WithRequestID(r.Context(), id)))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		latency := float64(time.Since(start).Microseconds()) / 1000.0
		utils.LogCtx(r.Context(), "http", "request", fmt.Sprintf("method=%s path=%s status=%d latency_ms=%.3f",
			r.Method, r.URL.Path, rec.status, latency))
	})
}

// NewRouter registers every route and wraps the mux with request id,
// logging and CORS handling.
func NewRouter(h Handlers, corsOrigin string) http.Handler {
	mux := http.NewServeMux()
	handle := func(pattern string, fn http.HandlerFunc) {
		mux.Handle(pattern, handlers.RecoverWrapper(fn))
	}

	handle("GET /health", h.System.Health)
	handle("GET /catalog", h.System.GetCatalog)

	// Booking
	handle("POST /bookings/quote", h.Booking.Quote)
	handle("POST /bookings", h.Booking.ConfirmBooking)

	// Trips
	handle("GET /trips", h.Trip.ListTrips)
	handle("GET /trips/{id}", h.Trip.GetTrip)
	handle("POST /trips/{id}/status", h.Trip.TransitionStatus)
	handle("POST /trips/{id}/payments/{track}", h.Trip.TransitionPayment)
	handle("POST /trips/{id}/payments/{track}/process", h.Trip.ProcessPayment)
	handle("POST /trips/{id}/pod", h.Trip.UploadPOD)
	handle("POST /trips/{id}/documents", h.Trip.AttachDocument)
	handle("POST /trips/{id}/acceptance", h.Trip.RespondToAssignment)
	handle("POST /trips/{id}/lr-copy", h.Trip.GenerateLRCopy)
	handle("GET /payments/queues", h.Trip.PaymentQueues)
	handle("GET /dashboard", h.Trip.Dashboard)

	// Clients
	handle("GET /clients", h.Reference.ListClients)
	handle("POST /clients", h.Reference.CreateClient)
	handle("GET /clients/{id}", h.Reference.GetClient)
	handle("PUT /clients/{id}", h.Reference.UpdateClient)
	handle("DELETE /clients/{id}", h.Reference.DeleteClient)

	// Suppliers
	handle("GET /suppliers", h.Reference.ListSuppliers)
	handle("POST /suppliers", h.Reference.CreateSupplier)
	handle("GET /suppliers/{id}", h.Reference.GetSupplier)
	handle("PUT /suppliers/{id}", h.Reference.UpdateSupplier)
	handle("DELETE /suppliers/{id}", h.Reference.DeleteSupplier)
	handle("GET /suppliers/{id}/trips", h.Trip.SupplierTrips)

	// Vehicles
	handle("GET /vehicles", h.Reference.ListVehicles)
	handle("POST /vehicles", h.Reference.CreateVehicle)
	handle("GET /vehicles/expiring-insurance", h.Reference.ExpiringInsurance)
	handle("GET /vehicles/{id}", h.Reference.GetVehicle)
	handle("PUT /vehicles/{id}", h.Reference.UpdateVehicle)
	handle("DELETE /vehicles/{id}", h.Reference.DeleteVehicle)
	handle("POST /vehicles/{id}/reassign", h.Reference.ReassignVehicle)
	handle("POST /vehicles/{id}/insurance", h.Reference.RenewInsurance)
	handle("POST /vehicles/{id}/documents", h.Reference.MarkVehicleDocuments)

	// Company profile
	handle("GET /profile", h.Profile.GetProfile)
	handle("PUT /profile", h.Profile.SaveProfile)

	return withRequestID(withLogging(withCORS(corsOrigin, mux)))
}
