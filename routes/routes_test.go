package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"freightflow/config"
	"freightflow/domain"
	"freightflow/handlers"
	"freightflow/repository"
	"freightflow/service"
	"freightflow/storage"
	"freightflow/utils"
)

type envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Errors  map[string]string `json:"errors"`
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	return newBookingRouter(t, domain.OverrideSticky, decimal.NewFromInt(30))
}

func newBookingRouter(t *testing.T, policy domain.OverridePolicy, defaultAdvance decimal.Decimal) http.Handler {
	t.Helper()
	clients := repository.NewMemoryClientRepo()
	suppliers := repository.NewMemorySupplierRepo()
	vehicles := repository.NewMemoryVehicleRepo()
	trips := repository.NewMemoryTripRepo()
	profiles := repository.NewMemoryProfileRepo()
	catalog := config.DefaultCatalog()

	store, err := storage.NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalStore: %v", err)
	}
	ref := service.NewReferenceService(clients, suppliers, vehicles, profiles, catalog)

	return NewRouter(Handlers{
		System: &handlers.SystemHandler{Catalog: catalog},
		Booking: &handlers.BookingHandler{
			Service:        service.NewBookingService(clients, suppliers, vehicles, trips, catalog),
			Policy:         policy,
			DefaultAdvance: defaultAdvance,
		},
		Trip:      &handlers.TripHandler{Service: service.NewTripService(trips, profiles, store, utils.FPDF{})},
		Reference: &handlers.ReferenceHandler{Service: ref},
		Profile:   &handlers.ProfileHandler{Service: ref},
	}, "*")
}

func call(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var rdr *bytes.Reader
	if body == "" {
		rdr = bytes.NewReader(nil)
	} else {
		rdr = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, rdr)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("%s %s: decode response: %v (%s)", method, path, err, rec.Body.String())
		}
	}
	return rec, env
}

func mustStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status = %d, want %d: %s", rec.Code, want, rec.Body.String())
	}
}

func idOf(t *testing.T, env envelope) string {
	t.Helper()
	var v struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(env.Data, &v); err != nil || v.ID == "" {
		t.Fatalf("no id in %s: %v", env.Data, err)
	}
	return v.ID
}

func TestBookingToPaymentFlow(t *testing.T) {
	h := newTestRouter(t)

	rec, env := call(t, h, http.MethodPost, "/suppliers", `{"name":"Roadways Logistics","city":"Delhi"}`)
	mustStatus(t, rec, http.StatusCreated)
	supplierID := idOf(t, env)

	rec, env = call(t, h, http.MethodPost, "/clients", `{"name":"Tata Steel Ltd","city":"Mumbai","address":"Bombay House"}`)
	mustStatus(t, rec, http.StatusCreated)
	clientID := idOf(t, env)

	rec, env = call(t, h, http.MethodPost, "/vehicles",
		`{"registration_number":"DL1GC1234","supplier_id":"`+supplierID+`","vehicle_type":"Truck","driver_name":"Ramesh Yadav","driver_phone":"9876543210"}`)
	mustStatus(t, rec, http.StatusCreated)
	vehicleID := idOf(t, env)

	draft := `{
		"client_id":"` + clientID + `",
		"supplier_id":"` + supplierID + `",
		"vehicle_id":"` + vehicleID + `",
		"destination_address":"Tata Steel Plant",
		"destination_city":"Jamshedpur",
		"pickup_date":"2025-04-25",
		"materials":[{"name":"Steel Coils","weight":"10","unit":"MT","rate_per_mt":"1500"}],
		"lr_numbers":["LR12345678"],
		"supplier_freight":"12000",
		"advance_percentage":"40"
	}`

	rec, env = call(t, h, http.MethodPost, "/bookings/quote", draft)
	mustStatus(t, rec, http.StatusOK)
	var quote service.Quote
	if err := json.Unmarshal(env.Data, &quote); err != nil {
		t.Fatalf("decode quote: %v", err)
	}
	if !quote.ClientFreight.Equal(decimal.NewFromInt(15000)) || !quote.AdvanceSupplierFreight.Equal(decimal.NewFromInt(4800)) ||
		!quote.Margin.Equal(decimal.NewFromInt(3000)) {
		t.Errorf("unexpected quote: %+v", quote)
	}

	rec, env = call(t, h, http.MethodPost, "/bookings", draft)
	mustStatus(t, rec, http.StatusCreated)
	tripID := idOf(t, env)

	rec, _ = call(t, h, http.MethodPost, "/trips/"+tripID+"/status", `{"event":"deliver"}`)
	mustStatus(t, rec, http.StatusConflict)

	rec, _ = call(t, h, http.MethodPost, "/trips/"+tripID+"/payments/balance/process", "")
	mustStatus(t, rec, http.StatusConflict)

	rec, _ = call(t, h, http.MethodPost, "/trips/"+tripID+"/pod", `{"number":"POD-1","filename":"pod.jpg"}`)
	mustStatus(t, rec, http.StatusOK)

	rec, _ = call(t, h, http.MethodPost, "/trips/"+tripID+"/payments/balance", `{"event":"initiate"}`)
	mustStatus(t, rec, http.StatusOK)

	rec, env = call(t, h, http.MethodGet, "/payments/queues", "")
	mustStatus(t, rec, http.StatusOK)
	var queues service.PaymentQueues
	if err := json.Unmarshal(env.Data, &queues); err != nil {
		t.Fatalf("decode queues: %v", err)
	}
	if len(queues.PendingAdvance) != 1 || len(queues.PendingBalance) != 1 {
		t.Errorf("queues: advance=%d balance=%d", len(queues.PendingAdvance), len(queues.PendingBalance))
	}

	rec, env = call(t, h, http.MethodPost, "/trips/"+tripID+"/lr-copy", "")
	mustStatus(t, rec, http.StatusOK)
	var lr struct {
		URL string `json:"lr_copy_url"`
	}
	if err := json.Unmarshal(env.Data, &lr); err != nil || !strings.HasPrefix(lr.URL, "file://") {
		t.Fatalf("lr copy url = %q, %v", lr.URL, err)
	}
	pdf, err := os.ReadFile(strings.TrimPrefix(lr.URL, "file://"))
	if err != nil {
		t.Fatalf("read lr copy: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Errorf("stored file is not a PDF")
	}

	rec, env = call(t, h, http.MethodGet, "/dashboard", "")
	mustStatus(t, rec, http.StatusOK)
	var summary service.Summary
	if err := json.Unmarshal(env.Data, &summary); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	if summary.TotalTrips != 1 || summary.PendingPayments != 2 {
		t.Errorf("summary: %+v", summary)
	}
}

func quoteOf(t *testing.T, h http.Handler, body string) service.Quote {
	t.Helper()
	rec, env := call(t, h, http.MethodPost, "/bookings/quote", body)
	mustStatus(t, rec, http.StatusOK)
	var q service.Quote
	if err := json.Unmarshal(env.Data, &q); err != nil {
		t.Fatalf("decode quote: %v", err)
	}
	return q
}

func TestQuoteOverridePolicy(t *testing.T) {
	// the form last showed 12000; a line was added since and the total is now 15000
	body := `{
		"materials":[{"name":"Steel Coils","weight":"8","unit":"MT","rate_per_mt":"1500"},
			{"name":"Steel Coils","weight":"2","unit":"MT","rate_per_mt":"1500"}],
		"client_freight":"20000",
		"client_freight_overridden":true,
		"computed_client_freight":"12000",
		"supplier_freight":"12000"
	}`

	sticky := quoteOf(t, newBookingRouter(t, domain.OverrideSticky, decimal.NewFromInt(30)), body)
	if !sticky.ClientFreight.Equal(decimal.NewFromInt(20000)) || !sticky.FreightOverridden {
		t.Errorf("sticky: got %s overridden=%v", sticky.ClientFreight, sticky.FreightOverridden)
	}

	recompute := quoteOf(t, newBookingRouter(t, domain.OverrideRecompute, decimal.NewFromInt(30)), body)
	if !recompute.ClientFreight.Equal(decimal.NewFromInt(15000)) || recompute.FreightOverridden {
		t.Errorf("recompute: got %s overridden=%v", recompute.ClientFreight, recompute.FreightOverridden)
	}
	if !recompute.ComputedClientFreight.Equal(decimal.NewFromInt(15000)) {
		t.Errorf("computed = %s", recompute.ComputedClientFreight)
	}
}

func TestQuoteZeroDefaultAdvance(t *testing.T) {
	cfg, err := config.FromEnv(func(key string) string {
		if key == "DEFAULT_ADVANCE_PERCENT" {
			return "0"
		}
		return ""
	})
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	h := newBookingRouter(t, cfg.OverridePolicy, cfg.DefaultAdvancePercent)

	q := quoteOf(t, h, `{"materials":[{"name":"Steel Coils","weight":"10","unit":"MT","rate_per_mt":"1500"}],"supplier_freight":"12000"}`)
	if !q.AdvancePercentage.IsZero() || !q.AdvanceSupplierFreight.IsZero() || !q.BalanceSupplierFreight.Equal(decimal.NewFromInt(12000)) {
		t.Errorf("unexpected split: pct=%s advance=%s balance=%s", q.AdvancePercentage, q.AdvanceSupplierFreight, q.BalanceSupplierFreight)
	}
}

func TestErrorMapping(t *testing.T) {
	h := newTestRouter(t)

	rec, env := call(t, h, http.MethodPost, "/bookings", `{}`)
	mustStatus(t, rec, http.StatusUnprocessableEntity)
	for _, f := range []string{"client_id", "supplier_id", "lr_numbers[0]", "materials[0].name"} {
		if _, ok := env.Errors[f]; !ok {
			t.Errorf("expected error for %s, got %v", f, env.Errors)
		}
	}

	rec, _ = call(t, h, http.MethodPost, "/bookings", `{"materials": "oops"`)
	mustStatus(t, rec, http.StatusBadRequest)

	rec, _ = call(t, h, http.MethodGet, "/trips/missing", "")
	mustStatus(t, rec, http.StatusNotFound)

	rec, env = call(t, h, http.MethodPost, "/trips/missing/status", `{}`)
	mustStatus(t, rec, http.StatusUnprocessableEntity)
	if env.Errors["event"] != "is required" {
		t.Errorf("errors = %v", env.Errors)
	}

	rec, _ = call(t, h, http.MethodPost, "/trips/missing/payments/deposit/process", "")
	mustStatus(t, rec, http.StatusUnprocessableEntity)

	rec, _ = call(t, h, http.MethodGet, "/profile", "")
	mustStatus(t, rec, http.StatusNotFound)

	rec, _ = call(t, h, http.MethodPost, "/vehicles/x/insurance", `{"insurance_expiry":"tomorrow"}`)
	mustStatus(t, rec, http.StatusUnprocessableEntity)
}

func TestVehicleRoutes(t *testing.T) {
	h := newTestRouter(t)

	_, env := call(t, h, http.MethodPost, "/suppliers", `{"name":"Express Carriers","city":"Mumbai"}`)
	supplierID := idOf(t, env)

	body := `{"registration_number":"mh02ab1234","supplier_id":"` + supplierID + `","insurance_expiry":"2000-01-01"}`
	rec, env := call(t, h, http.MethodPost, "/vehicles", body)
	mustStatus(t, rec, http.StatusCreated)
	vehicleID := idOf(t, env)

	rec, _ = call(t, h, http.MethodPost, "/vehicles", body)
	mustStatus(t, rec, http.StatusConflict)

	rec, env = call(t, h, http.MethodGet, "/vehicles/expiring-insurance", "")
	mustStatus(t, rec, http.StatusOK)
	if !strings.Contains(string(env.Data), "MH02AB1234") {
		t.Errorf("lapsed vehicle not listed: %s", env.Data)
	}

	rec, _ = call(t, h, http.MethodPost, "/vehicles/"+vehicleID+"/documents", "")
	mustStatus(t, rec, http.StatusOK)

	rec, _ = call(t, h, http.MethodDelete, "/vehicles/"+vehicleID, "")
	mustStatus(t, rec, http.StatusOK)
	rec, _ = call(t, h, http.MethodGet, "/vehicles/"+vehicleID, "")
	mustStatus(t, rec, http.StatusNotFound)
}

func TestProfileRoutes(t *testing.T) {
	h := newTestRouter(t)

	rec, _ := call(t, h, http.MethodPut, "/profile", `{"company_name":""}`)
	mustStatus(t, rec, http.StatusUnprocessableEntity)

	rec, _ = call(t, h, http.MethodPut, "/profile", `{"company_name":"FreightFlow Logistics","mobile":[{"number":"9876500000","label":"Office"}]}`)
	mustStatus(t, rec, http.StatusOK)

	rec, env := call(t, h, http.MethodGet, "/profile", "")
	mustStatus(t, rec, http.StatusOK)
	if !strings.Contains(string(env.Data), "FreightFlow Logistics") {
		t.Errorf("profile = %s", env.Data)
	}
}

func TestMiddleware(t *testing.T) {
	h := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/trips", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Errorf("preflight: %d %q", rec.Code, rec.Header().Get("Access-Control-Allow-Origin"))
	}

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "req-42")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Header().Get("X-Request-ID") != "req-42" {
		t.Errorf("request id = %q", rec.Header().Get("X-Request-ID"))
	}

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("expected a generated request id")
	}
}
