package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"freightflow/config"
	"freightflow/domain"
	"freightflow/models"
	"freightflow/repository"
)

type memStore struct {
	mu      sync.Mutex
	files   map[string][]byte
	deleted []string
}

func (m *memStore) Put(_ context.Context, key string, data []byte, _ string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.files == nil {
		m.files = make(map[string][]byte)
	}
	m.files[key] = data
	return "mem://" + key, nil
}

func (m *memStore) Delete(_ context.Context, fileURL string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := strings.TrimPrefix(fileURL, "mem://")
	delete(m.files, key)
	m.deleted = append(m.deleted, fileURL)
	return nil
}

type stubRenderer struct {
	calls int
}

func (r *stubRenderer) Render(_ context.Context, copies []models.LRCopyData) ([]byte, error) {
	r.calls++
	return []byte(fmt.Sprintf("%%PDF-stub copies=%d", len(copies))), nil
}

type testEnv struct {
	now      time.Time
	seq      int
	seeds    int
	trips    *repository.MemoryTripRepo
	store    *memStore
	renderer *stubRenderer

	booking *BookingService
	tripSvc *TripService
	ref     *ReferenceService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	e := &testEnv{
		now:      time.Date(2025, 4, 20, 10, 30, 0, 0, time.UTC),
		trips:    repository.NewMemoryTripRepo(),
		store:    &memStore{},
		renderer: &stubRenderer{},
	}
	clients := repository.NewMemoryClientRepo()
	suppliers := repository.NewMemorySupplierRepo()
	vehicles := repository.NewMemoryVehicleRepo()
	profiles := repository.NewMemoryProfileRepo()
	catalog := config.DefaultCatalog()

	now := func() time.Time { return e.now }
	id := func() string {
		e.seq++
		return fmt.Sprintf("id-%d", e.seq)
	}

	e.booking = NewBookingService(clients, suppliers, vehicles, e.trips, catalog)
	e.booking.Now, e.booking.NewID = now, id
	e.tripSvc = NewTripService(e.trips, profiles, e.store, e.renderer)
	e.tripSvc.Now, e.tripSvc.NewID = now, id
	e.ref = NewReferenceService(clients, suppliers, vehicles, profiles, catalog)
	e.ref.Now, e.ref.NewID = now, id
	return e
}

type seeded struct {
	client   *models.Client
	supplier *models.Supplier
	vehicle  *models.Vehicle
}

func (e *testEnv) seed(t *testing.T) seeded {
	t.Helper()
	ctx := context.Background()
	reg := "dl1gc1234"
	if e.seeds > 0 {
		reg = fmt.Sprintf("dl1gc%d", 1234+e.seeds)
	}
	e.seeds++
	c, err := e.ref.CreateClient(ctx, &models.Client{
		Name: "Tata Steel Ltd", City: "Mumbai", Address: "Bombay House, Fort",
		AddressType: "Corporate Office", InvoicingType: "GST 18%",
		LogisticsPOC: domain.Contact{Name: "Rajesh Kumar"},
	})
	if err != nil {
		t.Fatalf("CreateClient: %v", err)
	}
	s, err := e.ref.CreateSupplier(ctx, &models.Supplier{
		Name: "Roadways Logistics", City: "Delhi",
		ContactPerson: domain.Contact{Name: "Vikram Singh"},
	})
	if err != nil {
		t.Fatalf("CreateSupplier: %v", err)
	}
	v, err := e.ref.CreateVehicle(ctx, &models.Vehicle{
		RegistrationNumber: reg, SupplierID: s.ID,
		VehicleType: "Truck", VehicleSize: "32FT Sxl", VehicleCapacity: "15 Ton", AxleType: "Multi",
		DriverName: "Ramesh Yadav", DriverPhone: "9876543210",
		InsuranceExpiry: "2025-12-31",
	})
	if err != nil {
		t.Fatalf("CreateVehicle: %v", err)
	}
	return seeded{client: c, supplier: s, vehicle: v}
}

func draftFor(s seeded) *domain.Draft {
	d := domain.NewDraft(domain.OverrideSticky)
	d.ClientID = s.client.ID
	d.SupplierID = s.supplier.ID
	d.VehicleID = s.vehicle.ID
	d.DestinationAddress = "Tata Steel Plant, Bistupur"
	d.DestinationCity = "Jamshedpur"
	d.PickupDate = "2025-04-25"
	d.PickupTime = "09:00"
	d.LRNumbers = []string{"LR12345678"}
	_ = d.SetMaterials([]domain.Material{{
		Name: "Steel Coils", Weight: decimal.NewFromInt(10), Unit: domain.UnitMT, RatePerMT: decimal.NewFromInt(1500),
	}})
	_ = d.SetAdvancePercentage(decimal.NewFromInt(40))
	_ = d.SetSupplierFreight(decimal.NewFromInt(12000))
	return d
}

func (e *testEnv) confirm(t *testing.T, s seeded) *models.Trip {
	t.Helper()
	trip, err := e.booking.ConfirmBooking(context.Background(), draftFor(s))
	if err != nil {
		t.Fatalf("ConfirmBooking: %v", err)
	}
	return trip
}

func fieldsOf(t *testing.T, err error) *domain.ValidationError {
	t.Helper()
	ve, ok := err.(*domain.ValidationError)
	if !ok {
		t.Fatalf("expected *domain.ValidationError, got %T: %v", err, err)
	}
	return ve
}
