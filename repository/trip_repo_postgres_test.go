package repository

import (
	"context"
	"database/sql/driver"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"

	"freightflow/domain"
	"freightflow/models"
)

func columns(list string) []string {
	parts := strings.Split(list, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func sampleTrip() *models.Trip {
	return &models.Trip{
		ID:                 "T1",
		OrderNumber:        "FTL-20250420103000-001",
		LRNumbers:          []string{"LR12345678"},
		ClientID:           "CL001",
		ClientName:         "Tata Steel Ltd",
		DestinationAddress: "Tata Steel Plant, Jamshedpur",
		DestinationCity:    "Jamshedpur",
		SupplierID:         "SUP001",
		SupplierName:       "Speedway Logistics",
		VehicleID:          "VEH001",
		VehicleNumber:      "DL1GC1234",
		DriverName:         "Ramesh Yadav",
		PickupDate:         "2025-04-25",
		Materials: []domain.Material{
			{Name: "Steel Coils", Weight: decimal.NewFromInt(10), Unit: domain.UnitMT, RatePerMT: decimal.NewFromInt(1500)},
		},
		Documents: []models.Document{
			{ID: "D1", Type: models.DocumentLR, Number: "LR12345678", Filename: "lr.pdf", UploadDate: time.Date(2025, 4, 20, 0, 0, 0, 0, time.UTC)},
		},
		ClientFreight:          decimal.NewFromInt(15000),
		SupplierFreight:        decimal.NewFromInt(12000),
		AdvancePercentage:      decimal.NewFromInt(40),
		AdvanceSupplierFreight: decimal.NewFromInt(4800),
		BalanceSupplierFreight: decimal.NewFromInt(7200),
		Margin:                 decimal.NewFromInt(3000),
		Status:                 domain.StatusBooked,
		AdvancePaymentStatus:   domain.PaymentInitiated,
		BalancePaymentStatus:   domain.PaymentNotStarted,
		Acceptance:             domain.AcceptanceAssigned,
	}
}

func tripRow(id string, created time.Time) []driver.Value {
	return []driver.Value{
		id, "FTL-20250420103000-001", "{LR12345678,LR2}",
		"CL001", "Tata Steel Ltd", "Bombay House", "Corporate Office", "Mumbai",
		"Tata Steel Plant, Jamshedpur", "Jamshedpur", "Manufacturing Plant",
		"SUP001", "Speedway Logistics", "VEH001", "DL1GC1234", "Ramesh Yadav", "9876543222",
		"Truck", "32FT Sxl", "12 Ton", "Single",
		time.Date(2025, 4, 25, 0, 0, 0, 0, time.UTC), "09:00",
		"15000.00", false, "12000.00", "40.00",
		"4800.00", "7200.00", "3000.00",
		[]byte(`{"name":"Amit Verma","phone":"9876543225","email":""}`), true,
		"In Transit", "Paid", "Not Started", false, "Accepted",
		nil, nil, created, nil,
	}
}

func TestPostgresCreateTripWritesChildren(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO trip\\(").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO trip_material").
		WithArgs("T1", 0, "Steel Coils", sqlmock.AnyArg(), "MT", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO trip_document").
		WithArgs("D1", "T1", "LR", "LR12345678", "lr.pdf", "", sqlmock.AnyArg(), nil).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	trip := sampleTrip()
	if err := NewPostgresTripRepo(db).CreateTrip(context.Background(), trip); err != nil {
		t.Fatalf("CreateTrip: %v", err)
	}
	if trip.CreatedAt.IsZero() {
		t.Fatal("created_at not set")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPostgresUpdateMissingTripRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE trip SET").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err = NewPostgresTripRepo(db).UpdateTrip(context.Background(), sampleTrip())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPostgresUpdateTripRefreshesChildren(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE trip SET").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM trip_material").WithArgs("T1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM trip_document").WithArgs("T1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO trip_material").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO trip_document").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	trip := sampleTrip()
	if err := NewPostgresTripRepo(db).UpdateTrip(context.Background(), trip); err != nil {
		t.Fatalf("UpdateTrip: %v", err)
	}
	if trip.UpdatedAt == nil {
		t.Fatal("updated_at not set")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPostgresGetTripLoadsAggregate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	created := time.Date(2025, 4, 20, 10, 30, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT (.+) FROM trip WHERE id=").WithArgs("T1").
		WillReturnRows(sqlmock.NewRows(columns(tripColumns)).AddRow(tripRow("T1", created)...))
	mock.ExpectQuery("FROM trip_material").
		WillReturnRows(sqlmock.NewRows([]string{"trip_id", "name", "weight", "unit", "rate_per_mt"}).
			AddRow("T1", "Steel Coils", "10.000", "MT", "1500.00").
			AddRow("T1", "Textile", "2.500", "MT", "1000.00"))
	mock.ExpectQuery("FROM trip_document").
		WillReturnRows(sqlmock.NewRows([]string{"trip_id", "id", "doc_type", "number", "filename", "url", "upload_date", "expiry_date"}).
			AddRow("T1", "D3", "E-waybill", "EWB123", "ewb.pdf", "", created, time.Date(2025, 4, 26, 0, 0, 0, 0, time.UTC)))

	trip, err := NewPostgresTripRepo(db).GetTrip(context.Background(), "T1")
	if err != nil {
		t.Fatalf("GetTrip: %v", err)
	}
	if len(trip.LRNumbers) != 2 || trip.LRNumbers[1] != "LR2" {
		t.Errorf("lr numbers = %v", trip.LRNumbers)
	}
	if trip.PickupDate != "2025-04-25" {
		t.Errorf("pickup date = %q", trip.PickupDate)
	}
	if !trip.ClientFreight.Equal(decimal.NewFromInt(15000)) || !trip.Margin.Equal(decimal.NewFromInt(3000)) {
		t.Errorf("freight = %s margin = %s", trip.ClientFreight, trip.Margin)
	}
	if trip.Status != domain.StatusInTransit || trip.AdvancePaymentStatus != domain.PaymentPaid {
		t.Errorf("status = %s advance = %s", trip.Status, trip.AdvancePaymentStatus)
	}
	if trip.FieldOps.Name != "Amit Verma" {
		t.Errorf("field ops = %+v", trip.FieldOps)
	}
	if len(trip.Materials) != 2 || !trip.Materials[1].Weight.Equal(decimal.RequireFromString("2.5")) {
		t.Errorf("materials = %+v", trip.Materials)
	}
	if len(trip.Documents) != 1 || trip.Documents[0].ExpiryDate != "2025-04-26" {
		t.Errorf("documents = %+v", trip.Documents)
	}
	if trip.LRCopyURL != nil || trip.UpdatedAt != nil {
		t.Errorf("nullable columns should stay nil")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPostgresGetTripNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM trip WHERE order_number=").WithArgs("FTL-X").
		WillReturnRows(sqlmock.NewRows(columns(tripColumns)))

	_, err = NewPostgresTripRepo(db).GetTripByOrderNumber(context.Background(), "FTL-X")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPostgresUpdateLRCopy(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	at := time.Date(2025, 4, 21, 8, 0, 0, 0, time.UTC)
	mock.ExpectExec("UPDATE trip").WithArgs("https://cdn/lr.pdf", at, "T1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE trip").WithArgs("https://cdn/lr.pdf", at, "T2").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewPostgresTripRepo(db)
	if err := repo.UpdateLRCopy(context.Background(), "T1", "https://cdn/lr.pdf", at); err != nil {
		t.Fatalf("UpdateLRCopy: %v", err)
	}
	if err := repo.UpdateLRCopy(context.Background(), "T2", "https://cdn/lr.pdf", at); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
