package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"freightflow/domain"
	"freightflow/models"
)

func TestPostgresClientContactsStoredAsJSON(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	c := &models.Client{
		ID: "CL001", Name: "Tata Steel Ltd", City: "Mumbai", Address: "Bombay House",
		LogisticsPOC: domain.Contact{Name: "Rajesh Kumar", Phone: "9876543210"},
	}
	mock.ExpectExec("INSERT INTO client").
		WithArgs("CL001", "Tata Steel Ltd", "Mumbai", "Bombay House", "", "", "",
			[]byte(`{"name":"Rajesh Kumar","phone":"9876543210","email":""}`),
			sqlmock.AnyArg(), "", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := NewPostgresClientRepo(db).CreateClient(context.Background(), c); err != nil {
		t.Fatalf("CreateClient: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPostgresGetClient(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("FROM client WHERE id=").WithArgs("CL001").
		WillReturnRows(sqlmock.NewRows(columns(clientColumns)).AddRow(
			"CL001", "Tata Steel Ltd", "Mumbai", "Bombay House", "Corporate Office", "27AAACT2727Q1ZW", "AAACT2727Q",
			[]byte(`{"name":"Rajesh Kumar"}`), []byte(`{"name":"Priya Sharma"}`), "GST 18%",
			[]byte(`{"name":"Vikram Singh","designation":"Account Manager"}`), created, nil))
	mock.ExpectQuery("FROM client WHERE id=").WithArgs("CL404").
		WillReturnRows(sqlmock.NewRows(columns(clientColumns)))

	repo := NewPostgresClientRepo(db)
	c, err := repo.GetClient(context.Background(), "CL001")
	if err != nil {
		t.Fatalf("GetClient: %v", err)
	}
	if c.FinancePOC.Name != "Priya Sharma" || c.SalesRep.Designation != "Account Manager" {
		t.Errorf("client = %+v", c)
	}
	if _, err := repo.GetClient(context.Background(), "CL404"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
