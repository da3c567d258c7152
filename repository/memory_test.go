package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"freightflow/models"
)

func TestMemoryTripRepoCopiesOnReadAndWrite(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryTripRepo()
	trip := sampleTrip()
	if err := repo.CreateTrip(ctx, trip); err != nil {
		t.Fatalf("CreateTrip: %v", err)
	}

	// caller mutations after the write must not leak into the store
	trip.LRNumbers[0] = "CHANGED"
	trip.Materials[0].Name = "CHANGED"

	got, err := repo.GetTrip(ctx, "T1")
	if err != nil {
		t.Fatalf("GetTrip: %v", err)
	}
	if got.LRNumbers[0] != "LR12345678" || got.Materials[0].Name != "Steel Coils" {
		t.Fatalf("store shares state with caller: %+v", got)
	}

	got.Documents[0].Number = "CHANGED"
	again, _ := repo.GetTrip(ctx, "T1")
	if again.Documents[0].Number != "LR12345678" {
		t.Fatal("store shares state with reader")
	}
}

func TestMemoryTripRepoErrors(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryTripRepo()
	if err := repo.CreateTrip(ctx, sampleTrip()); err != nil {
		t.Fatal(err)
	}

	dup := sampleTrip()
	dup.ID = "T2"
	if err := repo.CreateTrip(ctx, dup); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("duplicate order number: got %v", err)
	}
	if _, err := repo.GetTrip(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("get missing: got %v", err)
	}
	missing := sampleTrip()
	missing.ID = "nope"
	if err := repo.UpdateTrip(ctx, missing); !errors.Is(err, ErrNotFound) {
		t.Fatalf("update missing: got %v", err)
	}
	if err := repo.DeleteTrip(ctx, "T1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := repo.DeleteTrip(ctx, "T1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("delete twice: got %v", err)
	}
}

func TestMemoryTripRepoListsNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryTripRepo()
	base := time.Date(2025, 4, 20, 10, 0, 0, 0, time.UTC)
	for i, id := range []string{"A", "B", "C"} {
		tr := sampleTrip()
		tr.ID = id
		tr.OrderNumber = "FTL-" + id
		tr.CreatedAt = base.Add(time.Duration(i) * time.Hour)
		if id == "B" {
			tr.SupplierID = "SUP002"
		}
		if err := repo.CreateTrip(ctx, tr); err != nil {
			t.Fatal(err)
		}
	}

	all, _ := repo.ListTrips(ctx)
	if len(all) != 3 || all[0].ID != "C" || all[2].ID != "A" {
		t.Fatalf("order = %v", ids(all))
	}
	bySupplier, _ := repo.ListTripsBySupplier(ctx, "SUP001")
	if len(bySupplier) != 2 || bySupplier[0].ID != "C" {
		t.Fatalf("by supplier = %v", ids(bySupplier))
	}
	byOrder, err := repo.GetTripByOrderNumber(ctx, "FTL-B")
	if err != nil || byOrder.ID != "B" {
		t.Fatalf("by order number = %v %v", byOrder, err)
	}
}

func TestMemoryTripRepoUpdateLRCopy(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryTripRepo()
	if err := repo.CreateTrip(ctx, sampleTrip()); err != nil {
		t.Fatal(err)
	}
	at := time.Date(2025, 4, 21, 8, 0, 0, 0, time.UTC)
	if err := repo.UpdateLRCopy(ctx, "T1", "file:///tmp/lr.pdf", at); err != nil {
		t.Fatal(err)
	}
	got, _ := repo.GetTrip(ctx, "T1")
	if got.LRCopyURL == nil || *got.LRCopyURL != "file:///tmp/lr.pdf" || !got.LRCopyCreatedAt.Equal(at) {
		t.Fatalf("lr copy = %v %v", got.LRCopyURL, got.LRCopyCreatedAt)
	}
}

func TestMemoryVehicleRegistrationUnique(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryVehicleRepo()
	if err := repo.CreateVehicle(ctx, &models.Vehicle{ID: "V1", RegistrationNumber: "DL1GC1234", SupplierID: "S1"}); err != nil {
		t.Fatal(err)
	}
	err := repo.CreateVehicle(ctx, &models.Vehicle{ID: "V2", RegistrationNumber: "dl1gc1234", SupplierID: "S2"})
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestLRCopyRepositoryBlankProfile(t *testing.T) {
	r := NewLRCopyRepository(NewMemoryTripRepo(), NewMemoryProfileRepo())
	p, err := r.GetProfileForLRCopy(context.Background())
	if err != nil || p == nil {
		t.Fatalf("expected blank profile, got %v %v", p, err)
	}
}

func ids(trips []*models.Trip) []string {
	out := make([]string, len(trips))
	for i, t := range trips {
		out[i] = t.ID
	}
	return out
}
