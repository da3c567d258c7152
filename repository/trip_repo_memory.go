package repository

import (
	"context"
	"time"

	"freightflow/models"
)

type MemoryTripRepo struct {
	t *memTable[models.Trip]
}

func NewMemoryTripRepo() *MemoryTripRepo {
	return &MemoryTripRepo{t: newMemTable((*models.Trip).Clone, func(t *models.Trip) time.Time { return t.CreatedAt })}
}

func (r *MemoryTripRepo) CreateTrip(_ context.Context, t *models.Trip) error {
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	return r.t.insert(t.ID, t, func(stored, t *models.Trip) bool {
		return stored.OrderNumber == t.OrderNumber
	})
}

func (r *MemoryTripRepo) UpdateTrip(_ context.Context, t *models.Trip) error {
	return r.t.replace(t.ID, t)
}

func (r *MemoryTripRepo) GetTrip(_ context.Context, id string) (*models.Trip, error) {
	return r.t.get(id)
}

func (r *MemoryTripRepo) GetTripByOrderNumber(_ context.Context, orderNumber string) (*models.Trip, error) {
	found := r.t.find(func(t *models.Trip) bool { return t.OrderNumber == orderNumber })
	if len(found) == 0 {
		return nil, ErrNotFound
	}
	return found[0], nil
}

func (r *MemoryTripRepo) ListTrips(_ context.Context) ([]*models.Trip, error) {
	return r.t.find(nil), nil
}

func (r *MemoryTripRepo) ListTripsBySupplier(_ context.Context, supplierID string) ([]*models.Trip, error) {
	return r.t.find(func(t *models.Trip) bool { return t.SupplierID == supplierID }), nil
}

func (r *MemoryTripRepo) UpdateLRCopy(_ context.Context, id, url string, createdAt time.Time) error {
	return r.t.modify(id, func(t *models.Trip) {
		t.LRCopyURL = &url
		t.LRCopyCreatedAt = &createdAt
	})
}

func (r *MemoryTripRepo) DeleteTrip(_ context.Context, id string) error {
	return r.t.remove(id)
}
