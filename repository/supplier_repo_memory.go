package repository

import (
	"context"
	"time"

	"freightflow/models"
)

type MemorySupplierRepo struct {
	t *memTable[models.Supplier]
}

func NewMemorySupplierRepo() *MemorySupplierRepo {
	return &MemorySupplierRepo{t: newMemTable(shallow[models.Supplier], func(s *models.Supplier) time.Time { return s.CreatedAt })}
}

func (r *MemorySupplierRepo) CreateSupplier(_ context.Context, s *models.Supplier) error {
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}
	return r.t.insert(s.ID, s, nil)
}

func (r *MemorySupplierRepo) UpdateSupplier(_ context.Context, s *models.Supplier) error {
	return r.t.replace(s.ID, s)
}

func (r *MemorySupplierRepo) GetSupplier(_ context.Context, id string) (*models.Supplier, error) {
	return r.t.get(id)
}

func (r *MemorySupplierRepo) ListSuppliers(_ context.Context) ([]*models.Supplier, error) {
	return r.t.find(nil), nil
}

func (r *MemorySupplierRepo) DeleteSupplier(_ context.Context, id string) error {
	return r.t.remove(id)
}
