package repository

import (
	"context"
	"strings"
	"time"

	"freightflow/models"
)

type MemoryVehicleRepo struct {
	t *memTable[models.Vehicle]
}

func NewMemoryVehicleRepo() *MemoryVehicleRepo {
	return &MemoryVehicleRepo{t: newMemTable(shallow[models.Vehicle], func(v *models.Vehicle) time.Time { return v.CreatedAt })}
}

func (r *MemoryVehicleRepo) CreateVehicle(_ context.Context, v *models.Vehicle) error {
	if v.CreatedAt.IsZero() {
		v.CreatedAt = time.Now().UTC()
	}
	return r.t.insert(v.ID, v, func(stored, v *models.Vehicle) bool {
		return strings.EqualFold(stored.RegistrationNumber, v.RegistrationNumber)
	})
}

func (r *MemoryVehicleRepo) UpdateVehicle(_ context.Context, v *models.Vehicle) error {
	return r.t.replace(v.ID, v)
}

func (r *MemoryVehicleRepo) GetVehicle(_ context.Context, id string) (*models.Vehicle, error) {
	return r.t.get(id)
}

func (r *MemoryVehicleRepo) ListVehicles(_ context.Context) ([]*models.Vehicle, error) {
	return r.t.find(nil), nil
}

func (r *MemoryVehicleRepo) ListVehiclesBySupplier(_ context.Context, supplierID string) ([]*models.Vehicle, error) {
	return r.t.find(func(v *models.Vehicle) bool { return v.SupplierID == supplierID }), nil
}

func (r *MemoryVehicleRepo) DeleteVehicle(_ context.Context, id string) error {
	return r.t.remove(id)
}
