package repository

import (
	"context"
	"errors"
	"time"

	"freightflow/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

type ClientRepository interface {
	CreateClient(ctx context.Context, c *models.Client) error
	UpdateClient(ctx context.Context, c *models.Client) error
	GetClient(ctx context.Context, id string) (*models.Client, error)
	ListClients(ctx context.Context) ([]*models.Client, error)
	DeleteClient(ctx context.Context, id string) error
}

type SupplierRepository interface {
	CreateSupplier(ctx context.Context, s *models.Supplier) error
	UpdateSupplier(ctx context.Context, s *models.Supplier) error
	GetSupplier(ctx context.Context, id string) (*models.Supplier, error)
	ListSuppliers(ctx context.Context) ([]*models.Supplier, error)
	DeleteSupplier(ctx context.Context, id string) error
}

type VehicleRepository interface {
	CreateVehicle(ctx context.Context, v *models.Vehicle) error
	UpdateVehicle(ctx context.Context, v *models.Vehicle) error
	GetVehicle(ctx context.Context, id string) (*models.Vehicle, error)
	ListVehicles(ctx context.Context) ([]*models.Vehicle, error)
	ListVehiclesBySupplier(ctx context.Context, supplierID string) ([]*models.Vehicle, error)
	DeleteVehicle(ctx context.Context, id string) error
}

// TripRepository stores confirmed trips with their materials and documents.
// UpdateTrip replaces the whole aggregate; the last write wins.
type TripRepository interface {
	CreateTrip(ctx context.Context, t *models.Trip) error
	UpdateTrip(ctx context.Context, t *models.Trip) error
	GetTrip(ctx context.Context, id string) (*models.Trip, error)
	GetTripByOrderNumber(ctx context.Context, orderNumber string) (*models.Trip, error)
	ListTrips(ctx context.Context) ([]*models.Trip, error)
	ListTripsBySupplier(ctx context.Context, supplierID string) ([]*models.Trip, error)
	UpdateLRCopy(ctx context.Context, id, url string, createdAt time.Time) error
	DeleteTrip(ctx context.Context, id string) error
}

// ProfileRepository keeps the carrier's letterhead. Only the latest saved
// profile is used.
type ProfileRepository interface {
	SaveProfile(ctx context.Context, p *models.CompanyProfile) error
	GetProfile(ctx context.Context) (*models.CompanyProfile, error)
}
