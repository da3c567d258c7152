package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"freightflow/config"
	"freightflow/domain"
	"freightflow/models"
	"freightflow/repository"
	"freightflow/utils"
)

// BookingService turns booking drafts into confirmed trips.
type BookingService struct {
	Clients   repository.ClientRepository
	Suppliers repository.SupplierRepository
	Vehicles  repository.VehicleRepository
	Trips     repository.TripRepository
	Catalog   *config.Catalog
	Orders    *domain.OrderNumbers

	Now   func() time.Time
	NewID func() string
}

func NewBookingService(
	clients repository.ClientRepository,
	suppliers repository.SupplierRepository,
	vehicles repository.VehicleRepository,
	trips repository.TripRepository,
	catalog *config.Catalog,
) *BookingService {
	if catalog == nil {
		catalog = config.DefaultCatalog()
	}
	return &BookingService{
		Clients:   clients,
		Suppliers: suppliers,
		Vehicles:  vehicles,
		Trips:     trips,
		Catalog:   catalog,
		Orders:    &domain.OrderNumbers{},
		Now:       defaultNow,
		NewID:     newID,
	}
}

// Quote is the computed side of a draft.
type Quote struct {
	ClientFreight          decimal.Decimal `json:"client_freight"`
	ComputedClientFreight  decimal.Decimal `json:"computed_client_freight"`
	FreightOverridden      bool            `json:"client_freight_overridden"`
	SupplierFreight        decimal.Decimal `json:"supplier_freight"`
	AdvancePercentage      decimal.Decimal `json:"advance_percentage"`
	AdvanceSupplierFreight decimal.Decimal `json:"advance_supplier_freight"`
	BalanceSupplierFreight decimal.Decimal `json:"balance_supplier_freight"`
	Margin                 decimal.Decimal `json:"margin"`
}

// Quote recomputes the derived fields of d in place and returns them. Nothing
// is persisted.
func (s *BookingService) Quote(d *domain.Draft) (Quote, error) {
	if err := d.Recompute(); err != nil {
		return Quote{}, err
	}
	computed, err := d.ComputedClientFreight()
	if err != nil {
		return Quote{}, err
	}
	return Quote{
		ClientFreight:          d.ClientFreight,
		ComputedClientFreight:  computed,
		FreightOverridden:      d.FreightOverridden,
		SupplierFreight:        d.SupplierFreight,
		AdvancePercentage:      d.AdvancePercentage,
		AdvanceSupplierFreight: d.AdvanceSupplierFreight,
		BalanceSupplierFreight: d.BalanceSupplierFreight,
		Margin:                 d.Margin(),
	}, nil
}

// ConfirmBooking validates the draft, resolves its references and stores a
// new trip. The caller's draft is not modified.
func (s *BookingService) ConfirmBooking(ctx context.Context, draft *domain.Draft) (*models.Trip, error) {
	d := *draft
	v := &domain.ValidationError{}
	v.Merge("materials", d.Recompute())

	client, err := s.resolveClient(ctx, d.ClientID, v)
	if err != nil {
		return nil, err
	}
	supplier, err := s.resolveSupplier(ctx, d.SupplierID, v)
	if err != nil {
		return nil, err
	}
	if err := s.applyVehicle(ctx, &d, v); err != nil {
		return nil, err
	}

	v.Merge("draft", d.Validate())
	s.checkCatalog(&d, v)
	if err := v.OrNil(); err != nil {
		return nil, err
	}

	now := s.Now()
	trip := &models.Trip{
		ID:          s.NewID(),
		OrderNumber: s.Orders.Next(now),
		LRNumbers:   trimAll(d.LRNumbers),

		ClientID:          client.ID,
		ClientName:        client.Name,
		ClientAddress:     client.Address,
		ClientAddressType: client.AddressType,
		ClientCity:        client.City,

		DestinationAddress:     d.DestinationAddress,
		DestinationCity:        d.DestinationCity,
		DestinationAddressType: d.DestinationAddressType,

		SupplierID:      supplier.ID,
		SupplierName:    supplier.Name,
		VehicleID:       d.VehicleID,
		VehicleNumber:   d.VehicleNumber,
		DriverName:      d.DriverName,
		DriverPhone:     d.DriverPhone,
		VehicleType:     d.VehicleType,
		VehicleSize:     d.VehicleSize,
		VehicleCapacity: d.VehicleCapacity,
		AxleType:        d.AxleType,

		Materials:  append([]domain.Material(nil), d.Materials...),
		PickupDate: d.PickupDate,
		PickupTime: d.PickupTime,

		ClientFreight:          d.ClientFreight,
		FreightOverridden:      d.FreightOverridden,
		SupplierFreight:        d.SupplierFreight,
		AdvancePercentage:      d.AdvancePercentage,
		AdvanceSupplierFreight: d.AdvanceSupplierFreight,
		BalanceSupplierFreight: d.BalanceSupplierFreight,
		Margin:                 d.Margin(),

		Documents:   []models.Document{},
		FieldOps:    d.FieldOps,
		GSMTracking: d.GSMTracking,

		Status:               domain.StatusBooked,
		AdvancePaymentStatus: domain.InitialPaymentStatus(domain.TrackAdvance),
		BalancePaymentStatus: domain.InitialPaymentStatus(domain.TrackBalance),
		Acceptance:           domain.AcceptanceAssigned,
		CreatedAt:            now,
	}

	if err := s.Trips.CreateTrip(ctx, trip); err != nil {
		return nil, fmt.Errorf("create trip: %w", err)
	}
	utils.LogCtx(ctx, "booking", "confirm", fmt.Sprintf("trip_id=%s order=%s client=%s supplier=%s",
		trip.ID, trip.OrderNumber, trip.ClientID, trip.SupplierID))
	return trip, nil
}

func (s *BookingService) resolveClient(ctx context.Context, id string, v *domain.ValidationError) (*models.Client, error) {
	if strings.TrimSpace(id) == "" {
		return &models.Client{}, nil // reported by Validate
	}
	c, err := s.Clients.GetClient(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		v.Add("client_id", "unknown client", domain.ErrUnknownValue)
		return &models.Client{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get client %s: %w", id, err)
	}
	return c, nil
}

func (s *BookingService) resolveSupplier(ctx context.Context, id string, v *domain.ValidationError) (*models.Supplier, error) {
	if strings.TrimSpace(id) == "" {
		return &models.Supplier{}, nil
	}
	sup, err := s.Suppliers.GetSupplier(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		v.Add("supplier_id", "unknown supplier", domain.ErrUnknownValue)
		return &models.Supplier{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get supplier %s: %w", id, err)
	}
	return sup, nil
}

// applyVehicle fills the vehicle snapshot from the registered vehicle.
// Values typed into the draft win over the registered ones.
func (s *BookingService) applyVehicle(ctx context.Context, d *domain.Draft, v *domain.ValidationError) error {
	if strings.TrimSpace(d.VehicleID) == "" {
		return nil
	}
	veh, err := s.Vehicles.GetVehicle(ctx, d.VehicleID)
	if errors.Is(err, repository.ErrNotFound) {
		v.Add("vehicle_id", "unknown vehicle", domain.ErrUnknownValue)
		return nil
	}
	if err != nil {
		return fmt.Errorf("get vehicle %s: %w", d.VehicleID, err)
	}
	if d.SupplierID != "" && veh.SupplierID != d.SupplierID {
		v.Add("vehicle_id", "vehicle does not belong to the selected supplier", domain.ErrUnknownValue)
	}

	fill := func(dst *string, src string) {
		if strings.TrimSpace(*dst) == "" {
			*dst = src
		}
	}
	fill(&d.VehicleNumber, veh.RegistrationNumber)
	fill(&d.DriverName, veh.DriverName)
	fill(&d.DriverPhone, veh.DriverPhone)
	fill(&d.VehicleType, veh.VehicleType)
	fill(&d.VehicleSize, veh.VehicleSize)
	fill(&d.VehicleCapacity, veh.VehicleCapacity)
	fill(&d.AxleType, veh.AxleType)
	return nil
}

func (s *BookingService) checkCatalog(d *domain.Draft, v *domain.ValidationError) {
	for i, m := range d.Materials {
		if m.Name != "" && !s.Catalog.HasMaterial(m.Name) {
			v.Add(fmt.Sprintf("materials[%d].name", i), fmt.Sprintf("unknown material %q", m.Name), domain.ErrUnknownValue)
		}
	}
	checks := []struct {
		field, value string
		ok           func(string) bool
	}{
		{"vehicle_type", d.VehicleType, s.Catalog.HasVehicleType},
		{"vehicle_size", d.VehicleSize, s.Catalog.HasVehicleSize},
		{"vehicle_capacity", d.VehicleCapacity, s.Catalog.HasVehicleCapacity},
		{"axle_type", d.AxleType, s.Catalog.HasAxleType},
		{"destination_address_type", d.DestinationAddressType, s.Catalog.HasAddressType},
	}
	for _, c := range checks {
		if c.value != "" && !c.ok(c.value) {
			v.Add(c.field, fmt.Sprintf("unknown value %q", c.value), domain.ErrUnknownValue)
		}
	}
}

func trimAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.TrimSpace(s)
	}
	return out
}
