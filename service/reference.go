package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"freightflow/config"
	"freightflow/domain"
	"freightflow/models"
	"freightflow/repository"
	"freightflow/utils"
)

// ReferenceService maintains clients, suppliers, vehicles and the company
// profile.
type ReferenceService struct {
	Clients   repository.ClientRepository
	Suppliers repository.SupplierRepository
	Vehicles  repository.VehicleRepository
	Profiles  repository.ProfileRepository
	Catalog   *config.Catalog

	// InsuranceWarningDays is the "expiring soon" window.
	InsuranceWarningDays int

	Now   func() time.Time
	NewID func() string
}

func NewReferenceService(
	clients repository.ClientRepository,
	suppliers repository.SupplierRepository,
	vehicles repository.VehicleRepository,
	profiles repository.ProfileRepository,
	catalog *config.Catalog,
) *ReferenceService {
	if catalog == nil {
		catalog = config.DefaultCatalog()
	}
	return &ReferenceService{
		Clients:              clients,
		Suppliers:            suppliers,
		Vehicles:             vehicles,
		Profiles:             profiles,
		Catalog:              catalog,
		InsuranceWarningDays: domain.InsuranceWarningDays,
		Now:                  defaultNow,
		NewID:                newID,
	}
}

func checkVocabulary(v *domain.ValidationError, field, value string, ok func(string) bool) {
	if value != "" && !ok(value) {
		v.Add(field, fmt.Sprintf("unknown value %q", value), domain.ErrUnknownValue)
	}
}

// ------------------------ Clients ------------------------

func (s *ReferenceService) checkClient(c *models.Client) error {
	v := &domain.ValidationError{}
	v.Merge("client", ValidateStruct(c))
	checkVocabulary(v, "address_type", c.AddressType, s.Catalog.HasAddressType)
	checkVocabulary(v, "invoicing_type", c.InvoicingType, s.Catalog.HasInvoicingType)
	return v.OrNil()
}

func (s *ReferenceService) CreateClient(ctx context.Context, c *models.Client) (*models.Client, error) {
	if err := s.checkClient(c); err != nil {
		return nil, err
	}
	c.ID = s.NewID()
	c.CreatedAt = s.Now()
	c.UpdatedAt = nil
	if err := s.Clients.CreateClient(ctx, c); err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}
	utils.LogCtx(ctx, "reference", "create_client", "client_id="+c.ID)
	return c, nil
}

// UpdateClient replaces the client's details. Existing trips keep their
// snapshot of the old values.
func (s *ReferenceService) UpdateClient(ctx context.Context, id string, c *models.Client) (*models.Client, error) {
	existing, err := s.Clients.GetClient(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkClient(c); err != nil {
		return nil, err
	}
	now := s.Now()
	c.ID, c.CreatedAt, c.UpdatedAt = id, existing.CreatedAt, &now
	if err := s.Clients.UpdateClient(ctx, c); err != nil {
		return nil, fmt.Errorf("update client %s: %w", id, err)
	}
	return c, nil
}

func (s *ReferenceService) GetClient(ctx context.Context, id string) (*models.Client, error) {
	return s.Clients.GetClient(ctx, id)
}

func (s *ReferenceService) SearchClients(ctx context.Context, q string) ([]*models.Client, error) {
	list, err := s.Clients.ListClients(ctx)
	if err != nil {
		return nil, err
	}
	return filter(list, MatchClient(q)), nil
}

func (s *ReferenceService) DeleteClient(ctx context.Context, id string) error {
	return s.Clients.DeleteClient(ctx, id)
}

// ------------------------ Suppliers ------------------------

func (s *ReferenceService) CreateSupplier(ctx context.Context, sup *models.Supplier) (*models.Supplier, error) {
	if err := ValidateStruct(sup); err != nil {
		return nil, err
	}
	sup.ID = s.NewID()
	sup.CreatedAt = s.Now()
	sup.UpdatedAt = nil
	if err := s.Suppliers.CreateSupplier(ctx, sup); err != nil {
		return nil, fmt.Errorf("create supplier: %w", err)
	}
	utils.LogCtx(ctx, "reference", "create_supplier", "supplier_id="+sup.ID)
	return sup, nil
}

func (s *ReferenceService) UpdateSupplier(ctx context.Context, id string, sup *models.Supplier) (*models.Supplier, error) {
	existing, err := s.Suppliers.GetSupplier(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := ValidateStruct(sup); err != nil {
		return nil, err
	}
	now := s.Now()
	sup.ID, sup.CreatedAt, sup.UpdatedAt = id, existing.CreatedAt, &now
	if err := s.Suppliers.UpdateSupplier(ctx, sup); err != nil {
		return nil, fmt.Errorf("update supplier %s: %w", id, err)
	}
	return sup, nil
}

func (s *ReferenceService) GetSupplier(ctx context.Context, id string) (*models.Supplier, error) {
	return s.Suppliers.GetSupplier(ctx, id)
}

func (s *ReferenceService) SearchSuppliers(ctx context.Context, q string) ([]*models.Supplier, error) {
	list, err := s.Suppliers.ListSuppliers(ctx)
	if err != nil {
		return nil, err
	}
	return filter(list, MatchSupplier(q)), nil
}

func (s *ReferenceService) DeleteSupplier(ctx context.Context, id string) error {
	return s.Suppliers.DeleteSupplier(ctx, id)
}

// ------------------------ Vehicles ------------------------

func (s *ReferenceService) checkVehicle(ctx context.Context, veh *models.Vehicle) error {
	v := &domain.ValidationError{}
	v.Merge("vehicle", ValidateStruct(veh))
	checkVocabulary(v, "vehicle_type", veh.VehicleType, s.Catalog.HasVehicleType)
	checkVocabulary(v, "vehicle_size", veh.VehicleSize, s.Catalog.HasVehicleSize)
	checkVocabulary(v, "vehicle_capacity", veh.VehicleCapacity, s.Catalog.HasVehicleCapacity)
	checkVocabulary(v, "axle_type", veh.AxleType, s.Catalog.HasAxleType)

	if veh.SupplierID != "" {
		sup, err := s.Suppliers.GetSupplier(ctx, veh.SupplierID)
		switch {
		case errors.Is(err, repository.ErrNotFound):
			v.Add("supplier_id", "unknown supplier", domain.ErrUnknownValue)
		case err != nil:
			return fmt.Errorf("get supplier %s: %w", veh.SupplierID, err)
		default:
			veh.SupplierName = sup.Name
		}
	}
	return v.OrNil()
}

// withInsuranceFlag sets InsuranceExpiringSoon relative to today.
func (s *ReferenceService) withInsuranceFlag(veh *models.Vehicle) *models.Vehicle {
	veh.InsuranceExpiringSoon = false
	if veh.InsuranceExpiry == "" {
		return veh
	}
	expiry, err := time.Parse(domain.PickupDateLayout, veh.InsuranceExpiry)
	if err != nil {
		return veh
	}
	veh.InsuranceExpiringSoon = domain.InsuranceExpiringSoon(expiry, s.Now(), s.InsuranceWarningDays)
	return veh
}

func (s *ReferenceService) CreateVehicle(ctx context.Context, veh *models.Vehicle) (*models.Vehicle, error) {
	veh.RegistrationNumber = strings.ToUpper(strings.TrimSpace(veh.RegistrationNumber))
	if err := s.checkVehicle(ctx, veh); err != nil {
		return nil, err
	}
	veh.ID = s.NewID()
	veh.CreatedAt = s.Now()
	veh.UpdatedAt = nil
	if err := s.Vehicles.CreateVehicle(ctx, veh); err != nil {
		return nil, fmt.Errorf("create vehicle %s: %w", veh.RegistrationNumber, err)
	}
	utils.LogCtx(ctx, "reference", "create_vehicle", fmt.Sprintf("vehicle_id=%s reg=%s", veh.ID, veh.RegistrationNumber))
	return s.withInsuranceFlag(veh), nil
}

func (s *ReferenceService) UpdateVehicle(ctx context.Context, id string, veh *models.Vehicle) (*models.Vehicle, error) {
	existing, err := s.Vehicles.GetVehicle(ctx, id)
	if err != nil {
		return nil, err
	}
	veh.RegistrationNumber = strings.ToUpper(strings.TrimSpace(veh.RegistrationNumber))
	if err := s.checkVehicle(ctx, veh); err != nil {
		return nil, err
	}
	now := s.Now()
	veh.ID, veh.CreatedAt, veh.UpdatedAt = id, existing.CreatedAt, &now
	if err := s.Vehicles.UpdateVehicle(ctx, veh); err != nil {
		return nil, fmt.Errorf("update vehicle %s: %w", id, err)
	}
	return s.withInsuranceFlag(veh), nil
}

func (s *ReferenceService) GetVehicle(ctx context.Context, id string) (*models.Vehicle, error) {
	veh, err := s.Vehicles.GetVehicle(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.withInsuranceFlag(veh), nil
}

func (s *ReferenceService) SearchVehicles(ctx context.Context, q string) ([]*models.Vehicle, error) {
	list, err := s.Vehicles.ListVehicles(ctx)
	if err != nil {
		return nil, err
	}
	out := filter(list, MatchVehicle(q))
	for _, veh := range out {
		s.withInsuranceFlag(veh)
	}
	return out, nil
}

func (s *ReferenceService) SupplierVehicles(ctx context.Context, supplierID string) ([]*models.Vehicle, error) {
	list, err := s.Vehicles.ListVehiclesBySupplier(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	for _, veh := range list {
		s.withInsuranceFlag(veh)
	}
	return list, nil
}

func (s *ReferenceService) DeleteVehicle(ctx context.Context, id string) error {
	return s.Vehicles.DeleteVehicle(ctx, id)
}

// ExpiringInsurance lists vehicles whose insurance lapses within the warning
// window, including those already lapsed.
func (s *ReferenceService) ExpiringInsurance(ctx context.Context) ([]*models.Vehicle, error) {
	list, err := s.SearchVehicles(ctx, "")
	if err != nil {
		return nil, err
	}
	return filter(list, func(v *models.Vehicle) bool { return v.InsuranceExpiringSoon }), nil
}

func (s *ReferenceService) modifyVehicle(ctx context.Context, id, action string, fn func(v *models.Vehicle) error) (*models.Vehicle, error) {
	veh, err := s.Vehicles.GetVehicle(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(veh); err != nil {
		return nil, err
	}
	now := s.Now()
	veh.UpdatedAt = &now
	if err := s.Vehicles.UpdateVehicle(ctx, veh); err != nil {
		return nil, fmt.Errorf("update vehicle %s: %w", id, err)
	}
	utils.LogCtx(ctx, "reference", action, fmt.Sprintf("vehicle_id=%s reg=%s", veh.ID, veh.RegistrationNumber))
	return s.withInsuranceFlag(veh), nil
}

// ReassignVehicle moves the vehicle to another supplier.
func (s *ReferenceService) ReassignVehicle(ctx context.Context, id, supplierID string) (*models.Vehicle, error) {
	return s.modifyVehicle(ctx, id, "reassign_vehicle", func(veh *models.Vehicle) error {
		if strings.TrimSpace(supplierID) == "" {
			return domain.NewValidationError("supplier_id", "is required", domain.ErrRequired)
		}
		sup, err := s.Suppliers.GetSupplier(ctx, supplierID)
		if errors.Is(err, repository.ErrNotFound) {
			return domain.NewValidationError("supplier_id", "unknown supplier", domain.ErrUnknownValue)
		}
		if err != nil {
			return fmt.Errorf("get supplier %s: %w", supplierID, err)
		}
		veh.SupplierID, veh.SupplierName = sup.ID, sup.Name
		return nil
	})
}

// RenewInsurance records a new insurance expiry date (YYYY-MM-DD).
func (s *ReferenceService) RenewInsurance(ctx context.Context, id, expiry string) (*models.Vehicle, error) {
	return s.modifyVehicle(ctx, id, "renew_insurance", func(veh *models.Vehicle) error {
		if _, err := time.Parse(domain.PickupDateLayout, expiry); err != nil {
			return domain.NewValidationError("insurance_expiry", "must be a date in YYYY-MM-DD format", err)
		}
		veh.InsuranceExpiry = expiry
		return nil
	})
}

func (s *ReferenceService) MarkVehicleDocumentsUploaded(ctx context.Context, id string) (*models.Vehicle, error) {
	return s.modifyVehicle(ctx, id, "vehicle_documents", func(veh *models.Vehicle) error {
		veh.DocumentsUploaded = true
		return nil
	})
}

// ------------------------ Company profile ------------------------

func (s *ReferenceService) GetProfile(ctx context.Context) (*models.CompanyProfile, error) {
	return s.Profiles.GetProfile(ctx)
}

func (s *ReferenceService) SaveProfile(ctx context.Context, p *models.CompanyProfile) (*models.CompanyProfile, error) {
	if err := ValidateStruct(p); err != nil {
		return nil, err
	}
	if existing, err := s.Profiles.GetProfile(ctx); err == nil {
		p.ID = existing.ID
		p.CreatedAt = existing.CreatedAt
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = s.Now()
	}
	if err := s.Profiles.SaveProfile(ctx, p); err != nil {
		return nil, fmt.Errorf("save company profile: %w", err)
	}
	utils.LogCtx(ctx, "reference", "save_profile", "company="+p.CompanyName)
	return p, nil
}
