package models

import "time"

type Vehicle struct {
	ID                 string `json:"id" bson:"_id" db:"id"`
	RegistrationNumber string `json:"registration_number" bson:"registration_number" db:"registration_number" validate:"required"`
	SupplierID         string `json:"supplier_id" bson:"supplier_id" db:"supplier_id" validate:"required"`
	SupplierName       string `json:"supplier_name" bson:"supplier_name" db:"supplier_name"`
	VehicleType        string `json:"vehicle_type" bson:"vehicle_type" db:"vehicle_type"`
	VehicleSize        string `json:"vehicle_size" bson:"vehicle_size" db:"vehicle_size"`
	VehicleCapacity    string `json:"vehicle_capacity" bson:"vehicle_capacity" db:"vehicle_capacity"`
	AxleType           string `json:"axle_type" bson:"axle_type" db:"axle_type"`
	DriverName         string `json:"driver_name" bson:"driver_name" db:"driver_name"`
	DriverPhone        string `json:"driver_phone" bson:"driver_phone" db:"driver_phone"`
	// YYYY-MM-DD
	InsuranceExpiry   string `json:"insurance_expiry" bson:"insurance_expiry" db:"insurance_expiry" validate:"omitempty,datetime=2006-01-02"`
	DocumentsUploaded bool   `json:"documents_uploaded" bson:"documents_uploaded" db:"documents_uploaded"`

	// Derived on read, never stored.
	InsuranceExpiringSoon bool `json:"insurance_expiring_soon" bson:"-" db:"-"`

	CreatedAt time.Time  `json:"created_at" bson:"created_at" db:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty" bson:"updated_at,omitempty" db:"updated_at"`
}
