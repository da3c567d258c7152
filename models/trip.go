package models

import (
	"time"

	"github.com/shopspring/decimal"

	"freightflow/domain"
)

// Trip is a confirmed booking. Client, supplier and vehicle details are
// copied in at confirmation so later edits to reference data do not rewrite
// history.
type Trip struct {
	ID          string   `json:"id" bson:"_id" db:"id"`
	OrderNumber string   `json:"order_number" bson:"order_number" db:"order_number"`
	LRNumbers   []string `json:"lr_numbers" bson:"lr_numbers" db:"lr_numbers"`

	ClientID          string `json:"client_id" bson:"client_id" db:"client_id"`
	ClientName        string `json:"client_name" bson:"client_name" db:"client_name"`
	ClientAddress     string `json:"client_address" bson:"client_address" db:"client_address"`
	ClientAddressType string `json:"client_address_type" bson:"client_address_type" db:"client_address_type"`
	ClientCity        string `json:"client_city" bson:"client_city" db:"client_city"`

	DestinationAddress     string `json:"destination_address" bson:"destination_address" db:"destination_address"`
	DestinationCity        string `json:"destination_city" bson:"destination_city" db:"destination_city"`
	DestinationAddressType string `json:"destination_address_type" bson:"destination_address_type" db:"destination_address_type"`

	SupplierID      string `json:"supplier_id" bson:"supplier_id" db:"supplier_id"`
	SupplierName    string `json:"supplier_name" bson:"supplier_name" db:"supplier_name"`
	VehicleID       string `json:"vehicle_id" bson:"vehicle_id" db:"vehicle_id"`
	VehicleNumber   string `json:"vehicle_number" bson:"vehicle_number" db:"vehicle_number"`
	DriverName      string `json:"driver_name" bson:"driver_name" db:"driver_name"`
	DriverPhone     string `json:"driver_phone" bson:"driver_phone" db:"driver_phone"`
	VehicleType     string `json:"vehicle_type" bson:"vehicle_type" db:"vehicle_type"`
	VehicleSize     string `json:"vehicle_size" bson:"vehicle_size" db:"vehicle_size"`
	VehicleCapacity string `json:"vehicle_capacity" bson:"vehicle_capacity" db:"vehicle_capacity"`
	AxleType        string `json:"axle_type" bson:"axle_type" db:"axle_type"`

	Materials  []domain.Material `json:"materials" bson:"materials"`
	PickupDate string            `json:"pickup_date" bson:"pickup_date" db:"pickup_date"`
	PickupTime string            `json:"pickup_time" bson:"pickup_time" db:"pickup_time"`

	ClientFreight          decimal.Decimal `json:"client_freight" bson:"client_freight" db:"client_freight"`
	FreightOverridden      bool            `json:"client_freight_overridden" bson:"client_freight_overridden" db:"client_freight_overridden"`
	SupplierFreight        decimal.Decimal `json:"supplier_freight" bson:"supplier_freight" db:"supplier_freight"`
	AdvancePercentage      decimal.Decimal `json:"advance_percentage" bson:"advance_percentage" db:"advance_percentage"`
	AdvanceSupplierFreight decimal.Decimal `json:"advance_supplier_freight" bson:"advance_supplier_freight" db:"advance_supplier_freight"`
	BalanceSupplierFreight decimal.Decimal `json:"balance_supplier_freight" bson:"balance_supplier_freight" db:"balance_supplier_freight"`
	Margin                 decimal.Decimal `json:"margin" bson:"margin" db:"margin"`

	Documents   []Document     `json:"documents" bson:"documents"`
	FieldOps    domain.Contact `json:"field_ops" bson:"field_ops" db:"field_ops"`
	GSMTracking bool           `json:"gsm_tracking" bson:"gsm_tracking" db:"gsm_tracking"`

	Status               domain.TripStatus       `json:"status" bson:"status" db:"status"`
	AdvancePaymentStatus domain.PaymentStatus    `json:"advance_payment_status" bson:"advance_payment_status" db:"advance_payment_status"`
	BalancePaymentStatus domain.PaymentStatus    `json:"balance_payment_status" bson:"balance_payment_status" db:"balance_payment_status"`
	PODUploaded          bool                    `json:"pod_uploaded" bson:"pod_uploaded" db:"pod_uploaded"`
	Acceptance           domain.AcceptanceStatus `json:"acceptance" bson:"acceptance" db:"acceptance"`

	LRCopyURL       *string    `json:"lr_copy_url,omitempty" bson:"lr_copy_url,omitempty" db:"lr_copy_url"`
	LRCopyCreatedAt *time.Time `json:"lr_copy_created_at,omitempty" bson:"lr_copy_created_at,omitempty" db:"lr_copy_created_at"`

	CreatedAt time.Time  `json:"created_at" bson:"created_at" db:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty" bson:"updated_at,omitempty" db:"updated_at"`
}

// PaymentStatus returns the status of one payment track.
func (t *Trip) PaymentStatus(track domain.PaymentTrack) domain.PaymentStatus {
	if track == domain.TrackBalance {
		return t.BalancePaymentStatus
	}
	return t.AdvancePaymentStatus
}

func (t *Trip) SetPaymentStatus(track domain.PaymentTrack, s domain.PaymentStatus) {
	if track == domain.TrackBalance {
		t.BalancePaymentStatus = s
		return
	}
	t.AdvancePaymentStatus = s
}

// Guard collects the facts the trip lifecycle checks before a transition.
func (t *Trip) Guard() domain.TripGuard {
	return domain.TripGuard{
		VehicleAssigned: t.VehicleID != "" || t.VehicleNumber != "",
		DriverAssigned:  t.DriverName != "",
		AdvanceStatus:   t.AdvancePaymentStatus,
		BalanceStatus:   t.BalancePaymentStatus,
	}
}

// Clone returns a copy that shares no slices or pointers with t.
func (t *Trip) Clone() *Trip {
	c := *t
	c.LRNumbers = append([]string(nil), t.LRNumbers...)
	c.Materials = append([]domain.Material(nil), t.Materials...)
	c.Documents = append([]Document(nil), t.Documents...)
	if t.LRCopyURL != nil {
		u := *t.LRCopyURL
		c.LRCopyURL = &u
	}
	if t.LRCopyCreatedAt != nil {
		at := *t.LRCopyCreatedAt
		c.LRCopyCreatedAt = &at
	}
	if t.UpdatedAt != nil {
		at := *t.UpdatedAt
		c.UpdatedAt = &at
	}
	return &c
}
