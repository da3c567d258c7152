package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// OverridePolicy decides what happens to a manually entered client freight
// when the material list changes.
type OverridePolicy string

const (
	// OverrideSticky keeps the manual value until ResetClientFreight is called.
	OverrideSticky OverridePolicy = "sticky"
	// OverrideRecompute drops the manual value on the next material change.
	OverrideRecompute OverridePolicy = "recompute"
)

func ParseOverridePolicy(s string) (OverridePolicy, error) {
	switch p := OverridePolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return OverrideSticky, nil
	case OverrideSticky, OverrideRecompute:
		return p, nil
	default:
		return "", fmt.Errorf("unknown freight override policy %q", s)
	}
}

// DefaultAdvancePercentage is what a new booking form starts with.
var DefaultAdvancePercentage = decimal.NewFromInt(30)

// PickupDateLayout is the wire format of pickup and expiry dates.
const PickupDateLayout = "2006-01-02"

// Draft is the state of a booking while it is being filled in. It has no
// persisted identity. Every mutating method either applies fully and
// recomputes the derived fields or returns an error and leaves the draft as
// it was.
type Draft struct {
	ClientID   string `json:"client_id"`
	SupplierID string `json:"supplier_id"`
	VehicleID  string `json:"vehicle_id"`

	VehicleNumber   string `json:"vehicle_number"`
	DriverName      string `json:"driver_name"`
	DriverPhone     string `json:"driver_phone"`
	VehicleType     string `json:"vehicle_type"`
	VehicleSize     string `json:"vehicle_size"`
	VehicleCapacity string `json:"vehicle_capacity"`
	AxleType        string `json:"axle_type"`

	DestinationAddress     string `json:"destination_address"`
	DestinationCity        string `json:"destination_city"`
	DestinationAddressType string `json:"destination_address_type"`

	PickupDate string `json:"pickup_date"`
	PickupTime string `json:"pickup_time"`

	Materials []Material `json:"materials"`
	LRNumbers []string   `json:"lr_numbers"`

	ClientFreight     decimal.Decimal `json:"client_freight"`
	FreightOverridden bool            `json:"client_freight_overridden"`
	// LastComputed is the material total the form last showed. A form that
	// posts it back lets Recompute tell whether the materials changed since.
	LastComputed           decimal.NullDecimal `json:"computed_client_freight"`
	SupplierFreight        decimal.Decimal     `json:"supplier_freight"`
	AdvancePercentage      decimal.Decimal     `json:"advance_percentage"`
	AdvanceSupplierFreight decimal.Decimal     `json:"advance_supplier_freight"`
	BalanceSupplierFreight decimal.Decimal     `json:"balance_supplier_freight"`

	FieldOps    Contact `json:"field_ops"`
	GSMTracking bool    `json:"gsm_tracking"`

	Policy OverridePolicy `json:"-"`
}

// NewDraft returns an empty booking form: one blank material line, one blank
// LR number and the default advance percentage.
func NewDraft(policy OverridePolicy) *Draft {
	return &Draft{
		Materials:         []Material{{Unit: UnitMT}},
		LRNumbers:         []string{""},
		AdvancePercentage: DefaultAdvancePercentage,
		GSMTracking:       true,
		Policy:            policy,
	}
}

func (d *Draft) policy() OverridePolicy {
	if d.Policy == "" {
		return OverrideSticky
	}
	return d.Policy
}

// AddMaterial appends a line.
func (d *Draft) AddMaterial(m Material) error {
	if m.Unit == "" {
		m.Unit = UnitMT
	}
	next := append(append([]Material(nil), d.Materials...), m)
	return d.replaceMaterials(next)
}

// UpdateMaterial replaces the line at i.
func (d *Draft) UpdateMaterial(i int, m Material) error {
	if i < 0 || i >= len(d.Materials) {
		return NewValidationError(materialField(i), "no such material line", ErrInvalidMaterial)
	}
	next := append([]Material(nil), d.Materials...)
	next[i] = m
	return d.replaceMaterials(next)
}

// RemoveMaterial drops the line at i. The last remaining line cannot be
// removed.
func (d *Draft) RemoveMaterial(i int) error {
	if i < 0 || i >= len(d.Materials) {
		return NewValidationError(materialField(i), "no such material line", ErrInvalidMaterial)
	}
	if len(d.Materials) == 1 {
		return NewValidationError("materials", "at least one material line is required", ErrRequired)
	}
	next := make([]Material, 0, len(d.Materials)-1)
	next = append(next, d.Materials[:i]...)
	next = append(next, d.Materials[i+1:]...)
	return d.replaceMaterials(next)
}

// SetMaterials replaces the whole material list.
func (d *Draft) SetMaterials(ms []Material) error {
	return d.replaceMaterials(append([]Material(nil), ms...))
}

func (d *Draft) replaceMaterials(next []Material) error {
	total, err := ComputeClientFreight(next)
	if err != nil {
		return err
	}
	d.Materials = next
	if d.FreightOverridden && d.policy() == OverrideRecompute {
		d.FreightOverridden = false
	}
	d.applyTotal(total)
	return nil
}

func (d *Draft) applyTotal(total decimal.Decimal) {
	if !d.FreightOverridden {
		d.ClientFreight = total
	}
	d.LastComputed = decimal.NewNullDecimal(total)
}

// OverrideClientFreight records a manually entered client freight.
func (d *Draft) OverrideClientFreight(v decimal.Decimal) error {
	if v.IsNegative() {
		return NewValidationError("client_freight", "must not be negative", ErrNegativeAmount)
	}
	d.ClientFreight = v
	d.FreightOverridden = true
	return nil
}

// ResetClientFreight discards a manual override and recomputes from the
// material list.
func (d *Draft) ResetClientFreight() error {
	total, err := ComputeClientFreight(d.Materials)
	if err != nil {
		return err
	}
	d.FreightOverridden = false
	d.applyTotal(total)
	return nil
}

// ComputedClientFreight is the material total regardless of any override.
func (d *Draft) ComputedClientFreight() (decimal.Decimal, error) {
	return ComputeClientFreight(d.Materials)
}

func (d *Draft) SetSupplierFreight(v decimal.Decimal) error {
	split, err := ComputeAdvanceBalance(v, d.AdvancePercentage)
	if err != nil {
		return err
	}
	d.SupplierFreight = v
	d.applySplit(split)
	return nil
}

func (d *Draft) SetAdvancePercentage(pct decimal.Decimal) error {
	split, err := ComputeAdvanceBalance(d.SupplierFreight, pct)
	if err != nil {
		return err
	}
	d.AdvancePercentage = pct
	d.applySplit(split)
	return nil
}

func (d *Draft) applySplit(s Split) {
	d.AdvanceSupplierFreight = s.Advance
	d.BalanceSupplierFreight = s.Balance
}

func (d *Draft) AddLRNumber(lr string) {
	d.LRNumbers = append(d.LRNumbers, lr)
}

func (d *Draft) UpdateLRNumber(i int, lr string) error {
	if i < 0 || i >= len(d.LRNumbers) {
		return NewValidationError(lrField(i), "no such LR number", ErrUnknownValue)
	}
	d.LRNumbers[i] = lr
	return nil
}

// RemoveLRNumber drops the LR number at i, keeping at least one entry.
func (d *Draft) RemoveLRNumber(i int) error {
	if i < 0 || i >= len(d.LRNumbers) {
		return NewValidationError(lrField(i), "no such LR number", ErrUnknownValue)
	}
	if len(d.LRNumbers) == 1 {
		return NewValidationError("lr_numbers", "at least one LR number is required", ErrRequired)
	}
	d.LRNumbers = append(d.LRNumbers[:i:i], d.LRNumbers[i+1:]...)
	return nil
}

func lrField(i int) string {
	return fmt.Sprintf("lr_numbers[%d]", i)
}

// Recompute brings every derived field in line with the inputs. It is used
// after a draft has been decoded from a request as a whole. Under
// OverrideRecompute a manual client freight is dropped when LastComputed is
// set and no longer matches the material total.
func (d *Draft) Recompute() error {
	v := &ValidationError{}
	total, err := ComputeClientFreight(d.Materials)
	v.Merge("materials", err)
	if err == nil && d.FreightOverridden && d.policy() == OverrideRecompute &&
		d.LastComputed.Valid && !d.LastComputed.Decimal.Equal(total) {
		d.FreightOverridden = false
	}
	if d.FreightOverridden && d.ClientFreight.IsNegative() {
		v.Add("client_freight", "must not be negative", ErrNegativeAmount)
	}
	if err == nil {
		d.applyTotal(total)
	}
	split, err := ComputeAdvanceBalance(d.SupplierFreight, d.AdvancePercentage)
	v.Merge("supplier_freight", err)
	if err == nil {
		d.applySplit(split)
	}
	return v.OrNil()
}

// Margin is client freight minus supplier freight.
func (d *Draft) Margin() decimal.Decimal {
	return Margin(d.ClientFreight, d.SupplierFreight)
}

// Validate applies the confirmation rules: required references and
// addresses, at least one complete material line, at least one LR number and
// non-zero freight on both sides.
func (d *Draft) Validate() error {
	v := &ValidationError{}
	required := []struct {
		field, value string
	}{
		{"client_id", d.ClientID},
		{"supplier_id", d.SupplierID},
		{"driver_name", d.DriverName},
		{"destination_address", d.DestinationAddress},
		{"destination_city", d.DestinationCity},
		{"pickup_date", d.PickupDate},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			v.Add(r.field, "is required", ErrRequired)
		}
	}
	if strings.TrimSpace(d.VehicleID) == "" && strings.TrimSpace(d.VehicleNumber) == "" {
		v.Add("vehicle_id", "a vehicle or vehicle number is required", ErrRequired)
	}
	if d.PickupDate != "" {
		if _, err := time.Parse(PickupDateLayout, d.PickupDate); err != nil {
			v.Add("pickup_date", "must be YYYY-MM-DD", err)
		}
	}

	if len(d.Materials) == 0 {
		v.Add("materials", "at least one material line is required", ErrRequired)
	}
	for i, m := range d.Materials {
		v.Merge(materialField(i), m.checkComplete(materialField(i)))
	}

	if len(d.LRNumbers) == 0 {
		v.Add("lr_numbers", "at least one LR number is required", ErrRequired)
	}
	seen := make(map[string]bool, len(d.LRNumbers))
	for i, lr := range d.LRNumbers {
		lr = strings.TrimSpace(lr)
		switch {
		case lr == "":
			v.Add(lrField(i), "is required", ErrRequired)
		case seen[lr]:
			v.Add(lrField(i), "duplicate LR number", ErrUnknownValue)
		}
		seen[lr] = true
	}

	if !d.ClientFreight.IsPositive() {
		v.Add("client_freight", "must be greater than zero", ErrRequired)
	}
	if !d.SupplierFreight.IsPositive() {
		v.Add("supplier_freight", "must be greater than zero", ErrRequired)
	}
	v.Merge("advance_percentage", CheckPercentage(d.AdvancePercentage))
	return v.OrNil()
}
