package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

type WeightUnit string

const (
	UnitMT WeightUnit = "MT"
	UnitKG WeightUnit = "KG"
)

func (u WeightUnit) Valid() bool {
	return u == UnitMT || u == UnitKG
}

// Material is one line of the consignment. Rate is always quoted per metric
// ton; the unit is carried for display and is not used to scale the weight.
type Material struct {
	Name      string          `json:"name" bson:"name"`
	Weight    decimal.Decimal `json:"weight" bson:"weight"`
	Unit      WeightUnit      `json:"unit" bson:"unit"`
	RatePerMT decimal.Decimal `json:"rate_per_mt" bson:"rate_per_mt"`
}

// Amount is weight × rate for this line.
func (m Material) Amount() decimal.Decimal {
	return m.Weight.Mul(m.RatePerMT)
}

// checkAmounts rejects negative weight or rate. It is the only check applied
// while the form is being edited; blank lines are allowed until confirmation.
func (m Material) checkAmounts(field string) error {
	v := &ValidationError{}
	if m.Weight.IsNegative() {
		v.Add(field+".weight", "must not be negative", ErrInvalidMaterial)
	}
	if m.RatePerMT.IsNegative() {
		v.Add(field+".rate_per_mt", "must not be negative", ErrInvalidMaterial)
	}
	return v.OrNil()
}

// checkComplete applies the confirmation rules to a line.
func (m Material) checkComplete(field string) error {
	v := &ValidationError{}
	if strings.TrimSpace(m.Name) == "" {
		v.Add(field+".name", "is required", ErrInvalidMaterial)
	}
	if !m.Weight.IsPositive() {
		v.Add(field+".weight", "must be greater than zero", ErrInvalidMaterial)
	}
	if m.RatePerMT.IsNegative() {
		v.Add(field+".rate_per_mt", "must not be negative", ErrInvalidMaterial)
	}
	if !m.Unit.Valid() {
		v.Add(field+".unit", "must be MT or KG", ErrInvalidMaterial)
	}
	return v.OrNil()
}

func materialField(i int) string {
	return fmt.Sprintf("materials[%d]", i)
}

// ComputeClientFreight sums weight × rate over every line. An empty list
// yields zero.
func ComputeClientFreight(materials []Material) (decimal.Decimal, error) {
	v := &ValidationError{}
	total := decimal.Zero
	for i, m := range materials {
		if err := m.checkAmounts(materialField(i)); err != nil {
			v.Merge(materialField(i), err)
			continue
		}
		total = total.Add(m.Amount())
	}
	if err := v.OrNil(); err != nil {
		return decimal.Zero, err
	}
	return total, nil
}
