package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Catalog holds the dropdown vocabularies of the booking and master-data
// forms.
type Catalog struct {
	MaterialTypes     []string `yaml:"material_types" json:"material_types"`
	WeightUnits       []string `yaml:"weight_units" json:"weight_units"`
	VehicleTypes      []string `yaml:"vehicle_types" json:"vehicle_types"`
	VehicleSizes      []string `yaml:"vehicle_sizes" json:"vehicle_sizes"`
	VehicleCapacities []string `yaml:"vehicle_capacities" json:"vehicle_capacities"`
	AxleTypes         []string `yaml:"axle_types" json:"axle_types"`
	AddressTypes      []string `yaml:"address_types" json:"address_types"`
	InvoicingTypes    []string `yaml:"invoicing_types" json:"invoicing_types"`
	DocumentTypes     []string `yaml:"document_types" json:"document_types"`
}

func DefaultCatalog() *Catalog {
	return &Catalog{
		MaterialTypes: []string{
			"Steel Coils", "Chemical Drums", "Equipment Parts", "Consumer Goods",
			"Automobile Parts", "Food Products", "Textile", "Construction Material",
			"Electronics", "Furniture",
		},
		WeightUnits:  []string{"MT", "KG"},
		VehicleTypes: []string{"Container", "Truck", "Trailer"},
		VehicleSizes: []string{"32FT Sxl", "32FT Mxl", "24FT", "40FT"},
		VehicleCapacities: []string{
			"7 Ton", "9 Ton", "10 Ton", "12 Ton", "15 Ton",
			"18 Ton", "25 Ton", "30 Ton", "35 Ton", "40 Ton",
		},
		AxleTypes: []string{"Single", "Multi"},
		AddressTypes: []string{
			"Corporate Office", "Manufacturing Plant", "Warehouse",
			"Distribution Center", "Retail Store", "Refinery",
		},
		InvoicingTypes: []string{"GST 18%", "GST 12%", "GST 5%", "RCM", "Exempted"},
		DocumentTypes:  []string{"LR", "Invoice", "E-waybill", "POD"},
	}
}

// LoadCatalog reads a YAML catalog. Lists missing from the file keep their
// defaults. An empty path returns the defaults.
func LoadCatalog(path string) (*Catalog, error) {
	c := DefaultCatalog()
	if path == "" {
		return c, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var file Catalog
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	c.merge(&file)
	return c, nil
}

func (c *Catalog) merge(o *Catalog) {
	pick := func(dst *[]string, src []string) {
		if len(src) > 0 {
			*dst = src
		}
	}
	pick(&c.MaterialTypes, o.MaterialTypes)
	pick(&c.WeightUnits, o.WeightUnits)
	pick(&c.VehicleTypes, o.VehicleTypes)
	pick(&c.VehicleSizes, o.VehicleSizes)
	pick(&c.VehicleCapacities, o.VehicleCapacities)
	pick(&c.AxleTypes, o.AxleTypes)
	pick(&c.AddressTypes, o.AddressTypes)
	pick(&c.InvoicingTypes, o.InvoicingTypes)
	pick(&c.DocumentTypes, o.DocumentTypes)
}

func (c *Catalog) HasMaterial(name string) bool     { return contains(c.MaterialTypes, name) }
func (c *Catalog) HasVehicleType(v string) bool     { return contains(c.VehicleTypes, v) }
func (c *Catalog) HasVehicleSize(v string) bool     { return contains(c.VehicleSizes, v) }
func (c *Catalog) HasVehicleCapacity(v string) bool { return contains(c.VehicleCapacities, v) }
func (c *Catalog) HasAxleType(v string) bool        { return contains(c.AxleTypes, v) }
func (c *Catalog) HasAddressType(v string) bool     { return contains(c.AddressTypes, v) }
func (c *Catalog) HasInvoicingType(v string) bool   { return contains(c.InvoicingTypes, v) }

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
