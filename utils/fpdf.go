package utils

import (
	"bytes"
	"context"
	"fmt"

	"github.com/phpdave11/gofpdf"

	"freightflow/models"
)

// FPDF draws the LR copy directly with gofpdf; no browser needed.
type FPDF struct{}

func (FPDF) Render(_ context.Context, copies []models.LRCopyData) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Lorry Receipt", false)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for _, c := range copies {
		pdf.AddPage()
		drawLRCopy(pdf, tr, c)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func drawLRCopy(pdf *gofpdf.Fpdf, tr func(string) string, c models.LRCopyData) {
	name := c.Company.CompanyName
	if name == "" {
		name = "Lorry Receipt"
	}
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(130, 8, tr(name), "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 8, tr(c.CopyTitle), "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	if c.Company.Address != "" {
		pdf.MultiCell(0, 5, tr(c.Company.Address+" "+c.Company.City+" "+c.Company.State+" "+c.Company.Pincode), "", "L", false)
	}
	if c.Company.GSTIN != "" {
		pdf.CellFormat(0, 5, "GSTIN: "+c.Company.GSTIN, "", 1, "L", false, 0, "")
	}
	if c.Contacts != "" {
		pdf.CellFormat(0, 5, tr("Mobile: "+c.Contacts), "", 1, "L", false, 0, "")
	}
	pdf.Ln(3)

	t := c.Trip
	meta := [][2]string{
		{"Order No.", t.OrderNumber},
		{"LR No.", c.LRNumbers},
		{"Date", c.Date},
		{"Pickup", c.PickupDate + " " + t.PickupTime},
		{"Consignor", t.ClientName + ", " + t.ClientCity},
		{"Destination", t.DestinationAddress + ", " + t.DestinationCity},
		{"Vehicle", fmt.Sprintf("%s (%s %s)", t.VehicleNumber, t.VehicleType, t.VehicleSize)},
		{"Driver", t.DriverName + " " + t.DriverPhone},
	}
	pdf.SetFont("Helvetica", "", 10)
	for _, m := range meta {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(35, 6, m[0], "1", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 6, tr(m[1]), "1", 1, "L", false, 0, "")
	}
	pdf.Ln(3)

	widths := []float64{10, 60, 25, 15, 35, 45}
	pdf.SetFont("Helvetica", "B", 10)
	for i, h := range []string{"#", "Material", "Weight", "Unit", "Rate / MT", "Amount"} {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, l := range c.Lines {
		cells := []string{fmt.Sprint(l.No), l.Name, l.Weight, l.Unit, l.RatePerMT, l.Amount}
		for i, v := range cells {
			align := "L"
			if i >= 2 {
				align = "R"
			}
			pdf.CellFormat(widths[i], 6, tr(v), "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(widths[0]+widths[1], 7, "Total", "1", 0, "L", false, 0, "")
	pdf.CellFormat(widths[2], 7, c.TotalWeight, "1", 0, "R", false, 0, "")
	pdf.CellFormat(widths[3]+widths[4], 7, "", "1", 0, "L", false, 0, "")
	pdf.CellFormat(widths[5], 7, c.Freight, "1", 1, "R", false, 0, "")

	pdf.Ln(2)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.MultiCell(0, 5, tr("Rupees: "+c.FreightWords), "", "L", false)
	if c.Company.Footnote != "" {
		pdf.Ln(2)
		pdf.MultiCell(0, 5, tr(c.Company.Footnote), "", "L", false)
	}
}
