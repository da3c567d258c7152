package utils

import (
	"bytes"
	_ "embed"
	"html/template"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"freightflow/models"
)

// CopyTitles are printed one per page section, in this order.
var CopyTitles = []string{"Consignor Copy", "Consignee Copy", "Driver Copy"}

//go:embed templates/lr_copy.html
var lrCopyTemplate string

var lrCopyTmpl = template.Must(template.New("lr_copy").Parse(lrCopyTemplate))

// NewLRCopies prepares one LRCopyData per copy title.
func NewLRCopies(company *models.CompanyProfile, trip *models.Trip, printedAt time.Time) []models.LRCopyData {
	if company == nil {
		company = &models.CompanyProfile{}
	}

	// Prepare contact numbers
	contacts := make([]string, 0, len(company.Mobile))
	for _, m := range company.Mobile {
		if m.Label != "" {
			contacts = append(contacts, m.Number+"("+m.Label+")")
		} else {
			contacts = append(contacts, m.Number)
		}
	}

	pickup := trip.PickupDate
	if t, err := time.Parse("2006-01-02", trip.PickupDate); err == nil {
		pickup = t.Format("02-Jan-2006")
	}

	lines := make([]models.LRCopyLine, len(trip.Materials))
	totalWeight := decimal.Zero
	for i, m := range trip.Materials {
		lines[i] = models.LRCopyLine{
			No:        i + 1,
			Name:      m.Name,
			Weight:    m.Weight.String(),
			Unit:      string(m.Unit),
			RatePerMT: FormatINR(m.RatePerMT),
			Amount:    FormatINR(m.Amount()),
		}
		totalWeight = totalWeight.Add(m.Weight)
	}

	base := models.LRCopyData{
		Company:      company,
		Trip:         trip,
		Contacts:     strings.Join(contacts, ", "),
		Date:         printedAt.Format("02-Jan-2006"),
		PickupDate:   pickup,
		LRNumbers:    strings.Join(trip.LRNumbers, ", "),
		Lines:        lines,
		TotalWeight:  totalWeight.String(),
		Freight:      FormatINR(trip.ClientFreight),
		FreightWords: AmountInWords(trip.ClientFreight),
	}

	copies := make([]models.LRCopyData, len(CopyTitles))
	for i, title := range CopyTitles {
		copies[i] = base
		copies[i].CopyTitle = title
	}
	return copies
}

// RenderLRCopyHTML lays every copy out in one A4 document, each copy kept
// whole on a page.
func RenderLRCopyHTML(copies []models.LRCopyData) ([]byte, error) {
	var body bytes.Buffer
	for _, c := range copies {
		body.WriteString("<div class='lr-copy'>")
		if err := lrCopyTmpl.Execute(&body, c); err != nil {
			return nil, err
		}
		body.WriteString("</div>")
	}

	var out bytes.Buffer
	out.WriteString(`<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<style>
@page { size: A4; margin: 20px; }
body { font-family: Arial, Helvetica, sans-serif; font-size: 12px; margin: 0; padding: 0; }
.lr-copy { page-break-inside: avoid; border-bottom: 1px dashed #999; padding-bottom: 12px; margin-bottom: 12px; }
.lr-head { display: flex; justify-content: space-between; }
.copy-title { font-weight: bold; text-transform: uppercase; }
table { width: 100%; border-collapse: collapse; margin-top: 6px; }
th, td { border: 1px solid #444; padding: 3px 5px; text-align: left; }
.lr-words { margin-top: 6px; font-style: italic; }
</style>
</head>
<body>`)
	out.Write(body.Bytes())
	out.WriteString(`</body></html>`)
	return out.Bytes(), nil
}
