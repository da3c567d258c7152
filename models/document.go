package models

import "time"

type DocumentType string

const (
	DocumentLR       DocumentType = "LR"
	DocumentInvoice  DocumentType = "Invoice"
	DocumentEWaybill DocumentType = "E-waybill"
	DocumentPOD      DocumentType = "POD"
)

func (t DocumentType) Valid() bool {
	switch t {
	case DocumentLR, DocumentInvoice, DocumentEWaybill, DocumentPOD:
		return true
	}
	return false
}

// Document is metadata about a file attached to a trip. File contents are
// not kept; URL is set only for documents this service rendered itself.
type Document struct {
	ID         string       `json:"id" bson:"id" db:"id"`
	Type       DocumentType `json:"type" bson:"type" db:"doc_type"`
	Number     string       `json:"number" bson:"number" db:"number"`
	Filename   string       `json:"filename" bson:"filename" db:"filename"`
	URL        string       `json:"url,omitempty" bson:"url,omitempty" db:"url"`
	UploadDate time.Time    `json:"upload_date" bson:"upload_date" db:"upload_date"`
	ExpiryDate string       `json:"expiry_date,omitempty" bson:"expiry_date,omitempty" db:"expiry_date"`
}
