package models

import (
	"time"

	"freightflow/domain"
)

type BankDetails struct {
	BankName      string `json:"bank_name" bson:"bank_name"`
	AccountNumber string `json:"account_number" bson:"account_number"`
	IFSCCode      string `json:"ifsc_code" bson:"ifsc_code"`
	AccountType   string `json:"account_type" bson:"account_type"`
}

type Supplier struct {
	ID            string         `json:"id" bson:"_id" db:"id"`
	Name          string         `json:"name" bson:"name" db:"name" validate:"required"`
	City          string         `json:"city" bson:"city" db:"city" validate:"required"`
	Address       string         `json:"address" bson:"address" db:"address"`
	ContactPerson domain.Contact `json:"contact_person" bson:"contact_person" db:"contact_person"`
	BankDetails   BankDetails    `json:"bank_details" bson:"bank_details" db:"bank_details"`
	GSTNumber     string         `json:"gst_number" bson:"gst_number" db:"gst_number"`
	CreatedAt     time.Time      `json:"created_at" bson:"created_at" db:"created_at"`
	UpdatedAt     *time.Time     `json:"updated_at,omitempty" bson:"updated_at,omitempty" db:"updated_at"`
}
