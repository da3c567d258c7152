package models

import (
	"time"

	"freightflow/domain"
)

type SalesRep struct {
	Name        string `json:"name" bson:"name"`
	Designation string `json:"designation" bson:"designation"`
	Phone       string `json:"phone" bson:"phone"`
	Email       string `json:"email" bson:"email"`
}

type Client struct {
	ID            string         `json:"id" bson:"_id" db:"id"`
	Name          string         `json:"name" bson:"name" db:"name" validate:"required"`
	City          string         `json:"city" bson:"city" db:"city" validate:"required"`
	Address       string         `json:"address" bson:"address" db:"address" validate:"required"`
	AddressType   string         `json:"address_type" bson:"address_type" db:"address_type"`
	GSTNumber     string         `json:"gst_number" bson:"gst_number" db:"gst_number"`
	PANNumber     string         `json:"pan_number" bson:"pan_number" db:"pan_number"`
	LogisticsPOC  domain.Contact `json:"logistics_poc" bson:"logistics_poc" db:"logistics_poc"`
	FinancePOC    domain.Contact `json:"finance_poc" bson:"finance_poc" db:"finance_poc"`
	InvoicingType string         `json:"invoicing_type" bson:"invoicing_type" db:"invoicing_type"`
	SalesRep      SalesRep       `json:"sales_rep" bson:"sales_rep" db:"sales_rep"`
	CreatedAt     time.Time      `json:"created_at" bson:"created_at" db:"created_at"`
	UpdatedAt     *time.Time     `json:"updated_at,omitempty" bson:"updated_at,omitempty" db:"updated_at"`
}
