package service

import (
	"testing"

	"github.com/shopspring/decimal"

	"freightflow/domain"
	"freightflow/models"
)

func TestSummarize(t *testing.T) {
	trips := []*models.Trip{
		{Status: domain.StatusBooked, AdvancePaymentStatus: domain.PaymentInitiated, BalancePaymentStatus: domain.PaymentNotStarted,
			ClientFreight: decimal.NewFromInt(15000), Margin: decimal.NewFromInt(3000)},
		{Status: domain.StatusDelivered, AdvancePaymentStatus: domain.PaymentPaid, BalancePaymentStatus: domain.PaymentNotStarted,
			ClientFreight: decimal.NewFromInt(10000), Margin: decimal.NewFromInt(-500)},
		{Status: domain.StatusDelivered, PODUploaded: true, AdvancePaymentStatus: domain.PaymentPaid, BalancePaymentStatus: domain.PaymentPending,
			ClientFreight: decimal.NewFromInt(5000), Margin: decimal.NewFromInt(1000)},
		{Status: domain.StatusCompleted, PODUploaded: true, AdvancePaymentStatus: domain.PaymentPaid, BalancePaymentStatus: domain.PaymentPaid,
			ClientFreight: decimal.NewFromInt(20000), Margin: decimal.NewFromInt(2500)},
	}

	s := Summarize(trips)
	if s.TotalTrips != 4 || s.ByStatus[domain.StatusDelivered] != 2 || s.ByStatus[domain.StatusInTransit] != 0 {
		t.Errorf("counts: %+v", s.ByStatus)
	}
	if s.PendingAdvance != 1 || s.PendingBalance != 1 || s.PendingPayments != 2 {
		t.Errorf("pending: advance=%d balance=%d total=%d", s.PendingAdvance, s.PendingBalance, s.PendingPayments)
	}
	if s.AwaitingPOD != 1 || s.BalancePaid != 1 {
		t.Errorf("awaiting POD=%d balance paid=%d", s.AwaitingPOD, s.BalancePaid)
	}
	if !s.CompletionRate.Equal(decimal.NewFromInt(25)) {
		t.Errorf("completion rate = %s", s.CompletionRate)
	}
	if !s.TotalClientFreight.Equal(decimal.NewFromInt(50000)) || !s.TotalMargin.Equal(decimal.NewFromInt(6000)) {
		t.Errorf("totals: freight=%s margin=%s", s.TotalClientFreight, s.TotalMargin)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if s.TotalTrips != 0 || !s.CompletionRate.IsZero() {
		t.Errorf("unexpected summary: %+v", s)
	}
}

func TestMatchers(t *testing.T) {
	trip := &models.Trip{OrderNumber: "FTL-20250420103000-001", LRNumbers: []string{"LR555"}, ClientName: "Tata Steel Ltd", SupplierName: "Roadways"}
	for q, want := range map[string]bool{"": true, "tata": true, "lr5": true, "ROADWAYS": true, "ftl-2025": true, "reliance": false} {
		if got := MatchTrip(q)(trip); got != want {
			t.Errorf("MatchTrip(%q) = %v", q, got)
		}
	}

	v := &models.Vehicle{RegistrationNumber: "MH02AB1234", SupplierName: "Express Carriers", VehicleType: "Container", DriverName: "Suresh"}
	for q, want := range map[string]bool{"mh02": true, "express": true, "container": true, "suresh": true, "truck": false} {
		if got := MatchVehicle(q)(v); got != want {
			t.Errorf("MatchVehicle(%q) = %v", q, got)
		}
	}

	c := &models.Client{Name: "Reliance", City: "Jamnagar", LogisticsPOC: domain.Contact{Name: "Anita"}}
	if !MatchClient(" anita ")(c) || MatchClient("pune")(c) {
		t.Error("MatchClient mismatch")
	}
	s := &models.Supplier{Name: "Roadways", City: "Delhi", ContactPerson: domain.Contact{Name: "Vikram"}}
	if !MatchSupplier("vik")(s) || MatchSupplier("mumbai")(s) {
		t.Error("MatchSupplier mismatch")
	}
}
