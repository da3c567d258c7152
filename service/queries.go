package service

import (
	"strings"

	"github.com/shopspring/decimal"

	"freightflow/domain"
	"freightflow/models"
)

// ------------------------ Queues ------------------------

// PendingAdvance: advance not yet paid.
func PendingAdvance(t *models.Trip) bool {
	return t.AdvancePaymentStatus != domain.PaymentPaid
}

// PendingBalance: POD is in and the balance is not yet paid.
func PendingBalance(t *models.Trip) bool {
	return t.PODUploaded && t.BalancePaymentStatus != domain.PaymentPaid
}

// AwaitingPOD: delivered but no POD uploaded.
func AwaitingPOD(t *models.Trip) bool {
	return t.Status == domain.StatusDelivered && !t.PODUploaded
}

type PaymentQueues struct {
	PendingAdvance []*models.Trip `json:"pending_advance"`
	PendingBalance []*models.Trip `json:"pending_balance"`
}

func BuildPaymentQueues(trips []*models.Trip) PaymentQueues {
	return PaymentQueues{
		PendingAdvance: filter(trips, PendingAdvance),
		PendingBalance: filter(trips, PendingBalance),
	}
}

// ------------------------ Search ------------------------

func contains(field, q string) bool {
	return strings.Contains(strings.ToLower(field), q)
}

func normalizeQuery(q string) string {
	return strings.ToLower(strings.TrimSpace(q))
}

// MatchTrip matches order number, any LR number, client or supplier name.
func MatchTrip(q string) func(*models.Trip) bool {
	q = normalizeQuery(q)
	return func(t *models.Trip) bool {
		if q == "" {
			return true
		}
		if contains(t.OrderNumber, q) || contains(t.ClientName, q) || contains(t.SupplierName, q) {
			return true
		}
		for _, lr := range t.LRNumbers {
			if contains(lr, q) {
				return true
			}
		}
		return false
	}
}

func MatchClient(q string) func(*models.Client) bool {
	q = normalizeQuery(q)
	return func(c *models.Client) bool {
		return q == "" || contains(c.Name, q) || contains(c.City, q) || contains(c.LogisticsPOC.Name, q)
	}
}

func MatchSupplier(q string) func(*models.Supplier) bool {
	q = normalizeQuery(q)
	return func(s *models.Supplier) bool {
		return q == "" || contains(s.Name, q) || contains(s.City, q) || contains(s.ContactPerson.Name, q)
	}
}

func MatchVehicle(q string) func(*models.Vehicle) bool {
	q = normalizeQuery(q)
	return func(v *models.Vehicle) bool {
		return q == "" || contains(v.RegistrationNumber, q) || contains(v.SupplierName, q) ||
			contains(v.VehicleType, q) || contains(v.DriverName, q)
	}
}

func filter[T any](items []*T, keep func(*T) bool) []*T {
	out := make([]*T, 0, len(items))
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}

// ------------------------ Dashboard ------------------------

type Summary struct {
	TotalTrips         int                       `json:"total_trips"`
	ByStatus           map[domain.TripStatus]int `json:"by_status"`
	PendingAdvance     int                       `json:"pending_advance"`
	PendingBalance     int                       `json:"pending_balance"`
	PendingPayments    int                       `json:"pending_payments"`
	AwaitingPOD        int                       `json:"awaiting_pod"`
	BalancePaid        int                       `json:"balance_paid"`
	CompletionRate     decimal.Decimal           `json:"completion_rate"`
	TotalClientFreight decimal.Decimal           `json:"total_client_freight"`
	TotalMargin        decimal.Decimal           `json:"total_margin"`
}

// Summarize computes the dashboard figures. CompletionRate is the share of
// trips in Completed, in percent, rounded to two places.
func Summarize(trips []*models.Trip) Summary {
	s := Summary{
		TotalTrips:         len(trips),
		ByStatus:           make(map[domain.TripStatus]int, len(domain.TripStatuses)),
		CompletionRate:     decimal.Zero,
		TotalClientFreight: decimal.Zero,
		TotalMargin:        decimal.Zero,
	}
	for _, st := range domain.TripStatuses {
		s.ByStatus[st] = 0
	}
	for _, t := range trips {
		s.ByStatus[t.Status]++
		if PendingAdvance(t) {
			s.PendingAdvance++
		}
		if PendingBalance(t) {
			s.PendingBalance++
		}
		if AwaitingPOD(t) {
			s.AwaitingPOD++
		}
		if t.BalancePaymentStatus == domain.PaymentPaid {
			s.BalancePaid++
		}
		s.TotalClientFreight = s.TotalClientFreight.Add(t.ClientFreight)
		s.TotalMargin = s.TotalMargin.Add(t.Margin)
	}
	s.PendingPayments = s.PendingAdvance + s.PendingBalance
	if len(trips) > 0 {
		s.CompletionRate = decimal.NewFromInt(int64(s.ByStatus[domain.StatusCompleted])).
			Mul(decimal.NewFromInt(100)).
			Div(decimal.NewFromInt(int64(len(trips)))).
			RoundBank(2)
	}
	return s
}
