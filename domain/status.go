package domain

import (
	"fmt"
	"strings"
)

type TripStatus string

const (
	StatusBooked    TripStatus = "Booked"
	StatusInTransit TripStatus = "In Transit"
	StatusDelivered TripStatus = "Delivered"
	StatusCompleted TripStatus = "Completed"
)

// TripStatuses lists the lifecycle in order.
var TripStatuses = []TripStatus{StatusBooked, StatusInTransit, StatusDelivered, StatusCompleted}

func (s TripStatus) Valid() bool {
	for _, v := range TripStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// TripEvent is an operational event reported by dispatch, tracking or POD capture.
type TripEvent string

const (
	EventDispatch TripEvent = "dispatch"
	EventDeliver  TripEvent = "deliver"
	EventComplete TripEvent = "complete"
)

func ParseTripEvent(s string) (TripEvent, error) {
	switch e := TripEvent(strings.ToLower(strings.TrimSpace(s))); e {
	case EventDispatch, EventDeliver, EventComplete:
		return e, nil
	default:
		return "", NewValidationError("event", fmt.Sprintf("unknown trip event %q", s), ErrUnknownValue)
	}
}

// TripGuard carries the facts the trip transitions are guarded on.
type TripGuard struct {
	VehicleAssigned bool
	DriverAssigned  bool
	AdvanceStatus   PaymentStatus
	BalanceStatus   PaymentStatus
}

type tripEdge struct {
	event TripEvent
	to    TripStatus
}

var tripEdges = map[TripStatus]tripEdge{
	StatusBooked:    {EventDispatch, StatusInTransit},
	StatusInTransit: {EventDeliver, StatusDelivered},
	StatusDelivered: {EventComplete, StatusCompleted},
}

// NextTripStatus returns the status reached by applying ev to from. The
// lifecycle only moves forward one step at a time; Completed is terminal.
// POD upload is tracked separately and does not gate delivery.
func NextTripStatus(from TripStatus, ev TripEvent, g TripGuard) (TripStatus, error) {
	edge, ok := tripEdges[from]
	if !ok || edge.event != ev {
		return from, &InvalidTransitionError{Track: "trip", From: string(from), Event: string(ev)}
	}
	switch ev {
	case EventDispatch:
		if !g.VehicleAssigned || !g.DriverAssigned {
			return from, &InvalidTransitionError{Track: "trip", From: string(from), Event: string(ev),
				Reason: "vehicle and driver must be assigned"}
		}
	case EventComplete:
		if g.AdvanceStatus != PaymentPaid || g.BalanceStatus != PaymentPaid {
			return from, &InvalidTransitionError{Track: "trip", From: string(from), Event: string(ev),
				Reason: "advance and balance payments must be paid"}
		}
	}
	return edge.to, nil
}
