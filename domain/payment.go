package domain

import (
	"fmt"
	"strings"
)

type PaymentTrack string

const (
	TrackAdvance PaymentTrack = "advance"
	TrackBalance PaymentTrack = "balance"
)

func ParsePaymentTrack(s string) (PaymentTrack, error) {
	switch t := PaymentTrack(strings.ToLower(strings.TrimSpace(s))); t {
	case TrackAdvance, TrackBalance:
		return t, nil
	default:
		return "", NewValidationError("track", fmt.Sprintf("unknown payment track %q", s), ErrUnknownValue)
	}
}

type PaymentStatus string

const (
	PaymentNotStarted PaymentStatus = "Not Started"
	PaymentInitiated  PaymentStatus = "Initiated"
	PaymentPending    PaymentStatus = "Pending"
	PaymentPaid       PaymentStatus = "Paid"
)

type PaymentEvent string

const (
	PaymentEventInitiate PaymentEvent = "initiate"
	PaymentEventProcess  PaymentEvent = "process"
	PaymentEventPay      PaymentEvent = "pay"
)

func ParsePaymentEvent(s string) (PaymentEvent, error) {
	switch e := PaymentEvent(strings.ToLower(strings.TrimSpace(s))); e {
	case PaymentEventInitiate, PaymentEventProcess, PaymentEventPay:
		return e, nil
	default:
		return "", NewValidationError("event", fmt.Sprintf("unknown payment event %q", s), ErrUnknownValue)
	}
}

// InitialPaymentStatus is the status a freshly confirmed trip starts with.
func InitialPaymentStatus(track PaymentTrack) PaymentStatus {
	if track == TrackBalance {
		return PaymentNotStarted
	}
	return PaymentInitiated
}

type paymentEdge struct {
	event PaymentEvent
	to    PaymentStatus
}

var paymentEdges = map[PaymentTrack]map[PaymentStatus]paymentEdge{
	TrackAdvance: {
		PaymentInitiated: {PaymentEventProcess, PaymentPending},
		PaymentPending:   {PaymentEventPay, PaymentPaid},
	},
	TrackBalance: {
		PaymentNotStarted: {PaymentEventInitiate, PaymentInitiated},
		PaymentInitiated:  {PaymentEventProcess, PaymentPending},
		PaymentPending:    {PaymentEventPay, PaymentPaid},
	},
}

// NextPaymentStatus applies ev to a payment track. Both tracks are monotonic.
// The balance cannot leave Not Started until the POD has been uploaded.
func NextPaymentStatus(track PaymentTrack, from PaymentStatus, ev PaymentEvent, podUploaded bool) (PaymentStatus, error) {
	edge, ok := paymentEdges[track][from]
	if !ok || edge.event != ev {
		return from, &InvalidTransitionError{Track: string(track), From: string(from), Event: string(ev)}
	}
	if track == TrackBalance && from == PaymentNotStarted && !podUploaded {
		return from, &InvalidTransitionError{Track: string(track), From: string(from), Event: string(ev),
			Reason: "POD has not been uploaded"}
	}
	return edge.to, nil
}

// NextPaymentEvent is the event that moves the track one step forward, used
// by the "process payment" action. ok is false once the track is Paid.
func NextPaymentEvent(track PaymentTrack, from PaymentStatus) (PaymentEvent, bool) {
	edge, ok := paymentEdges[track][from]
	return edge.event, ok
}
