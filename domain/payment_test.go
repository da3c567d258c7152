package domain

import "testing"

func TestAdvanceTrack(t *testing.T) {
	s := InitialPaymentStatus(TrackAdvance)
	if s != PaymentInitiated {
		t.Fatalf("initial advance = %s", s)
	}
	s, err := NextPaymentStatus(TrackAdvance, s, PaymentEventProcess, false)
	if err != nil || s != PaymentPending {
		t.Fatalf("process: %s %v", s, err)
	}
	s, err = NextPaymentStatus(TrackAdvance, s, PaymentEventPay, false)
	if err != nil || s != PaymentPaid {
		t.Fatalf("pay: %s %v", s, err)
	}
	if _, ok := NextPaymentEvent(TrackAdvance, s); ok {
		t.Fatal("paid advance should have no next event")
	}
}

func TestAdvanceTrackRejects(t *testing.T) {
	tests := []struct {
		from PaymentStatus
		ev   PaymentEvent
	}{
		{PaymentInitiated, PaymentEventPay},
		{PaymentInitiated, PaymentEventInitiate},
		{PaymentPending, PaymentEventProcess},
		{PaymentPaid, PaymentEventProcess},
		{PaymentNotStarted, PaymentEventInitiate},
	}
	for _, tt := range tests {
		got, err := NextPaymentStatus(TrackAdvance, tt.from, tt.ev, true)
		if !IsInvalidTransition(err) || got != tt.from {
			t.Errorf("%s from %s: got %s %v", tt.ev, tt.from, got, err)
		}
	}
}

func TestBalanceTrackGatedOnPOD(t *testing.T) {
	s := InitialPaymentStatus(TrackBalance)
	if s != PaymentNotStarted {
		t.Fatalf("initial balance = %s", s)
	}
	got, err := NextPaymentStatus(TrackBalance, s, PaymentEventInitiate, false)
	if !IsInvalidTransition(err) || got != PaymentNotStarted {
		t.Fatalf("initiate without POD: %s %v", got, err)
	}
	steps := []struct {
		ev   PaymentEvent
		want PaymentStatus
	}{
		{PaymentEventInitiate, PaymentInitiated},
		{PaymentEventProcess, PaymentPending},
		{PaymentEventPay, PaymentPaid},
	}
	for _, step := range steps {
		s, err = NextPaymentStatus(TrackBalance, s, step.ev, true)
		if err != nil || s != step.want {
			t.Fatalf("%s: %s %v", step.ev, s, err)
		}
	}
}

func TestNextPaymentEvent(t *testing.T) {
	tests := []struct {
		track PaymentTrack
		from  PaymentStatus
		want  PaymentEvent
	}{
		{TrackAdvance, PaymentInitiated, PaymentEventProcess},
		{TrackAdvance, PaymentPending, PaymentEventPay},
		{TrackBalance, PaymentNotStarted, PaymentEventInitiate},
		{TrackBalance, PaymentInitiated, PaymentEventProcess},
	}
	for _, tt := range tests {
		if ev, ok := NextPaymentEvent(tt.track, tt.from); !ok || ev != tt.want {
			t.Errorf("%s %s: got %s %v", tt.track, tt.from, ev, ok)
		}
	}
}

func TestParsePaymentTrackAndEvent(t *testing.T) {
	if tr, err := ParsePaymentTrack("Balance"); err != nil || tr != TrackBalance {
		t.Fatalf("track: %s %v", tr, err)
	}
	if _, err := ParsePaymentTrack("deposit"); !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := ParsePaymentEvent("refund"); !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
