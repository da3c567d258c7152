package domain

import "time"

// InsuranceWarningDays is the default window for "expiring soon".
const InsuranceWarningDays = 30

// InsuranceExpiringSoon reports whether expiry is at most windowDays calendar
// days after today. Already expired policies count as expiring.
func InsuranceExpiringSoon(expiry, today time.Time, windowDays int) bool {
	days := dateOf(expiry).Sub(dateOf(today)).Hours() / 24
	return days <= float64(windowDays)
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
