package utils

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestAmountInWords(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "Zero Rupees Only"},
		{"15000", "Fifteen Thousand Rupees Only"},
		{"4800.50", "Four Thousand Eight Hundred Rupees and Fifty Paise Only"},
		{"0.12", "Twelve Paise Only"},
		{"3163700", "Thirty One Lakh Sixty Three Thousand Seven Hundred Rupees Only"},
		{"12500000", "One Crore Twenty Five Lakh Rupees Only"},
		{"-3000", "Minus Three Thousand Rupees Only"},
		{"101", "One Hundred One Rupees Only"},
	}
	for _, tt := range tests {
		if got := AmountInWords(decimal.RequireFromString(tt.in)); got != tt.want {
			t.Errorf("AmountInWords(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatINR(t *testing.T) {
	tests := map[string]string{
		"0":         "0.00",
		"999":       "999.00",
		"15000":     "15,000.00",
		"1234567.5": "12,34,567.50",
		"-3000":     "-3,000.00",
		"123456789": "12,34,56,789.00",
	}
	for in, want := range tests {
		if got := FormatINR(decimal.RequireFromString(in)); got != want {
			t.Errorf("FormatINR(%s) = %q, want %q", in, got, want)
		}
	}
}
