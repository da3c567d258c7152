package utils

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var ones = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen",
	"Sixteen", "Seventeen", "Eighteen", "Nineteen",
}

var tens = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}

// NumberToWords spells n with the Indian grouping (thousand, lakh, crore).
func NumberToWords(n int64) string {
	switch {
	case n <= 0:
		return ""
	case n < 20:
		return ones[n]
	case n < 100:
		return strings.TrimSpace(tens[n/10] + " " + ones[n%10])
	case n < 1000:
		return join(ones[n/100]+" Hundred", NumberToWords(n%100))
	case n < 100000:
		return join(NumberToWords(n/1000)+" Thousand", NumberToWords(n%1000))
	case n < 10000000:
		return join(NumberToWords(n/100000)+" Lakh", NumberToWords(n%100000))
	default:
		return join(NumberToWords(n/10000000)+" Crore", NumberToWords(n%10000000))
	}
}

func join(head, rest string) string {
	if rest == "" {
		return head
	}
	return head + " " + rest
}

// AmountInWords renders a rupee amount for printed documents, e.g.
// 4800.50 -> "Four Thousand Eight Hundred Rupees and Fifty Paise Only".
func AmountInWords(amount decimal.Decimal) string {
	prefix := ""
	if amount.IsNegative() {
		prefix = "Minus "
		amount = amount.Neg()
	}
	amount = amount.Round(2)
	rupees := amount.IntPart()
	paise := amount.Sub(decimal.NewFromInt(rupees)).Shift(2).IntPart()

	var parts []string
	if rupees > 0 {
		parts = append(parts, fmt.Sprintf("%s Rupees", NumberToWords(rupees)))
	}
	if paise > 0 {
		parts = append(parts, fmt.Sprintf("%s Paise", NumberToWords(paise)))
	}
	if len(parts) == 0 {
		return "Zero Rupees Only"
	}
	return prefix + strings.Join(parts, " and ") + " Only"
}

// FormatINR prints an amount with Indian digit grouping: 1234567.5 -> "12,34,567.50".
func FormatINR(amount decimal.Decimal) string {
	s := amount.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")
	if len(intPart) > 3 {
		head, tail := intPart[:len(intPart)-3], intPart[len(intPart)-3:]
		var groups []string
		for len(head) > 2 {
			groups = append([]string{head[len(head)-2:]}, groups...)
			head = head[:len(head)-2]
		}
		if head != "" {
			groups = append([]string{head}, groups...)
		}
		intPart = strings.Join(groups, ",") + "," + tail
	}
	return sign + intPart + "." + frac
}
