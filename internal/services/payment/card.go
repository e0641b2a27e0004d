package payment

import (
	"strings"
	"time"

	"ustat/internal/domain"
)

// Validate accepts either a stored method id or a complete card.
func Validate(p domain.PaymentDetails) error {
	if p.PaymentMethodID != "" {
		return nil
	}
	p.CardNumber = Digits(p.CardNumber)
	return validateCard(p, time.Now())
}

// Digits strips spaces and dashes from a card number as typed.
func Digits(s string) string {
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '-' {
			return -1
		}
		return r
	}, s)
}

func validateCard(p domain.PaymentDetails, now time.Time) error {
	if strings.TrimSpace(p.CardHolder) == "" {
		return domain.Invalid("cardHolder", "card holder name is required")
	}
	n := p.CardNumber
	if len(n) < 12 || len(n) > 19 || !allDigits(n) || !luhn(n) {
		return domain.Invalid("cardNumber", "card number is not valid")
	}
	if p.ExpiryMonth < 1 || p.ExpiryMonth > 12 {
		return domain.Invalid("expiryMonth", "expiry month must be between 1 and 12")
	}
	year := p.ExpiryYear
	if year < 100 {
		year += 2000
	}
	if year < now.Year() || (year == now.Year() && p.ExpiryMonth < int(now.Month())) {
		return domain.Invalid("expiryYear", "card has expired")
	}
	if l := len(p.CVC); l < 3 || l > 4 || !allDigits(p.CVC) {
		return domain.Invalid("cvc", "security code must be 3 or 4 digits")
	}
	return nil
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

func luhn(s string) bool {
	sum := 0
	double := false
	for i := len(s) - 1; i >= 0; i-- {
		d := int(s[i] - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}
