// Package phone normalizes Brazilian phone numbers typed by humans.
package phone

import (
	"errors"
	"strings"
)

const (
	countryCode = "55"
	minDigits   = 10
	maxDigits   = 15
)

var (
	ErrEmptyPhone   = errors.New("phone number is empty")
	ErrInvalidPhone = errors.New("phone number must have between 10 and 15 digits")
)

// Digits strips every non-digit character.
func Digits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Validate returns the digits of s when it holds a plausible phone number.
func Validate(s string) (string, error) {
	d := Digits(s)
	if d == "" {
		return "", ErrEmptyPhone
	}
	if len(d) < minDigits || len(d) > maxDigits {
		return "", ErrInvalidPhone
	}
	return d, nil
}

// NormalizeBR formats a number for the WhatsApp gateway, prefixing the
// Brazilian country code when the number looks local.
//
//	"(11) 91234-5678" -> "5511912345678"
//	"5511912345678"   -> "5511912345678"
func NormalizeBR(s string) (string, error) {
	d := Digits(s)
	if d == "" {
		return "", ErrEmptyPhone
	}

	switch n := len(d); {
	case n == 10 || n == 11:
		// area code + local number
		return countryCode + d, nil
	case (n == 12 || n == 13) && strings.HasPrefix(d, countryCode):
		return d, nil
	case n == 12:
		return countryCode + d, nil
	default:
		return d, nil
	}
}
