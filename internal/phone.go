// Package internal contains small helpers shared across the service.
package internal

import (
	"fmt"

	"github.com/nyaruka/phonenumbers"
)

// DefaultPhoneCountry is the region used to parse phone numbers given
// without a country prefix.
const DefaultPhoneCountry = "KR"

// SanitizeAndVerifyPhoneNumber normalizes the phone number captured during
// payment confirmation into E.164-like form.
func SanitizeAndVerifyPhoneNumber(phone string) (string, error) {
	pn, err := phonenumbers.Parse(phone, DefaultPhoneCountry)
	if err != nil {
		return "", fmt.Errorf("invalid phone number %s: %w", phone, err)
	}
	if !phonenumbers.IsValidNumber(pn) {
		return "", fmt.Errorf("invalid phone number %s", phone)
	}
	// Build the phone number string
	return fmt.Sprintf("+%d%d", pn.GetCountryCode(), pn.GetNationalNumber()), nil
}
