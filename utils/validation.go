package utils

import (
	"fmt"
	"strings"
)

// ValidateRequired checks if a string field is not empty
func ValidateRequired(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return NewValidationError(fmt.Sprintf("%s is required", fieldName))
	}
	return nil
}

// ValidatePositive checks if a number is positive
func ValidatePositive(value float64, fieldName string) error {
	if value <= 0 {
		return NewValidationError(fmt.Sprintf("%s must be positive", fieldName))
	}
	return nil
}

// NormalizeMobile canonicalizes a mobile number. Bare 10-digit numbers get
// the +91 country prefix; anything else keeps its digits behind a +.
func NormalizeMobile(mobile string) string {
	var digits strings.Builder
	for _, r := range mobile {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	digitsOnly := digits.String()
	if len(digitsOnly) == 10 {
		return "+91" + digitsOnly
	}
	if strings.HasPrefix(mobile, "+") {
		return mobile
	}
	return "+" + digitsOnly
}
