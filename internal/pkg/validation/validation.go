package validation

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// same shape check the browser form applies: something@something.tld
var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Names: letters, spaces, dots, hyphens, apostrophes.
var nameRe = regexp.MustCompile(`^[\p{L}\s.\-']+$`)

func IsValidEmail(email string) bool {
	return emailRe.MatchString(email)
}

func IsValidName(name string) bool {
	return strings.TrimSpace(name) != "" && nameRe.MatchString(name)
}

// ParseDecimal reads a query or form value, falling back to def when empty.
func ParseDecimal(raw string, def decimal.Decimal) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, nil
	}
	return decimal.NewFromString(raw)
}
