package permit

import (
	"errors"
	"strings"
	"unicode"

	"github.com/ppiankov/tjporte/internal/roles"
)

// MaxPassportDigits is the longest passport accepted after separators are removed.
const MaxPassportDigits = 11

var (
	ErrNonNumericPassport = errors.New("passport must contain only digits")
	ErrPassportTooLong    = errors.New("passport exceeds maximum digit count")
)

// ValidatePassport strips '.', '-' and whitespace from raw and returns the
// remaining digits. An empty result counts as non-numeric.
func ValidatePassport(raw string) (string, error) {
	cleaned := strings.Map(func(r rune) rune {
		if r == '.' || r == '-' || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, raw)

	if cleaned == "" {
		return "", ErrNonNumericPassport
	}
	for _, r := range cleaned {
		if r < '0' || r > '9' {
			return "", ErrNonNumericPassport
		}
	}
	if len(cleaned) > MaxPassportDigits {
		return "", ErrPassportTooLong
	}
	return cleaned, nil
}

// BlocksSelfRequest reports whether a judge is naming themself as both
// attorney and client. A judge represented by someone else is not blocked.
func BlocksSelfRequest(table roles.Table, held roles.Set, displayName, attorney, client string) bool {
	return table.IsJudge(held) && attorney == displayName && client == displayName
}
