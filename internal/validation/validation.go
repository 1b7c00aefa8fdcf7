// Package validation holds the pure credential checks applied before any
// account is created or updated.
package validation

import (
	"errors"
	"regexp"
	"strings"
	"unicode"
)

var (
	ErrInvalidFormat = errors.New("invalid format")
	ErrWeakPassword  = errors.New("password too weak")
)

var emailRe = regexp.MustCompile(`^[a-zA-Z0-9.!#$%&'*+/=?^_` + "`" + `{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)+$`)

// specialChars is the set accepted by Password.
const specialChars = "!@#$%^&*()-_=+[]{};:'\",.<>/?\\|~`"

// Email reports ErrInvalidFormat unless s is a syntactically valid address.
func Email(s string) error {
	if !emailRe.MatchString(s) {
		return ErrInvalidFormat
	}
	return nil
}

// Name reports ErrInvalidFormat unless s is non-empty and letters only.
func Name(s string) error {
	if s == "" {
		return ErrInvalidFormat
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return ErrInvalidFormat
		}
	}
	return nil
}

// Password requires length >= 8 with at least one lowercase letter, one
// uppercase letter, one digit and one special character.
func Password(s string) error {
	if len(s) < 8 {
		return ErrWeakPassword
	}
	var lower, upper, digit, special bool
	for _, r := range s {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune(specialChars, r):
			special = true
		}
	}
	if !lower || !upper || !digit || !special {
		return ErrWeakPassword
	}
	return nil
}
