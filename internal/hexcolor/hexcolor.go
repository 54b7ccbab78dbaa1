// Package hexcolor validates and normalizes #RRGGBB color strings.
package hexcolor

import (
	"errors"
	"regexp"
	"strings"
)

var ErrInvalid = errors.New("color must be #RRGGBB")

var pattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Valid reports whether s is exactly a '#' followed by six hex digits.
// Surrounding whitespace is not tolerated.
func Valid(s string) bool {
	return pattern.MatchString(s)
}

// Normalize uppercases a valid color.
func Normalize(s string) (string, error) {
	if !Valid(s) {
		return "", ErrInvalid
	}
	return strings.ToUpper(s), nil
}

// MustNormalize is for constants and tests.
func MustNormalize(s string) string {
	n, err := Normalize(s)
	if err != nil {
		panic("invalid color " + s)
	}
	return n
}
