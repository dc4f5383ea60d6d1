package util

import (
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// CleanText trims surrounding space and NFC-normalises s so that Thai input typed
// with different combining-mark orders compares equal.
func CleanText(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// FormatDegrees prints a degree value without trailing zeros.
func FormatDegrees(d float64) string {
	return strconv.FormatFloat(d, 'f', -1, 64)
}
