package utils

import (
	"regexp"
	"strings"
)

var nonDigitRegexp = regexp.MustCompile(`\D`)

// NormalizeYemeniPhoneNumber returns the 9-digit local mobile number, or "" if the input is not one.
// Accepts +967, 00967 and 0 prefixes.
func NormalizeYemeniPhoneNumber(phone string) string {
	digits := nonDigitRegexp.ReplaceAllString(phone, "")
	digits = strings.TrimPrefix(digits, "00")
	if len(digits) == 12 && strings.HasPrefix(digits, "967") {
		digits = digits[3:]
	}
	if len(digits) == 10 && strings.HasPrefix(digits, "0") {
		digits = digits[1:]
	}
	if len(digits) != 9 || digits[0] != '7' {
		return ""
	}
	return digits
}
