package util

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

// ErrNoDigits is returned by ParseAmount when the input contains no digit
// characters at all.
var ErrNoDigits = errors.New("no digits in input")

var nonNumericRegex = regexp.MustCompile(`[^\d]`)

// CleanNumericString strips every non-digit character from s.
func CleanNumericString(s string) string {
	return nonNumericRegex.ReplaceAllString(s, "")
}

// ParseAmount normalizes a raw currency string ("$3,456,789") to its integer
// value by keeping only digit characters. An input without any digits is an
// error, for facts whose absence must abort the invocation.
func ParseAmount(s string) (int64, error) {
	digits := CleanNumericString(s)
	if digits == "" {
		return 0, ErrNoDigits
	}
	return strconv.ParseInt(digits, 10, 64)
}

// SafeCount normalizes a raw count string ("3 Winner(s)") the same way but
// defaults to 0 when unparsable, for facts where zero is a sensible default.
func SafeCount(s string) int {
	i, err := strconv.Atoi(CleanNumericString(s))
	if err != nil {
		return 0
	}
	return i
}

// FormatWithCommas renders n with thousands separators (2000000 -> "2,000,000").
func FormatWithCommas(n int64) string {
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
