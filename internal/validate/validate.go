package validate

import (
	"strconv"
	"strings"
)

// ID parses a positive integer resource identifier.
func ID(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// Qty clamps a line quantity into a sane window.
func Qty(n int) int {
	if n < 1 {
		return 1
	}
	if n > 99 {
		return 99
	} // clamp to avoid abuse
	return n
}

var statuses = map[string]bool{
	"pending":   true,
	"paid":      true,
	"shipped":   true,
	"cancelled": true,
}

// Status validates allowed order status values.
func Status(s string) (string, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	return s, statuses[s]
}

// Variant trims an optional size/color field to a displayable length.
func Variant(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > 30 {
		s = s[:30]
	}
	return s
}
