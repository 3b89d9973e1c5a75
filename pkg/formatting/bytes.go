// Package formatting converts byte counts to and from human-readable sizes.
package formatting

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
)

// Base-1024 units, indexed by exponent.
var units = []string{"B", "KB", "MB", "GB", "TB", "PB", "EB"}

// FormatBytes renders n with the largest unit that keeps the value at or
// above one, e.g. 1536 with precision 1 is "1.5 KB".
func FormatBytes(n int64, precision int) string {
	if n <= 0 {
		return "0 B"
	}
	precision = max(precision, 0)

	value, exp := float64(n), 0
	for value >= 1024 && exp < len(units)-1 {
		value /= 1024
		exp++
	}

	return strconv.FormatFloat(value, 'f', precision, 64) + " " + units[exp]
}

// ParseBytes parses sizes such as "2MB", "512 kb", or "2048" (bytes) into a
// byte count. Units are base-1024 and case-insensitive.
func ParseBytes(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty byte size")
	}

	split := strings.IndexFunc(s, func(r rune) bool {
		return (r < '0' || r > '9') && r != '.'
	})

	number, unit := s, "B"
	if split >= 0 {
		number = s[:split]
		unit = strings.ToUpper(strings.TrimSpace(s[split:]))
	}

	if number == "" {
		return 0, fmt.Errorf("invalid byte size: %q", s)
	}

	value, err := strconv.ParseFloat(number, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid byte size %q: %w", s, err)
	}

	exp := slices.Index(units, unit)
	if exp < 0 {
		return 0, fmt.Errorf("unknown byte size unit %q", unit)
	}

	return int64(value * math.Pow(1024, float64(exp))), nil
}
