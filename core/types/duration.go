package types

import (
	"fmt"
	"strings"
	"time"
)

// Duration arguments use a compact, human-readable form: 1h30m45s.
//
//	duration  = component+
//	component = number unit
//	unit      = "y" | "w" | "d" | "h" | "m" | "s" | "ms" | "us" | "ns"
//
// Components appear in descending unit order and each unit at most once.
// Numbers are non-negative integers. Zero is written "0s".

// Unit multipliers beyond what the time package provides
const (
	Day  = 24 * time.Hour
	Week = 7 * Day
	Year = 365 * Day
)

// maxDuration is the largest representable duration (~292 years)
const maxDuration = time.Duration(1<<63 - 1)

// unitOrder defines the canonical order of units (descending)
var unitOrder = []struct {
	name       string
	multiplier time.Duration
}{
	{"y", Year},
	{"w", Week},
	{"d", Day},
	{"h", time.Hour},
	{"m", time.Minute},
	{"s", time.Second},
	{"ms", time.Millisecond},
	{"us", time.Microsecond},
	{"ns", time.Nanosecond},
}

// ParseDuration parses a compact duration string
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("duration cannot be empty")
	}

	var total, num time.Duration
	hasDigit := false
	lastUnit := -1

	for i := 0; i < len(s); {
		ch := s[i]
		if ch >= '0' && ch <= '9' {
			digit := time.Duration(ch - '0')
			if num > (maxDuration-digit)/10 {
				return 0, fmt.Errorf("invalid duration %q: number too large", s)
			}
			num = num*10 + digit
			hasDigit = true
			i++
			continue
		}

		if !hasDigit {
			return 0, fmt.Errorf("invalid duration %q: missing number before unit at position %d", s, i)
		}

		// Longest match first so "ms" wins over "m"
		matched, matchedLen := -1, 0
		for idx, unit := range unitOrder {
			if strings.HasPrefix(s[i:], unit.name) && len(unit.name) > matchedLen {
				matched, matchedLen = idx, len(unit.name)
			}
		}
		if matched < 0 {
			return 0, fmt.Errorf("invalid duration %q: unknown unit at position %d", s, i)
		}
		if matched <= lastUnit {
			return 0, fmt.Errorf("invalid duration %q: units must be in descending order", s)
		}
		lastUnit = matched

		mult := unitOrder[matched].multiplier
		if num > maxDuration/mult || total > maxDuration-num*mult {
			return 0, fmt.Errorf("invalid duration %q: overflow", s)
		}
		total += num * mult

		num = 0
		hasDigit = false
		i += matchedLen
	}

	if hasDigit {
		return 0, fmt.Errorf("invalid duration %q: missing unit after number", s)
	}

	return total, nil
}

// FormatDuration renders a duration in canonical compact form.
// Negative durations are clamped to "0s".
func FormatDuration(d time.Duration) string {
	if d <= 0 {
		return "0s"
	}

	var b strings.Builder
	remaining := d
	for _, unit := range unitOrder {
		if remaining >= unit.multiplier {
			fmt.Fprintf(&b, "%d%s", remaining/unit.multiplier, unit.name)
			remaining %= unit.multiplier
		}
	}
	return b.String()
}
