package catalog

import (
	"strconv"
	"strings"
)

// Defaults and caps for untrusted query parameters.
const (
	DefaultSearchLimit      = 36
	DefaultComparablesLimit = 6
	MaxComparablesLimit     = 20
	DefaultHistoryWeeks     = 26
	MaxHistoryWeeks         = 104
	DefaultDropsLimit       = 20
	DefaultThemesLimit      = 12
)

const (
	SortBySetNumber = "set_number"
	SortByTitle     = "title"
	SortByPrice     = "price"

	SortAsc  = "asc"
	SortDesc = "desc"
)

// ParsePositiveInt parses a strictly positive integer, stripping any
// non-numeric characters first. Anything unusable falls back.
func ParsePositiveInt(value string, fallback int) int {
	n := CoerceInt(value)
	if n == nil || *n <= 0 {
		return fallback
	}
	return *n
}

// ParseBoundedPositiveInt is ParsePositiveInt clamped to a maximum.
func ParseBoundedPositiveInt(value string, fallback, max int) int {
	n := ParsePositiveInt(value, fallback)
	if n > max {
		return max
	}
	return n
}

// ParseNonNegativeInt parses an integer >= 0, falling back on anything else.
func ParseNonNegativeInt(value string, fallback int) int {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || parsed < 0 {
		return fallback
	}
	return parsed
}

// ParseListParam splits a comma-separated parameter, trims entries and
// drops duplicates while preserving first-seen order.
func ParseListParam(value string) []string {
	raw := strings.TrimSpace(value)
	if raw == "" {
		return nil
	}
	seen := make(map[string]struct{})
	var out []string
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if _, dup := seen[item]; dup {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}

// ParseSortBy restricts sort_by to the allow-list, silently resetting
// anything else to set_number.
func ParseSortBy(value string) string {
	switch value {
	case SortBySetNumber, SortByTitle, SortByPrice:
		return value
	default:
		return SortBySetNumber
	}
}

// ParseSortDir restricts sort_dir to asc/desc, defaulting to asc.
func ParseSortDir(value string) string {
	if value == SortDesc {
		return SortDesc
	}
	return SortAsc
}
