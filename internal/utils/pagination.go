// Package utils holds small helpers shared across layers, independent of the
// chat or recipe domain.
package utils

import "strconv"

// AtoiDefault parses s as an int, returning def when s is empty or not a
// valid integer. Used for lenient query parameters such as ?limit, where a
// garbled value should fall back rather than fail the request.
//
// Example:
//
//	limit := utils.AtoiDefault(c.Query("limit"), 100) // "?limit=25" → 25
//	limit = utils.AtoiDefault("", 100)                // → 100
//	limit = utils.AtoiDefault("lots", 100)            // → 100
func AtoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return def
}
