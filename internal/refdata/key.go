package refdata

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NormalizeKey returns the dedup key for a city: "<name>_<country>", each part
// trimmed and lower-cased with full Unicode case mapping.
//
// Two cities are the same city iff their keys are equal. No fuzzy matching.
func NormalizeKey(name, country string) string {
	return lower(strings.TrimSpace(name)) + "_" + lower(strings.TrimSpace(country))
}

// lower uses a fresh Caser per call; cases.Caser is stateful and not safe to share.
func lower(s string) string {
	return cases.Lower(language.Und).String(s)
}
