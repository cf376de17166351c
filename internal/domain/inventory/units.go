package inventory

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var lower = cases.Lower(language.Und)

// unitAliases maps spellings that must compare equal to a canonical unit.
var unitAliases = map[string]string{
	"pounds": "lbs",
}

// NormalizeUnit lower-cases a unit and maps known aliases ("pounds" -> "lbs").
// Both sides of every quantity comparison go through it.
func NormalizeUnit(unit string) string {
	u := lower.String(strings.TrimSpace(unit))
	if alias, ok := unitAliases[u]; ok {
		return alias
	}
	return u
}

// SameUnit reports whether two unit spellings are equal after normalization.
func SameUnit(a, b string) bool {
	return NormalizeUnit(a) == NormalizeUnit(b)
}
