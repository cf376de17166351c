package packaging

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// VolumeTable maps package type names to their volume per unit in barrels.
// It is built once at startup and never mutated afterwards.
type VolumeTable struct {
	perUnit map[string]decimal.Decimal
}

// NewVolumeTable copies the given entries. Every volume must be positive.
func NewVolumeTable(entries map[string]decimal.Decimal) (*VolumeTable, error) {
	perUnit := make(map[string]decimal.Decimal, len(entries))
	for name, vol := range entries {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("package type without name")
		}
		if !vol.GreaterThan(decimal.Zero) {
			return nil, fmt.Errorf("package type %q: volume must be positive", name)
		}
		perUnit[name] = vol
	}
	return &VolumeTable{perUnit: perUnit}, nil
}

// PerUnit returns the volume of one unit of packageType.
func (t *VolumeTable) PerUnit(packageType string) (decimal.Decimal, bool) {
	v, ok := t.perUnit[packageType]
	return v, ok
}

// Types lists the known package types sorted by name.
func (t *VolumeTable) Types() []string {
	out := make([]string, 0, len(t.perUnit))
	for name := range t.perUnit {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// IsKeg reports whether the package type is a keg variant ("1/2 Keg", "Sixtel Keg"...).
func IsKeg(packageType string) bool {
	return strings.Contains(strings.ToLower(packageType), "keg")
}

var kegCodePattern = regexp.MustCompile(`^[A-Z0-9-]+$`)

// ValidKegCode reports whether code matches the printed keg code format.
func ValidKegCode(code string) bool {
	return kegCodePattern.MatchString(code)
}

// FinishedGoodsIdentifier is the inventory identifier of a packaged product.
func FinishedGoodsIdentifier(productName, packageType string) string {
	return productName + " " + packageType
}

// VolumeTolerance absorbs rounding between batch volume and packaged units.
var VolumeTolerance = decimal.RequireFromString("0.01")
