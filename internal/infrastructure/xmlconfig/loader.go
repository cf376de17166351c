// Package xmlconfig loads the package-type volume table from XML.
package xmlconfig

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/brewery-api/internal/domain/packaging"
)

//go:embed package_types.xml
var defaultPackageTypes []byte

// LoadVolumeTable reads the table from path, or the built-in table when
// path is empty.
func LoadVolumeTable(path string) (*packaging.VolumeTable, error) {
	if path == "" {
		return ParseVolumeTable(defaultPackageTypes)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("xmlconfig: read %s: %w", path, err)
	}
	return ParseVolumeTable(raw)
}

// ParseVolumeTable parses <packageTypes><packageType name=".." volume=".."/></packageTypes>.
func ParseVolumeTable(raw []byte) (*packaging.VolumeTable, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(raw); err != nil {
		return nil, fmt.Errorf("xmlconfig: parse XML: %w", err)
	}
	root := doc.SelectElement("packageTypes")
	if root == nil {
		return nil, fmt.Errorf("xmlconfig: missing <packageTypes> root")
	}

	entries := make(map[string]decimal.Decimal)
	for i, el := range root.SelectElements("packageType") {
		name := strings.TrimSpace(el.SelectAttrValue("name", ""))
		if name == "" {
			return nil, fmt.Errorf("xmlconfig: packageType #%d without name", i+1)
		}
		if _, dup := entries[name]; dup {
			return nil, fmt.Errorf("xmlconfig: package type %q declared twice", name)
		}
		vol, err := decimal.NewFromString(el.SelectAttrValue("volume", ""))
		if err != nil {
			return nil, fmt.Errorf("xmlconfig: package type %q: invalid volume: %w", name, err)
		}
		entries[name] = vol
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("xmlconfig: no package types declared")
	}
	return packaging.NewVolumeTable(entries)
}
