package xmlconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadVolumeTable_Default(t *testing.T) {
	table, err := LoadVolumeTable("")
	require.NoError(t, err)

	can, ok := table.PerUnit("12oz Can")
	require.True(t, ok)
	assert.True(t, can.Equal(decimal.RequireFromString("0.00267")))

	keg, ok := table.PerUnit("1/2 Keg")
	require.True(t, ok)
	assert.True(t, keg.Equal(decimal.RequireFromString("0.5")))
}

func TestLoadVolumeTable_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "types.xml")
	xml := `<packageTypes><packageType name="Growler" volume="0.0161"/></packageTypes>`
	require.NoError(t, os.WriteFile(path, []byte(xml), 0o600))

	table, err := LoadVolumeTable(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Growler"}, table.Types())
}

func TestParseVolumeTable_Errors(t *testing.T) {
	cases := map[string]string{
		"not xml":        `<<packageTypes`,
		"wrong root":     `<types><packageType name="A" volume="1"/></types>`,
		"empty":          `<packageTypes/>`,
		"missing name":   `<packageTypes><packageType volume="1"/></packageTypes>`,
		"bad volume":     `<packageTypes><packageType name="A" volume="x"/></packageTypes>`,
		"zero volume":    `<packageTypes><packageType name="A" volume="0"/></packageTypes>`,
		"duplicate name": `<packageTypes><packageType name="A" volume="1"/><packageType name="A" volume="2"/></packageTypes>`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseVolumeTable([]byte(raw))
			assert.Error(t, err)
		})
	}
}
