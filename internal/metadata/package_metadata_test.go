package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoPackageDoc = `{
  "packages": [
    {"name": "wdk-build", "metadata": null},
    {"name": "surface-button", "metadata": {"wdk": {
      "companyname": "Contoso",
      "copyright": "(c) Contoso",
      "productname": "Surface Button"
    }}}
  ],
  "version": 1
}`

func TestParsePackageMetadata_PositionalSecondEntry(t *testing.T) {
	details, warnings, err := ParsePackageMetadata([]byte(twoPackageDoc), PackageSelector{Index: 1}, "wdk")
	require.NoError(t, err)

	assert.Empty(t, warnings)
	assert.Equal(t, PackageDetails{
		CompanyName: "Contoso",
		Copyright:   "(c) Contoso",
		ProductName: "Surface Button",
	}, details)
}

func TestParsePackageMetadata_ByName(t *testing.T) {
	doc := `{"packages": [
		{"name": "surface-button", "metadata": {"wdk": {"companyname": "A", "copyright": "B", "productname": "C"}}},
		{"name": "other", "metadata": {"wdk": {"companyname": "X"}}}
	]}`

	details, warnings, err := ParsePackageMetadata([]byte(doc), PackageSelector{Name: "surface-button", Index: 1}, "wdk")
	require.NoError(t, err)

	assert.Empty(t, warnings)
	assert.Equal(t, "A", details.CompanyName)
	assert.Equal(t, "B", details.Copyright)
	assert.Equal(t, "C", details.ProductName)
}

func TestParsePackageMetadata_NoPackagesFound(t *testing.T) {
	tests := []struct {
		name     string
		doc      string
		selector PackageSelector
	}{
		{"single entry", `{"packages": [{"name": "only"}]}`, PackageSelector{Index: 1}},
		{"empty list", `{"packages": []}`, PackageSelector{Index: 1}},
		{"no packages key", `{"workspace_members": []}`, PackageSelector{Index: 1}},
		{"unknown name", twoPackageDoc, PackageSelector{Name: "missing"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			details, warnings, err := ParsePackageMetadata([]byte(tt.doc), tt.selector, "wdk")
			require.NoError(t, err)

			assert.Equal(t, PackageDetails{}, details)
			assert.Equal(t, []string{NoPackagesFound}, warnings)
		})
	}
}

func TestParsePackageMetadata_MissingFields(t *testing.T) {
	doc := `{"packages": [{}, {"name": "p", "metadata": {"wdk": {"copyright": "C", "productname": 7}}}]}`

	details, warnings, err := ParsePackageMetadata([]byte(doc), PackageSelector{Index: 1}, "wdk")
	require.NoError(t, err)

	assert.Equal(t, "C", details.Copyright)
	assert.Empty(t, details.CompanyName)
	assert.Empty(t, details.ProductName)
	assert.Equal(t, []string{
		"CompanyName not found in metadata.",
		"ProductName not found in metadata.",
	}, warnings)
}

func TestParsePackageMetadata_InvalidDocument(t *testing.T) {
	_, _, err := ParsePackageMetadata([]byte(`{"packages": [`), PackageSelector{Index: 1}, "wdk")
	assert.ErrorIs(t, err, ErrMetadataParse)

	_, _, err = ParsePackageMetadata(nil, PackageSelector{Index: 1}, "wdk")
	assert.ErrorIs(t, err, ErrMetadataParse)
}
