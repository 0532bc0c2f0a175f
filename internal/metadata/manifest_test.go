package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseManifest_VersionAndDescription(t *testing.T) {
	manifest := `[package]
name = "surface-button"
version = "1.2.3"
edition = "2021"
description = "A driver"
`
	details, warnings := ParseManifest([]byte(manifest))

	assert.Empty(t, warnings)
	assert.Equal(t, "surface-button", details.PackageName)
	assert.Equal(t, "1.2.3", details.ProductVersion)
	assert.Equal(t, "1,2,3", details.FileVersion)
	assert.Equal(t, "A driver", details.Description)
}

func TestFileVersion(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1.2.3", "1,2,3"},
		{"2.0", "2,0"},
		{"10", "10"},
		{"", ""},
		{"1.2.3.4", "1,2,3,4"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FileVersion(tt.in))
		})
	}
}

func TestParseManifest_QuotedValueUsesFirstAndLastQuote(t *testing.T) {
	details, warnings := ParseManifest([]byte(`description = "Say "hi" to it" # trailing`))

	assert.Empty(t, warnings)
	assert.Equal(t, `Say "hi" to it`, details.Description)
}

func TestParseManifest_LastMatchWins(t *testing.T) {
	manifest := "version = \"0.1.0\"\nversion = \"2.0\"\n"
	details, _ := ParseManifest([]byte(manifest))

	assert.Equal(t, "2.0", details.ProductVersion)
	assert.Equal(t, "2,0", details.FileVersion)
}

func TestParseManifest_CRLF(t *testing.T) {
	details, warnings := ParseManifest([]byte("version = \"3.1\"\r\ndescription = \"x\"\r\n"))

	assert.Empty(t, warnings)
	assert.Equal(t, "3.1", details.ProductVersion)
	assert.Equal(t, "x", details.Description)
}

func TestParseManifest_UnquotedLinesWarn(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"no quotes", "version.workspace = true"},
		{"single quote", `version = "1.0`},
		{"description without quotes", "description = none"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			details, warnings := ParseManifest([]byte(tt.line))

			assert.Len(t, warnings, 1)
			assert.Empty(t, details.ProductVersion)
			assert.Empty(t, details.FileVersion)
			assert.Empty(t, details.Description)
		})
	}
}

func TestParseManifest_IndentedLinesIgnored(t *testing.T) {
	manifest := `[dependencies]
wdk = { version = "0.2.0" }
  version = "9.9.9"
`
	details, warnings := ParseManifest([]byte(manifest))

	assert.Empty(t, warnings)
	assert.Empty(t, details.ProductVersion)
}

func TestParseManifest_InvalidTOMLStillScansLines(t *testing.T) {
	details, _ := ParseManifest([]byte("version = \"1.0\"\n[[[broken\n"))

	assert.Equal(t, "1.0", details.ProductVersion)
	assert.Empty(t, details.PackageName)
}
