package models

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// ErrNonUnicodePath is returned when an include path is not valid unicode text
var ErrNonUnicodePath = errors.New("non unicode paths are not supported")

// MetadataRecord is the flat versioning/descriptive metadata rendered into the
// resource descriptor. Every field defaults to the empty string when its source
// is absent.
type MetadataRecord struct {
	CompanyName    string `toml:"company_name" json:"company_name"`
	Copyright      string `toml:"copyright" json:"copyright"`
	ProductName    string `toml:"product_name" json:"product_name"`
	ProductVersion string `toml:"product_version" json:"product_version"` // dotted, e.g. "1.2.3"
	FileVersion    string `toml:"file_version" json:"file_version"`       // comma-joined, e.g. "1,2,3"
	Description    string `toml:"description" json:"description"`
}

// IncludePathSet is the ordered list of directories passed to the resource
// compiler. Order is significant: earlier entries take precedence.
type IncludePathSet []string

// Validate rejects any path that is not valid UTF-8 text
func (s IncludePathSet) Validate() error {
	for i, p := range s {
		if !utf8.ValidString(p) {
			return fmt.Errorf("include path %d (%q): %w", i, p, ErrNonUnicodePath)
		}
	}
	return nil
}

// CompilerInvocation describes one run of the external resource compiler
type CompilerInvocation struct {
	Executable string
	Args       []string
	ExitCode   int
}
