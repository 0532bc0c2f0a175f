package metadata

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

var (
	// ErrMetadataCommand is returned when the package metadata query cannot be run
	ErrMetadataCommand = errors.New("package metadata command failed")
	// ErrMetadataParse is returned when the query output is not a valid document
	ErrMetadataParse = errors.New("failed to parse package metadata")
)

// NoPackagesFound is the diagnostic recorded when no package entry matches
const NoPackagesFound = "No packages found in metadata."

// PackageSelector picks the package entry whose metadata section is read.
// Name takes precedence; Index is used only when Name is empty.
type PackageSelector struct {
	Name  string
	Index int
}

func (s PackageSelector) String() string {
	if s.Name != "" {
		return fmt.Sprintf("name=%s", s.Name)
	}
	return fmt.Sprintf("index=%d", s.Index)
}

// PackageDetails holds the fields read from the package metadata section
type PackageDetails struct {
	CompanyName string
	Copyright   string
	ProductName string
}

// ParsePackageMetadata reads companyname, copyright and productname from
// packages[*].metadata.<section> of a package-manager metadata document.
// An invalid document is an error; a missing package or field is a warning
// and leaves the corresponding value empty.
func ParsePackageMetadata(doc []byte, selector PackageSelector, section string) (PackageDetails, []string, error) {
	var details PackageDetails
	var warnings []string

	if !gjson.ValidBytes(doc) {
		return details, nil, ErrMetadataParse
	}

	pkg, ok := selectPackage(gjson.GetBytes(doc, "packages"), selector)
	if !ok {
		return details, append(warnings, NoPackagesFound), nil
	}

	wdk := pkg.Get("metadata." + section)
	fields := []struct {
		key   string
		label string
		dst   *string
	}{
		{"companyname", "CompanyName", &details.CompanyName},
		{"copyright", "Copyright", &details.Copyright},
		{"productname", "ProductName", &details.ProductName},
	}
	for _, f := range fields {
		value := wdk.Get(f.key)
		if value.Type != gjson.String {
			warnings = append(warnings, fmt.Sprintf("%s not found in metadata.", f.label))
			continue
		}
		*f.dst = value.String()
	}

	return details, warnings, nil
}

func selectPackage(packages gjson.Result, selector PackageSelector) (gjson.Result, bool) {
	if !packages.IsArray() {
		return gjson.Result{}, false
	}
	list := packages.Array()

	if selector.Name != "" {
		for _, pkg := range list {
			if pkg.Get("name").String() == selector.Name {
				return pkg, true
			}
		}
		return gjson.Result{}, false
	}

	if selector.Index < 0 || selector.Index >= len(list) {
		return gjson.Result{}, false
	}
	return list[selector.Index], true
}
