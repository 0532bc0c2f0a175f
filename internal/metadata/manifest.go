package metadata

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// ManifestDetails holds the fields read from the package manifest
type ManifestDetails struct {
	PackageName    string
	ProductVersion string
	FileVersion    string
	Description    string
}

// manifestPackage is the structured view of the manifest used only to learn
// the package name. Version and description are read line by line.
type manifestPackage struct {
	Package struct {
		Name string `toml:"name"`
	} `toml:"package"`
}

// ParseManifest scans the manifest text for lines starting with "version" and
// "description" and extracts the quoted value on each. The last matching line
// wins. Lines with fewer than two double quotes leave the field unchanged and
// produce a warning.
func ParseManifest(data []byte) (ManifestDetails, []string) {
	var details ManifestDetails
	var warnings []string

	scanner := bufio.NewScanner(bytes.NewReader(data))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSuffix(scanner.Text(), "\r")

		switch {
		case strings.HasPrefix(line, "version"):
			value, ok := quotedValue(line)
			if !ok {
				warnings = append(warnings, fmt.Sprintf("manifest line %d: version has no quoted value: %s", lineNo, line))
				continue
			}
			details.ProductVersion = value
			details.FileVersion = FileVersion(value)
		case strings.HasPrefix(line, "description"):
			value, ok := quotedValue(line)
			if !ok {
				warnings = append(warnings, fmt.Sprintf("manifest line %d: description has no quoted value: %s", lineNo, line))
				continue
			}
			details.Description = value
		}
	}
	if err := scanner.Err(); err != nil {
		warnings = append(warnings, fmt.Sprintf("manifest scan stopped: %v", err))
	}

	var pkg manifestPackage
	if err := toml.Unmarshal(data, &pkg); err == nil {
		details.PackageName = pkg.Package.Name
	}

	return details, warnings
}

// quotedValue returns the text between the first and last double quote on line
func quotedValue(line string) (string, bool) {
	start := strings.IndexByte(line, '"')
	end := strings.LastIndexByte(line, '"')
	if start < 0 || end <= start {
		return "", false
	}
	return line[start+1 : end], true
}

// FileVersion converts a dotted product version into the comma-joined form
// used by the VERSIONINFO FILEVERSION statement: "1.2.3" -> "1,2,3".
func FileVersion(productVersion string) string {
	return strings.Join(strings.Split(productVersion, "."), ",")
}
