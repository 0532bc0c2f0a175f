// Package metadata builds the MetadataRecord from the package-manager metadata
// query and the package manifest.
package metadata

import (
	"context"
	"fmt"
	"os"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/wdkres/internal/common"
	"github.com/ternarybob/wdkres/internal/interfaces"
	"github.com/ternarybob/wdkres/internal/models"
)

// Extraction is the result of one metadata pass. Warnings lists every
// degraded condition that left a field empty.
type Extraction struct {
	Record   models.MetadataRecord
	Warnings []string
}

// Extractor reads both metadata sources
type Extractor struct {
	runner   interfaces.ProcessRunner
	manifest common.ManifestConfig
	config   common.MetadataConfig
	logger   arbor.ILogger
}

// NewExtractor creates an extractor using runner for the metadata query
func NewExtractor(runner interfaces.ProcessRunner, manifest common.ManifestConfig, config common.MetadataConfig, logger arbor.ILogger) *Extractor {
	return &Extractor{
		runner:   runner,
		manifest: manifest,
		config:   config,
		logger:   logger,
	}
}

// Extract populates a MetadataRecord on a best-effort basis. Only a failed or
// unparsable metadata query is returned as an error.
func (e *Extractor) Extract(ctx context.Context) (*Extraction, error) {
	result := &Extraction{}

	manifest := e.readManifest(result)

	selector := PackageSelector{Name: e.config.Package, Index: e.config.PackageIndex}
	if selector.Name == "" {
		selector.Name = manifest.PackageName
	}

	pkg, err := e.readPackageMetadata(ctx, selector, result)
	if err != nil {
		return nil, err
	}

	result.Record = models.MetadataRecord{
		CompanyName:    pkg.CompanyName,
		Copyright:      pkg.Copyright,
		ProductName:    pkg.ProductName,
		ProductVersion: manifest.ProductVersion,
		FileVersion:    manifest.FileVersion,
		Description:    manifest.Description,
	}

	e.logger.Info().
		Str("company", result.Record.CompanyName).
		Str("product", result.Record.ProductName).
		Str("version", result.Record.ProductVersion).
		Int("warnings", len(result.Warnings)).
		Msg("Metadata extracted")

	return result, nil
}

func (e *Extractor) readManifest(result *Extraction) ManifestDetails {
	e.logger.Info().Str("path", e.manifest.Path).Msg("Reading package manifest")

	data, err := os.ReadFile(e.manifest.Path)
	if err != nil {
		e.warn(result, fmt.Sprintf("Error reading %s: %v", e.manifest.Path, err))
		return ManifestDetails{}
	}

	details, warnings := ParseManifest(data)
	for _, w := range warnings {
		e.warn(result, w)
	}
	return details
}

func (e *Extractor) readPackageMetadata(ctx context.Context, selector PackageSelector, result *Extraction) (PackageDetails, error) {
	e.logger.Info().Strs("command", e.config.Command).Str("package", selector.String()).Msg("Querying package metadata")

	if len(e.config.Command) == 0 {
		return PackageDetails{}, fmt.Errorf("%w: no command configured", ErrMetadataCommand)
	}

	out, err := e.runner.Output(ctx, e.config.Command[0], e.config.Command[1:]...)
	if err != nil {
		return PackageDetails{}, fmt.Errorf("%w: %v", ErrMetadataCommand, err)
	}

	details, warnings, err := ParsePackageMetadata(out, selector, e.config.Section)
	if err != nil {
		return PackageDetails{}, err
	}
	for _, w := range warnings {
		e.warn(result, w)
	}
	return details, nil
}

func (e *Extractor) warn(result *Extraction, msg string) {
	result.Warnings = append(result.Warnings, msg)
	e.logger.Warn().Msg(msg)
}
