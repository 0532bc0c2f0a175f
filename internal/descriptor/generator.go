// Package descriptor renders the resource descriptor (.rc) file from a
// MetadataRecord.
package descriptor

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/wdkres/internal/common"
	"github.com/ternarybob/wdkres/internal/models"
)

// ErrWriteDescriptor is returned when the descriptor cannot be rendered or written
var ErrWriteDescriptor = errors.New("unable to write descriptor file")

// Generator writes the descriptor to its configured path, replacing any
// previous copy.
type Generator struct {
	config common.DescriptorConfig
	logger arbor.ILogger
}

// NewGenerator creates a generator for the configured descriptor
func NewGenerator(config common.DescriptorConfig, logger arbor.ILogger) *Generator {
	return &Generator{config: config, logger: logger}
}

// Path returns the descriptor location
func (g *Generator) Path() string {
	return g.config.Path
}

// Generate removes a stale descriptor, renders record and writes the new
// descriptor. Failing to remove the stale file is only logged; failing to
// write the new one is an error.
func (g *Generator) Generate(record models.MetadataRecord) error {
	g.logger.Info().Str("path", g.config.Path).Msg("Set and create descriptor file")

	g.removeStale()

	var buf bytes.Buffer
	if err := Render(&buf, g.config, record); err != nil {
		return fmt.Errorf("%w: render: %v", ErrWriteDescriptor, err)
	}

	if dir := filepath.Dir(g.config.Path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteDescriptor, err)
		}
	}
	if err := os.WriteFile(g.config.Path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteDescriptor, err)
	}

	g.logger.Info().Str("path", g.config.Path).Int("bytes", buf.Len()).Msg("Descriptor file written")
	return nil
}

func (g *Generator) removeStale() {
	if _, err := os.Stat(g.config.Path); err != nil {
		g.logger.Info().Str("path", g.config.Path).Msg("Descriptor file does not exist")
		return
	}

	if err := os.Remove(g.config.Path); err != nil {
		g.logger.Warn().Err(err).Str("path", g.config.Path).Msg("Error deleting descriptor file")
		return
	}
	g.logger.Info().Str("path", g.config.Path).Msg("Stale descriptor file deleted")
}
