// -----------------------------------------------------------------------
// Last Modified: Sunday, 18th October 2026 10:12:40 am
// Modified By: Bob McAllan
// -----------------------------------------------------------------------

package app

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/wdkres/internal/common"
	"github.com/ternarybob/wdkres/internal/compiler"
	"github.com/ternarybob/wdkres/internal/descriptor"
	"github.com/ternarybob/wdkres/internal/interfaces"
	"github.com/ternarybob/wdkres/internal/metadata"
	"github.com/ternarybob/wdkres/internal/models"
	"github.com/ternarybob/wdkres/internal/process"
)

// App wires the three build steps: metadata extraction, descriptor
// generation and resource compilation. Steps run strictly in sequence.
type App struct {
	Config *common.Config
	Logger arbor.ILogger

	Extractor *metadata.Extractor
	Generator *descriptor.Generator
	Invoker   *compiler.Invoker
}

// New initializes the application with an os/exec process runner
func New(config *common.Config, logger arbor.ILogger) (*App, error) {
	return NewWithRunner(config, logger, process.NewExecRunner(logger))
}

// NewWithRunner initializes the application with a caller-supplied process runner
func NewWithRunner(config *common.Config, logger arbor.ILogger, runner interfaces.ProcessRunner) (*App, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &App{
		Config:    config,
		Logger:    logger,
		Extractor: metadata.NewExtractor(runner, config.Manifest, config.Metadata, logger),
		Generator: descriptor.NewGenerator(config.Descriptor, logger),
		Invoker:   compiler.NewInvoker(runner, config.Compiler, logger),
	}, nil
}

// Extract runs the metadata step only
func (a *App) Extract(ctx context.Context) (*metadata.Extraction, error) {
	result, err := a.Extractor.Extract(ctx)
	if err != nil {
		return nil, fmt.Errorf("extract metadata: %w", err)
	}
	return result, nil
}

// Generate extracts metadata and writes the descriptor without compiling it
func (a *App) Generate(ctx context.Context) (*metadata.Extraction, error) {
	result, err := a.Extract(ctx)
	if err != nil {
		return nil, err
	}
	if err := a.Generator.Generate(result.Record); err != nil {
		return result, fmt.Errorf("generate descriptor: %w", err)
	}
	return result, nil
}

// GenerateAndCompile runs all three steps. Include paths are validated before
// the descriptor is written.
func (a *App) GenerateAndCompile(ctx context.Context, includes models.IncludePathSet) (*models.CompilerInvocation, error) {
	if err := includes.Validate(); err != nil {
		return nil, err
	}

	if _, err := a.Generate(ctx); err != nil {
		return nil, err
	}

	invocation, err := a.Invoker.Compile(ctx, includes, a.Generator.Path())
	if err != nil {
		return invocation, fmt.Errorf("compile descriptor: %w", err)
	}
	return invocation, nil
}
