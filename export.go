package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	"slices"

	"github.com/hashicorp/go-hclog"
)

// ExportOptions is the caller's selection for one export.
type ExportOptions struct {
	Platforms   []Platform
	Destination string
	Combined    bool
}

// Exporter runs a full export: resize every variant, then write the catalog.
type Exporter struct {
	generator *Generator
	writer    *CatalogWriter
	logger    hclog.Logger
}

// NewExporter wires a generator and writer sharing logger.
func NewExporter(cfg Config, logger hclog.Logger) *Exporter {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Exporter{
		generator: NewGenerator(Interpolation(cfg.Interpolation), cfg.Workers, cfg.CacheSize, logger.Named("generate")),
		writer:    NewCatalogWriter(logger.Named("write")),
		logger:    logger,
	}
}

// Export regenerates every requested icon from src. It returns an error when
// there is nothing to export; otherwise the Result carries per-icon warnings
// and per-directory failures.
func (e *Exporter) Export(ctx context.Context, src image.Image, opts ExportOptions) (*Result, error) {
	if src == nil {
		return nil, ErrMissingSourceImage
	}
	platforms := append([]Platform(nil), opts.Platforms...)
	sortPlatforms(platforms)
	platforms = slices.Compact(platforms)
	if len(platforms) == 0 {
		return nil, ErrNoPlatformSelected
	}
	if opts.Destination == "" {
		return nil, errors.New("export: destination directory is required")
	}

	e.logger.Info("exporting", "platforms", platformNamesOf(platforms), "destination", opts.Destination, "combined", opts.Combined)

	images, warnings, err := e.generator.Generate(ctx, src, platforms)
	if err != nil {
		return nil, fmt.Errorf("generate icons: %w", err)
	}

	res := e.writer.WriteCatalog(images, opts.Destination, opts.Combined)
	res.Warnings = append(warnings, res.Warnings...)
	for _, p := range platforms {
		if p.Valid() && len(images[p]) == 0 {
			e.logger.Error("no icons generated", "platform", p.String())
			res.fail(fmt.Errorf("%w: %s: no icons generated", ErrResizeFailure, p))
		}
	}
	return res, nil
}
