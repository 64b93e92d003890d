package main

import (
	"context"
	"fmt"
	"image"
	"runtime"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/sync/errgroup"
)

// Generator resizes a source image into every variant of the selected
// platforms.
type Generator struct {
	interp    Interpolation
	workers   int
	cacheSize int
	logger    hclog.Logger
}

// NewGenerator creates a generator. workers <= 0 uses one worker per CPU;
// cacheSize <= 0 disables the per-edge raster cache.
func NewGenerator(interp Interpolation, workers, cacheSize int, logger hclog.Logger) *Generator {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Generator{
		interp:    interp,
		workers:   workers,
		cacheSize: cacheSize,
		logger:    logger,
	}
}

// Generate returns the resized icons per platform, each list ordered by
// variant name. Variants that fail to resize are skipped and reported in the
// returned warnings. The error is non-nil only when nothing can be generated
// at all: missing source or cancelled context.
func (g *Generator) Generate(ctx context.Context, src image.Image, platforms []Platform) (map[Platform][]ResizedIcon, []error, error) {
	if src == nil {
		return nil, nil, ErrMissingSourceImage
	}
	r, err := newSourceResizer(src, g.interp, g.cacheSize)
	if err != nil {
		return nil, nil, err
	}

	type job struct {
		platform Platform
		variant  Variant
	}
	var jobs []job
	var warnings []error
	out := make(map[Platform][]ResizedIcon)

	for _, p := range platforms {
		variants := variantsFor(p)
		if len(variants) == 0 {
			warnings = append(warnings, fmt.Errorf("%w: %s has no catalog entry", ErrUnknownPlatform, p))
			g.logger.Warn("skipping platform without catalog entry", "platform", p.String())
			continue
		}
		for _, v := range variants {
			jobs = append(jobs, job{platform: p, variant: v})
		}
	}

	// Each job writes only its own slot, so no locking is needed and the
	// result order matches the job order.
	results := make([]image.Image, len(jobs))
	errs := make([]error, len(jobs))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.workers)
	for i, j := range jobs {
		i, j := i, j
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			img, err := r.resize(j.variant.Pixels)
			if err != nil {
				errs[i] = fmt.Errorf("%s %s: %w", j.platform, j.variant.Name, err)
				return nil
			}
			results[i] = img
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, nil, err
	}

	for i, j := range jobs {
		if errs[i] != nil {
			g.logger.Warn("resize failed", "platform", j.platform.String(), "variant", j.variant.Name, "error", errs[i])
			warnings = append(warnings, errs[i])
			continue
		}
		out[j.platform] = append(out[j.platform], ResizedIcon{
			Platform: j.platform,
			Variant:  j.variant,
			Image:    results[i],
		})
	}
	for _, p := range platforms {
		g.logger.Debug("resized platform", "platform", p.String(), "icons", len(out[p]))
	}
	return out, warnings, nil
}
