package main

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/fogleman/gg"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/nfnt/resize"
	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Interpolation selects the resampling method used to resize the source.
type Interpolation string

const (
	InterpNearest    Interpolation = "nearest"
	InterpBilinear   Interpolation = "bilinear"
	InterpCatmullRom Interpolation = "catmullrom"
	InterpLanczos3   Interpolation = "lanczos3"
)

// ValidInterpolation reports whether name is a supported interpolation.
func ValidInterpolation(name string) bool {
	switch Interpolation(name) {
	case InterpNearest, InterpBilinear, InterpCatmullRom, InterpLanczos3:
		return true
	}
	return false
}

// ResizedIcon is one variant rendered at its pixel size.
type ResizedIcon struct {
	Platform Platform
	Variant  Variant
	Image    image.Image
}

// loadSourceImage decodes the image at path. PNG, JPEG, GIF, BMP, TIFF and
// WebP are recognized.
func loadSourceImage(path string) (image.Image, error) {
	img, err := gg.LoadImage(path)
	if err != nil {
		return nil, fmt.Errorf("load source image %s: %w", path, err)
	}
	return img, nil
}

// resizeImage draws src into a new edge x edge raster. src is not modified.
func resizeImage(src image.Image, edge int, interp Interpolation) (image.Image, error) {
	if src == nil {
		return nil, ErrMissingSourceImage
	}
	sb := src.Bounds()
	if sb.Empty() {
		return nil, fmt.Errorf("%w: source has no pixels (%dx%d)", ErrResizeFailure, sb.Dx(), sb.Dy())
	}
	if edge <= 0 {
		return nil, fmt.Errorf("%w: invalid edge %d", ErrResizeFailure, edge)
	}

	switch interp {
	case InterpBilinear:
		return drawScaled(src, edge), nil
	case InterpLanczos3:
		return resize.Resize(uint(edge), uint(edge), src, resize.Lanczos3), nil
	case InterpNearest:
		return scaleWith(draw.NearestNeighbor, src, edge), nil
	case InterpCatmullRom, "":
		return scaleWith(draw.CatmullRom, src, edge), nil
	}
	return nil, fmt.Errorf("%w: unknown interpolation %q", ErrResizeFailure, interp)
}

// drawScaled paints src into the target frame through a gg context.
func drawScaled(src image.Image, edge int) image.Image {
	sb := src.Bounds()
	dc := gg.NewContext(edge, edge)
	dc.Scale(float64(edge)/float64(sb.Dx()), float64(edge)/float64(sb.Dy()))
	dc.DrawImage(src, -sb.Min.X, -sb.Min.Y)
	return dc.Image()
}

func scaleWith(s draw.Scaler, src image.Image, edge int) image.Image {
	dst := image.NewNRGBA(image.Rect(0, 0, edge, edge))
	s.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// sourceResizer resizes one source image and memoizes results per edge.
// Several platforms share edges (58, 80, 87, 120), so each is drawn once.
// Cached rasters are shared and must not be modified.
type sourceResizer struct {
	src    image.Image
	interp Interpolation
	cache  *lru.Cache[int, image.Image] // nil disables caching
}

func newSourceResizer(src image.Image, interp Interpolation, cacheSize int) (*sourceResizer, error) {
	r := &sourceResizer{src: src, interp: interp}
	if cacheSize > 0 {
		cache, err := lru.New[int, image.Image](cacheSize)
		if err != nil {
			return nil, fmt.Errorf("create resize cache: %w", err)
		}
		r.cache = cache
	}
	return r, nil
}

func (r *sourceResizer) resize(edge int) (image.Image, error) {
	if r.cache != nil {
		if img, ok := r.cache.Get(edge); ok {
			return img, nil
		}
	}
	img, err := resizeImage(r.src, edge, r.interp)
	if err != nil {
		return nil, err
	}
	if r.cache != nil {
		r.cache.Add(edge, img)
	}
	return img, nil
}
