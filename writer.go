package main

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/hashicorp/go-hclog"
)

const (
	assetsDirName   = "Iconizer Assets"
	xcassetsDirName = "Images.xcassets"
	iconSetDirName  = "AppIcon.appiconset"
)

// Result reports what an export wrote and what went wrong.
type Result struct {
	Files     []string // icon files written
	Manifests []string // Contents.json files written
	Bytes     int64
	Warnings  []error // per-icon failures; the rest of the batch was written
	Failures  []error // per-directory failures; that batch is incomplete
}

// OK reports whether every selected platform was fully written.
func (r *Result) OK() bool {
	return len(r.Failures) == 0
}

func (r *Result) warn(err error) {
	r.Warnings = append(r.Warnings, err)
}

func (r *Result) fail(err error) {
	r.Failures = append(r.Failures, err)
}

// appIconSetDir returns the appiconset directory for p under destination.
func appIconSetDir(destination string, p Platform, combined bool) string {
	if combined {
		return filepath.Join(destination, assetsDirName, xcassetsDirName, iconSetDirName)
	}
	return filepath.Join(destination, assetsDirName, p.String(), xcassetsDirName, iconSetDirName)
}

// CatalogWriter lays resized icons and their manifests out on disk.
type CatalogWriter struct {
	logger hclog.Logger
}

// NewCatalogWriter creates a writer that logs per-file progress to logger.
func NewCatalogWriter(logger hclog.Logger) *CatalogWriter {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &CatalogWriter{logger: logger}
}

// WriteCatalog writes every icon and the Contents.json of each appiconset.
//
// In separate mode each platform has its own directory and manifest. In
// combined mode all platforms share one directory; the manifest keeps
// accumulating and is rewritten after each platform, so the last write holds
// every platform's entries.
//
// Failing icon writes are recorded as warnings and do not stop the batch. A
// directory that cannot be created or a manifest that cannot be written is a
// failure for that platform.
func (w *CatalogWriter) WriteCatalog(images map[Platform][]ResizedIcon, destination string, combined bool) *Result {
	res := &Result{}
	manifest := newAssetManifest()

	platforms := make([]Platform, 0, len(images))
	for p := range images {
		platforms = append(platforms, p)
	}
	sortPlatforms(platforms)

	for _, p := range platforms {
		if !p.Valid() {
			res.warn(fmt.Errorf("%w: %s", ErrUnknownPlatform, p))
			continue
		}

		dir := appIconSetDir(destination, p, combined)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			w.logger.Error("failed to create asset directory", "platform", p.String(), "dir", dir, "error", err)
			res.fail(fmt.Errorf("%w: %s: %w", ErrDirectoryCreate, p, err))
			continue
		}

		for _, icon := range images[p] {
			w.writeIcon(res, dir, p, icon)

			edge := icon.Variant.Pixels
			if icon.Image != nil {
				edge = icon.Image.Bounds().Dx()
			}
			manifest.add(buildManifestEntry(icon.Variant, p, edge))
		}

		path := filepath.Join(dir, manifestFilename)
		if err := writeManifest(path, manifest); err != nil {
			w.logger.Error("failed to write manifest", "platform", p.String(), "path", path, "error", err)
			res.fail(fmt.Errorf("%w: %s: %w", ErrManifestSerialize, p, err))
		} else {
			w.logger.Info("wrote asset catalog", "platform", p.String(), "dir", dir, "images", len(manifest.Images))
			if !slices.Contains(res.Manifests, path) {
				res.Manifests = append(res.Manifests, path)
			}
		}

		if !combined {
			manifest.reset()
		}
	}
	return res
}

func (w *CatalogWriter) writeIcon(res *Result, dir string, p Platform, icon ResizedIcon) {
	name := iconFilename(p, icon.Variant.Name)
	path := filepath.Join(dir, name)

	data, err := encodePNG(icon.Image)
	if err != nil {
		w.logger.Warn("failed to encode icon", "file", name, "error", err)
		res.warn(fmt.Errorf("%w: %s: %w", ErrFileWrite, name, err))
		return
	}
	if err := writeFileAtomic(path, data, 0o644); err != nil {
		w.logger.Warn("failed to write icon", "path", path, "error", err)
		res.warn(fmt.Errorf("%w: %s: %w", ErrFileWrite, name, err))
		return
	}

	w.logger.Debug("wrote icon", "path", path, "bytes", len(data))
	res.Files = append(res.Files, path)
	res.Bytes += int64(len(data))
}

func writeManifest(path string, m *AssetManifest) error {
	data, err := m.marshal()
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	return writeFileAtomic(path, data, 0o644)
}

// writeFileAtomic writes data to a temporary file next to path and renames it
// into place, replacing any existing file. The parent directory must exist.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	f, err := os.CreateTemp(dir, "."+base+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file for %s: %w", path, err)
	}
	tmp := f.Name()
	defer os.Remove(tmp) // no-op after a successful rename

	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Chmod(tmp, perm); err != nil {
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}
