package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

const (
	manifestAuthor   = "Iconizer"
	manifestVersion  = 1
	manifestFilename = "Contents.json"
)

// ManifestEntry describes one image file in an appiconset.
type ManifestEntry struct {
	Filename string `json:"filename"`
	Idiom    string `json:"idiom"`
	Scale    string `json:"scale"`
	Size     string `json:"size"`
	Subtype  string `json:"subtype,omitempty"`
	Role     string `json:"role,omitempty"`
}

// AssetManifest is the Contents.json document of one appiconset directory.
type AssetManifest struct {
	Author  string          `json:"author"`
	Version int             `json:"version"`
	Images  []ManifestEntry `json:"images"`
}

func newAssetManifest() *AssetManifest {
	return &AssetManifest{
		Author:  manifestAuthor,
		Version: manifestVersion,
		Images:  []ManifestEntry{},
	}
}

func (m *AssetManifest) add(e ManifestEntry) {
	m.Images = append(m.Images, e)
}

// reset drops accumulated entries, keeping author and version.
func (m *AssetManifest) reset() {
	m.Images = []ManifestEntry{}
}

func (m *AssetManifest) marshal() ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// readManifest parses a Contents.json file.
func readManifest(path string) (*AssetManifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest %s: %w", path, err)
	}
	var m AssetManifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	return &m, nil
}

// iconFilename returns "<idiom>-<variant>.png".
func iconFilename(p Platform, name string) string {
	return fmt.Sprintf("%s-%s.png", p.Idiom(), name)
}

// buildEntry builds the manifest entry for a variant name. Catalog variants
// use their descriptor; other names are inferred from the name itself.
func buildEntry(name string, p Platform, edge int) ManifestEntry {
	v, ok := lookupVariant(p, name)
	if !ok {
		v = inferVariant(p, name, edge)
	}
	return buildManifestEntry(v, p, edge)
}

// buildManifestEntry builds the manifest entry for v resized to edge pixels.
func buildManifestEntry(v Variant, p Platform, edge int) ManifestEntry {
	e := ManifestEntry{
		Filename: iconFilename(p, v.Name),
		Idiom:    p.Idiom(),
		Scale:    v.Scale.String(),
		Size:     logicalSize(v, edge),
	}
	if p == Watch {
		e.Subtype = v.Subtype
		e.Role = v.Role
	}
	return e
}

// logicalSize converts a pixel edge into the "<w>x<h>" point size. Division
// truncates, except for the one fractional variant.
func logicalSize(v Variant, edge int) string {
	var side string
	switch v.Scale {
	case Scale2x:
		if v.fractionalPoints() {
			side = strconv.FormatFloat(float64(edge)/2, 'f', -1, 64)
		} else {
			side = strconv.Itoa(edge / 2)
		}
	case Scale3x:
		side = strconv.Itoa(edge / 3)
	default:
		side = strconv.Itoa(edge)
	}
	return side + "x" + side
}
