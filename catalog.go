package main

import (
	"fmt"
	"sort"
	"strings"
)

// Scale is the pixel-to-point multiplier of a variant.
type Scale int

const (
	Scale1x Scale = 1
	Scale2x Scale = 2
	Scale3x Scale = 3
)

func (s Scale) String() string {
	return fmt.Sprintf("%dx", int(s))
}

// Variant describes one named icon a platform requires.
type Variant struct {
	Name    string
	Pixels  int // edge length of the square raster
	Scale   Scale
	Subtype string // Watch only: "38mm" or "42mm"
	Role    string // Watch only
}

// fractionalPoints reports whether the logical size keeps its fraction.
// The 42mm notification center icon is the only non-integral size (27.5pt).
func (v Variant) fractionalPoints() bool {
	return v.Scale == Scale2x && v.Subtype == "42mm" && v.Role == "notificationCenter"
}

func watchVariant(name string, pixels int, scale Scale, subtype, role string) Variant {
	return Variant{Name: name, Pixels: pixels, Scale: scale, Subtype: subtype, Role: role}
}

// sizeCatalog holds every variant per platform. It is never mutated.
//
// "ettings-@2x" on iPhone is reproduced as shipped: it is almost certainly a
// typo of "settings-@2x" but renaming it changes the emitted filename.
var sizeCatalog = map[Platform][]Variant{
	Mac: {
		{Name: "appicon-16@1x", Pixels: 16, Scale: Scale1x},
		{Name: "appicon-16@2x", Pixels: 32, Scale: Scale2x},
		{Name: "appicon-32@1x", Pixels: 32, Scale: Scale1x},
		{Name: "appicon-32@2x", Pixels: 64, Scale: Scale2x},
		{Name: "appicon-128@1x", Pixels: 128, Scale: Scale1x},
		{Name: "appicon-128@2x", Pixels: 256, Scale: Scale2x},
		{Name: "appicon-256@1x", Pixels: 256, Scale: Scale1x},
		{Name: "appicon-256@2x", Pixels: 512, Scale: Scale2x},
		{Name: "appicon-512@1x", Pixels: 512, Scale: Scale1x},
		{Name: "appicon-512@2x", Pixels: 1024, Scale: Scale2x},
	},
	IPhone: {
		{Name: "settings-@1x", Pixels: 29, Scale: Scale1x},
		{Name: "ettings-@2x", Pixels: 58, Scale: Scale2x},
		{Name: "settings-@3x", Pixels: 87, Scale: Scale3x},
		{Name: "spotlight-@2x", Pixels: 80, Scale: Scale2x},
		{Name: "spotlight-@3x", Pixels: 120, Scale: Scale3x},
		{Name: "appicon-@2x", Pixels: 120, Scale: Scale2x},
		{Name: "appicon-@3x", Pixels: 180, Scale: Scale3x},
		{Name: "oldAppicon-@1x", Pixels: 57, Scale: Scale1x},
		{Name: "oldAppicon-@2x", Pixels: 114, Scale: Scale2x},
	},
	IPad: {
		{Name: "settings-@1x", Pixels: 29, Scale: Scale1x},
		{Name: "settings-@2x", Pixels: 58, Scale: Scale2x},
		{Name: "spotlight-@1x", Pixels: 40, Scale: Scale1x},
		{Name: "spotlight-@2x", Pixels: 80, Scale: Scale2x},
		{Name: "oldSpotlight-@1x", Pixels: 50, Scale: Scale1x},
		{Name: "oldSpotlight-@2x", Pixels: 100, Scale: Scale2x},
		{Name: "appicon-@1x", Pixels: 76, Scale: Scale1x},
		{Name: "appicon-@2x", Pixels: 152, Scale: Scale2x},
		{Name: "oldAppicon-@1x", Pixels: 72, Scale: Scale1x},
		{Name: "oldAppicon-@2x", Pixels: 144, Scale: Scale2x},
	},
	Watch: {
		watchVariant("notificationCenter-38mm@2x", 48, Scale2x, "38mm", "notificationCenter"),
		watchVariant("notificationCenter-42mm@2x", 55, Scale2x, "42mm", "notificationCenter"),
		watchVariant("companionSettings-@2x", 58, Scale2x, "", "companionSettings"),
		watchVariant("companionSettings-@3x", 87, Scale3x, "", "companionSettings"),
		watchVariant("appLauncher-38mm@2x", 80, Scale2x, "38mm", "appLauncher"),
		watchVariant("longLook-42mm@2x", 88, Scale2x, "42mm", "longLook"),
		watchVariant("quickLook-38mm@2x", 172, Scale2x, "38mm", "quickLook"),
		watchVariant("quickLook-42mm@2x", 196, Scale2x, "42mm", "quickLook"),
	},
	Car: {
		{Name: "carplay-@1x", Pixels: 120, Scale: Scale1x},
	},
}

// sizesFor returns variant name to pixel edge for p. Unknown platforms yield
// an empty map.
func sizesFor(p Platform) map[string]int {
	out := make(map[string]int, len(sizeCatalog[p]))
	for _, v := range sizeCatalog[p] {
		out[v.Name] = v.Pixels
	}
	return out
}

// sizesForName is sizesFor keyed by a platform name, matched case-insensitively.
func sizesForName(name string) map[string]int {
	p, err := ParsePlatform(name)
	if err != nil {
		return map[string]int{}
	}
	return sizesFor(p)
}

// variantsFor returns a copy of p's variants sorted by name.
func variantsFor(p Platform) []Variant {
	out := append([]Variant(nil), sizeCatalog[p]...)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func lookupVariant(p Platform, name string) (Variant, bool) {
	for _, v := range sizeCatalog[p] {
		if v.Name == name {
			return v, true
		}
	}
	return Variant{}, false
}

// inferVariant derives a descriptor from a variant name the way asset names
// encode it: <role>-<subtype>@<scale>. "@2x" is tested before "@3x".
func inferVariant(p Platform, name string, pixels int) Variant {
	v := Variant{Name: name, Pixels: pixels, Scale: Scale1x}

	if p == Watch {
		switch {
		case strings.Contains(name, "42mm"):
			v.Subtype = "42mm"
		case strings.Contains(name, "38mm"):
			v.Subtype = "38mm"
		}
		if i := strings.Index(name, "-"); i >= 0 {
			v.Role = name[:i]
		}
	}

	switch {
	case strings.Contains(name, "@2x"):
		v.Scale = Scale2x
	case strings.Contains(name, "@3x"):
		v.Scale = Scale3x
	}
	return v
}

// catalogSize returns the total number of variants across all platforms.
func catalogSize() int {
	n := 0
	for _, vs := range sizeCatalog {
		n += len(vs)
	}
	return n
}
