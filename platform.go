package main

import (
	"fmt"
	"sort"
	"strings"
)

// Platform is one of the fixed icon-consuming targets.
type Platform int

const (
	Mac Platform = iota + 1
	IPhone
	IPad
	Watch
	Car
)

var platformNames = map[Platform]string{
	Mac:    "Mac",
	IPhone: "iPhone",
	IPad:   "iPad",
	Watch:  "Watch",
	Car:    "Car",
}

// platformAliases maps additional accepted spellings to a platform.
// "CarPlay" is the checkbox title the desktop app showed for Car.
var platformAliases = map[string]Platform{
	"carplay": Car,
}

// allPlatforms lists every platform in canonical order.
func allPlatforms() []Platform {
	return []Platform{Mac, IPhone, IPad, Watch, Car}
}

// String returns the canonical identifier, used for directory names.
func (p Platform) String() string {
	if name, ok := platformNames[p]; ok {
		return name
	}
	return fmt.Sprintf("Platform(%d)", int(p))
}

// Idiom returns the lower-cased identifier used in filenames and manifests.
func (p Platform) Idiom() string {
	return strings.ToLower(p.String())
}

// Valid reports whether p is one of the known platforms.
func (p Platform) Valid() bool {
	_, ok := platformNames[p]
	return ok
}

// ParsePlatform resolves a platform name case-insensitively.
func ParsePlatform(name string) (Platform, error) {
	name = strings.TrimSpace(name)
	for p, canonical := range platformNames {
		if strings.EqualFold(name, canonical) {
			return p, nil
		}
	}
	if p, ok := platformAliases[strings.ToLower(name)]; ok {
		return p, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPlatform, name)
}

// parsePlatforms resolves names into a de-duplicated, canonically ordered
// selection. Unknown names are skipped and returned as errors.
func parsePlatforms(names []string) ([]Platform, []error) {
	seen := make(map[Platform]bool)
	var errs []error
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			continue
		}
		p, err := ParsePlatform(name)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		seen[p] = true
	}

	out := make([]Platform, 0, len(seen))
	for p := range seen {
		out = append(out, p)
	}
	sortPlatforms(out)
	return out, errs
}

func sortPlatforms(ps []Platform) {
	sort.Slice(ps, func(i, j int) bool { return ps[i] < ps[j] })
}

// platformNamesOf returns canonical names for ps, in the given order.
func platformNamesOf(ps []Platform) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.String()
	}
	return out
}
