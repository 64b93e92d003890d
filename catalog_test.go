package main

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSizeCatalog_VariantCounts(t *testing.T) {
	want := map[Platform]int{Mac: 10, IPhone: 9, IPad: 10, Watch: 8, Car: 1}
	for p, n := range want {
		assert.Len(t, sizesFor(p), n, "variants for %s", p)
	}
	assert.Equal(t, 38, catalogSize())
}

func TestSizeCatalog_NoDuplicateNames(t *testing.T) {
	for p, vs := range sizeCatalog {
		seen := map[string]bool{}
		for _, v := range vs {
			assert.False(t, seen[v.Name], "duplicate %s variant %q", p, v.Name)
			seen[v.Name] = true
			assert.Positive(t, v.Pixels, "%s %s", p, v.Name)
		}
	}
}

func TestSizeCatalog_KnownSizes(t *testing.T) {
	tests := []struct {
		platform Platform
		name     string
		pixels   int
	}{
		{Mac, "appicon-16@1x", 16},
		{Mac, "appicon-512@2x", 1024},
		{IPhone, "settings-@3x", 87},
		{IPhone, "appicon-@3x", 180},
		{IPad, "oldAppicon-@1x", 72},
		{IPad, "appicon-@2x", 152},
		{Watch, "notificationCenter-42mm@2x", 55},
		{Watch, "quickLook-42mm@2x", 196},
		{Car, "carplay-@1x", 120},
	}
	for _, tt := range tests {
		got, ok := sizesFor(tt.platform)[tt.name]
		require.True(t, ok, "%s %s missing", tt.platform, tt.name)
		assert.Equal(t, tt.pixels, got, "%s %s", tt.platform, tt.name)
	}
}

func TestSizeCatalog_IPhoneSettingsTypoPreserved(t *testing.T) {
	sizes := sizesFor(IPhone)
	assert.Equal(t, 58, sizes["ettings-@2x"])
	_, ok := sizes["settings-@2x"]
	assert.False(t, ok, "settings-@2x must not be silently renamed")
}

func TestSizesForName_CaseInsensitive(t *testing.T) {
	for _, name := range []string{"Car", "car", "CAR", "CarPlay"} {
		assert.Equal(t, map[string]int{"carplay-@1x": 120}, sizesForName(name), "sizesForName(%q)", name)
	}
	assert.Len(t, sizesForName("iphone"), 9)
	assert.Len(t, sizesForName("IPAD"), 10)
}

func TestSizesForName_Unknown(t *testing.T) {
	got := sizesForName("tvOS")
	require.NotNil(t, got)
	assert.Empty(t, got)
	assert.Empty(t, sizesFor(Platform(42)))
}

func TestSizesFor_ReturnsCopy(t *testing.T) {
	sizes := sizesFor(Mac)
	sizes["appicon-16@1x"] = 1
	delete(sizes, "appicon-512@2x")
	assert.Equal(t, 16, sizesFor(Mac)["appicon-16@1x"])
	assert.Len(t, sizesFor(Mac), 10)
}

func TestVariantsFor_SortedByName(t *testing.T) {
	for _, p := range allPlatforms() {
		vs := variantsFor(p)
		for i := 1; i < len(vs); i++ {
			assert.Less(t, vs[i-1].Name, vs[i].Name, "%s variants out of order", p)
		}
	}
}

// The declarative descriptors must produce exactly what inference from the
// variant names would.
func TestSizeCatalog_DescriptorsMatchInference(t *testing.T) {
	for p, vs := range sizeCatalog {
		for _, v := range vs {
			assert.Equal(t, inferVariant(p, v.Name, v.Pixels), v, "%s %s", p, v.Name)
		}
	}
}

func TestInferVariant_Scale(t *testing.T) {
	tests := []struct {
		name string
		want Scale
	}{
		{"appicon-16@1x", Scale1x},
		{"appicon-16@2x", Scale2x},
		{"settings-@3x", Scale3x},
		{"plain", Scale1x},
		{"both@3x@2x", Scale2x}, // @2x is checked first
		{"both@2x@3x", Scale2x},
	}
	for _, tt := range tests {
		got := inferVariant(Mac, tt.name, 10).Scale
		assert.Equal(t, tt.want, got, "scale of %q", tt.name)
		assert.Equal(t, got, inferVariant(Mac, tt.name, 10).Scale, "scale of %q not stable", tt.name)
	}
}

func TestInferVariant_WatchSubtypeAndRole(t *testing.T) {
	v := inferVariant(Watch, "longLook-42mm@2x", 88)
	assert.Equal(t, "42mm", v.Subtype)
	assert.Equal(t, "longLook", v.Role)

	v = inferVariant(Watch, "companionSettings-@3x", 87)
	assert.Empty(t, v.Subtype)
	assert.Equal(t, "companionSettings", v.Role)

	v = inferVariant(Watch, "nodash@2x", 10)
	assert.Empty(t, v.Role)

	// 42mm wins when both appear.
	v = inferVariant(Watch, "odd-38mm-42mm@2x", 10)
	assert.Equal(t, "42mm", v.Subtype)
	assert.Equal(t, "odd", v.Role)
}

func TestInferVariant_NonWatchHasNoSubtypeOrRole(t *testing.T) {
	v := inferVariant(IPhone, "notificationCenter-42mm@2x", 55)
	assert.Empty(t, v.Subtype)
	assert.Empty(t, v.Role)
}

func TestParsePlatform(t *testing.T) {
	tests := map[string]Platform{
		"Mac": Mac, "mac": Mac, "iPhone": IPhone, "IPHONE": IPhone,
		"ipad": IPad, "watch": Watch, "Car": Car, "car": Car, " carplay ": Car,
	}
	for name, want := range tests {
		got, err := ParsePlatform(name)
		require.NoError(t, err, "ParsePlatform(%q)", name)
		assert.Equal(t, want, got, "ParsePlatform(%q)", name)
	}

	_, err := ParsePlatform("android")
	assert.True(t, errors.Is(err, ErrUnknownPlatform))
}

func TestParsePlatforms_DedupAndOrder(t *testing.T) {
	got, errs := parsePlatforms([]string{"watch", "Mac", "mac", "tv", "", "iPad", "WATCH"})
	assert.Equal(t, []Platform{Mac, IPad, Watch}, got)
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], ErrUnknownPlatform)
	assert.True(t, strings.Contains(errs[0].Error(), "tv"))
}

func TestPlatform_Idiom(t *testing.T) {
	assert.Equal(t, "mac", Mac.Idiom())
	assert.Equal(t, "iphone", IPhone.Idiom())
	assert.Equal(t, "ipad", IPad.Idiom())
	assert.Equal(t, "watch", Watch.Idiom())
	assert.Equal(t, "car", Car.Idiom())
	assert.False(t, Platform(0).Valid())
}
