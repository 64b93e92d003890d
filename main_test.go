package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCLI executes the root command with args against a temp config file.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	useConfigPath(t, "config.json")
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersionString(t *testing.T) {
	assert.Equal(t, "iconizer v0.0.0-dev", versionString())
	assert.True(t, strings.HasPrefix(versionStringLong(), "iconizer v0.0.0-dev (built "))
}

func TestCLI_Version(t *testing.T) {
	out, err := runCLI(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "iconizer v0.0.0-dev")
}

func TestCLI_RequiresArgs(t *testing.T) {
	_, err := runCLI(t, "only-one")
	assert.Error(t, err)
}

func TestCLI_SeparateExport(t *testing.T) {
	dir := t.TempDir()
	src := writeTestPNG(t, dir, 64, 64)
	dest := filepath.Join(dir, "out")

	out, err := runCLI(t, "-p", "mac,watch", "--interpolation", "nearest", "--log-level", "error", src, dest)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote 18 icons")
	assert.Contains(t, out, "separate catalog")

	mac, err := readManifest(filepath.Join(appIconSetDir(dest, Mac, false), manifestFilename))
	require.NoError(t, err)
	assert.Len(t, mac.Images, 10)
	watch, err := readManifest(filepath.Join(appIconSetDir(dest, Watch, false), manifestFilename))
	require.NoError(t, err)
	assert.Len(t, watch.Images, 8)
	assert.NoDirExists(t, appIconSetDir(dest, IPad, false))
}

func TestCLI_CombinedAll(t *testing.T) {
	dir := t.TempDir()
	src := writeTestPNG(t, dir, 64, 64)
	dest := filepath.Join(dir, "out")

	out, err := runCLI(t, "--all", "--combined", "--workers", "2", "--log-level", "error", src, dest)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote 38 icons")

	m, err := readManifest(filepath.Join(appIconSetDir(dest, Mac, true), manifestFilename))
	require.NoError(t, err)
	assert.Len(t, m.Images, 38)
}

func TestCLI_SavePersistsSelection(t *testing.T) {
	dir := t.TempDir()
	src := writeTestPNG(t, dir, 32, 32)

	_, err := runCLI(t, "-p", "car", "--combined", "--save", "--log-level", "error", src, filepath.Join(dir, "out"))
	require.NoError(t, err)

	cfg := loadConfig(quiet)
	assert.Equal(t, []string{"Car"}, cfg.Platforms)
	assert.True(t, cfg.Combined)
}

func TestCLI_MissingSource(t *testing.T) {
	dir := t.TempDir()
	_, err := runCLI(t, "-p", "mac", "--log-level", "error", filepath.Join(dir, "nope.png"), dir)
	assert.ErrorIs(t, err, ErrMissingSourceImage)
}

func TestCLI_NoPlatformSelected(t *testing.T) {
	dir := t.TempDir()
	src := writeTestPNG(t, dir, 32, 32)
	_, err := runCLI(t, "-p", "tvos", "--log-level", "error", src, dir)
	assert.ErrorIs(t, err, ErrNoPlatformSelected)
}

func TestCLI_SaveKeepsOneOffSettings(t *testing.T) {
	dir := t.TempDir()
	src := writeTestPNG(t, dir, 32, 32)

	_, err := runCLI(t, "-p", "car", "--save", "--interpolation", "nearest", "--workers", "3", "--log-level", "error", src, filepath.Join(dir, "out"))
	require.NoError(t, err)

	cfg := loadConfig(quiet)
	assert.Equal(t, []string{"Car"}, cfg.Platforms)
	assert.False(t, cfg.Combined)
	assert.Equal(t, defaultConfig().Interpolation, cfg.Interpolation)
	assert.Equal(t, defaultConfig().Workers, cfg.Workers)
	assert.Equal(t, defaultConfig().LogLevel, cfg.LogLevel)
}
