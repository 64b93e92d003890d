package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// formatSummary returns the one-line report printed after an export.
func formatSummary(res *Result, opts ExportOptions) string {
	mode := "separate"
	if opts.Combined {
		mode = "combined"
	}
	line := fmt.Sprintf("Wrote %d icons (%s) for %s as %s catalog to %s",
		len(res.Files), humanize.Bytes(uint64(res.Bytes)),
		strings.Join(platformNamesOf(opts.Platforms), ", "), mode,
		filepath.Join(opts.Destination, assetsDirName))
	if n := len(res.Warnings); n > 0 {
		line += fmt.Sprintf(", %d %s", n, plural(n, "warning", "warnings"))
	}
	if n := len(res.Failures); n > 0 {
		line += fmt.Sprintf(", %d %s", n, plural(n, "failure", "failures"))
	}
	return line
}

// formatProblems returns one indented line per warning and failure, or "".
func formatProblems(res *Result) string {
	var b strings.Builder
	for _, err := range res.Failures {
		fmt.Fprintf(&b, "  - failed: %v\n", err)
	}
	for _, err := range res.Warnings {
		fmt.Fprintf(&b, "  - warning: %v\n", err)
	}
	return b.String()
}

// formatElapsed renders a duration rounded for humans: "850ms", "2.4s".
func formatElapsed(d time.Duration) string {
	if d < time.Second {
		return d.Round(time.Millisecond).String()
	}
	return d.Round(100 * time.Millisecond).String()
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
