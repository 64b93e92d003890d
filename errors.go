package main

import "errors"

// Failure classes reported by an export. Concrete errors wrap one of these,
// so callers classify with errors.Is.
var (
	ErrMissingSourceImage = errors.New("no source image provided")
	ErrNoPlatformSelected = errors.New("no platform selected")
	ErrUnknownPlatform    = errors.New("unknown platform")
	ErrResizeFailure      = errors.New("resize failed")
	ErrFileWrite          = errors.New("file write failed")
	ErrDirectoryCreate    = errors.New("directory create failed")
	ErrManifestSerialize  = errors.New("manifest write failed")
)
