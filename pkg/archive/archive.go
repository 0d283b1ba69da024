// pkg/archive/archive.go
package archive

import (
	"context"
	"strings"
)

// Format identifies a supported archive container format
type Format string

const (
	// FormatZip is a ZIP container. ZIP readers locate the central
	// directory from the end of the file, so a ZIP archive stays readable
	// with an arbitrary prefix in front of it.
	FormatZip Format = "zip"
	// FormatTarXz is a tar stream wrapped in an xz stream.
	FormatTarXz Format = "tar.xz"
)

// Extension returns the canonical file extension for the format
func (f Format) Extension() string {
	switch f {
	case FormatTarXz:
		return ".tar.xz"
	default:
		return ".zip"
	}
}

// ParseFormat parses a user-supplied format name
func ParseFormat(s string) (Format, bool) {
	switch strings.ToLower(s) {
	case "zip":
		return FormatZip, true
	case "tar.xz", "txz", "tarxz":
		return FormatTarXz, true
	}
	return "", false
}

// FormatForPath inspects a path's extension and reports the archive format
// it implies, if any.
func FormatForPath(path string) (Format, bool) {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".zip"):
		return FormatZip, true
	case strings.HasSuffix(lower, ".tar.xz"), strings.HasSuffix(lower, ".txz"):
		return FormatTarXz, true
	}
	return "", false
}

// Compressor builds an archive from a single entry (file or directory)
// rooted at an explicit base directory. Entry names recorded in the archive
// are relative to baseDir, so only the leaf name and its children appear and
// no absolute paths leak into the archive.
type Compressor interface {
	// Name returns the compressor name (e.g. "zip-tool", "zip-native")
	Name() string

	// Format returns the container format this compressor produces
	Format() Format

	// Available checks if this compressor can run on the system
	Available() bool

	// Compress archives baseDir/entry into outPath. outPath is created or
	// truncated. entry must be a bare leaf name, not a path.
	Compress(ctx context.Context, baseDir, entry, outPath string) error
}
