// pkg/packager/types.go
package packager

import "github.com/MistyPigeon/DidaRide/pkg/archive"

// Mode selects the kind of artifact a request produces
type Mode string

const (
	// ModePlainArchive produces a compressed archive at the output path
	ModePlainArchive Mode = "plain-archive"
	// ModeSelfExtracting produces a self-extracting executable, falling
	// back to a preserved plain archive when no builder is available
	ModeSelfExtracting Mode = "self-extracting"
)

// Request describes one packaging operation
type Request struct {
	InputPath      string // file or directory to package; must exist
	OutputPath     string // destination; extension selects the default mode
	WantExecutable bool   // force self-extracting output
	Format         string // optional format override (zip, tar.xz)
}

// Result reports what a packaging operation produced
type Result struct {
	OutputPath   string         // where the artifact was written
	Mode         Mode           // plain archive or self-extracting
	Format       archive.Format // container format of the archive bytes
	Compressor   string         // compressor that built the archive
	Builder      string         // builder that produced the executable, if any
	FallbackPath string         // set when executable building degraded to a plain archive
	Warning      error          // non-fatal degradation, set with FallbackPath
}
