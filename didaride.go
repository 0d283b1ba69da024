// didaride.go
package didaride

import (
	"context"

	"github.com/MistyPigeon/DidaRide/pkg/core"
	"github.com/MistyPigeon/DidaRide/pkg/packager"
)

// Re-export packager types for convenience
type (
	Config  = core.Config
	Request = packager.Request
	Result  = packager.Result
	Mode    = packager.Mode
)

// Re-export packager constants
const (
	ModePlainArchive   = packager.ModePlainArchive
	ModeSelfExtracting = packager.ModeSelfExtracting
)

// Re-export packager errors
var (
	ErrInputNotFound     = packager.ErrInputNotFound
	ErrCompressionFailed = packager.ErrCompressionFailed
	ErrSfxStubNotFound   = packager.ErrSfxStubNotFound
	ErrNoExeTool         = packager.ErrNoExeTool
	ErrConversionFailed  = packager.ErrConversionFailed
	ErrOutputWrite       = packager.ErrOutputWrite
)

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return core.DefaultConfig()
}

// New creates a packager with the given configuration
func New(cfg *Config) *packager.Packager {
	return packager.New(cfg)
}

// Package processes a single request with the default configuration
func Package(ctx context.Context, req *Request) (*Result, error) {
	return packager.New(core.DefaultConfig()).Package(ctx, req)
}
