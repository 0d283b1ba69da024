// pkg/packager/errors.go
package packager

import (
	"errors"
	"fmt"
)

var (
	// ErrInputNotFound indicates the input path does not exist
	ErrInputNotFound = errors.New("input not found")

	// ErrCompressionFailed indicates the compression step failed or no
	// compressor was available
	ErrCompressionFailed = errors.New("compression failed")

	// ErrSfxStubNotFound indicates no SFX stub exists at any candidate location
	ErrSfxStubNotFound = errors.New("sfx stub not found")

	// ErrNoExeTool indicates neither an SFX stub nor a converter tool is available
	ErrNoExeTool = errors.New("no executable-building tool available")

	// ErrConversionFailed indicates the converter tool exited with an error
	ErrConversionFailed = errors.New("conversion tool failed")

	// ErrOutputWrite indicates the final artifact could not be written
	ErrOutputWrite = errors.New("output write failed")
)

// Error wraps an error with the failed operation and the path involved
type Error struct {
	Op   string // Operation that failed
	Path string // Path involved if applicable
	Err  error  // Underlying error
}

func (e *Error) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
