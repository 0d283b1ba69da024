// pkg/sfx/builder.go
package sfx

import "context"

// Builder turns a finished archive into a self-extracting executable.
// Implementations report availability before being invoked, so callers can
// walk an ordered list of builders and use the first one that can run.
type Builder interface {
	// Name returns the builder name (e.g. "sfx-stub", "converter-tool")
	Name() string

	// Available checks if this builder can run on the system
	Available() bool

	// Build produces the executable at outputPath from the archive at
	// archivePath. The archive file is left in place.
	Build(ctx context.Context, archivePath, outputPath string) error
}

// Chain is an ordered list of builders tried in sequence. Order is policy:
// earlier builders win when more than one is available.
type Chain []Builder

// First returns the first available builder in the chain
func (c Chain) First() (Builder, bool) {
	for _, b := range c {
		if b.Available() {
			return b, true
		}
	}
	return nil, false
}
