// pkg/sfx/stub.go
package sfx

import (
	"context"
	"fmt"
	"io"
	"os"
)

// StubBuilder builds a self-extracting executable by writing an SFX stub
// binary followed by the archive bytes, exactly, with no padding or
// transformation in between. The stub's launcher code ignores the trailing
// data while ZIP readers find their central directory from the end of the
// file, so the result is simultaneously a launcher and a valid archive.
type StubBuilder struct {
	candidates []string
}

// NewStubBuilder creates a builder probing the given ordered list of stub
// locations. The list is injectable so alternative stubs (or test fixtures)
// can be supplied through configuration.
func NewStubBuilder(candidates []string) *StubBuilder {
	return &StubBuilder{candidates: candidates}
}

// Name returns the builder name
func (b *StubBuilder) Name() string { return "sfx-stub" }

// Available reports whether any stub candidate exists
func (b *StubBuilder) Available() bool {
	_, ok := b.Locate()
	return ok
}

// Locate returns the first stub candidate that exists as a regular file
func (b *StubBuilder) Locate() (string, bool) {
	for _, path := range b.candidates {
		info, err := os.Stat(path)
		if err == nil && info.Mode().IsRegular() {
			return path, true
		}
	}
	return "", false
}

// Build concatenates the located stub and the archive into outputPath
func (b *StubBuilder) Build(ctx context.Context, archivePath, outputPath string) error {
	stubPath, ok := b.Locate()
	if !ok {
		return fmt.Errorf("no sfx stub found in %d candidate locations", len(b.candidates))
	}

	stub, err := os.Open(stubPath)
	if err != nil {
		return fmt.Errorf("opening stub %s: %w", stubPath, err)
	}
	defer stub.Close()

	arch, err := os.Open(archivePath)
	if err != nil {
		return fmt.Errorf("opening archive: %w", err)
	}
	defer arch.Close()

	out, err := os.OpenFile(outputPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0755)
	if err != nil {
		return fmt.Errorf("creating executable: %w", err)
	}

	_, err = io.Copy(out, stub)
	if err == nil {
		_, err = io.Copy(out, arch)
	}
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(outputPath)
		return fmt.Errorf("writing executable: %w", err)
	}
	return nil
}
