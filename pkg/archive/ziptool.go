// pkg/archive/ziptool.go
package archive

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// ZipTool shells out to an external archiver (Info-ZIP compatible). The
// archiver runs with its working directory set to the base directory, so
// the recorded entry names are relative and the caller's own working
// directory is never touched.
type ZipTool struct {
	tool string
}

// NewZipTool creates a compressor backed by the named external binary
func NewZipTool(tool string) *ZipTool {
	if tool == "" {
		tool = "zip"
	}
	return &ZipTool{tool: tool}
}

// Name returns the compressor name
func (z *ZipTool) Name() string { return "zip-tool" }

// Format returns FormatZip
func (z *ZipTool) Format() Format { return FormatZip }

// Available checks whether the external binary is on PATH
func (z *ZipTool) Available() bool {
	_, err := exec.LookPath(z.tool)
	return err == nil
}

// Compress invokes the external archiver to build outPath from baseDir/entry
func (z *ZipTool) Compress(ctx context.Context, baseDir, entry, outPath string) error {
	// The tool resolves relative paths against baseDir, so the output
	// destination must be absolute before handing it over.
	absOut, err := filepath.Abs(outPath)
	if err != nil {
		return fmt.Errorf("resolving output path: %w", err)
	}

	cmd := exec.CommandContext(ctx, z.tool, "-r", "-q", absOut, entry)
	cmd.Dir = baseDir
	if out, err := cmd.CombinedOutput(); err != nil {
		msg := strings.TrimSpace(string(out))
		if msg != "" {
			return fmt.Errorf("%s: %w: %s", z.tool, err, msg)
		}
		return fmt.Errorf("%s: %w", z.tool, err)
	}
	return nil
}
