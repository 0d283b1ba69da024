// pkg/sfx/tool.go
package sfx

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// ToolBuilder delegates executable creation to an external converter found
// on PATH, invoked as `<tool> <archive> <output>`.
type ToolBuilder struct {
	tool string
}

// NewToolBuilder creates a builder backed by the named converter binary
func NewToolBuilder(tool string) *ToolBuilder {
	return &ToolBuilder{tool: tool}
}

// Name returns the builder name
func (b *ToolBuilder) Name() string { return "converter-tool" }

// Available checks whether the converter binary is on PATH
func (b *ToolBuilder) Available() bool {
	if b.tool == "" {
		return false
	}
	_, err := exec.LookPath(b.tool)
	return err == nil
}

// Build invokes the converter with the archive and output paths
func (b *ToolBuilder) Build(ctx context.Context, archivePath, outputPath string) error {
	cmd := exec.CommandContext(ctx, b.tool, archivePath, outputPath)
	if out, err := cmd.CombinedOutput(); err != nil {
		msg := strings.TrimSpace(string(out))
		if msg != "" {
			return fmt.Errorf("%s: %w: %s", b.tool, err, msg)
		}
		return fmt.Errorf("%s: %w", b.tool, err)
	}
	return nil
}
