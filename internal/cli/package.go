// internal/cli/package.go
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/MistyPigeon/DidaRide/pkg/checksum"
	"github.com/MistyPigeon/DidaRide/pkg/packager"
	"github.com/spf13/cobra"
)

var (
	packageInput      string
	packageOutput     string
	packageExe        bool
	packageFormat     string
	packageCompressor string
	packageChecksum   bool
)

var packageCmd = &cobra.Command{
	Use:   "package",
	Short: "Package a file or directory",
	Long: `Package a file or directory into a compressed archive.

The output extension picks the result: .zip and .tar.xz produce plain
archives, anything else (or --exe) produces a self-extracting executable.
If no SFX stub or converter tool is available, the plain archive is kept
at a reported fallback location instead.

Examples:
  didaride package --input project/ --output project.zip
  didaride package --input notes.txt --output notes.tar.xz
  didaride package --input script.py --output script.exe
  didaride package --input project/ --output project.zip --exe --checksum`,
	RunE: runPackage,
}

func init() {
	packageCmd.Flags().StringVar(&packageInput, "input", "", "file or directory to package (required)")
	packageCmd.Flags().StringVar(&packageOutput, "output", "", "destination path (required)")
	packageCmd.Flags().BoolVar(&packageExe, "exe", false, "force self-extracting executable output")
	packageCmd.Flags().StringVar(&packageFormat, "format", "", "archive format (zip, tar.xz); overrides the output extension")
	packageCmd.Flags().StringVar(&packageCompressor, "compressor", "", "compressor to use (auto, zip, native)")
	packageCmd.Flags().BoolVar(&packageChecksum, "checksum", false, "print the artifact's sha256 checksum")
	packageCmd.MarkFlagRequired("input")
	packageCmd.MarkFlagRequired("output")
}

func runPackage(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	// Override config with flags
	if packageCompressor != "" {
		config.Compressor = packageCompressor
	}

	p := packager.New(config)
	res, err := p.Package(ctx, &packager.Request{
		InputPath:      packageInput,
		OutputPath:     packageOutput,
		WantExecutable: packageExe,
		Format:         packageFormat,
	})
	if err != nil {
		return err
	}

	if res.FallbackPath != "" {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", res.Warning)
		fmt.Printf("✓ Kept plain archive at %s\n", res.FallbackPath)
	} else {
		fmt.Printf("✓ Wrote %s (%s)\n", res.OutputPath, res.Mode)
	}

	if packageChecksum {
		h, err := checksum.File(res.OutputPath)
		if err != nil {
			return fmt.Errorf("computing checksum: %w", err)
		}
		fmt.Printf("  sha256: %s\n", h.SRI())
		fmt.Printf("  base32: %s\n", h.Base32())
	}

	return nil
}
