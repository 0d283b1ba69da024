// internal/cli/checksum.go
package cli

import (
	"fmt"

	"github.com/MistyPigeon/DidaRide/pkg/checksum"
	"github.com/spf13/cobra"
)

var checksumCmd = &cobra.Command{
	Use:   "checksum [file]",
	Short: "Print the sha256 checksum of a file",
	Long:  `Compute and print the sha256 checksum of a file in SRI and base32 forms.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runChecksum,
}

func runChecksum(cmd *cobra.Command, args []string) error {
	h, err := checksum.File(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("File: %s\n", args[0])
	fmt.Printf("SRI: %s\n", h.SRI())
	fmt.Printf("Base32: %s\n", h.Base32())
	return nil
}
