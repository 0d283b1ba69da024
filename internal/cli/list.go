// internal/cli/list.go
package cli

import (
	"archive/tar"
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/MistyPigeon/DidaRide/pkg/archive"
	"github.com/spf13/cobra"
	"github.com/ulikunitz/xz"
)

var listCmd = &cobra.Command{
	Use:   "list [archive]",
	Short: "List the entries of an archive",
	Long: `List the entries of an archive produced by the package command.

Works on plain archives and on self-extracting executables: ZIP readers
locate the central directory from the end of the file, so the SFX stub
prefix does not get in the way.`,
	Args: cobra.ExactArgs(1),
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	path := args[0]

	if format, ok := archive.FormatForPath(path); ok && format == archive.FormatTarXz {
		return listTarXz(path)
	}
	return listZip(path)
}

func listZip(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening archive: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("reading archive: %w", err)
	}

	zr, err := zip.NewReader(f, info.Size())
	if err != nil {
		return fmt.Errorf("reading archive %s: %w", path, err)
	}

	fmt.Printf("Archive: %s (%d entries)\n", path, len(zr.File))
	for _, entry := range zr.File {
		fmt.Printf("  %10d  %s\n", entry.UncompressedSize64, entry.Name)
	}
	return nil
}

func listTarXz(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening archive: %w", err)
	}
	defer f.Close()

	xr, err := xz.NewReader(f)
	if err != nil {
		return fmt.Errorf("reading xz stream: %w", err)
	}

	fmt.Printf("Archive: %s\n", path)
	tr := tar.NewReader(xr)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading archive %s: %w", path, err)
		}
		fmt.Printf("  %10d  %s\n", hdr.Size, hdr.Name)
	}
}
