// pkg/archive/tarxz.go
package archive

import (
	"archive/tar"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/ulikunitz/xz"
)

// TarXz writes tar archives compressed with xz. tar.xz archives are not
// end-anchored the way ZIP is, so they cannot carry a self-extraction
// prefix; the packager only selects this compressor for plain archives.
type TarXz struct{}

// NewTarXz creates a built-in tar.xz compressor
func NewTarXz() *TarXz {
	return &TarXz{}
}

// Name returns the compressor name
func (t *TarXz) Name() string { return "tarxz-native" }

// Format returns FormatTarXz
func (t *TarXz) Format() Format { return FormatTarXz }

// Available always reports true; the writer has no external requirements
func (t *TarXz) Available() bool { return true }

// Compress archives baseDir/entry into a tar.xz file at outPath
func (t *TarXz) Compress(ctx context.Context, baseDir, entry, outPath string) error {
	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating archive: %w", err)
	}

	xw, err := xz.NewWriter(out)
	if err != nil {
		out.Close()
		os.Remove(outPath)
		return fmt.Errorf("initializing xz stream: %w", err)
	}

	tw := tar.NewWriter(xw)
	err = walkEntry(ctx, baseDir, entry, func(relName string, info fs.FileInfo, path string) error {
		hdr, herr := tar.FileInfoHeader(info, "")
		if herr != nil {
			return herr
		}
		hdr.Name = relName
		if info.IsDir() {
			hdr.Name += "/"
		}
		if herr = tw.WriteHeader(hdr); herr != nil {
			return herr
		}
		if info.IsDir() {
			return nil
		}

		f, herr := os.Open(path)
		if herr != nil {
			return herr
		}
		defer f.Close()
		_, herr = io.Copy(tw, f)
		return herr
	})

	if cerr := tw.Close(); err == nil {
		err = cerr
	}
	if cerr := xw.Close(); err == nil {
		err = cerr
	}
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(outPath)
		return err
	}
	return nil
}
