// pkg/archive/zip.go
package archive

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// NativeZip writes ZIP archives with the built-in writer. It needs no
// external tools and produces identical bytes for identical, unchanged
// inputs.
type NativeZip struct{}

// NewNativeZip creates a built-in ZIP compressor
func NewNativeZip() *NativeZip {
	return &NativeZip{}
}

// Name returns the compressor name
func (z *NativeZip) Name() string { return "zip-native" }

// Format returns FormatZip
func (z *NativeZip) Format() Format { return FormatZip }

// Available always reports true; the writer has no external requirements
func (z *NativeZip) Available() bool { return true }

// Compress archives baseDir/entry into a ZIP file at outPath
func (z *NativeZip) Compress(ctx context.Context, baseDir, entry, outPath string) error {
	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating archive: %w", err)
	}

	zw := zip.NewWriter(out)
	err = walkEntry(ctx, baseDir, entry, func(relName string, info fs.FileInfo, path string) error {
		hdr, herr := zip.FileInfoHeader(info)
		if herr != nil {
			return herr
		}
		hdr.Name = relName
		if info.IsDir() {
			hdr.Name += "/"
			_, herr = zw.CreateHeader(hdr)
			return herr
		}

		hdr.Method = zip.Deflate
		w, herr := zw.CreateHeader(hdr)
		if herr != nil {
			return herr
		}
		f, herr := os.Open(path)
		if herr != nil {
			return herr
		}
		defer f.Close()
		_, herr = io.Copy(w, f)
		return herr
	})

	if cerr := zw.Close(); err == nil {
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

// walkEntry visits baseDir/entry and, for directories, every path below it.
// relName is slash-separated and relative to baseDir, so archive entries
// start with the leaf name.
func walkEntry(ctx context.Context, baseDir, entry string, fn func(relName string, info fs.FileInfo, path string) error) error {
	root := filepath.Join(baseDir, entry)
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if cerr := ctx.Err(); cerr != nil {
			return cerr
		}

		rel, err := filepath.Rel(baseDir, path)
		if err != nil {
			return err
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		return fn(filepath.ToSlash(rel), info, path)
	})
}
