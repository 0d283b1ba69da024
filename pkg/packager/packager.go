// pkg/packager/packager.go
package packager

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/MistyPigeon/DidaRide/pkg/archive"
	"github.com/MistyPigeon/DidaRide/pkg/core"
	"github.com/MistyPigeon/DidaRide/pkg/sfx"
)

// Packager turns packaging requests into archives and self-extracting
// executables. Every run is stateless: the same request against the same
// filesystem and tool availability produces the same artifact.
type Packager struct {
	config *core.Config
	logger *log.Logger
}

// New creates a Packager with the given configuration
func New(cfg *core.Config) *Packager {
	if cfg == nil {
		cfg = core.DefaultConfig()
	}

	logger := log.New(io.Discard, "", 0)
	if cfg.Debug {
		logger = log.New(os.Stderr, "[didaride] ", log.LstdFlags)
	}

	return &Packager{
		config: cfg,
		logger: logger,
	}
}

// Package processes a single request start to finish. External tools are
// invoked synchronously; a failure at any step is terminal, never retried.
// The one partial-success outcome is self-extracting mode with no builder
// available: the archive is preserved at Result.FallbackPath and
// Result.Warning is set instead of an error.
func (p *Packager) Package(ctx context.Context, req *Request) (*Result, error) {
	if req == nil || req.InputPath == "" || req.OutputPath == "" {
		return nil, &Error{Op: "package", Err: fmt.Errorf("input and output paths are required")}
	}

	// Resolve the input before anything else; entry names are recorded
	// relative to its parent, so the path must be absolute up front.
	absIn, err := filepath.Abs(req.InputPath)
	if err != nil {
		return nil, &Error{Op: "resolving input", Path: req.InputPath, Err: err}
	}
	if _, err := os.Stat(absIn); err != nil {
		return nil, &Error{Op: "resolving input", Path: req.InputPath, Err: ErrInputNotFound}
	}
	baseDir := filepath.Dir(absIn)
	entry := filepath.Base(absIn)

	absOut, err := filepath.Abs(req.OutputPath)
	if err != nil {
		return nil, &Error{Op: "resolving output", Path: req.OutputPath, Err: err}
	}

	mode, format, err := resolveMode(req, absOut)
	if err != nil {
		return nil, err
	}

	comp, err := p.compressorFor(format)
	if err != nil {
		return nil, err
	}

	p.logger.Printf("Packaging %s -> %s (mode=%s format=%s compressor=%s)",
		absIn, absOut, mode, format, comp.Name())

	if mode == ModePlainArchive {
		if err := comp.Compress(ctx, baseDir, entry, absOut); err != nil {
			return nil, &Error{Op: "compressing", Path: absIn, Err: fmt.Errorf("%w: %v", ErrCompressionFailed, err)}
		}
		return &Result{
			OutputPath: absOut,
			Mode:       ModePlainArchive,
			Format:     format,
			Compressor: comp.Name(),
		}, nil
	}

	// Self-extracting: build the archive in a temporary file next to the
	// output, so the fallback rename below never crosses filesystems.
	tmp, err := os.CreateTemp(filepath.Dir(absOut), ".didaride-*.zip")
	if err != nil {
		return nil, &Error{Op: "creating intermediate archive", Path: absOut, Err: fmt.Errorf("%w: %v", ErrOutputWrite, err)}
	}
	tmpPath := tmp.Name()
	tmp.Close()
	preserved := false
	defer func() {
		if !preserved {
			os.Remove(tmpPath)
		}
	}()

	if err := comp.Compress(ctx, baseDir, entry, tmpPath); err != nil {
		return nil, &Error{Op: "compressing", Path: absIn, Err: fmt.Errorf("%w: %v", ErrCompressionFailed, err)}
	}

	stub := sfx.NewStubBuilder(p.config.SfxStubPaths)
	chain := sfx.Chain{stub, sfx.NewToolBuilder(p.config.ConverterTool)}

	builder, ok := chain.First()
	if !ok {
		// Keep the usable archive instead of failing with nothing.
		fallback := fallbackPath(absOut, format)
		if err := os.Rename(tmpPath, fallback); err != nil {
			return nil, &Error{Op: "preserving archive", Path: fallback, Err: fmt.Errorf("%w: %v", ErrOutputWrite, err)}
		}
		preserved = true

		warning := fmt.Errorf("%w: %w; converter tool %q not on PATH", ErrNoExeTool, ErrSfxStubNotFound, p.config.ConverterTool)
		p.logger.Printf("Warning: %v; kept plain archive at %s", warning, fallback)
		return &Result{
			OutputPath:   fallback,
			Mode:         ModeSelfExtracting,
			Format:       format,
			Compressor:   comp.Name(),
			FallbackPath: fallback,
			Warning:      warning,
		}, nil
	}

	p.logger.Printf("Building executable with %s", builder.Name())
	if err := builder.Build(ctx, tmpPath, absOut); err != nil {
		werr := ErrOutputWrite
		if _, isTool := builder.(*sfx.ToolBuilder); isTool {
			werr = ErrConversionFailed
		}
		return nil, &Error{Op: "building executable", Path: absOut, Err: fmt.Errorf("%w: %v", werr, err)}
	}

	return &Result{
		OutputPath: absOut,
		Mode:       ModeSelfExtracting,
		Format:     format,
		Compressor: comp.Name(),
		Builder:    builder.Name(),
	}, nil
}

// resolveMode decides the target mode and archive format for a request.
// A recognized archive extension without --exe means a plain archive;
// anything else is self-extracting, which requires the zip format. A
// format override picks the container, never the mode.
func resolveMode(req *Request, absOut string) (Mode, archive.Format, error) {
	extFormat, extRecognized := archive.FormatForPath(absOut)

	format := archive.FormatZip
	switch {
	case req.Format != "":
		f, ok := archive.ParseFormat(req.Format)
		if !ok {
			return "", "", &Error{Op: "package", Err: fmt.Errorf("unknown format %q", req.Format)}
		}
		format = f
	case extRecognized:
		format = extFormat
	}

	mode := ModePlainArchive
	if req.WantExecutable || !extRecognized {
		mode = ModeSelfExtracting
	}

	if mode == ModeSelfExtracting && format != archive.FormatZip {
		return "", "", &Error{Op: "package", Path: absOut,
			Err: fmt.Errorf("self-extracting output requires the zip format, not %s", format)}
	}
	return mode, format, nil
}

// compressorFor picks a compressor for the format per configuration
func (p *Packager) compressorFor(format archive.Format) (archive.Compressor, error) {
	if format == archive.FormatTarXz {
		return archive.NewTarXz(), nil
	}

	tool := archive.NewZipTool(p.config.ZipTool)
	switch p.config.Compressor {
	case core.CompressorNative:
		return archive.NewNativeZip(), nil
	case core.CompressorZip:
		if !tool.Available() {
			return nil, &Error{Op: "locating compressor", Path: p.config.ZipTool,
				Err: fmt.Errorf("%w: %q not on PATH", ErrCompressionFailed, p.config.ZipTool)}
		}
		return tool, nil
	default:
		if tool.Available() {
			return tool, nil
		}
		return archive.NewNativeZip(), nil
	}
}

// fallbackPath derives the preserved-archive location from the requested
// output path by swapping its extension for the archive format's own.
func fallbackPath(outPath string, format archive.Format) string {
	base := strings.TrimSuffix(outPath, filepath.Ext(outPath))
	return base + format.Extension()
}
