// pkg/packager/packager_test.go
package packager

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/MistyPigeon/DidaRide/pkg/core"
)

// testConfig uses the built-in compressor and no real tool locations, so
// tests never depend on binaries or stubs installed on the host.
func testConfig(stubPaths ...string) *core.Config {
	return &core.Config{
		SfxStubPaths:  stubPaths,
		ZipTool:       "zip",
		ConverterTool: "didaride-test-no-such-tool",
		Compressor:    core.CompressorNative,
	}
}

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
}

func zipEntryNames(t *testing.T, path string) []string {
	t.Helper()

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening archive: %v", err)
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		t.Fatal(err)
	}
	zr, err := zip.NewReader(f, info.Size())
	if err != nil {
		t.Fatalf("reading archive %s: %v", path, err)
	}

	var names []string
	for _, entry := range zr.File {
		names = append(names, entry.Name)
	}
	return names
}

func TestPackage_MissingInputFailsWithoutWrites(t *testing.T) {
	outDir := t.TempDir()
	out := filepath.Join(outDir, "out.zip")

	p := New(testConfig())
	_, err := p.Package(context.Background(), &Request{
		InputPath:  filepath.Join(t.TempDir(), "does-not-exist"),
		OutputPath: out,
	})

	if !errors.Is(err, ErrInputNotFound) {
		t.Fatalf("expected ErrInputNotFound, got %v", err)
	}
	if _, serr := os.Stat(out); !os.IsNotExist(serr) {
		t.Error("output was written despite missing input")
	}
	entries, derr := os.ReadDir(outDir)
	if derr != nil {
		t.Fatal(derr)
	}
	if len(entries) != 0 {
		t.Errorf("unexpected files written on failure: %v", entries)
	}
}

func TestPackage_DirectoryToZip(t *testing.T) {
	dir := t.TempDir()
	project := filepath.Join(dir, "project")
	if err := os.MkdirAll(project, 0755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(project, "a.txt"), []byte("hello"))
	out := filepath.Join(t.TempDir(), "project.zip")

	p := New(testConfig())
	res, err := p.Package(context.Background(), &Request{
		InputPath:  project,
		OutputPath: out,
	})
	if err != nil {
		t.Fatalf("Package: %v", err)
	}

	if res.Mode != ModePlainArchive {
		t.Errorf("mode = %s, want %s", res.Mode, ModePlainArchive)
	}
	if res.OutputPath != out {
		t.Errorf("output = %s, want %s", res.OutputPath, out)
	}

	names := zipEntryNames(t, out)
	found := false
	for _, name := range names {
		if name == "project/a.txt" {
			found = true
		}
	}
	if !found {
		t.Errorf("missing entry project/a.txt in %v", names)
	}
}

func TestPackage_SelfExtractingWithStub(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "script.py"), []byte("print('hi')\n"))

	stubBytes := []byte("FAKE-SFX-STUB\x00\x01\x02\x03")
	stubPath := filepath.Join(t.TempDir(), "7z.sfx")
	writeFile(t, stubPath, stubBytes)

	out := filepath.Join(t.TempDir(), "script.exe")

	p := New(testConfig(stubPath))
	res, err := p.Package(context.Background(), &Request{
		InputPath:  filepath.Join(dir, "script.py"),
		OutputPath: out,
	})
	if err != nil {
		t.Fatalf("Package: %v", err)
	}

	if res.Mode != ModeSelfExtracting {
		t.Errorf("mode = %s, want %s", res.Mode, ModeSelfExtracting)
	}
	if res.Builder != "sfx-stub" {
		t.Errorf("builder = %q, want sfx-stub", res.Builder)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, stubBytes) {
		t.Error("executable does not start with the stub bytes")
	}

	// The trailing bytes must still be a readable archive.
	names := zipEntryNames(t, out)
	if len(names) != 1 || names[0] != "script.py" {
		t.Errorf("expected single entry script.py behind the stub, got %v", names)
	}
}

func TestPackage_ExeFlagForcesSelfExtractingForZipOutput(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "notes.txt"), []byte("notes"))

	stubPath := filepath.Join(t.TempDir(), "stub.sfx")
	writeFile(t, stubPath, []byte("STUB"))
	out := filepath.Join(t.TempDir(), "notes.zip")

	p := New(testConfig(stubPath))
	res, err := p.Package(context.Background(), &Request{
		InputPath:      filepath.Join(dir, "notes.txt"),
		OutputPath:     out,
		WantExecutable: true,
	})
	if err != nil {
		t.Fatalf("Package: %v", err)
	}
	if res.Mode != ModeSelfExtracting {
		t.Errorf("mode = %s, want %s despite .zip extension", res.Mode, ModeSelfExtracting)
	}
}

func TestPackage_FallbackPreservesArchiveWhenNoBuilder(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "script.py"), []byte("print('hi')\n"))

	outDir := t.TempDir()
	out := filepath.Join(outDir, "script.exe")

	p := New(testConfig()) // no stub candidates, no converter tool
	res, err := p.Package(context.Background(), &Request{
		InputPath:  filepath.Join(dir, "script.py"),
		OutputPath: out,
	})
	if err != nil {
		t.Fatalf("fallback must not fail the operation, got %v", err)
	}

	wantFallback := filepath.Join(outDir, "script.zip")
	if res.FallbackPath != wantFallback {
		t.Errorf("fallback path = %q, want %q", res.FallbackPath, wantFallback)
	}
	if !errors.Is(res.Warning, ErrNoExeTool) {
		t.Errorf("warning = %v, want ErrNoExeTool", res.Warning)
	}
	if !errors.Is(res.Warning, ErrSfxStubNotFound) {
		t.Errorf("warning = %v, should mention the missing stub", res.Warning)
	}
	if _, serr := os.Stat(out); !os.IsNotExist(serr) {
		t.Error("executable output exists although no builder was available")
	}

	names := zipEntryNames(t, wantFallback)
	if len(names) != 1 || names[0] != "script.py" {
		t.Errorf("fallback archive entries = %v, want [script.py]", names)
	}

	// The intermediate temporary must not linger.
	entries, derr := os.ReadDir(outDir)
	if derr != nil {
		t.Fatal(derr)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".didaride-") {
			t.Errorf("leftover intermediate archive %s", e.Name())
		}
	}
}

func TestPackage_FormatOverrideDoesNotChangeMode(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "script.py"), []byte("print('hi')\n"))

	stubBytes := []byte("FAKE-SFX-STUB")
	stubPath := filepath.Join(t.TempDir(), "7z.sfx")
	writeFile(t, stubPath, stubBytes)
	out := filepath.Join(t.TempDir(), "script.exe")

	// An explicit zip format picks the container; an .exe output still
	// means a self-extracting executable.
	p := New(testConfig(stubPath))
	res, err := p.Package(context.Background(), &Request{
		InputPath:  filepath.Join(dir, "script.py"),
		OutputPath: out,
		Format:     "zip",
	})
	if err != nil {
		t.Fatalf("Package: %v", err)
	}

	if res.Mode != ModeSelfExtracting {
		t.Errorf("mode = %s, want %s for .exe output with explicit format", res.Mode, ModeSelfExtracting)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, stubBytes) {
		t.Error("executable does not start with the stub bytes")
	}
}

// installFakeTool puts an executable shell script on PATH for the test
func installFakeTool(t *testing.T, name, script string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake converter scripts need a POSIX shell")
	}

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(script), 0755); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))
}

func TestPackage_ConverterToolBuildsExecutableWhenStubMissing(t *testing.T) {
	installFakeTool(t, "didaride-fake-convert", "#!/bin/sh\ncp \"$1\" \"$2\"\n")

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "script.py"), []byte("print('hi')\n"))
	out := filepath.Join(t.TempDir(), "script.exe")

	cfg := testConfig() // no stub candidates
	cfg.ConverterTool = "didaride-fake-convert"

	p := New(cfg)
	res, err := p.Package(context.Background(), &Request{
		InputPath:  filepath.Join(dir, "script.py"),
		OutputPath: out,
	})
	if err != nil {
		t.Fatalf("Package: %v", err)
	}

	if res.Builder != "converter-tool" {
		t.Errorf("builder = %q, want converter-tool", res.Builder)
	}
	if res.FallbackPath != "" {
		t.Errorf("unexpected fallback to %s with a converter available", res.FallbackPath)
	}

	names := zipEntryNames(t, out)
	if len(names) != 1 || names[0] != "script.py" {
		t.Errorf("converted executable entries = %v, want [script.py]", names)
	}
}

func TestPackage_ConverterToolFailureIsTerminal(t *testing.T) {
	installFakeTool(t, "didaride-fail-convert", "#!/bin/sh\nexit 3\n")

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "script.py"), []byte("print('hi')\n"))
	outDir := t.TempDir()
	out := filepath.Join(outDir, "script.exe")

	cfg := testConfig()
	cfg.ConverterTool = "didaride-fail-convert"

	p := New(cfg)
	_, err := p.Package(context.Background(), &Request{
		InputPath:  filepath.Join(dir, "script.py"),
		OutputPath: out,
	})
	if !errors.Is(err, ErrConversionFailed) {
		t.Fatalf("expected ErrConversionFailed, got %v", err)
	}

	if _, serr := os.Stat(out); !os.IsNotExist(serr) {
		t.Error("output exists although the converter failed")
	}
	entries, derr := os.ReadDir(outDir)
	if derr != nil {
		t.Fatal(derr)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".didaride-") {
			t.Errorf("leftover intermediate archive %s", e.Name())
		}
	}
}

func TestPackage_TarXzOutput(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "notes.txt"), []byte("notes"))
	out := filepath.Join(t.TempDir(), "notes.tar.xz")

	p := New(testConfig())
	res, err := p.Package(context.Background(), &Request{
		InputPath:  filepath.Join(dir, "notes.txt"),
		OutputPath: out,
	})
	if err != nil {
		t.Fatalf("Package: %v", err)
	}
	if res.Mode != ModePlainArchive {
		t.Errorf("mode = %s, want %s", res.Mode, ModePlainArchive)
	}
	if _, serr := os.Stat(out); serr != nil {
		t.Errorf("missing tar.xz artifact: %v", serr)
	}
}

func TestPackage_TarXzWithExeIsRejected(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "notes.txt"), []byte("notes"))

	p := New(testConfig())
	_, err := p.Package(context.Background(), &Request{
		InputPath:      filepath.Join(dir, "notes.txt"),
		OutputPath:     filepath.Join(t.TempDir(), "notes.tar.xz"),
		WantExecutable: true,
	})
	if err == nil {
		t.Fatal("expected self-extracting tar.xz to be rejected")
	}
}

func TestPackage_EmptyRequestIsRejected(t *testing.T) {
	p := New(testConfig())
	if _, err := p.Package(context.Background(), nil); err == nil {
		t.Error("nil request accepted")
	}
	if _, err := p.Package(context.Background(), &Request{OutputPath: "x.zip"}); err == nil {
		t.Error("request without input accepted")
	}
}
