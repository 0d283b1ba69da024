// pkg/core/config.go
package core

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Compressor selection values for Config.Compressor.
const (
	CompressorAuto   = "auto"   // external zip tool if present, built-in writer otherwise
	CompressorZip    = "zip"    // external zip tool only
	CompressorNative = "native" // built-in writer only
)

// Config holds didaride configuration
type Config struct {
	SfxStubPaths  []string `yaml:"sfx_stub_paths"` // ordered SFX stub candidates
	ZipTool       string   `yaml:"zip_tool"`       // external archiver binary
	ConverterTool string   `yaml:"converter_tool"` // archive-to-exe converter binary
	Compressor    string   `yaml:"compressor"`     // auto, zip or native
	Debug         bool     `yaml:"debug"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		SfxStubPaths:  defaultStubPaths(),
		ZipTool:       "zip",
		ConverterTool: "zip2exe",
		Compressor:    CompressorAuto,
		Debug:         false,
	}
}

// LoadConfig loads configuration from file
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return DefaultConfig(), nil
		}
		path = filepath.Join(home, ".config", "didaride", "config.yaml")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves configuration to file
func SaveConfig(cfg *Config, path string) error {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		path = filepath.Join(home, ".config", "didaride", "config.yaml")
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

func defaultStubPaths() []string {
	if runtime.GOOS == "windows" {
		return []string{
			`C:\Program Files\7-Zip\7z.sfx`,
			`C:\Program Files\7-Zip\7zCon.sfx`,
			`C:\Program Files (x86)\7-Zip\7z.sfx`,
		}
	}

	return []string{
		"/usr/lib/p7zip/7z.sfx",
		"/usr/lib/p7zip/7zCon.sfx",
		"/usr/local/lib/p7zip/7zCon.sfx",
		"/usr/share/7z/7zCon.sfx",
	}
}
