// internal/cli/root.go
package cli

import (
	"fmt"
	"os"

	"github.com/MistyPigeon/DidaRide/pkg/core"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	debug   bool
	config  *core.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "didaride",
	Short: "Archive packager",
	Long: `didaride - Archive Packager

Packages a file or directory into a compressed archive, or wraps it into a
self-extracting executable by prefixing the archive with an SFX stub.`,
	Version: "0.1.0",
}

// Execute executes the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/didaride/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	// Add commands
	rootCmd.AddCommand(packageCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(checksumCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	var err error
	config, err = core.LoadConfig(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		config = core.DefaultConfig()
	}

	// Override config with flags
	if debug {
		config.Debug = true
	}
}
