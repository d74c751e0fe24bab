// Command uneff removes byte order marks and problematic Unicode characters
// from text files. Cleaned copies are written next to the originals; the
// originals are never modified.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/uneff-io/uneff/pkg/config"
	"github.com/uneff-io/uneff/pkg/logger"
)

// Build information. Populated at build-time via -ldflags.
var (
	// Version is the current version of uneff
	Version = "dev"
	// GitCommit is the git commit hash
	GitCommit = "unknown"
	// BuildTime is the build timestamp
	BuildTime = "unknown"
)

var (
	cfgFile  string
	logLevel string
	quiet    bool
)

var rootCmd = &cobra.Command{
	Use:   "uneff",
	Short: "Remove BOMs and problematic Unicode characters from text files",
	Long: `uneff cleans text files of byte order marks and of invisible or
directional Unicode characters that break parsers, diffs, and terminals.
A cleaned copy is written alongside the original file.`,
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), versionString())
	},
}

func versionString() string {
	return fmt.Sprintf("uneff v%s (commit: %s, built: %s)", Version, GitCommit, BuildTime)
}

func main() {
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(textCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(mappingsCmd)
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

// loadConfig resolves the effective configuration and applies the logging
// flags shared by every subcommand.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	logger.SetLevel(cfg.LogLevel)
	if quiet {
		logger.Quiet()
	}
	return cfg, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to a YAML config file (default ./uneff.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level: trace, debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress diagnostics and the text report")
}
