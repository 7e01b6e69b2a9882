package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/perceptlab/stimkit/pkg/cli"
)

var (
	// Global flags
	verbose    bool
	configPath string

	// Global configuration (loaded at init time)
	globalConfig *cli.Config
)

var rootCmd = &cobra.Command{
	Use:   "stimkit",
	Short: "Load and inspect multimodal stimuli",
	Long: `stimkit - manage multimodal stimuli for feature-extraction pipelines.

Stimuli (text, image, audio, video) are loaded from files or directories
by sniffing file content, and every transformation applied to a stimulus
leaves an immutable provenance record.

Examples:
  # Load everything recognizable from a directory
  stimkit load ./stimuli/

  # Force a stimulus type instead of sniffing
  stimkit load --type text notes.md

  # Classify files without loading them
  stimkit sniff clip.bin

  # Inspect recorded provenance chains
  stimkit history list
  stimkit history show 7d8f...`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig, initLogging)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path")
}

// configLoadErr stores the error from config loading for deferred
// reporting, so commands that don't need config still work.
var configLoadErr error

func initConfig() {
	var (
		cfg *cli.Config
		err error
	)
	if configPath != "" {
		cfg, err = cli.LoadConfigFrom(configPath)
	} else {
		cfg, err = cli.LoadConfig()
	}
	if err != nil {
		configLoadErr = err
		return
	}
	globalConfig = cfg
}

func initLogging() {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// GetConfig returns the global configuration.
func GetConfig() (*cli.Config, error) {
	if globalConfig == nil {
		if configLoadErr != nil {
			return nil, fmt.Errorf("config not available: %w", configLoadErr)
		}
		cfg, err := cli.LoadConfig()
		if err != nil {
			return nil, fmt.Errorf("config not available: %w", err)
		}
		globalConfig = cfg
	}
	return globalConfig, nil
}

// IsVerbose returns whether verbose mode is enabled.
func IsVerbose() bool {
	return verbose
}
