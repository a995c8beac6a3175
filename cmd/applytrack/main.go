// -----------------------------------------------------------------------
// Last Modified: Thursday, 15th October 2026 11:45:00 am
// Modified By: Bob McAllan
// -----------------------------------------------------------------------

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/ternarybob/applytrack/internal/app"
	"github.com/ternarybob/applytrack/internal/common"
	"github.com/ternarybob/arbor"
)

// skipAppAnnotation marks commands that run without opening the database
const skipAppAnnotation = "skip-app"

var (
	// Command-line flags
	configFiles []string // Multiple --config flags supported
	dataPath    string
	logLevel    string

	// Global state
	config      *common.Config
	logger      arbor.ILogger
	application *app.App
)

var rootCmd = &cobra.Command{
	Use:               "applytrack",
	Short:             "Track job applications and follow-up reminders",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringArrayVarP(&configFiles, "config", "c", nil, "Configuration file path (can be specified multiple times, later files override earlier ones)")
	rootCmd.PersistentFlags().StringVar(&dataPath, "data", "", "Database directory (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")

	rootCmd.AddCommand(
		addCmd,
		updateCmd,
		deleteCmd,
		pinCmd,
		archiveCmd,
		listCmd,
		showCmd,
		dupesCmd,
		statsCmd,
		rescheduleCmd,
		remindCmd,
		versionCmd,
	)
}

// setup runs the startup sequence (REQUIRED ORDER):
// 1. Load config (defaults -> file1 -> file2 -> ... -> .env -> env)
// 2. Apply CLI overrides (highest priority)
// 3. Initialize logger
// 4. Open storage and load records
func setup(cmd *cobra.Command, args []string) error {
	if cmd.Annotations[skipAppAnnotation] == "true" {
		return nil
	}

	// Auto-discover config file if not specified
	if len(configFiles) == 0 {
		if _, err := os.Stat("applytrack.toml"); err == nil {
			configFiles = append(configFiles, "applytrack.toml")
		} else if _, err := os.Stat("deployments/local/applytrack.toml"); err == nil {
			configFiles = append(configFiles, "deployments/local/applytrack.toml")
		}
	}

	var err error
	config, err = common.LoadFromFiles(configFiles...)
	if err != nil {
		return fmt.Errorf("failed to load configuration %v: %w", configFiles, err)
	}

	common.ApplyFlagOverrides(config, dataPath, logLevel)

	logger = common.InitLogger(config)
	common.InstallCrashHandler(common.LogsDirectory(config))

	logger.Debug().
		Strs("config_files", configFiles).
		Str("badger_path", config.Storage.Badger.Path).
		Str("log_level", config.Logging.Level).
		Msg("Configuration loaded")

	application, err = app.New(cmd.Context(), config, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	return nil
}

func main() {
	defer common.RecoverWithCrashFile()

	err := rootCmd.ExecuteContext(context.Background())

	// Close even when the command failed so badger flushes its value log
	if application != nil {
		if closeErr := application.Close(); closeErr != nil {
			logger.Error().Err(closeErr).Msg("Failed to close application")
		}
	}

	if err != nil {
		os.Exit(1)
	}
}
