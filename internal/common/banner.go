package common

import (
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/banner"
)

// PrintBanner displays the application banner and logs the resolved storage settings
func PrintBanner(config *Config, logger arbor.ILogger) {
	banner.PrintSimple("ApplyTrack", GetVersion())

	logger.Debug().
		Str("environment", config.Environment).
		Str("badger_path", config.Storage.Badger.Path).
		Bool("in_memory", config.Storage.Badger.InMemory).
		Str("log_level", config.Logging.Level).
		Strs("log_output", config.Logging.Output).
		Msg("Resolved configuration")
}
