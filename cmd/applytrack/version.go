package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/ternarybob/applytrack/internal/common"
)

var versionCmd = &cobra.Command{
	Use:         "version",
	Short:       "Print version information",
	Annotations: map[string]string{skipAppAnnotation: "true"},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "ApplyTrack version %s\n", common.GetFullVersion())
	},
}
