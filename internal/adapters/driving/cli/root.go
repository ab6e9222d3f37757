// Package cli provides the command-line interface for inkbridge.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/inkbridge-labs/inkbridge/internal/core/ports/driving"
	"github.com/inkbridge-labs/inkbridge/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// Services are injected by the composition root before Execute runs.
// Commands check for nil so a partially wired binary fails loudly instead
// of panicking.
var (
	contentService driving.ContentService
	hostService    driving.ImageHostService
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "inkbridge",
	Short: "Markdown editing bridge with image host uploads",
	Long: `inkbridge keeps your markdown document in sync with an embedded
editing surface and uploads dropped images to a configured image host.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// SetServices injects the application services.
func SetServices(content driving.ContentService, hosts driving.ImageHostService) {
	contentService = content
	hostService = hosts
}

// SetVersion overrides the reported version string.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
