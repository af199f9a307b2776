package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	appVersion = "dev"
	appCommit  = "none"
	appDate    = "unknown"
)

// SetVersionInfo sets the version information injected via ldflags.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}

var rootCmd = &cobra.Command{
	Use:   "kinema",
	Short: "Kinema - programmatic SVG animation renderer",
	Long: `Kinema renders programmatic vector animations to video.

Scenes are described either in Go, using the scene and anim packages, or
declaratively in YAML scene files. Frames are drawn as SVG, rasterized in
parallel, and encoded to H.264 through ffmpeg.

It provides CLI commands for rendering scenes, running project recipes,
profiling renders with flame graph reports, and inspecting the toolchain.`,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("kinema %s\ncommit: %s\nbuilt:  %s\n", appVersion, appCommit, appDate)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
