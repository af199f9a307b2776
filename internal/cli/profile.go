package cli

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kinemalab/kinema/internal/observability"
	"github.com/kinemalab/kinema/internal/profiling"
)

var (
	profilePort   int
	profileNoOpen bool
	profileOut    string
)

var profileCmd = &cobra.Command{
	Use:   "profile <scene.yaml>",
	Short: "Render a scene under the CPU profiler",
	Long: `Render a scene while capturing a CPU profile, then serve the profile
as an interactive flame graph report and open it in the browser.

The report is served by the pprof web UI; the command blocks until it is
stopped with ctrl-c. Use --no-open to skip launching the browser and
--port to pin the report to a fixed port.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		scenePath := args[0]
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		renderWorkers = profileWorkers(renderWorkers)

		profilePath := profileOut
		if profilePath == "" {
			profilePath = filepath.Join(Config.Output, "profiles", "cpu.pprof")
		}

		session, err := profiling.Start(profilePath)
		if err != nil {
			return err
		}

		_, renderErr := renderScene(ctx, scenePath)

		if err := session.Stop(); err != nil {
			return err
		}
		if renderErr != nil {
			return renderErr
		}

		emitEvent(observability.ProfileCaptured(session.Path()))
		fmt.Printf("CPU profile written to %s\n", session.Path())

		if profileNoOpen {
			return nil
		}

		url, err := Reporter.Serve(ctx, profiling.ReportConfig{
			ProfilePath: session.Path(),
			Port:        profilePort,
		})
		if err != nil && ctx.Err() == nil {
			return fmt.Errorf("serving flame graph at %s: %w", url, err)
		}
		return nil
	},
}

// profileWorkers returns the rasterization worker count for a profiled
// render. Parallel rasterization interleaves worker stacks in the profile,
// so debug profiling renders single-threaded to keep them readable.
func profileWorkers(requested int) int {
	if debugEnabled() {
		return 1
	}
	return requested
}

func init() {
	profileCmd.Flags().IntVar(&profilePort, "port", 0, "Port for the flame graph report (0 = pick a free port)")
	profileCmd.Flags().BoolVar(&profileNoOpen, "no-open", false, "Capture the profile without serving the report")
	profileCmd.Flags().StringVar(&profileOut, "profile-out", "", "CPU profile path (default <output dir>/profiles/cpu.pprof)")

	// Profiling wraps a normal render, so the core render flags apply here too.
	profileCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "Output video path (default <output dir>/<scene>.mp4)")
	profileCmd.Flags().BoolVar(&renderDebug, "debug", false, "Debug rendering (implied by KINEMA_DEBUG=1)")
	profileCmd.Flags().IntVar(&renderFPS, "fps", 0, "Override frames per second")
	profileCmd.Flags().IntVar(&renderWorkers, "workers", 0, "Rasterization workers (0 = one per CPU)")
	profileCmd.Flags().BoolVar(&renderFramesOnly, "frames-only", false, "Write PNG frames instead of encoding video")
	rootCmd.AddCommand(profileCmd)
}
