package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kinemalab/kinema/internal/integration"
	"github.com/kinemalab/kinema/internal/observability"
	"github.com/kinemalab/kinema/internal/scenefile"
	"github.com/kinemalab/kinema/pkg/models"
	"github.com/kinemalab/kinema/pkg/render"
)

var (
	renderOutput     string
	renderDebug      bool
	renderFPS        int
	renderWorkers    int
	renderFramesOnly bool
	renderWatch      bool
	renderShow       bool
)

var renderCmd = &cobra.Command{
	Use:   "render <scene.yaml>",
	Short: "Render a scene file to video",
	Long: `Render a YAML scene file to an H.264 video via ffmpeg.

Frames are rasterized in parallel and piped to ffmpeg as PNG images.
With --frames-only the encoder is skipped and numbered PNG frames are
written to a directory instead. With --watch the scene is re-rendered
whenever the file changes.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		scenePath := args[0]
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if renderWatch {
			return watchAndRender(ctx, scenePath)
		}
		_, err := renderScene(ctx, scenePath)
		return err
	},
}

// debugEnabled reports whether debug rendering is on, either via the
// --debug flag or the KINEMA_DEBUG recipe parameter.
func debugEnabled() bool {
	if renderDebug {
		return true
	}
	v := os.Getenv("KINEMA_DEBUG")
	return v != "" && v != "0"
}

// useFramesOnly reports whether to write a PNG sequence instead of video.
// Debug renders always produce the PNG sequence so individual frames can
// be inspected.
func useFramesOnly() bool {
	return renderFramesOnly || debugEnabled()
}

// renderScene performs a single render of the scene file.
func renderScene(ctx context.Context, scenePath string) (*render.Result, error) {
	doc, err := scenefile.Load(scenePath)
	if err != nil {
		return nil, err
	}

	cfg := *Config
	if renderFPS > 0 {
		cfg.FPS = renderFPS
	}
	if renderWorkers > 0 {
		cfg.Workers = renderWorkers
	}

	r, err := scenefile.Compile(doc, &cfg)
	if err != nil {
		return nil, err
	}
	if Logger != nil {
		r.SetLogger(Logger)
	}

	sceneName := strings.TrimSuffix(filepath.Base(scenePath), filepath.Ext(scenePath))
	output := renderOutput
	if output == "" {
		output = filepath.Join(cfg.Output, sceneName+".mp4")
	}
	if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	framesDir := strings.TrimSuffix(output, filepath.Ext(output))

	var enc render.Encoder
	if useFramesOnly() {
		enc = render.NewPNGDirEncoder(framesDir)
	} else {
		disc, err := Codec.Discover(ctx, cfg.FFmpegPath)
		switch {
		case errors.Is(err, integration.ErrFFmpegNotFound):
			fmt.Fprintf(os.Stderr, "warning: %v; writing PNG frames to %s instead\n", err, framesDir)
			enc = render.NewPNGDirEncoder(framesDir)
		case err != nil:
			return nil, err
		default:
			if Logger != nil {
				Logger.Debug("using ffmpeg",
					zap.String("path", disc.Path),
					zap.String("version", disc.Version),
					zap.String("libdir", disc.LibDir))
			}
			enc = render.NewFFmpegEncoder(disc.Path, output)
		}
	}

	job := &models.RenderJob{
		ID:      uuid.NewString()[:8],
		Scene:   sceneName,
		Output:  output,
		Status:  models.JobRunning,
		Started: time.Now().UTC(),
	}
	emitEvent(observability.RenderStarted(job.ID, job.Scene, debugEnabled()))

	printer := newProgressPrinter(os.Stderr)
	result, err := r.Render(ctx, enc, printer.Update)
	printer.Finish()

	if err != nil {
		job.Status = models.JobFailed
		emitEvent(observability.RenderFailed(job.ID, job.Scene, err.Error()))
		return nil, err
	}

	job.Status = models.JobCompleted
	job.Frames = result.Frames
	job.Seconds = result.Elapsed.Seconds()
	emitEvent(observability.RenderCompleted(
		job.ID, job.Scene, result.Frames, result.Elapsed.Seconds(), result.OutputPath))

	fmt.Printf("Rendered %d frames to %s in %s\n",
		result.Frames, result.OutputPath, result.Elapsed.Round(time.Millisecond))

	if renderShow {
		if err := Browser.Open(ctx, result.OutputPath); err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not open %s: %v\n", result.OutputPath, err)
		}
	}
	return result, nil
}

// watchAndRender re-renders the scene whenever the file is written.
func watchAndRender(ctx context.Context, scenePath string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// Watch the directory rather than the file: editors that save via
	// rename would otherwise drop the watch after the first write.
	dir := filepath.Dir(scenePath)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}

	if _, err := renderScene(ctx, scenePath); err != nil {
		fmt.Fprintf(os.Stderr, "render failed: %v\n", err)
	}
	fmt.Printf("Watching %s for changes (ctrl-c to stop)\n", scenePath)

	target := filepath.Clean(scenePath)
	var lastRender time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "watch error: %v\n", err)
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			// Editors fire bursts of writes per save.
			if time.Since(lastRender) < 200*time.Millisecond {
				continue
			}
			lastRender = time.Now()
			if _, err := renderScene(ctx, scenePath); err != nil {
				fmt.Fprintf(os.Stderr, "render failed: %v\n", err)
			}
		}
	}
}

// emitEvent writes to the event log when observability is enabled.
func emitEvent(ev observability.Event) {
	if EventLog == nil {
		return
	}
	_ = EventLog.Write(ev)
}

func init() {
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "Output video path (default <output dir>/<scene>.mp4)")
	renderCmd.Flags().BoolVar(&renderDebug, "debug", false, "Debug rendering (implied by KINEMA_DEBUG=1)")
	renderCmd.Flags().IntVar(&renderFPS, "fps", 0, "Override frames per second")
	renderCmd.Flags().IntVar(&renderWorkers, "workers", 0, "Rasterization workers (0 = one per CPU)")
	renderCmd.Flags().BoolVar(&renderFramesOnly, "frames-only", false, "Write PNG frames instead of encoding video")
	renderCmd.Flags().BoolVar(&renderWatch, "watch", false, "Re-render when the scene file changes")
	renderCmd.Flags().BoolVar(&renderShow, "show", false, "Open the rendered video when done")
	rootCmd.AddCommand(renderCmd)
}
