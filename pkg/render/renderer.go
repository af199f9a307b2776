package render

import (
	"context"
	"fmt"
	"image"
	"runtime"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Progress reports rasterization advancement to a callback.
type Progress struct {
	Done  int
	Total int
}

// Renderer rasterizes a timeline into frames and feeds them to an encoder.
type Renderer struct {
	Width   int
	Height  int
	FPS     int
	Workers int

	logger   *zap.Logger
	timeline Timeline
}

// New creates a renderer for the given canvas size with 60 fps and one
// rasterization worker per CPU.
func New(width, height int) *Renderer {
	return &Renderer{
		Width:   width,
		Height:  height,
		FPS:     60,
		Workers: runtime.GOMAXPROCS(0),
		logger:  zap.NewNop(),
	}
}

// SetFPS sets the frame rate.
func (r *Renderer) SetFPS(fps int) *Renderer {
	r.FPS = fps
	return r
}

// SetWorkers bounds the rasterization parallelism. Values below one fall
// back to a single worker.
func (r *Renderer) SetWorkers(n int) *Renderer {
	if n < 1 {
		n = 1
	}
	r.Workers = n
	return r
}

// SetLogger installs a logger. The default discards everything.
func (r *Renderer) SetLogger(l *zap.Logger) *Renderer {
	r.logger = l
	return r
}

// Timeline returns the mutable timeline used to stage objects and
// animations.
func (r *Renderer) Timeline() *Timeline {
	return &r.timeline
}

// Result describes a finished render.
type Result struct {
	OutputPath string
	Frames     int
	Elapsed    time.Duration
}

// Render plans the timeline, rasterizes all frames in parallel, and encodes
// them in order. onProgress, if non-nil, is called after each rasterized
// frame. Cancelling the context aborts both stages.
func (r *Renderer) Render(ctx context.Context, enc Encoder, onProgress func(Progress)) (*Result, error) {
	started := time.Now()

	frames := r.timeline.plan(r.FPS)
	r.logger.Info("planned timeline",
		zap.Int("frames", len(frames)),
		zap.Float64("seconds", r.timeline.EndTime()),
		zap.Int("fps", r.FPS),
		zap.Int("workers", r.Workers))

	images := make([]*image.RGBA, len(frames))
	var done atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.Workers)
	for i := range frames {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			doc := composite(r.Width, r.Height, frames[i])
			img, err := rasterize(doc.Markup(), r.Width, r.Height)
			if err != nil {
				return fmt.Errorf("rasterizing frame %d: %w", i, err)
			}
			images[i] = img
			if onProgress != nil {
				onProgress(Progress{Done: int(done.Add(1)), Total: len(frames)})
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	r.logger.Info("encoding frames", zap.Int("frames", len(images)))
	if err := enc.Begin(ctx, r.Width, r.Height, r.FPS); err != nil {
		return nil, fmt.Errorf("starting encoder: %w", err)
	}
	for i, img := range images {
		if err := ctx.Err(); err != nil {
			_ = enc.Finish()
			return nil, err
		}
		if err := enc.WriteFrame(img); err != nil {
			_ = enc.Finish()
			return nil, fmt.Errorf("encoding frame %d: %w", i, err)
		}
	}
	if err := enc.Finish(); err != nil {
		return nil, fmt.Errorf("finishing encode: %w", err)
	}

	result := &Result{
		OutputPath: enc.OutputPath(),
		Frames:     len(frames),
		Elapsed:    time.Since(started),
	}
	r.logger.Info("render complete",
		zap.String("output", result.OutputPath),
		zap.Int("frames", result.Frames),
		zap.Duration("elapsed", result.Elapsed))
	return result, nil
}
