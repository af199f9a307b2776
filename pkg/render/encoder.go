package render

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
)

// Encoder consumes rasterized frames in order and produces the final
// output. Begin is called once before the first frame; Finish flushes and
// releases resources and is safe to call after a write error.
type Encoder interface {
	Begin(ctx context.Context, width, height, fps int) error
	WriteFrame(img image.Image) error
	Finish() error
	OutputPath() string
}

// FFmpegEncoder encodes H.264 video by piping PNG frames to an ffmpeg
// subprocess.
type FFmpegEncoder struct {
	ffmpegPath string
	output     string

	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stderr bytes.Buffer
}

// NewFFmpegEncoder creates an encoder that runs the ffmpeg binary at
// ffmpegPath and writes the video to output.
func NewFFmpegEncoder(ffmpegPath, output string) *FFmpegEncoder {
	return &FFmpegEncoder{ffmpegPath: ffmpegPath, output: output}
}

// encodeArgs builds the ffmpeg argument list for a PNG pipe input and an
// H.264 yuv420p output.
func encodeArgs(fps int, output string) []string {
	return []string{
		"-y",
		"-f", "image2pipe",
		"-vcodec", "png",
		"-r", strconv.Itoa(fps),
		"-i", "-",
		"-c:v", "libx264",
		"-pix_fmt", "yuv420p",
		output,
	}
}

// Begin starts the ffmpeg subprocess.
func (e *FFmpegEncoder) Begin(ctx context.Context, _, _, fps int) error {
	e.cmd = exec.CommandContext(ctx, e.ffmpegPath, encodeArgs(fps, e.output)...)
	e.cmd.Stderr = &e.stderr

	stdin, err := e.cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("opening ffmpeg stdin: %w", err)
	}
	e.stdin = stdin

	if err := e.cmd.Start(); err != nil {
		return fmt.Errorf("starting ffmpeg: %w", err)
	}
	return nil
}

// WriteFrame streams one frame as PNG into the ffmpeg pipe.
func (e *FFmpegEncoder) WriteFrame(img image.Image) error {
	if err := png.Encode(e.stdin, img); err != nil {
		return fmt.Errorf("piping frame to ffmpeg: %w", err)
	}
	return nil
}

// Finish closes the pipe and waits for ffmpeg to exit. On failure the tail
// of ffmpeg's stderr is included in the error.
func (e *FFmpegEncoder) Finish() error {
	if e.cmd == nil {
		return nil
	}
	if e.stdin != nil {
		_ = e.stdin.Close()
	}
	err := e.cmd.Wait()
	e.cmd = nil
	if err != nil {
		return fmt.Errorf("ffmpeg: %w: %s", err, tail(e.stderr.String(), 500))
	}
	return nil
}

// OutputPath returns the video file path.
func (e *FFmpegEncoder) OutputPath() string {
	return e.output
}

// PNGDirEncoder writes frames as numbered PNG files into a directory. It is
// the debug fallback when no ffmpeg binary is available.
type PNGDirEncoder struct {
	dir string
	n   int
}

// NewPNGDirEncoder creates an encoder writing frame-NNNNN.png files under
// dir.
func NewPNGDirEncoder(dir string) *PNGDirEncoder {
	return &PNGDirEncoder{dir: dir}
}

// Begin creates the target directory.
func (e *PNGDirEncoder) Begin(_ context.Context, _, _, _ int) error {
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return fmt.Errorf("creating frame directory: %w", err)
	}
	return nil
}

// WriteFrame writes the next numbered PNG file.
func (e *PNGDirEncoder) WriteFrame(img image.Image) error {
	path := filepath.Join(e.dir, fmt.Sprintf("frame-%05d.png", e.n))
	e.n++

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return nil
}

// Finish is a no-op for the PNG sequence encoder.
func (e *PNGDirEncoder) Finish() error { return nil }

// OutputPath returns the frame directory.
func (e *PNGDirEncoder) OutputPath() string { return e.dir }

func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return "..." + s[len(s)-n:]
}
