package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/progress"

	"github.com/kinemalab/kinema/pkg/render"
)

// progressPrinter draws a single-line progress bar for a running render.
// It throttles redraws so rasterizing thousands of frames does not spend
// its time repainting the terminal.
type progressPrinter struct {
	bar   progress.Model
	out   io.Writer
	last  time.Time
	total int
}

func newProgressPrinter(out io.Writer) *progressPrinter {
	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 40
	return &progressPrinter{bar: bar, out: out}
}

// Update redraws the bar for the given progress, at most every 50ms plus
// always on the final frame.
func (p *progressPrinter) Update(pr render.Progress) {
	p.total = pr.Total
	final := pr.Done == pr.Total
	if !final && time.Since(p.last) < 50*time.Millisecond {
		return
	}
	p.last = time.Now()

	percent := 0.0
	if pr.Total > 0 {
		percent = float64(pr.Done) / float64(pr.Total)
	}
	fmt.Fprintf(p.out, "\r%s %d/%d frames", p.bar.ViewAs(percent), pr.Done, pr.Total)
}

// Finish terminates the progress line.
func (p *progressPrinter) Finish() {
	fmt.Fprintln(p.out)
}
