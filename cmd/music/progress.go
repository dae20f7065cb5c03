package main

import (
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"

	"github.com/Belphemur/SuperMusic/internal/models"
	"github.com/Belphemur/SuperMusic/internal/services"
)

func isTerminal(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// transferBar draws a byte progress bar on out, starting a new bar whenever a
// transfer restarts from a lower byte count.
type transferBar struct {
	out         io.Writer
	description string
	bar         *progressbar.ProgressBar
	last        uint64
}

// newProgressFunc returns a progress callback drawing to barOut when stdout is a
// terminal, or nil so transfers skip reporting.
func newProgressFunc(stdout, barOut io.Writer, description string) (services.ProgressFunc, func()) {
	if !isTerminal(stdout) {
		return nil, func() {}
	}
	tb := &transferBar{out: barOut, description: description}
	return tb.update, tb.finish
}

func (b *transferBar) update(p models.TransferProgress) {
	if b.bar == nil || p.BytesTransferred < b.last {
		b.finish()
		total := int64(-1)
		if p.TotalBytes > 0 {
			total = int64(p.TotalBytes)
		}
		b.bar = progressbar.NewOptions64(total,
			progressbar.OptionSetWriter(b.out),
			progressbar.OptionSetDescription(b.description),
			progressbar.OptionShowBytes(true),
			progressbar.OptionSetWidth(30),
			progressbar.OptionThrottle(100*time.Millisecond),
			progressbar.OptionClearOnFinish(),
		)
	}
	b.last = p.BytesTransferred
	_ = b.bar.Set64(int64(p.BytesTransferred))
}

func (b *transferBar) finish() {
	if b.bar != nil {
		_ = b.bar.Finish()
		b.bar = nil
	}
	b.last = 0
}
