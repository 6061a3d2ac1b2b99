package main

import (
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/progress"
	"github.com/mattn/go-isatty"
)

// progressBar renders a single go-pretty tracker fed by ProgressFunc updates.
type progressBar struct {
	writer  progress.Writer
	tracker *progress.Tracker
	started bool
	done    chan struct{}
}

func newProgressBar(w io.Writer, message string) *progressBar {
	pw := progress.NewWriter()
	pw.SetOutputWriter(w)
	pw.SetAutoStop(true)
	pw.SetTrackerLength(30)
	pw.SetUpdateFrequency(50 * time.Millisecond)
	pw.SetStyle(progress.StyleBlocks)
	if colorEnabled() {
		pw.Style().Colors = progress.StyleColorsExample
	}
	pw.Style().Visibility.ETA = true

	return &progressBar{
		writer:  pw,
		tracker: &progress.Tracker{Message: message, Units: progress.UnitsDefault},
		done:    make(chan struct{}),
	}
}

// Update implements ProgressFunc. Rendering starts on the first update.
func (p *progressBar) Update(pr Progress) {
	if !p.started {
		p.started = true
		p.tracker.UpdateTotal(int64(pr.Total))
		p.writer.AppendTracker(p.tracker)
		go func() {
			p.writer.Render()
			close(p.done)
		}()
	}
	p.tracker.SetValue(int64(pr.Processed))
}

// Stop finishes the tracker and waits for the final frame.
func (p *progressBar) Stop(err error) {
	if !p.started {
		return
	}
	if err != nil {
		p.tracker.MarkAsErrored()
	} else {
		p.tracker.MarkAsDone()
	}
	<-p.done
}

// isTerminalWriter reports whether w is a terminal file.
func isTerminalWriter(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func colorEnabled() bool {
	return !color.NoColor
}
