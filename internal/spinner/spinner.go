// Package spinner draws a one-line progress indicator for long-running
// commands such as toolclf sweep.
package spinner

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/term"
)

var frames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner shows an animated frame, a message and a done/total counter.
type Spinner struct {
	w        io.Writer
	message  string
	total    int
	done     atomic.Int64
	stop     chan struct{}
	cleared  chan struct{}
	stopOnce sync.Once
	width    int
}

// Enabled reports whether w is a terminal, where redrawing a line makes sense.
func Enabled(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Start displays the spinner on w until Stop is called.
func Start(w io.Writer, message string, total int) *Spinner {
	s := &Spinner{
		w:       w,
		message: message,
		total:   total,
		stop:    make(chan struct{}),
		cleared: make(chan struct{}),
	}
	go s.loop()
	return s
}

// Inc records one finished unit of work. Safe for concurrent use.
func (s *Spinner) Inc() {
	s.done.Add(1)
}

// Done is the number of finished units so far.
func (s *Spinner) Done() int {
	return int(s.done.Load())
}

// Stop clears the line. It is safe to call more than once.
func (s *Spinner) Stop() {
	s.stopOnce.Do(func() {
		close(s.stop)
	})
	<-s.cleared
}

func (s *Spinner) loop() {
	i := 0
	for {
		select {
		case <-s.stop:
			fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", s.width)) //nolint:errcheck
			close(s.cleared)
			return
		case <-time.After(80 * time.Millisecond):
			line := fmt.Sprintf("%s %s %d/%d", frames[i%len(frames)], s.message, s.Done(), s.total)
			if n := len(line); n > s.width {
				s.width = n
			}
			fmt.Fprintf(s.w, "\r%s", line) //nolint:errcheck
			i++
		}
	}
}
