package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

var spinnerFrames = [...]string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerTick = 80 * time.Millisecond

// spinner animates a one-line status on stderr while a stage runs. The
// message can change between stages. On a non-terminal writer it stays
// silent so piped output and logs carry no control characters.
type spinner struct {
	ctx     context.Context
	w       io.Writer
	animate bool

	mu      sync.Mutex
	msg     string
	width   int // widest message drawn, for blanking
	started bool

	stopOnce sync.Once
	quit     chan struct{}
	exited   chan struct{}
}

func newSpinner(ctx context.Context, msg string) *spinner {
	return &spinner{
		ctx:     ctx,
		w:       os.Stderr,
		animate: isTerminal(os.Stderr),
		msg:     msg,
		width:   len(msg),
		quit:    make(chan struct{}),
		exited:  make(chan struct{}),
	}
}

func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	return err == nil && fi.Mode()&os.ModeCharDevice != 0
}

// Start begins drawing. Calling it twice has no further effect.
func (s *spinner) Start() {
	s.mu.Lock()
	if s.started || !s.animate {
		s.mu.Unlock()
		return
	}
	s.started = true
	s.mu.Unlock()
	go s.run()
}

func (s *spinner) run() {
	defer close(s.exited)
	t := time.NewTicker(spinnerTick)
	defer t.Stop()

	for i := 0; ; i++ {
		select {
		case <-s.quit:
			return
		case <-s.ctx.Done():
			return
		case <-t.C:
			s.mu.Lock()
			fmt.Fprintf(s.w, "\r%s %s", styleAccent.Render(spinnerFrames[i%len(spinnerFrames)]), styleFaint.Render(s.msg))
			s.mu.Unlock()
		}
	}
}

// SetMessage replaces the text shown next to the spinner.
func (s *spinner) SetMessage(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started && len(msg) < s.width {
		s.blank()
	}
	s.msg = msg
	s.width = max(s.width, len(msg))
}

func (s *spinner) Message() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.msg
}

// Stop halts the animation and erases the line. Safe to call repeatedly,
// and before Start.
func (s *spinner) Stop() {
	s.stopOnce.Do(func() {
		close(s.quit)
		s.mu.Lock()
		started := s.started
		s.mu.Unlock()
		if !started {
			return
		}
		<-s.exited
		s.mu.Lock()
		s.blank()
		s.mu.Unlock()
	})
}

// Fail stops the spinner and reports msg as an error line.
func (s *spinner) Fail(msg string) {
	s.Stop()
	printError("%s", msg)
}

// blank erases the spinner line. The caller holds mu.
func (s *spinner) blank() {
	fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", s.width+2))
}
