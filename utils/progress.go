package utils

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/logrusorgru/aurora"
)

// ProgressIndicator shows a spinner next to a message while a long running
// step, like building a large triangulation, is in progress.
type ProgressIndicator struct {
	mu         *sync.Mutex
	delay      time.Duration
	writer     io.Writer
	message    string
	lastOutput string
	StopMsg    string
	hideCursor bool
	running    bool
	done       chan struct{}
}

// NewProgressIndicator instantiates a new progress indicator writing to stderr.
func NewProgressIndicator(msg string, d time.Duration) *ProgressIndicator {
	return &ProgressIndicator{
		mu:      &sync.Mutex{},
		delay:   d,
		writer:  os.Stderr,
		message: msg,
	}
}

// SetWriter redirects the indicator output. It must be called before Start.
func (pi *ProgressIndicator) SetWriter(w io.Writer) *ProgressIndicator {
	pi.writer = w
	return pi
}

// HideCursor hides the terminal cursor while the spinner runs.
func (pi *ProgressIndicator) HideCursor(hide bool) *ProgressIndicator {
	pi.hideCursor = hide
	return pi
}

// Start starts the progress indicator. Starting a running indicator is a no-op.
func (pi *ProgressIndicator) Start() {
	pi.mu.Lock()
	defer pi.mu.Unlock()

	if pi.running {
		return
	}
	pi.running = true
	pi.done = make(chan struct{})

	if pi.hideCursor && runtime.GOOS != "windows" {
		fmt.Fprint(pi.writer, "\033[?25l")
	}

	go pi.spin(pi.done)
}

func (pi *ProgressIndicator) spin(done <-chan struct{}) {
	ticker := time.NewTicker(pi.delay)
	defer ticker.Stop()

	for {
		for _, r := range `⠋⠙⠹⠸⠼⠴⠦⠧⠇⠏` {
			pi.mu.Lock()
			if !pi.running {
				pi.mu.Unlock()
				return
			}
			output := fmt.Sprintf("\r%s %s", pi.message, aurora.Green(string(r)))
			fmt.Fprint(pi.writer, output)
			pi.lastOutput = output
			pi.mu.Unlock()

			select {
			case <-done:
				return
			case <-ticker.C:
			}
		}
	}
}

// Stop stops the progress indicator and prints StopMsg in place of the spinner.
func (pi *ProgressIndicator) Stop() {
	pi.mu.Lock()
	defer pi.mu.Unlock()

	if !pi.running {
		return
	}
	pi.running = false
	close(pi.done)

	pi.clear()
	pi.restoreCursor()
	if len(pi.StopMsg) > 0 {
		fmt.Fprint(pi.writer, pi.StopMsg)
	}
}

func (pi *ProgressIndicator) restoreCursor() {
	if pi.hideCursor && runtime.GOOS != "windows" {
		fmt.Fprint(pi.writer, "\033[?25h")
	}
}

// clear deletes the last line. Caller must hold the lock.
func (pi *ProgressIndicator) clear() {
	n := utf8.RuneCountInString(pi.lastOutput)
	if n == 0 {
		return
	}
	if runtime.GOOS == "windows" {
		fmt.Fprint(pi.writer, "\r"+strings.Repeat(" ", n)+"\r")
		pi.lastOutput = ""
		return
	}
	fmt.Fprint(pi.writer, "\r\033[K")
	pi.lastOutput = ""
}
