package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// ProgressReporter reports progress through a batch of files.
type ProgressReporter interface {
	Start(total int)
	Step(name string, ok bool)
	Finish()
}

// BarProgress draws a single updating line:
//
//	[████████░░░░░░░░] 4/8 files, 1 failed  hw4.txt
type BarProgress struct {
	mu      sync.Mutex
	writer  io.Writer
	width   int
	total   int
	done    int
	failed  int
	current string
	started time.Time
}

// NewProgressReporter creates a progress bar writing to w, or stderr when
// w is nil.
func NewProgressReporter(w io.Writer) *BarProgress {
	if w == nil {
		w = os.Stderr
	}
	return &BarProgress{writer: w, width: 30}
}

// Start resets the bar for total files.
func (p *BarProgress) Start(total int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.total = total
	p.done = 0
	p.failed = 0
	p.current = ""
	p.started = time.Now()
	p.render()
}

// Step records one finished file.
func (p *BarProgress) Step(name string, ok bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.done++
	if !ok {
		p.failed++
	}
	p.current = name
	p.render()
}

// Finish prints the summary line.
func (p *BarProgress) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.current = ""
	p.render()
	fmt.Fprintf(p.writer, " in %s\n", time.Since(p.started).Round(time.Millisecond))
}

func (p *BarProgress) render() {
	if p.total == 0 {
		return
	}

	filled := p.width * p.done / p.total
	bar := strings.Repeat("█", filled) + strings.Repeat("░", p.width-filled)

	line := fmt.Sprintf("\r[%s] %d/%d files", bar, p.done, p.total)
	if p.failed > 0 {
		line += fmt.Sprintf(", %d failed", p.failed)
	}
	if p.current != "" {
		line += "  " + p.current
	}
	fmt.Fprint(p.writer, line)
}

// NoProgress discards progress.
type NoProgress struct{}

func (NoProgress) Start(int)         {}
func (NoProgress) Step(string, bool) {}
func (NoProgress) Finish()           {}
