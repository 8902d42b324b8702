package output

import (
	"fmt"
	"os"
	"sync"
	"time"

	"golang.org/x/term"

	"github.com/dirscout/dirscout/internal/scanner"
)

// ProgressInterval is how often a progress line is emitted.
const ProgressInterval = 2 * time.Second

// Progress periodically samples scan statistics and prints a progress line
// to stderr. It reads shared state only through the snapshot function and
// never blocks probe workers. It stops on its own once the sampled
// completed count reaches the total; the last partial interval may go
// unreported.
type Progress struct {
	snapshot func() scanner.Stats
	interval time.Duration
	quiet    bool
	isTTY    bool

	mu       sync.Mutex
	lastLine string

	done     chan struct{}
	stopOnce sync.Once
}

// NewProgress creates a progress reporter over the given snapshot source.
func NewProgress(snapshot func() scanner.Stats, quiet bool) *Progress {
	return &Progress{
		snapshot: snapshot,
		interval: ProgressInterval,
		quiet:    quiet,
		isTTY:    term.IsTerminal(int(os.Stderr.Fd())),
		done:     make(chan struct{}),
	}
}

// Start begins the background reporting loop. No-op in quiet mode.
func (p *Progress) Start() {
	if p.quiet {
		return
	}
	go func() {
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				st := p.snapshot()
				if st.Total > 0 && st.Completed >= st.Total {
					p.finish()
					return
				}
				p.print(st)
			case <-p.done:
				p.finish()
				return
			}
		}
	}()
}

// Stop ends the reporting loop. Safe to call more than once and safe to
// call even if the loop already stopped itself.
func (p *Progress) Stop() {
	p.stopOnce.Do(func() { close(p.done) })
}

// ClearLine erases the in-place progress line so a result line can be
// printed without tearing. No-op when not on a terminal.
func (p *Progress) ClearLine() {
	if p.quiet || !p.isTTY {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprint(os.Stderr, "\r\033[K")
}

// Redraw reprints the last progress line after a ClearLine.
func (p *Progress) Redraw() {
	if p.quiet || !p.isTTY {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.lastLine != "" {
		fmt.Fprint(os.Stderr, "\r\033[K"+p.lastLine)
	}
}

func (p *Progress) print(st scanner.Stats) {
	elapsed := st.Elapsed.Seconds()
	rate := float64(0)
	if elapsed > 0 {
		rate = float64(st.Completed) / elapsed
	}
	pct := float64(0)
	if st.Total > 0 {
		pct = float64(st.Completed) / float64(st.Total) * 100
	}

	line := fmt.Sprintf("[PROGRESS] %d/%d (%.1f%%) | %.1f req/s | Found: %d",
		st.Completed, st.Total, pct, rate, st.Accepted)

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.isTTY {
		if w, _, err := term.GetSize(int(os.Stderr.Fd())); err == nil && len(line) > w && w > 0 {
			line = line[:w]
		}
		p.lastLine = line
		fmt.Fprint(os.Stderr, "\r\033[K"+line)
		return
	}
	fmt.Fprintln(os.Stderr, line)
}

// finish clears any in-place line so later output starts on a fresh row.
func (p *Progress) finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.isTTY && p.lastLine != "" {
		fmt.Fprint(os.Stderr, "\r\033[K")
		p.lastLine = ""
	}
}
