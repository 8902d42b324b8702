package output

import (
	"fmt"
	"io"
	"time"

	"github.com/dirscout/dirscout/internal/scanner"
)

// ANSI color codes.
const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorCyan   = "\033[36m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
)

// Printer writes result lines as they are found. Result lines are printed
// even in quiet mode; only informational output is suppressed there.
type Printer struct {
	w       io.Writer
	errW    io.Writer
	noColor bool
}

// NewPrinter creates a printer. Results go to w, summaries to errW.
func NewPrinter(w, errW io.Writer, noColor bool) *Printer {
	return &Printer{w: w, errW: errW, noColor: noColor}
}

// Result prints one accepted result line.
func (p *Printer) Result(r scanner.AcceptedResult) {
	color := p.colorForStatus(r.StatusCode)
	reset := colorReset
	if p.noColor {
		color, reset = "", ""
	}
	fmt.Fprintf(p.w, "%s[%d]%s %s (Size: %d)\n",
		color, r.StatusCode, reset, r.URL, r.ContentLength)
}

// Summary prints the end-of-scan trailer.
func (p *Printer) Summary(st scanner.Stats) {
	rate := float64(0)
	if st.Elapsed.Seconds() > 0 {
		rate = float64(st.Completed) / st.Elapsed.Seconds()
	}
	fmt.Fprintf(p.errW, "[INFO] Scan completed in %s\n", st.Elapsed.Round(100*time.Millisecond))
	fmt.Fprintf(p.errW, "[INFO] Average rate: %.1f requests/second\n", rate)
	fmt.Fprintf(p.errW, "[INFO] Found %d interesting paths\n", st.Accepted)
}

func (p *Printer) colorForStatus(code int) string {
	if p.noColor {
		return ""
	}
	switch {
	case code >= 200 && code < 300:
		return colorGreen
	case code >= 300 && code < 400:
		return colorCyan
	case code >= 400 && code < 500:
		return colorYellow
	case code >= 500:
		return colorRed
	default:
		return ""
	}
}
