package config

import "time"

// Options holds all configuration for a dirscout scan.
type Options struct {
	// Target
	URL            string
	WordlistPath   string
	UserAgentsPath string // empty = use built-in browser set

	// Performance
	Threads int
	Timeout time.Duration
	Rate    float64 // max requests per second, 0 = unlimited

	// Acceptance criteria
	StatusCodes []int
	MinSize     int64
	MaxSize     int64 // 0 = no upper bound

	// Output
	OutputFile string // path, "auto", or empty for no report
	Quiet      bool
	NoColor    bool

	// HTTP
	Headers map[string]string
}

// DefaultStatusCodes is the acceptance set used when -s is not given.
func DefaultStatusCodes() []int {
	return []int{200, 301, 302, 403, 401}
}
