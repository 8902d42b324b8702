// Package useragent loads and selects User-Agent strings for probes.
package useragent

import (
	"fmt"
	"math/rand"
	"os"
	"strings"
	"sync"
)

// defaults is the built-in browser set used when no file is supplied.
var defaults = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:121.0) Gecko/20100101 Firefox/121.0",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.1 Safari/605.1.15",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (X11; Ubuntu; Linux x86_64; rv:121.0) Gecko/20100101 Firefox/121.0",
}

// Load returns the User-Agent pool. With an empty path the built-in set is
// returned. A file is read one agent per line, trimmed, blanks skipped; a
// file that yields no usable entries falls back to the built-in set so the
// pool is never empty.
func Load(path string) ([]string, error) {
	if path == "" {
		return defaults, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading user-agents %s: %w", path, err)
	}

	var agents []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		agents = append(agents, line)
	}
	if len(agents) == 0 {
		return defaults, nil
	}
	return agents, nil
}

// Selector picks a random agent per probe. Safe for concurrent use.
type Selector struct {
	mu     sync.Mutex
	agents []string
	rnd    *rand.Rand
}

// NewSelector creates a Selector over the given pool. The random source is
// explicit so tests can pin the selection order.
func NewSelector(agents []string, src rand.Source) *Selector {
	return &Selector{
		agents: agents,
		rnd:    rand.New(src),
	}
}

// Pick returns one agent from the pool, or "" when the pool is empty.
func (s *Selector) Pick() string {
	if s == nil || len(s.agents) == 0 {
		return ""
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.agents[s.rnd.Intn(len(s.agents))]
}
