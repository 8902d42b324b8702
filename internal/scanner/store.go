package scanner

import (
	"sync"
	"time"
)

// Stats is a point-in-time snapshot of scan progress.
type Stats struct {
	Total     int
	Completed int
	Accepted  int
	Elapsed   time.Duration
}

// Store accumulates probe outcomes under contention. The completed count
// and the accepted sequence are updated inside one critical section, so an
// observer can never see a count that includes an accepted result without
// the result itself being visible.
type Store struct {
	mu        sync.Mutex
	accept    func(statusCode int, contentLength int64) bool
	total     int
	completed int
	accepted  []AcceptedResult
	start     time.Time
}

// NewStore creates a Store for a scan over total candidates. accept decides
// whether a non-error outcome is kept; nil accepts everything.
func NewStore(total int, accept func(statusCode int, contentLength int64) bool) *Store {
	return &Store{
		accept: accept,
		total:  total,
		start:  time.Now(),
	}
}

// Record counts one completed probe and, if the outcome passes the
// acceptance criteria, appends it to the accepted sequence. It returns the
// stored result and whether the outcome was accepted. Transport errors are
// counted but never accepted. Safe for any number of concurrent callers.
func (s *Store) Record(o Outcome) (AcceptedResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var res AcceptedResult
	accepted := false
	if o.Err == nil && (s.accept == nil || s.accept(o.StatusCode, o.ContentLength)) {
		res = AcceptedResult{Outcome: o, FoundAt: time.Now()}
		s.accepted = append(s.accepted, res)
		accepted = true
	}
	s.completed++
	return res, accepted
}

// Snapshot returns the current scan statistics.
func (s *Store) Snapshot() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Stats{
		Total:     s.total,
		Completed: s.completed,
		Accepted:  len(s.accepted),
		Elapsed:   time.Since(s.start),
	}
}

// Accepted returns a copy of the accepted results in completion order.
func (s *Store) Accepted() []AcceptedResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]AcceptedResult, len(s.accepted))
	copy(out, s.accepted)
	return out
}
