package scanner

import "time"

// Outcome holds the result of a single path probe. Exactly one Outcome is
// produced per candidate and it is never mutated after creation.
type Outcome struct {
	Candidate     string // wordlist entry as given
	URL           string // resolved probe URL, empty if resolution failed
	StatusCode    int
	ContentLength int64
	Err           error // transport failure; StatusCode is meaningless when set
}

// AcceptedResult is an Outcome that passed the acceptance criteria.
type AcceptedResult struct {
	Outcome
	FoundAt time.Time
}
