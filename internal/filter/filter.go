// Package filter decides which probe responses count as findings.
package filter

// Filter rejects responses that fail one acceptance criterion.
type Filter interface {
	Name() string
	ShouldFilter(statusCode int, contentLength int64) bool
}

// Chain applies multiple filters in order, short-circuiting on the first
// rejection. A response is accepted only when every filter passes it.
type Chain struct {
	filters []Filter
}

// NewChain returns an empty filter chain, which accepts everything.
func NewChain() *Chain {
	return &Chain{}
}

// Add appends a filter to the chain.
func (c *Chain) Add(f Filter) {
	c.filters = append(c.filters, f)
}

// Apply runs every filter against the response. Returns true and the
// filter name if the response should be rejected.
func (c *Chain) Apply(statusCode int, contentLength int64) (bool, string) {
	for _, f := range c.filters {
		if f.ShouldFilter(statusCode, contentLength) {
			return true, f.Name()
		}
	}
	return false, ""
}

// Accepts reports whether the response passes the whole chain.
func (c *Chain) Accepts(statusCode int, contentLength int64) bool {
	rejected, _ := c.Apply(statusCode, contentLength)
	return !rejected
}
