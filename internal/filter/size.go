package filter

// SizeFilter rejects responses whose content length falls outside the
// configured bounds. A max of 0 means no upper bound.
type SizeFilter struct {
	min int64
	max int64
}

// NewSizeFilter creates a content-length bounds filter.
func NewSizeFilter(min, max int64) *SizeFilter {
	return &SizeFilter{min: min, max: max}
}

func (f *SizeFilter) Name() string { return "size" }

func (f *SizeFilter) ShouldFilter(_ int, contentLength int64) bool {
	if contentLength < f.min {
		return true
	}
	if f.max > 0 && contentLength > f.max {
		return true
	}
	return false
}
