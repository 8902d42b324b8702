package filter

// StatusFilter rejects responses whose status code is outside the
// configured acceptance set.
type StatusFilter struct {
	accept map[int]struct{}
}

// NewStatusFilter creates a status code filter. Only the listed codes
// pass through.
func NewStatusFilter(codes []int) *StatusFilter {
	f := &StatusFilter{accept: make(map[int]struct{}, len(codes))}
	for _, code := range codes {
		f.accept[code] = struct{}{}
	}
	return f
}

func (f *StatusFilter) Name() string { return "status" }

func (f *StatusFilter) ShouldFilter(statusCode int, _ int64) bool {
	_, ok := f.accept[statusCode]
	return !ok
}
