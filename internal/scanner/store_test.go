package scanner

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreRecordCountsEveryOutcome(t *testing.T) {
	store := NewStore(3, func(code int, _ int64) bool { return code == 200 })

	_, accepted := store.Record(Outcome{Candidate: "a", StatusCode: 200})
	assert.True(t, accepted)

	_, accepted = store.Record(Outcome{Candidate: "b", StatusCode: 404})
	assert.False(t, accepted)

	_, accepted = store.Record(Outcome{Candidate: "c", Err: errors.New("connection refused")})
	assert.False(t, accepted, "transport errors are counted, never accepted")

	st := store.Snapshot()
	assert.Equal(t, 3, st.Completed)
	assert.Equal(t, 1, st.Accepted)
	assert.Equal(t, 3, st.Total)
}

func TestStoreConcurrentRecordNoLostUpdates(t *testing.T) {
	const workers = 8
	const perWorker = 250

	store := NewStore(workers*perWorker, func(code int, _ int64) bool { return code == 200 })

	// Reader goroutine: a snapshot must never show an accepted count the
	// accepted sequence cannot back, and completed must never shrink.
	stopReader := make(chan struct{})
	var violations atomic.Int64
	go func() {
		prev := 0
		for {
			select {
			case <-stopReader:
				return
			default:
			}
			st := store.Snapshot()
			if st.Completed < prev || st.Accepted > st.Completed || st.Completed > st.Total {
				violations.Add(1)
			}
			prev = st.Completed
			if got := len(store.Accepted()); got < st.Accepted {
				// Snapshot was taken first, so the sequence can only
				// have grown since.
				violations.Add(1)
			}
		}
	}()

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				code := 200
				if i%2 == 1 {
					code = 404
				}
				store.Record(Outcome{
					Candidate:  fmt.Sprintf("w%d-c%d", w, i),
					StatusCode: code,
				})
			}
		}(w)
	}
	wg.Wait()
	close(stopReader)

	st := store.Snapshot()
	require.Equal(t, workers*perWorker, st.Completed, "lost updates")
	require.Equal(t, workers*perWorker/2, st.Accepted)
	require.Len(t, store.Accepted(), st.Accepted)
	assert.Zero(t, violations.Load(), "reader observed an inconsistent snapshot")
}

func TestStoreAcceptedRespectsCriteria(t *testing.T) {
	accept := func(code int, size int64) bool { return code == 200 && size >= 10 }
	store := NewStore(4, accept)

	store.Record(Outcome{Candidate: "ok", StatusCode: 200, ContentLength: 10})
	store.Record(Outcome{Candidate: "small", StatusCode: 200, ContentLength: 9})
	store.Record(Outcome{Candidate: "redirect", StatusCode: 301, ContentLength: 100})
	store.Record(Outcome{Candidate: "ok2", StatusCode: 200, ContentLength: 5000})

	for _, r := range store.Accepted() {
		assert.True(t, accept(r.StatusCode, r.ContentLength),
			"accepted entry %q would be rejected by the criteria", r.Candidate)
		assert.False(t, r.FoundAt.IsZero())
	}
	assert.Len(t, store.Accepted(), 2)
}

func TestStoreAcceptedReturnsCopy(t *testing.T) {
	store := NewStore(1, nil)
	store.Record(Outcome{Candidate: "a", StatusCode: 200})

	first := store.Accepted()
	first[0].Candidate = "mutated"

	assert.Equal(t, "a", store.Accepted()[0].Candidate)
}
