package output

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/dirscout/dirscout/internal/scanner"
)

func TestProgressStopsAtCompletion(t *testing.T) {
	var calls atomic.Int64
	snapshot := func() scanner.Stats {
		n := calls.Add(1)
		completed := 1
		if n >= 3 {
			completed = 2
		}
		return scanner.Stats{Total: 2, Completed: completed, Elapsed: time.Second}
	}

	p := NewProgress(snapshot, false)
	p.interval = 2 * time.Millisecond
	p.Start()
	defer p.Stop()

	// Loop must exit on its own once the snapshot reports completion.
	deadline := time.After(2 * time.Second)
	for calls.Load() < 3 {
		select {
		case <-deadline:
			t.Fatal("progress loop never sampled to completion")
		case <-time.After(5 * time.Millisecond):
		}
	}

	settled := calls.Load()
	time.Sleep(50 * time.Millisecond)
	if calls.Load() != settled {
		t.Error("progress kept sampling after completion")
	}
}

func TestProgressQuietNeverSamples(t *testing.T) {
	var calls atomic.Int64
	snapshot := func() scanner.Stats {
		calls.Add(1)
		return scanner.Stats{Total: 10, Completed: 1}
	}

	p := NewProgress(snapshot, true)
	p.interval = time.Millisecond
	p.Start()
	defer p.Stop()

	time.Sleep(20 * time.Millisecond)
	if calls.Load() != 0 {
		t.Error("quiet mode must not sample or print")
	}
}

func TestProgressStopIdempotent(t *testing.T) {
	p := NewProgress(func() scanner.Stats { return scanner.Stats{} }, false)
	p.Start()
	p.Stop()
	p.Stop()
}
