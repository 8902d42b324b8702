package scanner

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// WorkerConfig holds options for the worker pool.
type WorkerConfig struct {
	Threads int
	Limiter *rate.Limiter // nil = no rate cap
}

// RunWorkerPool fans candidates out across workers and returns a channel
// of outcomes. The channel is closed once every candidate has been
// attempted exactly once. Dispatch follows wordlist order; completion
// order depends on network latency.
func RunWorkerPool(
	ctx context.Context,
	p *Prober,
	candidates []string,
	cfg WorkerConfig,
) <-chan Outcome {
	threads := cfg.Threads
	if threads < 1 {
		threads = 1
	}
	candidatesCh := make(chan string, threads*2)
	outcomesCh := make(chan Outcome, threads*2)

	var wg sync.WaitGroup

	// Producer: feed candidates into the channel.
	go func() {
		defer close(candidatesCh)
		for _, candidate := range candidates {
			select {
			case candidatesCh <- candidate:
			case <-ctx.Done():
				return
			}
		}
	}()

	// Workers: consume candidates, produce outcomes.
	for i := 0; i < threads; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for candidate := range candidatesCh {
				if cfg.Limiter != nil {
					if err := cfg.Limiter.Wait(ctx); err != nil {
						return
					}
				}
				out := p.Probe(ctx, candidate)
				if out.Err != nil && ctx.Err() != nil {
					return
				}
				outcomesCh <- out
			}
		}()
	}

	// Closer: when all workers finish, close the outcomes channel.
	go func() {
		wg.Wait()
		close(outcomesCh)
	}()

	return outcomesCh
}

// Scan dispatches every candidate across the worker pool and blocks until
// each one has produced exactly one outcome recorded in the store. A
// candidate that fails is final for this scan; nothing is retried.
// onResult, when non-nil, runs on the aggregation goroutine for each
// accepted result in completion order.
func Scan(
	ctx context.Context,
	p *Prober,
	candidates []string,
	cfg WorkerConfig,
	store *Store,
	onResult func(AcceptedResult),
) Stats {
	for out := range RunWorkerPool(ctx, p, candidates, cfg) {
		res, accepted := store.Record(out)
		if accepted && onResult != nil {
			onResult(res)
		}
	}
	return store.Snapshot()
}
