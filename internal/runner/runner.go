package runner

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/dirscout/dirscout/internal/config"
	"github.com/dirscout/dirscout/internal/filter"
	"github.com/dirscout/dirscout/internal/output"
	"github.com/dirscout/dirscout/internal/scanner"
	"github.com/dirscout/dirscout/internal/useragent"
	"github.com/dirscout/dirscout/internal/wordlist"
)

// Run executes the full scan pipeline: resolve the target scheme, load the
// wordlist and User-Agent pool, fan probes out across the worker pool, and
// print plus optionally persist the results. Configuration problems are
// returned as errors before any probing starts; transport errors during
// the scan are counted silently and a failed report write only warns.
func Run(ctx context.Context, opts *config.Options) error {
	// 1. Load the wordlist. A missing or unreadable file is fatal.
	words, err := wordlist.Load(opts.WordlistPath)
	if err != nil {
		return err
	}

	// 2. Fix the scheme for the whole run (HTTPS falls back to HTTP once).
	resolved, err := scanner.ResolveTarget(ctx, opts.URL, opts.Timeout)
	if err != nil {
		return err
	}
	opts.URL = resolved

	// 3. User-Agent pool, one random pick per probe.
	agents, err := useragent.Load(opts.UserAgentsPath)
	if err != nil {
		return err
	}
	selector := useragent.NewSelector(agents, rand.NewSource(time.Now().UnixNano()))

	prober, err := scanner.NewProber(opts, selector)
	if err != nil {
		return err
	}

	// 4. Acceptance criteria.
	codes := opts.StatusCodes
	if len(codes) == 0 {
		codes = config.DefaultStatusCodes()
		opts.StatusCodes = codes
	}
	chain := filter.NewChain()
	chain.Add(filter.NewStatusFilter(codes))
	if opts.MinSize > 0 || opts.MaxSize > 0 {
		chain.Add(filter.NewSizeFilter(opts.MinSize, opts.MaxSize))
	}

	if !opts.Quiet {
		printBanner(opts, len(words))
	}

	// 5. Shared state, progress, and live printing.
	store := scanner.NewStore(len(words), chain.Accepts)
	progress := output.NewProgress(store.Snapshot, opts.Quiet)
	printer := output.NewPrinter(os.Stdout, os.Stderr, opts.NoColor)

	var limiter *rate.Limiter
	if opts.Rate > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.Rate), 1)
	}

	progress.Start()
	stats := scanner.Scan(ctx, prober, words, scanner.WorkerConfig{
		Threads: opts.Threads,
		Limiter: limiter,
	}, store, func(r scanner.AcceptedResult) {
		progress.ClearLine()
		printer.Result(r)
		progress.Redraw()
	})
	progress.Stop()

	if !opts.Quiet {
		fmt.Fprintln(os.Stderr, strings.Repeat("-", 60))
		printer.Summary(stats)
	}

	// 6. Persist once, after the pool has fully drained. A write failure
	// must not fail the scan.
	if opts.OutputFile != "" {
		report := output.NewReport(opts, stats, store.Accepted())
		if path, err := report.Write(opts.OutputFile); err != nil {
			fmt.Fprintf(os.Stderr, "[!] Could not write report: %v\n", err)
		} else if !opts.Quiet {
			fmt.Fprintf(os.Stderr, "[+] Report written to %s\n", path)
		}
	}

	return nil
}

func printBanner(opts *config.Options, wordCount int) {
	fmt.Fprintf(os.Stderr, "[*] Starting scan on %s\n", opts.URL)
	fmt.Fprintf(os.Stderr, "[*] Wordlist: %d entries | Threads: %d | Timeout: %s\n",
		wordCount, opts.Threads, opts.Timeout)
	codes := make([]string, len(opts.StatusCodes))
	for i, c := range opts.StatusCodes {
		codes[i] = fmt.Sprintf("%d", c)
	}
	fmt.Fprintf(os.Stderr, "[*] Accepting status codes: %s\n", strings.Join(codes, ","))
	fmt.Fprintf(os.Stderr, "[!] TLS certificate verification is disabled\n")
	fmt.Fprintln(os.Stderr, strings.Repeat("-", 60))
}
