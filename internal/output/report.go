package output

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dirscout/dirscout/internal/config"
	"github.com/dirscout/dirscout/internal/scanner"
)

// resultsDir is where "auto" reports land.
const resultsDir = "results"

type scanInfo struct {
	Threads     int   `json:"threads"`
	Timeout     int   `json:"timeout"`
	StatusCodes []int `json:"status_codes"`
	TotalTested int   `json:"total_tested"`
	TotalFound  int   `json:"total_found"`
}

type reportEntry struct {
	URL        string `json:"url"`
	StatusCode int    `json:"status_code"`
	Size       int64  `json:"size"`
	Directory  string `json:"directory"`
	Timestamp  string `json:"timestamp"`
}

// Report is the on-disk result document. Field names are part of the
// format and consumed by downstream tooling; do not rename them.
type Report struct {
	Target    string        `json:"target"`
	Timestamp string        `json:"timestamp"`
	ScanInfo  scanInfo      `json:"scan_info"`
	Results   []reportEntry `json:"results"`
}

// NewReport assembles the report document for a finished scan.
func NewReport(opts *config.Options, stats scanner.Stats, results []scanner.AcceptedResult) *Report {
	entries := make([]reportEntry, 0, len(results))
	for _, r := range results {
		entries = append(entries, reportEntry{
			URL:        r.URL,
			StatusCode: r.StatusCode,
			Size:       r.ContentLength,
			Directory:  r.Candidate,
			Timestamp:  r.FoundAt.Format(time.RFC3339),
		})
	}
	return &Report{
		Target:    opts.URL,
		Timestamp: time.Now().Format(time.RFC3339),
		ScanInfo: scanInfo{
			Threads:     opts.Threads,
			Timeout:     int(opts.Timeout.Seconds()),
			StatusCodes: opts.StatusCodes,
			TotalTested: stats.Completed,
			TotalFound:  stats.Accepted,
		},
		Results: entries,
	}
}

// Write persists the report as indented JSON. With path "auto" a filename
// is derived from the target host and the current time under the results
// directory.
func (r *Report) Write(path string) (string, error) {
	if path == "auto" {
		path = AutoPath(r.Target, time.Now())
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return "", fmt.Errorf("creating results directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing report %s: %w", path, err)
	}
	return path, nil
}

// AutoPath derives a report filename from the target host and a timestamp.
func AutoPath(target string, now time.Time) string {
	host := "scan"
	if u, err := url.Parse(target); err == nil && u.Host != "" {
		host = strings.ReplaceAll(u.Host, ":", "_")
	}
	name := fmt.Sprintf("%s_%s.json", host, now.Format("20060102-150405"))
	return filepath.Join(resultsDir, name)
}
