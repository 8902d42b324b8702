package scanner

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/dirscout/dirscout/internal/config"
	"github.com/dirscout/dirscout/internal/useragent"
)

// Prober issues one GET per candidate against the target. Redirects are
// never followed so 3xx responses stay observable, and certificate
// validation is disabled so misconfigured targets can still be scanned.
type Prober struct {
	client  *http.Client
	base    *url.URL
	headers map[string]string
	agents  *useragent.Selector
}

// NewProber creates a Prober from the provided options. opts.URL must carry
// an explicit scheme and host (run ResolveTarget first).
func NewProber(opts *config.Options, agents *useragent.Selector) (*Prober, error) {
	base, err := url.Parse(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL %q: %w", opts.URL, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid URL %q: scheme and host required", opts.URL)
	}
	// Candidates resolve relative to base+"/", matching standard URL-join
	// semantics. Traversal entries like "../secret" are allowed on purpose.
	base.Path = strings.TrimRight(base.Path, "/") + "/"
	base.RawQuery = ""
	base.Fragment = ""

	transport := &http.Transport{
		TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		DialContext: (&net.Dialer{
			Timeout: opts.Timeout,
		}).DialContext,
		MaxIdleConnsPerHost: opts.Threads,
		MaxIdleConns:        opts.Threads,
	}

	client := &http.Client{
		Transport: transport,
		Timeout:   opts.Timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	return &Prober{
		client:  client,
		base:    base,
		headers: opts.Headers,
		agents:  agents,
	}, nil
}

// Target returns the normalized base URL the prober resolves against.
func (p *Prober) Target() string {
	return strings.TrimRight(p.base.String(), "/")
}

// Probe issues one GET for the candidate and returns its Outcome. Any
// transport failure (timeout, refused connection, DNS, TLS, malformed
// response) is reported via Outcome.Err, never as a panic or fatal error.
// The prober touches no shared state.
func (p *Prober) Probe(ctx context.Context, candidate string) Outcome {
	out := Outcome{Candidate: candidate}

	ref, err := url.Parse(candidate)
	if err != nil {
		out.Err = fmt.Errorf("unresolvable candidate %q: %w", candidate, err)
		return out
	}
	target := p.base.ResolveReference(ref)
	// Same-origin only: a candidate must not redirect the probe to a
	// different authority.
	if target.Scheme != p.base.Scheme || target.Host != p.base.Host {
		out.Err = fmt.Errorf("candidate %q escapes the target origin", candidate)
		return out
	}
	out.URL = target.String()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, out.URL, nil)
	if err != nil {
		out.Err = err
		return out
	}
	if ua := p.agents.Pick(); ua != "" {
		req.Header.Set("User-Agent", ua)
	}
	for k, v := range p.headers {
		req.Header.Set(k, v)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		out.Err = err
		return out
	}
	defer resp.Body.Close()

	n, err := io.Copy(io.Discard, resp.Body)
	if err != nil {
		out.Err = fmt.Errorf("reading response body for %s: %w", candidate, err)
		return out
	}

	out.StatusCode = resp.StatusCode
	out.ContentLength = n
	return out
}
