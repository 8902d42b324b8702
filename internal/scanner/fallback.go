package scanner

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// probeTimeout bounds the lightweight connectivity check used for scheme
// resolution. The per-request scan timeout may be much larger.
const probeTimeout = 5 * time.Second

// ResolveTarget normalizes the target URL and fixes its scheme for the
// whole scan. Schemeless targets try HTTPS first and fall back to HTTP;
// an explicit HTTPS target that fails a quick connectivity check falls
// back once to HTTP. An explicit HTTP target is never upgraded. When no
// scheme answers, the preferred one is kept and the scan proceeds (every
// probe will then count as a transport error).
func ResolveTarget(ctx context.Context, target string, timeout time.Duration) (string, error) {
	target = strings.TrimSpace(target)
	if target == "" {
		return "", fmt.Errorf("empty target URL")
	}

	// Validate explicit schemes on the raw value: a bare "http://" would
	// otherwise survive the slash trim as "http:" and pass for a hostname.
	if strings.Contains(target, "://") {
		u, err := url.Parse(target)
		if err != nil {
			return "", fmt.Errorf("invalid URL %q: %w", target, err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return "", fmt.Errorf("invalid URL %q: unsupported scheme %q", target, u.Scheme)
		}
		if u.Hostname() == "" {
			return "", fmt.Errorf("invalid URL %q: host required", target)
		}
	}
	target = strings.TrimRight(target, "/")

	var candidates []string
	switch {
	case strings.HasPrefix(target, "http://"):
		candidates = []string{target}
	case strings.HasPrefix(target, "https://"):
		candidates = []string{target, "http://" + strings.TrimPrefix(target, "https://")}
	default:
		candidates = []string{"https://" + target, "http://" + target}
	}

	// A schemeless target must still yield a well-formed host once prefixed.
	if u, err := url.Parse(candidates[0]); err != nil {
		return "", fmt.Errorf("invalid URL %q: %w", target, err)
	} else if u.Hostname() == "" {
		return "", fmt.Errorf("invalid URL %q: host required", target)
	}

	if len(candidates) == 1 {
		return candidates[0], nil
	}

	if timeout <= 0 || timeout > probeTimeout {
		timeout = probeTimeout
	}
	client := &http.Client{
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		},
		Timeout: timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	defer client.CloseIdleConnections()

	for _, candidate := range candidates {
		if reachable(ctx, client, candidate) {
			return candidate, nil
		}
	}
	return candidates[0], nil
}

// reachable reports whether a GET against the base URL completes without a
// transport error. Any HTTP status counts as reachable.
func reachable(ctx context.Context, client *http.Client, rawURL string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL+"/", nil)
	if err != nil {
		return false
	}
	resp, err := client.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return true
}
