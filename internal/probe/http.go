package probe

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/statuswatch/statuswatch/internal/domain"
)

const (
	userAgent    = "statuswatch/1.0"
	acceptHeader = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"
)

// HTTPProber issues a single GET with redirects followed and TLS verification
// on. Any received response counts as success regardless of status code;
// timeouts are distinguished from other transport errors.
type HTTPProber struct {
	Client *http.Client
}

func NewHTTPProber(timeout time.Duration) *HTTPProber {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPProber{
		Client: &http.Client{Timeout: timeout},
	}
}

func (p *HTTPProber) Check(ctx context.Context, target string) domain.HTTPResult {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return domain.HTTPResult{Status: domain.HTTPError, Error: err.Error()}
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", acceptHeader)

	start := time.Now()
	resp, err := p.Client.Do(req)
	latency := time.Since(start).Seconds() * 1000
	if err != nil {
		status := domain.HTTPError
		if isTimeout(err) {
			status = domain.HTTPTimeout
		}
		return domain.HTTPResult{Status: status, LatencyMS: latency, Error: err.Error()}
	}
	defer resp.Body.Close()

	// Read the body fully: gives us the size and lets the connection be reused.
	size, _ := io.Copy(io.Discard, resp.Body)
	latency = time.Since(start).Seconds() * 1000

	out := domain.HTTPResult{
		Status:        domain.HTTPSuccess,
		StatusCode:    resp.StatusCode,
		LatencyMS:     latency,
		ContentLength: size,
	}
	if final := resp.Request.URL.String(); final != target {
		out.Redirected = true
		out.FinalURL = final
	}
	return out
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || os.IsTimeout(err) {
		return true
	}
	var ne interface{ Timeout() bool }
	return errors.As(err, &ne) && ne.Timeout()
}
