package region

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/statuswatch/statuswatch/internal/config"
	"github.com/statuswatch/statuswatch/internal/domain"
)

// Invoker reaches one sibling region and asks it to run its local check.
type Invoker interface {
	Invoke(ctx context.Context, peer config.Peer, target string) (*domain.CheckReport, error)
}

// HTTPInvoker calls a peer's single-region check endpoint.
type HTTPInvoker struct {
	Client *http.Client
}

func NewHTTPInvoker(timeout time.Duration) *HTTPInvoker {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &HTTPInvoker{Client: &http.Client{Timeout: timeout}}
}

func (i *HTTPInvoker) Invoke(ctx context.Context, peer config.Peer, target string) (*domain.CheckReport, error) {
	body, err := json.Marshal(map[string]string{"url": target})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, peer.Endpoint+"/api/check", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := i.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("invoke %s: %w", peer.Region, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("invoke %s: status %d", peer.Region, resp.StatusCode)
	}

	var report domain.CheckReport
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		return nil, fmt.Errorf("invoke %s: decode: %w", peer.Region, err)
	}
	if report.Region == "" {
		report.Region = peer.Region
	}
	return &report, nil
}
