package observer

import (
	"context"
	"net/http"
	"time"

	"github.com/statuswatch/statuswatch/internal/domain"
)

// RightNow probes the target directly with a HEAD request and thresholds on
// the status code, the way isitdownrightnow-style services do.
type RightNow struct {
	Scheme string // defaults to http
	Client *http.Client
}

func NewRightNow() *RightNow {
	return &RightNow{
		Scheme: "http",
		Client: &http.Client{Timeout: 3 * time.Second},
	}
}

func (o *RightNow) Name() string { return "isitdownrightnow" }

func (o *RightNow) Observe(ctx context.Context, host string) domain.ObserverResult {
	scheme := o.Scheme
	if scheme == "" {
		scheme = "http"
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, scheme+"://"+host, nil)
	if err != nil {
		return domain.ObserverResult{Status: domain.ObserverError, Error: err.Error()}
	}
	resp, err := o.Client.Do(req)
	if err != nil {
		return domain.ObserverResult{Status: domain.ObserverDown, Error: "Connection failed"}
	}
	defer resp.Body.Close()

	status := domain.ObserverDown
	if resp.StatusCode < 400 {
		status = domain.ObserverUp
	}
	return domain.ObserverResult{Status: status, StatusCode: resp.StatusCode}
}
