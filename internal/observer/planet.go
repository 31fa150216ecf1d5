package observer

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/statuswatch/statuswatch/internal/domain"
)

// Planet tries the target over both protocol variants and reports up when
// either answers below the error threshold, websiteplanet-style.
type Planet struct {
	Protocols []string
	Client    *http.Client
}

func NewPlanet() *Planet {
	return &Planet{
		Protocols: []string{"https", "http"},
		Client:    &http.Client{Timeout: 3 * time.Second},
	}
}

func (o *Planet) Name() string { return "websiteplanet" }

func (o *Planet) Observe(ctx context.Context, host string) domain.ObserverResult {
	results := make([]domain.ProtocolResult, 0, len(o.Protocols))
	anyUp := false
	for _, proto := range o.Protocols {
		pr := o.try(ctx, proto, host)
		if pr.Status == domain.ObserverUp {
			anyUp = true
		}
		results = append(results, pr)
	}

	status := domain.ObserverDown
	if anyUp {
		status = domain.ObserverUp
	}
	return domain.ObserverResult{Status: status, Protocols: results}
}

func (o *Planet) try(ctx context.Context, proto, host string) domain.ProtocolResult {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, proto+"://"+host, nil)
	if err != nil {
		return domain.ProtocolResult{Protocol: proto, Status: domain.ObserverDown, Error: err.Error()}
	}
	resp, err := o.Client.Do(req)
	if err != nil {
		return domain.ProtocolResult{Protocol: proto, Status: domain.ObserverDown, Error: "Connection failed"}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	status := domain.ObserverDown
	if resp.StatusCode < 400 {
		status = domain.ObserverUp
	}
	return domain.ProtocolResult{Protocol: proto, Status: status, StatusCode: resp.StatusCode}
}
