package observer

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/statuswatch/statuswatch/internal/domain"
)

// JustMe asks a downforeveryoneorjustme-style page and pattern-matches the
// verdict out of the HTML.
type JustMe struct {
	BaseURL string
	Client  *http.Client
}

func NewJustMe() *JustMe {
	return &JustMe{
		BaseURL: "https://downforeveryoneorjustme.com",
		Client:  &http.Client{Timeout: 3 * time.Second},
	}
}

func (o *JustMe) Name() string { return "downforeveryoneorjustme" }

func (o *JustMe) Observe(ctx context.Context, host string) domain.ObserverResult {
	target := o.BaseURL + "/check?domain=" + url.QueryEscape(host)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return domain.ObserverResult{Status: domain.ObserverError, Error: err.Error()}
	}
	resp, err := o.Client.Do(req)
	if err != nil {
		return domain.ObserverResult{Status: domain.ObserverError, Error: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return domain.ObserverResult{Status: domain.ObserverError, Error: err.Error()}
	}

	// "not just you" contains "just you", so the negative phrase is matched first.
	txt := strings.ToLower(string(body))
	switch {
	case strings.Contains(txt, "not just you"):
		return domain.ObserverResult{Status: domain.ObserverDown, Message: "Site appears down"}
	case strings.Contains(txt, "just you"):
		return domain.ObserverResult{Status: domain.ObserverUp, Message: "Site appears up"}
	default:
		return domain.ObserverResult{Status: domain.ObserverUnknown, Message: "Could not determine"}
	}
}
