// Package checker runs the local probe set and reduces the three results to
// one verdict.
package checker

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/statuswatch/statuswatch/internal/domain"
	"github.com/statuswatch/statuswatch/internal/observer"
	"github.com/statuswatch/statuswatch/internal/probe"
)

type Checker struct {
	Logger   *zap.Logger
	Probes   *probe.Set
	External *observer.Aggregator // nil disables external corroboration
	Region   string
}

func New(log *zap.Logger, probes *probe.Set, external *observer.Aggregator, region string) *Checker {
	return &Checker{Logger: log, Probes: probes, External: external, Region: region}
}

// Check probes the target and assembles the full single-region report. The
// target must already be validated; only a URL that no longer parses is an
// error here.
func (c *Checker) Check(ctx context.Context, target string) (*domain.CheckReport, error) {
	u, err := url.Parse(target)
	if err != nil || u.Hostname() == "" {
		return nil, fmt.Errorf("unparseable target %q", target)
	}
	host := u.Hostname()
	port := portOf(u)

	start := time.Now()
	checks := c.Probes.Run(ctx, host, port, target)
	elapsed := time.Since(start).Seconds() * 1000

	status := Resolve(checks.DNS, checks.HTTP, checks.Port)

	report := &domain.CheckReport{
		URL:            target,
		Domain:         host,
		Status:         status,
		ResponseTimeMS: elapsed,
		Region:         c.Region,
		Timestamp:      time.Now().UTC(),
		Detailed:       checks,
		Summary:        Summary(checks.DNS, checks.HTTP, checks.Port),
	}

	if c.External != nil {
		if ext := c.External.Check(ctx, target); len(ext) > 0 {
			report.ExternalChecks = ext
		}
	}

	c.Logger.Info("check_done",
		zap.String("url", target),
		zap.String("status", string(status)),
		zap.Float64("response_time_ms", elapsed),
		zap.Int("dns_success", checks.DNS.SuccessCount),
		zap.String("port_status", checks.Port.Status),
	)
	return report, nil
}

// Resolve combines the three probe results into one verdict. The order is
// deliberate: a received HTTP response is the strongest signal and overrides
// weaker transport results.
func Resolve(dns domain.DNSResult, http domain.HTTPResult, port domain.PortResult) domain.Status {
	switch {
	case http.OK():
		return domain.StatusUp
	case dns.OK() && port.Open():
		return domain.StatusPartial
	case dns.OK():
		return domain.StatusDNSOnly
	default:
		return domain.StatusDown
	}
}

// Summary renders the per-probe sub-status in fixed order for display.
func Summary(dns domain.DNSResult, http domain.HTTPResult, port domain.PortResult) string {
	parts := make([]string, 0, 3)

	if dns.OK() {
		parts = append(parts, "DNS OK")
	} else {
		parts = append(parts, "DNS fail")
	}

	if http.OK() {
		parts = append(parts, "HTTP OK")
	} else {
		// failure case carries the bare status token, e.g. "timeout"
		parts = append(parts, http.Status)
	}

	if port.Open() {
		parts = append(parts, "Port open")
	} else {
		parts = append(parts, "Port closed")
	}

	return strings.Join(parts, "; ")
}

func portOf(u *url.URL) int {
	if p := u.Port(); p != "" {
		if n, err := strconv.Atoi(p); err == nil {
			return n
		}
	}
	if u.Scheme == "http" {
		return 80
	}
	return 443
}
