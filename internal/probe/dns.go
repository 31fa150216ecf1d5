package probe

import (
	"context"
	"net"
	"sync"
	"time"

	"github.com/statuswatch/statuswatch/internal/domain"
)

// DNSProber resolves a hostname against a fixed list of public resolver
// endpoints. A resolver that fails is recorded per-resolver; the probe itself
// never fails.
type DNSProber struct {
	Resolvers []string // "ip:port" endpoints, tried concurrently
	Timeout   time.Duration
}

func NewDNSProber(resolvers []string) *DNSProber {
	return &DNSProber{
		Resolvers: resolvers,
		Timeout:   3 * time.Second,
	}
}

func (p *DNSProber) Check(ctx context.Context, host string) domain.DNSResult {
	results := make([]domain.ResolverResult, len(p.Resolvers))

	var wg sync.WaitGroup
	for i, endpoint := range p.Resolvers {
		wg.Add(1)
		go func(i int, endpoint string) {
			defer wg.Done()
			results[i] = p.lookup(ctx, host, endpoint)
		}(i, endpoint)
	}
	wg.Wait()

	success := 0
	for _, r := range results {
		if r.Status == domain.DNSSuccess {
			success++
		}
	}

	overall := domain.DNSFailed
	if success > 0 {
		overall = domain.DNSSuccess
	}
	return domain.DNSResult{
		OverallStatus: overall,
		SuccessCount:  success,
		TotalServers:  len(p.Resolvers),
		Results:       results,
	}
}

// lookup asks one resolver endpoint for an address. The Go resolver is forced
// so the custom dial actually reaches the endpoint instead of the OS stub.
func (p *DNSProber) lookup(ctx context.Context, host, endpoint string) domain.ResolverResult {
	cctx, cancel := context.WithTimeout(ctx, p.Timeout)
	defer cancel()

	r := &net.Resolver{
		PreferGo: true,
		Dial: func(ctx context.Context, network, _ string) (net.Conn, error) {
			d := net.Dialer{Timeout: p.Timeout}
			return d.DialContext(ctx, network, endpoint)
		},
	}

	ips, err := r.LookupIP(cctx, "ip", host)
	if err != nil || len(ips) == 0 {
		out := domain.ResolverResult{Resolver: endpoint, Status: domain.DNSFailed}
		if err != nil {
			out.Error = err.Error()
		} else {
			out.Error = "no addresses returned"
		}
		return out
	}
	return domain.ResolverResult{
		Resolver: endpoint,
		Status:   domain.DNSSuccess,
		Address:  ips[0].String(),
	}
}
