package probe

import (
	"context"
	"sync"

	"github.com/statuswatch/statuswatch/internal/domain"
)

// Set runs the three probes concurrently. Each probe converts its own I/O
// failures into a typed result, so one probe can never abort the others.
type Set struct {
	DNS  *DNSProber
	HTTP *HTTPProber
	Port *PortProber
}

func NewSet(dns *DNSProber, http *HTTPProber, port *PortProber) *Set {
	return &Set{DNS: dns, HTTP: http, Port: port}
}

func (s *Set) Run(ctx context.Context, host string, port int, target string) domain.DetailedChecks {
	var out domain.DetailedChecks
	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		out.DNS = s.DNS.Check(ctx, host)
	}()
	go func() {
		defer wg.Done()
		out.HTTP = s.HTTP.Check(ctx, target)
	}()
	go func() {
		defer wg.Done()
		out.Port = s.Port.Check(ctx, host, port)
	}()

	wg.Wait()
	return out
}
