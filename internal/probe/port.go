package probe

import (
	"context"
	"errors"
	"net"
	"strconv"
	"syscall"
	"time"

	"github.com/statuswatch/statuswatch/internal/domain"
)

// PortProber opens a raw TCP connection to (host, port). Refused connections
// report closed; anything else that prevents the dial (bad name, unreachable
// network) reports error.
type PortProber struct {
	Timeout time.Duration
}

func NewPortProber() *PortProber {
	return &PortProber{Timeout: 5 * time.Second}
}

func (p *PortProber) Check(ctx context.Context, host string, port int) domain.PortResult {
	d := net.Dialer{Timeout: p.Timeout}

	start := time.Now()
	conn, err := d.DialContext(ctx, "tcp", net.JoinHostPort(host, strconv.Itoa(port)))
	latency := time.Since(start).Seconds() * 1000

	if err == nil {
		_ = conn.Close()
		return domain.PortResult{Port: port, Status: domain.PortOpen, LatencyMS: latency}
	}
	if errors.Is(err, syscall.ECONNREFUSED) {
		return domain.PortResult{Port: port, Status: domain.PortClosed, LatencyMS: latency}
	}
	return domain.PortResult{Port: port, Status: domain.PortError, LatencyMS: latency, Error: err.Error()}
}
