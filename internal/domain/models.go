package domain

import "time"

// Status is the single-region verdict for a target.
type Status string

const (
	StatusUp      Status = "up"       // HTTP responded
	StatusPartial Status = "partial"  // resolves and port open, no HTTP response
	StatusDNSOnly Status = "dns_only" // resolves only
	StatusDown    Status = "down"
)

// Reachable reports whether the verdict counts as reachable for consensus.
func (s Status) Reachable() bool {
	return s == StatusUp || s == StatusPartial
}

// GlobalStatus is the cross-region consensus verdict.
type GlobalStatus string

const (
	GlobalUp    GlobalStatus = "up"
	GlobalMixed GlobalStatus = "mixed"
	GlobalDown  GlobalStatus = "down"
)

// Per-probe status vocabularies. Each probe has its own; they are not
// interchangeable.
const (
	DNSSuccess = "success"
	DNSFailed  = "failed"

	HTTPSuccess = "success"
	HTTPTimeout = "timeout"
	HTTPError   = "error"

	PortOpen   = "open"
	PortClosed = "closed"
	PortError  = "error"
)

// ResolverResult is the outcome of one resolution attempt against one
// public resolver.
type ResolverResult struct {
	Resolver string `json:"dns_server"`
	Status   string `json:"status"`
	Address  string `json:"ip_address,omitempty"`
	Error    string `json:"error,omitempty"`
}

// DNSResult aggregates resolution attempts across the configured resolvers.
// OverallStatus is success iff at least one resolver answered.
type DNSResult struct {
	OverallStatus string           `json:"overall_status"`
	SuccessCount  int              `json:"success_count"`
	TotalServers  int              `json:"total_servers"`
	Results       []ResolverResult `json:"results"`
}

func (d DNSResult) OK() bool { return d.SuccessCount > 0 }

// HTTPResult is the outcome of the HTTP probe. Status is success whenever a
// response was received, regardless of status code; timeout and error are
// transport-level failures.
type HTTPResult struct {
	Status        string  `json:"status"`
	StatusCode    int     `json:"status_code,omitempty"`
	LatencyMS     float64 `json:"response_time_ms,omitempty"`
	ContentLength int64   `json:"content_length"`
	Redirected    bool    `json:"redirected,omitempty"`
	FinalURL      string  `json:"final_url,omitempty"`
	Error         string  `json:"error,omitempty"`
}

func (h HTTPResult) OK() bool { return h.Status == HTTPSuccess }

// PortResult is the outcome of the raw TCP connect probe.
type PortResult struct {
	Port      int     `json:"port"`
	Status    string  `json:"status"`
	LatencyMS float64 `json:"response_time_ms"`
	Error     string  `json:"error,omitempty"`
}

func (p PortResult) Open() bool { return p.Status == PortOpen }

// DetailedChecks bundles the three probe results of one check invocation.
type DetailedChecks struct {
	DNS  DNSResult  `json:"dns"`
	HTTP HTTPResult `json:"http"`
	Port PortResult `json:"port"`
}

// ObserverResult is one third-party observer's opinion about the target.
// Status is up, down, unknown, or error when the observer call itself failed.
type ObserverResult struct {
	Status     string           `json:"status"`
	Message    string           `json:"message,omitempty"`
	StatusCode int              `json:"status_code,omitempty"`
	Protocols  []ProtocolResult `json:"protocols,omitempty"`
	Error      string           `json:"error,omitempty"`
}

const (
	ObserverUp      = "up"
	ObserverDown    = "down"
	ObserverUnknown = "unknown"
	ObserverError   = "error"
)

// ProtocolResult is a per-protocol sub-result for observers that try the
// target over more than one scheme.
type ProtocolResult struct {
	Protocol   string `json:"protocol"`
	Status     string `json:"status"`
	StatusCode int    `json:"status_code,omitempty"`
	Error      string `json:"error,omitempty"`
}

// CheckReport is the full single-region check response.
type CheckReport struct {
	URL            string                    `json:"url"`
	Domain         string                    `json:"domain"`
	Status         Status                    `json:"status"`
	ResponseTimeMS float64                   `json:"response_time_ms"`
	Region         string                    `json:"region"`
	Timestamp      time.Time                 `json:"timestamp"`
	Detailed       DetailedChecks            `json:"detailed_checks"`
	Summary        string                    `json:"summary"`
	ExternalChecks map[string]ObserverResult `json:"external_checks,omitempty"`
}

// GlobalReport is the multi-region check response. TotalRegions counts
// regions that actually returned a result; peers that failed to respond are
// omitted, not counted as down.
type GlobalReport struct {
	URL           string        `json:"url"`
	OverallStatus GlobalStatus  `json:"overall_status"`
	RegionsUp     int           `json:"regions_up"`
	TotalRegions  int           `json:"total_regions"`
	Results       []CheckReport `json:"results"`
	Timestamp     time.Time     `json:"timestamp"`
	Analysis      string        `json:"analysis"`
}
