package region

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/statuswatch/statuswatch/internal/config"
	"github.com/statuswatch/statuswatch/internal/domain"
)

type fakeLocal struct {
	status domain.Status
}

func (f *fakeLocal) Check(ctx context.Context, target string) (*domain.CheckReport, error) {
	return &domain.CheckReport{URL: target, Status: f.status, Region: "local"}, nil
}

type fakeInvoker struct {
	byRegion map[string]domain.Status // missing region = invocation error
	delay    map[string]time.Duration
}

func (f *fakeInvoker) Invoke(ctx context.Context, peer config.Peer, target string) (*domain.CheckReport, error) {
	if d, ok := f.delay[peer.Region]; ok {
		select {
		case <-time.After(d):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	st, ok := f.byRegion[peer.Region]
	if !ok {
		return nil, errors.New("invoke failed")
	}
	return &domain.CheckReport{URL: target, Status: st, Region: peer.Region}, nil
}

func peers(names ...string) []config.Peer {
	out := make([]config.Peer, 0, len(names))
	for _, n := range names {
		out = append(out, config.Peer{Region: n, Endpoint: "https://" + n + ".checker.example"})
	}
	return out
}

func TestOrchestrator_FailedPeerOmittedFromDenominator(t *testing.T) {
	// 3 attempted regions, one peer fails: it is excluded from the set, so
	// total reflects only returned results.
	o := NewOrchestrator(zap.NewNop(),
		&fakeLocal{status: domain.StatusUp},
		peers("eu-west-1", "ap-south-1"),
		&fakeInvoker{byRegion: map[string]domain.Status{"eu-west-1": domain.StatusPartial}},
	)

	got, err := o.Check(context.Background(), "https://example.com")
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if got.TotalRegions != 2 || got.RegionsUp != 2 {
		t.Fatalf("want 2/2 (failed peer omitted), got %d/%d", got.RegionsUp, got.TotalRegions)
	}
	// every returned region reachable -> up, not mixed
	if got.OverallStatus != domain.GlobalUp {
		t.Fatalf("want up, got %s", got.OverallStatus)
	}
	if got.Analysis != "Website accessible from all tested regions" {
		t.Fatalf("analysis wrong: %q", got.Analysis)
	}
}

func TestOrchestrator_MixedConsensus(t *testing.T) {
	o := NewOrchestrator(zap.NewNop(),
		&fakeLocal{status: domain.StatusUp},
		peers("eu-west-1", "ap-south-1"),
		&fakeInvoker{byRegion: map[string]domain.Status{
			"eu-west-1":  domain.StatusDown,
			"ap-south-1": domain.StatusPartial,
		}},
	)

	got, err := o.Check(context.Background(), "https://example.com")
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if got.TotalRegions != 3 || got.RegionsUp != 2 {
		t.Fatalf("want 2/3, got %d/%d", got.RegionsUp, got.TotalRegions)
	}
	if got.OverallStatus != domain.GlobalMixed {
		t.Fatalf("want mixed, got %s", got.OverallStatus)
	}
	if got.Analysis != "Mixed: 2/3 regions can reach it" {
		t.Fatalf("analysis wrong: %q", got.Analysis)
	}
}

func TestOrchestrator_AllDown(t *testing.T) {
	o := NewOrchestrator(zap.NewNop(),
		&fakeLocal{status: domain.StatusDown},
		peers("eu-west-1"),
		&fakeInvoker{byRegion: map[string]domain.Status{"eu-west-1": domain.StatusDNSOnly}},
	)

	got, err := o.Check(context.Background(), "https://example.com")
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if got.OverallStatus != domain.GlobalDown || got.RegionsUp != 0 {
		t.Fatalf("want global down with 0 up, got %+v", got)
	}
	if got.Analysis != "Website appears down globally" {
		t.Fatalf("analysis wrong: %q", got.Analysis)
	}
}

func TestOrchestrator_LocalAlwaysPresent(t *testing.T) {
	// no peers configured: the report is just the local region
	o := NewOrchestrator(zap.NewNop(), &fakeLocal{status: domain.StatusUp}, nil, &fakeInvoker{})
	got, err := o.Check(context.Background(), "https://example.com")
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if got.TotalRegions != 1 || len(got.Results) != 1 || got.Results[0].Region != "local" {
		t.Fatalf("want local-only result, got %+v", got)
	}
}

func TestOrchestrator_BudgetDropsSlowPeer(t *testing.T) {
	o := NewOrchestrator(zap.NewNop(),
		&fakeLocal{status: domain.StatusUp},
		peers("fast", "slow"),
		&fakeInvoker{
			byRegion: map[string]domain.Status{"fast": domain.StatusUp, "slow": domain.StatusUp},
			delay:    map[string]time.Duration{"slow": time.Second},
		},
	)
	o.Budget = 100 * time.Millisecond

	start := time.Now()
	got, err := o.Check(context.Background(), "https://example.com")
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if time.Since(start) > 500*time.Millisecond {
		t.Fatalf("budget not enforced")
	}
	if got.TotalRegions != 2 {
		t.Fatalf("want local+fast only, got %d regions", got.TotalRegions)
	}
}

func TestHTTPInvoker_RoundTrip(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/check" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"url":"https://example.com","status":"up","region":"eu-west-1"}`))
	}))
	defer s.Close()

	inv := NewHTTPInvoker(2 * time.Second)
	got, err := inv.Invoke(context.Background(), config.Peer{Region: "eu-west-1", Endpoint: s.URL}, "https://example.com")
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if got.Status != domain.StatusUp || got.Region != "eu-west-1" {
		t.Fatalf("unexpected report: %+v", got)
	}
}

func TestHTTPInvoker_NonSuccessIsError(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", 500)
	}))
	defer s.Close()

	inv := NewHTTPInvoker(2 * time.Second)
	if _, err := inv.Invoke(context.Background(), config.Peer{Region: "r", Endpoint: s.URL}, "https://example.com"); err == nil {
		t.Fatalf("want error on non-2xx peer response")
	}
}

func TestHTTPInvoker_MalformedBodyIsError(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer s.Close()

	inv := NewHTTPInvoker(2 * time.Second)
	if _, err := inv.Invoke(context.Background(), config.Peer{Region: "r", Endpoint: s.URL}, "https://example.com"); err == nil {
		t.Fatalf("want error on malformed peer payload")
	}
}
