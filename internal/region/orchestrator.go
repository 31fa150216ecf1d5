// Package region merges per-region verdicts into one global answer.
package region

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/statuswatch/statuswatch/internal/config"
	"github.com/statuswatch/statuswatch/internal/domain"
)

// LocalChecker runs the check from this process's own region.
type LocalChecker interface {
	Check(ctx context.Context, target string) (*domain.CheckReport, error)
}

// Orchestrator runs the local check, fans the same check out to every
// configured peer, and computes the consensus over whatever came back. Peers
// that fail or miss the budget are omitted from the result set, never
// counted as down.
type Orchestrator struct {
	Logger  *zap.Logger
	Local   LocalChecker
	Peers   []config.Peer
	Invoker Invoker
	Budget  time.Duration // bound on the whole peer fan-out
}

func NewOrchestrator(log *zap.Logger, local LocalChecker, peers []config.Peer, inv Invoker) *Orchestrator {
	return &Orchestrator{
		Logger:  log,
		Local:   local,
		Peers:   peers,
		Invoker: inv,
		Budget:  20 * time.Second,
	}
}

// Check always returns a report; zero reachable regions is a valid answer,
// not an error.
func (o *Orchestrator) Check(ctx context.Context, target string) (*domain.GlobalReport, error) {
	local, err := o.Local.Check(ctx, target)
	if err != nil {
		return nil, err
	}

	results := []domain.CheckReport{*local}
	results = append(results, o.fanout(ctx, target)...)

	up := 0
	for _, r := range results {
		if r.Status.Reachable() {
			up++
		}
	}

	total := len(results)
	overall := domain.GlobalDown
	switch {
	case up == total:
		overall = domain.GlobalUp
	case up > 0:
		overall = domain.GlobalMixed
	}

	o.Logger.Info("global_check_done",
		zap.String("url", target),
		zap.String("overall", string(overall)),
		zap.Int("regions_up", up),
		zap.Int("total_regions", total),
	)

	return &domain.GlobalReport{
		URL:           target,
		OverallStatus: overall,
		RegionsUp:     up,
		TotalRegions:  total,
		Results:       results,
		Timestamp:     time.Now().UTC(),
		Analysis:      analyze(up, total),
	}, nil
}

// fanout invokes every peer concurrently and collects whatever answers
// within the budget. Failed and late peers are logged and dropped.
func (o *Orchestrator) fanout(ctx context.Context, target string) []domain.CheckReport {
	if len(o.Peers) == 0 {
		return nil
	}

	type answer struct {
		peer   config.Peer
		report *domain.CheckReport
		err    error
	}
	ch := make(chan answer, len(o.Peers))
	for _, peer := range o.Peers {
		go func(peer config.Peer) {
			report, err := o.Invoker.Invoke(ctx, peer, target)
			ch <- answer{peer: peer, report: report, err: err}
		}(peer)
	}

	deadline := time.NewTimer(o.Budget)
	defer deadline.Stop()

	var out []domain.CheckReport
collect:
	for range o.Peers {
		select {
		case a := <-ch:
			if a.err != nil {
				o.Logger.Warn("peer_invoke_failed",
					zap.String("region", a.peer.Region),
					zap.Error(a.err),
				)
				continue
			}
			out = append(out, *a.report)
		case <-deadline.C:
			o.Logger.Warn("peer_fanout_budget_expired", zap.String("url", target))
			break collect
		case <-ctx.Done():
			break collect
		}
	}
	return out
}

func analyze(up, total int) string {
	switch {
	case total == 0:
		return "No results to analyze"
	case up == total:
		return "Website accessible from all tested regions"
	case up == 0:
		return "Website appears down globally"
	default:
		return fmt.Sprintf("Mixed: %d/%d regions can reach it", up, total)
	}
}
