package sinkscan

import (
	"context"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/osmcheck/sinkscan/check"
	"github.com/osmcheck/sinkscan/graph"
	"github.com/osmcheck/sinkscan/ledger"
	"github.com/osmcheck/sinkscan/report"
)

// Summary is the result of one full network scan.
type Summary struct {
	// SeedsExamined counts every candidate edge considered.
	SeedsExamined int
	// SeedsAdmitted counts the candidates that started a search.
	SeedsAdmitted int
	// Islands counts searches that produced a finding.
	Islands int
	// Aborted counts searches stopped by an exclusion or the size bound.
	Aborted int
	// EdgesFlagged is the final ledger cardinality.
	EdgesFlagged uint64
	// Findings holds the accepted findings, ordered by lowest member edge.
	Findings []report.Finding
	// Duration is the wall time of the scan.
	Duration time.Duration
}

// Scanner runs the sink island check over whole networks. A Scanner is
// reusable and safe for concurrent Scans; every Scan gets a fresh ledger.
type Scanner struct {
	cfg  check.Config
	opts options
}

// NewScanner validates the configuration and creates a scanner.
func NewScanner(cfg Config, optFns ...Option) (*Scanner, error) {
	checkCfg, err := cfg.checkConfig()
	if err != nil {
		return nil, err
	}
	return &Scanner{cfg: checkCfg, opts: applyOptions(optFns)}, nil
}

// Scan examines every edge of the network in ascending ID order, searching
// from each admissible seed. Findings are returned in the summary and, when
// a reporter is configured, streamed to it after the merge step.
func (s *Scanner) Scan(ctx context.Context, g *graph.Network) (Summary, error) {
	if g == nil {
		return Summary{}, ErrNilNetwork
	}

	start := time.Now()
	flags := ledger.New()
	chk, err := check.New(s.cfg, flags)
	if err != nil {
		return Summary{}, err
	}

	var summary Summary
	var findings []report.Finding
	if s.opts.workers > 1 {
		summary, findings, err = s.scanParallel(ctx, g, chk)
	} else {
		summary, findings, err = s.scanSequential(ctx, g, chk)
	}
	if err != nil {
		s.opts.metrics.RecordScan(summary, err)
		s.opts.logger.LogScan(ctx, summary, err)
		return summary, err
	}

	// Parallel workers can race two searches into overlapping regions
	// before the ledger merge lands. The merge here is the single writer
	// that guarantees no edge is reported twice.
	summary.Findings = mergeFindings(findings)
	summary.Islands = len(summary.Findings)
	summary.EdgesFlagged = flags.Cardinality()
	summary.Duration = time.Since(start)

	if s.opts.reporter != nil {
		for _, f := range summary.Findings {
			if err := s.opts.reporter.Report(ctx, f); err != nil {
				s.opts.metrics.RecordScan(summary, err)
				s.opts.logger.LogScan(ctx, summary, err)
				return summary, err
			}
		}
	}

	s.opts.metrics.RecordScan(summary, nil)
	s.opts.logger.LogScan(ctx, summary, nil)
	return summary, nil
}

func (s *Scanner) scanSequential(ctx context.Context, g *graph.Network, chk *check.SinkIsland) (Summary, []report.Finding, error) {
	var summary Summary
	var findings []report.Finding

	for _, seed := range g.Edges() {
		if err := ctx.Err(); err != nil {
			return summary, findings, err
		}

		summary.SeedsExamined++
		admitted := chk.AdmitSeed(seed)
		s.opts.metrics.RecordSeed(admitted)
		if !admitted {
			continue
		}
		summary.SeedsAdmitted++

		if s.opts.limiter != nil {
			if err := s.opts.limiter.Wait(ctx); err != nil {
				return summary, findings, err
			}
		}

		res := s.explore(ctx, chk, seed)
		if res.Outcome == check.Island {
			findings = append(findings, report.NewFinding(res.Edges))
		} else {
			summary.Aborted++
		}
	}
	return summary, findings, nil
}

func (s *Scanner) scanParallel(ctx context.Context, g *graph.Network, chk *check.SinkIsland) (Summary, []report.Finding, error) {
	var (
		mu       sync.Mutex
		summary  Summary
		findings []report.Finding
	)

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(s.opts.workers)

	for _, seed := range g.Edges() {
		seed := seed
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			admitted := chk.AdmitSeed(seed)
			s.opts.metrics.RecordSeed(admitted)

			mu.Lock()
			summary.SeedsExamined++
			if admitted {
				summary.SeedsAdmitted++
			}
			mu.Unlock()

			if !admitted {
				return nil
			}
			if s.opts.limiter != nil {
				if err := s.opts.limiter.Wait(ctx); err != nil {
					return err
				}
			}

			res := s.explore(ctx, chk, seed)

			mu.Lock()
			defer mu.Unlock()
			if res.Outcome == check.Island {
				findings = append(findings, report.NewFinding(res.Edges))
			} else {
				summary.Aborted++
			}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return summary, findings, err
	}
	return summary, findings, nil
}

func (s *Scanner) explore(ctx context.Context, chk *check.SinkIsland, seed *graph.Edge) check.Result {
	searchStart := time.Now()
	res := chk.Explore(seed)
	island := res.Outcome == check.Island

	s.opts.metrics.RecordSearch(island, res.Flagged, time.Since(searchStart))
	s.opts.logger.LogSearch(ctx, int64(seed.ID()), island, res.Flagged)
	return res
}

// mergeFindings orders findings by their lowest member edge and drops any
// finding that shares an edge with an earlier accepted one.
func mergeFindings(findings []report.Finding) []report.Finding {
	if len(findings) == 0 {
		return nil
	}

	sort.Slice(findings, func(i, j int) bool {
		a, b := findings[i].EdgeIDs, findings[j].EdgeIDs
		if a[0] != b[0] {
			return a[0] < b[0]
		}
		return len(a) < len(b)
	})

	accepted := findings[:1]
	for _, f := range findings[1:] {
		overlap := false
		for _, prev := range accepted {
			if f.Overlaps(prev) {
				overlap = true
				break
			}
		}
		if !overlap {
			accepted = append(accepted, f)
		}
	}
	return accepted
}
