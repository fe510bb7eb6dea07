// Package batch implements the bounded worker pool for batch reconciliation
// runs (spec.md §5): a fixed-size pool of fully independent per-record
// matchings, each under its own deadline, continuing past individual
// record failures and draining on shutdown. Grounded on the teacher
// pack's processBatch (sells-group-research-cli/cmd/batch.go): same
// errgroup.SetLimit concurrency cap, same atomic success/failure
// counters, same "don't abort batch on individual failure" rule —
// adapted from Notion-lead enrichment onto record reconciliation.
package batch

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/entitymatch/reconciler/internal/config"
	"github.com/entitymatch/reconciler/internal/engine"
	"github.com/entitymatch/reconciler/internal/logging"
	"github.com/entitymatch/reconciler/internal/model"
)

// Job is one record's worth of extracted data queued for reconciliation.
// Secondary is the second tax form sharing the same record, if any
// (spec.md §4.6 cross-source validation).
type Job struct {
	RecordID  string
	Primary   model.ExtractedEntity
	Secondary *model.ExtractedEntity
}

// Pool runs jobs against an Engine with bounded concurrency and a
// per-record deadline (spec.md §5).
type Pool struct {
	Engine     *engine.Engine
	Thresholds config.Thresholds
	Log        logging.Logger

	// Sink, if non-nil, is called once per completed job (including
	// ERROR results) so callers can persist the audit trail without the
	// pool depending on a concrete store. Called concurrently from
	// worker goroutines; it must be safe for concurrent use (a *sqlx.DB
	// handle, as auditstore.InsertRun takes, already is).
	Sink func(*model.ProcessingResult)

	shutdownOnce sync.Once
	shutdownCh   chan struct{}
}

// New builds a Pool over engine e with the given thresholds.
func New(e *engine.Engine, t config.Thresholds, log logging.Logger) *Pool {
	if log == nil {
		log = logging.Nop{}
	}
	return &Pool{Engine: e, Thresholds: t, Log: log, shutdownCh: make(chan struct{})}
}

// Shutdown signals Run to stop admitting new work and begin draining
// in-flight jobs (spec.md §5). Safe to call more than once or
// concurrently with Run.
func (p *Pool) Shutdown() {
	p.shutdownOnce.Do(func() { close(p.shutdownCh) })
}

// Summary tallies outcomes across a Run call.
type Summary struct {
	Succeeded int64
	Errored   int64
}

// Run processes jobs with a bounded worker pool (default size
// Thresholds.WorkerPoolSize), one task per record, each under its own
// PerRecordDeadline. An individual record failure (panic recovered, or
// the deadline elapsing) produces an ERROR ProcessingResult for that
// record rather than aborting the run (spec.md §7). Results are returned
// in the same order as jobs was given, independent of completion order.
//
// A call to Shutdown starts a ShutdownDrainDeadline grace period in which
// already-running jobs keep going; jobs that haven't started yet, and any
// still running when the grace period expires, are cancelled and dropped
// from the returned slice rather than reported (spec.md §5). Cancelling
// ctx itself cancels every job at once, with no grace period.
func (p *Pool) Run(ctx context.Context, jobs []Job) ([]*model.ProcessingResult, Summary) {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go p.watchShutdown(runCtx, cancel)

	results := make([]*model.ProcessingResult, len(jobs))
	var succeeded, errored atomic.Int64

	g, gctx := errgroup.WithContext(runCtx)
	limit := p.Thresholds.WorkerPoolSize
	if limit <= 0 {
		limit = 4
	}
	g.SetLimit(limit)

	for i, job := range jobs {
		g.Go(func() error {
			result := p.runOne(gctx, job)
			if result == nil {
				return nil
			}
			results[i] = result
			if result.Decision == model.DecisionError {
				errored.Add(1)
			} else {
				succeeded.Add(1)
			}
			if p.Sink != nil {
				p.Sink(result)
			}
			return nil
		})
	}

	// errgroup's g.Wait() can only return a worker error, and runOne
	// never lets one escape (spec.md §7: record-level failures become
	// ERROR results, not propagated errors) — the return is intentionally
	// discarded.
	_ = g.Wait()

	kept := results[:0]
	for _, r := range results {
		if r != nil {
			kept = append(kept, r)
		}
	}

	return kept, Summary{Succeeded: succeeded.Load(), Errored: errored.Load()}
}

// watchShutdown waits for Shutdown to be called and then starts the
// ShutdownDrainDeadline grace period, cancelling runCtx when it expires so
// in-flight jobs wind down (spec.md §5). If runCtx ends first, it returns
// without starting a grace period.
func (p *Pool) watchShutdown(runCtx context.Context, cancel context.CancelFunc) {
	select {
	case <-runCtx.Done():
		return
	case <-p.shutdownCh:
	}

	grace := p.Thresholds.ShutdownDrainDeadline
	if grace <= 0 {
		grace = 60 * time.Second
	}
	timer := time.NewTimer(grace)
	defer timer.Stop()
	select {
	case <-runCtx.Done():
	case <-timer.C:
		cancel()
	}
}

// runOne matches a single job under its own deadline, recovering from a
// panic and converting both outcomes (deadline elapsed, panic) into an
// ERROR ProcessingResult (spec.md §7) instead of letting either abort the
// batch. A job never started, or cut short by a shutdown-triggered
// cancellation rather than its own deadline, returns nil: cancelled
// records are dropped, not reported (spec.md §5).
func (p *Pool) runOne(ctx context.Context, job Job) (result *model.ProcessingResult) {
	if ctx.Err() != nil {
		return nil
	}
	select {
	case <-p.shutdownCh:
		return nil
	default:
	}

	start := time.Now()
	recordID := job.RecordID
	if recordID == "" {
		// Caller didn't supply a correlation ID (SPEC_FULL.md §3); mint one
		// so the audit trail and batch result routing still have a key.
		recordID = uuid.New().String()
	}
	pr := model.NewProcessingResult(recordID, job.Primary)
	pr.Secondary = job.Secondary
	result = pr

	defer func() {
		if result == nil {
			return
		}
		result.Duration = time.Since(start)
		if r := recover(); r != nil {
			result.Decision = model.DecisionError
			result.Metadata["error"] = fmt.Sprintf("panic: %v", r)
			result.Audit("worker panic recovered: %v", r)
			p.Log.Error("record %s: panic recovered: %v", recordID, r)
		}
	}()

	deadline := p.Thresholds.PerRecordDeadline
	if deadline <= 0 {
		deadline = 60 * time.Second
	}
	recordCtx, cancel := context.WithTimeout(ctx, deadline)
	defer cancel()

	matchResults := p.Engine.FindMatches(recordCtx, job.Primary, job.Secondary)

	if recordCtx.Err() == context.Canceled {
		p.Log.Warn("record %s: dropped by shutdown drain deadline", recordID)
		result = nil
		return nil
	}

	if recordCtx.Err() != nil {
		result.Decision = model.DecisionError
		result.Metadata["error"] = recordCtx.Err().Error()
		result.Audit("record deadline exceeded after %s", deadline)
		p.Log.Warn("record %s: deadline exceeded", recordID)
		return result
	}

	result.Results = matchResults
	result.Decision = engine.Decide(matchResults, p.Thresholds)
	if len(matchResults) > 0 {
		selected := matchResults[0]
		result.Selected = &selected
	}
	result.Audit("decision=%s candidates=%d", result.Decision, len(matchResults))
	return result
}
