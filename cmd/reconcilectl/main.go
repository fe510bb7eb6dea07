// Command reconcilectl is a thin demonstration entry point wiring the
// record store, matching engine, batch runner, and audit store together
// (spec.md §9 lists CLI entry points as a Non-goal beyond basic wiring —
// this stays deliberately minimal, mirroring the teacher's kycctl: parse
// args, wire collaborators, run one operation, print the result).
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/entitymatch/reconciler/internal/auditstore"
	"github.com/entitymatch/reconciler/internal/batch"
	"github.com/entitymatch/reconciler/internal/config"
	"github.com/entitymatch/reconciler/internal/engine"
	"github.com/entitymatch/reconciler/internal/logging"
	"github.com/entitymatch/reconciler/internal/model"
	"github.com/entitymatch/reconciler/internal/store"
)

func main() {
	inputPath := flag.String("input", "", "path to a JSON file containing a batch.Job array")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	if *inputPath == "" {
		fmt.Println("Usage: reconcilectl -input <jobs.json>")
		os.Exit(1)
	}

	logger := logging.NewStd(*debug)

	jobs, err := loadJobs(*inputPath)
	if err != nil {
		log.Fatalf("load jobs: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := store.OpenPool(ctx, "")
	if err != nil {
		log.Fatalf("open record store: %v", err)
	}
	defer pool.Close()

	thresholds := config.DefaultThresholds()
	cache := store.NewIdentifierCache(thresholds.IdentifierCacheCapacity, thresholds.IdentifierCacheFreshFor)
	recordStore := store.NewPostgresStore(pool, cache, logger)

	db, err := auditstore.ConnectPostgres()
	if err != nil {
		log.Fatalf("open audit store: %v", err)
	}
	defer db.Close()

	e := engine.New(recordStore, thresholds, logger)
	runner := batch.New(e, thresholds, logger)
	runner.Sink = func(result *model.ProcessingResult) {
		if _, err := auditstore.InsertRun(db, result); err != nil {
			logger.Error("record %s: failed to persist audit run: %v", result.RecordID, err)
		}
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		if _, ok := <-sigCh; ok {
			logger.Warn("shutdown requested, draining in-flight records")
			runner.Shutdown()
		}
	}()
	defer signal.Stop(sigCh)

	results, summary := runner.Run(ctx, jobs)
	logger.Info("batch complete: succeeded=%d errored=%d", summary.Succeeded, summary.Errored)

	out, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		log.Fatalf("marshal results: %v", err)
	}
	fmt.Println(string(out))
}

func loadJobs(path string) ([]batch.Job, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var jobs []batch.Job
	if err := json.Unmarshal(raw, &jobs); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return jobs, nil
}
