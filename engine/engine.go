// Package engine implements the correlation and alerting cycle: feed
// ingestion, dedup filtering, asset matching, enrichment, idempotent alert
// creation and notification dispatch. A cycle is triggered externally and
// runs as one logical unit of work; the engine enforces that only one cycle
// runs at a time.
package engine

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cybersecalert/correlator-backend/dedup"
	"github.com/cybersecalert/correlator-backend/enrich"
	"github.com/cybersecalert/correlator-backend/feed"
	"github.com/cybersecalert/correlator-backend/matcher"
	"go.uber.org/zap"
)

// Config carries the engine's tunables. Zero values fall back to defaults.
type Config struct {
	// CycleTimeout bounds the total duration of one cycle; remaining work
	// is abandoned when it expires.
	CycleTimeout time.Duration
	// VulnWindowHours is how far back the CVE ingest window reaches.
	VulnWindowHours int
	// AdvisoryWindowDays is how far back the advisory ingest window reaches.
	AdvisoryWindowDays int
}

const (
	defaultCycleTimeout       = 5 * time.Minute
	defaultVulnWindowHours    = 6
	defaultAdvisoryWindowDays = 1
)

// CycleStatus reports the outcome of the most recent cycle
type CycleStatus struct {
	Running      bool          `json:"running"`
	LastRun      time.Time     `json:"last_run"`
	LastDuration time.Duration `json:"last_duration"`
	LastError    string        `json:"last_error,omitempty"`
}

// Engine composes the correlation pipeline over its external collaborators
type Engine struct {
	registry   *feed.Registry
	tracker    *dedup.Tracker
	matcher    *matcher.Matcher
	enricher   enrich.Provider
	dispatcher Dispatcher
	alerts     AlertStore
	inventory  AssetInventory
	audit      AuditSink
	events     EventPublisher
	logger     *zap.Logger
	cfg        Config

	busy   atomic.Bool
	mu     sync.Mutex
	status CycleStatus
}

// New creates an Engine. The events publisher may be nil.
func New(
	registry *feed.Registry,
	m *matcher.Matcher,
	enricher enrich.Provider,
	dispatcher Dispatcher,
	alerts AlertStore,
	inventory AssetInventory,
	audit AuditSink,
	events EventPublisher,
	logger *zap.Logger,
	cfg Config,
) *Engine {
	if cfg.CycleTimeout <= 0 {
		cfg.CycleTimeout = defaultCycleTimeout
	}
	if cfg.VulnWindowHours <= 0 {
		cfg.VulnWindowHours = defaultVulnWindowHours
	}
	if cfg.AdvisoryWindowDays <= 0 {
		cfg.AdvisoryWindowDays = defaultAdvisoryWindowDays
	}

	return &Engine{
		registry:   registry,
		tracker:    dedup.NewTracker(),
		matcher:    m,
		enricher:   enricher,
		dispatcher: dispatcher,
		alerts:     alerts,
		inventory:  inventory,
		audit:      audit,
		events:     events,
		logger:     logger,
		cfg:        cfg,
	}
}

// RunCycle executes one correlation cycle. Overlapping invocations are
// rejected with ErrCycleInProgress; the busy guard, not the external
// scheduler, is the authority.
func (e *Engine) RunCycle(ctx context.Context) error {
	if !e.busy.CompareAndSwap(false, true) {
		return ErrCycleInProgress
	}
	defer e.busy.Store(false)

	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, e.cfg.CycleTimeout)
	defer cancel()

	e.logger.Sugar().Infof("Starting correlation cycle")
	err := e.runCycle(ctx)

	e.mu.Lock()
	e.status = CycleStatus{
		LastRun:      start.UTC(),
		LastDuration: time.Since(start),
	}
	if err != nil {
		e.status.LastError = err.Error()
	}
	e.mu.Unlock()

	if err != nil {
		e.logger.Sugar().Errorf("Correlation cycle aborted: %v", err)
		return err
	}
	e.logger.Sugar().Infof("Correlation cycle completed in %s", time.Since(start))
	return nil
}

// TriggerManualCycle runs a cycle on demand with the same overlap semantics
// as RunCycle
func (e *Engine) TriggerManualCycle(ctx context.Context) error {
	return e.RunCycle(ctx)
}

// Status returns the most recent cycle outcome
func (e *Engine) Status() CycleStatus {
	e.mu.Lock()
	defer e.mu.Unlock()
	status := e.status
	status.Running = e.busy.Load()
	return status
}

// ResetDedup clears the processed-identifier cache. This is the explicit
// maintenance operation; the cache is never cleared implicitly.
func (e *Engine) ResetDedup() {
	e.tracker.Reset()
	e.logger.Sugar().Infof("Dedup tracker reset")
}

// DedupSize returns the number of identifiers currently cached
func (e *Engine) DedupSize() int {
	return e.tracker.Len()
}

func (e *Engine) runCycle(ctx context.Context) error {
	vulns, advisories := e.registry.FetchAll(ctx,
		feed.LastHours(e.cfg.VulnWindowHours),
		feed.LastDays(e.cfg.AdvisoryWindowDays))

	e.logger.Sugar().Infof("Fetched %d vulnerability records and %d advisories", len(vulns), len(advisories))

	pairs, err := e.inventory.ListActiveTenantAssets(ctx)
	if err != nil {
		return &StoreError{Op: "list-assets", Err: err}
	}

	// Records are processed in ingestion order; alerts for one record are
	// created sequentially while dispatch inside each creation fans out
	// concurrently.
	for i := range vulns {
		if err := e.processVulnerability(ctx, &vulns[i], pairs); err != nil {
			return err
		}
	}

	for i := range advisories {
		if err := e.processAdvisory(ctx, &advisories[i], pairs); err != nil {
			return err
		}
	}

	return nil
}
