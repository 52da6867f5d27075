// Package feed normalizes raw vulnerability provider responses into typed
// records. Sources are assembled into a static registry at initialization;
// a failing source contributes an empty result and never aborts the cycle.
package feed

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cybersecalert/correlator-backend/model"
	"go.uber.org/zap"
)

// FetchError marks a feed source failure. The source contributes an empty
// result and the cycle continues with the other sources.
type FetchError struct {
	Source string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("feed source %s failed: %v", e.Source, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Window bounds a fetch to records published within a time range
type Window struct {
	Start time.Time
	End   time.Time
}

// LastHours returns a window covering the last n hours
func LastHours(n int) Window {
	end := time.Now().UTC()
	return Window{Start: end.Add(-time.Duration(n) * time.Hour), End: end}
}

// LastDays returns a window covering the last n days
func LastDays(n int) Window {
	end := time.Now().UTC()
	return Window{Start: end.AddDate(0, 0, -n), End: end}
}

// Source is implemented once per upstream vulnerability provider. A source
// that has nothing for one of the record kinds returns an empty slice.
type Source interface {
	Name() string
	FetchVulnerabilities(ctx context.Context, w Window) ([]model.VulnerabilityRecord, error)
	FetchAdvisories(ctx context.Context, w Window) ([]model.AdvisoryRecord, error)
}

// Registry holds the statically configured feed sources
type Registry struct {
	sources []Source
	logger  *zap.Logger
}

// NewRegistry creates a registry over an explicit list of sources
func NewRegistry(logger *zap.Logger, sources ...Source) *Registry {
	return &Registry{sources: sources, logger: logger}
}

// Sources returns the configured source list
func (r *Registry) Sources() []Source {
	return r.sources
}

// FetchAll fans out over every source concurrently and gathers the combined
// results. Per-source failures are logged and contribute empty slices;
// absence of data is not an error condition.
func (r *Registry) FetchAll(ctx context.Context, vulnWindow, advisoryWindow Window) ([]model.VulnerabilityRecord, []model.AdvisoryRecord) {
	var (
		mu         sync.Mutex
		wg         sync.WaitGroup
		vulns      []model.VulnerabilityRecord
		advisories []model.AdvisoryRecord
	)

	for _, src := range r.sources {
		wg.Add(1)
		go func(src Source) {
			defer wg.Done()

			v, err := src.FetchVulnerabilities(ctx, vulnWindow)
			if err != nil {
				r.logger.Sugar().Warnf("Vulnerability fetch degraded: %v", &FetchError{Source: src.Name(), Err: err})
			}

			a, err := src.FetchAdvisories(ctx, advisoryWindow)
			if err != nil {
				r.logger.Sugar().Warnf("Advisory fetch degraded: %v", &FetchError{Source: src.Name(), Err: err})
			}

			mu.Lock()
			vulns = append(vulns, v...)
			advisories = append(advisories, a...)
			mu.Unlock()
		}(src)
	}

	wg.Wait()
	return vulns, advisories
}
