package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/spritestrip/pkg/observability"
)

// logHooks reports batch and cache events as debug log lines.
// It is registered when --verbose is set.
type logHooks struct {
	logger *log.Logger
}

func (h *logHooks) OnBatchStart(ctx context.Context, runID string, jobs int) {
	h.logger.Debug("batch started", "run", runID, "jobs", jobs)
}

func (h *logHooks) OnBatchComplete(ctx context.Context, runID string, succeeded, failed int, dur time.Duration) {
	h.logger.Debug("batch finished", "run", runID, "ok", succeeded, "failed", failed, "took", dur.Round(time.Millisecond))
}

func (h *logHooks) OnJobStart(ctx context.Context, kind, name string) {
	h.logger.Debug("job started", "kind", kind, "job", name)
}

func (h *logHooks) OnJobComplete(ctx context.Context, kind, name string, dur time.Duration, cached bool, err error) {
	if err != nil {
		h.logger.Debug("job finished", "kind", kind, "job", name, "took", dur.Round(time.Millisecond), "err", err)
		return
	}
	h.logger.Debug("job finished", "kind", kind, "job", name, "took", dur.Round(time.Millisecond), "cached", cached)
}

func (h *logHooks) OnCacheHit(ctx context.Context, backend string) {
	h.logger.Debug("cache hit", "backend", backend)
}

func (h *logHooks) OnCacheMiss(ctx context.Context, backend string) {
	h.logger.Debug("cache miss", "backend", backend)
}

func (h *logHooks) OnCacheSet(ctx context.Context, backend string, size int) {
	h.logger.Debug("cache set", "backend", backend, "bytes", size)
}

var (
	_ observability.BatchHooks = (*logHooks)(nil)
	_ observability.CacheHooks = (*logHooks)(nil)
)
