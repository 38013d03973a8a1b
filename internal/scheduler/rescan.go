package scheduler

import (
	"context"
	"time"

	"github.com/hoardapp/hoard/internal/logger"
	"github.com/hoardapp/hoard/internal/storage"
)

// Rescanner periodically rebuilds the in-memory indices from disk.
//
// The indices are disposable caches over the filesystem, so a rescan
// picks up record files written by other tools (sync clients, manual
// edits) without a restart. A manual trigger channel backs the
// POST /reload endpoint.
type Rescanner struct {
	manager       *storage.Manager
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

// NewRescanner creates a new index rescanner.
func NewRescanner(
	manager *storage.Manager,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *Rescanner {
	return &Rescanner{
		manager:       manager,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start begins the periodic rescan loop. The initial load already
// happened in Manager.Initialize, so the first rescan waits a full
// interval.
func (rs *Rescanner) Start(ctx context.Context) {
	ticker := time.NewTicker(rs.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				rs.rescan()
			case <-rs.manualTrigger:
				rs.logger.Info("manual index rescan triggered")
				rs.rescan()
			case <-rs.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop stops the rescanner.
func (rs *Rescanner) Stop() {
	close(rs.stopCh)
}

func (rs *Rescanner) rescan() {
	start := time.Now()
	if err := rs.manager.ReloadAll(); err != nil {
		rs.logger.Error("index rescan failed", logger.Error(err))
		return
	}
	rs.logger.Info("index rescan complete",
		logger.Duration("took", time.Since(start)))
}
