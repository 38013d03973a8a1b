package scheduler

import (
	"context"
	"time"

	"github.com/hoardapp/hoard/internal/bookmarks"
	"github.com/hoardapp/hoard/internal/logger"
	"github.com/hoardapp/hoard/internal/storage"
)

// DefaultTrashRetention is how long soft-deleted bookmarks are kept
// before the collector purges them.
const DefaultTrashRetention = 30 * 24 * time.Hour

// TrashCollector permanently removes bookmarks that have been sitting in
// the soft-deleted state longer than the retention window.
//
// It goes through Service.Purge, so the soft-delete-first safety gate
// holds by construction: only tombstoned records are ever candidates.
type TrashCollector struct {
	service   *bookmarks.Service
	manager   *storage.Manager
	logger    logger.Logger
	interval  time.Duration
	retention time.Duration
	stopCh    chan struct{}
}

// NewTrashCollector creates a new trash collector.
func NewTrashCollector(
	service *bookmarks.Service,
	manager *storage.Manager,
	log logger.Logger,
	interval time.Duration,
	retention time.Duration,
) *TrashCollector {
	if retention <= 0 {
		retention = DefaultTrashRetention
	}
	return &TrashCollector{
		service:   service,
		manager:   manager,
		logger:    log,
		interval:  interval,
		retention: retention,
		stopCh:    make(chan struct{}),
	}
}

// Start begins the periodic collection process. The first pass runs
// immediately so a long-stopped instance catches up on start.
func (tc *TrashCollector) Start(ctx context.Context) {
	tc.Collect()

	ticker := time.NewTicker(tc.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				tc.Collect()
			case <-tc.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop stops the collector.
func (tc *TrashCollector) Stop() {
	close(tc.stopCh)
}

// Collect purges every bookmark whose tombstone is older than the
// retention window. Individual purge failures are logged and skipped.
func (tc *TrashCollector) Collect() {
	cutoff := time.Now().Add(-tc.retention)
	purged := 0

	for _, rootName := range tc.manager.RootNames() {
		deleted, err := tc.service.List(rootName, storage.ListFilter{IncludeDeleted: true})
		if err != nil {
			tc.logger.Warn("trash collection skipped storage",
				logger.String("storage", rootName),
				logger.Error(err))
			continue
		}

		for _, b := range deleted {
			if !b.Deleted || b.DeletedAt == nil || b.DeletedAt.After(cutoff) {
				continue
			}
			if err := tc.service.Purge(b.ID, rootName); err != nil {
				tc.logger.Warn("failed to purge expired bookmark",
					logger.String("id", b.ID),
					logger.Error(err))
				continue
			}
			purged++
		}
	}

	if purged > 0 {
		tc.logger.Info("trash collection complete",
			logger.Int("purged", purged))
	}
}
