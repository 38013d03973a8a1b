package deps

import (
	"time"

	"github.com/hoardapp/hoard/internal/bookmarks"
	"github.com/hoardapp/hoard/internal/logger"
	"github.com/hoardapp/hoard/internal/storage"
)

type Deps struct {
	Logger    logger.Logger
	StartTime time.Time
	Version   string
	Commit    string
	BuildDate string
	GoVersion string

	Storage   *storage.Manager   // storage engine (roots, indices, diagnostics)
	Bookmarks *bookmarks.Service // lifecycle operations over the engine

	RescanTrigger chan struct{} // channel to trigger a manual index rescan
}
