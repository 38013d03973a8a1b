package version

import (
	"runtime"
	"time"
)

// Build metadata for the hoard binary, overridden at link time via
// -ldflags for release builds. Defaults identify a local dev build.
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = time.Now().Format(time.RFC3339)
	GoVersion = runtime.Version()
)
