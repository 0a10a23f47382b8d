package mdpreview

import "runtime"

// Worker pool sizing constants.
const (
	// MinWorkers ensures at least one worker is available.
	MinWorkers = 1

	// MaxWorkers caps concurrent conversions; the work is CPU-bound and
	// short, so more workers than this only add scheduling overhead.
	MaxWorkers = 16
)

// ResolveWorkers determines the batch worker count.
// Priority: explicit workers > GOMAXPROCS-based calculation.
// Exported for use by servers and CLIs.
func ResolveWorkers(workers int) int {
	if workers > 0 {
		return min(workers, MaxWorkers)
	}

	// GOMAXPROCS is adjusted by automaxprocs for containers in the CLI.
	return max(MinWorkers, min(runtime.GOMAXPROCS(0), MaxWorkers))
}
