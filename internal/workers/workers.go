package workers

import (
	"os"
	"runtime"
	"strconv"
)

// ForCPU returns the number of transcoding jobs to run concurrently, one per
// available CPU. GOMAXPROCS reflects container CPU limits (Go 1.19+), so the
// count respects cgroup quotas without extra probing.
//
// A PIPELINE_WORKERS environment override wins when set to a positive
// integer. The limit parameter caps the result either way; use 0 for no cap.
func ForCPU(limit int) int {
	if override := os.Getenv("PIPELINE_WORKERS"); override != "" {
		if count, err := strconv.Atoi(override); err == nil && count > 0 {
			if limit > 0 && count > limit {
				return limit
			}
			return count
		}
	}

	count := runtime.GOMAXPROCS(0)
	if count < 1 {
		count = 1
	}
	if limit > 0 && count > limit {
		count = limit
	}

	return count
}
