// Package memory provides memory management utilities for controlling Go's
// runtime memory usage in containerized environments.
//
// Unlike GOMAXPROCS, which Go detects from cgroup CPU limits, GOMEMLIMIT
// must be configured explicitly. [ConfigureFromEnv] derives it from the
// container memory limit passed via the Kubernetes Downward API:
//
//   - GOMEMLIMIT: Standard Go env var. If set, takes precedence.
//   - MEMORY_LIMIT: Container memory limit in bytes.
//   - MEMORY_RATIO: Fraction of MEMORY_LIMIT for the Go heap (default 0.85).
//     The remainder stays free for ffmpeg child processes, sprite image
//     composition, goroutine stacks, and OS buffers.
//
// [Monitor] adds runtime backpressure on top: the processing pipeline calls
// [Monitor.WaitIfPaused] before each stage so that new image composition and
// bookkeeping work pauses while the heap is close to the limit, instead of
// pushing the container into an OOM kill while encodes are in flight.
package memory
