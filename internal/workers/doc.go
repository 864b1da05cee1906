/*
Package workers sizes the transcoding job pool in containerized
environments.

Go 1.19+ sets GOMAXPROCS from container CPU limits, while runtime.NumCPU()
still reports the host machine. ForCPU sizes from GOMAXPROCS so concurrency
respects cgroup constraints:

	// One heavyweight encoder per CPU, capped so a burst of uploads
	// cannot start unbounded ffmpeg runs.
	jobs := workers.ForCPU(4)

Operators can override the calculation with the PIPELINE_WORKERS
environment variable.
*/
package workers
