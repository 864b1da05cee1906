package metrics

// InitializeMetrics pre-populates all expected label combinations so that
// every metric is exported from the first Prometheus scrape.
// Call this once at startup after metric registration.
func InitializeMetrics() {
	// --- Encoder invocations (per tool × outcome) ---
	for _, tool := range []string{"ffmpeg", "ffprobe"} {
		for _, outcome := range []string{"success", "error", "cancelled", "spawn_error"} {
			EncoderInvocationsTotal.WithLabelValues(tool, outcome)
		}
		EncoderInvocationDuration.WithLabelValues(tool)
	}

	// --- Pipeline jobs and stages ---
	for _, state := range []string{"completed", "failed"} {
		PipelineJobsTotal.WithLabelValues(state)
	}

	for _, stage := range []string{"encoding", "thumbnailing", "previewing", "recording"} {
		PipelineStageDuration.WithLabelValues(stage)
		PipelineStageRetries.WithLabelValues(stage)
	}

	// --- DB query operations ---
	for _, op := range []string{"initialize_schema", "add_video", "get_video",
		"list_videos", "record_thumbnails", "mark_processed"} {
		DBQueryTotal.WithLabelValues(op, "success")
		DBQueryTotal.WithLabelValues(op, "error")
		DBQueryDuration.WithLabelValues(op)
	}
}
