package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"video-streamer/internal/ffmpeg"
	"video-streamer/internal/logging"
	"video-streamer/internal/memory"
	"video-streamer/internal/metrics"
	"video-streamer/internal/preview"
	"video-streamer/internal/sprite"
	"video-streamer/internal/storage"
	"video-streamer/internal/thumbnail"
	"video-streamer/internal/transcoder"
)

// State is a job's position in its lifecycle.
type State string

const (
	StatePending      State = "pending"
	StateEncoding     State = "encoding"
	StateThumbnailing State = "thumbnailing"
	StatePreviewing   State = "previewing"
	StateCompleted    State = "completed"
	StateFailed       State = "failed"
)

// Repository receives the pipeline's terminal notification. It is
// implemented by the persistence layer; the pipeline calls it exactly once
// per job, after every stage has succeeded.
type Repository interface {
	RecordThumbnails(ctx context.Context, videoID string, filenames []string) error
	MarkProcessed(ctx context.Context, videoID string) error
}

// Options tunes pipeline behavior.
type Options struct {
	// Retries is the number of additional attempts per failed stage.
	// 0 means every stage failure is terminal.
	Retries int

	// RetryBackoff is the base delay between attempts; the delay grows
	// linearly with the attempt number.
	RetryBackoff time.Duration

	// MaxConcurrent bounds simultaneously running jobs.
	MaxConcurrent int

	// SpriteColumns is the storyboard grid width.
	SpriteColumns int

	// Memory optionally gates stage starts on heap pressure.
	Memory *memory.Monitor
}

// Pipeline processes uploaded videos into playable artifact sets.
type Pipeline struct {
	encoder   *transcoder.Encoder
	thumbs    *thumbnail.Generator
	previews  *preview.Generator
	layout    storage.Layout
	repo      Repository
	retries   int
	backoff   time.Duration
	spriteCol int
	mem       *memory.Monitor

	sem chan struct{}
	wg  sync.WaitGroup
}

// New creates a Pipeline.
func New(enc *transcoder.Encoder, thumbs *thumbnail.Generator, previews *preview.Generator,
	layout storage.Layout, repo Repository, opts Options) *Pipeline {

	if opts.MaxConcurrent < 1 {
		opts.MaxConcurrent = 1
	}
	if opts.RetryBackoff <= 0 {
		opts.RetryBackoff = 5 * time.Second
	}
	if opts.SpriteColumns <= 0 {
		opts.SpriteColumns = sprite.DefaultColumns
	}

	return &Pipeline{
		encoder:   enc,
		thumbs:    thumbs,
		previews:  previews,
		layout:    layout,
		repo:      repo,
		retries:   opts.Retries,
		backoff:   opts.RetryBackoff,
		spriteCol: opts.SpriteColumns,
		mem:       opts.Memory,
		sem:       make(chan struct{}, opts.MaxConcurrent),
	}
}

// Launch starts processing src in the background. Failures are logged, not
// returned: the upload call has already succeeded, and a failed job simply
// never transitions the video to processed.
func (p *Pipeline) Launch(src storage.SourceMedia) {
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		if err := p.Process(context.Background(), src); err != nil {
			logging.Error("Processing failed for video %s: %v", src.VideoID, err)
		}
	}()
}

// Wait blocks until all launched jobs have finished.
func (p *Pipeline) Wait() {
	p.wg.Wait()
}

// Process runs all stages for one job and blocks until it reaches a
// terminal state. It returns nil only when the artifact set is complete and
// the repository has been notified.
func (p *Pipeline) Process(ctx context.Context, src storage.SourceMedia) error {
	select {
	case p.sem <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	defer func() { <-p.sem }()

	metrics.PipelineJobsActive.Inc()
	defer metrics.PipelineJobsActive.Dec()

	j := &job{videoID: src.VideoID, state: StatePending}
	start := time.Now()

	if err := p.run(ctx, j, src); err != nil {
		j.transition(StateFailed)
		metrics.PipelineJobsTotal.WithLabelValues(string(StateFailed)).Inc()
		logDiagnostics(src.VideoID, err)
		return err
	}

	j.transition(StateCompleted)
	metrics.PipelineJobsTotal.WithLabelValues(string(StateCompleted)).Inc()
	logging.Info("Video %s processed in %s", src.VideoID, time.Since(start).Round(time.Second))
	return nil
}

func (p *Pipeline) run(ctx context.Context, j *job, src storage.SourceMedia) error {
	videoDir := p.layout.VideoDir(src.VideoID)
	thumbDir := p.layout.ThumbnailDir(src.VideoID)

	j.transition(StateEncoding)
	if err := p.stage(ctx, "encoding", func() error {
		return p.encoder.Encode(ctx, src.Path, videoDir)
	}); err != nil {
		return err
	}

	j.transition(StateThumbnailing)
	var thumbs []string
	if err := p.stage(ctx, "thumbnailing", func() error {
		var err error
		thumbs, err = p.thumbs.Generate(ctx, src.Path, thumbDir)
		return err
	}); err != nil {
		return err
	}

	// The storyboard is a convenience on top of the thumbnail set;
	// players fall back to the individual stills if it is missing.
	if len(thumbs) > 0 {
		if _, err := sprite.BuildSheet(thumbDir, thumbs, p.spriteCol); err != nil {
			logging.Warn("Sprite sheet failed for video %s: %v", src.VideoID, err)
		}
	}

	j.transition(StatePreviewing)
	if err := p.stage(ctx, "previewing", func() error {
		_, err := p.previews.Generate(ctx, src.Path, videoDir, 0)
		return err
	}); err != nil {
		return err
	}

	// Single notification: nothing is recorded until every artifact
	// exists, so a failure in any earlier stage leaves the repository
	// untouched.
	return p.stage(ctx, "recording", func() error {
		if err := p.repo.RecordThumbnails(ctx, src.VideoID, thumbs); err != nil {
			return err
		}
		return p.repo.MarkProcessed(ctx, src.VideoID)
	})
}

// stage runs fn with the configured retry policy and records its duration.
func (p *Pipeline) stage(ctx context.Context, name string, fn func() error) error {
	start := time.Now()
	defer func() {
		metrics.PipelineStageDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
	}()

	var err error
	for attempt := 0; ; attempt++ {
		if p.mem != nil && !p.mem.WaitIfPaused() {
			return fmt.Errorf("%s: shutting down under memory pressure", name)
		}
		err = fn()
		if err == nil {
			return nil
		}
		if attempt >= p.retries || ctx.Err() != nil {
			break
		}

		metrics.PipelineStageRetries.WithLabelValues(name).Inc()
		delay := p.backoff * time.Duration(attempt+1)
		logging.Warn("Stage %s failed (attempt %d of %d), retrying in %s: %v",
			name, attempt+1, p.retries+1, delay, err)

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return fmt.Errorf("%s: %w", name, ctx.Err())
		}
	}

	return fmt.Errorf("%s: %w", name, err)
}

// job tracks one unit of work through its states. State is internal
// sequencing bookkeeping; collaborators only ever observe the terminal
// transition through the repository.
type job struct {
	videoID string
	state   State
}

func (j *job) transition(to State) {
	logging.Debug("Job %s: %s -> %s", j.videoID, j.state, to)
	j.state = to
}

// logDiagnostics surfaces the failure and any encoder stderr to the
// operator log.
func logDiagnostics(videoID string, err error) {
	var exitErr *ffmpeg.ExitError
	if errors.As(err, &exitErr) && exitErr.Output != "" {
		logging.Error("Job %s failed: %v\nencoder output:\n%s", videoID, err, exitErr.Output)
		return
	}
	logging.Error("Job %s failed: %v", videoID, err)
}
