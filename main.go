package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"video-streamer/internal/database"
	"video-streamer/internal/ffmpeg"
	"video-streamer/internal/handlers"
	"video-streamer/internal/logging"
	"video-streamer/internal/memory"
	"video-streamer/internal/metrics"
	"video-streamer/internal/middleware"
	"video-streamer/internal/pipeline"
	"video-streamer/internal/preview"
	"video-streamer/internal/probe"
	"video-streamer/internal/startup"
	"video-streamer/internal/storage"
	"video-streamer/internal/thumbnail"
	"video-streamer/internal/transcoder"
	"video-streamer/internal/workers"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	startTime := time.Now()

	// Configure GOMEMLIMIT before significant allocations
	memory.ConfigureFromEnv()

	// Load configuration
	config, err := startup.LoadConfig()
	if err != nil {
		startup.LogFatal("Configuration error: %v", err)
	}

	// Initialize database
	dbStart := time.Now()
	db, err := database.New(context.Background(), config.DatabasePath)
	if err != nil {
		startup.LogFatal("Failed to initialize database: %v", err)
	}
	defer db.Close()
	startup.LogDatabaseInit(time.Since(dbStart))

	// Verify encoder tooling before accepting uploads
	if err := startup.LogEncoderInit(config.FfmpegPath, config.FfprobePath); err != nil {
		startup.LogFatal("Encoder error: %v", err)
	}

	runner := ffmpeg.New(config.FfmpegTimeout)
	encoder := transcoder.New(config.FfmpegPath, runner)
	thumbs := thumbnail.New(config.FfmpegPath, runner)
	previews := preview.New(config.FfmpegPath, runner)
	prober := probe.New(config.FfprobePath, runner)
	layout := storage.NewLayout(config.UploadDir, config.StreamDir)

	// Memory backpressure for pipeline work
	monitor := memory.NewMonitor(memory.DefaultConfig())
	monitor.Start()
	defer monitor.Stop()

	// Initialize processing pipeline
	jobCount := workers.ForCPU(0)
	startup.LogPipelineInit(jobCount, config.PipelineRetries, config.PipelineRetryBackoff)
	pipe := pipeline.New(encoder, thumbs, previews, layout, db, pipeline.Options{
		Retries:       config.PipelineRetries,
		RetryBackoff:  config.PipelineRetryBackoff,
		MaxConcurrent: jobCount,
		Memory:        monitor,
	})

	// Initialize metrics
	if config.MetricsEnabled {
		metrics.InitializeMetrics()
	}

	// Initialize handlers
	h := handlers.New(db, pipe, thumbs, prober, layout, config)

	// Setup router
	router := setupRouter(h)

	// Log routes dynamically
	startup.LogHTTPRoutes(router, config.LogStaticFiles, config.LogHealthChecks)

	// Apply metrics middleware
	var handler http.Handler = router
	if config.MetricsEnabled {
		handler = middleware.Metrics(middleware.DefaultMetricsConfig())(handler)
	}

	// Apply logging middleware
	loggingConfig := middleware.DefaultLoggingConfig()
	loggingConfig.LogStaticFiles = config.LogStaticFiles
	loggingConfig.LogHealthChecks = config.LogHealthChecks
	handler = middleware.Logger(loggingConfig)(handler)

	// Apply compression middleware
	handler = middleware.Compression(middleware.DefaultCompressionConfig())(handler)

	// Create server. WriteTimeout stays 0: segment delivery to slow players
	// can legitimately take a long time.
	srv := &http.Server{
		Addr:         ":" + config.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0,
		IdleTimeout:  60 * time.Second,
	}

	// Separate metrics server so the scrape endpoint is not public
	var metricsSrv *http.Server
	if config.MetricsEnabled {
		metricsMux := http.NewServeMux()
		metricsMux.Handle("/metrics", promhttp.Handler())
		metricsSrv = &http.Server{
			Addr:        ":" + config.MetricsPort,
			Handler:     metricsMux,
			ReadTimeout: 15 * time.Second,
		}
		go func() {
			if err := metricsSrv.ListenAndServe(); err != http.ErrServerClosed {
				logging.Error("Metrics server error: %v", err)
			}
		}()
	}

	// Start graceful shutdown handler
	go handleShutdown(srv, metricsSrv, pipe)

	// Start server
	startup.LogServerStarted(startup.ServerConfig{
		Port:            config.Port,
		MetricsPort:     config.MetricsPort,
		MetricsEnabled:  config.MetricsEnabled,
		StartupDuration: time.Since(startTime),
	})
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		startup.LogFatal("Server error: %v", err)
	}
}

func setupRouter(h *handlers.Handlers) *mux.Router {
	r := mux.NewRouter()

	// Health check and version routes
	r.HandleFunc("/health", h.HealthCheck).Methods("GET")
	r.HandleFunc("/healthz", h.HealthCheck).Methods("GET")
	r.HandleFunc("/livez", h.LivenessCheck).Methods("GET", "HEAD")
	r.HandleFunc("/readyz", h.ReadinessCheck).Methods("GET")
	r.HandleFunc("/version", h.GetVersion).Methods("GET")

	// API routes
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/upload", h.UploadVideo).Methods("POST")
	api.HandleFunc("/videos", h.ListVideos).Methods("GET")
	api.HandleFunc("/video/{videoId}/info", h.GetVideoInfo).Methods("GET")
	api.HandleFunc("/stream/{videoId}/{path:.*}", h.StreamFile).Methods("GET")
	api.HandleFunc("/stream-info/{videoId}", h.GetStreamInfo).Methods("GET")
	api.HandleFunc("/thumbnail/{videoId}/{filename}", h.GetThumbnail).Methods("GET")
	api.HandleFunc("/thumbnail/{videoId}", h.ExtractThumbnail).Methods("GET")
	api.HandleFunc("/preview/{videoId}", h.GetPreview).Methods("GET")
	api.HandleFunc("/sprite/{videoId}", h.GetSprite).Methods("GET")

	// Static files
	r.PathPrefix("/").Handler(http.FileServer(http.Dir("./static")))

	return r
}

func handleShutdown(srv, metricsSrv *http.Server, pipe *pipeline.Pipeline) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan

	startup.LogShutdownInitiated(sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	startup.LogShutdownStep("Shutting down HTTP server")
	if err := srv.Shutdown(ctx); err != nil {
		logging.Warn("Server shutdown error: %v", err)
	} else {
		startup.LogShutdownStepComplete("HTTP server stopped")
	}

	if metricsSrv != nil {
		startup.LogShutdownStep("Shutting down metrics server")
		if err := metricsSrv.Shutdown(ctx); err != nil {
			logging.Warn("Metrics server shutdown error: %v", err)
		} else {
			startup.LogShutdownStepComplete("Metrics server stopped")
		}
	}

	// In-flight encodes finish rather than leaving half-written artifact
	// sets behind.
	startup.LogShutdownStep("Waiting for processing jobs")
	pipe.Wait()
	startup.LogShutdownStepComplete("Processing jobs drained")

	startup.LogShutdownComplete()
}
