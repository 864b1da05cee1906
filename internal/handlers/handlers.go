package handlers

import (
	"video-streamer/internal/database"
	"video-streamer/internal/pipeline"
	"video-streamer/internal/probe"
	"video-streamer/internal/startup"
	"video-streamer/internal/storage"
	"video-streamer/internal/thumbnail"
)

type Handlers struct {
	db             *database.Database
	pipeline       *pipeline.Pipeline
	layout         storage.Layout
	thumbs         *thumbnail.Generator
	prober         *probe.Prober
	maxUploadBytes int64
}

// New creates the handler set. The layout must be the same one the pipeline
// writes artifacts through, so that every path the handlers serve is a path
// the pipeline produced.
func New(db *database.Database, pipe *pipeline.Pipeline, thumbs *thumbnail.Generator,
	prober *probe.Prober, layout storage.Layout, config *startup.Config) *Handlers {
	return &Handlers{
		db:             db,
		pipeline:       pipe,
		layout:         layout,
		thumbs:         thumbs,
		prober:         prober,
		maxUploadBytes: config.MaxUploadSize,
	}
}
