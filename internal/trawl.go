// Package internal wires the Trawl services together: the discovery
// fetcher, the download service, and the REST gateway that fronts them.
package internal

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hbomb79/Trawl/internal/api"
	"github.com/hbomb79/Trawl/internal/download"
	"github.com/hbomb79/Trawl/internal/fetcher"
	"github.com/hbomb79/Trawl/internal/thumbnail"
	"github.com/hbomb79/Trawl/internal/ytdlp"
	"github.com/hbomb79/Trawl/pkg/logger"
)

var log = logger.Get("Core")

type (
	RunnableService interface {
		Run(context.Context) error
	}

	// Trawl is the top-level container, responsible for constructing the
	// services with their dependencies and running the long-lived ones.
	Trawl struct {
		config          TrawlConfig
		fetcher         *fetcher.Fetcher
		downloadService *download.Service
		restGateway     RunnableService
	}
)

func New(config TrawlConfig) (*Trawl, error) {
	log.Emit(logger.DEBUG, "Bootstrapping Trawl services using config: %#v\n", config)

	extractor := ytdlp.NewClient(config.YtDlp, logger.Get("YtDlp"))
	pages := fetcher.NewPageFetcher(time.Duration(config.Fetcher.TimeoutSeconds) * time.Second)
	thumbnailer := thumbnail.NewGenerator(logger.Get("Thumbnail"))

	fetcherService := fetcher.New(config.Fetcher, pages, extractor, thumbnailer, logger.Get("Fetcher"))

	downloadService, err := download.New(config.Downloads, config.Ffmpeg, extractor, logger.Get("Download"))
	if err != nil {
		return nil, fmt.Errorf("failed to construct download service: %w", err)
	}

	return &Trawl{
		config:          config,
		fetcher:         fetcherService,
		downloadService: downloadService,
		restGateway:     api.NewRestGateway(&config.Api, fetcherService, downloadService),
	}, nil
}

// Fetcher exposes the discovery pipeline for direct (CLI) use.
func (trawl *Trawl) Fetcher() *fetcher.Fetcher { return trawl.fetcher }

// DownloadService exposes the download service for direct (CLI) use.
func (trawl *Trawl) DownloadService() *download.Service { return trawl.downloadService }

// Run starts the long-lived services (REST gateway and the storage index
// watcher) and blocks until the context is cancelled or one of them
// fails.
func (trawl *Trawl) Run(parentCtx context.Context) error {
	ctx, ctxCancel := context.WithCancelCause(parentCtx)
	defer ctxCancel(nil)

	wg := &sync.WaitGroup{}
	services := map[string]RunnableService{
		"rest-gateway":  trawl.restGateway,
		"storage-index": trawl.downloadService.Index(),
	}

	for label, service := range services {
		wg.Add(1)
		go func(label string, service RunnableService) {
			defer wg.Done()
			if err := service.Run(ctx); err != nil {
				log.Emit(logger.ERROR, "Service %s failed: %v\n", label, err)
				ctxCancel(fmt.Errorf("service %s: %w", label, err))
			}
		}(label, service)
	}

	wg.Wait()
	if cause := context.Cause(ctx); cause != nil && cause != parentCtx.Err() {
		return cause
	}
	return nil
}
