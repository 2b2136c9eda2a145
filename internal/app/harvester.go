package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Adda-Baaj/launch-harvester/internal/config"
	"github.com/Adda-Baaj/launch-harvester/internal/logger"
	"github.com/Adda-Baaj/launch-harvester/internal/storage"
	"github.com/Adda-Baaj/launch-harvester/internal/tracker"
	"github.com/Adda-Baaj/launch-harvester/pkg/publishers"
	"github.com/Adda-Baaj/launch-harvester/pkg/spacex"
)

// passRunner executes a single harvest pass.
type passRunner interface {
	Run(ctx context.Context) error
}

// Harvester represents the launch harvester runtime. It polls the SpaceX API
// on a fixed interval through the tracker service and owns the lifetime of
// the storage backend and the publisher fan-out.
type Harvester struct {
	tracker      passRunner
	pollInterval time.Duration
	log          logger.Logger
	store        storage.Store
	fanout       *publishers.Fanout
}

// NewHarvester builds a harvester runtime from config.
func NewHarvester(ctx context.Context, cfg *config.Config, log logger.Logger) (*Harvester, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = &logger.NopLogger{}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	filter, err := spacex.ParseLaunchFilter(cfg.LaunchFilter)
	if err != nil {
		return nil, fmt.Errorf("parse launch filter: %w", err)
	}

	publisherReg, err := publishers.LoadRegistry(cfg.PublishersFile)
	if err != nil {
		return nil, fmt.Errorf("load publishers registry: %w", err)
	}
	enabledPublishers := publisherReg.Enabled()
	if len(enabledPublishers) == 0 {
		return nil, fmt.Errorf("no publishers configured")
	}

	pubClients, err := publishers.BuildAll(ctx, publishers.DefaultRegistry(), enabledPublishers, log)
	if err != nil {
		return nil, fmt.Errorf("build publishers: %w", err)
	}
	fanout := publishers.NewFanout(pubClients)
	publisherSummaries := make([]map[string]string, 0, len(enabledPublishers))
	for _, pubCfg := range enabledPublishers {
		publisherSummaries = append(publisherSummaries, map[string]string{
			"id":   pubCfg.ID,
			"type": pubCfg.Type,
		})
	}
	log.InfoObj("publishers registry loaded", "publishers_meta", map[string]any{
		"count":      len(publisherSummaries),
		"publishers": publisherSummaries,
	})

	store, err := storage.NewStore(cfg.StorageType, cfg.BBoltPath, storage.Options{
		ReportTTL:       cfg.StorageTTL,
		CleanupInterval: cfg.StorageCleanupInterval,
	})
	if err != nil {
		_ = fanout.Close()
		return nil, fmt.Errorf("init storage: %w", err)
	}
	log.InfoObj("storage initialized", "storage_config", map[string]any{
		"type":                     cfg.StorageType,
		"path":                     cfg.BBoltPath,
		"report_ttl_seconds":       int(cfg.StorageTTL.Seconds()),
		"cleanup_interval_seconds": int(cfg.StorageCleanupInterval.Seconds()),
	})

	client := spacex.New(spacex.Options{
		BaseURL: cfg.SpaceXBaseURL,
		Timeout: cfg.HTTPTimeout,
	}, log)

	opts := tracker.Options{Filter: filter, Deduper: store}
	if cfg.ScrapeArticles {
		opts.Scraper = tracker.NewScraper(nil)
	}

	return &Harvester{
		tracker:      tracker.NewService(client, fanout, log, opts),
		pollInterval: cfg.PollInterval,
		log:          log,
		store:        store,
		fanout:       fanout,
	}, nil
}

// Run starts the poll loop until the context is cancelled.
func (h *Harvester) Run(ctx context.Context) error {
	if h == nil || h.tracker == nil {
		return fmt.Errorf("harvester is not initialized")
	}
	if h.pollInterval <= 0 {
		return fmt.Errorf("poll interval must be positive, got %s", h.pollInterval)
	}
	defer h.close()

	publishersCount := 0
	if h.fanout != nil {
		publishersCount = h.fanout.Size()
	}
	h.log.InfoObj("harvester loop starting", "harvester_state", map[string]any{
		"publishers_count": publishersCount,
		"poll_interval":    h.pollInterval.String(),
	})

	if err := h.runOnce(ctx); err != nil {
		h.log.ErrorObj("initial harvest failed", "error", err.Error())
	}

	ticker := time.NewTicker(h.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			h.log.InfoObj("harvester loop exiting", "reason", ctx.Err().Error())
			return nil
		case <-ticker.C:
			if err := h.runOnce(ctx); err != nil {
				h.log.ErrorObj("scheduled harvest failed", "error", err.Error())
			}
		}
	}
}

// runOnce performs a single harvest pass.
func (h *Harvester) runOnce(ctx context.Context) error {
	start := time.Now()
	h.log.InfoObj("harvest started", "harvest_meta", map[string]any{
		"started_at": start.UTC(),
	})
	if err := h.tracker.Run(ctx); err != nil {
		return err
	}
	h.log.InfoObj("harvest completed", "harvest_meta", map[string]any{
		"elapsed_ms": time.Since(start).Milliseconds(),
	})
	return nil
}

func (h *Harvester) close() {
	var errs []error
	if h.store != nil {
		if err := h.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}
	if h.fanout != nil {
		if err := h.fanout.Close(); err != nil {
			errs = append(errs, fmt.Errorf("publishers: %w", err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		h.log.ErrorObj("harvester shutdown failed", "error", err.Error())
	}
}
