package app

import (
	"context"
	"fmt"
	"time"

	"github.com/samvad-hq/swgoh-comlink-go/internal/config"
	"github.com/samvad-hq/swgoh-comlink-go/internal/logger"
	"github.com/samvad-hq/swgoh-comlink-go/internal/storage"
	"github.com/samvad-hq/swgoh-comlink-go/internal/watcher"
	"github.com/samvad-hq/swgoh-comlink-go/pkg/comlink"
	"github.com/samvad-hq/swgoh-comlink-go/pkg/publishers"
)

// Watcher is the version-watcher runtime. It owns the comlink client, the
// publisher fanout and the version store, and drives the poll loop.
type Watcher struct {
	cfg          *config.Config
	client       *comlink.Client
	fanout       *publishers.Fanout
	service      *watcher.Service
	store        storage.Store
	pollInterval time.Duration
	log          logger.Logger
}

// ComlinkOptions maps config onto client options.
func ComlinkOptions(cfg *config.Config, log logger.Logger) []comlink.Option {
	opts := []comlink.Option{
		comlink.WithURL(cfg.ComlinkURL),
		comlink.WithStatsURL(cfg.StatsURL),
		comlink.WithCompression(cfg.Compression),
		comlink.WithTimeout(cfg.RequestTimeout),
	}
	if cfg.AccessKey != "" || cfg.SecretKey != "" {
		opts = append(opts, comlink.WithCredentials(cfg.AccessKey, cfg.SecretKey))
	}
	if log != nil {
		opts = append(opts, comlink.WithLogger(log))
	}
	return opts
}

func clientSummary(cfg comlink.Config) map[string]any {
	return map[string]any{
		"url":         cfg.URL,
		"stats_url":   cfg.StatsURL,
		"compression": cfg.Compression,
		"signed":      cfg.Signed(),
	}
}

// NewWatcher builds a watcher runtime from config files.
func NewWatcher(ctx context.Context, cfg *config.Config, log logger.Logger) (*Watcher, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	client, err := comlink.New(ComlinkOptions(cfg, log)...)
	if err != nil {
		return nil, fmt.Errorf("init comlink client: %w", err)
	}
	log.InfoObj("comlink client configured", "comlink_config", clientSummary(client.Config()))

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

	store, err := storage.NewStore(cfg.StorageType, cfg.BBoltPath)
	if err != nil {
		_ = fanout.Close()
		return nil, fmt.Errorf("init storage: %w", err)
	}
	log.InfoObj("storage initialized", "storage_config", map[string]any{
		"type": cfg.StorageType,
		"path": cfg.BBoltPath,
	})

	service := watcher.NewService(client, fanout, store, nil, log, cfg.ComlinkURL)

	return &Watcher{
		cfg:          cfg,
		client:       client,
		fanout:       fanout,
		service:      service,
		store:        store,
		pollInterval: cfg.PollInterval,
		log:          log,
	}, nil
}

// Run starts the poll loop until the context is cancelled, then releases
// the store and publishers.
func (w *Watcher) Run(ctx context.Context) error {
	if w == nil || w.service == nil {
		return fmt.Errorf("watcher is not initialized")
	}
	defer w.close()

	w.log.InfoObj("watcher loop starting", "watcher_state", map[string]any{
		"comlink_url":      w.cfg.ComlinkURL,
		"publishers_count": w.fanout.Size(),
		"poll_interval":    w.pollInterval.String(),
	})
	return w.service.Run(ctx, w.pollInterval)
}

func (w *Watcher) close() {
	if w == nil {
		return
	}
	if w.store != nil {
		if err := w.store.Close(); err != nil {
			w.log.ErrorObj("storage close failed", "error", err)
		}
	}
	if err := w.fanout.Close(); err != nil {
		w.log.ErrorObj("publisher close failed", "error", err)
	}
}
