package watcher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/samvad-hq/swgoh-comlink-go/internal/logger"
	"github.com/samvad-hq/swgoh-comlink-go/internal/storage"
	"github.com/samvad-hq/swgoh-comlink-go/pkg/comlink"
	"github.com/samvad-hq/swgoh-comlink-go/pkg/publishers"
)

// MetadataSource is the slice of the comlink client the watcher needs.
type MetadataSource interface {
	GetMetaData(ctx context.Context) (json.RawMessage, error)
}

// EventPublisher delivers events and reports how many sinks accepted them.
type EventPublisher interface {
	Publish(ctx context.Context, evt publishers.Event) (int, error)
}

// Service compares remote versions against the store and announces changes.
type Service struct {
	source    MetadataSource
	publisher EventPublisher
	store     storage.Store
	clock     clock.Clock
	log       logger.Logger
	origin    string
}

// NewService wires a watcher. origin names the polled deployment in events.
func NewService(source MetadataSource, pub EventPublisher, store storage.Store, clk clock.Clock, log logger.Logger, origin string) *Service {
	if clk == nil {
		clk = clock.New()
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	return &Service{
		source:    source,
		publisher: pub,
		store:     store,
		clock:     clk,
		log:       log,
		origin:    origin,
	}
}

// Check polls metadata once. A version is recorded only after at least one
// sink accepted its event, so failed announcements are retried next poll.
func (s *Service) Check(ctx context.Context) error {
	if s == nil || s.source == nil || s.store == nil {
		return fmt.Errorf("watcher service is not initialized")
	}

	raw, err := s.source.GetMetaData(ctx)
	if err != nil {
		return fmt.Errorf("fetch metadata: %w", err)
	}
	md, err := comlink.DecodeMetadata(raw)
	if err != nil {
		return err
	}
	s.log.DebugObj("metadata fetched", "metadata", map[string]any{
		"gamedata":       md.LatestGamedataVersion,
		"localization":   md.LatestLocalizationBundleVersion,
		"server_version": md.ServerVersion,
	})

	var errs []error
	for _, v := range []struct{ kind, version string }{
		{publishers.KindGameData, md.LatestGamedataVersion},
		{publishers.KindLocalization, md.LatestLocalizationBundleVersion},
	} {
		if err := s.checkVersion(ctx, v.kind, v.version); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *Service) checkVersion(ctx context.Context, kind, version string) error {
	if version == "" {
		return nil
	}

	prev, found, err := s.store.Version(kind)
	if err != nil {
		return fmt.Errorf("read %s version: %w", kind, err)
	}
	if found && prev.Version == version {
		return nil
	}

	now := s.clock.Now()
	evt := publishers.NewEvent(kind, version, prev.Version, s.origin, now)
	delivered, pubErr := s.publish(ctx, evt)
	if delivered == 0 && pubErr != nil {
		return fmt.Errorf("announce %s %s: %w", kind, version, pubErr)
	}
	if pubErr != nil {
		s.log.WarnObj("version announced with partial delivery", "version_delivery", map[string]any{
			"kind":      kind,
			"version":   version,
			"delivered": delivered,
			"error":     pubErr.Error(),
		})
	}

	if err := s.store.SetVersion(kind, version, now); err != nil {
		return fmt.Errorf("record %s version: %w", kind, err)
	}
	s.log.InfoObj("version change announced", "version_change", map[string]any{
		"kind":      kind,
		"version":   version,
		"previous":  prev.Version,
		"delivered": delivered,
	})
	return nil
}

func (s *Service) publish(ctx context.Context, evt publishers.Event) (int, error) {
	if s.publisher == nil {
		return 0, nil
	}
	return s.publisher.Publish(ctx, evt)
}

// Run checks immediately and then on every interval until ctx is cancelled.
// Failed checks are logged and do not stop the loop.
func (s *Service) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("poll interval must be positive")
	}

	ticker := s.clock.Ticker(interval)
	defer ticker.Stop()

	s.runOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			s.log.InfoObj("watcher loop exiting", "reason", ctx.Err())
			return nil
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *Service) runOnce(ctx context.Context) {
	start := s.clock.Now()
	if err := s.Check(ctx); err != nil {
		s.log.ErrorObj("metadata check failed", "watcher_error", map[string]any{
			"origin": s.origin,
			"error":  err.Error(),
		})
		return
	}
	s.log.DebugObj("metadata check completed", "watcher_check", map[string]any{
		"origin":     s.origin,
		"elapsed_ms": s.clock.Since(start).Milliseconds(),
	})
}
