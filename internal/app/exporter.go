package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/medipoint-hq/medipoint-gateway/internal/config"
	"github.com/medipoint-hq/medipoint-gateway/internal/logger"
	"github.com/medipoint-hq/medipoint-gateway/pkg/medipoint"
	"github.com/medipoint-hq/medipoint-gateway/pkg/publishers"
)

// SnapshotSource is the part of the dashboard catalog the exporter polls.
type SnapshotSource interface {
	GetKPISummary(ctx context.Context) (json.RawMessage, error)
	GetTopics(ctx context.Context, params medipoint.TopicParams) (json.RawMessage, error)
	GetChartTopicScores(ctx context.Context) (json.RawMessage, error)
	GetChartSampleSources(ctx context.Context) (json.RawMessage, error)
	GetChartLabelFrequency(ctx context.Context, limit int) (json.RawMessage, error)
}

type snapshot struct {
	kind  string
	fetch func(ctx context.Context) (json.RawMessage, error)
}

// Exporter periodically pulls dashboard snapshots and fans them out to the
// configured publishers.
type Exporter struct {
	source   SnapshotSource
	origin   string
	fanout   *publishers.Fanout
	interval time.Duration
	log      logger.Logger
}

// NewExporter builds an exporter from the publishers file named in cfg.
func NewExporter(ctx context.Context, cfg *config.Config, source SnapshotSource, origin string, log logger.Logger) (*Exporter, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	publisherReg, err := publishers.LoadRegistry(cfg.PublishersFile)
	if err != nil {
		return nil, fmt.Errorf("load publishers registry: %w", err)
	}
	enabled := publisherReg.Enabled()
	if len(enabled) == 0 {
		return nil, fmt.Errorf("no publishers configured")
	}

	pubClients, err := publishers.BuildAll(ctx, publishers.DefaultRegistry(), enabled, log)
	if err != nil {
		return nil, fmt.Errorf("build publishers: %w", err)
	}
	summaries := make([]map[string]string, 0, len(enabled))
	for _, pubCfg := range enabled {
		summaries = append(summaries, map[string]string{
			"id":   pubCfg.ID,
			"type": pubCfg.Type,
		})
	}
	log.InfoObj("publishers registry loaded", "publishers_meta", map[string]any{
		"count":      len(summaries),
		"publishers": summaries,
	})

	return newExporter(source, origin, publishers.NewFanout(pubClients), cfg.ExportInterval, log), nil
}

func newExporter(source SnapshotSource, origin string, fanout *publishers.Fanout, interval time.Duration, log logger.Logger) *Exporter {
	if log == nil {
		log = logger.NopLogger{}
	}
	return &Exporter{
		source:   source,
		origin:   origin,
		fanout:   fanout,
		interval: interval,
		log:      log,
	}
}

// Run exports once immediately and then on every interval tick until ctx is
// cancelled.
func (e *Exporter) Run(ctx context.Context) error {
	if e == nil || e.source == nil {
		return fmt.Errorf("exporter is not initialized")
	}
	if e.interval <= 0 {
		return fmt.Errorf("export interval must be positive")
	}
	defer e.Close()

	e.log.InfoObj("export loop starting", "exporter_state", map[string]any{
		"publishers_count": e.fanout.Size(),
		"export_interval":  e.interval.String(),
		"source":           e.origin,
	})

	if err := e.RunOnce(ctx); err != nil {
		e.log.ErrorObj("initial export failed", "error", err)
	}

	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			e.log.InfoObj("export loop exiting", "reason", ctx.Err())
			return nil
		case <-ticker.C:
			if err := e.RunOnce(ctx); err != nil {
				e.log.ErrorObj("scheduled export failed", "error", err)
			}
		}
	}
}

// RunOnce fetches every snapshot kind and publishes it. A kind whose fetch
// fails is logged and skipped; publish failures are joined into the result.
func (e *Exporter) RunOnce(ctx context.Context) error {
	start := time.Now()
	var errs []error
	published := 0

	for _, snap := range e.snapshots() {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		payload, err := snap.fetch(ctx)
		if err != nil {
			e.log.WarnObj("snapshot fetch failed", "snapshot_error", map[string]any{
				"kind":  snap.kind,
				"error": err.Error(),
			})
			continue
		}
		if _, err := e.fanout.Publish(ctx, publishers.NewEvent(snap.kind, e.origin, payload)); err != nil {
			errs = append(errs, fmt.Errorf("publish %s: %w", snap.kind, err))
			continue
		}
		published++
	}

	e.log.InfoObj("export completed", "export_meta", map[string]any{
		"published":  published,
		"failed":     len(errs),
		"elapsed_ms": time.Since(start).Milliseconds(),
	})
	return errors.Join(errs...)
}

func (e *Exporter) snapshots() []snapshot {
	return []snapshot{
		{kind: publishers.KindKPISummary, fetch: e.source.GetKPISummary},
		{kind: publishers.KindTopics, fetch: func(ctx context.Context) (json.RawMessage, error) {
			return e.source.GetTopics(ctx, medipoint.TopicParams{})
		}},
		{kind: publishers.KindChartTopicScores, fetch: e.source.GetChartTopicScores},
		{kind: publishers.KindChartSampleSources, fetch: e.source.GetChartSampleSources},
		{kind: publishers.KindChartLabelFrequency, fetch: func(ctx context.Context) (json.RawMessage, error) {
			return e.source.GetChartLabelFrequency(ctx, 0)
		}},
	}
}

// Close releases publisher clients. Run calls it on exit.
func (e *Exporter) Close() {
	if err := e.fanout.Close(); err != nil {
		e.log.ErrorObj("publisher close failed", "error", err)
	}
}
