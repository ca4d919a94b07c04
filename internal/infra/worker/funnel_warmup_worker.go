package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/xavierca1/shopper-funnel/internal/entity"
)

// Aggregator is satisfied by *usecase.FunnelAggregator.
type Aggregator interface {
	Aggregate(ctx context.Context, start, end time.Time) (*entity.FunnelReport, error)
}

// FunnelWarmupWorker aggregates the most recent weeks on a schedule so the
// first dashboard request of the day hits a filled cache.
type FunnelWarmupWorker struct {
	aggregator Aggregator
	schedule   string
	weeks      int
	now        func() time.Time
}

func NewFunnelWarmupWorker(aggregator Aggregator, schedule string, weeks int) *FunnelWarmupWorker {
	return &FunnelWarmupWorker{
		aggregator: aggregator,
		schedule:   schedule,
		weeks:      weeks,
		now:        time.Now,
	}
}

// Start warms once, then on every tick of the cron schedule until ctx is done.
func (w *FunnelWarmupWorker) Start(ctx context.Context) error {
	c := cron.New()
	if _, err := c.AddFunc(w.schedule, func() { w.warm(ctx) }); err != nil {
		return fmt.Errorf("invalid warm-up schedule %q: %w", w.schedule, err)
	}

	log.Info().Str("schedule", w.schedule).Int("weeks", w.weeks).Msg("funnel warm-up worker started")
	w.warm(ctx)

	c.Start()
	<-ctx.Done()
	<-c.Stop().Done()

	log.Info().Msg("funnel warm-up worker stopped")
	return nil
}

// Range returns the dates covering the last n weeks up to today.
func (w *FunnelWarmupWorker) Range() (time.Time, time.Time) {
	end := entity.TruncateToDate(w.now().UTC())
	start := end.AddDate(0, 0, -7*(w.weeks-1))
	return start, end
}

func (w *FunnelWarmupWorker) warm(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	start, end := w.Range()
	began := time.Now()

	report, err := w.aggregator.Aggregate(ctx, start, end)
	if err != nil {
		log.Error().Err(err).Msg("funnel warm-up failed")
		return
	}

	log.Debug().
		Int("weeks_with_data", report.Len()).
		Dur("took", time.Since(began)).
		Msg("funnel cache warmed")
}
