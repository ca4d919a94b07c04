package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/xavierca1/shopper-funnel/internal/entity"
)

// FunnelAggregator resolves per-week workflow counts cache-aside: the cache is
// read first and filled from the database on a miss.
//
// Two concurrent misses for the same week may both query and both write the
// cache; the values are identical aggregates so the last write wins.
type FunnelAggregator struct {
	Cache   FunnelCache
	Counter StateCounter
	Metrics Metrics
}

func NewFunnelAggregator(cache FunnelCache, counter StateCounter, metrics Metrics) *FunnelAggregator {
	return &FunnelAggregator{
		Cache:   cache,
		Counter: counter,
		Metrics: metricsOrNoop(metrics),
	}
}

// Aggregate returns the stats of every week in [start, end] that has at least
// one applicant, ordered by week start. Callers guarantee start <= end.
func (a *FunnelAggregator) Aggregate(ctx context.Context, start, end time.Time) (*entity.FunnelReport, error) {
	report := &entity.FunnelReport{}

	for _, week := range entity.PartitionWeeks(start, end) {
		stats, err := a.weekStats(ctx, week)
		if err != nil {
			return nil, err
		}
		if len(stats) == 0 {
			continue
		}
		report.Add(week.Key(), stats)
	}

	return report, nil
}

func (a *FunnelAggregator) weekStats(ctx context.Context, week entity.Week) (entity.WeeklyStats, error) {
	key := week.Key()

	cached, ok, err := a.Cache.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("read funnel cache %s: %w", key, err)
	}
	if ok && len(cached) > 0 {
		a.Metrics.RecordCacheLookup(true)
		return cached, nil
	}
	a.Metrics.RecordCacheLookup(false)

	rows, err := a.Counter.CountByState(ctx, week.Start, week.End)
	if err != nil {
		return nil, fmt.Errorf("count applicants for week %s: %w", key, err)
	}

	stats := entity.NewWeeklyStats(rows)
	if stats == nil {
		return nil, nil
	}

	if err := a.Cache.Set(ctx, key, stats); err != nil {
		return nil, fmt.Errorf("fill funnel cache %s: %w", key, err)
	}
	return stats, nil
}

// Invalidate removes the cached stats of the week containing date.
func (a *FunnelAggregator) Invalidate(ctx context.Context, date time.Time) error {
	key := entity.WeekContaining(date).Key()
	log.Info().Str("key", key).Msg("invalidating funnel cache week")

	if err := a.Cache.Delete(ctx, key); err != nil {
		return fmt.Errorf("invalidate funnel cache %s: %w", key, err)
	}
	a.Metrics.RecordCacheInvalidation()
	return nil
}
