package usecase

import (
	"context"
	"time"

	"github.com/xavierca1/shopper-funnel/internal/entity"
	"github.com/xavierca1/shopper-funnel/internal/infra/queue"
)

// FunnelCache stores weekly stats by week key. Entries never expire on their own.
type FunnelCache interface {
	// Get returns ok=false when key is absent.
	Get(ctx context.Context, key string) (stats entity.WeeklyStats, ok bool, err error)
	Set(ctx context.Context, key string, stats entity.WeeklyStats) error
	// Delete of a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// StateCounter counts applicants by workflow state for application dates in [start, end].
type StateCounter interface {
	CountByState(ctx context.Context, start, end time.Time) ([]entity.StateCount, error)
}

// FunnelInvalidator drops the cached stats for the week containing a date.
type FunnelInvalidator interface {
	Invalidate(ctx context.Context, date time.Time) error
}

type QueueProducerInterface interface {
	PublishApplicantRegistered(ctx context.Context, payload queue.ApplicantRegisteredPayload) error
}

// Metrics receives counters from the use cases. A nil Metrics is replaced by a no-op.
type Metrics interface {
	RecordCacheLookup(hit bool)
	RecordCacheInvalidation()
	RecordApplicantRegistered()
	RecordEventPublishFailure()
}

type noopMetrics struct{}

func (noopMetrics) RecordCacheLookup(bool)     {}
func (noopMetrics) RecordCacheInvalidation()   {}
func (noopMetrics) RecordApplicantRegistered() {}
func (noopMetrics) RecordEventPublishFailure() {}

func metricsOrNoop(m Metrics) Metrics {
	if m == nil {
		return noopMetrics{}
	}
	return m
}
