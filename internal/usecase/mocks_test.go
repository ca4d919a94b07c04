package usecase

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/shopper-funnel/internal/entity"
	"github.com/xavierca1/shopper-funnel/internal/infra/queue"
)

type MockApplicantRepository struct {
	mock.Mock
}

func (m *MockApplicantRepository) Create(ctx context.Context, a *entity.Applicant) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockApplicantRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockApplicantRepository) Update(ctx context.Context, a *entity.Applicant) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockApplicantRepository) FindByEmail(ctx context.Context, email string) (*entity.Applicant, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Applicant), args.Error(1)
}

func (m *MockApplicantRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockApplicantRepository) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	args := m.Called(ctx, phone)
	return args.Bool(0), args.Error(1)
}

type MockFunnelCache struct {
	mock.Mock
}

func (m *MockFunnelCache) Get(ctx context.Context, key string) (entity.WeeklyStats, bool, error) {
	args := m.Called(ctx, key)
	var stats entity.WeeklyStats
	if v := args.Get(0); v != nil {
		stats = v.(entity.WeeklyStats)
	}
	return stats, args.Bool(1), args.Error(2)
}

func (m *MockFunnelCache) Set(ctx context.Context, key string, stats entity.WeeklyStats) error {
	args := m.Called(ctx, key, stats)
	return args.Error(0)
}

func (m *MockFunnelCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

type MockStateCounter struct {
	mock.Mock
}

func (m *MockStateCounter) CountByState(ctx context.Context, start, end time.Time) ([]entity.StateCount, error) {
	args := m.Called(ctx, start, end)
	var rows []entity.StateCount
	if v := args.Get(0); v != nil {
		rows = v.([]entity.StateCount)
	}
	return rows, args.Error(1)
}

type MockFunnelInvalidator struct {
	mock.Mock
}

func (m *MockFunnelInvalidator) Invalidate(ctx context.Context, date time.Time) error {
	args := m.Called(ctx, date)
	return args.Error(0)
}

type MockQueueProducer struct {
	mock.Mock
}

func (m *MockQueueProducer) PublishApplicantRegistered(ctx context.Context, payload queue.ApplicantRegisteredPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

type recordingMetrics struct {
	hits, misses, invalidations, registered, publishFailures int
}

func (r *recordingMetrics) RecordCacheLookup(hit bool) {
	if hit {
		r.hits++
		return
	}
	r.misses++
}

func (r *recordingMetrics) RecordCacheInvalidation()   { r.invalidations++ }
func (r *recordingMetrics) RecordApplicantRegistered() { r.registered++ }
func (r *recordingMetrics) RecordEventPublishFailure() { r.publishFailures++ }

// memoryCache is a minimal in-process FunnelCache for tests that need real hit/miss behavior.
type memoryCache struct {
	entries map[string]entity.WeeklyStats
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string]entity.WeeklyStats)}
}

func (c *memoryCache) Get(_ context.Context, key string) (entity.WeeklyStats, bool, error) {
	s, ok := c.entries[key]
	return s, ok, nil
}

func (c *memoryCache) Set(_ context.Context, key string, stats entity.WeeklyStats) error {
	c.entries[key] = stats
	return nil
}

func (c *memoryCache) Delete(_ context.Context, key string) error {
	delete(c.entries, key)
	return nil
}

func day(s string) time.Time {
	d, err := time.Parse(entity.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return d
}
