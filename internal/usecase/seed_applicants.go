package usecase

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/xavierca1/shopper-funnel/internal/entity"
)

const MaxSeedCount = 10000

type serviceLocation struct {
	City   string
	Region string
}

var seedLocations = []serviceLocation{
	{"Atlanta", "GA"},
	{"Scottdale", "GA"},
	{"San Francisco", "CA"},
	{"San Jose", "CA"},
	{"Menlo Park", "CA"},
	{"Denver", "CO"},
	{"Chicago", "IL"},
	{"Indianapolis", "IN"},
	{"Cambridge", "MA"},
	{"New York", "NY"},
}

var (
	seedFirstDay = time.Date(2010, time.January, 1, 0, 0, 0, 0, time.UTC)
	seedLastDay  = time.Date(2014, time.December, 31, 0, 0, 0, 0, time.UTC)
)

// SeedApplicantsUseCase fills the database with random applicants so the funnel
// report has something to show.
type SeedApplicantsUseCase struct {
	Repo   entity.ApplicantRepositoryInterface
	Funnel FunnelInvalidator
	Rand   *rand.Rand
}

func NewSeedApplicantsUseCase(repo entity.ApplicantRepositoryInterface, funnel FunnelInvalidator, rng *rand.Rand) *SeedApplicantsUseCase {
	if rng == nil {
		rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), uint64(time.Now().Unix())))
	}
	return &SeedApplicantsUseCase{Repo: repo, Funnel: funnel, Rand: rng}
}

// Execute inserts up to count applicants. Random emails and phones can collide
// with existing rows, so it gives up after 2*count attempts. The weeks of every
// inserted applicant are invalidated even when a later insert fails.
func (uc *SeedApplicantsUseCase) Execute(ctx context.Context, count int) (*SeedApplicantsOutput, error) {
	if count < 1 || count > MaxSeedCount {
		return nil, &DomainError{Code: CodeInvalidCount, Message: "count must be between 1 and 10000"}
	}

	out := &SeedApplicantsOutput{Requested: count}
	touched := make(map[string]time.Time)

	insertErr := uc.insert(ctx, out, touched)
	invalidateErr := uc.invalidateWeeks(ctx, touched)

	if insertErr != nil {
		if invalidateErr != nil {
			log.Error().Err(invalidateErr).Int("inserted", out.Inserted).Msg("seed aborted and funnel cache not invalidated")
		}
		return nil, insertErr
	}
	if invalidateErr != nil {
		return nil, invalidateErr
	}

	log.Info().
		Int("requested", out.Requested).
		Int("inserted", out.Inserted).
		Int("attempts", out.Attempts).
		Msg("seed data loaded")

	return out, nil
}

func (uc *SeedApplicantsUseCase) insert(ctx context.Context, out *SeedApplicantsOutput, touched map[string]time.Time) error {
	for out.Attempts < 2*out.Requested && out.Inserted < out.Requested {
		out.Attempts++
		a := uc.randomApplicant()

		taken, err := uc.isTaken(ctx, a)
		if err != nil {
			return err
		}
		if taken {
			continue
		}

		if err := uc.Repo.Create(ctx, a); err != nil {
			if errors.Is(err, entity.ErrEmailAlreadyExists) || errors.Is(err, entity.ErrPhoneAlreadyExists) {
				continue
			}
			return &TechnicalError{Code: CodeDatabase, Message: "failed to insert seed applicant", Err: err}
		}
		out.Inserted++

		week := entity.WeekContaining(a.ApplicationDate)
		touched[week.Key()] = week.Start
	}
	return nil
}

// invalidateWeeks tries every week and returns the first failure.
func (uc *SeedApplicantsUseCase) invalidateWeeks(ctx context.Context, touched map[string]time.Time) error {
	var first error
	for _, weekStart := range touched {
		if err := uc.Funnel.Invalidate(ctx, weekStart); err != nil && first == nil {
			first = &TechnicalError{Code: CodeFunnel, Message: "seed data inserted but funnel cache not invalidated", Err: err}
		}
	}
	return first
}

func (uc *SeedApplicantsUseCase) isTaken(ctx context.Context, a *entity.Applicant) (bool, error) {
	exists, err := uc.Repo.ExistsByEmail(ctx, a.Email)
	if err != nil {
		return false, &TechnicalError{Code: CodeDatabase, Message: "failed to check email", Err: err}
	}
	if exists {
		return true, nil
	}
	exists, err = uc.Repo.ExistsByPhone(ctx, a.Phone)
	if err != nil {
		return false, &TechnicalError{Code: CodeDatabase, Message: "failed to check phone", Err: err}
	}
	return exists, nil
}

func (uc *SeedApplicantsUseCase) randomApplicant() *entity.Applicant {
	loc := seedLocations[uc.Rand.IntN(len(seedLocations))]
	now := time.Now().UTC()

	return &entity.Applicant{
		ID:              uuid.New().String(),
		Name:            uc.randomLetters(10),
		Email:           uc.randomLetters(10) + "@gmail.com",
		Phone:           uc.randomPhone(),
		City:            loc.City,
		Region:          loc.Region,
		ApplicationDate: uc.randomDate(),
		WorkflowState:   entity.WorkflowStates[uc.Rand.IntN(len(entity.WorkflowStates))],
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func (uc *SeedApplicantsUseCase) randomLetters(n int) string {
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		b.WriteByte(byte('a' + uc.Rand.IntN(26)))
	}
	return b.String()
}

// randomPhone never starts with 0 so the number keeps 10 digits.
func (uc *SeedApplicantsUseCase) randomPhone() string {
	var b strings.Builder
	b.Grow(10)
	b.WriteByte(byte('1' + uc.Rand.IntN(9)))
	for i := 1; i < 10; i++ {
		b.WriteByte(byte('0' + uc.Rand.IntN(10)))
	}
	return b.String()
}

func (uc *SeedApplicantsUseCase) randomDate() time.Time {
	days := int(seedLastDay.Sub(seedFirstDay).Hours()/24) + 1
	return seedFirstDay.AddDate(0, 0, uc.Rand.IntN(days))
}
