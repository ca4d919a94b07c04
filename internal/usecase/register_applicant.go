package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/xavierca1/shopper-funnel/internal/entity"
	"github.com/xavierca1/shopper-funnel/internal/infra/queue"
)

type RegisterApplicantUseCase struct {
	Repo    entity.ApplicantRepositoryInterface
	Funnel  FunnelInvalidator
	Queue   QueueProducerInterface
	Metrics Metrics
}

func NewRegisterApplicantUseCase(
	repo entity.ApplicantRepositoryInterface,
	funnel FunnelInvalidator,
	producer QueueProducerInterface,
	metrics Metrics,
) *RegisterApplicantUseCase {
	return &RegisterApplicantUseCase{
		Repo:    repo,
		Funnel:  funnel,
		Queue:   producer,
		Metrics: metricsOrNoop(metrics),
	}
}

func (uc *RegisterApplicantUseCase) Execute(ctx context.Context, input RegisterApplicantInput) (*RegisterApplicantOutput, error) {
	if errs := ValidateRegisterApplicantInput(input); len(errs) > 0 {
		return nil, validationDomainError(errs)
	}

	email := normalizeEmail(input.Email)
	phone := normalizePhone(input.Phone)

	if err := checkAvailability(ctx, uc.Repo, email, phone); err != nil {
		return nil, err
	}

	applicant, err := entity.NewApplicant(
		strings.TrimSpace(input.Name), email, phone,
		strings.TrimSpace(input.City), normalizeRegion(input.Region),
	)
	if err != nil {
		return nil, &DomainError{Code: CodeValidation, Message: err.Error()}
	}

	txn := NewTransaction()
	txn.AddStep("create_applicant",
		func(ctx context.Context) error { return uc.Repo.Create(ctx, applicant) },
		func(ctx context.Context) error { return uc.Repo.Delete(ctx, applicant.ID) },
	)
	// A new applicant changes this week's counts, so the cached week must go.
	txn.AddStep("invalidate_funnel_week",
		func(ctx context.Context) error { return uc.Funnel.Invalidate(ctx, applicant.ApplicationDate) },
		nil,
	)

	if err := txn.Execute(ctx); err != nil {
		if dup := duplicateError(err); dup != nil {
			return nil, dup
		}
		return nil, &TechnicalError{
			Code:    CodeDatabase,
			Message: "failed to register applicant",
			Err:     err,
		}
	}

	uc.Metrics.RecordApplicantRegistered()
	log.Info().Str("applicant_id", applicant.ID).Str("email", applicant.Email).Msg("new applicant registered")

	uc.publishRegistered(ctx, applicant)

	return &RegisterApplicantOutput{
		ID:              applicant.ID,
		Name:            applicant.Name,
		Email:           applicant.Email,
		WorkflowState:   string(applicant.WorkflowState),
		ApplicationDate: applicant.ApplicationDate.Format(entity.DateLayout),
		Msg:             "Application received!",
	}, nil
}

// publishRegistered is best effort: the applicant is already stored.
func (uc *RegisterApplicantUseCase) publishRegistered(ctx context.Context, a *entity.Applicant) {
	if uc.Queue == nil {
		return
	}

	payload := queue.ApplicantRegisteredPayload{
		ApplicantID:     a.ID,
		Name:            a.Name,
		Email:           a.Email,
		Phone:           a.Phone,
		City:            a.City,
		Region:          a.Region,
		ApplicationDate: a.ApplicationDate.Format(entity.DateLayout),
		Origin:          queue.OriginRegistration,
	}
	if err := uc.Queue.PublishApplicantRegistered(ctx, payload); err != nil {
		uc.Metrics.RecordEventPublishFailure()
		log.Warn().Err(err).Str("applicant_id", a.ID).Msg("applicant stored but registration event not published")
	}
}

// checkAvailability reports every identifier already taken, not just the first.
func checkAvailability(ctx context.Context, repo entity.ApplicantRepositoryInterface, email, phone string) error {
	var conflicts []string
	code := ""

	if email != "" {
		exists, err := repo.ExistsByEmail(ctx, email)
		if err != nil {
			return &TechnicalError{Code: CodeDatabase, Message: "failed to check email", Err: err}
		}
		if exists {
			code = CodeEmailAlreadyRegistered
			conflicts = append(conflicts, "this email is already registered")
		}
	}

	if phone != "" {
		exists, err := repo.ExistsByPhone(ctx, phone)
		if err != nil {
			return &TechnicalError{Code: CodeDatabase, Message: "failed to check phone", Err: err}
		}
		if exists {
			if code == "" {
				code = CodePhoneAlreadyRegistered
			}
			conflicts = append(conflicts, "this phone number is already registered")
		}
	}

	if len(conflicts) == 0 {
		return nil
	}
	return &DomainError{Code: code, Message: strings.Join(conflicts, "; ")}
}

// duplicateError maps a unique-constraint violation that slipped past the
// availability check (two concurrent registrations) to a DomainError.
func duplicateError(err error) *DomainError {
	switch {
	case errors.Is(err, entity.ErrEmailAlreadyExists):
		return &DomainError{Code: CodeEmailAlreadyRegistered, Message: "this email is already registered"}
	case errors.Is(err, entity.ErrPhoneAlreadyExists):
		return &DomainError{Code: CodePhoneAlreadyRegistered, Message: "this phone number is already registered"}
	}
	return nil
}
