package usecase

import (
	"context"
	"errors"

	"github.com/xavierca1/shopper-funnel/internal/entity"
)

type GetApplicationUseCase struct {
	Repo entity.ApplicantRepositoryInterface
}

func NewGetApplicationUseCase(repo entity.ApplicantRepositoryInterface) *GetApplicationUseCase {
	return &GetApplicationUseCase{Repo: repo}
}

// Execute looks up an application by the email it was registered with.
func (uc *GetApplicationUseCase) Execute(ctx context.Context, email string) (*ApplicationOutput, error) {
	applicant, err := findByEmail(ctx, uc.Repo, email)
	if err != nil {
		return nil, err
	}
	return NewApplicationOutput(applicant), nil
}

func findByEmail(ctx context.Context, repo entity.ApplicantRepositoryInterface, email string) (*entity.Applicant, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, &DomainError{Code: CodeValidation, Message: "please enter a valid email"}
	}

	applicant, err := repo.FindByEmail(ctx, email)
	if errors.Is(err, entity.ErrApplicantNotFound) {
		return nil, &DomainError{Code: CodeApplicantNotFound, Message: "there is no application with this email"}
	}
	if err != nil {
		return nil, &TechnicalError{Code: CodeDatabase, Message: "failed to load application", Err: err}
	}
	return applicant, nil
}
