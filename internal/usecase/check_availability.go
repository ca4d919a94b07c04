package usecase

import (
	"context"

	"github.com/xavierca1/shopper-funnel/internal/entity"
)

// CheckAvailabilityUseCase tells a registration form whether email or phone are taken
// before the applicant commits to the rest of the flow.
type CheckAvailabilityUseCase struct {
	Repo entity.ApplicantRepositoryInterface
}

func NewCheckAvailabilityUseCase(repo entity.ApplicantRepositoryInterface) *CheckAvailabilityUseCase {
	return &CheckAvailabilityUseCase{Repo: repo}
}

func (uc *CheckAvailabilityUseCase) Execute(ctx context.Context, input CheckAvailabilityInput) error {
	email := normalizeEmail(input.Email)
	phone := normalizePhone(input.Phone)
	if email == "" && phone == "" {
		return &DomainError{Code: CodeValidation, Message: "email or phone is required"}
	}
	return checkAvailability(ctx, uc.Repo, email, phone)
}
