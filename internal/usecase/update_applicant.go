package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/xavierca1/shopper-funnel/internal/entity"
)

type UpdateApplicantUseCase struct {
	Repo entity.ApplicantRepositoryInterface
}

func NewUpdateApplicantUseCase(repo entity.ApplicantRepositoryInterface) *UpdateApplicantUseCase {
	return &UpdateApplicantUseCase{Repo: repo}
}

// Execute edits contact details. The workflow state and application date are
// untouched, so the funnel cache stays valid.
func (uc *UpdateApplicantUseCase) Execute(ctx context.Context, input UpdateApplicantInput) (*ApplicationOutput, error) {
	if errs := ValidateUpdateApplicantInput(input); len(errs) > 0 {
		return nil, validationDomainError(errs)
	}

	applicant, err := findByEmail(ctx, uc.Repo, input.Email)
	if err != nil {
		return nil, err
	}

	phone := normalizePhone(input.Phone)
	if phone != applicant.Phone {
		taken, err := uc.Repo.ExistsByPhone(ctx, phone)
		if err != nil {
			return nil, &TechnicalError{Code: CodeDatabase, Message: "failed to check phone", Err: err}
		}
		if taken {
			return nil, &DomainError{
				Code:    CodePhoneAlreadyRegistered,
				Message: "phone number already registered with a different user",
			}
		}
	}

	applicant.Name = strings.TrimSpace(input.Name)
	applicant.Phone = phone
	applicant.City = strings.TrimSpace(input.City)
	applicant.Region = normalizeRegion(input.Region)
	applicant.UpdatedAt = time.Now().UTC()

	if err := uc.Repo.Update(ctx, applicant); err != nil {
		if dup := duplicateError(err); dup != nil {
			return nil, dup
		}
		return nil, &TechnicalError{Code: CodeDatabase, Message: "failed to update application", Err: err}
	}

	return NewApplicationOutput(applicant), nil
}
