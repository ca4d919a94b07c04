package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/xavierca1/shopper-funnel/internal/entity"
)

// AdvanceWorkflowUseCase moves an applicant to another pipeline stage.
type AdvanceWorkflowUseCase struct {
	Repo   entity.ApplicantRepositoryInterface
	Funnel FunnelInvalidator
}

func NewAdvanceWorkflowUseCase(repo entity.ApplicantRepositoryInterface, funnel FunnelInvalidator) *AdvanceWorkflowUseCase {
	return &AdvanceWorkflowUseCase{Repo: repo, Funnel: funnel}
}

func (uc *AdvanceWorkflowUseCase) Execute(ctx context.Context, input AdvanceWorkflowInput) (*ApplicationOutput, error) {
	state, err := entity.ParseWorkflowState(input.State)
	if err != nil {
		return nil, &DomainError{Code: CodeInvalidWorkflowState, Message: "unknown workflow state: " + input.State}
	}

	applicant, err := findByEmail(ctx, uc.Repo, input.Email)
	if err != nil {
		return nil, err
	}
	if applicant.WorkflowState == state {
		return NewApplicationOutput(applicant), nil
	}

	previous := applicant.WorkflowState
	updated := false

	txn := NewTransaction()
	txn.AddStep("update_workflow_state",
		func(ctx context.Context) error {
			applicant.WorkflowState = state
			applicant.UpdatedAt = time.Now().UTC()
			if err := uc.Repo.Update(ctx, applicant); err != nil {
				return err
			}
			updated = true
			return nil
		},
		func(ctx context.Context) error {
			applicant.WorkflowState = previous
			applicant.UpdatedAt = time.Now().UTC()
			return uc.Repo.Update(ctx, applicant)
		},
	)
	// Counts are grouped by application week, not by the week of the change.
	txn.AddStep("invalidate_funnel_week",
		func(ctx context.Context) error { return uc.Funnel.Invalidate(ctx, applicant.ApplicationDate) },
		nil,
	)

	if err := txn.Execute(ctx); err != nil {
		if updated {
			return nil, &TechnicalError{Code: CodeFunnel, Message: "funnel cache not invalidated, workflow state change rolled back", Err: err}
		}
		return nil, &TechnicalError{Code: CodeDatabase, Message: "failed to update workflow state", Err: err}
	}

	log.Info().
		Str("applicant_id", applicant.ID).
		Str("from", string(previous)).
		Str("to", string(state)).
		Msg("workflow state changed")

	return NewApplicationOutput(applicant), nil
}
