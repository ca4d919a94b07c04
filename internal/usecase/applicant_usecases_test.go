package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/shopper-funnel/internal/entity"
)

func storedApplicant() *entity.Applicant {
	return &entity.Applicant{
		ID:              "a1",
		Name:            "Maria Lopez",
		Email:           "maria@example.com",
		Phone:           "4155550100",
		City:            "San Jose",
		Region:          "CA",
		ApplicationDate: day("2021-01-07"),
		WorkflowState:   entity.StateApplied,
	}
}

// TestGetApplication - lookup is case insensitive on email
func TestGetApplication(t *testing.T) {
	repo := new(MockApplicantRepository)
	repo.On("FindByEmail", mock.Anything, "maria@example.com").Return(storedApplicant(), nil)

	out, err := NewGetApplicationUseCase(repo).Execute(context.Background(), "MARIA@example.com")

	require.NoError(t, err)
	assert.Equal(t, "2021-01-07", out.ApplicationDate)
	assert.Equal(t, "applied", out.WorkflowState)
}

// TestGetApplicationErrors - empty email, unknown email and database failure map to distinct errors
func TestGetApplicationErrors(t *testing.T) {
	repo := new(MockApplicantRepository)
	repo.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, entity.ErrApplicantNotFound)
	repo.On("FindByEmail", mock.Anything, "boom@example.com").Return(nil, errors.New("conn reset"))
	uc := NewGetApplicationUseCase(repo)

	_, err := uc.Execute(context.Background(), "  ")
	assert.Equal(t, CodeValidation, ErrorCode(err))

	_, err = uc.Execute(context.Background(), "ghost@example.com")
	assert.Equal(t, CodeApplicantNotFound, ErrorCode(err))
	assert.True(t, IsDomainError(err))

	_, err = uc.Execute(context.Background(), "boom@example.com")
	assert.True(t, IsTechnicalError(err))
}

// TestCheckAvailability - free identifiers pass, taken ones conflict, empty input is invalid
func TestCheckAvailability(t *testing.T) {
	repo := new(MockApplicantRepository)
	repo.On("ExistsByEmail", mock.Anything, "maria@example.com").Return(false, nil)
	repo.On("ExistsByPhone", mock.Anything, "4155550100").Return(true, nil)
	uc := NewCheckAvailabilityUseCase(repo)

	assert.NoError(t, uc.Execute(context.Background(), CheckAvailabilityInput{Email: "maria@example.com"}))

	err := uc.Execute(context.Background(), CheckAvailabilityInput{Email: "maria@example.com", Phone: "415-555-0100"})
	assert.Equal(t, CodePhoneAlreadyRegistered, ErrorCode(err))

	err = uc.Execute(context.Background(), CheckAvailabilityInput{})
	assert.Equal(t, CodeValidation, ErrorCode(err))
}

// TestUpdateApplicant - contact details change, state and date do not
func TestUpdateApplicant(t *testing.T) {
	repo := new(MockApplicantRepository)
	repo.On("FindByEmail", mock.Anything, "maria@example.com").Return(storedApplicant(), nil)
	repo.On("ExistsByPhone", mock.Anything, "6505550199").Return(false, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(a *entity.Applicant) bool {
		return a.Phone == "6505550199" && a.City == "Menlo Park" && a.WorkflowState == entity.StateApplied
	})).Return(nil)

	out, err := NewUpdateApplicantUseCase(repo).Execute(context.Background(), UpdateApplicantInput{
		Email:  "maria@example.com",
		Name:   "Maria Lopez",
		Phone:  "650 555 0199",
		City:   "Menlo Park",
		Region: "CA",
	})

	require.NoError(t, err)
	assert.Equal(t, "Menlo Park", out.City)
	assert.Equal(t, "2021-01-07", out.ApplicationDate)
	repo.AssertExpectations(t)
}

// TestUpdateApplicantPhoneTaken - moving to another applicant's phone is rejected
func TestUpdateApplicantPhoneTaken(t *testing.T) {
	repo := new(MockApplicantRepository)
	repo.On("FindByEmail", mock.Anything, "maria@example.com").Return(storedApplicant(), nil)
	repo.On("ExistsByPhone", mock.Anything, "6505550199").Return(true, nil)

	_, err := NewUpdateApplicantUseCase(repo).Execute(context.Background(), UpdateApplicantInput{
		Email: "maria@example.com", Name: "Maria Lopez", Phone: "6505550199", City: "San Jose", Region: "CA",
	})

	assert.Equal(t, CodePhoneAlreadyRegistered, ErrorCode(err))
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

// TestUpdateApplicantSamePhoneSkipsCheck - keeping the same phone does not query uniqueness
func TestUpdateApplicantSamePhoneSkipsCheck(t *testing.T) {
	repo := new(MockApplicantRepository)
	repo.On("FindByEmail", mock.Anything, "maria@example.com").Return(storedApplicant(), nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil)

	_, err := NewUpdateApplicantUseCase(repo).Execute(context.Background(), UpdateApplicantInput{
		Email: "maria@example.com", Name: "Maria L.", Phone: "4155550100", City: "San Jose", Region: "CA",
	})

	require.NoError(t, err)
	repo.AssertNotCalled(t, "ExistsByPhone", mock.Anything, mock.Anything)
}

// TestAdvanceWorkflowInvalidatesApplicationWeek - the week of the application date is dropped, not today's
func TestAdvanceWorkflowInvalidatesApplicationWeek(t *testing.T) {
	repo := new(MockApplicantRepository)
	funnel := new(MockFunnelInvalidator)
	repo.On("FindByEmail", mock.Anything, "maria@example.com").Return(storedApplicant(), nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(a *entity.Applicant) bool {
		return a.WorkflowState == entity.StateHired
	})).Return(nil)
	funnel.On("Invalidate", mock.Anything, day("2021-01-07")).Return(nil)

	out, err := NewAdvanceWorkflowUseCase(repo, funnel).Execute(context.Background(), AdvanceWorkflowInput{
		Email: "maria@example.com", State: "hired",
	})

	require.NoError(t, err)
	assert.Equal(t, "hired", out.WorkflowState)
	funnel.AssertExpectations(t)
}

// TestAdvanceWorkflowRetryAfterFailedInvalidation - a failed invalidation rolls the state back so a retry invalidates again
func TestAdvanceWorkflowRetryAfterFailedInvalidation(t *testing.T) {
	ctx := context.Background()
	repo := new(MockApplicantRepository)
	funnel := new(MockFunnelInvalidator)

	storedState := entity.StateApplied
	repo.On("FindByEmail", mock.Anything, "maria@example.com").Return(storedApplicant(), nil).Once()
	repo.On("FindByEmail", mock.Anything, "maria@example.com").Return(storedApplicant(), nil).Once()
	repo.On("Update", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { storedState = args.Get(1).(*entity.Applicant).WorkflowState }).
		Return(nil)
	funnel.On("Invalidate", mock.Anything, day("2021-01-07")).Return(errors.New("redis timeout")).Once()
	funnel.On("Invalidate", mock.Anything, day("2021-01-07")).Return(nil).Once()

	uc := NewAdvanceWorkflowUseCase(repo, funnel)
	input := AdvanceWorkflowInput{Email: "maria@example.com", State: "hired"}

	_, err := uc.Execute(ctx, input)
	require.Error(t, err)
	assert.Equal(t, CodeFunnel, ErrorCode(err))
	assert.Equal(t, entity.StateApplied, storedState)

	out, err := uc.Execute(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, "hired", out.WorkflowState)
	assert.Equal(t, entity.StateHired, storedState)
	funnel.AssertNumberOfCalls(t, "Invalidate", 2)
	funnel.AssertExpectations(t)
}

// TestAdvanceWorkflowUpdateFailure - nothing is invalidated when the state cannot be saved
func TestAdvanceWorkflowUpdateFailure(t *testing.T) {
	repo := new(MockApplicantRepository)
	funnel := new(MockFunnelInvalidator)
	repo.On("FindByEmail", mock.Anything, "maria@example.com").Return(storedApplicant(), nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(errors.New("db down"))

	_, err := NewAdvanceWorkflowUseCase(repo, funnel).Execute(context.Background(), AdvanceWorkflowInput{
		Email: "maria@example.com", State: "hired",
	})

	assert.Equal(t, CodeDatabase, ErrorCode(err))
	funnel.AssertNotCalled(t, "Invalidate", mock.Anything, mock.Anything)
}

// TestAdvanceWorkflowUnknownState - states outside the pipeline are rejected before lookup
func TestAdvanceWorkflowUnknownState(t *testing.T) {
	repo := new(MockApplicantRepository)

	_, err := NewAdvanceWorkflowUseCase(repo, new(MockFunnelInvalidator)).Execute(context.Background(), AdvanceWorkflowInput{
		Email: "maria@example.com", State: "interviewing",
	})

	assert.Equal(t, CodeInvalidWorkflowState, ErrorCode(err))
	repo.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
}

// TestAdvanceWorkflowSameStateIsNoop - no write and no invalidation when the state does not change
func TestAdvanceWorkflowSameStateIsNoop(t *testing.T) {
	repo := new(MockApplicantRepository)
	funnel := new(MockFunnelInvalidator)
	repo.On("FindByEmail", mock.Anything, "maria@example.com").Return(storedApplicant(), nil)

	_, err := NewAdvanceWorkflowUseCase(repo, funnel).Execute(context.Background(), AdvanceWorkflowInput{
		Email: "maria@example.com", State: "applied",
	})

	require.NoError(t, err)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	funnel.AssertNotCalled(t, "Invalidate", mock.Anything, mock.Anything)
}

// TestTransactionRollsBackInReverse - completed steps are compensated newest first
func TestTransactionRollsBackInReverse(t *testing.T) {
	var undone []string
	txn := NewTransaction()
	txn.AddStep("first", func(context.Context) error { return nil }, func(context.Context) error {
		undone = append(undone, "first")
		return nil
	})
	txn.AddStep("second", func(context.Context) error { return nil }, func(context.Context) error {
		undone = append(undone, "second")
		return errors.New("compensation failed")
	})
	txn.AddStep("no_undo", func(context.Context) error { return nil }, nil)
	boom := errors.New("boom")
	txn.AddStep("third", func(context.Context) error { return boom }, func(context.Context) error {
		undone = append(undone, "third")
		return nil
	})

	err := txn.Execute(context.Background())

	assert.ErrorIs(t, err, boom)
	assert.ErrorContains(t, err, "'third'")
	assert.Equal(t, []string{"second", "first"}, undone)
}

// TestTransactionAllStepsSucceed - every step runs once when none fails
func TestTransactionAllStepsSucceed(t *testing.T) {
	ran := 0
	txn := NewTransaction()
	for range 3 {
		txn.AddStep("step", func(context.Context) error { ran++; return nil }, nil)
	}

	require.NoError(t, txn.Execute(context.Background()))
	assert.Equal(t, 3, ran)
}

