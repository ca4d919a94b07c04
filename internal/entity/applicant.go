package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmailAlreadyExists   = errors.New("email already registered")
	ErrPhoneAlreadyExists   = errors.New("phone already registered")
	ErrApplicantNotFound    = errors.New("applicant not found")
	ErrInvalidWorkflowState = errors.New("invalid workflow state")
)

// WorkflowState is the stage of an applicant in the hiring pipeline.
type WorkflowState string

const (
	StateApplied             WorkflowState = "applied"
	StateQuizStarted         WorkflowState = "quiz_started"
	StateQuizCompleted       WorkflowState = "quiz_completed"
	StateOnboardingRequested WorkflowState = "onboarding_requested"
	StateOnboardingCompleted WorkflowState = "onboarding_completed"
	StateHired               WorkflowState = "hired"
	StateRejected            WorkflowState = "rejected"
)

// WorkflowStates lists every state in pipeline order.
var WorkflowStates = []WorkflowState{
	StateApplied,
	StateQuizStarted,
	StateQuizCompleted,
	StateOnboardingRequested,
	StateOnboardingCompleted,
	StateHired,
	StateRejected,
}

func ParseWorkflowState(s string) (WorkflowState, error) {
	for _, st := range WorkflowStates {
		if string(st) == s {
			return st, nil
		}
	}
	return "", ErrInvalidWorkflowState
}

// Applicant is a prospective shopper. Email and phone are unique across applicants.
type Applicant struct {
	ID              string        `json:"id"`
	Name            string        `json:"name"`
	Email           string        `json:"email"`
	Phone           string        `json:"phone"`
	City            string        `json:"city"`
	Region          string        `json:"region"`
	ApplicationDate time.Time     `json:"application_date"`
	WorkflowState   WorkflowState `json:"workflow_state"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// NewApplicant builds an applicant that applied today and starts in the applied state.
func NewApplicant(name, email, phone, city, region string) (*Applicant, error) {
	now := time.Now().UTC()
	a := &Applicant{
		ID:              uuid.New().String(),
		Name:            name,
		Email:           email,
		Phone:           phone,
		City:            city,
		Region:          region,
		ApplicationDate: TruncateToDate(now),
		WorkflowState:   StateApplied,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *Applicant) Validate() error {
	if a.Name == "" {
		return errors.New("name is required")
	}
	if a.Email == "" {
		return errors.New("email is required")
	}
	if a.Phone == "" {
		return errors.New("phone is required")
	}
	if _, err := ParseWorkflowState(string(a.WorkflowState)); err != nil {
		return err
	}
	return nil
}

// ApplicantRepositoryInterface is the persistence contract for applicants.
type ApplicantRepositoryInterface interface {
	Create(ctx context.Context, a *Applicant) error
	Delete(ctx context.Context, id string) error
	Update(ctx context.Context, a *Applicant) error
	FindByEmail(ctx context.Context, email string) (*Applicant, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByPhone(ctx context.Context, phone string) (bool, error)
}
