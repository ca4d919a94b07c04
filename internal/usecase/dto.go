package usecase

import "github.com/xavierca1/shopper-funnel/internal/entity"

type GenerateFunnelReportInput struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type RegisterApplicantInput struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
	City   string `json:"city"`
	Region string `json:"region"`
}

type RegisterApplicantOutput struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	WorkflowState   string `json:"workflow_state"`
	ApplicationDate string `json:"application_date"`
	Msg             string `json:"msg"`
}

type CheckAvailabilityInput struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type UpdateApplicantInput struct {
	Email  string `json:"-"`
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	City   string `json:"city"`
	Region string `json:"region"`
}

type AdvanceWorkflowInput struct {
	Email string `json:"-"`
	State string `json:"workflow_state"`
}

type ApplicationOutput struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	City            string `json:"city"`
	Region          string `json:"region"`
	ApplicationDate string `json:"application_date"`
	WorkflowState   string `json:"workflow_state"`
}

func NewApplicationOutput(a *entity.Applicant) *ApplicationOutput {
	return &ApplicationOutput{
		ID:              a.ID,
		Name:            a.Name,
		Email:           a.Email,
		Phone:           a.Phone,
		City:            a.City,
		Region:          a.Region,
		ApplicationDate: a.ApplicationDate.Format(entity.DateLayout),
		WorkflowState:   string(a.WorkflowState),
	}
}

type SeedApplicantsOutput struct {
	Requested int `json:"requested"`
	Inserted  int `json:"inserted"`
	Attempts  int `json:"attempts"`
}
