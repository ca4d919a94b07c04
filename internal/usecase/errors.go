package usecase

import "errors"

const (
	CodeValidation             = "VALIDATION_ERROR"
	CodeInvalidDateRange       = "INVALID_DATE_RANGE"
	CodeEmailAlreadyRegistered = "EMAIL_ALREADY_REGISTERED"
	CodePhoneAlreadyRegistered = "PHONE_ALREADY_REGISTERED"
	CodeApplicantNotFound      = "APPLICANT_NOT_FOUND"
	CodeInvalidWorkflowState   = "INVALID_WORKFLOW_STATE"
	CodeInvalidCount           = "INVALID_COUNT"
	CodeDatabase               = "DATABASE_ERROR"
	CodeFunnel                 = "FUNNEL_ERROR"
)

// DomainError is caused by the caller's input and is safe to show to them.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}

// TechnicalError wraps an infrastructure failure. Err is kept for logging.
type TechnicalError struct {
	Code    string
	Message string
	Err     error
}

func (e *TechnicalError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *TechnicalError) Unwrap() error {
	return e.Err
}

func IsTechnicalError(err error) bool {
	var te *TechnicalError
	return errors.As(err, &te)
}

// ErrorCode returns the Code of a DomainError or TechnicalError, or "" for anything else.
func ErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	var te *TechnicalError
	if errors.As(err, &te) {
		return te.Code
	}
	return ""
}

// IsInvalidDateRange reports whether err rejected a funnel request's dates.
func IsInvalidDateRange(err error) bool {
	return ErrorCode(err) == CodeInvalidDateRange && IsDomainError(err)
}

func newInvalidDateRange(msg string) *DomainError {
	return &DomainError{Code: CodeInvalidDateRange, Message: msg}
}
