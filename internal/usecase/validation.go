package usecase

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
)

var (
	nonDigits  = regexp.MustCompile(`\D`)
	regionCode = regexp.MustCompile(`^[A-Z]{2}$`)
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func ValidateRegisterApplicantInput(input RegisterApplicantInput) []ValidationError {
	var errors []ValidationError

	errors = append(errors, validateName(input.Name)...)

	if strings.TrimSpace(input.Email) == "" {
		errors = append(errors, ValidationError{"email", "is required"})
	} else if _, err := mail.ParseAddress(input.Email); err != nil {
		errors = append(errors, ValidationError{"email", "is invalid"})
	}

	errors = append(errors, validatePhone(input.Phone)...)
	errors = append(errors, validateLocation(input.City, input.Region)...)

	return errors
}

func ValidateUpdateApplicantInput(input UpdateApplicantInput) []ValidationError {
	var errors []ValidationError

	errors = append(errors, validateName(input.Name)...)
	errors = append(errors, validatePhone(input.Phone)...)
	errors = append(errors, validateLocation(input.City, input.Region)...)

	return errors
}

func validateName(name string) []ValidationError {
	name = strings.TrimSpace(name)
	switch {
	case name == "":
		return []ValidationError{{"name", "is required"}}
	case len(name) < 2:
		return []ValidationError{{"name", "must have at least 2 characters"}}
	case len(name) > 100:
		return []ValidationError{{"name", "must not exceed 100 characters"}}
	}
	return nil
}

func validatePhone(phone string) []ValidationError {
	if strings.TrimSpace(phone) == "" {
		return []ValidationError{{"phone", "is required"}}
	}
	if !isValidPhoneNumber(phone) {
		return []ValidationError{{"phone", "must be a valid 10 digit phone number"}}
	}
	return nil
}

func validateLocation(city, region string) []ValidationError {
	var errors []ValidationError
	if strings.TrimSpace(city) == "" {
		errors = append(errors, ValidationError{"city", "is required"})
	} else if len(city) > 100 {
		errors = append(errors, ValidationError{"city", "must not exceed 100 characters"})
	}
	if strings.TrimSpace(region) == "" {
		errors = append(errors, ValidationError{"region", "is required"})
	} else if !regionCode.MatchString(normalizeRegion(region)) {
		errors = append(errors, ValidationError{"region", "must be a 2 letter state code"})
	}
	return errors
}

// validationDomainError folds field errors into one VALIDATION_ERROR.
func validationDomainError(errs []ValidationError) *DomainError {
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		parts = append(parts, e.Field+" ("+e.Message+")")
	}
	return &DomainError{
		Code:    CodeValidation,
		Message: "validation failed: " + strings.Join(parts, ", "),
	}
}

func isValidPhoneNumber(phone string) bool {
	return len(normalizePhone(phone)) == 10
}

func normalizePhone(phone string) string {
	return nonDigits.ReplaceAllString(phone, "")
}

func normalizeRegion(region string) string {
	return strings.ToUpper(strings.TrimSpace(region))
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
