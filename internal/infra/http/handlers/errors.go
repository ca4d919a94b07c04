package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/xavierca1/shopper-funnel/internal/usecase"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

func writeErrorResponse(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: code, Message: message})
}

// writeUseCaseError maps use case errors to HTTP responses. Technical errors
// are logged here and never leak their cause to the client.
func writeUseCaseError(w http.ResponseWriter, r *http.Request, err error) {
	var de *usecase.DomainError
	if errors.As(err, &de) {
		writeErrorResponse(w, domainStatus(de.Code), de.Code, de.Message)
		return
	}

	code := usecase.ErrorCode(err)
	if code == "" {
		code = "INTERNAL_ERROR"
	}
	log.Error().Err(err).Str("code", code).Str("path", r.URL.Path).Msg("request failed")
	writeErrorResponse(w, http.StatusInternalServerError, code, "internal server error")
}

func domainStatus(code string) int {
	switch code {
	case usecase.CodeApplicantNotFound:
		return http.StatusNotFound
	case usecase.CodeEmailAlreadyRegistered, usecase.CodePhoneAlreadyRegistered:
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}
