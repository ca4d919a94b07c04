package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/xavierca1/shopper-funnel/internal/usecase"
)

type ValidationHandler struct {
	UC *usecase.CheckAvailabilityUseCase
}

func NewValidationHandler(uc *usecase.CheckAvailabilityUseCase) *ValidationHandler {
	return &ValidationHandler{UC: uc}
}

// Handle answers POST /applicants/validate with 409 when email or phone is taken.
func (h *ValidationHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var input usecase.CheckAvailabilityInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "invalid JSON body")
		return
	}

	if err := h.UC.Execute(r.Context(), input); err != nil {
		writeUseCaseError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
