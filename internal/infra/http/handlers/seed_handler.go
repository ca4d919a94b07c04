package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/shopper-funnel/internal/usecase"
)

type SeedHandler struct {
	UC *usecase.SeedApplicantsUseCase
}

func NewSeedHandler(uc *usecase.SeedApplicantsUseCase) *SeedHandler {
	return &SeedHandler{UC: uc}
}

// Handle serves POST /seed_data/{count}.
func (h *SeedHandler) Handle(w http.ResponseWriter, r *http.Request) {
	count, err := strconv.Atoi(chi.URLParam(r, "count"))
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, usecase.CodeInvalidCount, "count must be a number")
		return
	}

	output, err := h.UC.Execute(r.Context(), count)
	if err != nil {
		writeUseCaseError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, output)
}
