package handlers

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/shopper-funnel/internal/usecase"
)

type ApplicantHandler struct {
	RegisterUC *usecase.RegisterApplicantUseCase
	GetUC      *usecase.GetApplicationUseCase
	UpdateUC   *usecase.UpdateApplicantUseCase
	AdvanceUC  *usecase.AdvanceWorkflowUseCase
}

func NewApplicantHandler(
	register *usecase.RegisterApplicantUseCase,
	get *usecase.GetApplicationUseCase,
	update *usecase.UpdateApplicantUseCase,
	advance *usecase.AdvanceWorkflowUseCase,
) *ApplicantHandler {
	return &ApplicantHandler{
		RegisterUC: register,
		GetUC:      get,
		UpdateUC:   update,
		AdvanceUC:  advance,
	}
}

// Register handles POST /applicants.
func (h *ApplicantHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input usecase.RegisterApplicantInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "invalid JSON body")
		return
	}

	output, err := h.RegisterUC.Execute(r.Context(), input)
	if err != nil {
		writeUseCaseError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, output)
}

// Get handles GET /applicants?email=
func (h *ApplicantHandler) Get(w http.ResponseWriter, r *http.Request) {
	output, err := h.GetUC.Execute(r.Context(), r.URL.Query().Get("email"))
	if err != nil {
		writeUseCaseError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, output)
}

// Update handles PUT /applicants/{email}.
func (h *ApplicantHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input usecase.UpdateApplicantInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "invalid JSON body")
		return
	}
	input.Email = emailParam(r)

	output, err := h.UpdateUC.Execute(r.Context(), input)
	if err != nil {
		writeUseCaseError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, output)
}

// AdvanceState handles PATCH /applicants/{email}/state.
func (h *ApplicantHandler) AdvanceState(w http.ResponseWriter, r *http.Request) {
	var input usecase.AdvanceWorkflowInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "invalid JSON body")
		return
	}
	input.Email = emailParam(r)

	output, err := h.AdvanceUC.Execute(r.Context(), input)
	if err != nil {
		writeUseCaseError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, output)
}

func emailParam(r *http.Request) string {
	raw := chi.URLParam(r, "email")
	if email, err := url.PathUnescape(raw); err == nil {
		return email
	}
	return raw
}
