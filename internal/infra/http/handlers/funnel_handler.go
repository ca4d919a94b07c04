package handlers

import (
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/xavierca1/shopper-funnel/internal/usecase"
)

type FunnelHandler struct {
	UC *usecase.GenerateFunnelReportUseCase
}

func NewFunnelHandler(uc *usecase.GenerateFunnelReportUseCase) *FunnelHandler {
	return &FunnelHandler{UC: uc}
}

// Handle serves GET /funnel.json?start_date=YYYY-MM-DD&end_date=YYYY-MM-DD.
// Any other query parameter, or a repeated one, is rejected.
func (h *FunnelHandler) Handle(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if len(q) != 2 || len(q["start_date"]) != 1 || len(q["end_date"]) != 1 {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_PARAMS",
			"invalid params, expected exactly start_date and end_date")
		return
	}

	input := usecase.GenerateFunnelReportInput{
		StartDate: q.Get("start_date"),
		EndDate:   q.Get("end_date"),
	}

	started := time.Now()
	report, err := h.UC.Execute(r.Context(), input)
	if err != nil {
		writeUseCaseError(w, r, err)
		return
	}

	log.Info().
		Str("start_date", input.StartDate).
		Str("end_date", input.EndDate).
		Int("weeks", report.Len()).
		Dur("took", time.Since(started)).
		Msg("funnel report generated")

	writeJSON(w, http.StatusOK, report)
}
