package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/xavierca1/shopper-funnel/internal/entity"
)

type GenerateFunnelReportUseCase struct {
	Aggregator *FunnelAggregator
}

func NewGenerateFunnelReportUseCase(aggregator *FunnelAggregator) *GenerateFunnelReportUseCase {
	return &GenerateFunnelReportUseCase{Aggregator: aggregator}
}

// Execute validates the requested range and returns the weekly funnel report.
// Bad dates fail with an INVALID_DATE_RANGE DomainError; anything else the
// cache or database returns comes back as a TechnicalError.
func (uc *GenerateFunnelReportUseCase) Execute(ctx context.Context, input GenerateFunnelReportInput) (*entity.FunnelReport, error) {
	start, end, err := parseDateRange(input.StartDate, input.EndDate)
	if err != nil {
		return nil, err
	}

	report, err := uc.Aggregator.Aggregate(ctx, start, end)
	if err != nil {
		return nil, &TechnicalError{
			Code:    CodeFunnel,
			Message: "failed to generate funnel report",
			Err:     err,
		}
	}
	return report, nil
}

func parseDateRange(startStr, endStr string) (time.Time, time.Time, error) {
	start, errStart := time.Parse(entity.DateLayout, startStr)
	end, errEnd := time.Parse(entity.DateLayout, endStr)
	if errStart != nil || errEnd != nil {
		return time.Time{}, time.Time{}, newInvalidDateRange(fmt.Sprintf(
			"input dates are invalid, expected YYYY-MM-DD. start_date: %q, end_date: %q", startStr, endStr,
		))
	}

	if start.After(end) {
		return time.Time{}, time.Time{}, newInvalidDateRange(fmt.Sprintf(
			"input dates are invalid, start_date %s cannot be after end_date %s", startStr, endStr,
		))
	}
	return start, end, nil
}
