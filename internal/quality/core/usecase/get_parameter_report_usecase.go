package usecase

import (
	"context"

	"event-quality-service/internal/quality/core/domain"
	"event-quality-service/internal/quality/core/engine"
	"event-quality-service/internal/quality/core/ports"
)

type GetParameterReportUseCase struct {
	store    ports.EventRecordStore
	settings Settings
}

func NewGetParameterReportUseCase(store ports.EventRecordStore, s Settings) *GetParameterReportUseCase {
	return &GetParameterReportUseCase{store: store, settings: s.withDefaults()}
}

// Execute returns the most frequently missing parameters of the scope.
// in.Limit overrides the configured top-N.
func (uc *GetParameterReportUseCase) Execute(ctx context.Context, in ReportInput) (*domain.ParameterReport, error) {
	q, err := resolveQuery(ctx, uc.store, uc.settings, in)
	if err != nil {
		return nil, err
	}
	q.ExpectedEventName = eventFilter(in.EventName)

	records, err := fetchDeduplicated(ctx, uc.store, ports.RecordFilter{
		Range:             q.Range,
		ExpectedEventName: q.ExpectedEventName,
	})
	if err != nil {
		return nil, err
	}

	params, err := engine.AggregateByParameter(ctx, records, q.Thresholds, q.TopParameters)
	if err != nil {
		return nil, err
	}

	return &domain.ParameterReport{
		Range:       q.Range,
		EventName:   q.ExpectedEventName,
		TotalEvents: int64(len(records)),
		Parameters:  params,
	}, nil
}
