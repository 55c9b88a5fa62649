package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"event-quality-service/internal/platform/telemetry"
	"event-quality-service/internal/quality/core/domain"
	"event-quality-service/internal/records/core/ports"
)

var (
	ErrFutureTime    = errors.New("event date cannot be in the future")
	ErrEmptyBatch    = errors.New("records list is required")
	ErrBatchTooLarge = errors.New("too many records in one batch")
)

const DefaultMaxBatchSize = 5000

type StoreRecordsUseCase struct {
	writer       ports.EventRecordWriter
	maxBatchSize int
	clock        func() time.Time
	logger       *zap.Logger
}

func NewStoreRecordsUseCase(writer ports.EventRecordWriter, maxBatchSize int, clock func() time.Time, logger *zap.Logger) *StoreRecordsUseCase {
	if maxBatchSize <= 0 {
		maxBatchSize = DefaultMaxBatchSize
	}
	if clock == nil {
		clock = time.Now
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StoreRecordsUseCase{writer: writer, maxBatchSize: maxBatchSize, clock: clock, logger: logger}
}

// StoreRecordInput is one raw row as sent by an exporter.
type StoreRecordInput struct {
	PrimaryKey        string
	EventName         string
	ExpectedEventName string
	EventDate         time.Time
	// EventTimestamp is in microseconds since the epoch; 0 means unknown.
	EventTimestamp int64

	HasMissingParams  bool
	MissingEventInGA4 bool

	MissingEventParams     []string
	MissingUserParams      []string
	MissingItemParams      []string
	MissingEcommerceParams []string

	UserPseudoID          string
	SessionID             string
	DeviceCategory        string
	DeviceOperatingSystem string
	DeviceBrowser         string
	PageLocation          string
}

type StoreRecordsResult struct {
	Accepted int
	Stored   int64
}

func (uc *StoreRecordsUseCase) Execute(ctx context.Context, in StoreRecordInput) (StoreRecordsResult, error) {
	return uc.BulkStore(ctx, []StoreRecordInput{in})
}

// BulkStore validates every row before writing any. One bad row rejects the
// whole batch.
func (uc *StoreRecordsUseCase) BulkStore(ctx context.Context, in []StoreRecordInput) (StoreRecordsResult, error) {
	var res StoreRecordsResult

	if len(in) == 0 {
		return res, ErrEmptyBatch
	}
	if len(in) > uc.maxBatchSize {
		return res, fmt.Errorf("%w: %d > %d", ErrBatchTooLarge, len(in), uc.maxBatchSize)
	}

	records := make([]domain.EventRecord, len(in))
	for i, raw := range in {
		rec, err := uc.toRecord(raw)
		if err != nil {
			return res, fmt.Errorf("record %d: %w", i, err)
		}
		records[i] = rec
	}

	stored, err := uc.writer.InsertRecords(ctx, records)
	if err != nil {
		uc.logger.Error("storing event records failed", zap.Int("records", len(records)), zap.Error(err))
		return res, err
	}

	telemetry.RecordsIngested.Add(float64(stored))
	res.Accepted = len(records)
	res.Stored = stored
	return res, nil
}

func (uc *StoreRecordsUseCase) toRecord(in StoreRecordInput) (domain.EventRecord, error) {
	rec := domain.NormalizeRecord(domain.EventRecord{
		PrimaryKey:             in.PrimaryKey,
		EventName:              in.EventName,
		ExpectedEventName:      in.ExpectedEventName,
		EventDate:              in.EventDate,
		HasMissingParams:       in.HasMissingParams,
		MissingEventInGA4:      in.MissingEventInGA4,
		MissingEventParams:     in.MissingEventParams,
		MissingUserParams:      in.MissingUserParams,
		MissingItemParams:      in.MissingItemParams,
		MissingEcommerceParams: in.MissingEcommerceParams,
		UserPseudoID:           in.UserPseudoID,
		SessionID:              in.SessionID,
		DeviceCategory:         in.DeviceCategory,
		DeviceOperatingSystem:  in.DeviceOperatingSystem,
		DeviceBrowser:          in.DeviceBrowser,
		PageLocation:           in.PageLocation,
	})
	if in.EventTimestamp > 0 {
		rec.EventTimestamp = time.UnixMicro(in.EventTimestamp).UTC()
	}
	// a row listing missing parameters has missing parameters
	if len(rec.MissingEventParams)+len(rec.MissingUserParams)+len(rec.MissingItemParams)+len(rec.MissingEcommerceParams) > 0 {
		rec.HasMissingParams = true
	}

	if err := domain.ValidateRecord(rec); err != nil {
		return domain.EventRecord{}, err
	}
	if rec.EventDate.After(domain.Day(uc.clock())) {
		return domain.EventRecord{}, ErrFutureTime
	}
	return rec, nil
}
