package fiber

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"event-quality-service/internal/quality/core/domain"
	"event-quality-service/internal/records/core/usecase"
)

type StoreRecordsUseCase interface {
	Execute(ctx context.Context, in usecase.StoreRecordInput) (usecase.StoreRecordsResult, error)
	BulkStore(ctx context.Context, in []usecase.StoreRecordInput) (usecase.StoreRecordsResult, error)
}

var validate = validator.New()

type RecordHandler struct {
	storeUC StoreRecordsUseCase
	logger  *zap.Logger
}

func NewRecordHandler(storeUC StoreRecordsUseCase, logger *zap.Logger) *RecordHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecordHandler{storeUC: storeUC, logger: logger}
}

// CreateRecord godoc
// @Summary Store one event record
// @Description Appends a raw event row; rows repeating a primary key collapse in reports
// @Tags Records
// @Accept json
// @Produce json
// @Param request body CreateRecordRequest true "Event record"
// @Success 201 {object} CreateRecordsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/records [post]
func (h *RecordHandler) CreateRecord(c *fiber.Ctx) error {
	var req CreateRecordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_json",
			Message: "request body is not valid JSON",
		})
	}
	if err := validate.Struct(req); err != nil {
		return invalidRecord(c, describeValidation(err))
	}

	res, err := h.storeUC.Execute(c.UserContext(), toInput(req))
	if err != nil {
		return h.writeError(c, err)
	}
	return c.Status(http.StatusCreated).JSON(CreateRecordsResponse{Accepted: res.Accepted, Stored: res.Stored})
}

// BulkCreateRecords godoc
// @Summary Store a batch of event records
// @Description Validates every record first; one invalid record rejects the batch
// @Tags Records
// @Accept json
// @Produce json
// @Param request body BulkCreateRecordsRequest true "Event records"
// @Success 201 {object} CreateRecordsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/records/bulk [post]
func (h *RecordHandler) BulkCreateRecords(c *fiber.Ctx) error {
	var req BulkCreateRecordsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_json",
			Message: "request body is not valid JSON",
		})
	}
	if err := validate.Struct(req); err != nil {
		return invalidRecord(c, describeValidation(err))
	}

	inputs := make([]usecase.StoreRecordInput, len(req.Records))
	for i, r := range req.Records {
		inputs[i] = toInput(r)
	}

	res, err := h.storeUC.BulkStore(c.UserContext(), inputs)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.Status(http.StatusCreated).JSON(CreateRecordsResponse{Accepted: res.Accepted, Stored: res.Stored})
}

func toInput(r CreateRecordRequest) usecase.StoreRecordInput {
	date, _ := time.Parse(domain.DateLayout, r.EventDate)
	return usecase.StoreRecordInput{
		PrimaryKey:             r.PrimaryKey,
		EventName:              r.EventName,
		ExpectedEventName:      r.ExpectedEventName,
		EventDate:              date,
		EventTimestamp:         r.EventTimestamp,
		HasMissingParams:       r.HasMissingParams,
		MissingEventInGA4:      r.MissingEventInGA4,
		MissingEventParams:     r.MissingEventParams,
		MissingUserParams:      r.MissingUserParams,
		MissingItemParams:      r.MissingItemParams,
		MissingEcommerceParams: r.MissingEcommerceParams,
		UserPseudoID:           r.UserPseudoID,
		SessionID:              r.SessionID,
		DeviceCategory:         r.DeviceCategory,
		DeviceOperatingSystem:  r.DeviceOperatingSystem,
		DeviceBrowser:          r.DeviceBrowser,
		PageLocation:           r.PageLocation,
	}
}

func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Sprintf("%s failed %s", fe.Namespace(), fe.Tag())
	}
	return err.Error()
}

func invalidRecord(c *fiber.Ctx, msg string) error {
	return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
		Error:   "invalid_record",
		Message: msg,
	})
}

func (h *RecordHandler) writeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidRecord),
		errors.Is(err, usecase.ErrFutureTime),
		errors.Is(err, usecase.ErrEmptyBatch),
		errors.Is(err, usecase.ErrBatchTooLarge):
		return invalidRecord(c, err.Error())
	default:
		h.logger.Error("storing records failed", zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "internal_server_error",
			Message: "records could not be stored",
		})
	}
}
