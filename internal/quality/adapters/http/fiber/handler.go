package fiber

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"event-quality-service/internal/platform/telemetry"
	"event-quality-service/internal/quality/core/domain"
	"event-quality-service/internal/quality/core/usecase"
)

type GetTrackingReportUseCase interface {
	Execute(ctx context.Context, in usecase.ReportInput) (*domain.TrackingReport, error)
}

type GetParameterReportUseCase interface {
	Execute(ctx context.Context, in usecase.ReportInput) (*domain.ParameterReport, error)
}

type GetAnomalyReportUseCase interface {
	Execute(ctx context.Context, in usecase.ReportInput) (*domain.AnomalyReport, error)
}

type GetDashboardUseCase interface {
	Execute(ctx context.Context, in usecase.ReportInput) (*domain.Dashboard, error)
}

type GetRealtimeUseCase interface {
	Execute(ctx context.Context) (*domain.RealtimeReport, error)
}

// statusClientClosedRequest is nginx's code for a client that went away.
const statusClientClosedRequest = 499

var validate = validator.New()

type QualityHandler struct {
	tracking   GetTrackingReportUseCase
	parameters GetParameterReportUseCase
	anomalies  GetAnomalyReportUseCase
	dashboard  GetDashboardUseCase
	realtime   GetRealtimeUseCase
	logger     *zap.Logger
}

func NewQualityHandler(
	tracking GetTrackingReportUseCase,
	parameters GetParameterReportUseCase,
	anomalies GetAnomalyReportUseCase,
	dashboard GetDashboardUseCase,
	realtime GetRealtimeUseCase,
	logger *zap.Logger,
) *QualityHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QualityHandler{
		tracking:   tracking,
		parameters: parameters,
		anomalies:  anomalies,
		dashboard:  dashboard,
		realtime:   realtime,
		logger:     logger,
	}
}

// Register mounts the report routes on r.
func (h *QualityHandler) Register(r fiber.Router) {
	r.Get("/tracking", h.GetTrackingReport)
	r.Get("/parameters", h.GetParameterReport)
	r.Get("/anomalies", h.GetAnomalyReport)
	r.Get("/dashboard", h.GetDashboard)
	r.Get("/realtime", h.GetRealtime)
}

// GetTrackingReport godoc
// @Summary Tracking-plan quality report
// @Description Per expected event quality, the daily error chart and one page of detail rows
// @Tags Quality
// @Produce json
// @Param start query string false "Range start (YYYY-MM-DD), requires end"
// @Param end query string false "Range end (YYYY-MM-DD), requires start"
// @Param event query string false "Expected event name, 'all' for every event"
// @Param page query int false "Page (1-based)"
// @Param pageSize query int false "Page size"
// @Param errorsOnly query bool false "Only rows with missing parameters in details"
// @Success 200 {object} TrackingReportResponse
// @Failure 400 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/quality/tracking [get]
func (h *QualityHandler) GetTrackingReport(c *fiber.Ctx) error {
	in, err := parseReportInput(c)
	if err != nil {
		return invalidQuery(c, err)
	}

	started := time.Now()
	res, err := h.tracking.Execute(c.UserContext(), in)
	telemetry.ObserveReport("tracking", started, err)
	if err != nil {
		return h.writeError(c, err)
	}

	return c.Status(http.StatusOK).JSON(TrackingReportResponse{
		Filters:    toFilters(res.Range, res.EventName),
		Events:     toBuckets(res.Events),
		Chart:      toQualityPoints(res.Chart),
		Details:    toRecords(res.Details),
		Stats:      TrackingStatsResponse(res.Stats),
		Pagination: toPagination(res.Pagination),
	})
}

// GetParameterReport godoc
// @Summary Missing parameter report
// @Description Most frequently missing event, user and item parameters
// @Tags Quality
// @Produce json
// @Param start query string false "Range start (YYYY-MM-DD), requires end"
// @Param end query string false "Range end (YYYY-MM-DD), requires start"
// @Param event query string false "Expected event name, 'all' for every event"
// @Param limit query int false "Number of parameters to return"
// @Success 200 {object} ParameterReportResponse
// @Failure 400 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/quality/parameters [get]
func (h *QualityHandler) GetParameterReport(c *fiber.Ctx) error {
	in, err := parseReportInput(c)
	if err != nil {
		return invalidQuery(c, err)
	}

	started := time.Now()
	res, err := h.parameters.Execute(c.UserContext(), in)
	telemetry.ObserveReport("parameters", started, err)
	if err != nil {
		return h.writeError(c, err)
	}

	return c.Status(http.StatusOK).JSON(ParameterReportResponse{
		Filters:     toFilters(res.Range, res.EventName),
		TotalEvents: res.TotalEvents,
		Parameters:  toBuckets(res.Parameters),
	})
}

// GetAnomalyReport godoc
// @Summary Volume anomaly report
// @Description Modified z-score of each day's volume against the event's own distribution in range
// @Tags Quality
// @Produce json
// @Param start query string false "Range start (YYYY-MM-DD), requires end"
// @Param end query string false "Range end (YYYY-MM-DD), requires start"
// @Param event query string false "Observed event name, 'all' for every event"
// @Param page query int false "Page (1-based)"
// @Param pageSize query int false "Page size"
// @Success 200 {object} AnomalyReportResponse
// @Failure 400 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/quality/anomalies [get]
func (h *QualityHandler) GetAnomalyReport(c *fiber.Ctx) error {
	in, err := parseReportInput(c)
	if err != nil {
		return invalidQuery(c, err)
	}

	started := time.Now()
	res, err := h.anomalies.Execute(c.UserContext(), in)
	telemetry.ObserveReport("anomalies", started, err)
	if err != nil {
		return h.writeError(c, err)
	}

	return c.Status(http.StatusOK).JSON(AnomalyReportResponse{
		Filters:         toFilters(res.Range, res.EventName),
		Samples:         toSamples(res.Samples),
		Chart:           toAnomalyPoints(res.Chart),
		AvailableEvents: nonNil(res.AvailableEvents),
		Stats:           toAnomalyStats(res.Stats),
		Pagination:      toPagination(res.Pagination),
	})
}

// GetDashboard godoc
// @Summary Dashboard overview
// @Description Headline metrics, event and page breakdowns, parameters, anomaly summary and quality chart
// @Tags Quality
// @Produce json
// @Param start query string false "Range start (YYYY-MM-DD), requires end"
// @Param end query string false "Range end (YYYY-MM-DD), requires start"
// @Success 200 {object} DashboardResponse
// @Failure 400 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/quality/dashboard [get]
func (h *QualityHandler) GetDashboard(c *fiber.Ctx) error {
	in, err := parseReportInput(c)
	if err != nil {
		return invalidQuery(c, err)
	}

	started := time.Now()
	res, err := h.dashboard.Execute(c.UserContext(), in)
	telemetry.ObserveReport("dashboard", started, err)
	if err != nil {
		return h.writeError(c, err)
	}

	return c.Status(http.StatusOK).JSON(DashboardResponse{
		Filters:    toFilters(res.Range, ""),
		Metrics:    toGlobalMetrics(res.Metrics),
		EventStats: toBuckets(res.EventStats),
		Parameters: toBuckets(res.Parameters),
		Pages:      toBuckets(res.Pages),
		Anomalies:  toAnomalyStats(res.Anomalies),
		Chart:      toQualityPoints(res.Chart),
	})
}

// GetRealtime godoc
// @Summary Realtime quality view
// @Description Quality of the most recent data: yesterday and today before the cutoff hour, today only after it
// @Tags Quality
// @Produce json
// @Success 200 {object} RealtimeReportResponse
// @Failure 503 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/quality/realtime [get]
func (h *QualityHandler) GetRealtime(c *fiber.Ctx) error {
	started := time.Now()
	res, err := h.realtime.Execute(c.UserContext())
	telemetry.ObserveReport("realtime", started, err)
	if err != nil {
		return h.writeError(c, err)
	}

	return c.Status(http.StatusOK).JSON(RealtimeReportResponse{
		Window:      string(res.Window),
		GeneratedAt: res.GeneratedAt.Format(time.RFC3339),
		Filters:     toFilters(res.Range, ""),
		Metrics:     toGlobalMetrics(res.Metrics),
		EventStats:  toBuckets(res.EventStats),
		Pages:       toBuckets(res.Pages),
		Parameters:  toBuckets(res.Parameters),
	})
}

func parseReportInput(c *fiber.Ctx) (usecase.ReportInput, error) {
	var q ReportQuery
	if err := c.QueryParser(&q); err != nil {
		return usecase.ReportInput{}, errors.New("malformed query string")
	}
	if err := validate.Struct(q); err != nil {
		return usecase.ReportInput{}, describeValidation(err)
	}

	in := usecase.ReportInput{
		EventName:  q.Event,
		Page:       q.Page,
		PageSize:   q.PageSize,
		ErrorsOnly: q.ErrorsOnly,
		Limit:      q.Limit,
	}
	if q.Start != "" {
		start, _ := time.Parse(domain.DateLayout, q.Start)
		in.Start = &start
	}
	if q.End != "" {
		end, _ := time.Parse(domain.DateLayout, q.End)
		in.End = &end
	}
	return in, nil
}

func describeValidation(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		switch fe.Tag() {
		case "datetime":
			return errors.New(fieldName(fe.Field()) + " must be a date in YYYY-MM-DD format")
		case "gte":
			return errors.New(fieldName(fe.Field()) + " must not be negative")
		default:
			return errors.New(fieldName(fe.Field()) + " is invalid")
		}
	}
	return err
}

func fieldName(f string) string {
	if f == "" {
		return f
	}
	return strings.ToLower(f[:1]) + f[1:]
}

func invalidQuery(c *fiber.Ctx, err error) error {
	return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
		Error:   "invalid_query",
		Message: err.Error(),
	})
}

// writeError maps report failures to responses. Store errors are logged in
// full and reported without their cause.
func (h *QualityHandler) writeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidReportQuery),
		errors.Is(err, usecase.ErrInvalidTimeRange),
		errors.Is(err, domain.ErrInvalidPagination),
		errors.Is(err, domain.ErrInvalidDateRange):
		return invalidQuery(c, err)
	case errors.Is(err, domain.ErrPageOutOfRange):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error:   "page_out_of_range",
			Message: err.Error(),
		})
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return c.Status(statusClientClosedRequest).JSON(ErrorResponse{
			Error:   "request_cancelled",
			Message: "request was cancelled before the report completed",
		})
	case errors.Is(err, domain.ErrUpstreamFetch):
		h.logger.Error("report fetch failed", zap.String("path", c.Path()), zap.Error(err))
		return c.Status(http.StatusServiceUnavailable).JSON(ErrorResponse{
			Error:   "upstream_fetch_failure",
			Message: domain.ErrUpstreamFetch.Error(),
		})
	default:
		h.logger.Error("report failed", zap.String("path", c.Path()), zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "internal_server_error",
			Message: "report could not be built",
		})
	}
}
