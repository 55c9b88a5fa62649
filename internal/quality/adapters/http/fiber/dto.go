package fiber

import (
	"math"
	"time"

	"event-quality-service/internal/quality/core/domain"
)

// ReportQuery is the query string shared by every report endpoint.
type ReportQuery struct {
	Start      string `query:"start" validate:"omitempty,datetime=2006-01-02"`
	End        string `query:"end" validate:"omitempty,datetime=2006-01-02"`
	Event      string `query:"event" validate:"max=256"`
	Page       int    `query:"page" validate:"gte=0"`
	PageSize   int    `query:"pageSize" validate:"gte=0"`
	ErrorsOnly bool   `query:"errorsOnly"`
	Limit      int    `query:"limit" validate:"gte=0"`
}

type FiltersResponse struct {
	Start string `json:"start" example:"2025-06-01"`
	End   string `json:"end" example:"2025-06-30"`
	Event string `json:"event,omitempty" example:"purchase"`
}

type QualityBucketResponse struct {
	Key             string  `json:"key" example:"purchase"`
	Class           string  `json:"class,omitempty" example:"event"`
	Total           int64   `json:"total"`
	WithErrors      int64   `json:"withErrors"`
	MissingInGA4    int64   `json:"missingInGA4"`
	ErrorPercentage float64 `json:"errorPercentage" example:"12.5"`
	Tier            string  `json:"tier" example:"NeedAttention"`
	FirstDate       *string `json:"firstDate,omitempty"`
	LastDate        *string `json:"lastDate,omitempty"`
	FirstErrorDate  *string `json:"firstErrorDate,omitempty"`
	LastErrorDate   *string `json:"lastErrorDate,omitempty"`
}

type QualityPointResponse struct {
	Date            string  `json:"date" example:"2025-06-01"`
	Total           int64   `json:"total"`
	WithErrors      int64   `json:"withErrors"`
	ErrorPercentage float64 `json:"errorPercentage"`
}

type EventRecordResponse struct {
	PrimaryKey             string   `json:"primaryKey"`
	EventName              string   `json:"eventName"`
	ExpectedEventName      string   `json:"expectedEventName"`
	EventDate              string   `json:"eventDate"`
	EventTimestamp         string   `json:"eventTimestamp,omitempty"`
	HasMissingParams       bool     `json:"hasMissingParams"`
	MissingEventInGA4      bool     `json:"missingEventInGA4"`
	MissingEventParams     []string `json:"missingEventParams"`
	MissingUserParams      []string `json:"missingUserParams"`
	MissingItemParams      []string `json:"missingItemParams"`
	MissingEcommerceParams []string `json:"missingEcommerceParams"`
	UserPseudoID           string   `json:"userPseudoId,omitempty"`
	SessionID              string   `json:"sessionId,omitempty"`
	DeviceCategory         string   `json:"deviceCategory,omitempty"`
	DeviceOperatingSystem  string   `json:"deviceOperatingSystem,omitempty"`
	DeviceBrowser          string   `json:"deviceBrowser,omitempty"`
	PageLocation           string   `json:"pageLocation,omitempty"`
}

type PaginationResponse struct {
	Page       int  `json:"page"`
	PageSize   int  `json:"pageSize"`
	TotalItems int  `json:"totalItems"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`
}

type TrackingStatsResponse struct {
	TotalEvents      int64   `json:"totalEvents"`
	TotalErrors      int64   `json:"totalErrors"`
	ErrorRate        float64 `json:"errorRate"`
	MissingInGA4     int64   `json:"missingInGA4"`
	EventsWithErrors int64   `json:"eventsWithErrors"`
	TotalEventTypes  int64   `json:"totalEventTypes"`
}

type TrackingReportResponse struct {
	Filters    FiltersResponse         `json:"filters"`
	Events     []QualityBucketResponse `json:"events"`
	Chart      []QualityPointResponse  `json:"chart"`
	Details    []EventRecordResponse   `json:"details"`
	Stats      TrackingStatsResponse   `json:"stats"`
	Pagination PaginationResponse      `json:"pagination"`
}

type ParameterReportResponse struct {
	Filters     FiltersResponse         `json:"filters"`
	TotalEvents int64                   `json:"totalEvents"`
	Parameters  []QualityBucketResponse `json:"parameters"`
}

type AnomalySampleResponse struct {
	Date      string  `json:"date" example:"2025-06-30"`
	EventName string  `json:"eventName" example:"purchase"`
	Count     int64   `json:"count"`
	Median    float64 `json:"median"`
	MAD       float64 `json:"mad"`
	// Score is null when the spread is zero and the count is off the median.
	Score      *float64 `json:"score"`
	Flag       string   `json:"flag" example:"Anomaly"`
	Direction  string   `json:"direction" example:"above"`
	Degenerate bool     `json:"degenerate"`
}

type AnomalyPointResponse struct {
	Date          string `json:"date"`
	TotalEvents   int64  `json:"totalEvents"`
	AnomalyEvents int64  `json:"anomalyEvents"`
}

type AnomalyStatsResponse struct {
	TotalEvents      int64 `json:"totalEvents"`
	NormalEvents     int64 `json:"normalEvents"`
	AnomalyEvents    int64 `json:"anomalyEvents"`
	WarningEvents    int64 `json:"warningEvents"`
	UniqueEventTypes int64 `json:"uniqueEventTypes"`
}

type AnomalyReportResponse struct {
	Filters         FiltersResponse         `json:"filters"`
	Samples         []AnomalySampleResponse `json:"samples"`
	Chart           []AnomalyPointResponse  `json:"chart"`
	AvailableEvents []string                `json:"availableEvents"`
	Stats           AnomalyStatsResponse    `json:"stats"`
	Pagination      PaginationResponse      `json:"pagination"`
}

type GlobalMetricsResponse struct {
	TotalEvents int64   `json:"totalEvents"`
	GoodEvents  int64   `json:"goodEvents"`
	ErrorEvents int64   `json:"errorEvents"`
	UniqueUsers int64   `json:"uniqueUsers"`
	MinDate     *string `json:"minDate"`
	MaxDate     *string `json:"maxDate"`
	ErrorRate   float64 `json:"errorRate"`
}

type DashboardResponse struct {
	Filters    FiltersResponse         `json:"filters"`
	Metrics    GlobalMetricsResponse   `json:"metrics"`
	EventStats []QualityBucketResponse `json:"eventStats"`
	Parameters []QualityBucketResponse `json:"parameters"`
	Pages      []QualityBucketResponse `json:"pages"`
	Anomalies  AnomalyStatsResponse    `json:"anomalies"`
	Chart      []QualityPointResponse  `json:"chart"`
}

type RealtimeReportResponse struct {
	Window      string                  `json:"window" example:"previous_and_today"`
	GeneratedAt string                  `json:"generatedAt" example:"2025-06-30T09:15:00Z"`
	Filters     FiltersResponse         `json:"filters"`
	Metrics     GlobalMetricsResponse   `json:"metrics"`
	EventStats  []QualityBucketResponse `json:"eventStats"`
	Pages       []QualityBucketResponse `json:"pages"`
	Parameters  []QualityBucketResponse `json:"parameters"`
}

type ErrorResponse struct {
	Error   string `json:"error" example:"invalid_query"`
	Message string `json:"message" example:"start and end must be given together"`
}

func formatDate(t time.Time) string {
	return t.Format(domain.DateLayout)
}

func formatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatDate(*t)
	return &s
}

func toFilters(rng domain.DateRange, event string) FiltersResponse {
	return FiltersResponse{Start: formatDate(rng.Start), End: formatDate(rng.End), Event: event}
}

func toGlobalMetrics(m domain.GlobalMetrics) GlobalMetricsResponse {
	return GlobalMetricsResponse{
		TotalEvents: m.TotalEvents,
		GoodEvents:  m.GoodEvents,
		ErrorEvents: m.ErrorEvents,
		UniqueUsers: m.UniqueUsers,
		MinDate:     formatDatePtr(m.MinDate),
		MaxDate:     formatDatePtr(m.MaxDate),
		ErrorRate:   m.ErrorRate,
	}
}

func toBuckets(in []domain.QualityBucket) []QualityBucketResponse {
	out := make([]QualityBucketResponse, 0, len(in))
	for _, b := range in {
		out = append(out, QualityBucketResponse{
			Key:             b.Key,
			Class:           string(b.Class),
			Total:           b.Total,
			WithErrors:      b.WithErrors,
			MissingInGA4:    b.MissingInGA4,
			ErrorPercentage: b.ErrorPercentage,
			Tier:            string(b.Tier),
			FirstDate:       formatDatePtr(b.FirstDate),
			LastDate:        formatDatePtr(b.LastDate),
			FirstErrorDate:  formatDatePtr(b.FirstErrorDate),
			LastErrorDate:   formatDatePtr(b.LastErrorDate),
		})
	}
	return out
}

func toQualityPoints(in []domain.QualityPoint) []QualityPointResponse {
	out := make([]QualityPointResponse, 0, len(in))
	for _, p := range in {
		out = append(out, QualityPointResponse{
			Date:            formatDate(p.Date),
			Total:           p.Total,
			WithErrors:      p.WithErrors,
			ErrorPercentage: p.ErrorPercentage,
		})
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func toRecords(in []domain.EventRecord) []EventRecordResponse {
	out := make([]EventRecordResponse, 0, len(in))
	for _, r := range in {
		resp := EventRecordResponse{
			PrimaryKey:             r.PrimaryKey,
			EventName:              r.EventName,
			ExpectedEventName:      r.ExpectedEventName,
			EventDate:              formatDate(r.EventDate),
			HasMissingParams:       r.HasMissingParams,
			MissingEventInGA4:      r.MissingEventInGA4,
			MissingEventParams:     nonNil(r.MissingEventParams),
			MissingUserParams:      nonNil(r.MissingUserParams),
			MissingItemParams:      nonNil(r.MissingItemParams),
			MissingEcommerceParams: nonNil(r.MissingEcommerceParams),
			UserPseudoID:           r.UserPseudoID,
			SessionID:              r.SessionID,
			DeviceCategory:         r.DeviceCategory,
			DeviceOperatingSystem:  r.DeviceOperatingSystem,
			DeviceBrowser:          r.DeviceBrowser,
			PageLocation:           r.PageLocation,
		}
		if !r.EventTimestamp.IsZero() {
			resp.EventTimestamp = r.EventTimestamp.UTC().Format(time.RFC3339)
		}
		out = append(out, resp)
	}
	return out
}

func toPagination(p domain.PageInfo) PaginationResponse {
	return PaginationResponse{
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalItems: p.TotalItems,
		TotalPages: p.TotalPages,
		HasNext:    p.HasNext,
		HasPrev:    p.HasPrev,
	}
}

func toSamples(in []domain.AnomalySample) []AnomalySampleResponse {
	out := make([]AnomalySampleResponse, 0, len(in))
	for _, s := range in {
		resp := AnomalySampleResponse{
			Date:       formatDate(s.Date),
			EventName:  s.EventName,
			Count:      s.Count,
			Median:     s.Median,
			MAD:        s.MAD,
			Flag:       string(s.Flag),
			Direction:  string(s.Direction),
			Degenerate: s.Degenerate,
		}
		if !math.IsInf(s.Score, 0) && !math.IsNaN(s.Score) {
			score := s.Score
			resp.Score = &score
		}
		out = append(out, resp)
	}
	return out
}

func toAnomalyPoints(in []domain.AnomalyPoint) []AnomalyPointResponse {
	out := make([]AnomalyPointResponse, 0, len(in))
	for _, p := range in {
		out = append(out, AnomalyPointResponse{
			Date:          formatDate(p.Date),
			TotalEvents:   p.TotalEvents,
			AnomalyEvents: p.AnomalyEvents,
		})
	}
	return out
}

func toAnomalyStats(s domain.AnomalyStats) AnomalyStatsResponse {
	return AnomalyStatsResponse{
		TotalEvents:      s.TotalEvents,
		NormalEvents:     s.NormalEvents,
		AnomalyEvents:    s.AnomalyEvents,
		WarningEvents:    s.WarningEvents,
		UniqueEventTypes: s.UniqueEventTypes,
	}
}
