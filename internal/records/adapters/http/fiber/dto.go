package fiber

// CreateRecordRequest is one raw event row.
// @Description Event record DTO
type CreateRecordRequest struct {
	PrimaryKey        string `json:"primary_key" validate:"required,max=512"`
	EventName         string `json:"event_name" validate:"max=256"`
	ExpectedEventName string `json:"expected_event_name" validate:"max=256"`
	// EventDate is the calendar day, YYYY-MM-DD.
	EventDate string `json:"event_date" validate:"required,datetime=2006-01-02"`
	// EventTimestamp is in microseconds since the epoch.
	EventTimestamp int64 `json:"event_timestamp" validate:"gte=0"`

	HasMissingParams  bool `json:"has_missing_params"`
	MissingEventInGA4 bool `json:"missing_event_in_ga4"`

	MissingEventParams     []string `json:"missing_event_params" validate:"dive,max=256"`
	MissingUserParams      []string `json:"missing_user_params" validate:"dive,max=256"`
	MissingItemParams      []string `json:"missing_item_params" validate:"dive,max=256"`
	MissingEcommerceParams []string `json:"missing_ecommerce_params" validate:"dive,max=256"`

	UserPseudoID          string `json:"user_pseudo_id"`
	SessionID             string `json:"session_id"`
	DeviceCategory        string `json:"device_category"`
	DeviceOperatingSystem string `json:"device_operating_system"`
	DeviceBrowser         string `json:"device_browser"`
	PageLocation          string `json:"page_location"`
}

type BulkCreateRecordsRequest struct {
	Records []CreateRecordRequest `json:"records" validate:"required,min=1,dive"`
}

type CreateRecordsResponse struct {
	Accepted int   `json:"accepted"`
	Stored   int64 `json:"stored"`
}

type ErrorResponse struct {
	Error   string `json:"error" example:"invalid_record"`
	Message string `json:"message" example:"record 3: invalid event record: PrimaryKey failed required"`
}
