package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// EventRecord is one observed analytics event occurrence. Several physical rows
// may share a PrimaryKey; they describe the same logical occurrence.
type EventRecord struct {
	PrimaryKey        string `validate:"required"`
	EventName         string
	ExpectedEventName string `validate:"required_without=EventName"`

	EventDate      time.Time
	EventTimestamp time.Time

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

var recordValidator = validator.New()

// NormalizeRecord trims identifiers, collapses parameter lists into sorted sets and
// moves EventDate to a UTC midnight.
func NormalizeRecord(r EventRecord) EventRecord {
	r.PrimaryKey = strings.TrimSpace(r.PrimaryKey)
	r.EventName = strings.TrimSpace(r.EventName)
	r.ExpectedEventName = strings.TrimSpace(r.ExpectedEventName)
	if r.ExpectedEventName == "" {
		r.ExpectedEventName = r.EventName
	}
	if !r.EventDate.IsZero() {
		r.EventDate = Day(r.EventDate)
	}
	if !r.EventTimestamp.IsZero() {
		r.EventTimestamp = r.EventTimestamp.UTC()
	}

	r.MissingEventParams = normalizeParams(r.MissingEventParams)
	r.MissingUserParams = normalizeParams(r.MissingUserParams)
	r.MissingItemParams = normalizeParams(r.MissingItemParams)
	r.MissingEcommerceParams = normalizeParams(r.MissingEcommerceParams)
	return r
}

// ValidateRecord reports ErrInvalidRecord when a row cannot take part in any
// aggregation: no primary key, no event name at all, or no event date.
func ValidateRecord(r EventRecord) error {
	if err := recordValidator.Struct(r); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidRecord, describeValidation(err))
	}
	if r.EventDate.IsZero() {
		return fmt.Errorf("%w: event date is required", ErrInvalidRecord)
	}
	return nil
}

func describeValidation(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return err.Error()
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
	}
	return strings.Join(fields, ", ")
}

func normalizeParams(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, p := range in {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	if len(out) == 0 {
		return nil
	}
	sort.Strings(out)
	return out
}
