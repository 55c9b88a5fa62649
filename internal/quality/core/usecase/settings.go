package usecase

import (
	"time"

	"go.uber.org/zap"

	"event-quality-service/internal/quality/core/domain"
)

// Settings are the configured knobs shared by every report.
type Settings struct {
	Thresholds domain.Thresholds

	TopParameters    int
	MaxTopParameters int
	TopEvents        int
	TopPages         int

	DefaultPageSize int
	MaxPageSize     int

	FallbackLookbackDays int
	// MaxRangeDays bounds the days one report may cover.
	MaxRangeDays int

	// Realtime view: top-N of each section, the local hour from which only
	// today is shown, and the zone that defines "today".
	RealtimeTop        int
	RealtimeCutoffHour int
	Location           *time.Location

	Clock  func() time.Time
	Logger *zap.Logger
}

func DefaultSettings() Settings {
	return Settings{
		Thresholds:           domain.DefaultThresholds(),
		TopParameters:        5,
		MaxTopParameters:     100,
		TopEvents:            50,
		TopPages:             10,
		DefaultPageSize:      20,
		MaxPageSize:          500,
		FallbackLookbackDays: 30,
		MaxRangeDays:         366,
		RealtimeTop:          10,
		RealtimeCutoffHour:   12,
		Location:             time.UTC,
		Clock:                time.Now,
		Logger:               zap.NewNop(),
	}
}

// withDefaults fills every zero field from DefaultSettings.
func (s Settings) withDefaults() Settings {
	d := DefaultSettings()
	if s.Thresholds == (domain.Thresholds{}) {
		s.Thresholds = d.Thresholds
	}
	if s.TopParameters <= 0 {
		s.TopParameters = d.TopParameters
	}
	if s.MaxTopParameters <= 0 {
		s.MaxTopParameters = d.MaxTopParameters
	}
	if s.TopEvents <= 0 {
		s.TopEvents = d.TopEvents
	}
	if s.TopPages <= 0 {
		s.TopPages = d.TopPages
	}
	if s.DefaultPageSize <= 0 {
		s.DefaultPageSize = d.DefaultPageSize
	}
	if s.MaxPageSize <= 0 {
		s.MaxPageSize = d.MaxPageSize
	}
	if s.FallbackLookbackDays <= 0 {
		s.FallbackLookbackDays = d.FallbackLookbackDays
	}
	if s.MaxRangeDays <= 0 {
		s.MaxRangeDays = d.MaxRangeDays
	}
	if s.RealtimeTop <= 0 {
		s.RealtimeTop = d.RealtimeTop
	}
	if s.RealtimeCutoffHour <= 0 {
		s.RealtimeCutoffHour = d.RealtimeCutoffHour
	}
	if s.Location == nil {
		s.Location = d.Location
	}
	if s.Clock == nil {
		s.Clock = d.Clock
	}
	if s.Logger == nil {
		s.Logger = d.Logger
	}
	return s
}
