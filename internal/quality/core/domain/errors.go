package domain

import "errors"

var (
	ErrInvalidRecord     = errors.New("invalid event record")
	ErrUpstreamFetch     = errors.New("event record store unavailable")
	ErrPageOutOfRange    = errors.New("page out of range")
	ErrInvalidPagination = errors.New("invalid pagination")
	ErrInvalidDateRange  = errors.New("invalid date range")
)
