package engine

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"event-quality-service/internal/quality/core/domain"
)

// Deduplicate keeps one record per primary key and returns them ordered by key.
//
// Rows sharing a key are resolved by preferRecord: the earliest known event
// timestamp wins (a row without one loses to any row with one), then a row with missing parameters beats a clean one, then a canonical
// field-by-field comparison decides. The outcome does not depend on arrival order.
func Deduplicate(ctx context.Context, rows []domain.EventRecord) ([]domain.EventRecord, error) {
	chosen := make(map[string]int, len(rows))

	for i := range rows {
		if err := checkpoint(ctx, i); err != nil {
			return nil, err
		}
		key := rows[i].PrimaryKey
		if key == "" {
			return nil, fmt.Errorf("%w: row %d has no primary key", domain.ErrInvalidRecord, i)
		}
		j, ok := chosen[key]
		if !ok || preferRecord(rows[i], rows[j]) {
			chosen[key] = i
		}
	}

	out := make([]domain.EventRecord, 0, len(chosen))
	for _, i := range chosen {
		out = append(out, rows[i])
	}
	slices.SortFunc(out, func(a, b domain.EventRecord) int {
		return strings.Compare(a.PrimaryKey, b.PrimaryKey)
	})
	return out, nil
}

// preferRecord reports whether a should represent the key instead of b.
func preferRecord(a, b domain.EventRecord) bool {
	return compareRecords(a, b) < 0
}

func compareRecords(a, b domain.EventRecord) int {
	// an unknown timestamp never counts as the earliest
	if az, bz := a.EventTimestamp.IsZero(), b.EventTimestamp.IsZero(); az != bz {
		if bz {
			return -1
		}
		return 1
	}
	if c := a.EventTimestamp.Compare(b.EventTimestamp); c != 0 {
		return c
	}
	if a.HasMissingParams != b.HasMissingParams {
		if a.HasMissingParams {
			return -1
		}
		return 1
	}
	if a.MissingEventInGA4 != b.MissingEventInGA4 {
		if a.MissingEventInGA4 {
			return -1
		}
		return 1
	}
	if c := a.EventDate.Compare(b.EventDate); c != 0 {
		return c
	}
	if c := cmp.Or(
		strings.Compare(a.EventName, b.EventName),
		strings.Compare(a.ExpectedEventName, b.ExpectedEventName),
		slices.Compare(a.MissingEventParams, b.MissingEventParams),
		slices.Compare(a.MissingUserParams, b.MissingUserParams),
		slices.Compare(a.MissingItemParams, b.MissingItemParams),
		slices.Compare(a.MissingEcommerceParams, b.MissingEcommerceParams),
	); c != 0 {
		return c
	}
	return cmp.Or(
		strings.Compare(a.UserPseudoID, b.UserPseudoID),
		strings.Compare(a.SessionID, b.SessionID),
		strings.Compare(a.DeviceCategory, b.DeviceCategory),
		strings.Compare(a.DeviceOperatingSystem, b.DeviceOperatingSystem),
		strings.Compare(a.DeviceBrowser, b.DeviceBrowser),
		strings.Compare(a.PageLocation, b.PageLocation),
	)
}
