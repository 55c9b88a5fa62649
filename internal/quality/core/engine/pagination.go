package engine

import "event-quality-service/internal/quality/core/domain"

// PlanPage computes the window of one page over totalItems.
//
// An empty result still has one page, so page 1 is always valid. A page past
// the last one is reported as ErrPageOutOfRange instead of being clamped.
func PlanPage(totalItems, page, pageSize int) (domain.PageInfo, error) {
	if page < 1 || pageSize < 1 || totalItems < 0 {
		return domain.PageInfo{}, domain.ErrInvalidPagination
	}

	totalPages := (totalItems + pageSize - 1) / pageSize
	if totalPages == 0 {
		totalPages = 1
	}
	if page > totalPages {
		return domain.PageInfo{}, domain.ErrPageOutOfRange
	}

	return domain.PageInfo{
		Page:       page,
		PageSize:   pageSize,
		TotalItems: totalItems,
		TotalPages: totalPages,
		Offset:     (page - 1) * pageSize,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}, nil
}

// Paginate returns the items of the planned page.
func Paginate[T any](items []T, p domain.PageInfo) []T {
	if p.Offset >= len(items) {
		return []T{}
	}
	end := p.Offset + p.PageSize
	if end > len(items) {
		end = len(items)
	}
	return items[p.Offset:end]
}
