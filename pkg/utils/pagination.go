package utils

import "math"

// PageRequest is a normalized listing window for the registry and event
// log endpoints.
type PageRequest struct {
	Page  int
	Limit int
}

// PaginationMeta describes the window a listing response covers.
type PaginationMeta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalCount int64 `json:"totalCount"`
	TotalPages int   `json:"totalPages"`
}

// NewPageRequest clamps raw query values: pages start at 1, and a
// non-positive limit reads the whole collection on one page, which is how
// the ledger's small lists are usually consumed.
func NewPageRequest(page, limit int) PageRequest {
	if page < 1 {
		page = 1
	}
	if limit < 0 {
		limit = 0
	}
	return PageRequest{Page: page, Limit: limit}
}

// Offset returns the number of rows the window skips.
func (p PageRequest) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// Meta builds the response metadata for this window over totalCount rows.
func (p PageRequest) Meta(totalCount int64) PaginationMeta {
	if p.Limit <= 0 {
		return PaginationMeta{
			Page:       1,
			Limit:      int(totalCount),
			TotalCount: totalCount,
			TotalPages: 1,
		}
	}

	return PaginationMeta{
		Page:       p.Page,
		Limit:      p.Limit,
		TotalCount: totalCount,
		TotalPages: int(math.Ceil(float64(totalCount) / float64(p.Limit))),
	}
}
