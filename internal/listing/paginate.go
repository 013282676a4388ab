// Package listing holds the pure read-side helpers: pagination, slug labels
// and the fixed row-action lookup.
package listing

// Page is one window over a result list.
type Page[T any] struct {
	Items       []T  `json:"items"`
	Page        int  `json:"page"`
	PageSize    int  `json:"page_size"`
	TotalItems  int  `json:"total_items"`
	TotalPages  int  `json:"total_pages"`
	HasPrevious bool `json:"has_previous"`
	HasNext     bool `json:"has_next"`
}

// Paginate slices items into the requested page. Total pages is
// ceil(len/size); out-of-range page numbers clamp to the first or last page
// instead of failing.
func Paginate[T any](items []T, page, size int) Page[T] {
	if size < 1 {
		size = 1
	}

	total := len(items)
	totalPages := (total + size - 1) / size
	if totalPages < 1 {
		totalPages = 1
	}

	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * size
	end := start + size
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Page[T]{
		Items:       items[start:end],
		Page:        page,
		PageSize:    size,
		TotalItems:  total,
		TotalPages:  totalPages,
		HasPrevious: page > 1,
		HasNext:     page < totalPages,
	}
}
