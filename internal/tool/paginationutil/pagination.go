package paginationutil

// Page describes a window taken from a longer result list.
type Page struct {
	Total     int
	Truncated bool
}

// Apply returns items[offset:offset+limit] clamped to the slice bounds.
// A limit <= 0 keeps everything after offset.
func Apply[T any](items []T, offset, limit int) ([]T, Page) {
	total := len(items)
	start := max(offset, 0)
	if start > total {
		start = total
	}
	end := total
	if limit > 0 && start+limit < total {
		end = start + limit
	}

	return items[start:end], Page{
		Total:     total,
		Truncated: end < total,
	}
}
