package utils

// Page is one window of an ordered collection plus its totals.
type Page[T any] struct {
	Items       []T `json:"items"`
	TotalItems  int `json:"totalItems"`
	TotalPages  int `json:"totalPages"`
	CurrentPage int `json:"currentPage"`
}

// Paginate slices items into a page. Non-positive page or limit values are
// clamped to 1 rather than rejected. A page past the end returns an empty
// slice with the real totals.
func Paginate[T any](items []T, page, limit int) Page[T] {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}

	total := len(items)
	totalPages := total / limit
	if total%limit > 0 {
		totalPages++
	}

	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	return Page[T]{
		Items:       items[start:end],
		TotalItems:  total,
		TotalPages:  totalPages,
		CurrentPage: page,
	}
}
