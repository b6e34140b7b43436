package listing

// Page is one fixed-size slice of a filtered list.
type Page[T any] struct {
	Items      []T  `json:"items"`
	Page       int  `json:"page"`
	PageSize   int  `json:"pageSize"`
	TotalItems int  `json:"totalItems"`
	TotalPages int  `json:"totalPages"`
	Empty      bool `json:"empty"`
}

// PageCount returns ceil(total/size). A non-positive size yields zero pages.
func PageCount(total, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// ClampPage keeps page within [1, pages]. With no pages the result is 1.
func ClampPage(page, pages int) int {
	if page > pages {
		page = pages
	}
	if page < 1 {
		page = 1
	}
	return page
}

// Paginate returns page number page (1-indexed) of items. A page past the end
// is clamped to the last page so a shrinking filter never strands the view.
func Paginate[T any](items []T, page, size int) Page[T] {
	if size <= 0 {
		size = 1
	}
	total := len(items)
	pages := PageCount(total, size)
	page = ClampPage(page, pages)

	start := (page - 1) * size
	if start > total {
		start = total
	}
	end := min(start+size, total)

	out := make([]T, end-start)
	copy(out, items[start:end])

	return Page[T]{
		Items:      out,
		Page:       page,
		PageSize:   size,
		TotalItems: total,
		TotalPages: pages,
		Empty:      total == 0,
	}
}
