package services

// Page is one slice of a paginated list plus the numbers a pager needs.
type Page[T any] struct {
	Items      []T
	Page       int // 1-based, clamped to [1, TotalPages]
	PerPage    int
	TotalItems int
	TotalPages int
	From       int // 1-based index of the first item shown, 0 when empty
	To         int
}

func (p Page[T]) HasPrev() bool { return p.Page > 1 }
func (p Page[T]) HasNext() bool { return p.Page < p.TotalPages }

// Paginate returns page number page of items. Out-of-range pages are clamped
// and a non-positive perPage shows everything on one page.
func Paginate[T any](items []T, page, perPage int) Page[T] {
	total := len(items)
	if perPage <= 0 {
		perPage = total
		if perPage == 0 {
			perPage = 1
		}
	}

	pages := (total + perPage - 1) / perPage
	if pages < 1 {
		pages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > pages {
		page = pages
	}

	start := (page - 1) * perPage
	end := start + perPage
	if end > total {
		end = total
	}

	p := Page[T]{
		Items:      items[start:end],
		Page:       page,
		PerPage:    perPage,
		TotalItems: total,
		TotalPages: pages,
	}
	if total > 0 {
		p.From = start + 1
		p.To = end
	}
	return p
}
