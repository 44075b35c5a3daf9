package handlers

import (
	"net/url"
	"strconv"

	"estimatetracker/services"
	"estimatetracker/templates"
)

// pageParam reads the 1-based "page" query value; anything invalid is page 1.
func pageParam(q url.Values) int {
	n, err := strconv.Atoi(q.Get("page"))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// hiddenColumns collects the repeated "hide" query values that name one of
// cols. Unknown keys are ignored.
func hiddenColumns(q url.Values, cols []templates.Column) map[string]bool {
	known := make(map[string]bool, len(cols))
	for _, c := range cols {
		known[c.Key] = true
	}
	hidden := make(map[string]bool)
	for _, k := range q["hide"] {
		if known[k] {
			hidden[k] = true
		}
	}
	return hidden
}

// pageURL returns path with q and the page number replaced.
func pageURL(path string, q url.Values, page int) string {
	next := url.Values{}
	for k, v := range q {
		if k == "page" {
			continue
		}
		next[k] = v
	}
	next.Set("page", strconv.Itoa(page))
	return path + "?" + next.Encode()
}

func buildPager[T any](p services.Page[T], path string, q url.Values, target string) templates.Pager {
	pager := templates.Pager{
		Page:       p.Page,
		TotalPages: p.TotalPages,
		From:       p.From,
		To:         p.To,
		Total:      p.TotalItems,
		Target:     target,
	}
	if p.HasPrev() {
		pager.PrevURL = pageURL(path, q, p.Page-1)
	}
	if p.HasNext() {
		pager.NextURL = pageURL(path, q, p.Page+1)
	}
	return pager
}
