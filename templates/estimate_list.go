package templates

import (
	"github.com/a-h/templ"
)

// EstimateColumns are the toggleable columns of the estimate list, in order.
var EstimateColumns = []Column{
	{"version", "Version"},
	{"project", "Project"},
	{"client", "Client"},
	{"created", "Created"},
	{"modified", "Modified"},
	{"status", "Status"},
	{"total", "Total"},
}

func EstimateListPage(data EstimateListData, header HeaderData, sidebar SidebarData) templ.Component {
	return Layout("Estimates", header, sidebar, EstimateListContent(data))
}

// EstimateListContent is the filter bar, table and pager. It is also the
// HTMX swap target for filter changes and paging.
func EstimateListContent(data EstimateListData) templ.Component {
	return component(func(h *html) {
		h.raw(`<section id="estimate-list">`)
		h.raw(`<div class="flex justify-between mb-4"><h1 class="text-2xl font-bold">Estimates</h1>`)
		h.raw(`<a href="/estimates/new" class="btn btn-primary btn-sm">New Estimate</a></div>`)

		h.raw(`<form class="flex flex-wrap gap-2 mb-4" hx-get="/estimates" hx-target="#estimate-list" hx-swap="outerHTML" hx-push-url="true" hx-trigger="change, keyup changed delay:300ms from:input[name=q]">`)
		h.raw(`<input type="search" name="q" placeholder="Search version, project, client" class="input input-sm input-bordered"`)
		h.attr("value", data.Search)
		h.raw(`><select name="status" class="select select-sm select-bordered">`)
		selectOptions(h, data.Statuses, data.Status, "All statuses")
		h.raw(`</select><label class="text-sm">From <input type="date" name="from" class="input input-sm input-bordered"`)
		h.attr("value", data.From)
		h.raw(`></label><label class="text-sm">To <input type="date" name="to" class="input input-sm input-bordered"`)
		h.attr("value", data.To)
		h.raw(`></label>`)
		columnToggles(h, data.Columns, data.Hidden)
		h.raw(`</form>`)

		h.raw(`<table class="table table-zebra"><thead><tr>`)
		for _, c := range data.Columns {
			if hidden(data.Hidden, c.Key) {
				continue
			}
			h.raw(`<th`)
			h.attr("data-col", c.Key)
			h.raw(`>`)
			h.text(c.Label)
			h.raw(`</th>`)
		}
		h.raw(`<th></th></tr></thead><tbody>`)

		if len(data.Rows) == 0 {
			h.rawf(`<tr><td colspan="%d" class="text-center">No estimates match the current filters.</td></tr>`, len(data.Columns)+1)
		}
		for _, r := range data.Rows {
			h.raw(`<tr`)
			h.attr("id", "estimate-"+r.ID)
			h.raw(`>`)
			for _, c := range data.Columns {
				if hidden(data.Hidden, c.Key) {
					continue
				}
				h.raw(`<td>`)
				switch c.Key {
				case "version":
					h.raw(`<a class="link"`)
					h.attr("href", "/estimates/"+r.ID)
					h.raw(`>`)
					h.text(r.Version)
					h.raw(`</a>`)
				case "project":
					h.text(r.Project)
				case "client":
					h.text(r.Client)
				case "created":
					h.text(r.Created)
				case "modified":
					h.text(r.Modified)
				case "status":
					statusBadge(h, r.Status, r.BadgeClass)
				case "total":
					h.text(r.Total)
				}
				h.raw(`</td>`)
			}
			h.raw(`<td class="flex gap-1"><a class="btn btn-xs"`)
			h.attr("href", "/estimates/"+r.ID+"/edit")
			h.raw(`>Edit</a><button class="btn btn-xs btn-error"`)
			h.attr("hx-delete", "/estimates/"+r.ID)
			h.raw(` hx-confirm="Delete this estimate?">Delete</button></td></tr>`)
		}
		h.raw(`</tbody></table>`)

		h.child(PagerFooter(data.Pager))
		h.raw(`</section>`)
	})
}

// columnToggles renders a "hide" checkbox per column; a checked box hides it.
func columnToggles(h *html, cols []Column, hide map[string]bool) {
	h.raw(`<details class="dropdown"><summary class="btn btn-sm">Columns</summary><ul class="dropdown-content menu">`)
	for _, c := range cols {
		h.raw(`<li><label><input type="checkbox" name="hide"`)
		h.attr("value", c.Key)
		if hidden(hide, c.Key) {
			h.raw(` checked`)
		}
		h.raw(`> Hide `)
		h.text(c.Label)
		h.raw(`</label></li>`)
	}
	h.raw(`</ul></details>`)
}
