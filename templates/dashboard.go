package templates

import (
	"strconv"

	"github.com/a-h/templ"
)

func DashboardPage(data DashboardData, header HeaderData, sidebar SidebarData) templ.Component {
	return Layout("Dashboard", header, sidebar, DashboardContent(data))
}

// DashboardContent shows headline counters, estimates per status and the
// most recently added estimates.
func DashboardContent(data DashboardData) templ.Component {
	return component(func(h *html) {
		h.raw(`<section id="dashboard"><h1 class="text-2xl font-bold mb-4">Dashboard</h1>`)

		h.raw(`<div class="stats shadow mb-6">`)
		stat(h, "Projects", strconv.Itoa(data.ProjectCount))
		stat(h, "Estimates", strconv.Itoa(data.EstimateCount))
		stat(h, "Open drafts", strconv.Itoa(data.OpenDrafts))
		stat(h, "Estimated value", data.GrandTotal)
		h.raw(`</div>`)

		h.raw(`<h2 class="font-semibold mb-2">Estimates by status</h2><ul class="flex gap-3 mb-6">`)
		for _, sc := range data.StatusCounts {
			h.raw(`<li>`)
			statusBadge(h, sc.Status, sc.BadgeClass)
			h.raw(` <span class="status-count">`)
			h.raw(strconv.Itoa(sc.Count))
			h.raw(`</span></li>`)
		}
		h.raw(`</ul>`)

		h.raw(`<h2 class="font-semibold mb-2">Recent estimates</h2>`)
		if len(data.Recent) == 0 {
			h.raw(`<p class="text-sm">No estimates yet. <a href="/estimates/new" class="link">Create one</a>.</p>`)
		} else {
			h.raw(`<table class="table table-sm"><thead><tr><th>Version</th><th>Project</th><th>Status</th><th class="text-right">Total</th></tr></thead><tbody>`)
			for _, r := range data.Recent {
				h.raw(`<tr><td><a class="link"`)
				h.attr("href", "/estimates/"+r.ID)
				h.raw(`>`)
				h.text(r.Version)
				h.raw(`</a></td><td>`)
				h.text(r.Project)
				h.raw(`</td><td>`)
				statusBadge(h, r.Status, r.BadgeClass)
				h.raw(`</td><td class="text-right">`)
				h.text(r.Total)
				h.raw(`</td></tr>`)
			}
			h.raw(`</tbody></table>`)
		}
		h.raw(`</section>`)
	})
}

func stat(h *html, title, value string) {
	h.raw(`<div class="stat"><div class="stat-title">`)
	h.text(title)
	h.raw(`</div><div class="stat-value">`)
	h.text(value)
	h.raw(`</div></div>`)
}
