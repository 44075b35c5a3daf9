package templates

import "github.com/a-h/templ"

func EstimateViewPage(data EstimateViewData, header HeaderData, sidebar SidebarData) templ.Component {
	return Layout("Estimate "+data.Version, header, sidebar, EstimateView(data))
}

// EstimateView is the read-only rendering of a stored estimate.
func EstimateView(data EstimateViewData) templ.Component {
	return component(func(h *html) {
		h.raw(`<section id="estimate-view"><div class="flex justify-between items-center mb-4"><div><h1 class="text-2xl font-bold">Estimate `)
		h.text(data.Version)
		h.raw(`</h1><p>`)
		h.text(data.Project)
		h.raw(` &middot; `)
		h.text(data.Client)
		h.raw(` `)
		statusBadge(h, data.Status, data.BadgeClass)
		h.raw(`</p><p class="text-xs">Created `)
		h.text(data.Created)
		h.raw(`, modified `)
		h.text(data.Modified)
		h.raw(`</p></div><div class="flex gap-2">`)
		h.raw(`<a class="btn btn-sm"`)
		h.attr("href", "/estimates/"+data.ID+"/export/excel")
		h.raw(`>Excel</a><a class="btn btn-sm"`)
		h.attr("href", "/estimates/"+data.ID+"/export/pdf")
		h.raw(`>PDF</a><a class="btn btn-sm btn-primary"`)
		h.attr("href", "/estimates/"+data.ID+"/edit")
		h.raw(`>Edit</a><button class="btn btn-sm btn-error"`)
		h.attr("hx-delete", "/estimates/"+data.ID)
		h.raw(` hx-confirm="Delete this estimate?">Delete</button></div></div>`)

		h.raw(`<table class="table table-sm"><thead><tr><th>#</th><th>Item</th><th>Unit</th><th class="text-right">Qty</th><th class="text-right">Price</th><th class="text-right">Margin %</th><th class="text-right">Total</th></tr></thead><tbody>`)
		for _, sec := range data.Sections {
			h.raw(`<tr class="bg-base-200 font-semibold"><td>`)
			h.text(sec.Index)
			h.raw(`</td><td colspan="5">`)
			h.text(sec.Title)
			h.raw(`</td><td class="text-right">`)
			h.text(sec.Subtotal)
			h.raw(`</td></tr>`)
			for _, it := range sec.Items {
				h.raw(`<tr><td>`)
				h.text(it.Index)
				h.raw(`</td><td>`)
				h.text(it.Title)
				if it.Description != "" {
					h.raw(`<div class="text-xs">`)
					h.text(it.Description)
					h.raw(`</div>`)
				}
				h.raw(`</td><td>`)
				h.text(it.Unit)
				h.raw(`</td><td class="text-right">`)
				h.text(it.Quantity)
				h.raw(`</td><td class="text-right">`)
				h.text(it.Price)
				h.raw(`</td><td class="text-right">`)
				h.text(it.Margin)
				h.raw(`</td><td class="text-right">`)
				h.text(it.Total)
				h.raw(`</td></tr>`)
			}
		}
		h.raw(`</tbody></table>`)

		h.raw(`<dl class="w-80 ml-auto mt-4"><div class="flex justify-between"><dt>Sub Total</dt><dd>`)
		h.text(data.SubTotal)
		h.raw(`</dd></div><div class="flex justify-between"><dt>Total Margin</dt><dd>`)
		h.text(data.Margin)
		h.raw(`</dd></div><div class="flex justify-between font-bold"><dt>Total Amount</dt><dd>`)
		h.text(data.Total)
		h.raw(`</dd></div></dl></section>`)
	})
}
