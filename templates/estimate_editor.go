package templates

import (
	"strconv"

	"github.com/a-h/templ"
)

func EstimateEditorPage(data EditorData, header HeaderData, sidebar SidebarData) templ.Component {
	title := "New Estimate"
	if !data.IsNew {
		title = "Edit Estimate " + data.Version
	}
	return Layout(title, header, sidebar, EstimateEditor(data))
}

// EstimateEditor renders the working copy of an editing session. Every
// control posts to the session and the response replaces this element.
func EstimateEditor(data EditorData) templ.Component {
	return component(func(h *html) {
		base := "/editor/" + data.Token

		h.raw(`<section id="estimate-editor" hx-target="this" hx-swap="outerHTML"`)
		h.attr("data-state", data.State)
		h.raw(`>`)

		h.raw(`<div class="flex justify-between mb-4"><h1 class="text-2xl font-bold">`)
		if data.IsNew {
			h.raw(`New Estimate`)
		} else {
			h.raw(`Edit Estimate `)
			h.text(data.Version)
		}
		h.raw(`</h1></div>`)

		if data.ErrorCount > 0 {
			h.rawf(`<div class="alert alert-warning mb-4" role="alert">Please fix %d error(s) before submitting.</div>`, data.ErrorCount)
		}
		if data.Import != nil {
			importSummary(h, data.Import)
		}

		// Header fields
		h.raw(`<div class="grid grid-cols-3 gap-4 mb-6">`)
		headerInput(h, base, "project", "Project", data.Project, data.ProjectErr, "project-options")
		headerInput(h, base, "client", "Client", data.Client, data.ClientErr, "")
		h.raw(`<label class="form-control"><span class="label-text">Status</span><select name="value" class="select select-bordered select-sm"`)
		h.attr("hx-post", base+"/header/status")
		h.raw(`>`)
		selectOptions(h, data.Statuses, data.Status, "")
		h.raw(`</select>`)
		fieldError(h, data.StatusErr)
		h.raw(`</label></div>`)

		if len(data.Projects) > 0 {
			h.raw(`<datalist id="project-options">`)
			for _, p := range data.Projects {
				h.raw(`<option`)
				h.attr("value", p)
				h.raw(`></option>`)
			}
			h.raw(`</datalist>`)
		}
		if len(data.Units) > 0 {
			h.raw(`<datalist id="unit-options">`)
			for _, u := range data.Units {
				h.raw(`<option`)
				h.attr("value", u)
				h.raw(`></option>`)
			}
			h.raw(`</datalist>`)
		}

		for _, sec := range data.Sections {
			editorSection(h, base, sec, len(data.Sections) > 1)
		}

		h.raw(`<button class="btn btn-sm mb-6"`)
		h.attr("hx-post", base+"/sections")
		h.raw(`>Add Section</button>`)

		h.raw(`<div class="totals card bg-base-200 p-4 w-80 ml-auto mb-6"><dl>`)
		h.raw(`<div class="flex justify-between"><dt>Sub Total</dt><dd id="sub-total">`)
		h.text(data.SubTotal)
		h.raw(`</dd></div><div class="flex justify-between"><dt>Total Margin</dt><dd id="total-margin">`)
		h.text(data.Margin)
		h.raw(`</dd></div><div class="flex justify-between font-bold"><dt>Total Amount</dt><dd id="total-amount">`)
		h.text(data.Total)
		h.raw(`</dd></div></dl></div>`)

		h.raw(`<div class="flex gap-2 justify-end"><button class="btn btn-ghost"`)
		h.attr("hx-post", base+"/cancel")
		h.raw(`>Cancel</button><button class="btn btn-primary" hx-disabled-elt="this"`)
		h.attr("hx-post", base+"/submit")
		h.raw(`>Submit</button></div>`)

		h.raw(`</section>`)
	})
}

func headerInput(h *html, base, field, label, value, errMsg, list string) {
	h.raw(`<label class="form-control"><span class="label-text">`)
	h.text(label)
	h.raw(`</span><input type="text" name="value" class="input input-bordered input-sm"`)
	if errMsg != "" {
		h.raw(` aria-invalid="true"`)
	}
	if list != "" {
		h.attr("list", list)
	}
	h.attr("value", value)
	h.attr("hx-post", base+"/header/"+field)
	h.raw(` hx-trigger="change">`)
	fieldError(h, errMsg)
	h.raw(`</label>`)
}

func editorSection(h *html, base string, sec EditorSection, removable bool) {
	sid := strconv.FormatInt(sec.ID, 10)
	secBase := base + "/sections/" + sid

	h.raw(`<div class="card border mb-4"`)
	h.attr("id", "section-"+sid)
	h.raw(`><div class="flex items-center gap-2 p-3 bg-base-200">`)

	h.raw(`<button class="btn btn-xs btn-ghost"`)
	h.attr("hx-post", secBase+"/toggle")
	if sec.Expanded {
		h.raw(` aria-expanded="true">&#9660;</button>`)
	} else {
		h.raw(` aria-expanded="false">&#9654;</button>`)
	}

	h.raw(`<div class="flex-1"><input type="text" name="value" placeholder="Section title" class="input input-sm input-bordered w-full"`)
	h.attr("value", sec.Title)
	h.attr("hx-post", secBase+"/title")
	h.raw(` hx-trigger="change">`)
	fieldError(h, sec.TitleErr)
	h.raw(`</div><span class="section-subtotal font-semibold">`)
	h.text(sec.Subtotal)
	h.raw(`</span>`)
	if removable {
		h.raw(`<button class="btn btn-xs btn-error"`)
		h.attr("hx-delete", secBase)
		h.raw(` hx-confirm="Remove this section and its items?">Remove</button>`)
	}
	h.raw(`</div>`)

	if sec.Expanded {
		h.raw(`<table class="table table-sm"><thead><tr><th>Item</th><th>Description</th><th>Unit</th><th>Qty</th><th>Price</th><th>Margin %</th><th class="text-right">Total</th><th></th></tr></thead><tbody>`)
		for _, it := range sec.Items {
			editorItem(h, secBase, it, len(sec.Items) > 1)
		}
		h.raw(`</tbody></table><div class="flex gap-2 p-3"><button class="btn btn-xs"`)
		h.attr("hx-post", secBase+"/items")
		h.raw(`>Add Item</button>`)

		h.raw(`<form class="flex gap-1 items-center" hx-encoding="multipart/form-data"`)
		h.attr("hx-post", secBase+"/import")
		h.raw(`><input type="file" name="file" accept=".csv,.xlsx" class="file-input file-input-xs" required>`)
		h.raw(`<button class="btn btn-xs">Import</button><a href="/estimates/template" class="link text-xs">Template</a></form></div>`)
	}
	h.raw(`</div>`)
}

func editorItem(h *html, secBase string, it EditorItem, removable bool) {
	iid := strconv.FormatInt(it.ID, 10)
	itemBase := secBase + "/items/" + iid

	h.raw(`<tr`)
	h.attr("id", "item-"+iid)
	h.raw(`>`)
	itemCell(h, itemBase, "title", "text", it.Title, it.TitleErr, "")
	itemCell(h, itemBase, "description", "text", it.Description, "", "")
	itemCell(h, itemBase, "unit", "text", it.Unit, "", "unit-options")
	itemCell(h, itemBase, "quantity", "text", it.Quantity, it.QuantityErr, "")
	itemCell(h, itemBase, "price", "text", it.Price, it.PriceErr, "")
	itemCell(h, itemBase, "margin", "text", it.Margin, "", "")
	h.raw(`<td class="text-right item-total">`)
	h.text(it.Total)
	h.raw(`</td><td>`)
	if removable {
		h.raw(`<button class="btn btn-xs btn-ghost" title="Remove item"`)
		h.attr("hx-delete", itemBase)
		h.raw(`>&times;</button>`)
	}
	h.raw(`</td></tr>`)
}

func itemCell(h *html, itemBase, field, typ, value, errMsg, list string) {
	h.raw(`<td><input name="value" class="input input-xs input-bordered w-full"`)
	h.attr("type", typ)
	h.attr("aria-label", field)
	if field == "quantity" || field == "price" || field == "margin" {
		h.raw(` inputmode="decimal"`)
	}
	if list != "" {
		h.attr("list", list)
	}
	if errMsg != "" {
		h.raw(` aria-invalid="true"`)
	}
	h.attr("value", value)
	h.attr("hx-post", itemBase+"/"+field)
	h.raw(` hx-trigger="change">`)
	fieldError(h, errMsg)
	h.raw(`</td>`)
}

func importSummary(h *html, s *ImportSummary) {
	class := "alert-success"
	if s.ErrorRows > 0 {
		class = "alert-warning"
	}
	h.raw(`<div`)
	h.attr("class", "alert mb-4 import-summary "+class)
	h.raw(`><div><p>`)
	h.rawf(`Imported %d of %d row(s) from `, s.Imported, s.Total)
	h.text(s.FileName)
	h.raw(`.</p>`)
	if len(s.Unrecognized) > 0 {
		h.raw(`<p class="text-xs">Ignored columns:`)
		for _, u := range s.Unrecognized {
			h.raw(` `)
			h.text(u)
		}
		h.raw(`</p>`)
	}
	if len(s.Errors) > 0 {
		h.raw(`<ul class="text-xs">`)
		for _, e := range s.Errors {
			h.rawf(`<li>Row %d, `, e.Row)
			h.text(e.Field)
			h.raw(`: `)
			h.text(e.Message)
			h.raw(`</li>`)
		}
		h.raw(`</ul><form method="post" action="/estimates/import/errors"><input type="hidden" name="errors"`)
		h.attr("value", s.ErrorsJSON)
		h.raw(`><button class="btn btn-xs">Download error report</button></form>`)
	}
	h.raw(`</div></div>`)
}
