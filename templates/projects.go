package templates

import "github.com/a-h/templ"

// ProjectColumns are the toggleable columns of the project list.
var ProjectColumns = []Column{
	{"customer", "Customer"},
	{"reference", "Reference No."},
	{"project", "Project"},
	{"location", "Area / Location"},
	{"status", "Status"},
}

func ProjectListPage(data ProjectListData, header HeaderData, sidebar SidebarData) templ.Component {
	return Layout("Projects", header, sidebar, ProjectListContent(data))
}

func ProjectListContent(data ProjectListData) templ.Component {
	return component(func(h *html) {
		h.raw(`<section id="project-list">`)
		h.raw(`<div class="flex justify-between mb-4"><h1 class="text-2xl font-bold">Projects</h1>`)
		h.raw(`<a href="/projects/create" class="btn btn-primary btn-sm">Add Project</a></div>`)

		h.raw(`<form class="flex gap-2 mb-4" hx-get="/projects" hx-target="#project-list" hx-swap="outerHTML" hx-push-url="true" hx-trigger="change, keyup changed delay:300ms from:input[name=q]">`)
		h.raw(`<input type="search" name="q" placeholder="Search projects" class="input input-sm input-bordered"`)
		h.attr("value", data.Search)
		h.raw(`><select name="status" class="select select-sm select-bordered">`)
		selectOptions(h, data.Statuses, data.Status, "All statuses")
		h.raw(`</select>`)
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
		if len(data.Items) == 0 {
			h.rawf(`<tr><td colspan="%d" class="text-center">No projects found.</td></tr>`, len(data.Columns)+1)
		}
		for _, p := range data.Items {
			h.raw(`<tr`)
			h.attr("id", "project-"+p.ID)
			h.raw(`>`)
			for _, c := range data.Columns {
				if hidden(data.Hidden, c.Key) {
					continue
				}
				h.raw(`<td>`)
				switch c.Key {
				case "customer":
					h.text(p.Customer)
				case "reference":
					h.text(p.Reference)
				case "project":
					h.raw(`<a class="link"`)
					h.attr("href", "/projects/"+p.ID)
					h.raw(`>`)
					h.text(p.ProjectName)
					h.raw(`</a>`)
				case "location":
					h.text(p.Location)
				case "status":
					statusBadge(h, p.Status, p.BadgeClass)
				}
				h.raw(`</td>`)
			}
			h.raw(`<td class="flex gap-1"><a class="btn btn-xs"`)
			h.attr("href", "/projects/"+p.ID+"/edit")
			h.raw(`>Edit</a><button class="btn btn-xs btn-error"`)
			h.attr("hx-delete", "/projects/"+p.ID)
			h.raw(` hx-confirm="Delete this project?">Delete</button></td></tr>`)
		}
		h.raw(`</tbody></table>`)
		h.child(PagerFooter(data.Pager))
		h.raw(`</section>`)
	})
}

func ProjectFormPage(data ProjectFormData, header HeaderData, sidebar SidebarData) templ.Component {
	title := "Add Project"
	if data.ID != "" {
		title = "Edit Project"
	}
	return Layout(title, header, sidebar, ProjectForm(data))
}

// ProjectForm posts to /projects when creating and /projects/{id}/save when
// editing. Errors are keyed by input name.
func ProjectForm(data ProjectFormData) templ.Component {
	return component(func(h *html) {
		action := "/projects"
		heading := "Add Project"
		if data.ID != "" {
			action = "/projects/" + data.ID + "/save"
			heading = "Edit Project"
		}

		h.raw(`<section id="project-form"><h1 class="text-2xl font-bold mb-4">`)
		h.text(heading)
		h.raw(`</h1><form method="post" class="grid grid-cols-2 gap-4" hx-target="#project-form" hx-swap="outerHTML" hx-select="#project-form"`)
		h.attr("action", action)
		h.attr("hx-post", action)
		h.raw(`>`)

		for _, f := range data.Fields {
			h.raw(`<label class="form-control"><span class="label-text">`)
			h.text(f.Label)
			h.raw(`</span>`)
			if f.Name == "status" {
				h.raw(`<select name="status" class="select select-bordered select-sm">`)
				selectOptions(h, data.Statuses, data.Values["status"], "Select status")
				h.raw(`</select>`)
			} else {
				typ := f.Type
				if typ == "" {
					typ = "text"
				}
				h.raw(`<input class="input input-bordered input-sm"`)
				h.attr("type", typ)
				h.attr("name", f.Name)
				h.attr("value", data.Values[f.Name])
				if data.Errors[f.Name] != "" {
					h.raw(` aria-invalid="true"`)
				}
				h.raw(`>`)
			}
			fieldError(h, data.Errors[f.Name])
			h.raw(`</label>`)
		}

		h.raw(`<div class="col-span-2 flex gap-2 justify-end"><a href="/projects" class="btn btn-ghost">Cancel</a><button type="submit" class="btn btn-primary">Save</button></div>`)
		h.raw(`</form></section>`)
	})
}

func ProjectViewPage(data ProjectViewData, header HeaderData, sidebar SidebarData) templ.Component {
	return Layout(data.ProjectName, header, sidebar, ProjectView(data))
}

func ProjectView(data ProjectViewData) templ.Component {
	return component(func(h *html) {
		h.raw(`<section id="project-view"><div class="flex justify-between mb-4"><h1 class="text-2xl font-bold">`)
		h.text(data.ProjectName)
		h.raw(` `)
		statusBadge(h, data.Status, data.BadgeClass)
		h.raw(`</h1><a class="btn btn-sm"`)
		h.attr("href", "/projects/"+data.ID+"/edit")
		h.raw(`>Edit</a></div><dl class="grid grid-cols-2 gap-2">`)
		for _, f := range data.Fields {
			h.raw(`<div><dt class="text-xs">`)
			h.text(f.Label)
			h.raw(`</dt><dd>`)
			h.text(f.Value)
			h.raw(`</dd></div>`)
		}
		h.raw(`</dl>`)

		h.raw(`<h2 class="font-semibold mt-6 mb-2">Estimates</h2>`)
		if len(data.Estimates) == 0 {
			h.raw(`<p class="text-sm">No estimates for this project.</p>`)
		} else {
			h.raw(`<ul>`)
			for _, r := range data.Estimates {
				h.raw(`<li><a class="link"`)
				h.attr("href", "/estimates/"+r.ID)
				h.raw(`>`)
				h.text(r.Version)
				h.raw(`</a> `)
				statusBadge(h, r.Status, r.BadgeClass)
				h.raw(` `)
				h.text(r.Total)
				h.raw(`</li>`)
			}
			h.raw(`</ul>`)
		}
		h.raw(`</section>`)
	})
}
