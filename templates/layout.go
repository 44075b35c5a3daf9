package templates

import (
	"strconv"
	"strings"

	"github.com/a-h/templ"
)

type navLink struct {
	href  string
	label string
	count func(SidebarData) int
}

var navLinks = []navLink{
	{"/", "Dashboard", nil},
	{"/projects", "Projects", func(s SidebarData) int { return s.ProjectCount }},
	{"/estimates", "Estimates", func(s SidebarData) int { return s.EstimateCount }},
	{"/estimates/new", "New Estimate", func(s SidebarData) int { return s.DraftCount }},
}

// toastScript shows HX-Trigger toasts and the flash_toast cookie left by
// plain redirects.
const toastScript = `<script>
function showToast(d){var c=document.getElementById('toasts');if(!c||!d)return;var el=document.createElement('div');el.className='alert alert-'+(d.type||'info');el.textContent=d.message;c.appendChild(el);setTimeout(function(){el.remove()},4000)}
document.body.addEventListener('showToast',function(e){showToast(e.detail)});
(function(){var m=document.cookie.match(/(?:^|; )flash_toast=([^;]*)/);if(m){try{showToast(JSON.parse(decodeURIComponent(m[1])))}catch(_){}document.cookie='flash_toast=; Max-Age=0; path=/'}})();
</script>`

// Layout wraps body in the full HTML shell with header and sidebar.
func Layout(title string, header HeaderData, sidebar SidebarData, body templ.Component) templ.Component {
	return component(func(h *html) {
		appName := header.AppName
		if appName == "" {
			appName = "Estimate Tracker"
		}

		h.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.raw(`<title>`)
		h.text(title + " | " + appName)
		h.raw(`</title>`)
		h.raw(`<link rel="stylesheet" href="/static/app.css">`)
		h.raw(`<script src="/static/htmx.min.js"></script>`)
		h.raw(`</head><body class="flex min-h-screen">`)

		h.child(Sidebar(sidebar))

		h.raw(`<div class="flex-1"><header class="navbar border-b"><span class="font-bold">`)
		h.text(appName)
		h.raw(`</span></header><main id="main" class="p-6">`)
		h.child(body)
		h.raw(`</main></div><div id="toasts" class="toast toast-end"></div>`)
		h.raw(toastScript)
		h.raw(`</body></html>`)
	})
}

// Sidebar renders the navigation menu, marking the entry for the current path.
func Sidebar(data SidebarData) templ.Component {
	return component(func(h *html) {
		h.raw(`<aside id="sidebar" class="w-56 border-r"><ul class="menu">`)
		for _, l := range navLinks {
			h.raw(`<li><a`)
			h.attr("href", l.href)
			if navActive(data.ActivePath, l.href) {
				h.raw(` class="active" aria-current="page"`)
			}
			h.raw(`>`)
			h.text(l.label)
			if l.count != nil {
				if n := l.count(data); n > 0 {
					h.raw(` <span class="badge badge-sm">`)
					h.raw(strconv.Itoa(n))
					h.raw(`</span>`)
				}
			}
			h.raw(`</a></li>`)
		}
		h.raw(`</ul></aside>`)
	})
}

func navActive(path, href string) bool {
	switch href {
	case "/":
		return path == "/"
	case "/estimates/new":
		return path == href || strings.HasPrefix(path, "/editor/")
	case "/estimates":
		return path == href || (strings.HasPrefix(path, "/estimates/") && !navActive(path, "/estimates/new"))
	default:
		return path == href || strings.HasPrefix(path, href+"/")
	}
}

// PagerFooter renders "From-To of Total" with previous/next links.
func PagerFooter(p Pager) templ.Component {
	return component(func(h *html) {
		h.raw(`<div class="pager flex justify-between items-center mt-4"><span class="text-sm">`)
		if p.Total == 0 {
			h.raw(`No results`)
		} else {
			h.rawf(`Showing %d-%d of %d`, p.From, p.To, p.Total)
		}
		h.raw(`</span><div class="join">`)
		pagerButton(h, "Prev", p.PrevURL, p.Target)
		h.rawf(`<span class="join-item btn btn-sm btn-disabled">Page %d of %d</span>`, p.Page, p.TotalPages)
		pagerButton(h, "Next", p.NextURL, p.Target)
		h.raw(`</div></div>`)
	})
}

func pagerButton(h *html, label, url, target string) {
	if url == "" {
		h.raw(`<button class="join-item btn btn-sm" disabled>`)
		h.text(label)
		h.raw(`</button>`)
		return
	}
	h.raw(`<a class="join-item btn btn-sm"`)
	h.attr("href", url)
	h.attr("hx-get", url)
	h.attr("hx-target", target)
	h.raw(` hx-swap="outerHTML" hx-push-url="true">`)
	h.text(label)
	h.raw(`</a>`)
}

// statusBadge writes a coloured status pill.
func statusBadge(h *html, status, class string) {
	h.raw(`<span`)
	h.attr("class", "badge "+class)
	h.raw(`>`)
	h.text(status)
	h.raw(`</span>`)
}

func selectOptions(h *html, options []string, selected string, blank string) {
	if blank != "" {
		h.raw(`<option value="">`)
		h.text(blank)
		h.raw(`</option>`)
	}
	for _, o := range options {
		h.raw(`<option`)
		h.attr("value", o)
		if o == selected {
			h.raw(` selected`)
		}
		h.raw(`>`)
		h.text(o)
		h.raw(`</option>`)
	}
}

func fieldError(h *html, msg string) {
	if msg == "" {
		return
	}
	h.raw(`<p class="text-error text-xs field-error">`)
	h.text(msg)
	h.raw(`</p>`)
}
