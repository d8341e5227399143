package web

import (
	"encoding/base64"
	"fmt"
	"html/template"
	"io"

	"github.com/dustin/go-humanize"

	"github.com/fr4nk3nst1ner/salarydash/internal/dashboard"
)

// plotlyJS renders the figures that have no server-side image
const plotlyJS = "https://cdn.plot.ly/plotly-2.35.2.min.js"

var funcMap = template.FuncMap{
	"pngData": func(img []byte) template.URL {
		return template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(img))
	},
	"withQuery": func(path, query string) template.URL {
		if query == "" {
			return template.URL(path)
		}
		return template.URL(path + "?" + query)
	},
	"comma": func(n int) string { return humanize.Comma(int64(n)) },
	"plotlyJS": func() string { return plotlyJS },
}

var (
	pageTmpl  = template.Must(template.New("page").Funcs(funcMap).Parse(tmplBase + tmplDashboard))
	errorTmpl = template.Must(template.New("error").Funcs(funcMap).Parse(tmplBase + tmplError))
)

// errorPage is the data of the error template
type errorPage struct {
	Title   string
	Icon    string
	Status  int
	Heading string
	Message string
}

// RenderHTML writes the dashboard page as a complete HTML document
func RenderHTML(w io.Writer, page *dashboard.Page) error {
	if err := pageTmpl.ExecuteTemplate(w, "base", page); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	return nil
}

func renderError(w io.Writer, status int, heading, message string) error {
	return errorTmpl.ExecuteTemplate(w, "base", errorPage{
		Title:   dashboard.PageTitle,
		Icon:    dashboard.PageIcon,
		Status:  status,
		Heading: heading,
		Message: message,
	})
}

const tmplBase = `{{define "base"}}<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Title}}</title>
<link rel="icon" href="data:image/svg+xml,<svg xmlns=%22http://www.w3.org/2000/svg%22 viewBox=%220 0 100 100%22><text y=%22.9em%22 font-size=%2290%22>{{.Icon}}</text></svg>">
<script src="{{plotlyJS}}" charset="utf-8"></script>
<style>
:root {
	--bg-primary: #0e1117;
	--bg-secondary: #161a23;
	--bg-card: #1c212c;
	--accent: #00cc6a;
	--text-primary: #e8e8ed;
	--text-secondary: #9aa0b0;
	--border: #2a2f3a;
	--danger: #ff4757;
}
* { margin: 0; padding: 0; box-sizing: border-box; }
body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", sans-serif; background: var(--bg-primary); color: var(--text-primary); line-height: 1.5; }
.layout { display: flex; min-height: 100vh; }
aside { width: 280px; flex-shrink: 0; background: var(--bg-secondary); border-right: 1px solid var(--border); padding: 1.5rem 1rem; }
aside h2 { font-size: 1.1rem; margin-bottom: 1rem; }
aside label { display: block; font-size: .85rem; color: var(--text-secondary); margin: .75rem 0 .25rem; }
aside select { width: 100%; background: var(--bg-card); color: var(--text-primary); border: 1px solid var(--border); border-radius: 6px; padding: .25rem; }
aside .actions { display: flex; gap: .5rem; margin-top: 1rem; }
aside button, aside a.reset { flex: 1; text-align: center; padding: .45rem; border-radius: 6px; border: 1px solid var(--accent); background: transparent; color: var(--accent); cursor: pointer; text-decoration: none; font-size: .9rem; }
aside button { background: var(--accent); color: #0e1117; }
main { flex: 1; padding: 2rem; min-width: 0; }
h1 { font-size: 1.9rem; }
.subheading { color: var(--text-secondary); margin-bottom: 1.5rem; }
h3 { font-size: 1.15rem; margin: 1.5rem 0 .75rem; }
.metrics { display: grid; grid-template-columns: repeat(4, 1fr); gap: 1rem; }
.metric { background: var(--bg-card); border: 1px solid var(--border); border-radius: 10px; padding: 1rem; }
.metric .label { font-size: .85rem; color: var(--text-secondary); }
.metric .value { font-size: 1.6rem; font-weight: 600; overflow-wrap: anywhere; }
.grid { display: grid; grid-template-columns: 1fr 1fr; gap: 1rem; }
.panel { background: var(--bg-card); border: 1px solid var(--border); border-radius: 10px; padding: 1rem; min-height: 200px; }
.panel h4 { font-size: 1rem; margin-bottom: .5rem; }
.panel img { width: 100%; height: auto; border-radius: 6px; background: #fff; }
.panel .plot { width: 100%; height: 420px; }
.placeholder { color: var(--text-secondary); background: rgba(255, 165, 2, .08); border: 1px dashed #ffa502; border-radius: 6px; padding: 1rem; }
.error { color: var(--danger); background: rgba(255, 71, 87, .08); border: 1px solid var(--danger); border-radius: 6px; padding: 1rem; }
.note { color: var(--text-secondary); font-size: .85rem; margin-top: .5rem; }
.table-wrap { overflow-x: auto; max-height: 480px; border: 1px solid var(--border); border-radius: 10px; }
table { border-collapse: collapse; width: 100%; font-size: .85rem; }
th, td { padding: .4rem .75rem; border-bottom: 1px solid var(--border); text-align: left; white-space: nowrap; }
th { position: sticky; top: 0; background: var(--bg-secondary); }
.exports { margin-top: .75rem; font-size: .9rem; }
.exports a { color: var(--accent); margin-right: 1rem; }
</style>
</head>
<body>
{{template "content" .}}
</body>
</html>{{end}}`

const tmplDashboard = `{{define "content"}}<div class="layout">
<aside>
<h2>{{.FiltersTitle}}</h2>
<form method="get" action="/" id="filters">
<input type="hidden" name="applied" value="1">
{{range .Filters}}<label for="f-{{.Param}}">{{.Label}}</label>
<select multiple id="f-{{.Param}}" name="{{.Param}}" size="{{len .Options}}">
{{range .Options}}<option value="{{.Value}}"{{if .Selected}} selected{{end}}>{{.Value}}</option>
{{end}}</select>
{{end}}<div class="actions"><button type="submit">Apply</button><a class="reset" href="/">Reset</a></div>
</form>
</aside>
<main>
<h1>{{.Icon}} {{.Heading}}</h1>
<p class="subheading">{{.Subheading}}</p>

<h3>General Metrics (Annual Salary in USD)</h3>
<div class="metrics">
{{range .Metrics}}<div class="metric"><div class="label">{{.Label}}</div><div class="value">{{.Value}}</div></div>
{{end}}</div>

<h3>Charts</h3>
<div class="grid">
{{range .Charts}}<section class="panel" id="{{.ID}}">
<h4>{{.Title}}</h4>
{{if .Placeholder}}<div class="placeholder">{{.Placeholder}}</div>
{{else if .Error}}<div class="error">{{.Error}}</div>
{{else if .Image}}<img src="{{pngData .Image}}" alt="{{.Title}}">
{{else if .Figure}}<div class="plot" id="plot-{{.ID}}"></div>
<script>Plotly.newPlot("plot-{{.ID}}", {{.Figure.Data}}, {{.Figure.Layout}}, {responsive: true});</script>
{{end}}{{with .Note}}<p class="note">{{.}}</p>{{end}}
</section>
{{end}}</div>

<h3>{{.Detail.Title}}</h3>
{{if .Detail.Placeholder}}<div class="placeholder">{{.Detail.Placeholder}}</div>
{{else}}<div class="table-wrap"><table id="{{.Detail.ID}}">
<thead><tr>{{range .Detail.Columns}}<th>{{.}}</th>{{end}}</tr></thead>
<tbody>
{{range .Detail.Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{end}}</tbody>
</table></div>
<p class="note">Showing {{comma (len .Detail.Rows)}} of {{comma .Detail.Total}} rows</p>
<div class="exports"><a href="{{withQuery "/export.xlsx" .Query}}">Download XLSX</a><a href="{{withQuery "/export.csv" .Query}}">Download CSV</a></div>
{{end}}</main>
</div>{{end}}`

const tmplError = `{{define "content"}}<div class="layout">
<main>
<h1>{{.Icon}} {{.Heading}}</h1>
<div class="error" data-status="{{.Status}}">{{.Message}}</div>
<p class="note"><a href="/" style="color: var(--accent)">Back to the dashboard</a></p>
</main>
</div>{{end}}`
