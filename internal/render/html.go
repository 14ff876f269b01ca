package render

import (
	"html/template"
	"io"

	"nanowatch/internal/summary"
)

var pageTemplate = template.Must(template.New("studies").Parse(`<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Oxford Nanopore studies</title>
<style>
body { font-family: sans-serif; margin: 2em; }
table { border-collapse: collapse; }
th, td { border: 1px solid #ccc; padding: 4px 8px; text-align: left; }
th { background: #f0f0f0; }
</style>
</head>
<body>
<h1>Oxford Nanopore studies</h1>
<table>
<tr><th>Study</th><th>Released</th><th>Platform</th><th>Type</th><th>Species</th><th>Biosamples</th><th>Gbases</th><th>Gbytes</th><th>Title</th></tr>
{{range .}}<tr><td>{{.StudyAccession}}</td><td>{{.ReleaseDate}}</td><td>{{.Platforms}}</td><td>{{.SequencingTypes}}</td><td>{{.Species}}</td><td>{{.Biosamples}}</td><td>{{printf "%.1f" .Gbases}}</td><td>{{printf "%.1f" .Gbytes}}</td><td>{{.Title}}</td></tr>
{{end}}</table>
</body>
</html>
`))

// HTML writes a standalone report page; cell content is template-escaped.
func HTML(w io.Writer, rows []summary.StudyRow) error {
	return pageTemplate.Execute(w, rows)
}
