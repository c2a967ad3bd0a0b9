package apidocs

import (
	"bytes"
	"html"
	"html/template"
	"regexp"
	"sort"
	"strings"
)

// DocsUI selects which interactive documentation UI to serve.
type DocsUI int

const (
	DocsRapiDoc DocsUI = iota
	DocsSwaggerUI
	DocsRedoc
)

type docsPage struct {
	Title   string
	SpecURL string
	Attrs   template.HTMLAttr
}

var attrName = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9-]*$`)

// elementAttrs renders extra element attributes sorted by name. Names that
// are not plain attribute names are dropped.
func elementAttrs(attrs map[string]string) template.HTMLAttr {
	names := make([]string, 0, len(attrs))
	for name := range attrs {
		if attrName.MatchString(name) && !strings.HasPrefix(strings.ToLower(name), "on") {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	var sb strings.Builder
	for _, name := range names {
		sb.WriteString(" " + name + `="` + html.EscapeString(attrs[name]) + `"`)
	}
	return template.HTMLAttr(sb.String())
}

const pageHead = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Title}}</title>`

var docsTemplates = map[DocsUI]*template.Template{
	DocsRapiDoc: template.Must(template.New("rapidoc").Parse(pageHead + `
<script type="module" src="https://unpkg.com/rapidoc/dist/rapidoc-min.js"></script>
</head>
<body>
<rapi-doc spec-url="{{.SpecURL}}"{{.Attrs}}></rapi-doc>
</body>
</html>`)),

	DocsSwaggerUI: template.Must(template.New("swagger").Parse(pageHead + `
<link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist/swagger-ui.css">
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist/swagger-ui-bundle.js"></script>
<script>
SwaggerUIBundle({url: {{.SpecURL}}, dom_id: "#swagger-ui"});
</script>
</body>
</html>`)),

	DocsRedoc: template.Must(template.New("redoc").Parse(pageHead + `
</head>
<body>
<redoc spec-url="{{.SpecURL}}"></redoc>
<script src="https://cdn.redoc.ly/redoc/latest/bundles/redoc.standalone.js"></script>
</body>
</html>`)),
}

// renderDocs executes the page template of the configured UI. Attrs are
// only used by RapiDoc.
func renderDocs(ui DocsUI, page docsPage) ([]byte, error) {
	tmpl, ok := docsTemplates[ui]
	if !ok {
		tmpl = docsTemplates[DocsRapiDoc]
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, page); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
