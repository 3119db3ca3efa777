package handler

import (
	"bytes"
	"html/template"
	"log/slog"
	"net/http"
)

const (
	DocsPath     = "/docs"
	OpenAPIPath  = "/docs/openapi.yaml"
	swaggerUIVer = "5"
)

// DocsHandler serves the embedded OpenAPI document and a Swagger UI page for it.
type DocsHandler struct {
	document []byte
	page     []byte
}

func NewDocsHandler(document []byte, title string) *DocsHandler {
	var buf bytes.Buffer
	if err := docsPage.Execute(&buf, struct {
		Title, SpecURL, Version string
	}{title, OpenAPIPath, swaggerUIVer}); err != nil {
		slog.Error("failed to render docs page", "error", err)
	}
	return &DocsHandler{document: document, page: buf.Bytes()}
}

func (h *DocsHandler) Document(w http.ResponseWriter, r *http.Request) {
	if len(h.document) == 0 {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/yaml")
	w.Write(h.document)
}

func (h *DocsHandler) UI(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(h.page)
}

var docsPage = template.Must(template.New("docs").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>{{.Title}}</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@{{.Version}}/swagger-ui.css">
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@{{.Version}}/swagger-ui-bundle.js"></script>
  <script>
    SwaggerUIBundle({
      url: "{{.SpecURL}}",
      dom_id: "#swagger-ui",
      presets: [SwaggerUIBundle.presets.apis, SwaggerUIBundle.SwaggerUIStandalonePreset],
      layout: "BaseLayout"
    });
  </script>
</body>
</html>`))
