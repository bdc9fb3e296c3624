package handler

import (
	"net/http"

	"github.com/ychsieh/travel-planner/spec"
)

// scalarPage is a minimal HTML shell that loads the Scalar API reference UI
// pointed at the embedded spec served from /openapi.yaml.
const scalarPage = `<!doctype html>
<html>
  <head>
    <title>Travel Planner API Reference</title>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
  </head>
  <body>
    <script id="api-reference" data-url="/openapi.yaml"></script>
    <script src="https://cdn.jsdelivr.net/npm/@scalar/api-reference"></script>
  </body>
</html>`

// handleOpenAPI serves the embedded OpenAPI document at GET /openapi.yaml.
func (s *Server) handleOpenAPI(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(spec.OpenAPI)
}

// handleDocs serves the interactive API reference at GET /docs.
func (s *Server) handleDocs(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(scalarPage))
}
