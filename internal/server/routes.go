package server

import (
	"net/http"
	"strings"
)

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// API routes - Health and discovery
	mux.HandleFunc("/api/health", s.app.HealthHandler.GetHealthHandler)
	mux.HandleFunc("/api/templates", s.app.TemplateHandler.ListTemplatesHandler)

	// API routes - CIM documents
	mux.HandleFunc("/api/cims", s.handleCIMsRoute)  // GET (list), POST (generate)
	mux.HandleFunc("/api/cims/", s.handleCIMRoutes) // GET/DELETE /{id}, POST /{id}/export

	return mux
}

// handleCIMsRoute routes /api/cims by method
func (s *Server) handleCIMsRoute(w http.ResponseWriter, r *http.Request) {
	RouteCRUD(w, r,
		s.app.CIMHandler.ListCIMsHandler, // GET
		s.app.CIMHandler.GenerateHandler, // POST
		nil,                              // PUT
		nil,                              // DELETE
	)
}

// handleCIMRoutes routes /api/cims/{id} and /api/cims/{id}/export
func (s *Server) handleCIMRoutes(w http.ResponseWriter, r *http.Request) {
	if strings.HasSuffix(r.URL.Path, "/export") {
		RouteByMethod(w, r, MethodRouter{
			"POST": s.app.CIMHandler.ExportCIMHandler,
		})
		return
	}

	RouteCRUD(w, r,
		s.app.CIMHandler.GetCIMHandler,    // GET
		nil,                               // POST
		nil,                               // PUT
		s.app.CIMHandler.DeleteCIMHandler, // DELETE
	)
}
