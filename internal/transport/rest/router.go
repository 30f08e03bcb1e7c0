package rest

import "net/http"

// NewRouter wires all REST routes onto a ServeMux.
func NewRouter(ah *AnalysisHandler, sh *SectionsHandler, hh *HealthHandler) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/analyses", ah.CreateFromAudio)
	mux.HandleFunc("POST /api/analyses/text", ah.CreateFromText)
	mux.HandleFunc("GET /api/analyses", ah.List)
	mux.HandleFunc("GET /api/analyses/{id}", ah.Get)
	mux.HandleFunc("GET /api/analyses/{id}/export", ah.Export)

	mux.HandleFunc("GET /api/analyses/{id}/sections", sh.Get)
	mux.HandleFunc("PUT /api/analyses/{id}/sections", sh.Update)
	mux.HandleFunc("POST /api/analyses/{id}/sections/all", sh.SetAll)

	mux.HandleFunc("GET /health", hh.Health)
	mux.HandleFunc("GET /health/live", hh.Live)
	mux.HandleFunc("GET /health/ready", hh.Ready)

	return mux
}
