package server

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"readtag/internal/handlers"
	"readtag/internal/middlewares"
	"readtag/internal/utils"
)

func (s *Server) RegisterRoutes() http.Handler {
	r := mux.NewRouter()
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		utils.SendJSONError(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	})
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		utils.SendJSONError(w, "Not Found", http.StatusNotFound)
	})

	r.Use(middlewares.RequestLogger)
	r.Use(middlewares.Instrument)
	r.Use(middlewares.NewCorsMiddleware(s.cfg.Server.Origins()))
	r.Use(s.limiter.Limit)

	ch := handlers.NewCommonHandler()
	r.HandleFunc("/health", ch.HealthHandler).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	s.registerDocumentRoutes(r)
	s.registerSessionRoutes(r)

	return r
}

func (s *Server) registerDocumentRoutes(r *mux.Router) {
	dh := handlers.NewDocumentHandler(s.documentService, s.validator)
	requireSession := middlewares.RequireSession(s.sessionService)

	r.Handle("/api/fetch/{id}", requireSession(http.HandlerFunc(dh.GetDocument))).Methods("GET", "OPTIONS")
	r.Handle("/api/fetch/{id}", requireSession(http.HandlerFunc(dh.UpdateDocumentTags))).Methods("PATCH", "OPTIONS")
	r.Handle("/api/multi-fetch", requireSession(http.HandlerFunc(dh.MultiFetch))).Methods("POST", "OPTIONS")
}

func (s *Server) registerSessionRoutes(r *mux.Router) {
	sh := handlers.NewSessionHandler(s.sessionService)

	r.HandleFunc("/api/session", sh.GetSession).Methods("GET", "OPTIONS")
	r.HandleFunc("/api/session", sh.CreateSession).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/session", sh.DeleteSession).Methods("DELETE", "OPTIONS")
	r.HandleFunc("/api/session/test", sh.TestSession).Methods("POST", "OPTIONS")
}
