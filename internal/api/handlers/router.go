package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/arthguru/finance-coach/internal/api/middleware"
	"github.com/arthguru/finance-coach/internal/session"
)

// Router assembles the API routes and the middleware chain. RequestID
// runs before Logger so request logs carry the ID.
func Router(store *session.Store, seed int64, log zerolog.Logger) http.Handler {
	h := NewSessionsHandler(store, seed, log)

	r := chi.NewRouter()

	r.Use(middleware.Recovery(log))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(log))
	r.Use(middleware.CORS)

	r.Route("/api/sessions", func(r chi.Router) {
		r.Post("/", h.CreateSession)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.GetSession)
			r.Delete("/", h.DeleteSession)

			r.Post("/start", h.StartPipeline)
			r.Post("/advance", h.AdvancePipeline)
			r.Post("/reset", h.ResetPipeline)
			r.Put("/data", h.ReplaceData)

			r.Get("/metrics", h.GetMetrics)
			r.Get("/plan", h.GetPlan)
			r.Get("/report", h.GetReport)
			r.Get("/questions", h.GetQuestions)

			r.Post("/chat", h.Chat)
			r.Get("/chat", h.ChatHistory)
		})
	})

	r.Get("/health", Health)

	return r
}
