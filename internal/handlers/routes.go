package handlers

import (
	"goalTracker/internal/view"
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (h *GoalHandler) Register(r chi.Router) {
	r.Get("/", h.Index)
	r.Get("/health", h.HealthCheck)
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServerFS(view.Static())))

	r.Route("/goals", func(r chi.Router) {
		r.Post("/", h.AddGoal)

		r.Route("/{id}", func(r chi.Router) {
			r.Post("/complete", h.CompleteGoal)
			r.Post("/progress", h.UpdateProgress)
			r.Get("/edit", h.EditForm)
			r.Post("/edit", h.EditGoal)
			r.Post("/delete", h.DeleteGoal)
		})
	})
	r.Post("/completed/{id}/delete", h.DeleteCompletedGoal)

	r.Route("/api", func(r chi.Router) {
		r.Get("/goals", h.ListGoals)
		r.Post("/goals", h.PostGoal)
		r.Put("/goals/{id}", h.PutGoal)
		r.Post("/goals/{id}/complete", h.PostComplete)
		r.Post("/goals/{id}/progress", h.PostProgress)
		r.Delete("/goals/{id}", h.DeleteGoalAPI)

		r.Get("/completed", h.ListCompleted)
		r.Delete("/completed/{id}", h.DeleteCompletedAPI)

		r.Get("/stats", h.GetStats)
	})
}
