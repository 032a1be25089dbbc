package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	router.Route("/api/users", func(r chi.Router) {
		r.Post("/", h.createUser)
		r.Post("/login", h.login)
		r.Post("/external-auth", h.externalAuth)
		r.Get("/external/{externalID}", h.getUserByExternalAuthID)

		r.Get("/{userID}", h.getUser)
		r.Put("/{userID}", h.updateUser)
		r.Delete("/{userID}", h.deleteUser)
		r.Get("/{userID}/lists", h.listsByOwner)
	})

	router.Route("/api/lists", func(r chi.Router) {
		r.Post("/", h.createList)
		r.Get("/shared/{shareToken}", h.getSharedList)

		r.Get("/{listID}", h.getList)
		r.Put("/{listID}", h.updateList)
		r.Patch("/{listID}/increment-version", h.incrementListVersion)
		r.Delete("/{listID}", h.deleteList)

		r.Get("/{listID}/tasks", h.currentTasks)
		r.Get("/{listID}/tasks/{version}", h.tasksAtVersion)
		r.Get("/{listID}/history", h.listHistory)
		r.Post("/{listID}/clear", h.clearList)
		r.Post("/{listID}/rollover", h.rolloverList)
	})

	router.Route("/api/tasks", func(r chi.Router) {
		r.Post("/", h.createTask)

		r.Get("/{taskID}", h.getTask)
		r.Put("/{taskID}", h.updateTask)
		r.Delete("/{taskID}", h.deleteTask)

		r.Post("/{taskID}/toggle-completion", h.toggleCompletion)
		r.Post("/{taskID}/toggle-priority", h.togglePriority)
		r.Post("/{taskID}/toggle-recurring", h.toggleRecurring)
	})

	return router
}
