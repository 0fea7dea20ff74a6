package handler

import (
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/task-tracker/internal/repo"
	"github.com/BuzzLyutic/task-tracker/internal/service"
	"github.com/BuzzLyutic/task-tracker/pkg/respond"
)

type RouterDeps struct {
	Tasks     *service.TaskService
	Reference *repo.ReferenceRepo
	StaticDir string
	Logger    *zap.Logger
}

func NewRouter(deps RouterDeps) http.Handler {
	taskHandler := NewTaskHandler(deps.Tasks, deps.Logger)
	refHandler := NewReferenceHandler(deps.Reference)
	pageHandler := NewPageHandler(deps.Tasks, deps.Reference, deps.Logger)

	r := chi.NewRouter() // Создаем роутер
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(deps.Logger))
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respond.JSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/tasks", func(r chi.Router) {
			r.Post("/", taskHandler.Create)
			r.Get("/", taskHandler.List)
			r.Get("/{id}", taskHandler.Get)
			r.Put("/{id}", taskHandler.Update)
			r.Patch("/{id}", taskHandler.Update)
			r.Delete("/{id}", taskHandler.Delete)
		})
		r.Get("/stats", taskHandler.Stats)
		r.Get("/users", refHandler.Users)
		r.Get("/categories", refHandler.Categories)
	})

	// HTML страницы
	r.Get("/", pageHandler.Index)
	r.Get("/tasks/new", pageHandler.NewForm)
	r.Post("/tasks", pageHandler.Submit)
	r.Get("/tasks/{id}", pageHandler.Detail)

	if deps.StaticDir != "" {
		if info, err := os.Stat(deps.StaticDir); err == nil && info.IsDir() {
			r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir(deps.StaticDir))))
		} else {
			deps.Logger.Warn("static dir not found, static files disabled", zap.String("dir", deps.StaticDir))
		}
	}

	return r
}
