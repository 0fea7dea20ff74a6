package handler

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/task-tracker/internal/model"
	"github.com/BuzzLyutic/task-tracker/internal/repo"
	"github.com/BuzzLyutic/task-tracker/internal/service"
	"github.com/BuzzLyutic/task-tracker/pkg/respond"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// PageHandler отдает серверные HTML страницы поверх того же сервиса задач
type PageHandler struct {
	service *service.TaskService
	ref     *repo.ReferenceRepo
	logger  *zap.Logger
}

func NewPageHandler(srv *service.TaskService, ref *repo.ReferenceRepo, logger *zap.Logger) *PageHandler {
	return &PageHandler{
		service: srv,
		ref:     ref,
		logger:  logger,
	}
}

type formView struct {
	Task       model.Task
	Error      string
	Users      []model.User
	Categories []model.Category
	Statuses   []string
}

func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.service.List(r.Context(), model.TaskFilter{})
	if err != nil {
		h.logger.Error("failed to list tasks", zap.Error(err))
		http.Error(w, "Something went wrong! Please try again later.", http.StatusInternalServerError)
		return
	}
	h.render(w, r, http.StatusOK, "index", tasks)
}

func (h *PageHandler) Detail(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	task, err := h.service.Get(r.Context(), id)
	if errors.Is(err, repo.ErrorNotFound) {
		h.render(w, r, http.StatusNotFound, "notfound", id)
		return
	}
	if err != nil {
		h.logger.Error("failed to get task", zap.String("id", id), zap.Error(err))
		http.Error(w, "Something went wrong! Please try again later.", http.StatusInternalServerError)
		return
	}
	h.render(w, r, http.StatusOK, "detail", task)
}

func (h *PageHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "new", h.formPage(r.Context(), model.Task{}, ""))
}

func (h *PageHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		h.render(w, r, http.StatusBadRequest, "new", h.formPage(r.Context(), model.Task{}, "invalid form"))
		return
	}

	candidate := taskFromForm(r.Form)
	_, err := h.service.Create(r.Context(), candidate)

	var validationErr *service.ValidationError
	switch {
	case errors.As(err, &validationErr):
		h.render(w, r, http.StatusBadRequest, "new", h.formPage(r.Context(), candidate, validationErr.Reason))
		return
	case err != nil:
		// запись уже в памяти даже если сброс на диск не удался
		h.logger.Error("failed to create task from form", zap.Error(err))
		http.Error(w, "Something went wrong! Please try again later.", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *PageHandler) formPage(ctx context.Context, t model.Task, reason string) formView {
	return formView{
		Task:       t,
		Error:      reason,
		Users:      h.ref.Users(ctx),
		Categories: h.ref.Categories(ctx),
		Statuses:   []string{model.StatusPending, model.StatusCompleted},
	}
}

func (h *PageHandler) render(w http.ResponseWriter, r *http.Request, code int, name string, data any) {
	if err := respond.HTML(w, r, code, pageTemplates, name, data); err != nil {
		h.logger.Error("failed to render page", zap.String("page", name), zap.Error(err))
	}
}
