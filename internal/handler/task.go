package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/task-tracker/internal/model"
	"github.com/BuzzLyutic/task-tracker/internal/repo"
	"github.com/BuzzLyutic/task-tracker/internal/service"
	"github.com/BuzzLyutic/task-tracker/pkg/respond"
)

const maxFormMemory = 1 << 20

type TaskHandler struct {
	service *service.TaskService
	logger  *zap.Logger
}

func NewTaskHandler(srv *service.TaskService, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		service: srv,
		logger:  logger,
	}
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength == 0 {
		respond.Error(w, r, http.StatusBadRequest, "empty request body")
		return
	}

	var req model.Task
	if err := decodeBody(r, &req, taskFromForm); err != nil {
		h.logger.Warn("failed to decode request body", zap.Error(err))
		respond.Error(w, r, http.StatusBadRequest, fmt.Sprintf("invalid body: %v", err))
		return
	}

	task, err := h.service.Create(r.Context(), req)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}

	w.Header().Set("Location", "/api/tasks/"+url.PathEscape(task.ID))
	respond.JSON(w, r, http.StatusCreated, task)
}

func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	task, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, task)
}

func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	var filter model.TaskFilter
	query := r.URL.Query()
	if status := query.Get("status"); status != "" {
		filter.Status = &status
	}
	if dueDate := query.Get("dueDate"); dueDate != "" {
		filter.DueDate = &dueDate
	}

	tasks, err := h.service.List(r.Context(), filter)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, tasks)
}

func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch model.TaskPatch
	if err := decodeBody(r, &patch, patchFromForm); err != nil {
		respond.Error(w, r, http.StatusBadRequest, fmt.Sprintf("invalid body: %v", err))
		return
	}

	task, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, task)
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.handleErrors(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, map[string]string{"message": "task deleted"})
}

func (h *TaskHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.GetStats(r.Context())
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, stats)
}

func (h *TaskHandler) handleErrors(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *service.ValidationError
	switch {
	case errors.As(err, &validationErr):
		respond.Error(w, r, http.StatusBadRequest, validationErr.Reason)
	case errors.Is(err, repo.ErrorNotFound):
		respond.Error(w, r, http.StatusNotFound, err.Error())
	case errors.Is(err, repo.ErrPersistence):
		h.logger.Error("persistence error", zap.Error(err))
		respond.Error(w, r, http.StatusInternalServerError, "failed to persist tasks")
	default:
		h.logger.Error("internal error", zap.Error(err))
		respond.Error(w, r, http.StatusInternalServerError, "internal error")
	}
}

// decodeBody понимает JSON и формы (urlencoded, multipart)
func decodeBody[T any](r *http.Request, dst *T, fromForm func(url.Values) T) error {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	switch mediaType {
	case "application/x-www-form-urlencoded", "multipart/form-data":
		if err := parseForm(r); err != nil {
			return err
		}
		*dst = fromForm(r.Form)
		return nil
	default:
		return json.NewDecoder(r.Body).Decode(dst)
	}
}

func parseForm(r *http.Request) error {
	if err := r.ParseMultipartForm(maxFormMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return err
	}
	return nil
}

func taskFromForm(form url.Values) model.Task {
	return model.Task{
		Title:       form.Get("title"),
		Description: form.Get("description"),
		Status:      form.Get("status"),
		DueDate:     form.Get("dueDate"),
		Category:    form.Get("category"),
		User:        form.Get("user"),
	}
}

func patchFromForm(form url.Values) model.TaskPatch {
	t := taskFromForm(form)
	return model.TaskPatch{
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		DueDate:     t.DueDate,
		Category:    t.Category,
		User:        t.User,
	}
}
