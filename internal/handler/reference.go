package handler

import (
	"net/http"

	"github.com/BuzzLyutic/task-tracker/internal/repo"
	"github.com/BuzzLyutic/task-tracker/pkg/respond"
)

type ReferenceHandler struct {
	ref *repo.ReferenceRepo
}

func NewReferenceHandler(ref *repo.ReferenceRepo) *ReferenceHandler {
	return &ReferenceHandler{ref: ref}
}

func (h *ReferenceHandler) Users(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, r, http.StatusOK, h.ref.Users(r.Context()))
}

func (h *ReferenceHandler) Categories(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, r, http.StatusOK, h.ref.Categories(r.Context()))
}
