// internal/app/features/programs/handler.go

// Package programs manages the curriculum tree: programs and their embedded
// grades and groups.
package programs

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/dalemusser/makerhub/internal/app/dispatch"
	programstore "github.com/dalemusser/makerhub/internal/app/store/programs"
	"github.com/dalemusser/makerhub/internal/app/system/httpjson"
	"github.com/dalemusser/makerhub/internal/app/system/timeouts"
	"github.com/dalemusser/makerhub/internal/domain/models"
)

type Handler struct {
	Programs *programstore.Store
	Log      *zap.Logger
}

func NewHandler(programs *programstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Programs: programs, Log: logger}
}

type programRequest struct {
	Name   string         `json:"name" validate:"required"`
	Grades []models.Grade `json:"grades"`
	Status string         `json:"status" validate:"omitempty,oneof=active archived"`
}

// ServeList handles GET /programs.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Programs.List(ctx)
	if err != nil {
		h.Log.Error("program list failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not load programs")
		return
	}
	httpjson.Write(w, http.StatusOK, list)
}

// ServeDetail handles GET /programs/{id}.
func (h *Handler) ServeDetail(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	p, err := h.Programs.GetByID(ctx, chi.URLParam(r, "id"))
	if err == programstore.ErrNotFound {
		httpjson.Error(w, http.StatusNotFound, "program not found")
		return
	}
	if err != nil {
		h.Log.Error("program load failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not load program")
		return
	}
	httpjson.Write(w, http.StatusOK, p)
}

// HandleCreate handles POST /programs.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req programRequest
	if err := httpjson.DecodeValid(r, &req); err != nil {
		httpjson.Error(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	created, err := h.Programs.Create(ctx, models.Program{
		Name:   req.Name,
		Grades: req.Grades,
		Status: req.Status,
	})
	if err == programstore.ErrDuplicateName {
		httpjson.Error(w, http.StatusConflict, err.Error())
		return
	}
	if err != nil {
		h.Log.Error("program create failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not create program")
		return
	}
	httpjson.Write(w, http.StatusCreated, created)
}

// HandleUpdateTree handles PUT /programs/{id}: replaces the name and the
// whole grades tree in one write.
func (h *Handler) HandleUpdateTree(w http.ResponseWriter, r *http.Request) {
	var req programRequest
	if err := httpjson.DecodeValid(r, &req); err != nil {
		httpjson.Error(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	err := h.Programs.UpdateTree(ctx, chi.URLParam(r, "id"), req.Name, req.Grades)
	switch err {
	case nil:
		httpjson.Write(w, http.StatusOK, map[string]string{"status": "updated"})
	case programstore.ErrNotFound:
		httpjson.Error(w, http.StatusNotFound, "program not found")
	case programstore.ErrDuplicateName:
		httpjson.Error(w, http.StatusConflict, err.Error())
	default:
		h.Log.Error("program update failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not update program")
	}
}

// HandleDelete handles DELETE /programs/{id}?confirm=true.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if !httpjson.Confirmed(r) {
		httpjson.Error(w, http.StatusUnprocessableEntity, dispatch.ErrConfirmRequired.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	n, err := h.Programs.Delete(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.Log.Error("program delete failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not delete program")
		return
	}
	if n == 0 {
		httpjson.Error(w, http.StatusNotFound, "program not found")
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]string{"status": "deleted"})
}
