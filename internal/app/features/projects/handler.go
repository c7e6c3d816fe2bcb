// internal/app/features/projects/handler.go

// Package projects serves the student-side project surface: step
// transitions and progress commits.
package projects

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/dalemusser/makerhub/internal/app/dispatch"
	projectstore "github.com/dalemusser/makerhub/internal/app/store/projects"
	"github.com/dalemusser/makerhub/internal/app/system/httpjson"
	"github.com/dalemusser/makerhub/internal/app/system/timeouts"
	"github.com/dalemusser/makerhub/internal/domain/models"
)

type Handler struct {
	Dispatcher *dispatch.Dispatcher
	Log        *zap.Logger
}

func NewHandler(d *dispatch.Dispatcher, logger *zap.Logger) *Handler {
	return &Handler{Dispatcher: d, Log: logger}
}

type commitRequest struct {
	Message string `json:"message" validate:"required"`
}

// ServeDetail handles GET /projects/{id}.
func (h *Handler) ServeDetail(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	p, err := h.Dispatcher.Projects().GetByID(ctx, chi.URLParam(r, "id"))
	if err == projectstore.ErrNotFound {
		httpjson.Error(w, http.StatusNotFound, "project not found")
		return
	}
	if err != nil {
		h.Log.Error("project load failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not load project")
		return
	}
	httpjson.Write(w, http.StatusOK, p)
}

// HandleStartStep handles POST /projects/{id}/steps/{step}/start.
func (h *Handler) HandleStartStep(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.Dispatcher.StartStep)
}

// HandleSubmitStep handles POST /projects/{id}/steps/{step}/submit: sends
// the step to the review queue.
func (h *Handler) HandleSubmitStep(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.Dispatcher.SubmitStep)
}

// HandleCommit handles POST /projects/{id}/commits.
func (h *Handler) HandleCommit(w http.ResponseWriter, r *http.Request) {
	var req commitRequest
	if err := httpjson.DecodeValid(r, &req); err != nil {
		httpjson.Error(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	commit, err := h.Dispatcher.Projects().AddCommit(ctx, chi.URLParam(r, "id"), req.Message)
	if err == projectstore.ErrNotFound {
		httpjson.Error(w, http.StatusNotFound, "project not found")
		return
	}
	if err != nil {
		h.Log.Error("commit append failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not record commit")
		return
	}
	httpjson.Write(w, http.StatusCreated, commit)
}

// HandleDelete handles DELETE /projects/{id}?confirm=true.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	err := h.Dispatcher.DeleteStudentProject(ctx, chi.URLParam(r, "id"), httpjson.Confirmed(r))
	switch err {
	case nil:
		httpjson.Write(w, http.StatusOK, map[string]string{"status": "deleted"})
	case dispatch.ErrConfirmRequired:
		httpjson.Error(w, http.StatusUnprocessableEntity, err.Error())
	case projectstore.ErrNotFound:
		httpjson.Error(w, http.StatusNotFound, "project not found")
	default:
		h.Log.Error("project delete failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not delete project")
	}
}

func (h *Handler) transition(w http.ResponseWriter, r *http.Request, fn func(context.Context, string, int) (models.StudentProject, error)) {
	stepIndex, err := strconv.Atoi(chi.URLParam(r, "step"))
	if err != nil {
		httpjson.Error(w, http.StatusUnprocessableEntity, "step must be an integer index")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	project, err := fn(ctx, chi.URLParam(r, "id"), stepIndex)
	switch err {
	case nil:
		httpjson.Write(w, http.StatusOK, project)
	case projectstore.ErrNotFound:
		httpjson.Error(w, http.StatusNotFound, "project not found")
	case dispatch.ErrBadTransition, dispatch.ErrBadStepIndex:
		httpjson.Error(w, http.StatusUnprocessableEntity, err.Error())
	default:
		h.Log.Error("step transition failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not update step")
	}
}
