// internal/app/features/workflows/handler.go

// Package workflows manages process templates and their per-mission
// resource overrides.
package workflows

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/dalemusser/makerhub/internal/app/dispatch"
	workflowstore "github.com/dalemusser/makerhub/internal/app/store/workflows"
	"github.com/dalemusser/makerhub/internal/app/system/httpjson"
	"github.com/dalemusser/makerhub/internal/app/system/timeouts"
	"github.com/dalemusser/makerhub/internal/domain/models"
)

type Handler struct {
	Workflows *workflowstore.Store
	Log       *zap.Logger
}

func NewHandler(workflows *workflowstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Workflows: workflows, Log: logger}
}

type workflowRequest struct {
	Name   string                 `json:"name" validate:"required"`
	Phases []models.WorkflowPhase `json:"phases" validate:"min=1"`
}

type resourcesRequest struct {
	MissionID string                `json:"mission_id" validate:"required"`
	Resources []models.ResourceLink `json:"resources"`
}

// ServeList handles GET /workflows.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Workflows.List(ctx)
	if err != nil {
		h.Log.Error("workflow list failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not load workflows")
		return
	}
	httpjson.Write(w, http.StatusOK, list)
}

// ServeDetail handles GET /workflows/{id}.
func (h *Handler) ServeDetail(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	wf, err := h.Workflows.GetByID(ctx, chi.URLParam(r, "id"))
	if err == workflowstore.ErrNotFound {
		httpjson.Error(w, http.StatusNotFound, "workflow not found")
		return
	}
	if err != nil {
		h.Log.Error("workflow load failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not load workflow")
		return
	}
	httpjson.Write(w, http.StatusOK, wf)
}

// HandleCreate handles POST /workflows.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req workflowRequest
	if err := httpjson.DecodeValid(r, &req); err != nil {
		httpjson.Error(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	created, err := h.Workflows.Create(ctx, models.Workflow{
		Name:   req.Name,
		Phases: req.Phases,
	})
	if err != nil {
		h.Log.Error("workflow create failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not create workflow")
		return
	}
	httpjson.Write(w, http.StatusCreated, created)
}

// HandleUpdate handles PUT /workflows/{id}: replaces the name and the full
// phase list.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req workflowRequest
	if err := httpjson.DecodeValid(r, &req); err != nil {
		httpjson.Error(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	err := h.Workflows.Update(ctx, chi.URLParam(r, "id"), req.Name, req.Phases)
	switch err {
	case nil:
		httpjson.Write(w, http.StatusOK, map[string]string{"status": "updated"})
	case workflowstore.ErrNotFound:
		httpjson.Error(w, http.StatusNotFound, "workflow not found")
	default:
		h.Log.Error("workflow update failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not update workflow")
	}
}

// HandleSetResources handles PUT /workflows/{id}/phases/{phase}/resources:
// attaches a mission-specific resource list to one phase.
func (h *Handler) HandleSetResources(w http.ResponseWriter, r *http.Request) {
	phaseIndex, err := strconv.Atoi(chi.URLParam(r, "phase"))
	if err != nil || phaseIndex < 0 {
		httpjson.Error(w, http.StatusUnprocessableEntity, "phase must be a non-negative integer index")
		return
	}

	var req resourcesRequest
	if err := httpjson.DecodeValid(r, &req); err != nil {
		httpjson.Error(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	err = h.Workflows.SetMissionResources(ctx, chi.URLParam(r, "id"), phaseIndex, req.MissionID, req.Resources)
	switch err {
	case nil:
		httpjson.Write(w, http.StatusOK, map[string]string{"status": "updated"})
	case workflowstore.ErrNotFound:
		httpjson.Error(w, http.StatusNotFound, "workflow not found")
	default:
		h.Log.Error("workflow resources update failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not update phase resources")
	}
}

// HandleDelete handles DELETE /workflows/{id}?confirm=true.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if !httpjson.Confirmed(r) {
		httpjson.Error(w, http.StatusUnprocessableEntity, dispatch.ErrConfirmRequired.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	n, err := h.Workflows.Delete(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.Log.Error("workflow delete failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not delete workflow")
		return
	}
	if n == 0 {
		httpjson.Error(w, http.StatusNotFound, "workflow not found")
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]string{"status": "deleted"})
}
