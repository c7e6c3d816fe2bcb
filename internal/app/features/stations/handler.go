// internal/app/features/stations/handler.go

// Package stations manages the themed learning zones and their per-grade
// activation.
package stations

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/dalemusser/makerhub/internal/app/dispatch"
	"github.com/dalemusser/makerhub/internal/app/mirror"
	"github.com/dalemusser/makerhub/internal/app/resolve"
	stationstore "github.com/dalemusser/makerhub/internal/app/store/stations"
	"github.com/dalemusser/makerhub/internal/app/system/httpjson"
	"github.com/dalemusser/makerhub/internal/app/system/timeouts"
	"github.com/dalemusser/makerhub/internal/domain/models"
)

type Handler struct {
	Dispatcher *dispatch.Dispatcher
	Mirror     *mirror.Mirror
	Log        *zap.Logger
}

func NewHandler(d *dispatch.Dispatcher, m *mirror.Mirror, logger *zap.Logger) *Handler {
	return &Handler{Dispatcher: d, Mirror: m, Log: logger}
}

type stationRequest struct {
	Name  string `json:"name" validate:"required"`
	Label string `json:"label"`
	Theme string `json:"theme"`
	Icon  string `json:"icon"`
}

type toggleRequest struct {
	GradeID string `json:"grade_id" validate:"required"`
}

// ServeList handles GET /stations.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Dispatcher.Stations().List(ctx)
	if err != nil {
		h.Log.Error("station list failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not load stations")
		return
	}
	httpjson.Write(w, http.StatusOK, list)
}

// ServeDisplayName handles GET /stations/display-name?field=…, resolving a
// mission's free-form station reference to its display label.
func (h *Handler) ServeDisplayName(w http.ResponseWriter, r *http.Request) {
	field := r.URL.Query().Get("field")
	name := resolve.StationDisplayName(h.Mirror.Snapshot(), field)
	httpjson.Write(w, http.StatusOK, map[string]string{"display_name": name})
}

// HandleCreate handles POST /stations.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req stationRequest
	if err := httpjson.DecodeValid(r, &req); err != nil {
		httpjson.Error(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	created, err := h.Dispatcher.Stations().Create(ctx, models.Station{
		Name:  req.Name,
		Label: req.Label,
		Theme: req.Theme,
		Icon:  req.Icon,
	})
	if err != nil {
		h.Log.Error("station create failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not create station")
		return
	}
	httpjson.Write(w, http.StatusCreated, created)
}

// HandleUpdate handles PUT /stations/{id}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req stationRequest
	if err := httpjson.DecodeValid(r, &req); err != nil {
		httpjson.Error(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	err := h.Dispatcher.Stations().UpdateInfo(ctx, chi.URLParam(r, "id"), req.Name, req.Label, req.Theme, req.Icon)
	if err == stationstore.ErrNotFound {
		httpjson.Error(w, http.StatusNotFound, "station not found")
		return
	}
	if err != nil {
		h.Log.Error("station update failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not update station")
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]string{"status": "updated"})
}

// HandleToggle handles POST /stations/{id}/toggle: activates or deactivates
// the station for one grade, keeping activation exclusive per grade.
func (h *Handler) HandleToggle(w http.ResponseWriter, r *http.Request) {
	var req toggleRequest
	if err := httpjson.DecodeValid(r, &req); err != nil {
		httpjson.Error(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	active, err := h.Dispatcher.ToggleStationActivation(ctx, chi.URLParam(r, "id"), req.GradeID)
	if err == stationstore.ErrNotFound {
		httpjson.Error(w, http.StatusNotFound, "station not found")
		return
	}
	if err != nil {
		h.Log.Error("station toggle failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not toggle station")
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]any{"active": active, "grade_id": req.GradeID})
}

// HandleDelete handles DELETE /stations/{id}?confirm=true.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if !httpjson.Confirmed(r) {
		httpjson.Error(w, http.StatusUnprocessableEntity, dispatch.ErrConfirmRequired.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	n, err := h.Dispatcher.Stations().Delete(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.Log.Error("station delete failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not delete station")
		return
	}
	if n == 0 {
		httpjson.Error(w, http.StatusNotFound, "station not found")
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]string{"status": "deleted"})
}
