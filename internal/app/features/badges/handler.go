// internal/app/features/badges/handler.go

// Package badges manages badge definitions and on-demand evaluation of
// their criteria against the live snapshot.
package badges

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/dalemusser/makerhub/internal/app/dispatch"
	badgestore "github.com/dalemusser/makerhub/internal/app/store/badges"
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

type badgeRequest struct {
	Name        string               `json:"name" validate:"required"`
	Description string               `json:"description"`
	Icon        string               `json:"icon"`
	Criteria    models.BadgeCriteria `json:"criteria"`
}

// ServeList handles GET /badges.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Dispatcher.Badges().List(ctx)
	if err != nil {
		h.Log.Error("badge list failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not load badges")
		return
	}
	httpjson.Write(w, http.StatusOK, list)
}

// HandleCreate handles POST /badges.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req badgeRequest
	if err := httpjson.DecodeValid(r, &req); err != nil {
		httpjson.Error(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	created, err := h.Dispatcher.Badges().Create(ctx, models.Badge{
		Name:        req.Name,
		Description: req.Description,
		Icon:        req.Icon,
		Criteria:    req.Criteria,
	})
	if err == models.ErrInvalidCriteria {
		httpjson.Error(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err != nil {
		h.Log.Error("badge create failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not create badge")
		return
	}
	httpjson.Write(w, http.StatusCreated, created)
}

// HandleUpdate handles PUT /badges/{id}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req badgeRequest
	if err := httpjson.DecodeValid(r, &req); err != nil {
		httpjson.Error(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	err := h.Dispatcher.Badges().Update(ctx, models.Badge{
		ID:          chi.URLParam(r, "id"),
		Name:        req.Name,
		Description: req.Description,
		Icon:        req.Icon,
		Criteria:    req.Criteria,
	})
	switch err {
	case nil:
		httpjson.Write(w, http.StatusOK, map[string]string{"status": "updated"})
	case badgestore.ErrNotFound:
		httpjson.Error(w, http.StatusNotFound, "badge not found")
	case models.ErrInvalidCriteria:
		httpjson.Error(w, http.StatusUnprocessableEntity, err.Error())
	default:
		h.Log.Error("badge update failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not update badge")
	}
}

// HandleDelete handles DELETE /badges/{id}?confirm=true.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if !httpjson.Confirmed(r) {
		httpjson.Error(w, http.StatusUnprocessableEntity, dispatch.ErrConfirmRequired.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	n, err := h.Dispatcher.Badges().Delete(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.Log.Error("badge delete failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not delete badge")
		return
	}
	if n == 0 {
		httpjson.Error(w, http.StatusNotFound, "badge not found")
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// HandleEvaluate handles POST /badges/evaluate: returns the awards every
// stored criteria would grant right now. Nothing is persisted.
func (h *Handler) HandleEvaluate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	awards, err := h.Dispatcher.EvaluateBadges(ctx)
	if err != nil {
		h.Log.Error("badge evaluation failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not evaluate badges")
		return
	}
	if awards == nil {
		awards = []dispatch.BadgeAward{}
	}
	httpjson.Write(w, http.StatusOK, awards)
}
