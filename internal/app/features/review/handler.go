// internal/app/features/review/handler.go

// Package review serves the instructor review queue and the step verdict
// endpoints. The reviewer identity always comes from the session, never the
// request body.
package review

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/dalemusser/makerhub/internal/app/dispatch"
	projectstore "github.com/dalemusser/makerhub/internal/app/store/projects"
	"github.com/dalemusser/makerhub/internal/app/system/auth"
	"github.com/dalemusser/makerhub/internal/app/system/httpjson"
	"github.com/dalemusser/makerhub/internal/app/system/timeouts"
)

type Handler struct {
	Dispatcher *dispatch.Dispatcher
	Log        *zap.Logger
}

func NewHandler(d *dispatch.Dispatcher, logger *zap.Logger) *Handler {
	return &Handler{Dispatcher: d, Log: logger}
}

type verdictRequest struct {
	Verdict  string `json:"verdict" validate:"required,oneof=approved rejected"`
	Feedback string `json:"feedback"`
}

// ServeQueue handles GET /review: every project with a step awaiting
// review.
func (h *Handler) ServeQueue(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Dispatcher.Projects().ListPendingReview(ctx)
	if err != nil {
		h.Log.Error("review queue load failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not load review queue")
		return
	}
	httpjson.Write(w, http.StatusOK, list)
}

// HandleVerdict handles POST /review/{projectID}/steps/{step}: approve or
// reject one submitted step. Rejection without feedback never reaches the
// store.
func (h *Handler) HandleVerdict(w http.ResponseWriter, r *http.Request) {
	var req verdictRequest
	if err := httpjson.DecodeValid(r, &req); err != nil {
		httpjson.Error(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	stepIndex, err := strconv.Atoi(chi.URLParam(r, "step"))
	if err != nil {
		httpjson.Error(w, http.StatusUnprocessableEntity, "step must be an integer index")
		return
	}

	reviewer := ""
	if u, ok := auth.CurrentUser(r); ok {
		reviewer = u.ID
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	project, err := h.Dispatcher.ReviewStep(ctx, chi.URLParam(r, "projectID"), stepIndex, req.Verdict, reviewer, req.Feedback)
	switch err {
	case nil:
		httpjson.Write(w, http.StatusOK, project)
	case projectstore.ErrNotFound:
		httpjson.Error(w, http.StatusNotFound, "project not found")
	case dispatch.ErrFeedbackRequired, dispatch.ErrReviewerRequired,
		dispatch.ErrBadTransition, dispatch.ErrBadStepIndex, dispatch.ErrBadDecision:
		httpjson.Error(w, http.StatusUnprocessableEntity, err.Error())
	default:
		h.Log.Error("review verdict failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not record verdict")
	}
}
