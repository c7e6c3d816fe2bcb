// internal/app/features/rewards/handler.go

// Package rewards serves the reward shop: gadgets, contests, and purchase
// request decisions.
package rewards

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/dalemusser/makerhub/internal/app/dispatch"
	rewardstore "github.com/dalemusser/makerhub/internal/app/store/rewards"
	"github.com/dalemusser/makerhub/internal/app/system/auth"
	"github.com/dalemusser/makerhub/internal/app/system/htmlsanitize"
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

type gadgetRequest struct {
	ID          string `json:"id"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Cost        int    `json:"cost" validate:"gte=0"`
}

type contestRequest struct {
	ID             string     `json:"id"`
	Title          string     `json:"title" validate:"required"`
	Description    string     `json:"description"`
	Banner         string     `json:"banner"`
	RewardGadgetID string     `json:"reward_gadget_id"`
	StartsAt       *time.Time `json:"starts_at"`
	EndsAt         *time.Time `json:"ends_at"`
}

type purchaseRequest struct {
	StudentID string `json:"student_id" validate:"required"`
	GadgetID  string `json:"gadget_id" validate:"required"`
}

type decisionRequest struct {
	Decision string `json:"decision" validate:"required"`
}

// ServeGadgets handles GET /rewards/gadgets.
func (h *Handler) ServeGadgets(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Dispatcher.Rewards().ListGadgets(ctx)
	if err != nil {
		h.Log.Error("gadget list failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not load gadgets")
		return
	}
	httpjson.Write(w, http.StatusOK, list)
}

// HandleSaveGadget handles POST /rewards/gadgets: create or update by id
// presence.
func (h *Handler) HandleSaveGadget(w http.ResponseWriter, r *http.Request) {
	var req gadgetRequest
	if err := httpjson.DecodeValid(r, &req); err != nil {
		httpjson.Error(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	saved, err := h.Dispatcher.SaveGadget(ctx, models.Gadget{
		ID:          req.ID,
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
		Cost:        req.Cost,
	})
	if err == rewardstore.ErrGadgetNotFound {
		httpjson.Error(w, http.StatusNotFound, "gadget not found")
		return
	}
	if err != nil {
		h.Log.Error("gadget save failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not save gadget")
		return
	}
	httpjson.Write(w, http.StatusOK, saved)
}

// ServeContests handles GET /rewards/contests.
func (h *Handler) ServeContests(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Dispatcher.Rewards().ListContests(ctx)
	if err != nil {
		h.Log.Error("contest list failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not load contests")
		return
	}
	httpjson.Write(w, http.StatusOK, list)
}

// HandleSaveContest handles POST /rewards/contests. A missing banner
// inherits the linked gadget's image at save time.
func (h *Handler) HandleSaveContest(w http.ResponseWriter, r *http.Request) {
	var req contestRequest
	if err := httpjson.DecodeValid(r, &req); err != nil {
		httpjson.Error(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	saved, err := h.Dispatcher.SaveContest(ctx, models.Contest{
		ID:             req.ID,
		Title:          req.Title,
		Description:    htmlsanitize.Sanitize(req.Description),
		Banner:         req.Banner,
		RewardGadgetID: req.RewardGadgetID,
		StartsAt:       req.StartsAt,
		EndsAt:         req.EndsAt,
	})
	if err == rewardstore.ErrGadgetNotFound || err == rewardstore.ErrContestNotFound {
		httpjson.Error(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		h.Log.Error("contest save failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not save contest")
		return
	}
	httpjson.Write(w, http.StatusOK, saved)
}

// ServePurchases handles GET /rewards/purchases?status=.
func (h *Handler) ServePurchases(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Dispatcher.Rewards().ListPurchases(ctx, r.URL.Query().Get("status"))
	if err != nil {
		h.Log.Error("purchase list failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not load purchase requests")
		return
	}
	httpjson.Write(w, http.StatusOK, list)
}

// HandleCreatePurchase handles POST /rewards/purchases.
func (h *Handler) HandleCreatePurchase(w http.ResponseWriter, r *http.Request) {
	var req purchaseRequest
	if err := httpjson.DecodeValid(r, &req); err != nil {
		httpjson.Error(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, err := h.Dispatcher.Rewards().GetGadget(ctx, req.GadgetID); err != nil {
		httpjson.Error(w, http.StatusNotFound, "gadget not found")
		return
	}

	created, err := h.Dispatcher.Rewards().CreatePurchase(ctx, req.StudentID, req.GadgetID)
	if err != nil {
		h.Log.Error("purchase create failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not create purchase request")
		return
	}
	httpjson.Write(w, http.StatusCreated, created)
}

// HandleDecidePurchase handles POST /rewards/purchases/{id}/decide.
func (h *Handler) HandleDecidePurchase(w http.ResponseWriter, r *http.Request) {
	var req decisionRequest
	if err := httpjson.DecodeValid(r, &req); err != nil {
		httpjson.Error(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	decidedBy := ""
	if u, ok := auth.CurrentUser(r); ok {
		decidedBy = u.ID
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	err := h.Dispatcher.ProcessPurchaseRequest(ctx, chi.URLParam(r, "id"), req.Decision, decidedBy)
	switch err {
	case nil:
		httpjson.Write(w, http.StatusOK, map[string]string{"status": "decided"})
	case rewardstore.ErrPurchaseNotFound:
		httpjson.Error(w, http.StatusNotFound, "purchase request not found")
	case rewardstore.ErrAlreadyDecided, dispatch.ErrBadDecision, dispatch.ErrReviewerRequired:
		httpjson.Error(w, http.StatusUnprocessableEntity, err.Error())
	default:
		h.Log.Error("purchase decision failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not decide purchase request")
	}
}
