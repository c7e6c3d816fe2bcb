// internal/app/features/library/handler.go

// Package library serves the shared link library: curated tool links and
// asset pointers.
package library

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/dalemusser/makerhub/internal/app/dispatch"
	librarystore "github.com/dalemusser/makerhub/internal/app/store/library"
	"github.com/dalemusser/makerhub/internal/app/system/httpjson"
	"github.com/dalemusser/makerhub/internal/app/system/timeouts"
	"github.com/dalemusser/makerhub/internal/domain/models"
)

type Handler struct {
	Library *librarystore.Store
	Log     *zap.Logger
}

func NewHandler(library *librarystore.Store, logger *zap.Logger) *Handler {
	return &Handler{Library: library, Log: logger}
}

type toolLinkRequest struct {
	Title    string `json:"title" validate:"required"`
	URL      string `json:"url" validate:"required,url"`
	Category string `json:"category"`
}

type assetRequest struct {
	Title string `json:"title" validate:"required"`
	URL   string `json:"url" validate:"required,url"`
	Kind  string `json:"kind"`
}

// ServeToolLinks handles GET /library/tools?category=.
func (h *Handler) ServeToolLinks(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Library.ListToolLinks(ctx, r.URL.Query().Get("category"))
	if err != nil {
		h.Log.Error("tool link list failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not load tool links")
		return
	}
	httpjson.Write(w, http.StatusOK, list)
}

// HandleCreateToolLink handles POST /library/tools.
func (h *Handler) HandleCreateToolLink(w http.ResponseWriter, r *http.Request) {
	var req toolLinkRequest
	if err := httpjson.DecodeValid(r, &req); err != nil {
		httpjson.Error(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	created, err := h.Library.CreateToolLink(ctx, models.ToolLink{
		Title:    req.Title,
		URL:      req.URL,
		Category: req.Category,
	})
	if err != nil {
		h.Log.Error("tool link create failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not create tool link")
		return
	}
	httpjson.Write(w, http.StatusCreated, created)
}

// HandleUpdateToolLink handles PUT /library/tools/{id}.
func (h *Handler) HandleUpdateToolLink(w http.ResponseWriter, r *http.Request) {
	var req toolLinkRequest
	if err := httpjson.DecodeValid(r, &req); err != nil {
		httpjson.Error(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	err := h.Library.UpdateToolLink(ctx, models.ToolLink{
		ID:       chi.URLParam(r, "id"),
		Title:    req.Title,
		URL:      req.URL,
		Category: req.Category,
	})
	switch err {
	case nil:
		httpjson.Write(w, http.StatusOK, map[string]string{"status": "updated"})
	case librarystore.ErrToolLinkNotFound:
		httpjson.Error(w, http.StatusNotFound, "tool link not found")
	default:
		h.Log.Error("tool link update failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not update tool link")
	}
}

// HandleDeleteToolLink handles DELETE /library/tools/{id}?confirm=true.
func (h *Handler) HandleDeleteToolLink(w http.ResponseWriter, r *http.Request) {
	if !httpjson.Confirmed(r) {
		httpjson.Error(w, http.StatusUnprocessableEntity, dispatch.ErrConfirmRequired.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	n, err := h.Library.DeleteToolLink(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.Log.Error("tool link delete failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not delete tool link")
		return
	}
	if n == 0 {
		httpjson.Error(w, http.StatusNotFound, "tool link not found")
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// ServeAssets handles GET /library/assets?kind=.
func (h *Handler) ServeAssets(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Library.ListAssets(ctx, r.URL.Query().Get("kind"))
	if err != nil {
		h.Log.Error("asset list failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not load assets")
		return
	}
	httpjson.Write(w, http.StatusOK, list)
}

// HandleCreateAsset handles POST /library/assets.
func (h *Handler) HandleCreateAsset(w http.ResponseWriter, r *http.Request) {
	var req assetRequest
	if err := httpjson.DecodeValid(r, &req); err != nil {
		httpjson.Error(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	created, err := h.Library.CreateAsset(ctx, models.Asset{
		Title: req.Title,
		URL:   req.URL,
		Kind:  req.Kind,
	})
	if err != nil {
		h.Log.Error("asset create failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not create asset")
		return
	}
	httpjson.Write(w, http.StatusCreated, created)
}

// HandleUpdateAsset handles PUT /library/assets/{id}.
func (h *Handler) HandleUpdateAsset(w http.ResponseWriter, r *http.Request) {
	var req assetRequest
	if err := httpjson.DecodeValid(r, &req); err != nil {
		httpjson.Error(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	err := h.Library.UpdateAsset(ctx, models.Asset{
		ID:    chi.URLParam(r, "id"),
		Title: req.Title,
		URL:   req.URL,
		Kind:  req.Kind,
	})
	switch err {
	case nil:
		httpjson.Write(w, http.StatusOK, map[string]string{"status": "updated"})
	case librarystore.ErrAssetNotFound:
		httpjson.Error(w, http.StatusNotFound, "asset not found")
	default:
		h.Log.Error("asset update failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not update asset")
	}
}

// HandleDeleteAsset handles DELETE /library/assets/{id}?confirm=true.
func (h *Handler) HandleDeleteAsset(w http.ResponseWriter, r *http.Request) {
	if !httpjson.Confirmed(r) {
		httpjson.Error(w, http.StatusUnprocessableEntity, dispatch.ErrConfirmRequired.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	n, err := h.Library.DeleteAsset(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.Log.Error("asset delete failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not delete asset")
		return
	}
	if n == 0 {
		httpjson.Error(w, http.StatusNotFound, "asset not found")
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]string{"status": "deleted"})
}
