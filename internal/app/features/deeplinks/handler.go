// internal/app/features/deeplinks/handler.go

// Package deeplinks mints hand-off tokens that open the companion desktop
// application signed in as a chosen student.
package deeplinks

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	userstore "github.com/dalemusser/makerhub/internal/app/store/users"
	"github.com/dalemusser/makerhub/internal/app/system/deeplink"
	"github.com/dalemusser/makerhub/internal/app/system/httpjson"
	"github.com/dalemusser/makerhub/internal/app/system/timeouts"
	"github.com/dalemusser/makerhub/internal/domain/models"
)

type Handler struct {
	Minter *deeplink.Minter
	Users  *userstore.Store
	Log    *zap.Logger
}

func NewHandler(m *deeplink.Minter, users *userstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Minter: m, Users: users, Log: logger}
}

type mintRequest struct {
	StudentID string `json:"student_id" validate:"required"`
}

type mintResponse struct {
	Token string `json:"token"`
	URL   string `json:"url"`
}

// HandleMint handles POST /deeplinks: issues a signed token for the given
// student, ready to embed in the companion app's URL scheme.
func (h *Handler) HandleMint(w http.ResponseWriter, r *http.Request) {
	var req mintRequest
	if err := httpjson.DecodeValid(r, &req); err != nil {
		httpjson.Error(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.GetByID(ctx, req.StudentID)
	if err == userstore.ErrNotFound {
		httpjson.Error(w, http.StatusNotFound, "student not found")
		return
	}
	if err != nil {
		h.Log.Error("student lookup failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not load student")
		return
	}
	if u.Role != models.RoleStudent {
		httpjson.Error(w, http.StatusUnprocessableEntity, "deep links can only target students")
		return
	}

	token, err := h.Minter.Mint(deeplink.Identity{
		UID:   u.ID,
		Email: u.Email,
		Name:  u.Name,
		Role:  u.Role,
	}, time.Now().UTC())
	if err != nil {
		h.Log.Error("deep link mint failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not mint deep link")
		return
	}

	httpjson.Write(w, http.StatusOK, mintResponse{
		Token: token,
		URL:   "makerhub://auth?token=" + token,
	})
}
