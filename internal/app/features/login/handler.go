// internal/app/features/login/handler.go

// Package login is the session entry point for instructors and admins.
// Students never log in here; they arrive through deep links.
package login

import (
	"context"
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	userstore "github.com/dalemusser/makerhub/internal/app/store/users"
	"github.com/dalemusser/makerhub/internal/app/system/auth"
	"github.com/dalemusser/makerhub/internal/app/system/httpjson"
	"github.com/dalemusser/makerhub/internal/app/system/timeouts"
	"github.com/dalemusser/makerhub/internal/domain/models"
)

type Handler struct {
	Users *userstore.Store
	Log   *zap.Logger
}

func NewHandler(users *userstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Users: users, Log: logger}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// HandleLogin verifies an instructor's password and opens a session.
// Unknown email and wrong password are indistinguishable to the caller.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpjson.DecodeValid(r, &req); err != nil {
		httpjson.Error(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if err != userstore.ErrNotFound {
			h.Log.Error("login lookup failed", zap.Error(err))
		}
		httpjson.Error(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	if user.Role != models.RoleInstructor && user.Role != models.RoleAdmin {
		httpjson.Error(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		httpjson.Error(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	if err := auth.SignIn(w, r, auth.SessionUser{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	}); err != nil {
		h.Log.Error("session write failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not start session")
		return
	}

	h.Log.Info("user signed in", zap.String("user_id", user.ID), zap.String("role", user.Role))
	httpjson.Write(w, http.StatusOK, loginResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	})
}

// HandleLogout clears the session.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := auth.SignOut(w, r); err != nil {
		h.Log.Warn("session clear failed", zap.Error(err))
	}
	httpjson.Write(w, http.StatusOK, map[string]string{"status": "signed_out"})
}

// HandleMe returns the signed-in user, if any.
func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "not signed in")
		return
	}
	httpjson.Write(w, http.StatusOK, loginResponse{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role})
}
