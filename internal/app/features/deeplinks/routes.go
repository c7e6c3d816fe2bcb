// internal/app/features/deeplinks/routes.go
package deeplinks

import (
	"github.com/go-chi/chi/v5"

	"github.com/dalemusser/makerhub/internal/app/system/auth"
	"github.com/dalemusser/makerhub/internal/domain/models"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireRole(models.RoleInstructor, models.RoleAdmin))

		pr.Post("/", h.HandleMint)
	})

	return r
}
