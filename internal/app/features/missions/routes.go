// internal/app/features/missions/routes.go
package missions

import (
	"github.com/go-chi/chi/v5"

	"github.com/dalemusser/makerhub/internal/app/system/auth"
	"github.com/dalemusser/makerhub/internal/domain/models"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)

		pr.Get("/", h.ServeList)
		pr.Get("/{id}", h.ServeDetail)

		// Authoring and assignment are instructor-only.
		pr.Group(func(ir chi.Router) {
			ir.Use(auth.RequireRole(models.RoleInstructor, models.RoleAdmin))

			ir.Post("/", h.HandleCreate)
			ir.Put("/{id}", h.HandleUpdate)
			ir.Post("/{id}/status", h.HandleStatus)
			ir.Post("/{id}/assign", h.HandleAssign)
			ir.Post("/{id}/delete", h.HandleDelete)
		})
	})

	return r
}
