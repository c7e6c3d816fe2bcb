// internal/app/features/stations/routes.go
package stations

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
		pr.Get("/display-name", h.ServeDisplayName)

		pr.Group(func(ir chi.Router) {
			ir.Use(auth.RequireRole(models.RoleInstructor, models.RoleAdmin))

			ir.Post("/", h.HandleCreate)
			ir.Put("/{id}", h.HandleUpdate)
			ir.Post("/{id}/toggle", h.HandleToggle)
			ir.Delete("/{id}", h.HandleDelete)
		})
	})

	return r
}
