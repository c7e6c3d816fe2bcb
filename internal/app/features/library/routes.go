// internal/app/features/library/routes.go
package library

import (
	"github.com/go-chi/chi/v5"

	"github.com/dalemusser/makerhub/internal/app/system/auth"
	"github.com/dalemusser/makerhub/internal/domain/models"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)

		pr.Get("/tools", h.ServeToolLinks)
		pr.Get("/assets", h.ServeAssets)

		pr.Group(func(ir chi.Router) {
			ir.Use(auth.RequireRole(models.RoleInstructor, models.RoleAdmin))

			ir.Post("/tools", h.HandleCreateToolLink)
			ir.Put("/tools/{id}", h.HandleUpdateToolLink)
			ir.Delete("/tools/{id}", h.HandleDeleteToolLink)

			ir.Post("/assets", h.HandleCreateAsset)
			ir.Put("/assets/{id}", h.HandleUpdateAsset)
			ir.Delete("/assets/{id}", h.HandleDeleteAsset)
		})
	})

	return r
}
