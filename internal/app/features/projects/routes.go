// internal/app/features/projects/routes.go
package projects

import (
	"github.com/go-chi/chi/v5"

	"github.com/dalemusser/makerhub/internal/app/system/auth"
	"github.com/dalemusser/makerhub/internal/domain/models"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)

		pr.Get("/{id}", h.ServeDetail)
		pr.Post("/{id}/steps/{step}/start", h.HandleStartStep)
		pr.Post("/{id}/steps/{step}/submit", h.HandleSubmitStep)
		pr.Post("/{id}/commits", h.HandleCommit)

		pr.Group(func(ir chi.Router) {
			ir.Use(auth.RequireRole(models.RoleInstructor, models.RoleAdmin))

			ir.Delete("/{id}", h.HandleDelete)
		})
	})

	return r
}
