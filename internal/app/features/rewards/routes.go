// internal/app/features/rewards/routes.go
package rewards

import (
	"github.com/go-chi/chi/v5"

	"github.com/dalemusser/makerhub/internal/app/system/auth"
	"github.com/dalemusser/makerhub/internal/domain/models"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)

		pr.Get("/gadgets", h.ServeGadgets)
		pr.Get("/contests", h.ServeContests)
		pr.Post("/purchases", h.HandleCreatePurchase)

		pr.Group(func(ir chi.Router) {
			ir.Use(auth.RequireRole(models.RoleInstructor, models.RoleAdmin))

			ir.Post("/gadgets", h.HandleSaveGadget)
			ir.Post("/contests", h.HandleSaveContest)
			ir.Get("/purchases", h.ServePurchases)
			ir.Post("/purchases/{id}/decide", h.HandleDecidePurchase)
		})
	})

	return r
}
