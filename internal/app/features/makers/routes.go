// internal/app/features/makers/routes.go
package makers

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
		pr.Get("/{studentID}", h.ServeDetail)
		pr.Get("/grade/{gradeID}", h.ServeGradeStudents)

		pr.Group(func(ir chi.Router) {
			ir.Use(auth.RequireRole(models.RoleInstructor, models.RoleAdmin))

			ir.Delete("/{studentID}", h.HandleDelete)
		})
	})

	return r
}
