// internal/app/features/makers/handler.go

// Package makers serves the maker board: per-student aggregates resolved
// from the live snapshot.
package makers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/dalemusser/makerhub/internal/app/dispatch"
	"github.com/dalemusser/makerhub/internal/app/mirror"
	"github.com/dalemusser/makerhub/internal/app/resolve"
	userstore "github.com/dalemusser/makerhub/internal/app/store/users"
	"github.com/dalemusser/makerhub/internal/app/system/httpjson"
	"github.com/dalemusser/makerhub/internal/app/system/timeouts"
	"github.com/dalemusser/makerhub/internal/domain/models"
)

type Handler struct {
	Dispatcher *dispatch.Dispatcher
	Mirror     *mirror.Mirror
	Log        *zap.Logger
}

func NewHandler(d *dispatch.Dispatcher, m *mirror.Mirror, logger *zap.Logger) *Handler {
	return &Handler{Dispatcher: d, Mirror: m, Log: logger}
}

// ServeList handles GET /makers?grade_id=.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	v := h.Mirror.Snapshot()
	profiles := resolve.MakerProfiles(v)

	if gradeID := r.URL.Query().Get("grade_id"); gradeID != "" {
		filtered := profiles[:0]
		for _, p := range profiles {
			if p.GradeID == gradeID {
				filtered = append(filtered, p)
			}
		}
		profiles = filtered
	}
	httpjson.Write(w, http.StatusOK, profiles)
}

// ServeDetail handles GET /makers/{studentID}: the profile plus the
// student's projects, newest first.
func (h *Handler) ServeDetail(w http.ResponseWriter, r *http.Request) {
	studentID := chi.URLParam(r, "studentID")
	v := h.Mirror.Snapshot()

	profile, ok := resolve.MakerProfileByID(v, studentID)
	if !ok {
		httpjson.Error(w, http.StatusNotFound, "maker not found")
		return
	}

	owned := make([]models.StudentProject, 0)
	for _, p := range v.Projects {
		if p.StudentID == studentID {
			owned = append(owned, p)
		}
	}
	resolve.SortProjectsByRecency(owned)

	httpjson.Write(w, http.StatusOK, map[string]any{
		"profile":  profile,
		"projects": owned,
	})
}

// ServeGradeStudents handles GET /makers/grade/{gradeID}: grade membership
// through enrollments with the legacy-locator fallback.
func (h *Handler) ServeGradeStudents(w http.ResponseWriter, r *http.Request) {
	v := h.Mirror.Snapshot()
	students := resolve.StudentsInGrade(v, chi.URLParam(r, "gradeID"))
	httpjson.Write(w, http.StatusOK, students)
}

// HandleDelete handles DELETE /makers/{studentID}?confirm=true: cascade
// delete of the account, its projects, and its enrollments.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	err := h.Dispatcher.DeleteMaker(ctx, chi.URLParam(r, "studentID"), httpjson.Confirmed(r))
	switch err {
	case nil:
		httpjson.Write(w, http.StatusOK, map[string]string{"status": "deleted"})
	case dispatch.ErrConfirmRequired:
		httpjson.Error(w, http.StatusUnprocessableEntity, err.Error())
	case userstore.ErrNotFound:
		httpjson.Error(w, http.StatusNotFound, "maker not found")
	default:
		h.Log.Error("maker delete failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not delete maker")
	}
}
