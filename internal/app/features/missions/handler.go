// internal/app/features/missions/handler.go

// Package missions serves the instructor's mission-template surface:
// authoring, audience targeting, assignment, and the cascade delete.
package missions

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/dalemusser/makerhub/internal/app/dispatch"
	"github.com/dalemusser/makerhub/internal/app/mirror"
	"github.com/dalemusser/makerhub/internal/app/resolve"
	missionstore "github.com/dalemusser/makerhub/internal/app/store/missions"
	"github.com/dalemusser/makerhub/internal/app/system/auth"
	"github.com/dalemusser/makerhub/internal/app/system/htmlsanitize"
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

// ServeList handles GET /missions?status=&grade_id=. With grade_id set, each
// mission carries its assignment status for that grade.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Dispatcher.Missions().List(ctx, r.URL.Query().Get("status"))
	if err != nil {
		h.Log.Error("mission list failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not load missions")
		return
	}

	gradeID := r.URL.Query().Get("grade_id")
	v := h.Mirror.Snapshot()

	views := make([]missionView, 0, len(list))
	for _, m := range list {
		mv := missionView{
			MissionTemplate: m,
			StationDisplay:  resolve.StationDisplayName(v, m.Station),
		}
		if gradeID != "" {
			st := resolve.AssignmentStatus(v, m.ID, gradeID)
			mv.AssignmentStatus = &assignmentStatusView{Assigned: st.Assigned, Count: st.Count}
		}
		views = append(views, mv)
	}
	httpjson.Write(w, http.StatusOK, views)
}

// ServeDetail handles GET /missions/{id}.
func (h *Handler) ServeDetail(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	m, err := h.Dispatcher.Missions().GetByID(ctx, chi.URLParam(r, "id"))
	if err == missionstore.ErrNotFound {
		httpjson.Error(w, http.StatusNotFound, "mission not found")
		return
	}
	if err != nil {
		h.Log.Error("mission load failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not load mission")
		return
	}

	v := h.Mirror.Snapshot()
	httpjson.Write(w, http.StatusOK, missionView{
		MissionTemplate: m,
		StationDisplay:  resolve.StationDisplayName(v, m.Station),
	})
}

// HandleCreate handles POST /missions.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req missionRequest
	if err := httpjson.DecodeValid(r, &req); err != nil {
		httpjson.Error(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	u, _ := auth.CurrentUser(r)
	m := req.toModel()
	if u != nil {
		m.CreatedBy = u.ID
	}

	created, err := h.Dispatcher.Missions().Create(ctx, m)
	if err != nil {
		h.Log.Error("mission create failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not create mission")
		return
	}
	httpjson.Write(w, http.StatusCreated, created)
}

// HandleUpdate handles PUT /missions/{id}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req missionRequest
	if err := httpjson.DecodeValid(r, &req); err != nil {
		httpjson.Error(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	m := req.toModel()
	m.ID = chi.URLParam(r, "id")
	if err := h.Dispatcher.Missions().Update(ctx, m); err != nil {
		if err == missionstore.ErrNotFound {
			httpjson.Error(w, http.StatusNotFound, "mission not found")
			return
		}
		h.Log.Error("mission update failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not update mission")
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]string{"status": "updated"})
}

// HandleStatus handles POST /missions/{id}/status.
func (h *Handler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := httpjson.DecodeValid(r, &req); err != nil {
		httpjson.Error(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Dispatcher.Missions().UpdateStatus(ctx, chi.URLParam(r, "id"), req.Status); err != nil {
		if err == missionstore.ErrNotFound {
			httpjson.Error(w, http.StatusNotFound, "mission not found")
			return
		}
		h.Log.Error("mission status change failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not change status")
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]string{"status": req.Status})
}

// HandleAssign handles POST /missions/{id}/assign: enrolls the listed
// students, reporting successes, skips, and failures.
func (h *Handler) HandleAssign(w http.ResponseWriter, r *http.Request) {
	var req assignRequest
	if err := httpjson.DecodeValid(r, &req); err != nil {
		httpjson.Error(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	assignedBy := ""
	if u, ok := auth.CurrentUser(r); ok {
		assignedBy = u.ID
	}

	res, err := h.Dispatcher.AssignMissionToStudents(ctx, chi.URLParam(r, "id"), req.StudentIDs, req.GradeID, assignedBy)
	if err != nil {
		if err == missionstore.ErrNotFound {
			httpjson.Error(w, http.StatusNotFound, "mission not found")
			return
		}
		if err == dispatch.ErrNoStudents {
			httpjson.Error(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		h.Log.Error("assignment failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "assignment failed")
		return
	}
	httpjson.Write(w, http.StatusOK, res)
}

// HandleDelete handles POST /missions/{id}/delete: cascade delete behind an
// explicit confirm flag.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	var req deleteRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	err := h.Dispatcher.DeleteMissionTemplate(ctx, chi.URLParam(r, "id"), req.Confirm)
	switch err {
	case nil:
		httpjson.Write(w, http.StatusOK, map[string]string{"status": "deleted"})
	case dispatch.ErrConfirmRequired:
		httpjson.Error(w, http.StatusUnprocessableEntity, err.Error())
	case missionstore.ErrNotFound:
		httpjson.Error(w, http.StatusNotFound, "mission not found")
	default:
		h.Log.Error("mission delete failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not delete mission")
	}
}

func (req missionRequest) toModel() models.MissionTemplate {
	return models.MissionTemplate{
		Title:          req.Title,
		Description:    htmlsanitize.Sanitize(req.Description),
		Station:        req.Station,
		Difficulty:     req.Difficulty,
		Duration:       req.Duration,
		CoverImage:     req.CoverImage,
		TargetAudience: req.TargetAudience,
		WorkflowID:     req.WorkflowID,
		Resources:      req.Resources,
		Outcomes:       req.Outcomes,
		Challenges:     req.Challenges,
		RealWorld:      req.RealWorld,
		Technologies:   req.Technologies,
		Skills:         req.Skills,
		Gallery:        req.Gallery,
	}
}
