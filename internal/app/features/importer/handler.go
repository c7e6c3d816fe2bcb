// internal/app/features/importer/handler.go

// Package importer ingests the bulk CSV formats: mission templates and
// showcase projects. Files are parsed and validated row by row; bad rows
// are reported with line numbers and never block the good ones.
package importer

import (
	"context"
	"mime/multipart"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	missionstore "github.com/dalemusser/makerhub/internal/app/store/missions"
	projectstore "github.com/dalemusser/makerhub/internal/app/store/projects"
	"github.com/dalemusser/makerhub/internal/app/system/csvutil"
	"github.com/dalemusser/makerhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/makerhub/internal/app/system/httpjson"
	"github.com/dalemusser/makerhub/internal/app/system/timeouts"
	"github.com/dalemusser/makerhub/internal/domain/models"
)

type Handler struct {
	Missions *missionstore.Store
	Projects *projectstore.Store
	Log      *zap.Logger
}

func NewHandler(missions *missionstore.Store, projects *projectstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Missions: missions, Projects: projects, Log: logger}
}

type importResponse struct {
	BatchID  string             `json:"batch_id"`
	Imported int                `json:"imported"`
	Errors   []csvutil.RowError `json:"errors,omitempty"`
}

// HandleImportMissions handles POST /import/missions (multipart, field
// "file").
func (h *Handler) HandleImportMissions(w http.ResponseWriter, r *http.Request) {
	file, ok := h.openUpload(w, r)
	if !ok {
		return
	}
	defer file.Close()

	result, err := csvutil.ParseMissionsCSV(file, csvutil.ParseOptions{MaxRows: csvutil.MaxRows})
	if err != nil {
		httpjson.Error(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Batch())
	defer cancel()

	batchID := uuid.NewString()
	resp := importResponse{BatchID: batchID, Errors: result.Errors}
	for _, pm := range result.Missions {
		_, err := h.Missions.Create(ctx, models.MissionTemplate{
			Title:        pm.Title,
			Description:  htmlsanitize.PlainTextToHTML(pm.Description),
			Station:      pm.Station,
			CoverImage:   pm.CoverImage,
			Difficulty:   pm.Difficulty,
			Duration:     pm.Duration,
			RealWorld:    pm.RealWorld,
			Challenges:   pm.Challenges,
			Outcomes:     pm.Outcomes,
			Technologies: pm.Technologies,
			Skills:       pm.Skills,
			Gallery:      pm.Gallery,
		})
		if err != nil {
			h.Log.Error("mission import insert failed",
				zap.String("batch_id", batchID),
				zap.String("title", pm.Title),
				zap.Error(err))
			resp.Errors = append(resp.Errors, csvutil.RowError{Reason: pm.Title + ": " + err.Error()})
			continue
		}
		resp.Imported++
	}

	h.Log.Info("mission import finished",
		zap.String("batch_id", batchID),
		zap.Int("imported", resp.Imported),
		zap.Int("errors", len(resp.Errors)))
	httpjson.Write(w, http.StatusOK, resp)
}

// HandleImportShowcase handles POST /import/showcase. Showcase rows become
// published gallery projects with no owning student.
func (h *Handler) HandleImportShowcase(w http.ResponseWriter, r *http.Request) {
	file, ok := h.openUpload(w, r)
	if !ok {
		return
	}
	defer file.Close()

	result, err := csvutil.ParseShowcaseCSV(file, csvutil.ParseOptions{MaxRows: csvutil.MaxRows})
	if err != nil {
		httpjson.Error(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Batch())
	defer cancel()

	batchID := uuid.NewString()
	resp := importResponse{BatchID: batchID, Errors: result.Errors}
	for _, ps := range result.Showcases {
		_, err := h.Projects.Create(ctx, models.StudentProject{
			Title:  ps.Title,
			Status: models.ProjectPublished,
		})
		if err != nil {
			resp.Errors = append(resp.Errors, csvutil.RowError{Reason: ps.Title + ": " + err.Error()})
			continue
		}
		resp.Imported++
	}

	h.Log.Info("showcase import finished",
		zap.String("batch_id", batchID),
		zap.Int("imported", resp.Imported),
		zap.Int("errors", len(resp.Errors)))
	httpjson.Write(w, http.StatusOK, resp)
}

// openUpload extracts the "file" part, enforcing the upload size cap.
func (h *Handler) openUpload(w http.ResponseWriter, r *http.Request) (multipart.File, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, csvutil.MaxUploadSize)
	if err := r.ParseMultipartForm(csvutil.MaxUploadSize); err != nil {
		httpjson.Error(w, http.StatusRequestEntityTooLarge, "upload too large or malformed")
		return nil, false
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		httpjson.Error(w, http.StatusUnprocessableEntity, "missing file field")
		return nil, false
	}
	return file, true
}
