// internal/app/features/missions/types.go
package missions

import "github.com/dalemusser/makerhub/internal/domain/models"

type missionRequest struct {
	Title          string                `json:"title" validate:"required"`
	Description    string                `json:"description" validate:"required"`
	Station        string                `json:"station"`
	Difficulty     string                `json:"difficulty"`
	Duration       string                `json:"duration"`
	CoverImage     string                `json:"cover_image"`
	TargetAudience models.Audience       `json:"target_audience"`
	WorkflowID     string                `json:"workflow_id"`
	Resources      []models.ResourceLink `json:"resources"`
	Outcomes       []models.TitledText   `json:"outcomes"`
	Challenges     []models.TitledText   `json:"challenges"`
	RealWorld      models.RealWorld      `json:"real_world"`
	Technologies   []string              `json:"technologies"`
	Skills         []string              `json:"skills"`
	Gallery        []string              `json:"gallery"`
}

type assignRequest struct {
	StudentIDs []string `json:"student_ids" validate:"required,min=1"`
	GradeID    string   `json:"grade_id" validate:"required"`
}

type deleteRequest struct {
	Confirm bool `json:"confirm"`
}

type statusRequest struct {
	Status string `json:"status" validate:"required,oneof=draft featured assigned"`
}

// missionView decorates a template with resolved display data.
type missionView struct {
	models.MissionTemplate
	StationDisplay   string                `json:"station_display,omitempty"`
	AssignmentStatus *assignmentStatusView `json:"assignment_status,omitempty"`
}

type assignmentStatusView struct {
	Assigned bool `json:"assigned"`
	Count    int  `json:"count"`
}
