// internal/domain/models/mission.go
package models

import "time"

// Mission statuses.
const (
	MissionDraft    = "draft"
	MissionFeatured = "featured"
	MissionAssigned = "assigned"
)

// MissionTemplate is a reusable assignment definition an instructor creates
// and targets at grades/groups. Stored in the project_templates collection.
type MissionTemplate struct {
	ID          string `bson:"_id,omitempty" json:"id"`
	Title       string `bson:"title" json:"title"`
	TitleCI     string `bson:"title_ci" json:"title_ci"`
	Description string `bson:"description" json:"description"`

	// Station may hold a station id, a station label, or legacy free text.
	// Display resolution handles all three (see resolve.StationDisplayName).
	Station    string `bson:"station,omitempty" json:"station,omitempty"`
	Difficulty string `bson:"difficulty,omitempty" json:"difficulty,omitempty"`
	Duration   string `bson:"duration,omitempty" json:"duration,omitempty"`
	CoverImage string `bson:"cover_image,omitempty" json:"cover_image,omitempty"`

	TargetAudience Audience `bson:"target_audience" json:"target_audience"`
	WorkflowID     string   `bson:"workflow_id,omitempty" json:"workflow_id,omitempty"`
	Status         string   `bson:"status" json:"status"`

	Resources    []ResourceLink `bson:"resources,omitempty" json:"resources,omitempty"`
	Outcomes     []TitledText   `bson:"outcomes,omitempty" json:"outcomes,omitempty"`
	Challenges   []TitledText   `bson:"challenges,omitempty" json:"challenges,omitempty"`
	RealWorld    RealWorld      `bson:"real_world,omitempty" json:"real_world,omitempty"`
	Technologies []string       `bson:"technologies,omitempty" json:"technologies,omitempty"`
	Skills       []string       `bson:"skills,omitempty" json:"skills,omitempty"`
	Gallery      []string       `bson:"gallery,omitempty" json:"gallery,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
	CreatedBy string    `bson:"created_by,omitempty" json:"created_by,omitempty"`
}

// Audience narrows which students a mission targets. Empty Groups means the
// whole grade; Students is an optional explicit allow-list.
type Audience struct {
	Grades   []string `bson:"grades,omitempty" json:"grades,omitempty"`
	Groups   []string `bson:"groups,omitempty" json:"groups,omitempty"`
	Students []string `bson:"students,omitempty" json:"students,omitempty"`
}

// TitledText is a title/description pair (outcomes, challenges).
type TitledText struct {
	Title       string `bson:"title" json:"title"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
}

// RealWorld links a mission to an industry context.
type RealWorld struct {
	Title       string   `bson:"title,omitempty" json:"title,omitempty"`
	Description string   `bson:"description,omitempty" json:"description,omitempty"`
	Companies   []string `bson:"companies,omitempty" json:"companies,omitempty"`
}

// ResourceLink is an attachment on a mission or workflow phase.
type ResourceLink struct {
	Title string `bson:"title" json:"title"`
	URL   string `bson:"url" json:"url"`
	Kind  string `bson:"kind,omitempty" json:"kind,omitempty"`
}
