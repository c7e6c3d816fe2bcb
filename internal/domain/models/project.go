// internal/domain/models/project.go
package models

import "time"

// StudentProject statuses.
const (
	ProjectPlanning  = "planning"
	ProjectBuilding  = "building"
	ProjectSubmitted = "submitted"
	ProjectPublished = "published"
)

// Step statuses. DONE is terminal; REJECTED steps may be resubmitted, which
// returns them to PENDING_REVIEW.
const (
	StepTodo          = "todo"
	StepDoing         = "doing"
	StepPendingReview = "pending_review"
	StepDone          = "done"
	StepRejected      = "rejected"
)

// StudentProject is one student's instance of work, optionally derived from
// a mission template.
type StudentProject struct {
	ID         string `bson:"_id,omitempty" json:"id"`
	TemplateID string `bson:"template_id,omitempty" json:"template_id,omitempty"`
	StudentID  string `bson:"student_id" json:"student_id"`

	// StudentName is denormalized onto the project by several writers and is
	// sometimes a generic placeholder; maker-profile resolution repairs it
	// from better-named sibling documents.
	StudentName string `bson:"student_name,omitempty" json:"student_name,omitempty"`

	Title  string `bson:"title" json:"title"`
	Status string `bson:"status" json:"status"`

	Steps     []ProjectStep  `bson:"steps,omitempty" json:"steps,omitempty"`
	Commits   []Commit       `bson:"commits,omitempty" json:"commits,omitempty"`
	Resources []ResourceLink `bson:"resources,omitempty" json:"resources,omitempty"`

	CreatedAt FlexTime `bson:"created_at,omitempty" json:"created_at,omitempty"`
	UpdatedAt FlexTime `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

// ProjectStep is one phase of a student project's workflow.
type ProjectStep struct {
	Name   string `bson:"name" json:"name"`
	Status string `bson:"status" json:"status"`

	// ReviewNotes accumulates as history; resubmission hides the latest
	// rejection from the student view but nothing is ever deleted.
	ReviewNotes []ReviewNote `bson:"review_notes,omitempty" json:"review_notes,omitempty"`

	SubmittedAt *time.Time `bson:"submitted_at,omitempty" json:"submitted_at,omitempty"`
	ReviewedAt  *time.Time `bson:"reviewed_at,omitempty" json:"reviewed_at,omitempty"`
	ReviewedBy  string     `bson:"reviewed_by,omitempty" json:"reviewed_by,omitempty"`
}

// ReviewNote is a single review verdict with its feedback.
type ReviewNote struct {
	Reviewer  string    `bson:"reviewer" json:"reviewer"`
	Verdict   string    `bson:"verdict" json:"verdict"`
	Feedback  string    `bson:"feedback,omitempty" json:"feedback,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// Commit is a progress checkpoint a student records on a project.
type Commit struct {
	ID        string    `bson:"id" json:"id"`
	Message   string    `bson:"message" json:"message"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// GenericStudentNames are placeholder names that must lose to any real name
// during maker-profile folding.
var GenericStudentNames = map[string]struct{}{
	"":              {},
	"Student":       {},
	"student":       {},
	"Unknown":       {},
	"Unknown Maker": {},
}

// IsGenericName reports whether name is a placeholder.
func IsGenericName(name string) bool {
	_, ok := GenericStudentNames[name]
	return ok
}
