// internal/domain/models/enrollment.go
package models

import "time"

// Enrollment statuses.
const (
	EnrollmentActive   = "active"
	EnrollmentInactive = "inactive"
)

// Enrollment is the authoritative link between a student and an assigned
// mission. ProgramID actually holds a mission/template id; the overloaded
// name is kept because every stored document already uses it.
//
// Invariant: at most one active enrollment per (student_id, program_id).
// The dispatcher checks before inserting and a unique partial index backs
// the check up against races.
type Enrollment struct {
	ID        string `bson:"_id,omitempty" json:"id"`
	StudentID string `bson:"student_id" json:"student_id"`
	ProgramID string `bson:"program_id" json:"program_id"`
	GradeID   string `bson:"grade_id" json:"grade_id"`
	GroupName string `bson:"group_name,omitempty" json:"group_name,omitempty"`
	Status    string `bson:"status" json:"status"`

	AssignedAt time.Time `bson:"assigned_at" json:"assigned_at"`
	AssignedBy string    `bson:"assigned_by,omitempty" json:"assigned_by,omitempty"`
}

// IsActive reports whether the enrollment currently counts for membership
// and assignment joins.
func (e Enrollment) IsActive() bool { return e.Status == EnrollmentActive }
