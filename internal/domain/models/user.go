// internal/domain/models/user.go
package models

// Terminology: Student Locators
//   - Enrollment records are the authoritative link between a student and a
//     grade. The locator fields on the user document predate enrollments and
//     survive only as a fallback join key.
//   - Historical writers used several names for the same thing (grade_id,
//     grade, class_id, section_id) and stored either a grade/group id or a
//     display name. NormalizeLocators flattens all of them once, at the
//     ingestion boundary; nothing past that boundary looks at the raw fields.

import (
	"strings"
	"time"
)

// User roles.
const (
	RoleStudent    = "student"
	RoleInstructor = "instructor"
	RoleAdmin      = "admin"
)

// User is a person record. Students carry optional legacy locator fields;
// instructors carry a password hash for session login.
type User struct {
	ID     string `bson:"_id,omitempty" json:"id"`
	Name   string `bson:"name" json:"name"`
	NameCI string `bson:"name_ci" json:"name_ci"`
	Email  string `bson:"email,omitempty" json:"email,omitempty"`
	Role   string `bson:"role" json:"role"`
	Status string `bson:"status" json:"status"`

	// Instructor login only; never serialized to clients.
	PasswordHash string `bson:"password_hash,omitempty" json:"-"`

	// Legacy locator fields, kept verbatim for backward-compatible reads.
	GradeID   string `bson:"grade_id,omitempty" json:"grade_id,omitempty"`
	Grade     string `bson:"grade,omitempty" json:"grade,omitempty"`
	ClassID   string `bson:"class_id,omitempty" json:"class_id,omitempty"`
	SectionID string `bson:"section_id,omitempty" json:"section_id,omitempty"`
	GroupID   string `bson:"group_id,omitempty" json:"group_id,omitempty"`
	Group     string `bson:"group,omitempty" json:"group,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// IsStudent reports whether the user is a student record.
func (u User) IsStudent() bool { return u.Role == RoleStudent }

// LocatorIDs returns every non-empty legacy locator value exactly once.
// These are matched against the relevant-id set for a grade (grade id plus
// group ids and group names) when no enrollment exists for the student.
func (u User) LocatorIDs() []string {
	raw := []string{u.GradeID, u.Grade, u.ClassID, u.SectionID, u.GroupID, u.Group}
	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// NormalizeLocators trims every legacy locator field and clears aliases that
// duplicate an earlier one, so each surviving value appears exactly once.
// Called once when a user document is written; readers can then treat the
// fields as already clean.
func (u *User) NormalizeLocators() {
	fields := []*string{&u.GradeID, &u.Grade, &u.ClassID, &u.SectionID, &u.GroupID, &u.Group}
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		*f = strings.TrimSpace(*f)
		if *f == "" {
			continue
		}
		if _, dup := seen[*f]; dup {
			*f = ""
			continue
		}
		seen[*f] = struct{}{}
	}
}

// HasLocator reports whether any legacy locator matches a value in set.
func (u User) HasLocator(set map[string]struct{}) bool {
	for _, id := range u.LocatorIDs() {
		if _, ok := set[id]; ok {
			return true
		}
	}
	return false
}
