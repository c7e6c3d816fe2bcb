// internal/domain/models/program.go
package models

import "time"

// Program is a top-level curriculum container. Grades and their groups are
// embedded sub-documents, mirroring how the organizational tree is edited as
// one unit.
type Program struct {
	ID     string  `bson:"_id,omitempty" json:"id"`
	Name   string  `bson:"name" json:"name"`
	NameCI string  `bson:"name_ci" json:"name_ci"`
	Grades []Grade `bson:"grades" json:"grades"`

	Status string `bson:"status" json:"status"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Grade is a class-like unit nested under a Program.
type Grade struct {
	ID     string  `bson:"id" json:"id"`
	Name   string  `bson:"name" json:"name"`
	Groups []Group `bson:"groups" json:"groups"`
}

// Group is a sub-class unit nested under a Grade.
//
// Legacy data references groups by id in some places and by display name in
// others. Writes normalize references to the id; readers that join on group
// references must accept both (see the resolve package).
type Group struct {
	ID   string `bson:"id" json:"id"`
	Name string `bson:"name" json:"name"`
}

// GradeByID returns the grade with the given id, if present.
func (p Program) GradeByID(gradeID string) (Grade, bool) {
	for _, g := range p.Grades {
		if g.ID == gradeID {
			return g, true
		}
	}
	return Grade{}, false
}
