// internal/domain/models/station.go
package models

import "time"

// Station is a themed learning zone that can be toggled active for specific
// grades.
//
// Invariant: a grade id appears in at most one station's ActiveGradeIDs set.
// Activation for a grade must remove that grade from every other station in
// the same commit (see dispatch.ToggleStationActivation).
type Station struct {
	ID     string `bson:"_id,omitempty" json:"id"`
	Name   string `bson:"name" json:"name"`
	Label  string `bson:"label,omitempty" json:"label,omitempty"`
	Theme  string `bson:"theme,omitempty" json:"theme,omitempty"`
	Icon   string `bson:"icon,omitempty" json:"icon,omitempty"`
	Status string `bson:"status" json:"status"`

	ActiveGradeIDs []string `bson:"active_grade_ids,omitempty" json:"active_grade_ids,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// IsActiveForGrade reports whether gradeID is in the station's active set.
func (s Station) IsActiveForGrade(gradeID string) bool {
	for _, id := range s.ActiveGradeIDs {
		if id == gradeID {
			return true
		}
	}
	return false
}
