// internal/app/resolve/students.go

// Package resolve joins the mirrored collections into the composite shapes
// the handlers serve. Every function is pure over a mirror.View, so the
// whole package is testable with hand-built fixtures and no database.
package resolve

import (
	"sort"
	"strings"

	"github.com/dalemusser/makerhub/internal/app/mirror"
	"github.com/dalemusser/makerhub/internal/domain/models"
)

// RelevantGradeIDs builds the membership-match set for a grade: the grade id
// itself plus the ids AND display names of every group under a grade with
// that id, across all programs. Group names are included because legacy
// writers stored group references by name.
func RelevantGradeIDs(v mirror.View, gradeID string) map[string]struct{} {
	set := map[string]struct{}{gradeID: {}}
	for _, p := range v.Programs {
		g, ok := p.GradeByID(gradeID)
		if !ok {
			continue
		}
		for _, grp := range g.Groups {
			if grp.ID != "" {
				set[grp.ID] = struct{}{}
			}
			if grp.Name != "" {
				set[grp.Name] = struct{}{}
			}
		}
	}
	return set
}

// StudentsInGrade returns the students belonging to a grade, sorted by name.
// A student belongs when an active enrollment points at the grade, or, for
// records predating enrollments, when any legacy locator value hits the
// relevant-id set.
func StudentsInGrade(v mirror.View, gradeID string) []models.User {
	set := RelevantGradeIDs(v, gradeID)

	enrolled := map[string]struct{}{}
	for _, e := range v.Enrollments {
		if !e.IsActive() {
			continue
		}
		if _, ok := set[e.GradeID]; ok {
			enrolled[e.StudentID] = struct{}{}
		}
	}

	var out []models.User
	for _, u := range v.Users {
		if !u.IsStudent() {
			continue
		}
		if _, ok := enrolled[u.ID]; ok {
			out = append(out, u)
			continue
		}
		if u.HasLocator(set) {
			out = append(out, u)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// AssignmentStatus summarizes a mission's assignment state within a grade.
type AssignmentStatusResult struct {
	Assigned bool `json:"assigned"`
	Count    int  `json:"count"`
}

// AssignmentStatus counts active enrollments linking a mission template to a
// grade.
func AssignmentStatus(v mirror.View, templateID, gradeID string) AssignmentStatusResult {
	var count int
	for _, e := range v.Enrollments {
		if e.IsActive() && e.ProgramID == templateID && e.GradeID == gradeID {
			count++
		}
	}
	return AssignmentStatusResult{Assigned: count > 0, Count: count}
}

// TargetStudents expands a mission's audience into concrete student ids:
// active enrollments in any audience grade, narrowed to the audience groups
// only when the group list is non-empty, plus the explicit student
// allow-list. Group references match by group id or legacy group name.
func TargetStudents(v mirror.View, tmpl models.MissionTemplate) []string {
	grades := map[string]struct{}{}
	for _, g := range tmpl.TargetAudience.Grades {
		grades[g] = struct{}{}
	}

	groups := map[string]struct{}{}
	for _, g := range tmpl.TargetAudience.Groups {
		groups[g] = struct{}{}
	}

	ids := map[string]struct{}{}
	for _, e := range v.Enrollments {
		if !e.IsActive() {
			continue
		}
		if _, ok := grades[e.GradeID]; !ok {
			continue
		}
		if len(groups) > 0 {
			if _, ok := groups[e.GroupName]; !ok {
				continue
			}
		}
		ids[e.StudentID] = struct{}{}
	}
	for _, s := range tmpl.TargetAudience.Students {
		if s != "" {
			ids[s] = struct{}{}
		}
	}

	out := make([]string, 0, len(ids))
	for id := range ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// StationDisplayName resolves a mission's station field: exact station id
// first, then case-insensitive label or name match, then the raw value
// unchanged. Free-text legacy values therefore still render.
func StationDisplayName(v mirror.View, field string) string {
	field = strings.TrimSpace(field)
	if field == "" {
		return ""
	}
	if s, ok := v.Stations[field]; ok {
		return displayLabel(s)
	}
	folded := strings.ToLower(field)
	for _, s := range v.Stations {
		if strings.ToLower(s.Label) == folded || strings.ToLower(s.Name) == folded {
			return displayLabel(s)
		}
	}
	return field
}

func displayLabel(s models.Station) string {
	if s.Label != "" {
		return s.Label
	}
	return s.Name
}
