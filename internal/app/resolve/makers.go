// internal/app/resolve/makers.go
package resolve

import (
	"sort"

	"github.com/dalemusser/makerhub/internal/app/mirror"
	"github.com/dalemusser/makerhub/internal/domain/models"
)

// UnknownMakerName is the display fallback when no document carries a real
// name for a student.
const UnknownMakerName = "Unknown Maker"

// MakerProfile is the per-student aggregate shown on the makers board.
type MakerProfile struct {
	StudentID      string          `json:"student_id"`
	Name           string          `json:"name"`
	GradeID        string          `json:"grade_id,omitempty"`
	ProjectCount   int             `json:"project_count"`
	PublishedCount int             `json:"published_count"`
	LastActive     models.FlexTime `json:"last_active,omitempty"`
}

// MakerProfiles folds every student project into per-student profiles and
// seeds a zero-project profile for each student user, so new students show
// up before their first project. The name fold is order-independent: a
// generic placeholder is repaired by any real name seen on a sibling
// document, and a non-generic name embedded on a project wins over the user
// record's own name; the user record only fills the gap when no project
// carries a real one.
func MakerProfiles(v mirror.View) []MakerProfile {
	byStudent := map[string]*MakerProfile{}
	namedByProject := map[string]bool{}

	profile := func(studentID string) *MakerProfile {
		p, ok := byStudent[studentID]
		if !ok {
			p = &MakerProfile{StudentID: studentID}
			byStudent[studentID] = p
		}
		return p
	}

	for _, u := range v.Users {
		if !u.IsStudent() {
			continue
		}
		p := profile(u.ID)
		if !models.IsGenericName(u.Name) {
			p.Name = u.Name
		}
		p.GradeID = studentGradeID(v, u)
	}

	for _, proj := range v.Projects {
		if proj.StudentID == "" {
			continue
		}
		p := profile(proj.StudentID)
		p.ProjectCount++
		if proj.Status == models.ProjectPublished {
			p.PublishedCount++
		}
		if p.LastActive.Before(proj.UpdatedAt) {
			p.LastActive = proj.UpdatedAt
		}
		if !namedByProject[proj.StudentID] && !models.IsGenericName(proj.StudentName) {
			p.Name = proj.StudentName
			namedByProject[proj.StudentID] = true
		}
	}

	out := make([]MakerProfile, 0, len(byStudent))
	for _, p := range byStudent {
		if p.Name == "" {
			p.Name = UnknownMakerName
		}
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].LastActive.Equal(out[j].LastActive.Time) {
			return out[j].LastActive.Before(out[i].LastActive)
		}
		return out[i].StudentID < out[j].StudentID
	})
	return out
}

// MakerProfileByID resolves one student's profile.
func MakerProfileByID(v mirror.View, studentID string) (MakerProfile, bool) {
	for _, p := range MakerProfiles(v) {
		if p.StudentID == studentID {
			return p, true
		}
	}
	return MakerProfile{}, false
}

// studentGradeID prefers an active enrollment's grade; otherwise it tries to
// map a legacy locator back to a known grade id.
func studentGradeID(v mirror.View, u models.User) string {
	for _, e := range v.Enrollments {
		if e.IsActive() && e.StudentID == u.ID && e.GradeID != "" {
			return e.GradeID
		}
	}
	for _, p := range v.Programs {
		for _, g := range p.Grades {
			set := RelevantGradeIDs(v, g.ID)
			if u.HasLocator(set) {
				return g.ID
			}
		}
	}
	return ""
}

// SortProjectsByRecency orders projects newest first. Missing or malformed
// timestamps decode to the zero time and land at the end; ties break on id
// so the order is stable across calls.
func SortProjectsByRecency(projects []models.StudentProject) {
	sort.Slice(projects, func(i, j int) bool {
		if !projects[i].UpdatedAt.Equal(projects[j].UpdatedAt.Time) {
			return projects[j].UpdatedAt.Before(projects[i].UpdatedAt)
		}
		return projects[i].ID < projects[j].ID
	})
}
