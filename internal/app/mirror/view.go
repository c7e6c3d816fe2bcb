// internal/app/mirror/view.go
package mirror

import (
	"maps"

	"github.com/dalemusser/makerhub/internal/domain/models"
)

// Mirrored collection names. These match the document-store collections.
const (
	CollectionPrograms  = "programs"
	CollectionUsers     = "users"
	CollectionEnrolls   = "enrollments"
	CollectionMissions  = "project_templates"
	CollectionProjects  = "student_projects"
	CollectionWorkflows = "process_templates"
	CollectionStations  = "stations"
	CollectionBadges    = "badges"
	CollectionGadgets   = "gadgets"
	CollectionContests  = "contests"
)

// AllCollections lists every collection the mirror knows how to load.
var AllCollections = []string{
	CollectionPrograms,
	CollectionUsers,
	CollectionEnrolls,
	CollectionMissions,
	CollectionProjects,
	CollectionWorkflows,
	CollectionStations,
	CollectionBadges,
	CollectionGadgets,
	CollectionContests,
}

// View is a point-in-time snapshot of every mirrored collection, keyed by
// document id. Views are handed out by value with freshly copied maps;
// consumers treat the contents as read-only. A collection nobody has
// subscribed to is simply an empty map.
type View struct {
	Programs    map[string]models.Program
	Users       map[string]models.User
	Enrollments map[string]models.Enrollment
	Missions    map[string]models.MissionTemplate
	Projects    map[string]models.StudentProject
	Workflows   map[string]models.Workflow
	Stations    map[string]models.Station
	Badges      map[string]models.Badge
	Gadgets     map[string]models.Gadget
	Contests    map[string]models.Contest
}

// NewView returns an empty View with all maps allocated. Resolver tests
// build fixture views with it directly.
func NewView() View {
	return View{
		Programs:    map[string]models.Program{},
		Users:       map[string]models.User{},
		Enrollments: map[string]models.Enrollment{},
		Missions:    map[string]models.MissionTemplate{},
		Projects:    map[string]models.StudentProject{},
		Workflows:   map[string]models.Workflow{},
		Stations:    map[string]models.Station{},
		Badges:      map[string]models.Badge{},
		Gadgets:     map[string]models.Gadget{},
		Contests:    map[string]models.Contest{},
	}
}

func (v View) clone() View {
	return View{
		Programs:    maps.Clone(v.Programs),
		Users:       maps.Clone(v.Users),
		Enrollments: maps.Clone(v.Enrollments),
		Missions:    maps.Clone(v.Missions),
		Projects:    maps.Clone(v.Projects),
		Workflows:   maps.Clone(v.Workflows),
		Stations:    maps.Clone(v.Stations),
		Badges:      maps.Clone(v.Badges),
		Gadgets:     maps.Clone(v.Gadgets),
		Contests:    maps.Clone(v.Contests),
	}
}
