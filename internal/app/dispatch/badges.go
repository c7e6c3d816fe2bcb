// internal/app/dispatch/badges.go
package dispatch

import (
	"context"
	"sort"
	"strings"

	"github.com/dalemusser/makerhub/internal/app/mirror"
	"github.com/dalemusser/makerhub/internal/app/resolve"
	"github.com/dalemusser/makerhub/internal/domain/models"
)

// BadgeAward is one would-be award produced by evaluation.
type BadgeAward struct {
	StudentID string `json:"student_id"`
	BadgeID   string `json:"badge_id"`
	BadgeName string `json:"badge_name"`
}

// EvaluateBadges runs every stored badge criteria against the current
// snapshot and returns the awards that would be granted. Nothing calls this
// automatically and nothing is persisted; when and how to grant is the
// integrator's policy.
func (d *Dispatcher) EvaluateBadges(ctx context.Context) ([]BadgeAward, error) {
	badges, err := d.badges.List(ctx)
	if err != nil {
		return nil, err
	}

	v := d.mirror.Snapshot()
	var awards []BadgeAward
	for _, b := range badges {
		if b.Criteria.Validate() != nil {
			continue // stored before validation existed; skip, don't fail
		}
		for _, studentID := range evaluateCriteria(v, b.Criteria) {
			awards = append(awards, BadgeAward{
				StudentID: studentID,
				BadgeID:   b.ID,
				BadgeName: b.Name,
			})
		}
	}
	sort.Slice(awards, func(i, j int) bool {
		if awards[i].StudentID != awards[j].StudentID {
			return awards[i].StudentID < awards[j].StudentID
		}
		return awards[i].BadgeID < awards[j].BadgeID
	})
	return awards, nil
}

// evaluateCriteria returns the student ids satisfying one criteria, joining
// projects to their templates for station and skill data.
func evaluateCriteria(v mirror.View, c models.BadgeCriteria) []string {
	matched := map[string]bool{}
	counts := map[string]int{}

	for _, p := range v.Projects {
		if p.StudentID == "" || p.TemplateID == "" {
			continue
		}
		tmpl, ok := v.Missions[p.TemplateID]
		if !ok {
			continue
		}

		switch c.Type {
		case models.CriteriaProjectCountByStation:
			if stationMatches(v, tmpl.Station, c.Station) {
				counts[p.StudentID]++
				if counts[p.StudentID] >= c.Threshold {
					matched[p.StudentID] = true
				}
			}
		case models.CriteriaSkillMatch:
			for _, skill := range tmpl.Skills {
				if strings.EqualFold(skill, c.Skill) {
					matched[p.StudentID] = true
					break
				}
			}
		}
	}

	out := make([]string, 0, len(matched))
	for id := range matched {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// stationMatches compares two station references through display-name
// resolution, so an id on one side and a label on the other still match.
func stationMatches(v mirror.View, a, b string) bool {
	return strings.EqualFold(resolve.StationDisplayName(v, a), resolve.StationDisplayName(v, b))
}
