// internal/domain/models/badge.go
package models

import (
	"errors"
	"time"
)

// Badge criteria types.
const (
	CriteriaProjectCountByStation = "project_count_by_station"
	CriteriaSkillMatch            = "skill_match"
)

// Badge is a reward definition. Criteria are stored and validated but never
// evaluated automatically; dispatch.EvaluateBadges is the explicit hook and
// the triggering policy is left to the system integrator.
type Badge struct {
	ID          string `bson:"_id,omitempty" json:"id"`
	Name        string `bson:"name" json:"name"`
	NameCI      string `bson:"name_ci" json:"name_ci"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
	Icon        string `bson:"icon,omitempty" json:"icon,omitempty"`

	Criteria BadgeCriteria `bson:"criteria" json:"criteria"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// BadgeCriteria is the achievement predicate attached to a badge.
type BadgeCriteria struct {
	Type      string `bson:"type" json:"type"`
	Station   string `bson:"station,omitempty" json:"station,omitempty"`
	Skill     string `bson:"skill,omitempty" json:"skill,omitempty"`
	Threshold int    `bson:"threshold,omitempty" json:"threshold,omitempty"`
}

// ErrInvalidCriteria rejects criteria that cannot ever match.
var ErrInvalidCriteria = errors.New("badge criteria incomplete for its type")

// Validate checks the criteria are complete for their declared type.
func (c BadgeCriteria) Validate() error {
	switch c.Type {
	case CriteriaProjectCountByStation:
		if c.Station == "" || c.Threshold < 1 {
			return ErrInvalidCriteria
		}
	case CriteriaSkillMatch:
		if c.Skill == "" {
			return ErrInvalidCriteria
		}
	default:
		return ErrInvalidCriteria
	}
	return nil
}
