// internal/domain/models/workflow.go
package models

import "time"

// Workflow is an ordered sequence of phases a student project progresses
// through. Stored in the process_templates collection.
type Workflow struct {
	ID     string          `bson:"_id,omitempty" json:"id"`
	Name   string          `bson:"name" json:"name"`
	NameCI string          `bson:"name_ci" json:"name_ci"`
	Phases []WorkflowPhase `bson:"phases" json:"phases"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// WorkflowPhase is one ordered phase. DefaultResources apply to every
// mission using the workflow; MissionResources override or extend them for
// a specific mission id.
type WorkflowPhase struct {
	Name             string                    `bson:"name" json:"name"`
	Description      string                    `bson:"description,omitempty" json:"description,omitempty"`
	DefaultResources []ResourceLink            `bson:"default_resources,omitempty" json:"default_resources,omitempty"`
	MissionResources map[string][]ResourceLink `bson:"mission_resources,omitempty" json:"mission_resources,omitempty"`
}

// PhaseResources returns the resources for a phase as seen by one mission:
// mission-specific attachments when present, else the defaults.
func (p WorkflowPhase) PhaseResources(missionID string) []ResourceLink {
	if rs, ok := p.MissionResources[missionID]; ok && len(rs) > 0 {
		return rs
	}
	return p.DefaultResources
}
