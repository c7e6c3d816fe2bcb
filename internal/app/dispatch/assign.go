// internal/app/dispatch/assign.go
package dispatch

import (
	"context"

	"go.uber.org/zap"

	"github.com/dalemusser/makerhub/internal/app/mirror"
	enrollmentstore "github.com/dalemusser/makerhub/internal/app/store/enrollments"
	"github.com/dalemusser/makerhub/internal/domain/models"
)

// AssignResult reports a batch assignment. The batch is not atomic by
// contract: successes stand even when later students fail.
type AssignResult struct {
	Success int      `json:"success"`
	Skipped int      `json:"skipped"`
	Failed  int      `json:"failed"`
	Total   int      `json:"total"`
	Errors  []string `json:"errors,omitempty"`
}

// AssignMissionToStudents enrolls each student in a mission. A student who
// already holds an active enrollment for the mission is a skip, never an
// error. The mirror gives a cheap first check; the store is re-queried
// before every insert because the mirror may be stale, and the unique
// partial index settles any remaining race.
func (d *Dispatcher) AssignMissionToStudents(ctx context.Context, missionID string, studentIDs []string, gradeID, assignedBy string) (AssignResult, error) {
	res := AssignResult{Total: len(studentIDs)}
	if len(studentIDs) == 0 {
		return res, ErrNoStudents
	}
	if _, err := d.missions.GetByID(ctx, missionID); err != nil {
		return res, err
	}

	snapshot := d.mirror.Snapshot()

	for _, studentID := range studentIDs {
		if hasActiveEnrollment(snapshot, studentID, missionID) {
			res.Skipped++
			continue
		}
		if _, err := d.enrollments.FindActive(ctx, studentID, missionID); err == nil {
			res.Skipped++
			continue
		} else if err != enrollmentstore.ErrNotFound {
			res.Failed++
			res.Errors = append(res.Errors, studentID+": "+err.Error())
			continue
		}

		_, err := d.enrollments.Create(ctx, models.Enrollment{
			StudentID:  studentID,
			ProgramID:  missionID,
			GradeID:    gradeID,
			AssignedBy: assignedBy,
		})
		switch err {
		case nil:
			res.Success++
		case enrollmentstore.ErrDuplicateActive:
			res.Skipped++
		default:
			res.Failed++
			res.Errors = append(res.Errors, studentID+": "+err.Error())
			d.log.Warn("assignment failed",
				zap.String("mission_id", missionID),
				zap.String("student_id", studentID),
				zap.Error(err))
		}
	}

	if res.Success > 0 {
		if err := d.missions.UpdateStatus(ctx, missionID, models.MissionAssigned); err != nil {
			d.log.Warn("failed to mark mission assigned",
				zap.String("mission_id", missionID),
				zap.Error(err))
		}
	}
	return res, nil
}

func hasActiveEnrollment(v mirror.View, studentID, missionID string) bool {
	for _, e := range v.Enrollments {
		if e.IsActive() && e.StudentID == studentID && e.ProgramID == missionID {
			return true
		}
	}
	return false
}

// DeleteMissionTemplate removes a template plus every project and
// enrollment derived from it, in one transaction where the server supports
// them. confirm is the caller's explicit acknowledgement; without it
// nothing is touched.
func (d *Dispatcher) DeleteMissionTemplate(ctx context.Context, templateID string, confirm bool) error {
	if !confirm {
		return ErrConfirmRequired
	}
	if _, err := d.missions.GetByID(ctx, templateID); err != nil {
		return err
	}

	return d.inTxn(ctx, func(ctx context.Context) error {
		projects, err := d.projects.DeleteByTemplate(ctx, templateID)
		if err != nil {
			return err
		}
		enrollments, err := d.enrollments.DeleteByProgram(ctx, templateID)
		if err != nil {
			return err
		}
		if _, err := d.missions.Delete(ctx, templateID); err != nil {
			return err
		}
		d.log.Info("mission template deleted",
			zap.String("template_id", templateID),
			zap.Int64("projects_removed", projects),
			zap.Int64("enrollments_removed", enrollments))
		return nil
	})
}
