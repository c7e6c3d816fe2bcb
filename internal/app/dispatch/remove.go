// internal/app/dispatch/remove.go
package dispatch

import (
	"context"

	"go.uber.org/zap"

	projectstore "github.com/dalemusser/makerhub/internal/app/store/projects"
	userstore "github.com/dalemusser/makerhub/internal/app/store/users"
)

// DeleteMaker removes a student account plus every project and enrollment
// they hold, in one transaction where the server supports them. confirm is
// the caller's explicit acknowledgement; without it nothing is touched.
func (d *Dispatcher) DeleteMaker(ctx context.Context, studentID string, confirm bool) error {
	if !confirm {
		return ErrConfirmRequired
	}
	u, err := d.users.GetByID(ctx, studentID)
	if err != nil {
		return err
	}
	if !u.IsStudent() {
		return userstore.ErrNotFound
	}

	return d.inTxn(ctx, func(ctx context.Context) error {
		projects, err := d.projects.DeleteByStudent(ctx, studentID)
		if err != nil {
			return err
		}
		enrollments, err := d.enrollments.DeleteByStudent(ctx, studentID)
		if err != nil {
			return err
		}
		if _, err := d.users.Delete(ctx, studentID); err != nil {
			return err
		}
		d.log.Info("maker deleted",
			zap.String("student_id", studentID),
			zap.Int64("projects_removed", projects),
			zap.Int64("enrollments_removed", enrollments))
		return nil
	})
}

// DeleteStudentProject removes a single project behind the same confirm
// gate as the other destructive operations.
func (d *Dispatcher) DeleteStudentProject(ctx context.Context, projectID string, confirm bool) error {
	if !confirm {
		return ErrConfirmRequired
	}
	n, err := d.projects.Delete(ctx, projectID)
	if err != nil {
		return err
	}
	if n == 0 {
		return projectstore.ErrNotFound
	}
	d.log.Info("student project deleted", zap.String("project_id", projectID))
	return nil
}
