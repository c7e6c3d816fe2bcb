// internal/app/dispatch/review.go
package dispatch

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/dalemusser/makerhub/internal/domain/models"
)

// Review verdicts.
const (
	VerdictApproved = "approved"
	VerdictRejected = "rejected"
)

// ValidateReview checks a review request against the step list without
// touching anything. Every rule here runs before any write: an invalid
// request leaves the project byte-identical.
func ValidateReview(steps []models.ProjectStep, stepIndex int, verdict, reviewer, feedback string) error {
	if stepIndex < 0 || stepIndex >= len(steps) {
		return ErrBadStepIndex
	}
	if strings.TrimSpace(reviewer) == "" {
		return ErrReviewerRequired
	}
	switch verdict {
	case VerdictApproved:
	case VerdictRejected:
		if strings.TrimSpace(feedback) == "" {
			return ErrFeedbackRequired
		}
	default:
		return ErrBadDecision
	}
	if steps[stepIndex].Status != models.StepPendingReview {
		return ErrBadTransition
	}
	return nil
}

// ReviewStep applies an instructor's verdict to one step. Approval marks
// the step done; rejection returns it to the student with the feedback
// recorded. Notes accumulate as history, nothing is overwritten.
func (d *Dispatcher) ReviewStep(ctx context.Context, projectID string, stepIndex int, verdict, reviewer, feedback string) (models.StudentProject, error) {
	project, err := d.projects.GetByID(ctx, projectID)
	if err != nil {
		return models.StudentProject{}, err
	}
	if err := ValidateReview(project.Steps, stepIndex, verdict, reviewer, feedback); err != nil {
		return models.StudentProject{}, err
	}

	now := time.Now().UTC()
	step := &project.Steps[stepIndex]
	if verdict == VerdictApproved {
		step.Status = models.StepDone
	} else {
		step.Status = models.StepRejected
	}
	step.ReviewedAt = &now
	step.ReviewedBy = reviewer
	step.ReviewNotes = append(step.ReviewNotes, models.ReviewNote{
		Reviewer:  reviewer,
		Verdict:   verdict,
		Feedback:  strings.TrimSpace(feedback),
		CreatedAt: now,
	})

	if err := d.projects.ReplaceSteps(ctx, projectID, project.Steps); err != nil {
		return models.StudentProject{}, err
	}
	d.log.Info("step reviewed",
		zap.String("project_id", projectID),
		zap.Int("step", stepIndex),
		zap.String("verdict", verdict),
		zap.String("reviewer", reviewer))
	return project, nil
}

// StartStep moves a TODO step into DOING.
func (d *Dispatcher) StartStep(ctx context.Context, projectID string, stepIndex int) (models.StudentProject, error) {
	return d.transitionStep(ctx, projectID, stepIndex, func(step *models.ProjectStep) error {
		if step.Status != models.StepTodo {
			return ErrBadTransition
		}
		step.Status = models.StepDoing
		return nil
	})
}

// SubmitStep sends a DOING or previously rejected step to review.
func (d *Dispatcher) SubmitStep(ctx context.Context, projectID string, stepIndex int) (models.StudentProject, error) {
	return d.transitionStep(ctx, projectID, stepIndex, func(step *models.ProjectStep) error {
		if step.Status != models.StepDoing && step.Status != models.StepRejected {
			return ErrBadTransition
		}
		now := time.Now().UTC()
		step.Status = models.StepPendingReview
		step.SubmittedAt = &now
		return nil
	})
}

func (d *Dispatcher) transitionStep(ctx context.Context, projectID string, stepIndex int, apply func(*models.ProjectStep) error) (models.StudentProject, error) {
	project, err := d.projects.GetByID(ctx, projectID)
	if err != nil {
		return models.StudentProject{}, err
	}
	if stepIndex < 0 || stepIndex >= len(project.Steps) {
		return models.StudentProject{}, ErrBadStepIndex
	}
	if err := apply(&project.Steps[stepIndex]); err != nil {
		return models.StudentProject{}, err
	}
	if err := d.projects.ReplaceSteps(ctx, projectID, project.Steps); err != nil {
		return models.StudentProject{}, err
	}
	return project, nil
}
