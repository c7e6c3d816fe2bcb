package dispatch_test

import (
	"testing"

	"github.com/dalemusser/makerhub/internal/app/dispatch"
	"github.com/dalemusser/makerhub/internal/domain/models"
)

func pendingSteps() []models.ProjectStep {
	return []models.ProjectStep{
		{Name: "Plan", Status: models.StepDone},
		{Name: "Build", Status: models.StepPendingReview},
		{Name: "Present", Status: models.StepTodo},
	}
}

func TestValidateReview(t *testing.T) {
	tests := []struct {
		name     string
		steps    []models.ProjectStep
		index    int
		verdict  string
		reviewer string
		feedback string
		want     error
	}{
		{
			name:  "approve pending step",
			steps: pendingSteps(), index: 1,
			verdict: dispatch.VerdictApproved, reviewer: "inst1",
			want: nil,
		},
		{
			name:  "reject with feedback",
			steps: pendingSteps(), index: 1,
			verdict: dispatch.VerdictRejected, reviewer: "inst1", feedback: "needs a safety guard",
			want: nil,
		},
		{
			name:  "reject without feedback",
			steps: pendingSteps(), index: 1,
			verdict: dispatch.VerdictRejected, reviewer: "inst1",
			want: dispatch.ErrFeedbackRequired,
		},
		{
			name:  "reject with whitespace feedback",
			steps: pendingSteps(), index: 1,
			verdict: dispatch.VerdictRejected, reviewer: "inst1", feedback: "   ",
			want: dispatch.ErrFeedbackRequired,
		},
		{
			name:  "missing reviewer",
			steps: pendingSteps(), index: 1,
			verdict: dispatch.VerdictApproved,
			want:    dispatch.ErrReviewerRequired,
		},
		{
			name:  "unknown verdict",
			steps: pendingSteps(), index: 1,
			verdict: "maybe", reviewer: "inst1",
			want: dispatch.ErrBadDecision,
		},
		{
			name:  "step not awaiting review",
			steps: pendingSteps(), index: 2,
			verdict: dispatch.VerdictApproved, reviewer: "inst1",
			want: dispatch.ErrBadTransition,
		},
		{
			name:  "index out of range",
			steps: pendingSteps(), index: 7,
			verdict: dispatch.VerdictApproved, reviewer: "inst1",
			want: dispatch.ErrBadStepIndex,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := dispatch.ValidateReview(tt.steps, tt.index, tt.verdict, tt.reviewer, tt.feedback)
			if got != tt.want {
				t.Errorf("ValidateReview() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidateReview_LeavesStepsUntouched(t *testing.T) {
	steps := pendingSteps()
	_ = dispatch.ValidateReview(steps, 1, dispatch.VerdictRejected, "inst1", "")

	if steps[1].Status != models.StepPendingReview || len(steps[1].ReviewNotes) != 0 {
		t.Errorf("validation must not mutate steps: %+v", steps[1])
	}
}
