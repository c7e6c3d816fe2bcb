package review_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/dalemusser/makerhub/internal/app/dispatch"
	"github.com/dalemusser/makerhub/internal/app/features/review"
	"github.com/dalemusser/makerhub/internal/app/mirror"
	"github.com/dalemusser/makerhub/internal/app/system/auth"
	"github.com/dalemusser/makerhub/internal/domain/models"
	"github.com/dalemusser/makerhub/internal/testutil"
)

func setupHandler(t *testing.T) (*review.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)

	m := mirror.New(db, zap.NewNop())
	t.Cleanup(m.Stop)

	d := dispatch.New(db.Client(), db, m, zap.NewNop())
	return review.NewHandler(d, zap.NewNop()), fx
}

func verdictRequest(t *testing.T, projectID, step, body string) *http.Request {
	t.Helper()
	r := httptest.NewRequest(http.MethodPost, "/review/"+projectID+"/steps/"+step, strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	r = testutil.WithChiURLParam(r, "projectID", projectID)
	r = testutil.WithChiURLParam(r, "step", step)
	return auth.WithTestUser(r, &auth.SessionUser{ID: "inst1", Role: models.RoleInstructor})
}

func pendingStep(t *testing.T, fx *testutil.Fixtures, projectID string) models.ProjectStep {
	t.Helper()
	ctx, cancel := testutil.TestContext()
	defer cancel()

	var p models.StudentProject
	err := fx.DB().Collection("student_projects").
		FindOne(ctx, bson.M{"_id": projectID}).Decode(&p)
	if err != nil {
		t.Fatalf("project reload failed: %v", err)
	}
	if len(p.Steps) == 0 {
		t.Fatal("project has no steps")
	}
	return p.Steps[0]
}

func seedPendingProject(t *testing.T, fx *testutil.Fixtures, studentID string) models.StudentProject {
	t.Helper()
	ctx, cancel := testutil.TestContext()
	defer cancel()

	project := fx.CreateStudentProject(ctx, studentID, "", "Wind Tunnel", models.ProjectBuilding)
	steps := []models.ProjectStep{{Name: "Plan", Status: models.StepPendingReview}}
	_, err := fx.DB().Collection("student_projects").
		UpdateByID(ctx, project.ID, bson.M{"$set": bson.M{"steps": steps}})
	if err != nil {
		t.Fatalf("seeding steps failed: %v", err)
	}
	project.Steps = steps
	return project
}

func TestHandleVerdict_RejectionWithoutFeedbackWritesNothing(t *testing.T) {
	h, fx := setupHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	student := fx.CreateStudent(ctx, "Ada", "ada@example.com")
	project := seedPendingProject(t, fx, student.ID)

	w := httptest.NewRecorder()
	h.HandleVerdict(w, verdictRequest(t, project.ID, "0", `{"verdict":"rejected","feedback":"   "}`))

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", w.Code)
	}
	step := pendingStep(t, fx, project.ID)
	if step.Status != models.StepPendingReview {
		t.Errorf("step status = %q, want untouched %q", step.Status, models.StepPendingReview)
	}
	if len(step.ReviewNotes) != 0 {
		t.Errorf("review notes = %d, want none recorded", len(step.ReviewNotes))
	}
}

func TestHandleVerdict_ApproveRecordsReviewer(t *testing.T) {
	h, fx := setupHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	student := fx.CreateStudent(ctx, "Grace", "grace@example.com")
	project := seedPendingProject(t, fx, student.ID)

	w := httptest.NewRecorder()
	h.HandleVerdict(w, verdictRequest(t, project.ID, "0", `{"verdict":"approved"}`))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}
	step := pendingStep(t, fx, project.ID)
	if step.Status != models.StepDone {
		t.Errorf("step status = %q, want %q", step.Status, models.StepDone)
	}
	if step.ReviewedBy != "inst1" {
		t.Errorf("reviewed_by = %q, want session user", step.ReviewedBy)
	}
	if len(step.ReviewNotes) != 1 || step.ReviewNotes[0].Verdict != dispatch.VerdictApproved {
		t.Errorf("review notes = %+v, want one approved note", step.ReviewNotes)
	}
}

func TestHandleVerdict_BadStepIndex(t *testing.T) {
	h, fx := setupHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	student := fx.CreateStudent(ctx, "Lin", "lin@example.com")
	project := seedPendingProject(t, fx, student.ID)

	w := httptest.NewRecorder()
	h.HandleVerdict(w, verdictRequest(t, project.ID, "7", `{"verdict":"approved"}`))

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", w.Code)
	}
}
