package dispatch_test

import (
	"testing"

	"go.uber.org/zap"

	"github.com/dalemusser/makerhub/internal/app/dispatch"
	"github.com/dalemusser/makerhub/internal/app/mirror"
	enrollmentstore "github.com/dalemusser/makerhub/internal/app/store/enrollments"
	missionstore "github.com/dalemusser/makerhub/internal/app/store/missions"
	projectstore "github.com/dalemusser/makerhub/internal/app/store/projects"
	userstore "github.com/dalemusser/makerhub/internal/app/store/users"
	"github.com/dalemusser/makerhub/internal/app/system/indexes"
	"github.com/dalemusser/makerhub/internal/domain/models"
	"github.com/dalemusser/makerhub/internal/testutil"
)

func setupDispatcher(t *testing.T) (*dispatch.Dispatcher, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)

	ctx, cancel := testutil.TestContext()
	defer cancel()
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	m := mirror.New(db, zap.NewNop())
	t.Cleanup(m.Stop)
	return dispatch.New(db.Client(), db, m, zap.NewNop()), fx
}

func TestAssignMissionToStudents_DuplicatesAreSkips(t *testing.T) {
	d, fx := setupDispatcher(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	program := fx.CreateProgram(ctx, "Spring Makers", "Grade 5", "Blue Team")
	gradeID := program.Grades[0].ID
	mission := fx.CreateMission(ctx, "Robot Arm", gradeID)
	s1 := fx.CreateStudent(ctx, "Ada", "ada@example.com")
	s2 := fx.CreateStudent(ctx, "Grace", "grace@example.com")

	res, err := d.AssignMissionToStudents(ctx, mission.ID, []string{s1.ID, s2.ID}, gradeID, "inst1")
	if err != nil {
		t.Fatalf("first assignment failed: %v", err)
	}
	if res.Success != 2 || res.Skipped != 0 || res.Failed != 0 {
		t.Errorf("first batch: got %+v, want 2 successes", res)
	}

	// Re-running the same batch must change nothing.
	res, err = d.AssignMissionToStudents(ctx, mission.ID, []string{s1.ID, s2.ID}, gradeID, "inst1")
	if err != nil {
		t.Fatalf("second assignment failed: %v", err)
	}
	if res.Success != 0 || res.Skipped != 2 {
		t.Errorf("second batch: got %+v, want 2 skips", res)
	}

	// Partial overlap: only the new student lands.
	s3 := fx.CreateStudent(ctx, "Linus", "linus@example.com")
	res, err = d.AssignMissionToStudents(ctx, mission.ID, []string{s1.ID, s3.ID}, gradeID, "inst1")
	if err != nil {
		t.Fatalf("third assignment failed: %v", err)
	}
	if res.Success != 1 || res.Skipped != 1 {
		t.Errorf("third batch: got %+v, want 1 success and 1 skip", res)
	}
}

func TestDeleteMissionTemplate_CascadesAndRequiresConfirm(t *testing.T) {
	d, fx := setupDispatcher(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	mission := fx.CreateMission(ctx, "Robot Arm", "g1")
	other := fx.CreateMission(ctx, "LED Cube", "g1")
	s1 := fx.CreateStudent(ctx, "Ada", "ada@example.com")
	fx.CreateStudentProject(ctx, s1.ID, mission.ID, "Ada's Arm", models.ProjectBuilding)
	fx.CreateStudentProject(ctx, s1.ID, other.ID, "Ada's Cube", models.ProjectBuilding)
	fx.CreateEnrollment(ctx, s1.ID, mission.ID, "g1")

	if err := d.DeleteMissionTemplate(ctx, mission.ID, false); err != dispatch.ErrConfirmRequired {
		t.Fatalf("unconfirmed delete: got %v, want ErrConfirmRequired", err)
	}

	if err := d.DeleteMissionTemplate(ctx, mission.ID, true); err != nil {
		t.Fatalf("confirmed delete failed: %v", err)
	}

	ms := missionstore.New(fx.DB())
	if _, err := ms.GetByID(ctx, mission.ID); err != missionstore.ErrNotFound {
		t.Errorf("template should be gone, got %v", err)
	}

	ps := projectstore.New(fx.DB())
	orphans, err := ps.ListByTemplate(ctx, mission.ID)
	if err != nil {
		t.Fatalf("ListByTemplate failed: %v", err)
	}
	if len(orphans) != 0 {
		t.Errorf("cascade left %d projects behind", len(orphans))
	}

	// Unrelated template's projects survive.
	kept, err := ps.ListByTemplate(ctx, other.ID)
	if err != nil {
		t.Fatalf("ListByTemplate failed: %v", err)
	}
	if len(kept) != 1 {
		t.Errorf("unrelated project should survive, found %d", len(kept))
	}
}

func TestToggleStationActivation_Exclusivity(t *testing.T) {
	d, fx := setupDispatcher(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	robotics := fx.CreateStation(ctx, "Robotics", "g1")
	woodshop := fx.CreateStation(ctx, "Woodshop")

	// Activating woodshop for g1 must pull g1 out of robotics.
	active, err := d.ToggleStationActivation(ctx, woodshop.ID, "g1")
	if err != nil {
		t.Fatalf("activation failed: %v", err)
	}
	if !active {
		t.Fatal("expected activation")
	}

	got, err := d.Stations().GetByID(ctx, robotics.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.IsActiveForGrade("g1") {
		t.Error("grade should have been pulled from the previous station")
	}

	// Toggling again deactivates.
	active, err = d.ToggleStationActivation(ctx, woodshop.ID, "g1")
	if err != nil {
		t.Fatalf("deactivation failed: %v", err)
	}
	if active {
		t.Error("expected deactivation")
	}
}

func TestSaveContest_InheritsGadgetBanner(t *testing.T) {
	d, fx := setupDispatcher(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	gadget := fx.CreateGadget(ctx, "Oscilloscope", "scope.png")

	saved, err := d.SaveContest(ctx, models.Contest{
		Title:          "Summer Build-Off",
		RewardGadgetID: gadget.ID,
	})
	if err != nil {
		t.Fatalf("SaveContest failed: %v", err)
	}
	if saved.Banner != "scope.png" {
		t.Errorf("banner: got %q, want the gadget image", saved.Banner)
	}

	// An explicit banner is never overwritten.
	saved.Banner = "custom.png"
	saved, err = d.SaveContest(ctx, saved)
	if err != nil {
		t.Fatalf("second SaveContest failed: %v", err)
	}
	if saved.Banner != "custom.png" {
		t.Errorf("banner: got %q, want the explicit value", saved.Banner)
	}
}

func TestProcessPurchaseRequest(t *testing.T) {
	d, fx := setupDispatcher(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	gadget := fx.CreateGadget(ctx, "Oscilloscope", "scope.png")
	req, err := d.Rewards().CreatePurchase(ctx, "s1", gadget.ID)
	if err != nil {
		t.Fatalf("CreatePurchase failed: %v", err)
	}

	if err := d.ProcessPurchaseRequest(ctx, req.ID, "maybe", "inst1"); err != dispatch.ErrBadDecision {
		t.Errorf("bad decision: got %v", err)
	}
	if err := d.ProcessPurchaseRequest(ctx, req.ID, dispatch.VerdictApproved, ""); err != dispatch.ErrReviewerRequired {
		t.Errorf("missing decider: got %v", err)
	}
	if err := d.ProcessPurchaseRequest(ctx, req.ID, dispatch.VerdictApproved, "inst1"); err != nil {
		t.Fatalf("decision failed: %v", err)
	}

	got, err := d.Rewards().GetPurchase(ctx, req.ID)
	if err != nil {
		t.Fatalf("GetPurchase failed: %v", err)
	}
	if got.Status != models.PurchaseApproved || got.DecidedBy != "inst1" {
		t.Errorf("unexpected request state: %+v", got)
	}
}

func TestDeleteMaker_CascadesAndRequiresConfirm(t *testing.T) {
	d, fx := setupDispatcher(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	mission := fx.CreateMission(ctx, "Robot Arm", "g1")
	ada := fx.CreateStudent(ctx, "Ada", "ada@example.com")
	grace := fx.CreateStudent(ctx, "Grace", "grace@example.com")
	fx.CreateStudentProject(ctx, ada.ID, mission.ID, "Ada's Arm", models.ProjectBuilding)
	fx.CreateStudentProject(ctx, grace.ID, mission.ID, "Grace's Arm", models.ProjectBuilding)
	fx.CreateEnrollment(ctx, ada.ID, mission.ID, "g1")

	if err := d.DeleteMaker(ctx, ada.ID, false); err != dispatch.ErrConfirmRequired {
		t.Fatalf("unconfirmed delete: got %v, want ErrConfirmRequired", err)
	}

	us := userstore.New(fx.DB())
	if _, err := us.GetByID(ctx, ada.ID); err != nil {
		t.Fatalf("unconfirmed delete must leave the account: %v", err)
	}

	if err := d.DeleteMaker(ctx, ada.ID, true); err != nil {
		t.Fatalf("confirmed delete failed: %v", err)
	}
	if _, err := us.GetByID(ctx, ada.ID); err != userstore.ErrNotFound {
		t.Errorf("account should be gone, got %v", err)
	}

	ps := projectstore.New(fx.DB())
	owned, err := ps.ListByStudent(ctx, ada.ID)
	if err != nil {
		t.Fatalf("ListByStudent failed: %v", err)
	}
	if len(owned) != 0 {
		t.Errorf("cascade left %d projects behind", len(owned))
	}

	es := enrollmentstore.New(fx.DB())
	left, err := es.ListActiveByStudent(ctx, ada.ID)
	if err != nil {
		t.Fatalf("ListActiveByStudent failed: %v", err)
	}
	if len(left) != 0 {
		t.Errorf("cascade left %d enrollments behind", len(left))
	}

	// Another student's work survives.
	kept, err := ps.ListByStudent(ctx, grace.ID)
	if err != nil {
		t.Fatalf("ListByStudent failed: %v", err)
	}
	if len(kept) != 1 {
		t.Errorf("unrelated project should survive, found %d", len(kept))
	}

	// The cascade only applies to student accounts.
	inst := fx.CreateInstructor(ctx, "Ms. Rivera", "rivera@example.com")
	if err := d.DeleteMaker(ctx, inst.ID, true); err != userstore.ErrNotFound {
		t.Errorf("instructor delete: got %v, want ErrNotFound", err)
	}
}

func TestDeleteStudentProject_RequiresConfirm(t *testing.T) {
	d, fx := setupDispatcher(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	s := fx.CreateStudent(ctx, "Ada", "ada@example.com")
	project := fx.CreateStudentProject(ctx, s.ID, "", "Wind Tunnel", models.ProjectBuilding)

	if err := d.DeleteStudentProject(ctx, project.ID, false); err != dispatch.ErrConfirmRequired {
		t.Fatalf("unconfirmed delete: got %v, want ErrConfirmRequired", err)
	}
	if _, err := d.Projects().GetByID(ctx, project.ID); err != nil {
		t.Fatalf("unconfirmed delete must leave the project: %v", err)
	}

	if err := d.DeleteStudentProject(ctx, project.ID, true); err != nil {
		t.Fatalf("confirmed delete failed: %v", err)
	}
	if _, err := d.Projects().GetByID(ctx, project.ID); err != projectstore.ErrNotFound {
		t.Errorf("project should be gone, got %v", err)
	}
	if err := d.DeleteStudentProject(ctx, project.ID, true); err != projectstore.ErrNotFound {
		t.Errorf("repeat delete: got %v, want ErrNotFound", err)
	}
}
