package resolve_test

import (
	"testing"
	"time"

	"github.com/dalemusser/makerhub/internal/app/mirror"
	"github.com/dalemusser/makerhub/internal/app/resolve"
	"github.com/dalemusser/makerhub/internal/domain/models"
)

func ft(s string) models.FlexTime {
	t, _ := time.Parse(time.RFC3339, s)
	return models.NewFlexTime(t)
}

func TestMakerProfiles_NameRepairIsOrderIndependent(t *testing.T) {
	// Two view layouts with the same documents under different ids, so map
	// iteration visits them in a different order; the fold must not care
	// whether the generic name is seen before or after the real one.
	build := func(genericID, realID string) mirror.View {
		v := mirror.NewView()
		v.Projects[genericID] = models.StudentProject{
			ID: genericID, StudentID: "s1", StudentName: "Student",
			Title: "LED Cube", Status: models.ProjectPublished, UpdatedAt: ft("2024-03-01T00:00:00Z"),
		}
		v.Projects[realID] = models.StudentProject{
			ID: realID, StudentID: "s1", StudentName: "Ada Lovelace",
			Title: "Robot Arm", Status: models.ProjectBuilding, UpdatedAt: ft("2024-01-01T00:00:00Z"),
		}
		return v
	}

	for _, v := range []mirror.View{build("a", "z"), build("z", "a")} {
		profiles := resolve.MakerProfiles(v)
		if len(profiles) != 1 {
			t.Fatalf("expected 1 profile, got %d", len(profiles))
		}
		p := profiles[0]
		if p.Name != "Ada Lovelace" {
			t.Errorf("name fold: got %q, want the repaired real name", p.Name)
		}
		if p.ProjectCount != 2 || p.PublishedCount != 1 {
			t.Errorf("counts: got %d/%d, want 2/1", p.ProjectCount, p.PublishedCount)
		}
		if !p.LastActive.Equal(ft("2024-03-01T00:00:00Z").Time) {
			t.Errorf("last active: got %v", p.LastActive)
		}
	}
}

func TestMakerProfiles_ProjectNameWinsAndUnknownFallback(t *testing.T) {
	v := mirror.NewView()
	v.Users["s1"] = models.User{ID: "s1", Name: "Bob", Role: models.RoleStudent}
	v.Projects["p1"] = models.StudentProject{ID: "p1", StudentID: "s1", StudentName: "Ada", UpdatedAt: ft("2024-01-01T00:00:00Z")}

	// User record fills the gap when every project name is generic.
	v.Users["s2"] = models.User{ID: "s2", Name: "Grace Hopper", Role: models.RoleStudent}
	v.Projects["p2"] = models.StudentProject{ID: "p2", StudentID: "s2", StudentName: "Student"}

	// Only generic names anywhere.
	v.Projects["p3"] = models.StudentProject{ID: "p3", StudentID: "s3", StudentName: "Unknown"}

	profiles := resolve.MakerProfiles(v)
	byID := map[string]resolve.MakerProfile{}
	for _, p := range profiles {
		byID[p.StudentID] = p
	}

	if byID["s1"].Name != "Ada" {
		t.Errorf("project-embedded name should win over the user record: got %q", byID["s1"].Name)
	}
	if byID["s2"].Name != "Grace Hopper" {
		t.Errorf("user record should fill the gap: got %q", byID["s2"].Name)
	}
	if byID["s3"].Name != resolve.UnknownMakerName {
		t.Errorf("fallback name: got %q", byID["s3"].Name)
	}
}

func TestMakerProfiles_SeedsZeroProjectStudents(t *testing.T) {
	v := testView()
	v.Users["s1"] = models.User{ID: "s1", Name: "Ada", Role: models.RoleStudent}
	v.Enrollments["e1"] = models.Enrollment{ID: "e1", StudentID: "s1", ProgramID: "m1", GradeID: "g1", Status: models.EnrollmentActive}
	v.Users["s2"] = models.User{ID: "s2", Name: "Grace", Role: models.RoleStudent, Group: "Red Team"}

	profiles := resolve.MakerProfiles(v)
	if len(profiles) != 2 {
		t.Fatalf("expected 2 seeded profiles, got %d", len(profiles))
	}
	byID := map[string]resolve.MakerProfile{}
	for _, p := range profiles {
		byID[p.StudentID] = p
	}
	if byID["s1"].GradeID != "g1" {
		t.Errorf("s1 grade should come from enrollment: got %q", byID["s1"].GradeID)
	}
	if byID["s2"].GradeID != "g1" {
		t.Errorf("s2 grade should come from the legacy group-name locator: got %q", byID["s2"].GradeID)
	}
	if byID["s1"].ProjectCount != 0 {
		t.Errorf("seeded profile should have zero projects")
	}
}

func TestSortProjectsByRecency_MalformedTimestampsSortOldest(t *testing.T) {
	projects := []models.StudentProject{
		{ID: "missing"}, // zero UpdatedAt
		{ID: "new", UpdatedAt: ft("2024-06-01T00:00:00Z")},
		{ID: "old", UpdatedAt: ft("2023-01-01T00:00:00Z")},
	}

	resolve.SortProjectsByRecency(projects)

	want := []string{"new", "old", "missing"}
	for i, id := range want {
		if projects[i].ID != id {
			t.Fatalf("order[%d]: got %q, want %q (full: %v)", i, projects[i].ID, id, projects)
		}
	}
}

func TestMakerProfileByID(t *testing.T) {
	v := mirror.NewView()
	v.Users["s1"] = models.User{ID: "s1", Name: "Ada", Role: models.RoleStudent}

	if _, ok := resolve.MakerProfileByID(v, "s1"); !ok {
		t.Error("expected profile for s1")
	}
	if _, ok := resolve.MakerProfileByID(v, "nope"); ok {
		t.Error("expected no profile for unknown id")
	}
}
