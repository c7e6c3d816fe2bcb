// internal/testutil/fixtures.go
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/makerhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateProgram creates a program with one grade containing one group.
// Returns the program; grade and group ids are deterministic from the names.
func (f *Fixtures) CreateProgram(ctx context.Context, name, gradeName, groupName string) models.Program {
	f.t.Helper()

	now := time.Now().UTC()
	program := models.Program{
		ID:     primitive.NewObjectID().Hex(),
		Name:   name,
		NameCI: text.Fold(name),
		Status: "active",
		Grades: []models.Grade{
			{
				ID:   primitive.NewObjectID().Hex(),
				Name: gradeName,
				Groups: []models.Group{
					{ID: primitive.NewObjectID().Hex(), Name: groupName},
				},
			},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("programs").InsertOne(ctx, program); err != nil {
		f.t.Fatalf("failed to create test program: %v", err)
	}
	return program
}

// CreateStudent creates a student user with no legacy locator fields.
func (f *Fixtures) CreateStudent(ctx context.Context, name, email string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	user := models.User{
		ID:        primitive.NewObjectID().Hex(),
		Name:      name,
		NameCI:    text.Fold(name),
		Email:     email,
		Role:      models.RoleStudent,
		Status:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, user); err != nil {
		f.t.Fatalf("failed to create test student: %v", err)
	}
	return user
}

// CreateLegacyStudent creates a student carrying only a legacy grade locator.
func (f *Fixtures) CreateLegacyStudent(ctx context.Context, name, gradeLocator string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	user := models.User{
		ID:        primitive.NewObjectID().Hex(),
		Name:      name,
		NameCI:    text.Fold(name),
		Role:      models.RoleStudent,
		Status:    "active",
		Grade:     gradeLocator,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, user); err != nil {
		f.t.Fatalf("failed to create legacy test student: %v", err)
	}
	return user
}

// CreateInstructor creates an instructor user.
func (f *Fixtures) CreateInstructor(ctx context.Context, name, email string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	user := models.User{
		ID:        primitive.NewObjectID().Hex(),
		Name:      name,
		NameCI:    text.Fold(name),
		Email:     email,
		Role:      models.RoleInstructor,
		Status:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, user); err != nil {
		f.t.Fatalf("failed to create test instructor: %v", err)
	}
	return user
}

// CreateMission creates a mission template targeting the given grades.
func (f *Fixtures) CreateMission(ctx context.Context, title string, gradeIDs ...string) models.MissionTemplate {
	f.t.Helper()

	now := time.Now().UTC()
	mission := models.MissionTemplate{
		ID:             primitive.NewObjectID().Hex(),
		Title:          title,
		TitleCI:        text.Fold(title),
		Status:         models.MissionDraft,
		TargetAudience: models.Audience{Grades: gradeIDs},
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if _, err := f.db.Collection("project_templates").InsertOne(ctx, mission); err != nil {
		f.t.Fatalf("failed to create test mission: %v", err)
	}
	return mission
}

// CreateEnrollment creates an active enrollment.
func (f *Fixtures) CreateEnrollment(ctx context.Context, studentID, missionID, gradeID string) models.Enrollment {
	f.t.Helper()

	enr := models.Enrollment{
		ID:         primitive.NewObjectID().Hex(),
		StudentID:  studentID,
		ProgramID:  missionID,
		GradeID:    gradeID,
		Status:     models.EnrollmentActive,
		AssignedAt: time.Now().UTC(),
	}

	if _, err := f.db.Collection("enrollments").InsertOne(ctx, enr); err != nil {
		f.t.Fatalf("failed to create test enrollment: %v", err)
	}
	return enr
}

// CreateStudentProject creates a project for a student, optionally derived
// from a template.
func (f *Fixtures) CreateStudentProject(ctx context.Context, studentID, templateID, title, status string) models.StudentProject {
	f.t.Helper()

	now := time.Now().UTC()
	project := models.StudentProject{
		ID:         primitive.NewObjectID().Hex(),
		StudentID:  studentID,
		TemplateID: templateID,
		Title:      title,
		Status:     status,
		CreatedAt:  models.NewFlexTime(now),
		UpdatedAt:  models.NewFlexTime(now),
	}

	if _, err := f.db.Collection("student_projects").InsertOne(ctx, project); err != nil {
		f.t.Fatalf("failed to create test student project: %v", err)
	}
	return project
}

// CreateStation creates a station with the given active grades.
func (f *Fixtures) CreateStation(ctx context.Context, name string, activeGradeIDs ...string) models.Station {
	f.t.Helper()

	now := time.Now().UTC()
	station := models.Station{
		ID:             primitive.NewObjectID().Hex(),
		Name:           name,
		Label:          name,
		Status:         "active",
		ActiveGradeIDs: activeGradeIDs,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if _, err := f.db.Collection("stations").InsertOne(ctx, station); err != nil {
		f.t.Fatalf("failed to create test station: %v", err)
	}
	return station
}

// CreateGadget creates a gadget reward item.
func (f *Fixtures) CreateGadget(ctx context.Context, name, image string) models.Gadget {
	f.t.Helper()

	now := time.Now().UTC()
	gadget := models.Gadget{
		ID:        primitive.NewObjectID().Hex(),
		Name:      name,
		NameCI:    text.Fold(name),
		Image:     image,
		Cost:      100,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("gadgets").InsertOne(ctx, gadget); err != nil {
		f.t.Fatalf("failed to create test gadget: %v", err)
	}
	return gadget
}
