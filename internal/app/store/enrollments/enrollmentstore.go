// internal/app/store/enrollments/enrollmentstore.go
package enrollmentstore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dalemusser/makerhub/internal/domain/models"
)

type Store struct {
	c *mongo.Collection
}

var (
	ErrNotFound        = errors.New("enrollment not found")
	ErrDuplicateActive = errors.New("student already has an active enrollment for this mission")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("enrollments")}
}

// Create inserts an active enrollment. The unique partial index on
// (student_id, program_id, status=active) turns a racing duplicate into
// ErrDuplicateActive.
func (s *Store) Create(ctx context.Context, e models.Enrollment) (models.Enrollment, error) {
	e.ID = primitive.NewObjectID().Hex()
	if e.Status == "" {
		e.Status = models.EnrollmentActive
	}
	if e.AssignedAt.IsZero() {
		e.AssignedAt = time.Now().UTC()
	}

	if _, err := s.c.InsertOne(ctx, e); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Enrollment{}, ErrDuplicateActive
		}
		return models.Enrollment{}, err
	}
	return e, nil
}

// FindActive returns the active enrollment linking a student to a mission,
// or ErrNotFound.
func (s *Store) FindActive(ctx context.Context, studentID, programID string) (models.Enrollment, error) {
	var e models.Enrollment
	err := s.c.FindOne(ctx, bson.M{
		"student_id": studentID,
		"program_id": programID,
		"status":     models.EnrollmentActive,
	}).Decode(&e)
	if err == mongo.ErrNoDocuments {
		return models.Enrollment{}, ErrNotFound
	}
	if err != nil {
		return models.Enrollment{}, err
	}
	return e, nil
}

func (s *Store) ListActiveByProgram(ctx context.Context, programID string) ([]models.Enrollment, error) {
	return s.list(ctx, bson.M{"program_id": programID, "status": models.EnrollmentActive})
}

func (s *Store) ListActiveByStudent(ctx context.Context, studentID string) ([]models.Enrollment, error) {
	return s.list(ctx, bson.M{"student_id": studentID, "status": models.EnrollmentActive})
}

func (s *Store) Deactivate(ctx context.Context, id string) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{"status": models.EnrollmentInactive}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteByStudent removes every enrollment held by a student; part of the
// maker cascade delete.
func (s *Store) DeleteByStudent(ctx context.Context, studentID string) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"student_id": studentID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// DeleteByProgram removes every enrollment for a mission; part of the
// template cascade delete.
func (s *Store) DeleteByProgram(ctx context.Context, programID string) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"program_id": programID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (s *Store) list(ctx context.Context, filter bson.M) ([]models.Enrollment, error) {
	cur, err := s.c.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Enrollment
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
