// internal/app/store/projects/projectstore.go
package projectstore

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dalemusser/makerhub/internal/domain/models"
)

type Store struct {
	c *mongo.Collection
}

var ErrNotFound = errors.New("student project not found")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("student_projects")}
}

func (s *Store) GetByID(ctx context.Context, id string) (models.StudentProject, error) {
	var p models.StudentProject
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return models.StudentProject{}, ErrNotFound
	}
	if err != nil {
		return models.StudentProject{}, err
	}
	return p, nil
}

func (s *Store) ListByStudent(ctx context.Context, studentID string) ([]models.StudentProject, error) {
	return s.list(ctx, bson.M{"student_id": studentID})
}

func (s *Store) ListByTemplate(ctx context.Context, templateID string) ([]models.StudentProject, error) {
	return s.list(ctx, bson.M{"template_id": templateID})
}

// ListPendingReview returns projects with at least one step awaiting review.
func (s *Store) ListPendingReview(ctx context.Context) ([]models.StudentProject, error) {
	return s.list(ctx, bson.M{"steps.status": models.StepPendingReview})
}

func (s *Store) Create(ctx context.Context, p models.StudentProject) (models.StudentProject, error) {
	now := models.NewFlexTime(time.Now().UTC())
	p.ID = primitive.NewObjectID().Hex()
	if p.Status == "" {
		p.Status = models.ProjectPlanning
	}
	p.CreatedAt = now
	p.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, p); err != nil {
		return models.StudentProject{}, err
	}
	return p, nil
}

// ReplaceSteps writes a project's whole step list. Step transitions are
// decided in dispatch; the store only persists the result.
func (s *Store) ReplaceSteps(ctx context.Context, id string, steps []models.ProjectStep) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"steps":      steps,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) UpdateStatus(ctx context.Context, id, status string) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"status":     status,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// AddCommit appends a progress checkpoint and returns it.
func (s *Store) AddCommit(ctx context.Context, id, message string) (models.Commit, error) {
	commit := models.Commit{
		ID:        uuid.NewString(),
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}
	res, err := s.c.UpdateByID(ctx, id, bson.M{
		"$push": bson.M{"commits": commit},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	})
	if err != nil {
		return models.Commit{}, err
	}
	if res.MatchedCount == 0 {
		return models.Commit{}, ErrNotFound
	}
	return commit, nil
}

// Delete removes one project and reports how many documents matched.
func (s *Store) Delete(ctx context.Context, id string) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// DeleteByStudent removes every project owned by a student; part of the
// maker cascade delete.
func (s *Store) DeleteByStudent(ctx context.Context, studentID string) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"student_id": studentID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// DeleteByTemplate removes every project derived from a template; part of
// the template cascade delete.
func (s *Store) DeleteByTemplate(ctx context.Context, templateID string) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"template_id": templateID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (s *Store) list(ctx context.Context, filter bson.M) ([]models.StudentProject, error) {
	cur, err := s.c.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.StudentProject
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
