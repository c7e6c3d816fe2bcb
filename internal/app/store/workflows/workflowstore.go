// internal/app/store/workflows/workflowstore.go
package workflowstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dalemusser/makerhub/internal/domain/models"
)

type Store struct {
	c *mongo.Collection
}

var ErrNotFound = errors.New("workflow not found")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("process_templates")}
}

func (s *Store) GetByID(ctx context.Context, id string) (models.Workflow, error) {
	var w models.Workflow
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&w)
	if err == mongo.ErrNoDocuments {
		return models.Workflow{}, ErrNotFound
	}
	if err != nil {
		return models.Workflow{}, err
	}
	return w, nil
}

func (s *Store) List(ctx context.Context) ([]models.Workflow, error) {
	cur, err := s.c.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Workflow
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) Create(ctx context.Context, w models.Workflow) (models.Workflow, error) {
	now := time.Now().UTC()
	w.ID = primitive.NewObjectID().Hex()
	w.NameCI = text.Fold(w.Name)
	w.CreatedAt = now
	w.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, w); err != nil {
		return models.Workflow{}, err
	}
	return w, nil
}

// Update replaces the name and full phase list.
func (s *Store) Update(ctx context.Context, id, name string, phases []models.WorkflowPhase) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"name":       name,
		"name_ci":    text.Fold(name),
		"phases":     phases,
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

// SetMissionResources attaches a mission-specific resource list to one phase.
func (s *Store) SetMissionResources(ctx context.Context, id string, phaseIndex int, missionID string, resources []models.ResourceLink) error {
	field := fmt.Sprintf("phases.%d.mission_resources.%s", phaseIndex, missionID)
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		field:        resources,
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

func (s *Store) Delete(ctx context.Context, id string) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
