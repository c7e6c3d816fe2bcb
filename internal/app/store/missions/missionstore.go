// internal/app/store/missions/missionstore.go
package missionstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dalemusser/makerhub/internal/domain/models"
)

type Store struct {
	c *mongo.Collection
}

var ErrNotFound = errors.New("mission template not found")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("project_templates")}
}

func (s *Store) GetByID(ctx context.Context, id string) (models.MissionTemplate, error) {
	var m models.MissionTemplate
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&m)
	if err == mongo.ErrNoDocuments {
		return models.MissionTemplate{}, ErrNotFound
	}
	if err != nil {
		return models.MissionTemplate{}, err
	}
	return m, nil
}

// List returns templates, optionally filtered by status, newest first.
func (s *Store) List(ctx context.Context, status string) ([]models.MissionTemplate, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.MissionTemplate
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) Create(ctx context.Context, m models.MissionTemplate) (models.MissionTemplate, error) {
	now := time.Now().UTC()
	m.ID = primitive.NewObjectID().Hex()
	m.TitleCI = text.Fold(m.Title)
	if m.Status == "" {
		m.Status = models.MissionDraft
	}
	m.CreatedAt = now
	m.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, m); err != nil {
		return models.MissionTemplate{}, err
	}
	return m, nil
}

// Update replaces the editable fields of a template.
func (s *Store) Update(ctx context.Context, m models.MissionTemplate) error {
	res, err := s.c.UpdateByID(ctx, m.ID, bson.M{"$set": bson.M{
		"title":           m.Title,
		"title_ci":        text.Fold(m.Title),
		"description":     m.Description,
		"station":         m.Station,
		"difficulty":      m.Difficulty,
		"duration":        m.Duration,
		"cover_image":     m.CoverImage,
		"target_audience": m.TargetAudience,
		"workflow_id":     m.WorkflowID,
		"resources":       m.Resources,
		"outcomes":        m.Outcomes,
		"challenges":      m.Challenges,
		"real_world":      m.RealWorld,
		"technologies":    m.Technologies,
		"skills":          m.Skills,
		"gallery":         m.Gallery,
		"updated_at":      time.Now().UTC(),
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

func (s *Store) Delete(ctx context.Context, id string) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
