// internal/app/store/badges/badgestore.go
package badgestore

import (
	"context"
	"errors"
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

var ErrNotFound = errors.New("badge not found")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("badges")}
}

func (s *Store) GetByID(ctx context.Context, id string) (models.Badge, error) {
	var b models.Badge
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&b)
	if err == mongo.ErrNoDocuments {
		return models.Badge{}, ErrNotFound
	}
	if err != nil {
		return models.Badge{}, err
	}
	return b, nil
}

func (s *Store) List(ctx context.Context) ([]models.Badge, error) {
	cur, err := s.c.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Badge
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create inserts a badge. Criteria must already be validated.
func (s *Store) Create(ctx context.Context, b models.Badge) (models.Badge, error) {
	if err := b.Criteria.Validate(); err != nil {
		return models.Badge{}, err
	}
	now := time.Now().UTC()
	b.ID = primitive.NewObjectID().Hex()
	b.NameCI = text.Fold(b.Name)
	b.CreatedAt = now
	b.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, b); err != nil {
		return models.Badge{}, err
	}
	return b, nil
}

func (s *Store) Update(ctx context.Context, b models.Badge) error {
	if err := b.Criteria.Validate(); err != nil {
		return err
	}
	res, err := s.c.UpdateByID(ctx, b.ID, bson.M{"$set": bson.M{
		"name":        b.Name,
		"name_ci":     text.Fold(b.Name),
		"description": b.Description,
		"icon":        b.Icon,
		"criteria":    b.Criteria,
		"updated_at":  time.Now().UTC(),
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
