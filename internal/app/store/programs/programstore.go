// internal/app/store/programs/programstore.go
package programstore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dalemusser/makerhub/internal/domain/models"
)

type Store struct {
	c *mongo.Collection
}

var (
	ErrNotFound      = errors.New("program not found")
	ErrDuplicateName = errors.New("a program with this name already exists")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("programs")}
}

func (s *Store) GetByID(ctx context.Context, id string) (models.Program, error) {
	var p models.Program
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return models.Program{}, ErrNotFound
	}
	if err != nil {
		return models.Program{}, err
	}
	return p, nil
}

func (s *Store) List(ctx context.Context) ([]models.Program, error) {
	cur, err := s.c.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Program
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) Create(ctx context.Context, p models.Program) (models.Program, error) {
	now := time.Now().UTC()
	p.ID = primitive.NewObjectID().Hex()
	p.NameCI = text.Fold(p.Name)
	if p.Status == "" {
		p.Status = "active"
	}
	ensureTreeIDs(&p)
	p.CreatedAt = now
	p.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, p); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Program{}, ErrDuplicateName
		}
		return models.Program{}, err
	}
	return p, nil
}

// UpdateTree replaces the program's name and whole grades tree. The tree is
// edited as one unit, so writers send the complete structure.
func (s *Store) UpdateTree(ctx context.Context, id, name string, grades []models.Grade) error {
	for i := range grades {
		if grades[i].ID == "" {
			grades[i].ID = primitive.NewObjectID().Hex()
		}
		for j := range grades[i].Groups {
			if grades[i].Groups[j].ID == "" {
				grades[i].Groups[j].ID = primitive.NewObjectID().Hex()
			}
		}
	}

	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"name":       name,
		"name_ci":    text.Fold(name),
		"grades":     grades,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		if wafflemongo.IsDup(err) {
			return ErrDuplicateName
		}
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

func ensureTreeIDs(p *models.Program) {
	for i := range p.Grades {
		if p.Grades[i].ID == "" {
			p.Grades[i].ID = primitive.NewObjectID().Hex()
		}
		for j := range p.Grades[i].Groups {
			if p.Grades[i].Groups[j].ID == "" {
				p.Grades[i].Groups[j].ID = primitive.NewObjectID().Hex()
			}
		}
	}
}
