// internal/app/store/library/librarystore.go

// Package librarystore persists the shared link library: tool links and
// asset pointers.
package librarystore

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
	toolLinks *mongo.Collection
	assets    *mongo.Collection
}

var (
	ErrToolLinkNotFound = errors.New("tool link not found")
	ErrAssetNotFound    = errors.New("asset not found")
)

func New(db *mongo.Database) *Store {
	return &Store{
		toolLinks: db.Collection("tool_links"),
		assets:    db.Collection("assets"),
	}
}

func (s *Store) ListToolLinks(ctx context.Context, category string) ([]models.ToolLink, error) {
	filter := bson.M{}
	if category != "" {
		filter["category"] = category
	}
	cur, err := s.toolLinks.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.ToolLink
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) CreateToolLink(ctx context.Context, t models.ToolLink) (models.ToolLink, error) {
	now := time.Now().UTC()
	t.ID = primitive.NewObjectID().Hex()
	t.TitleCI = text.Fold(t.Title)
	t.CreatedAt = now
	t.UpdatedAt = now

	if _, err := s.toolLinks.InsertOne(ctx, t); err != nil {
		return models.ToolLink{}, err
	}
	return t, nil
}

func (s *Store) UpdateToolLink(ctx context.Context, t models.ToolLink) error {
	res, err := s.toolLinks.UpdateByID(ctx, t.ID, bson.M{"$set": bson.M{
		"title":      t.Title,
		"title_ci":   text.Fold(t.Title),
		"url":        t.URL,
		"category":   t.Category,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrToolLinkNotFound
	}
	return nil
}

func (s *Store) DeleteToolLink(ctx context.Context, id string) (int64, error) {
	res, err := s.toolLinks.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (s *Store) ListAssets(ctx context.Context, kind string) ([]models.Asset, error) {
	filter := bson.M{}
	if kind != "" {
		filter["kind"] = kind
	}
	cur, err := s.assets.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Asset
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) CreateAsset(ctx context.Context, a models.Asset) (models.Asset, error) {
	now := time.Now().UTC()
	a.ID = primitive.NewObjectID().Hex()
	a.TitleCI = text.Fold(a.Title)
	a.CreatedAt = now
	a.UpdatedAt = now

	if _, err := s.assets.InsertOne(ctx, a); err != nil {
		return models.Asset{}, err
	}
	return a, nil
}

func (s *Store) UpdateAsset(ctx context.Context, a models.Asset) error {
	res, err := s.assets.UpdateByID(ctx, a.ID, bson.M{"$set": bson.M{
		"title":      a.Title,
		"title_ci":   text.Fold(a.Title),
		"url":        a.URL,
		"kind":       a.Kind,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrAssetNotFound
	}
	return nil
}

func (s *Store) DeleteAsset(ctx context.Context, id string) (int64, error) {
	res, err := s.assets.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
