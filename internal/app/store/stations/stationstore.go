// internal/app/store/stations/stationstore.go
package stationstore

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dalemusser/makerhub/internal/domain/models"
)

type Store struct {
	c *mongo.Collection
}

var ErrNotFound = errors.New("station not found")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("stations")}
}

func (s *Store) GetByID(ctx context.Context, id string) (models.Station, error) {
	var st models.Station
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&st)
	if err == mongo.ErrNoDocuments {
		return models.Station{}, ErrNotFound
	}
	if err != nil {
		return models.Station{}, err
	}
	return st, nil
}

func (s *Store) List(ctx context.Context) ([]models.Station, error) {
	cur, err := s.c.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Station
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) Create(ctx context.Context, st models.Station) (models.Station, error) {
	now := time.Now().UTC()
	st.ID = primitive.NewObjectID().Hex()
	if st.Label == "" {
		st.Label = st.Name
	}
	if st.Status == "" {
		st.Status = "active"
	}
	st.CreatedAt = now
	st.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, st); err != nil {
		return models.Station{}, err
	}
	return st, nil
}

func (s *Store) UpdateInfo(ctx context.Context, id, name, label, theme, icon string) error {
	set := bson.M{"updated_at": time.Now().UTC()}
	if name != "" {
		set["name"] = name
	}
	if label != "" {
		set["label"] = label
	}
	set["theme"] = theme
	set["icon"] = icon

	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// AddActiveGrade puts a grade into this station's active set.
func (s *Store) AddActiveGrade(ctx context.Context, id, gradeID string) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{
		"$addToSet": bson.M{"active_grade_ids": gradeID},
		"$set":      bson.M{"updated_at": time.Now().UTC()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// RemoveActiveGrade drops a grade from this station's active set.
func (s *Store) RemoveActiveGrade(ctx context.Context, id, gradeID string) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{
		"$pull": bson.M{"active_grade_ids": gradeID},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// PullGradeFromOthers removes a grade from every station except the one
// being activated. Runs inside the activation transaction so the exclusivity
// invariant holds in one commit.
func (s *Store) PullGradeFromOthers(ctx context.Context, exceptID, gradeID string) (int64, error) {
	res, err := s.c.UpdateMany(ctx,
		bson.M{"_id": bson.M{"$ne": exceptID}, "active_grade_ids": gradeID},
		bson.M{
			"$pull": bson.M{"active_grade_ids": gradeID},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

func (s *Store) Delete(ctx context.Context, id string) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
