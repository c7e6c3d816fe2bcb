// internal/app/store/rewards/rewardstore.go

// Package rewardstore persists the reward shop: gadgets, contests, and
// purchase requests. Three collections, one store, because the handlers and
// dispatcher always use them together.
package rewardstore

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
	gadgets   *mongo.Collection
	contests  *mongo.Collection
	purchases *mongo.Collection
}

var (
	ErrGadgetNotFound   = errors.New("gadget not found")
	ErrContestNotFound  = errors.New("contest not found")
	ErrPurchaseNotFound = errors.New("purchase request not found")
	ErrAlreadyDecided   = errors.New("purchase request already decided")
)

func New(db *mongo.Database) *Store {
	return &Store{
		gadgets:   db.Collection("gadgets"),
		contests:  db.Collection("contests"),
		purchases: db.Collection("purchase_requests"),
	}
}

/* ---------------------------------- gadgets ---------------------------------- */

func (s *Store) GetGadget(ctx context.Context, id string) (models.Gadget, error) {
	var g models.Gadget
	err := s.gadgets.FindOne(ctx, bson.M{"_id": id}).Decode(&g)
	if err == mongo.ErrNoDocuments {
		return models.Gadget{}, ErrGadgetNotFound
	}
	if err != nil {
		return models.Gadget{}, err
	}
	return g, nil
}

func (s *Store) ListGadgets(ctx context.Context) ([]models.Gadget, error) {
	cur, err := s.gadgets.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Gadget
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpsertGadget inserts when g.ID is empty, otherwise updates in place.
func (s *Store) UpsertGadget(ctx context.Context, g models.Gadget) (models.Gadget, error) {
	now := time.Now().UTC()
	g.NameCI = text.Fold(g.Name)
	g.UpdatedAt = now

	if g.ID == "" {
		g.ID = primitive.NewObjectID().Hex()
		g.CreatedAt = now
		if _, err := s.gadgets.InsertOne(ctx, g); err != nil {
			return models.Gadget{}, err
		}
		return g, nil
	}

	res, err := s.gadgets.UpdateByID(ctx, g.ID, bson.M{"$set": bson.M{
		"name":        g.Name,
		"name_ci":     g.NameCI,
		"description": g.Description,
		"image":       g.Image,
		"cost":        g.Cost,
		"updated_at":  now,
	}})
	if err != nil {
		return models.Gadget{}, err
	}
	if res.MatchedCount == 0 {
		return models.Gadget{}, ErrGadgetNotFound
	}
	return g, nil
}

func (s *Store) DeleteGadget(ctx context.Context, id string) (int64, error) {
	res, err := s.gadgets.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

/* ---------------------------------- contests --------------------------------- */

func (s *Store) GetContest(ctx context.Context, id string) (models.Contest, error) {
	var c models.Contest
	err := s.contests.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if err == mongo.ErrNoDocuments {
		return models.Contest{}, ErrContestNotFound
	}
	if err != nil {
		return models.Contest{}, err
	}
	return c, nil
}

func (s *Store) ListContests(ctx context.Context) ([]models.Contest, error) {
	cur, err := s.contests.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Contest
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpsertContest inserts when c.ID is empty, otherwise updates in place.
// Banner inheritance from the reward gadget happens in dispatch before the
// document reaches the store.
func (s *Store) UpsertContest(ctx context.Context, c models.Contest) (models.Contest, error) {
	now := time.Now().UTC()
	c.TitleCI = text.Fold(c.Title)
	c.UpdatedAt = now

	if c.ID == "" {
		c.ID = primitive.NewObjectID().Hex()
		c.CreatedAt = now
		if _, err := s.contests.InsertOne(ctx, c); err != nil {
			return models.Contest{}, err
		}
		return c, nil
	}

	res, err := s.contests.UpdateByID(ctx, c.ID, bson.M{"$set": bson.M{
		"title":            c.Title,
		"title_ci":         c.TitleCI,
		"description":      c.Description,
		"banner":           c.Banner,
		"reward_gadget_id": c.RewardGadgetID,
		"starts_at":        c.StartsAt,
		"ends_at":          c.EndsAt,
		"updated_at":       now,
	}})
	if err != nil {
		return models.Contest{}, err
	}
	if res.MatchedCount == 0 {
		return models.Contest{}, ErrContestNotFound
	}
	return c, nil
}

func (s *Store) DeleteContest(ctx context.Context, id string) (int64, error) {
	res, err := s.contests.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

/* --------------------------------- purchases --------------------------------- */

func (s *Store) GetPurchase(ctx context.Context, id string) (models.PurchaseRequest, error) {
	var p models.PurchaseRequest
	err := s.purchases.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return models.PurchaseRequest{}, ErrPurchaseNotFound
	}
	if err != nil {
		return models.PurchaseRequest{}, err
	}
	return p, nil
}

func (s *Store) ListPurchases(ctx context.Context, status string) ([]models.PurchaseRequest, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	cur, err := s.purchases.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.PurchaseRequest
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) CreatePurchase(ctx context.Context, studentID, gadgetID string) (models.PurchaseRequest, error) {
	p := models.PurchaseRequest{
		ID:        primitive.NewObjectID().Hex(),
		StudentID: studentID,
		GadgetID:  gadgetID,
		Status:    models.PurchasePending,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := s.purchases.InsertOne(ctx, p); err != nil {
		return models.PurchaseRequest{}, err
	}
	return p, nil
}

// DecidePurchase flips a pending request to its final status. Matching on
// pending makes the decision idempotent-safe: a second decision finds no
// pending document and reports ErrAlreadyDecided.
func (s *Store) DecidePurchase(ctx context.Context, id, status, decidedBy string) error {
	now := time.Now().UTC()
	res, err := s.purchases.UpdateOne(ctx,
		bson.M{"_id": id, "status": models.PurchasePending},
		bson.M{"$set": bson.M{
			"status":     status,
			"decided_by": decidedBy,
			"decided_at": now,
		}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		if _, getErr := s.GetPurchase(ctx, id); getErr == nil {
			return ErrAlreadyDecided
		}
		return ErrPurchaseNotFound
	}
	return nil
}
