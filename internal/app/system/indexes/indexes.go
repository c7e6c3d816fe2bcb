// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
EnsureAll is called at startup (and by tests that need the constraint
indexes). Each ensure step is idempotent; problems are aggregated so every
broken collection is visible at once and startup can fail fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	ensure := func(coll string, idxs []mongo.IndexModel) {
		if err := ensureIndexSet(ctx, db.Collection(coll), idxs); err != nil {
			problems = append(problems, coll+": "+err.Error())
		}
	}

	ensure("users", []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "email", Value: 1}},
			Options: options.Index().
				SetName("uniq_email").
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"email": bson.M{"$type": "string"}}),
		},
		{Keys: bson.D{{Key: "role", Value: 1}}, Options: options.Index().SetName("by_role")},
		{Keys: bson.D{{Key: "name_ci", Value: 1}}, Options: options.Index().SetName("by_name_ci")},
	})

	// Backstop for the single-active-assignment invariant: the dispatcher
	// checks before inserting, this index wins the race.
	ensure("enrollments", []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "student_id", Value: 1},
				{Key: "program_id", Value: 1},
			},
			Options: options.Index().
				SetName("uniq_active_assignment").
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"status": "active"}),
		},
		{Keys: bson.D{{Key: "program_id", Value: 1}, {Key: "status", Value: 1}}, Options: options.Index().SetName("by_program_status")},
		{Keys: bson.D{{Key: "grade_id", Value: 1}}, Options: options.Index().SetName("by_grade")},
	})

	ensure("programs", []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name_ci", Value: 1}},
			Options: options.Index().SetName("uniq_name_ci").SetUnique(true),
		},
	})

	ensure("project_templates", []mongo.IndexModel{
		{Keys: bson.D{{Key: "status", Value: 1}}, Options: options.Index().SetName("by_status")},
		{Keys: bson.D{{Key: "title_ci", Value: 1}}, Options: options.Index().SetName("by_title_ci")},
		{Keys: bson.D{{Key: "created_at", Value: -1}}, Options: options.Index().SetName("by_created_desc")},
	})

	ensure("student_projects", []mongo.IndexModel{
		{Keys: bson.D{{Key: "student_id", Value: 1}}, Options: options.Index().SetName("by_student")},
		{Keys: bson.D{{Key: "template_id", Value: 1}}, Options: options.Index().SetName("by_template")},
		{Keys: bson.D{{Key: "steps.status", Value: 1}}, Options: options.Index().SetName("by_step_status")},
	})

	ensure("stations", []mongo.IndexModel{
		{Keys: bson.D{{Key: "active_grade_ids", Value: 1}}, Options: options.Index().SetName("by_active_grade")},
	})

	ensure("purchase_requests", []mongo.IndexModel{
		{Keys: bson.D{{Key: "status", Value: 1}}, Options: options.Index().SetName("by_status")},
		{Keys: bson.D{{Key: "student_id", Value: 1}}, Options: options.Index().SetName("by_student")},
	})

	ensure("tool_links", []mongo.IndexModel{
		{Keys: bson.D{{Key: "category", Value: 1}}, Options: options.Index().SetName("by_category")},
	})

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* -------------------------------------------------------------------------- */
/* Core helper: reconcile desired indexes for one collection                  */
/* -------------------------------------------------------------------------- */

type existingIndex struct {
	Name   string `bson:"name"`
	Key    bson.D `bson:"key"`
	Unique *bool  `bson:"unique,omitempty"`
}

func keySig(keys bson.D) string {
	parts := make([]string, 0, len(keys))
	for _, kv := range keys {
		parts = append(parts, fmt.Sprintf("%s:%v", kv.Key, kv.Value))
	}
	return strings.Join(parts, ", ")
}

func sameUnique(a, b *bool) bool {
	av := a != nil && *a
	bv := b != nil && *b
	return av == bv
}

// ensureIndexSet creates each desired index, reusing an existing index with
// the same key pattern and uniqueness, and dropping/recreating when the
// options changed.
func ensureIndexSet(ctx context.Context, coll *mongo.Collection, desired []mongo.IndexModel) error {
	existing := map[string]existingIndex{} // key signature -> index
	cur, err := coll.Indexes().List(ctx)
	if err == nil {
		for cur.Next(ctx) {
			var idx existingIndex
			if err := cur.Decode(&idx); err != nil {
				zap.L().Warn("failed to decode existing index",
					zap.String("collection", coll.Name()),
					zap.Error(err))
				continue
			}
			existing[keySig(idx.Key)] = idx
		}
		cur.Close(ctx)
	}

	var errs []string
	for _, m := range desired {
		var name string
		var unique *bool
		if m.Options != nil {
			if m.Options.Name != nil {
				name = *m.Options.Name
			}
			unique = m.Options.Unique
		}
		sig := keySig(m.Keys.(bson.D))

		if ex, ok := existing[sig]; ok {
			if sameUnique(unique, ex.Unique) {
				continue // reuse
			}
			// Options changed (e.g. upgrading to unique): drop and recreate.
			if _, err := coll.Indexes().DropOne(ctx, ex.Name); err != nil {
				errs = append(errs, fmt.Sprintf("%s: drop failed: %v", name, err))
				continue
			}
		}

		if _, err := coll.Indexes().CreateOne(ctx, m); err != nil {
			if isDuplicateKeyErr(err) && unique != nil && *unique {
				errs = append(errs, fmt.Sprintf("%s: cannot create unique index, duplicates present", name))
			} else {
				errs = append(errs, fmt.Sprintf("%s: %v", name, err))
			}
			continue
		}
		zap.L().Info("index created",
			zap.String("collection", coll.Name()),
			zap.String("name", name),
			zap.String("keys", sig),
			zap.Bool("unique", unique != nil && *unique))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

// Best-effort duplicate-key detector (works across server vendors).
func isDuplicateKeyErr(err error) bool {
	if err == nil {
		return false
	}
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if e.Code == 11000 {
				return true
			}
		}
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == 11000 {
		return true
	}
	s := err.Error()
	return strings.Contains(s, "E11000") || strings.Contains(strings.ToLower(s), "duplicate key")
}
