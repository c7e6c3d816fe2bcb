package enrollmentstore_test

import (
	"testing"

	enrollmentstore "github.com/dalemusser/makerhub/internal/app/store/enrollments"
	"github.com/dalemusser/makerhub/internal/app/system/indexes"
	"github.com/dalemusser/makerhub/internal/domain/models"
	"github.com/dalemusser/makerhub/internal/testutil"
)

func TestCreate_DuplicateActiveRejectedByIndex(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	store := enrollmentstore.New(db)
	e := models.Enrollment{StudentID: "s1", ProgramID: "m1", GradeID: "g1"}

	if _, err := store.Create(ctx, e); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	if _, err := store.Create(ctx, e); err != enrollmentstore.ErrDuplicateActive {
		t.Errorf("second create: got %v, want ErrDuplicateActive", err)
	}

	// Deactivating frees the slot for a fresh assignment.
	existing, err := store.FindActive(ctx, "s1", "m1")
	if err != nil {
		t.Fatalf("FindActive failed: %v", err)
	}
	if err := store.Deactivate(ctx, existing.ID); err != nil {
		t.Fatalf("Deactivate failed: %v", err)
	}
	if _, err := store.Create(ctx, e); err != nil {
		t.Errorf("create after deactivate failed: %v", err)
	}
}

func TestFindActive_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := enrollmentstore.New(db)
	if _, err := store.FindActive(ctx, "s1", "m1"); err != enrollmentstore.ErrNotFound {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}
