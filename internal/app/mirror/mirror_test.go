package mirror_test

import (
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/dalemusser/makerhub/internal/app/mirror"
	"github.com/dalemusser/makerhub/internal/testutil"
)

func TestSubscribe_InitialLoadAndLiveUpdate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	before := fx.CreateStation(ctx, "Robotics")

	m := mirror.New(db, zap.NewNop())
	m.PollInterval = 200 * time.Millisecond
	defer m.Stop()

	sub, err := m.Subscribe(ctx, mirror.CollectionStations)
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}
	defer sub.Close()

	if _, ok := m.Snapshot().Stations[before.ID]; !ok {
		t.Fatal("initial load should include existing documents")
	}

	after := fx.CreateStation(ctx, "Woodshop")

	deadline := time.Now().Add(5 * time.Second)
	for {
		if _, ok := m.Snapshot().Stations[after.ID]; ok {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("snapshot never picked up the new document")
		}
		time.Sleep(50 * time.Millisecond)
	}
}

func TestSubscribe_UnknownCollection(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	m := mirror.New(db, zap.NewNop())
	defer m.Stop()

	if _, err := m.Subscribe(ctx, "nope"); err != mirror.ErrUnknownCollection {
		t.Errorf("expected ErrUnknownCollection, got %v", err)
	}
}

func TestSubscription_CloseIsIdempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	m := mirror.New(db, zap.NewNop())
	m.PollInterval = 200 * time.Millisecond
	defer m.Stop()

	sub, err := m.Subscribe(ctx, mirror.CollectionUsers)
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}
	sub.Close()
	sub.Close() // second close must be a no-op

	// A fresh subscription after teardown works.
	again, err := m.Subscribe(ctx, mirror.CollectionUsers)
	if err != nil {
		t.Fatalf("resubscribe failed: %v", err)
	}
	again.Close()
}

func TestRefresh_ReadYourWrites(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	m := mirror.New(db, zap.NewNop())
	defer m.Stop()

	sub, err := m.Subscribe(ctx, mirror.CollectionGadgets)
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}
	defer sub.Close()

	g := fx.CreateGadget(ctx, "Oscilloscope", "scope.png")
	if err := m.Refresh(ctx, mirror.CollectionGadgets); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	if _, ok := m.Snapshot().Gadgets[g.ID]; !ok {
		t.Error("Refresh should make the write visible immediately")
	}
}
