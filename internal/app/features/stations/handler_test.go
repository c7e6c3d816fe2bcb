package stations_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/dalemusser/makerhub/internal/app/dispatch"
	"github.com/dalemusser/makerhub/internal/app/features/stations"
	"github.com/dalemusser/makerhub/internal/app/mirror"
	stationstore "github.com/dalemusser/makerhub/internal/app/store/stations"
	"github.com/dalemusser/makerhub/internal/testutil"
)

func setupHandler(t *testing.T) (*stations.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)

	m := mirror.New(db, zap.NewNop())
	t.Cleanup(m.Stop)

	d := dispatch.New(db.Client(), db, m, zap.NewNop())
	return stations.NewHandler(d, m, zap.NewNop()), fx
}

func deleteRequest(t *testing.T, stationID, query string) *http.Request {
	t.Helper()
	r := httptest.NewRequest(http.MethodDelete, "/stations/"+stationID+query, nil)
	return testutil.WithChiURLParam(r, "id", stationID)
}

func TestHandleDelete_RequiresConfirm(t *testing.T) {
	h, fx := setupHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	station := fx.CreateStation(ctx, "Robotics")
	ss := stationstore.New(fx.DB())

	w := httptest.NewRecorder()
	h.HandleDelete(w, deleteRequest(t, station.ID, ""))
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("unconfirmed delete: got %d, want 422", w.Code)
	}
	if _, err := ss.GetByID(ctx, station.ID); err != nil {
		t.Fatalf("unconfirmed delete must leave the station: %v", err)
	}

	w = httptest.NewRecorder()
	h.HandleDelete(w, deleteRequest(t, station.ID, "?confirm=true"))
	if w.Code != http.StatusOK {
		t.Fatalf("confirmed delete: got %d, want 200", w.Code)
	}
	if _, err := ss.GetByID(ctx, station.ID); err != stationstore.ErrNotFound {
		t.Errorf("station should be gone, got %v", err)
	}
}
