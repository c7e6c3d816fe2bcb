// internal/app/mirror/mirror.go

// Package mirror maintains live in-memory snapshots of the document-store
// collections the resolvers read from. Each subscribed collection is
// watched with a change stream; any change event triggers a full reload of
// that collection, so the snapshot always reflects the latest known state
// rather than a replayed delta log. When change streams are unavailable
// (standalone server) the watcher degrades to interval polling.
package mirror

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/dalemusser/makerhub/internal/domain/models"
)

// DefaultPollInterval is how often a watcher reloads its collection when
// it has to fall back to polling.
const DefaultPollInterval = 15 * time.Second

const reloadTimeout = 30 * time.Second

// ErrUnknownCollection is returned by Subscribe for a collection the
// mirror does not know how to load.
var ErrUnknownCollection = errors.New("mirror: unknown collection")

// Mirror owns the snapshot and the per-collection watchers. Watchers are
// reference counted: the first Subscribe for a collection starts one, the
// last Close stops it.
type Mirror struct {
	db  *mongo.Database
	log *zap.Logger

	// PollInterval applies to watchers started after it is set. Leave at
	// the default in production; tests shorten it.
	PollInterval time.Duration

	mu   sync.RWMutex // guards view
	view View

	wmu      sync.Mutex // guards watchers
	watchers map[string]*watcher
}

type watcher struct {
	collection string
	refs       int
	cancel     context.CancelFunc
	wg         sync.WaitGroup
}

// New creates a Mirror over db. No watchers run until Subscribe is called.
func New(db *mongo.Database, log *zap.Logger) *Mirror {
	return &Mirror{
		db:           db,
		log:          log,
		PollInterval: DefaultPollInterval,
		view:         NewView(),
		watchers:     map[string]*watcher{},
	}
}

// Subscription is a handle on one collection's watcher. Close releases it;
// closing more than once is a no-op.
type Subscription struct {
	m          *Mirror
	collection string
	once       sync.Once
}

// Close releases the subscription. When the last subscription for a
// collection closes, its watcher stops and the collection goes stale.
func (s *Subscription) Close() {
	s.once.Do(func() { s.m.release(s.collection) })
}

// Collection returns the collection this subscription watches.
func (s *Subscription) Collection() string { return s.collection }

// Subscribe starts (or joins) the watcher for a collection and performs a
// synchronous initial load, so the returned subscription's data is already
// in the snapshot. ctx bounds only the initial load.
func (m *Mirror) Subscribe(ctx context.Context, collection string) (*Subscription, error) {
	if !knownCollection(collection) {
		return nil, ErrUnknownCollection
	}

	m.wmu.Lock()
	defer m.wmu.Unlock()

	w, ok := m.watchers[collection]
	if !ok {
		if err := m.reload(ctx, collection); err != nil {
			return nil, err
		}
		runCtx, cancel := context.WithCancel(context.Background())
		w = &watcher{collection: collection, cancel: cancel}
		w.wg.Add(1)
		go m.run(runCtx, w)
		m.watchers[collection] = w
	}
	w.refs++

	return &Subscription{m: m, collection: collection}, nil
}

// SubscribeAll subscribes to every known collection, closing any partial
// set on failure.
func (m *Mirror) SubscribeAll(ctx context.Context) ([]*Subscription, error) {
	var subs []*Subscription
	for _, c := range AllCollections {
		s, err := m.Subscribe(ctx, c)
		if err != nil {
			for _, prev := range subs {
				prev.Close()
			}
			return nil, err
		}
		subs = append(subs, s)
	}
	return subs, nil
}

// Snapshot returns a copy of the current view. The maps are fresh; the
// values are shared and must not be mutated.
func (m *Mirror) Snapshot() View {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.view.clone()
}

// Refresh forces a reload of one collection outside the watcher cycle.
// Dispatchers call it after a write when a caller needs read-your-writes.
func (m *Mirror) Refresh(ctx context.Context, collection string) error {
	if !knownCollection(collection) {
		return ErrUnknownCollection
	}
	return m.reload(ctx, collection)
}

// Stop closes all watchers regardless of reference counts and waits for
// them to exit. Used during shutdown.
func (m *Mirror) Stop() {
	m.wmu.Lock()
	ws := make([]*watcher, 0, len(m.watchers))
	for _, w := range m.watchers {
		w.cancel()
		ws = append(ws, w)
	}
	m.watchers = map[string]*watcher{}
	m.wmu.Unlock()

	for _, w := range ws {
		w.wg.Wait()
	}
}

func (m *Mirror) release(collection string) {
	m.wmu.Lock()
	defer m.wmu.Unlock()

	w, ok := m.watchers[collection]
	if !ok {
		return
	}
	w.refs--
	if w.refs > 0 {
		return
	}
	w.cancel()
	delete(m.watchers, collection)
}

func (m *Mirror) run(ctx context.Context, w *watcher) {
	defer w.wg.Done()

	stream, err := m.db.Collection(w.collection).Watch(ctx, mongo.Pipeline{})
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		m.log.Info("change streams unavailable; polling",
			zap.String("collection", w.collection),
			zap.Error(err))
		m.poll(ctx, w)
		return
	}
	defer stream.Close(context.Background())

	m.log.Debug("watching collection", zap.String("collection", w.collection))

	for stream.Next(ctx) {
		// Drain any events already buffered so a burst of writes costs
		// one reload, not one per event.
		for stream.TryNext(ctx) {
		}
		m.reloadLogged(w.collection)
	}
	if ctx.Err() != nil {
		return
	}
	m.log.Warn("change stream ended; polling",
		zap.String("collection", w.collection),
		zap.Error(stream.Err()))
	m.poll(ctx, w)
}

func (m *Mirror) poll(ctx context.Context, w *watcher) {
	interval := m.PollInterval
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.reloadLogged(w.collection)
		}
	}
}

func (m *Mirror) reloadLogged(collection string) {
	ctx, cancel := context.WithTimeout(context.Background(), reloadTimeout)
	defer cancel()
	if err := m.reload(ctx, collection); err != nil {
		m.log.Warn("collection reload failed",
			zap.String("collection", collection),
			zap.Error(err))
	}
}

// reload replaces one collection's map in the view with a fresh full load.
func (m *Mirror) reload(ctx context.Context, collection string) error {
	coll := m.db.Collection(collection)

	switch collection {
	case CollectionPrograms:
		docs, err := loadAll(ctx, coll, func(d models.Program) string { return d.ID })
		if err != nil {
			return err
		}
		m.mu.Lock()
		m.view.Programs = docs
		m.mu.Unlock()
	case CollectionUsers:
		docs, err := loadAll(ctx, coll, func(d models.User) string { return d.ID })
		if err != nil {
			return err
		}
		m.mu.Lock()
		m.view.Users = docs
		m.mu.Unlock()
	case CollectionEnrolls:
		docs, err := loadAll(ctx, coll, func(d models.Enrollment) string { return d.ID })
		if err != nil {
			return err
		}
		m.mu.Lock()
		m.view.Enrollments = docs
		m.mu.Unlock()
	case CollectionMissions:
		docs, err := loadAll(ctx, coll, func(d models.MissionTemplate) string { return d.ID })
		if err != nil {
			return err
		}
		m.mu.Lock()
		m.view.Missions = docs
		m.mu.Unlock()
	case CollectionProjects:
		docs, err := loadAll(ctx, coll, func(d models.StudentProject) string { return d.ID })
		if err != nil {
			return err
		}
		m.mu.Lock()
		m.view.Projects = docs
		m.mu.Unlock()
	case CollectionWorkflows:
		docs, err := loadAll(ctx, coll, func(d models.Workflow) string { return d.ID })
		if err != nil {
			return err
		}
		m.mu.Lock()
		m.view.Workflows = docs
		m.mu.Unlock()
	case CollectionStations:
		docs, err := loadAll(ctx, coll, func(d models.Station) string { return d.ID })
		if err != nil {
			return err
		}
		m.mu.Lock()
		m.view.Stations = docs
		m.mu.Unlock()
	case CollectionBadges:
		docs, err := loadAll(ctx, coll, func(d models.Badge) string { return d.ID })
		if err != nil {
			return err
		}
		m.mu.Lock()
		m.view.Badges = docs
		m.mu.Unlock()
	case CollectionGadgets:
		docs, err := loadAll(ctx, coll, func(d models.Gadget) string { return d.ID })
		if err != nil {
			return err
		}
		m.mu.Lock()
		m.view.Gadgets = docs
		m.mu.Unlock()
	case CollectionContests:
		docs, err := loadAll(ctx, coll, func(d models.Contest) string { return d.ID })
		if err != nil {
			return err
		}
		m.mu.Lock()
		m.view.Contests = docs
		m.mu.Unlock()
	default:
		return ErrUnknownCollection
	}
	return nil
}

func loadAll[T any](ctx context.Context, coll *mongo.Collection, key func(T) string) (map[string]T, error) {
	cur, err := coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := map[string]T{}
	for cur.Next(ctx) {
		var doc T
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out[key(doc)] = doc
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func knownCollection(name string) bool {
	for _, c := range AllCollections {
		if c == name {
			return true
		}
	}
	return false
}
