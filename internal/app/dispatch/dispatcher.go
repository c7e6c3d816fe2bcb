// internal/app/dispatch/dispatcher.go

// Package dispatch executes the mutations the HTTP surface requests. Every
// operation validates before touching the store, writes through the store
// packages, and leaves the mirror to catch up through its subscriptions.
// Where the mirror's staleness would break an invariant, the operation
// re-queries the store before writing.
package dispatch

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/dalemusser/makerhub/internal/app/mirror"
	badgestore "github.com/dalemusser/makerhub/internal/app/store/badges"
	enrollmentstore "github.com/dalemusser/makerhub/internal/app/store/enrollments"
	missionstore "github.com/dalemusser/makerhub/internal/app/store/missions"
	projectstore "github.com/dalemusser/makerhub/internal/app/store/projects"
	rewardstore "github.com/dalemusser/makerhub/internal/app/store/rewards"
	stationstore "github.com/dalemusser/makerhub/internal/app/store/stations"
	userstore "github.com/dalemusser/makerhub/internal/app/store/users"
	"github.com/dalemusser/makerhub/internal/app/system/txn"
)

// Validation sentinels. Handlers map these to HTTP 422.
var (
	ErrConfirmRequired  = errors.New("destructive operation requires confirmation")
	ErrFeedbackRequired = errors.New("rejection requires non-empty feedback")
	ErrReviewerRequired = errors.New("review requires a reviewer identity")
	ErrBadTransition    = errors.New("step transition not allowed from current status")
	ErrBadStepIndex     = errors.New("step index out of range")
	ErrBadDecision      = errors.New("decision must be approved or rejected")
	ErrNoStudents       = errors.New("no students to assign")
)

// Dispatcher coordinates the stores, the transaction helper, and the mirror.
type Dispatcher struct {
	client *mongo.Client
	log    *zap.Logger
	mirror *mirror.Mirror

	missions    *missionstore.Store
	enrollments *enrollmentstore.Store
	projects    *projectstore.Store
	stations    *stationstore.Store
	badges      *badgestore.Store
	rewards     *rewardstore.Store
	users       *userstore.Store
}

// New builds a Dispatcher over an already-connected database.
func New(client *mongo.Client, db *mongo.Database, m *mirror.Mirror, log *zap.Logger) *Dispatcher {
	return &Dispatcher{
		client:      client,
		log:         log,
		mirror:      m,
		missions:    missionstore.New(db),
		enrollments: enrollmentstore.New(db),
		projects:    projectstore.New(db),
		stations:    stationstore.New(db),
		badges:      badgestore.New(db),
		rewards:     rewardstore.New(db),
		users:       userstore.New(db),
	}
}

// Missions exposes the mission store for read paths in handlers.
func (d *Dispatcher) Missions() *missionstore.Store { return d.missions }

// Projects exposes the project store for read paths in handlers.
func (d *Dispatcher) Projects() *projectstore.Store { return d.projects }

// Stations exposes the station store for read paths in handlers.
func (d *Dispatcher) Stations() *stationstore.Store { return d.stations }

// Badges exposes the badge store for read paths in handlers.
func (d *Dispatcher) Badges() *badgestore.Store { return d.badges }

// Rewards exposes the reward store for read paths in handlers.
func (d *Dispatcher) Rewards() *rewardstore.Store { return d.rewards }

// Enrollments exposes the enrollment store for read paths in handlers.
func (d *Dispatcher) Enrollments() *enrollmentstore.Store { return d.enrollments }

// Users exposes the user store for read paths in handlers.
func (d *Dispatcher) Users() *userstore.Store { return d.users }

func (d *Dispatcher) inTxn(ctx context.Context, fn func(ctx context.Context) error) error {
	return txn.WithTransaction(ctx, d.client, d.log, fn)
}
