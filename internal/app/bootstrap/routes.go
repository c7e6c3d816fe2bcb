// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/dalemusser/makerhub/internal/app/dispatch"
	badgesfeature "github.com/dalemusser/makerhub/internal/app/features/badges"
	deeplinksfeature "github.com/dalemusser/makerhub/internal/app/features/deeplinks"
	healthfeature "github.com/dalemusser/makerhub/internal/app/features/health"
	importerfeature "github.com/dalemusser/makerhub/internal/app/features/importer"
	libraryfeature "github.com/dalemusser/makerhub/internal/app/features/library"
	loginfeature "github.com/dalemusser/makerhub/internal/app/features/login"
	makersfeature "github.com/dalemusser/makerhub/internal/app/features/makers"
	missionsfeature "github.com/dalemusser/makerhub/internal/app/features/missions"
	programsfeature "github.com/dalemusser/makerhub/internal/app/features/programs"
	projectsfeature "github.com/dalemusser/makerhub/internal/app/features/projects"
	reviewfeature "github.com/dalemusser/makerhub/internal/app/features/review"
	rewardsfeature "github.com/dalemusser/makerhub/internal/app/features/rewards"
	stationsfeature "github.com/dalemusser/makerhub/internal/app/features/stations"
	workflowsfeature "github.com/dalemusser/makerhub/internal/app/features/workflows"
	librarystore "github.com/dalemusser/makerhub/internal/app/store/library"
	programstore "github.com/dalemusser/makerhub/internal/app/store/programs"
	userstore "github.com/dalemusser/makerhub/internal/app/store/users"
	workflowstore "github.com/dalemusser/makerhub/internal/app/store/workflows"
	"github.com/dalemusser/makerhub/internal/app/system/auth"
	"github.com/dalemusser/makerhub/internal/app/system/deeplink"
)

// BuildHandler constructs the root HTTP handler for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// the Startup hook have completed, so the mirror already holds a full
// snapshot by the time routes are mounted.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	if err := auth.InitSessionStore(appCfg.SessionKey, appCfg.SessionDomain, secure, logger); err != nil {
		logger.Error("session store init failed", zap.Error(err))
		return nil, err
	}

	minter, err := deeplink.NewMinter(appCfg.DeepLinkSecret, appCfg.DeepLinkTTL)
	if err != nil {
		logger.Error("deep-link minter init failed", zap.Error(err))
		return nil, err
	}

	d := dispatch.New(deps.MongoClient, deps.MongoDatabase, deps.Mirror, logger)
	users := userstore.New(deps.MongoDatabase)
	programs := programstore.New(deps.MongoDatabase)
	workflows := workflowstore.New(deps.MongoDatabase)
	library := librarystore.New(deps.MongoDatabase)

	r := chi.NewRouter()

	// Global auth middleware: loads SessionUser into context if logged in.
	r.Use(auth.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators
	r.Mount("/health", healthfeature.Routes(healthfeature.NewHandler(deps.MongoClient, logger)))

	// Authentication
	r.Mount("/auth", loginfeature.Routes(loginfeature.NewHandler(users, logger)))

	// Curriculum structure
	r.Mount("/programs", programsfeature.Routes(programsfeature.NewHandler(programs, logger)))
	r.Mount("/workflows", workflowsfeature.Routes(workflowsfeature.NewHandler(workflows, logger)))

	// Missions and assignment
	r.Mount("/missions", missionsfeature.Routes(missionsfeature.NewHandler(d, deps.Mirror, logger)))
	r.Mount("/import", importerfeature.Routes(importerfeature.NewHandler(d.Missions(), d.Projects(), logger)))

	// Student-facing surfaces
	r.Mount("/makers", makersfeature.Routes(makersfeature.NewHandler(d, deps.Mirror, logger)))
	r.Mount("/projects", projectsfeature.Routes(projectsfeature.NewHandler(d, logger)))

	// Instructor surfaces
	r.Mount("/review", reviewfeature.Routes(reviewfeature.NewHandler(d, logger)))
	r.Mount("/stations", stationsfeature.Routes(stationsfeature.NewHandler(d, deps.Mirror, logger)))
	r.Mount("/badges", badgesfeature.Routes(badgesfeature.NewHandler(d, logger)))
	r.Mount("/rewards", rewardsfeature.Routes(rewardsfeature.NewHandler(d, logger)))
	r.Mount("/deeplinks", deeplinksfeature.Routes(deeplinksfeature.NewHandler(minter, users, logger)))

	// Shared link library
	r.Mount("/library", libraryfeature.Routes(libraryfeature.NewHandler(library, logger)))

	return r, nil
}
