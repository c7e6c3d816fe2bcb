// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dalemusser/makerhub/internal/app/mirror"
)

// DBDeps holds database/back-end dependencies for the app.
type DBDeps struct {
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database

	// Mirror is the live collection snapshot shared by every read surface.
	// Created in ConnectDB, subscribed in Startup, stopped in Shutdown.
	Mirror *mirror.Mirror
}
