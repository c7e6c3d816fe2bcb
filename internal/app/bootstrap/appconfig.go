// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig covers framework-level settings (ports, TLS, logging,
// CORS, request limits). AppConfig is everything specific to MakerHub:
// database connection strings, session and deep-link secrets, and tuning
// knobs for the live collection mirror.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Session management configuration
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionDomain string // Cookie domain (blank means current host)

	// Companion-app hand-off tokens
	DeepLinkSecret string        // HMAC secret for signing deep-link tokens (32+ chars)
	DeepLinkTTL    time.Duration // Lifetime of a minted deep-link token

	// Live collection mirror
	MirrorPollInterval time.Duration // Fallback poll cadence when change streams are unavailable
}
