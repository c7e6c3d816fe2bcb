// internal/app/system/timeouts/timeouts.go

// Package timeouts centralizes the context deadlines handlers use for I/O.
//
//   - Ping: health checks
//   - Short: single-document reads
//   - Medium: list queries, simple writes
//   - Long: multi-collection writes (cascades, activation commits)
//   - Batch: CSV imports and other bulk work
package timeouts

import (
	"sync"
	"time"
)

// Defaults, used unless Configure overrides them at startup.
const (
	DefaultPing   = 2 * time.Second
	DefaultShort  = 5 * time.Second
	DefaultMedium = 10 * time.Second
	DefaultLong   = 30 * time.Second
	DefaultBatch  = 60 * time.Second
)

var (
	mu     sync.RWMutex
	ping   = DefaultPing
	short  = DefaultShort
	medium = DefaultMedium
	long   = DefaultLong
	batch  = DefaultBatch
)

func Ping() time.Duration   { mu.RLock(); defer mu.RUnlock(); return ping }
func Short() time.Duration  { mu.RLock(); defer mu.RUnlock(); return short }
func Medium() time.Duration { mu.RLock(); defer mu.RUnlock(); return medium }
func Long() time.Duration   { mu.RLock(); defer mu.RUnlock(); return long }
func Batch() time.Duration  { mu.RLock(); defer mu.RUnlock(); return batch }

// Config carries overrides; zero values keep the current setting.
type Config struct {
	Ping   time.Duration
	Short  time.Duration
	Medium time.Duration
	Long   time.Duration
	Batch  time.Duration
}

// Configure applies overrides. Call during startup, before handlers run.
func Configure(cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	if cfg.Ping > 0 {
		ping = cfg.Ping
	}
	if cfg.Short > 0 {
		short = cfg.Short
	}
	if cfg.Medium > 0 {
		medium = cfg.Medium
	}
	if cfg.Long > 0 {
		long = cfg.Long
	}
	if cfg.Batch > 0 {
		batch = cfg.Batch
	}
}
