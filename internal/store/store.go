// Package store persists track votes. One row is kept per
// (track_id, user_id) pair; a repeat vote overwrites the earlier one
// through the store's native conflict-resolving upsert, so concurrent
// submissions for the same pair serialize to a single row.
package store

import (
	"context"
	"fmt"

	"github.com/willmarzolf/radio-calico/config"
)

// Supported backing engines.
const (
	EngineSQLite   = "sqlite"
	EnginePostgres = "postgres"
)

// Counts holds the vote tally for one track, grouped by polarity.
type Counts struct {
	ThumbsUp   int `json:"thumbsUp"`
	ThumbsDown int `json:"thumbsDown"`
}

// Store records the latest vote per (track, user) pair and answers
// aggregate and per-user queries. Both backing engines implement the
// same contract; dialect differences stay behind this interface.
type Store interface {
	// SubmitVote inserts or overwrites the pair's vote atomically.
	SubmitVote(ctx context.Context, trackID, userID string, rating int) error
	// GetCounts tallies votes for a track. Unknown tracks yield zero
	// counts, never an error.
	GetCounts(ctx context.Context, trackID string) (Counts, error)
	// GetUserVote returns the user's current vote for a track and
	// whether one exists.
	GetUserVote(ctx context.Context, trackID, userID string) (int, bool, error)
	Close() error
}

// Open connects to the engine selected by the config.
func Open(cfg *config.Config) (Store, error) {
	switch cfg.DBEngine {
	case EngineSQLite, "":
		return OpenSQLite(cfg.SQLitePath)
	case EnginePostgres:
		return OpenPostgres(cfg.Dsn)
	default:
		return nil, fmt.Errorf("unsupported db engine %q", cfg.DBEngine)
	}
}
